// Package login validates credentials locally and hands them to the auth
// envelope, publishing the outcome for whoever drives the login screen.
package login
