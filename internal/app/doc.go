// Package app wires application dependencies for the CLI.
//
// It builds the token store, the HTTP stack, the backend client and the
// services from Config, exposing them via the Wire struct for commands to use.
package app
