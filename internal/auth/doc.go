// Package auth attaches credentials to outbound requests and manages the token
// lifecycle.
//
// Every request sent through Transport is decorated with the current access
// token read from the domain.TokenStore at send time; the token is never cached
// across requests. Envelope adds login, refresh and logout on top of the same
// store. A 401 from a data endpoint is not retried here: callers decide whether
// to Refresh and try again.
package auth
