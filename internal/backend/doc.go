// Package backend is the HTTP implementation of domain.AuthAPI and
// domain.InverterAPI.
//
// Every call returns either a transport error (no response was received) or a
// domain.Response carrying the status line and, for 2xx replies that decode,
// the body. Status classification is left to safecall.
//
// Wire models are snake_case JSON. Paginated endpoints answer with
// {count, next, previous, results}; a non-null next means another page exists.
package backend
