package netresult

import (
	"errors"
	"fmt"
)

// Kind is a coarse-grained categorization for errors.
type Kind string

const (
	KindNotAuthenticated Kind = "not_authenticated"
	KindValidation       Kind = "validation"
	KindTransport        Kind = "transport"
	KindServer           Kind = "server"
	KindEmptyResponse    Kind = "empty_response"
	KindUnexpected       Kind = "unexpected"
)

// Canonical messages. They are shown to users as-is.
const (
	MsgNetworkFailure      = "network failure"
	MsgEmptyResponse       = "empty response"
	MsgNotAuthenticated    = "not authenticated"
	MsgMissingRefreshToken = "missing refresh token"
)

// Error is the payload of the Error variant.
type Error struct {
	Kind    Kind
	Message string
	// Code is the HTTP status when the failure came from a response; 0 when absent.
	Code int
	// Field names the rejected input for KindValidation.
	Field string
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

// HasCode reports whether an HTTP status is attached.
func (e *Error) HasCode() bool { return e != nil && e.Code != 0 }

// NotAuthenticated is raised before any network attempt when no access token is present.
func NotAuthenticated(message string) *Error {
	return &Error{Kind: KindNotAuthenticated, Message: message}
}

// Validation rejects local input before any call is made.
func Validation(field, message string) *Error {
	return &Error{Kind: KindValidation, Message: message, Field: field}
}

// Transport reports a failure that produced no HTTP response.
func Transport() *Error {
	return &Error{Kind: KindTransport, Message: MsgNetworkFailure}
}

// Server reports a non-2xx status.
func Server(status int, reason string) *Error {
	return &Error{
		Kind:    KindServer,
		Message: fmt.Sprintf("server error: %d %s", status, reason),
		Code:    status,
	}
}

// EmptyResponse reports a 2xx status without a usable body.
func EmptyResponse(status int) *Error {
	return &Error{Kind: KindEmptyResponse, Message: MsgEmptyResponse, Code: status}
}

// Unexpected wraps anything else.
func Unexpected(description string) *Error {
	return &Error{Kind: KindUnexpected, Message: "unexpected: " + description}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e != nil && e.Kind == kind
	}
	return false
}
