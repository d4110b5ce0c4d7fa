package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failure that crosses the gateway boundary.
type ErrorKind string

const (
	KindSessionExpired ErrorKind = "session_expired"
	KindServer         ErrorKind = "server"
	KindNetwork        ErrorKind = "network"
	KindValidation     ErrorKind = "validation"
)

// User-facing messages. Screens match on some of these, keep the text stable.
const (
	MsgSessionExpired = "session expired, please sign in again."
	MsgNetwork        = "network error, check your connection."
	MsgValidation     = "please fill in the required fields."
)

// Error is the typed failure returned by the transport, the gateway and the
// forms. Message is always safe to show to the operator.
type Error struct {
	Kind    ErrorKind
	Message string
	// Status is the HTTP status when a response was received, 0 otherwise.
	Status int
	Cause  error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	switch e.Kind {
	case KindSessionExpired:
		return MsgSessionExpired
	case KindNetwork:
		return MsgNetwork
	case KindValidation:
		return MsgValidation
	default:
		return fmt.Sprintf("server error (status %d)", e.Status)
	}
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches on Kind, and on Message too when the target carries one, so
// both kind sentinels and specific sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Message == "" || t.Message == e.Message
}

// Kind sentinels.
var (
	ErrSessionExpired = &Error{Kind: KindSessionExpired}
	ErrServer         = &Error{Kind: KindServer}
	ErrNetwork        = &Error{Kind: KindNetwork}
	ErrValidation     = &Error{Kind: KindValidation}
)

var (
	ErrOwnerImmutable = &Error{Kind: KindValidation, Message: "the owner's role cannot be changed."}
	ErrInvalidStatus  = &Error{Kind: KindValidation, Message: "unknown order status."}
	ErrInvalidRole    = &Error{Kind: KindValidation, Message: "unknown role."}
)

// NewSessionExpired builds the failure for an HTTP 401.
func NewSessionExpired() *Error {
	return &Error{Kind: KindSessionExpired, Message: MsgSessionExpired, Status: 401}
}

// NewServerError builds the failure for any other non-2xx response. An empty
// message is replaced by a generic one naming the status code.
func NewServerError(status int, message string) *Error {
	if message == "" {
		message = fmt.Sprintf("server error (status %d)", status)
	}
	return &Error{Kind: KindServer, Message: message, Status: status}
}

// NewNetworkError builds the failure for a request that got no response.
func NewNetworkError(cause error) *Error {
	return &Error{Kind: KindNetwork, Message: MsgNetwork, Cause: cause}
}

// NewValidationError builds a client-side validation failure.
func NewValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// KindOf returns the kind of err, or "" when err is not a *Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
