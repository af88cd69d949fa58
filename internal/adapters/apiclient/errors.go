package apiclient

import (
	"context"
	"errors"
)

// Sentinel kinds for client errors.
var (
	ErrInvalidBaseURL = errors.New("invalid api base url")
	ErrDecode         = errors.New("invalid response body")
)

// DefaultErrorMessage is used when a failed call carries no server error body.
const DefaultErrorMessage = "Network error"

// Kind classifies why a backend call failed.
type Kind int

const (
	// KindNetwork covers transport failures: DNS, refused connections, timeouts.
	KindNetwork Kind = iota + 1
	// KindHTTPStatus is a non-2xx response.
	KindHTTPStatus
	// KindApplication is a well-formed response the backend marked as failed
	// or a body that could not be decoded.
	KindApplication
	// KindCanceled means the caller's context ended before the call resolved.
	KindCanceled
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindHTTPStatus:
		return "http_status"
	case KindApplication:
		return "application"
	case KindCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Error is the normalized failure every facade returns.
type Error struct {
	Kind    Kind
	Status  int    // HTTP status for KindHTTPStatus
	Message string // server "error" field, DefaultErrorMessage, or empty
	Body    []byte // raw error body, if any
	Cause   error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return DefaultErrorMessage
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// UserMessage returns the message suitable for display.
func (e *Error) UserMessage() string { return e.Message }

// Is lets errors.Is match on kind: errors.Is(err, &Error{Kind: KindNetwork}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Status == 0 || t.Status == e.Status)
}

// MessageOf returns the normalized message carried by err, or "" when err is
// not an *Error or carries no message.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return ""
}

// IsCanceled reports whether err stems from the caller's context ending.
func IsCanceled(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == KindCanceled
	}
	return errors.Is(err, context.Canceled)
}

// ApplicationError builds the error for an envelope with success=false.
func ApplicationError(message string) *Error {
	if message == "" {
		message = DefaultErrorMessage
	}
	return &Error{Kind: KindApplication, Message: message}
}
