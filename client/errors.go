package client

import (
	"context"
	"errors"

	"github.com/quillfeed/quillfeed/blog"
)

// Error is the uniform failure shape every content API operation returns.
// Message always holds a human-readable description; Code and Status are set
// when the backend supplied them.
type Error struct {
	Message string
	Code    string
	Status  int

	cause error
}

func (e *Error) Error() string {
	if e.Code != "" {
		return "client: " + e.Message + " (" + e.Code + ")"
	}
	return "client: " + e.Message
}

// Unwrap exposes the transport-level cause so cancellation checks see
// through the normalized shape.
func (e *Error) Unwrap() error { return e.cause }

// newTransportError wraps a network-level failure that carries no HTTP
// status.
func newTransportError(err error) *Error {
	return &Error{Message: err.Error(), cause: err}
}

// newAPIError builds the normalized error for a failed envelope or non-2xx
// response, preferring the envelope's nested error object.
func newAPIError(status int, envErr *blog.EnvelopeError, fallback string) *Error {
	e := &Error{Status: status, Message: fallback}
	if envErr != nil && envErr.Message != "" {
		e.Message = envErr.Message
		e.Code = envErr.Code
	}
	if e.Message == "" {
		e.Message = "request failed"
	}
	return e
}

// IsCanceled reports whether the failure was a context cancellation rather
// than a real error. Consumers swallow these silently; a canceled fetch must
// never surface as a user-visible failure.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}
