// Package apperr provides typed domain errors for the service. The registry
// and migration engine return these, and the HTTP layer maps them to status
// codes in one place instead of sprinkling status decisions through handlers.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind categorizes a domain error for HTTP mapping.
type Kind int

const (
	// KindUnknown is the default when no kind was specified.
	KindUnknown Kind = iota
	// KindValidation indicates malformed or missing input.
	KindValidation
	// KindUnauthorized indicates authentication failed: bad or expired
	// token, or credentials mismatch at login. Causes are never
	// distinguished to the caller.
	KindUnauthorized
	// KindForbidden indicates an authenticated admin scoped to a
	// different organization than the one targeted.
	KindForbidden
	// KindNotFound indicates the organization does not exist.
	KindNotFound
	// KindConflict indicates a name-taken collision.
	KindConflict
	// KindInternal indicates an unexpected internal failure.
	KindInternal
	// KindUnavailable indicates the backing store could not be reached.
	KindUnavailable
)

// Error is a domain error with a Kind for HTTP mapping.
type Error struct {
	Kind    Kind
	Message string
	Err     error // underlying cause, logged but never rendered
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap supports errors.Is/errors.As on the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// HTTPStatus returns the status code for this error kind.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUnavailable:
		return http.StatusServiceUnavailable
	case KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// New creates a domain error with the given kind and message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates a domain error around an underlying cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Convenience constructors for the service's error taxonomy.

func Validation(message string) *Error   { return New(KindValidation, message) }
func Unauthorized(message string) *Error { return New(KindUnauthorized, message) }
func Forbidden(message string) *Error    { return New(KindForbidden, message) }
func NotFound(message string) *Error     { return New(KindNotFound, message) }
func Conflict(message string) *Error     { return New(KindConflict, message) }
func Internal(message string) *Error     { return New(KindInternal, message) }

// GetKind extracts the kind from err, unwrapping as needed.
// Returns KindUnknown for non-domain errors.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err is a domain error of the given kind.
func Is(err error, kind Kind) bool {
	return GetKind(err) == kind
}
