// Package apperr defines the status-coded error type shared by repositories,
// services, and HTTP handlers. Core logic returns an *Error with the HTTP
// status it should surface as; the handler layer maps anything else to a
// generic 500.
package apperr

import (
	"errors"
	"net/http"
)

// Error carries an HTTP status code alongside a client-safe message.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return e.Message
}

// New constructs an Error with an arbitrary status code.
func New(status int, message string) *Error {
	return &Error{StatusCode: status, Message: message}
}

// BadRequest flags validation and business-rule violations.
func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message)
}

// NotFound flags a missing or soft-deleted entity. Surfaced as 400, matching
// the API contract where lookups by client-supplied IDs are treated as bad
// input rather than missing resources.
func NotFound(message string) *Error {
	return New(http.StatusBadRequest, message)
}

// Conflict flags a state transition that contradicts current state.
func Conflict(message string) *Error {
	return New(http.StatusConflict, message)
}

// Unauthorized flags missing or invalid credentials.
func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

// Forbidden flags a failed verification-token check.
func Forbidden(message string) *Error {
	return New(http.StatusForbidden, message)
}

// From extracts an *Error from err, or nil if err carries no status code.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}
