package errors

import (
	"errors"
	"net/http"
)

// Kind classifies an AppError for the HTTP boundary.
type Kind string

const (
	KindValidation       Kind = "validation"
	KindNotAuthenticated Kind = "not_authenticated"
	KindForbidden        Kind = "forbidden"
	KindNotFound         Kind = "not_found"
	KindConflict         Kind = "conflict"
	KindInternal         Kind = "internal"
)

// AppError is the single error currency between services and the HTTP layer.
// IsOperational marks errors whose message is safe to show a client;
// everything else renders as a generic 500 in production.
type AppError struct {
	Kind          Kind
	StatusCode    int
	Message       string
	IsOperational bool
	cause         error
}

func (e *AppError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *AppError) Unwrap() error {
	return e.cause
}

// WithCause attaches the underlying error without changing what the client sees.
func (e *AppError) WithCause(err error) *AppError {
	clone := *e
	clone.cause = err
	return &clone
}

// New creates an operational AppError of the given kind.
func New(kind Kind, statusCode int, message string) *AppError {
	return &AppError{
		Kind:          kind,
		StatusCode:    statusCode,
		Message:       message,
		IsOperational: true,
	}
}

// Validation is a 400 for missing or malformed input.
func Validation(message string) *AppError {
	return New(KindValidation, http.StatusBadRequest, message)
}

// NotAuthenticated is a 401. Messages stay generic so the response never
// reveals which part of a credential was wrong.
func NotAuthenticated(message string) *AppError {
	return New(KindNotAuthenticated, http.StatusUnauthorized, message)
}

// Forbidden is a 403 for an authenticated identity lacking the required role.
func Forbidden(message string) *AppError {
	return New(KindForbidden, http.StatusForbidden, message)
}

// NotFound is a 404.
func NotFound(message string) *AppError {
	return New(KindNotFound, http.StatusNotFound, message)
}

// Conflict is a 409, e.g. signing up with an email already in use.
func Conflict(message string) *AppError {
	return New(KindConflict, http.StatusConflict, message)
}

// Internal wraps an unexpected failure. Not operational: the cause is logged
// server-side and suppressed from clients in production.
func Internal(err error) *AppError {
	return &AppError{
		Kind:          KindInternal,
		StatusCode:    http.StatusInternalServerError,
		Message:       "something went wrong",
		IsOperational: false,
		cause:         err,
	}
}

// AsAppError extracts an *AppError from an error chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
