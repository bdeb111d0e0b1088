// Package apperr holds the error taxonomy shared by services and handlers.
package apperr

import (
	"net/http"

	"github.com/cockroachdb/errors"
)

var (
	ErrValidation   = errors.New("validation error")
	ErrOwnership    = errors.New("ownership error")
	ErrConflict     = errors.New("conflict")
	ErrNotFound     = errors.New("not found")
	ErrDispatch     = errors.New("dispatch error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// Validation returns a validation error carrying msg as its user-facing reason.
func Validation(msg string) error {
	return errors.Mark(errors.New(msg), ErrValidation)
}

// Ownership returns an ownership error carrying msg.
func Ownership(msg string) error {
	return errors.Mark(errors.New(msg), ErrOwnership)
}

// Conflict returns a conflict error carrying msg.
func Conflict(msg string) error {
	return errors.Mark(errors.New(msg), ErrConflict)
}

// NotFound returns a not-found error carrying msg.
func NotFound(msg string) error {
	return errors.Mark(errors.New(msg), ErrNotFound)
}

// Unauthorized returns an authentication error carrying msg.
func Unauthorized(msg string) error {
	return errors.Mark(errors.New(msg), ErrUnauthorized)
}

// Forbidden returns a role error carrying msg.
func Forbidden(msg string) error {
	return errors.Mark(errors.New(msg), ErrForbidden)
}

// Dispatch wraps a notification channel failure.
func Dispatch(err error, msg string) error {
	if err == nil {
		return nil
	}
	return errors.Mark(errors.Wrap(err, msg), ErrDispatch)
}

// Mark tags err with one of the taxonomy sentinels.
func Mark(err error, kind error) error {
	if err == nil {
		return nil
	}
	return errors.Mark(err, kind)
}

// Wrap annotates err with msg, keeping any taxonomy mark.
func Wrap(err error, msg string) error {
	return errors.Wrap(err, msg)
}

// Is reports whether err carries kind.
func Is(err, kind error) bool {
	return errors.Is(err, kind)
}

// StatusFor maps an error to the HTTP status the API answers with.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrOwnership), errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the user-facing reason for err. Internal failures are not exposed.
func Message(err error) string {
	if StatusFor(err) == http.StatusInternalServerError {
		return "Server error"
	}
	// Report the innermost cause; wrappers only add context for logs.
	return errors.UnwrapAll(err).Error()
}
