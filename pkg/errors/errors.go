// Package errors defines the error kinds services return to handlers.
package errors

import "errors"

var (
	ErrNotFound     = errors.New("resource not found")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("validation failed")
	ErrDuplicate    = errors.New("resource already exists")
	ErrInternal     = errors.New("internal server error")
)
