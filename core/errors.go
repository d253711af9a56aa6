package core

import "github.com/pkg/errors"

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// NotFoundError indicates that a referenced entity does not exist
// (or is not visible to the caller).
type NotFoundError struct {
	message string
}

func NewNotFoundError(msg string) error {
	return &NotFoundError{message: msg}
}

func (err NotFoundError) Error() string {
	return err.message
}

func IsNotFound(err error) bool {
	_, ok := errors.Cause(err).(*NotFoundError)
	return ok
}

// ConflictError indicates a uniqueness invariant violation.
type ConflictError struct {
	message string
}

func NewConflictError(msg string) error {
	return &ConflictError{message: msg}
}

func (err ConflictError) Error() string {
	return err.message
}

func IsConflict(err error) bool {
	_, ok := errors.Cause(err).(*ConflictError)
	return ok
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
