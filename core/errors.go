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
		if len(err.Fields) > 0 {
			return err.Fields[0].Field + ": " + err.Fields[0].Error
		}
		return ""
	}
	return err.Err.Error()
}

func IsValidation(err error) bool {
	_, ok := errors.Cause(err).(*ValidationError)
	return ok
}

type notFound struct {
	message string
}

// NewNotFoundError returns an error for a missing object. Packages keep the result as a sentinel.
func NewNotFoundError(msg string) error {
	return &notFound{message: msg}
}

func (nf notFound) Error() string {
	return nf.message
}

func IsNotFound(err error) bool {
	_, ok := errors.Cause(err).(*notFound)
	return ok
}

type stateConflict struct {
	message string
}

// NewStateError returns an error for an operation the object does not allow in its current state.
func NewStateError(msg string) error {
	return &stateConflict{message: msg}
}

func (sc stateConflict) Error() string {
	return sc.message
}

func IsStateConflict(err error) bool {
	_, ok := errors.Cause(err).(*stateConflict)
	return ok
}

type unavailable struct {
	message string
}

func NewUnavailableError(msg string) error {
	return &unavailable{message: msg}
}

func (u unavailable) Error() string {
	return u.message
}

func IsUnavailable(err error) bool {
	_, ok := errors.Cause(err).(*unavailable)
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
