package core

import "github.com/pkg/errors"

// FieldError pins a validation failure to one input field; the API error
// handler renders these as a field->message map.
type FieldError struct {
	Field string
	Error string
}

// ValidationError is the user-facing rejection of a submitted form. Err is
// the underlying cause; Fields carries the per-field breakdown and may be
// empty when only a general message applies.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{Err: err, Fields: flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// shutdown signals an unrecoverable fault; the server stops gracefully when
// one reaches the HTTP error handler.
type shutdown struct {
	msg string
}

func NewShutdownError(msg string) error {
	return &shutdown{msg: msg}
}

func (s shutdown) Error() string { return s.msg }

// IsShutdown reports whether err, or its cause, asks for a graceful stop.
func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
