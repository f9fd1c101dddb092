// Package apperr defines the error type used across ontask
package apperr

import (
	"errors"
	"fmt"
)

// Error is an application error with a (possibly templated) message.
type Error struct {
	Cause   error
	Message string
	Context []any
}

func (e *Error) Error() string {
	msg := e.Message
	if len(e.Context) > 0 {
		msg = fmt.Sprintf(e.Message, e.Context...)
	}

	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}

	return msg
}

// Fmt returns a copy of the error with its message arguments set.
func (e *Error) Fmt(args ...any) *Error {
	return &Error{
		Message: e.Message,
		Context: args,
		Cause:   e.Cause,
	}
}

// Wrap returns a copy of the error that wraps err.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		Message: e.Message,
		Context: e.Context,
		Cause:   err,
	}
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is derived from the same sentinel as e.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}

	return e.Message == t.Message
}
