// Package validate holds the error type services return when a request
// fails a semantic check. The message is written by the service and is safe
// to show to API clients; transports map it to a 4xx status, while any other
// error class stays server-side.
package validate

import (
	"errors"
	"fmt"
)

// Error is a rejected-input error. Services construct these for fields and
// values the caller can fix; repositories never return them.
type Error struct {
	msg string
}

func (e *Error) Error() string { return e.msg }

// New returns a validation error with a fixed message. Package-level
// sentinels built with New keep their identity under errors.Is.
func New(msg string) error {
	return &Error{msg: msg}
}

// Errorf returns a formatted validation error.
func Errorf(format string, args ...any) error {
	return &Error{msg: fmt.Sprintf(format, args...)}
}

// Invalid reports whether err, or anything it wraps, is a validation error.
func Invalid(err error) bool {
	var ve *Error
	return errors.As(err, &ve)
}
