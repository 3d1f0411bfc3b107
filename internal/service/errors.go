// Package service implements the application's business operations on top
// of the storage layer.
package service

import (
	"errors"
	"fmt"
)

// ErrNotFound marks lookups for records that do not exist or belong to
// another user. Handlers translate it to 404.
var ErrNotFound = errors.New("not found")

// ErrRecognition marks failures of the external text-recognition service.
// The bill can still be entered manually, so handlers report it as a bad
// gateway rather than an internal error.
var ErrRecognition = errors.New("text recognition failed")

// ValidationError marks caller mistakes that should be reported back to the
// user with a field-level message. Handlers translate it to 400.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func validationf(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a user-input problem.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
