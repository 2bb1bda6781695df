package types

import (
	"errors"
	"fmt"
)

// Repository lookup errors. Absent entities are reported with sentinels,
// never with a ValidationError.
var (
	ErrNotFound = errors.New("not found")
)

// Handler registry errors. These indicate a configuration fault at startup
// or a malformed creation request, not a user-recoverable condition.
var (
	ErrHandlerRegistered = errors.New("handler already registered")
	ErrHandlerNotFound   = errors.New("no handler registered for type")
)

// ValidationError reports a value or request that failed validation. The
// message is human-readable and safe to return to clients. Callers match it
// with errors.As.
type ValidationError struct {
	msg string
}

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// Error returns the validation message.
func (e *ValidationError) Error() string {
	return e.msg
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
