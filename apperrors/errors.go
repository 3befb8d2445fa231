package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound signals that the requested record does not exist or is not
// visible to the caller.
var ErrNotFound = errors.New("not found")

// ValidationError reports a missing, malformed or over-length field on
// client input. Field names the offending wire field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidation builds a ValidationError for the given wire field.
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
