package entity

import (
	"errors"
	"fmt"
)

// ErrValidationFailed matches every ValidationError through errors.Is.
var ErrValidationFailed = errors.New("validation failed")

// ValidationError reports which field of an input failed validation.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// Is lets callers test for any validation failure with errors.Is(err, ErrValidationFailed).
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}
