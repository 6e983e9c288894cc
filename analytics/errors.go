package analytics

import (
	"errors"
	"fmt"
)

// ErrValidation marks a record set whose shape does not match the yield collection.
var ErrValidation = errors.New("invalid yield data")

// ValidationError names the field that was expected but not found.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %q not found in records", e.Field)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
