package store

import (
	"errors"
	"fmt"
)

// Returned (wrapped with the offending id) when no record exists for a
// content ID. Callers check with errors.Is.
var ErrNotFound = errors.New("content not found")

// Describes a store call with a missing required metadata field. Never
// retried; the caller sent bad input.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("metadata must include %q", e.Field)
}
