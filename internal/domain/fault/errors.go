package fault

import (
	"errors"
	"fmt"
)

var (
	// ErrFaultNotFound indicates the fault doesn't exist.
	ErrFaultNotFound = errors.New("fault not found")
	// ErrValidation indicates malformed or missing create input.
	ErrValidation = errors.New("invalid fault input")
	// ErrInvalidTransition indicates a status outside the lifecycle states.
	ErrInvalidTransition = errors.New("invalid fault status transition")
	// ErrDuplicateID indicates a bulk load carried an id already held.
	ErrDuplicateID = errors.New("duplicate fault id")
)

// ValidationError describes the first field that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrValidation, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
