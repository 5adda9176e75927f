package domain

import (
	"errors"
	"fmt"
)

// Error categories shared across the application.
var (
	// ErrValidation is returned when input is missing, malformed or outside
	// its enumeration. This is usually wrapped with a more specific error.
	ErrValidation = errors.New("validation failed")

	// ErrConflict is returned when valid input cannot be applied to the
	// current state, such as a deadline that has already passed.
	ErrConflict = errors.New("conflict")
)

// Task validation errors.
var (
	// ErrMissingField is returned when a required task field is empty.
	ErrMissingField = fmt.Errorf("%w: missing field", ErrValidation)

	// ErrInvalidPriority is returned for a priority outside HIGH, MEDIUM, LOW.
	ErrInvalidPriority = fmt.Errorf("%w: invalid priority", ErrValidation)

	// ErrInvalidPriorityFilter is returned for a filter outside ALL, HIGH, MEDIUM, LOW.
	ErrInvalidPriorityFilter = fmt.Errorf("%w: invalid priority filter", ErrValidation)

	// ErrInvalidSortKey is returned for a sort key outside ID, DEADLINE, TITLE.
	ErrInvalidSortKey = fmt.Errorf("%w: invalid sort key", ErrValidation)

	// ErrEmptyKeyword is returned when a search is made without a keyword.
	ErrEmptyKeyword = fmt.Errorf("%w: keyword required", ErrValidation)

	// ErrDeadlinePassed is returned when a task is created with a deadline
	// that is not strictly in the future.
	ErrDeadlinePassed = fmt.Errorf("%w: deadline already passed", ErrConflict)
)

// ValidationError carries the offending field alongside the validation cause.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Field, e.Message, e.Err)
	}
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}
