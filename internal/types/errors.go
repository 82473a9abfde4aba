package types

import (
	"errors"
	"fmt"
)

// Expected outcomes of normal usage. None of them is fatal; the HTTP layer
// turns each into a status code and a message.
var (
	// ErrNotFound means the target record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrSlotConflict means the requested time slot is already booked.
	ErrSlotConflict = errors.New("slot not available")
)

// ValidationError reports missing or malformed required input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
