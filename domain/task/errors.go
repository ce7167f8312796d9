package task

import "errors"

// ErrNotFound indicates the task id does not resolve to a live record.
var ErrNotFound = errors.New("task not found")

// ValidationError reports caller-supplied data that violates a field
// constraint. The message is safe to return to the client.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError with the given message.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}
