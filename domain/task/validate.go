package task

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Field length limits, enforced by the service before any store call.
const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 500
)

// ValidateTitle validates a task title after trimming surrounding
// whitespace.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return NewValidationError("Title is required and must be a non-empty string")
	}
	if utf8.RuneCountInString(strings.TrimSpace(title)) > MaxTitleLength {
		return NewValidationError(fmt.Sprintf("Title cannot exceed %d characters", MaxTitleLength))
	}
	return nil
}

// ValidateDescription validates an optional task description after
// trimming. An empty description is valid.
func ValidateDescription(description string) error {
	if utf8.RuneCountInString(strings.TrimSpace(description)) > MaxDescriptionLength {
		return NewValidationError(fmt.Sprintf("Description cannot exceed %d characters", MaxDescriptionLength))
	}
	return nil
}

// ValidateStatus validates a status value against the enumeration.
func ValidateStatus(status string) error {
	if status == "" {
		return NewValidationError("Status is required and must be a string")
	}
	if !Status(status).Valid() {
		names := make([]string, 0, len(Statuses))
		for _, s := range Statuses {
			names = append(names, string(s))
		}
		return NewValidationError("Invalid status. Valid statuses: " + strings.Join(names, ", "))
	}
	return nil
}
