package domain

import (
	"errors"
	"fmt"
)

// ValidationError represents an error that occurs due to invalid input or parameters
type ValidationError struct {
	Message string
}

// Error implements the error interface
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s", e.Message)
}

// NewValidationError creates a new validation error with the given message
func NewValidationError(message string) error {
	return ValidationError{
		Message: message,
	}
}

// ErrNotificationRuleNotFound is returned when a notification rule does not exist
type ErrNotificationRuleNotFound struct {
	Message string
}

func (e *ErrNotificationRuleNotFound) Error() string {
	return e.Message
}

// ErrCompileDisabled is returned when email compilation is switched off
var ErrCompileDisabled = errors.New("email compilation is disabled")
