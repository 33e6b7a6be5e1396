package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("channels must not be empty")
	assert.EqualError(t, err, "validation error: channels must not be empty")

	wrapped := fmt.Errorf("create rule: %w", err)
	var validationErr ValidationError
	assert.True(t, errors.As(wrapped, &validationErr))
	assert.Equal(t, "channels must not be empty", validationErr.Message)
}

func TestErrNotificationRuleNotFound(t *testing.T) {
	var err error = &ErrNotificationRuleNotFound{Message: "notification rule not found"}
	assert.EqualError(t, err, "notification rule not found")

	var notFound *ErrNotificationRuleNotFound
	assert.True(t, errors.As(fmt.Errorf("get: %w", err), &notFound))
}

func TestErrCompileDisabled(t *testing.T) {
	assert.ErrorIs(t, fmt.Errorf("compile: %w", ErrCompileDisabled), ErrCompileDisabled)
}
