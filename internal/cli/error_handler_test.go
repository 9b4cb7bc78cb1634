package cli

import (
	"errors"
	"testing"

	apperrors "tztracker/internal/errors"
	"tztracker/internal/validation"
)

func TestErrorHandler_Handle(t *testing.T) {
	eh := NewErrorHandler()

	tests := []struct {
		name      string
		operation string
		err       error
		expected  string
	}{
		{
			name:      "Validation error",
			operation: "create user",
			err:       apperrors.NewValidationError("invalid input", nil),
			expected:  "failed to create user: invalid input",
		},
		{
			name:      "Not found error",
			operation: "get user",
			err:       apperrors.NewNotFoundError("user", "123"),
			expected:  "failed to get user: user not found: 123",
		},
		{
			name:      "Database error",
			operation: "save user",
			err:       apperrors.NewDatabaseError("insert", errors.New("timeout")),
			expected:  "failed to save user: A database error occurred. Please try again.",
		},
		{
			name:      "Not applicable transition",
			operation: "stop timer",
			err:       apperrors.NewNotApplicableError("stop", "completed"),
			expected:  "failed to stop timer: cannot stop a completed timer",
		},
		{
			name:      "Second running timer",
			operation: "edit entry",
			err:       apperrors.NewInvariantViolationError("one running timer per user", nil),
			expected:  "failed to edit entry: Another timer is already running. Stop it first.",
		},
		{
			name:      "Regular error",
			operation: "process",
			err:       errors.New("regular error"),
			expected:  "failed to process: regular error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := eh.Handle(tt.operation, tt.err)
			if result.Error() != tt.expected {
				t.Errorf("ErrorHandler.Handle() = %v, want %v", result.Error(), tt.expected)
			}
		})
	}
}

func TestErrorHandler_HandleSimple(t *testing.T) {
	eh := NewErrorHandler()

	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Validation error",
			err:      apperrors.NewValidationError("invalid input", nil),
			expected: "invalid input",
		},
		{
			name:     "Not found error",
			err:      apperrors.NewNotFoundError("user", "123"),
			expected: "user not found: 123",
		},
		{
			name:     "Database error",
			err:      apperrors.NewDatabaseError("insert", errors.New("timeout")),
			expected: "A database error occurred. Please try again.",
		},
		{
			name:     "Usage error",
			err:      apperrors.NewInvalidInputError("command", "resume", "usage: tzt resume <entry-id>"),
			expected: "invalid input for command: usage: tzt resume <entry-id>",
		},
		{
			name:     "Unknown timezone",
			err:      apperrors.NewInvalidTimezoneError("Mars/Olympus", nil),
			expected: `unknown timezone: "Mars/Olympus"`,
		},
		{
			name:     "Already rendered error passes through",
			err:      errors.New("failed to stop timer: entry not found: 3"),
			expected: "failed to stop timer: entry not found: 3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := eh.HandleSimple(tt.err)
			if result.Error() != tt.expected {
				t.Errorf("ErrorHandler.HandleSimple() = %v, want %v", result.Error(), tt.expected)
			}
		})
	}
}

func TestErrorHandler_HandleValidationError(t *testing.T) {
	eh := NewErrorHandler()

	ve := validation.NewValidationError()
	ve.AddRequiredError("project_name")
	ve.AddInvalidFormatError("color", "red", "#rrggbb")

	result := eh.Handle("create project", ve)
	expected := "failed to create project: Multiple validation errors occurred:\n- project_name is required\n- color has invalid format, expected: #rrggbb"
	if result.Error() != expected {
		t.Errorf("ErrorHandler.Handle() with field errors = %q, want %q", result.Error(), expected)
	}

	// Wrapped in an AppError by Result, the rendered message is the same.
	if got := eh.Handle("create project", ve.Result()); got.Error() != expected {
		t.Errorf("ErrorHandler.Handle() with Result() = %q, want %q", got.Error(), expected)
	}
}

func TestErrorHandler_HandleNilError(t *testing.T) {
	eh := NewErrorHandler()

	if result := eh.Handle("test operation", nil); result != nil {
		t.Errorf("ErrorHandler.Handle() with nil error = %v, want nil", result)
	}
	if result := eh.HandleSimple(nil); result != nil {
		t.Errorf("ErrorHandler.HandleSimple() with nil error = %v, want nil", result)
	}
}
