package errors

import (
	"errors"
	"testing"
)

func TestErrorType_String(t *testing.T) {
	tests := []struct {
		name      string
		errorType ErrorType
		expected  string
	}{
		{"Validation", ErrorTypeValidation, "validation"},
		{"NotFound", ErrorTypeNotFound, "not_found"},
		{"Database", ErrorTypeDatabase, "database"},
		{"InvalidInput", ErrorTypeInvalidInput, "invalid_input"},
		{"Timeout", ErrorTypeTimeout, "timeout"},
		{"InvalidTimezone", ErrorTypeInvalidTimezone, "invalid_timezone"},
		{"MalformedDuration", ErrorTypeMalformedDuration, "malformed_duration"},
		{"NotApplicable", ErrorTypeNotApplicable, "not_applicable"},
		{"InvariantViolation", ErrorTypeInvariantViolation, "invariant_violation"},
		{"Unknown", ErrorType(999), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.errorType.String()
			if result != tt.expected {
				t.Errorf("ErrorType.String() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestErrorType_Code(t *testing.T) {
	tests := []struct {
		errorType ErrorType
		expected  string
	}{
		{ErrorTypeValidation, "VALIDATION_FAILED"},
		{ErrorTypeDatabase, "DATABASE_ERROR"},
		{ErrorTypeNotApplicable, "NOT_APPLICABLE"},
		{ErrorTypeInvariantViolation, "INVARIANT_VIOLATION"},
		{ErrorType(999), "UNKNOWN_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.errorType.Code(); got != tt.expected {
				t.Errorf("ErrorType.Code() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appError *AppError
		expected string
	}{
		{
			name: "Error without cause",
			appError: &AppError{
				Type:    ErrorTypeNotApplicable,
				Message: "cannot pause a completed timer",
			},
			expected: "not_applicable: cannot pause a completed timer",
		},
		{
			name: "Error with cause",
			appError: &AppError{
				Type:    ErrorTypeDatabase,
				Message: "connection failed",
				Cause:   errors.New("busy"),
			},
			expected: "database: connection failed (caused by: busy)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.appError.Error()
			if result != tt.expected {
				t.Errorf("AppError.Error() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("original error")
	appError := NewInvalidTimezoneError("Mars/Olympus", cause)

	if !errors.Is(appError, cause) {
		t.Errorf("errors.Is should find the cause through Unwrap")
	}
}

func TestAppError_Is(t *testing.T) {
	a := NewNotFoundError("time entry", "1")
	b := NewNotFoundError("project", "2")
	c := NewDatabaseError("insert", nil)

	if !errors.Is(a, b) {
		t.Errorf("errors with same type and code should match")
	}
	if errors.Is(a, c) {
		t.Errorf("errors with different types should not match")
	}
}

func TestAppError_Context(t *testing.T) {
	err := &AppError{Type: ErrorTypeValidation}

	if _, ok := err.GetContext("missing"); ok {
		t.Errorf("GetContext should report missing key on nil context")
	}

	err.WithContext("entry_id", int64(7))
	value, ok := err.GetContext("entry_id")
	if !ok || value != int64(7) {
		t.Errorf("WithContext should store value, got %v", value)
	}
}
