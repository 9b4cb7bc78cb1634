package errors

import (
	"errors"
	"fmt"
)

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Code:    ErrorTypeValidation.Code(),
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, identifier string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, identifier),
		Code:    ErrorTypeNotFound.Code(),
		Context: map[string]interface{}{
			"resource":   resource,
			"identifier": identifier,
		},
	}
}

// NewDatabaseError creates a new database error
func NewDatabaseError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeDatabase,
		Message: fmt.Sprintf("database operation failed: %s", operation),
		Code:    ErrorTypeDatabase.Code(),
		Cause:   cause,
		Context: map[string]interface{}{
			"operation": operation,
		},
	}
}

// NewInvalidInputError creates a new invalid input error
func NewInvalidInputError(field string, value interface{}, reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidInput,
		Message: fmt.Sprintf("invalid input for %s: %s", field, reason),
		Code:    ErrorTypeInvalidInput.Code(),
		Context: map[string]interface{}{
			"field":  field,
			"value":  value,
			"reason": reason,
		},
	}
}

// NewTimeoutError creates a new timeout error
func NewTimeoutError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeTimeout,
		Message: fmt.Sprintf("operation timed out: %s", operation),
		Code:    ErrorTypeTimeout.Code(),
		Cause:   cause,
		Context: map[string]interface{}{
			"operation": operation,
		},
	}
}

// NewInvalidTimezoneError reports a zone name that is not a known IANA identifier.
func NewInvalidTimezoneError(zone string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidTimezone,
		Message: fmt.Sprintf("unknown timezone: %q", zone),
		Code:    ErrorTypeInvalidTimezone.Code(),
		Cause:   cause,
		Context: map[string]interface{}{
			"timezone": zone,
		},
	}
}

// NewMalformedDurationError reports duration text that is not HH:MM:SS.
func NewMalformedDurationError(text string, reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeMalformedDuration,
		Message: fmt.Sprintf("malformed duration %q: %s", text, reason),
		Code:    ErrorTypeMalformedDuration.Code(),
		Context: map[string]interface{}{
			"text":   text,
			"reason": reason,
		},
	}
}

// NewNotApplicableError reports a timer transition whose precondition does not hold.
// The entry is left unchanged.
func NewNotApplicableError(operation string, status string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotApplicable,
		Message: fmt.Sprintf("cannot %s a %s timer", operation, status),
		Code:    ErrorTypeNotApplicable.Code(),
		Context: map[string]interface{}{
			"operation": operation,
			"status":    status,
		},
	}
}

// NewInvariantViolationError reports a write that would break a data invariant.
func NewInvariantViolationError(invariant string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeInvariantViolation,
		Message: fmt.Sprintf("invariant violated: %s", invariant),
		Code:    ErrorTypeInvariantViolation.Code(),
		Cause:   cause,
		Context: map[string]interface{}{
			"invariant": invariant,
		},
	}
}

// WrapError wraps an existing error with additional context
func WrapError(err error, errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Code:    errorType.Code(),
		Cause:   err,
		Context: make(map[string]interface{}),
	}
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.IsType(errorType)
	}
	return false
}

// IsNotFound is shorthand for IsErrorType(err, ErrorTypeNotFound).
func IsNotFound(err error) bool {
	return IsErrorType(err, ErrorTypeNotFound)
}

// IsNotApplicable is shorthand for IsErrorType(err, ErrorTypeNotApplicable).
func IsNotApplicable(err error) bool {
	return IsErrorType(err, ErrorTypeNotApplicable)
}

// GetUserMessage returns a user-friendly error message
func GetUserMessage(err error) string {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation,
			ErrorTypeNotFound,
			ErrorTypeInvalidInput,
			ErrorTypeInvalidTimezone,
			ErrorTypeMalformedDuration,
			ErrorTypeNotApplicable:
			return appErr.Message
		case ErrorTypeInvariantViolation:
			return "Another timer is already running. Stop it first."
		case ErrorTypeDatabase:
			return "A database error occurred. Please try again."
		case ErrorTypeTimeout:
			return "The operation timed out. Please try again."
		default:
			return "An unexpected error occurred. Please try again."
		}
	}
	return err.Error()
}

// GetErrorCode returns the error code for the error
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return ErrorType(-1).Code()
}

// ShouldLogError determines if an error should be logged based on its type
func ShouldLogError(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInvalidInput,
			ErrorTypeInvalidTimezone, ErrorTypeMalformedDuration, ErrorTypeNotApplicable:
			return false
		default:
			return true
		}
	}
	return true
}
