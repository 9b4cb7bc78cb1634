package errors

import (
	"fmt"
)

// ErrorType represents the category of error
type ErrorType int

const (
	ErrorTypeValidation ErrorType = iota
	ErrorTypeNotFound
	ErrorTypeDatabase
	ErrorTypeInvalidInput
	ErrorTypeTimeout
	ErrorTypeInvalidTimezone
	ErrorTypeMalformedDuration
	ErrorTypeNotApplicable
	ErrorTypeInvariantViolation
)

type typeInfo struct {
	name string
	code string
}

var typeTable = map[ErrorType]typeInfo{
	ErrorTypeValidation:         {"validation", "VALIDATION_FAILED"},
	ErrorTypeNotFound:           {"not_found", "NOT_FOUND"},
	ErrorTypeDatabase:           {"database", "DATABASE_ERROR"},
	ErrorTypeInvalidInput:       {"invalid_input", "INVALID_INPUT"},
	ErrorTypeTimeout:            {"timeout", "TIMEOUT"},
	ErrorTypeInvalidTimezone:    {"invalid_timezone", "INVALID_TIMEZONE"},
	ErrorTypeMalformedDuration:  {"malformed_duration", "MALFORMED_DURATION"},
	ErrorTypeNotApplicable:      {"not_applicable", "NOT_APPLICABLE"},
	ErrorTypeInvariantViolation: {"invariant_violation", "INVARIANT_VIOLATION"},
}

// String returns the string representation of the error type
func (et ErrorType) String() string {
	if info, ok := typeTable[et]; ok {
		return info.name
	}
	return "unknown"
}

// Code returns the stable machine-readable code for the type.
func (et ErrorType) Code() string {
	if info, ok := typeTable[et]; ok {
		return info.code
	}
	return "UNKNOWN_ERROR"
}

// AppError is the structured error returned by every layer below the CLI.
type AppError struct {
	Type    ErrorType
	Message string
	Code    string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type.String(), e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type.String(), e.Message)
}

// Unwrap returns the underlying error for error unwrapping
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an AppError with the same type and code.
func (e *AppError) Is(target error) bool {
	if appErr, ok := target.(*AppError); ok {
		return e.Type == appErr.Type && e.Code == appErr.Code
	}
	return false
}

// IsType checks if this error is of the specified type
func (e *AppError) IsType(errorType ErrorType) bool {
	return e.Type == errorType
}

// WithContext adds context information to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// GetContext retrieves context information from the error
func (e *AppError) GetContext(key string) (interface{}, bool) {
	if e.Context == nil {
		return nil, false
	}
	value, exists := e.Context[key]
	return value, exists
}
