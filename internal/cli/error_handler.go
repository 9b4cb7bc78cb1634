package cli

import (
	stderrors "errors"
	"fmt"

	"tztracker/internal/errors"
	"tztracker/internal/logging"
	"tztracker/internal/validation"
)

// ErrorHandler provides centralized error handling for command handlers
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle turns err into a user-facing error prefixed with the failed
// operation. Unexpected errors are logged with their full cause chain.
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if err == nil {
		return nil
	}
	if errors.ShouldLogError(err) {
		logging.Debugf("%s failed [%s]: %v\n", operation, errors.GetErrorCode(err), err)
	}
	return fmt.Errorf("failed to %s: %s", operation, eh.message(err))
}

// HandleSimple returns the user-facing message without operation context.
// Errors already rendered by Handle pass through unchanged.
func (eh *ErrorHandler) HandleSimple(err error) error {
	if err == nil {
		return nil
	}
	if !errors.IsAppError(err) && !validation.IsValidationError(err) {
		return err
	}
	return fmt.Errorf("%s", eh.message(err))
}

func (eh *ErrorHandler) message(err error) string {
	var validationErr *validation.ValidationError
	if stderrors.As(err, &validationErr) && !errors.IsAppError(err) {
		return validationErr.GetUserFriendlyMessage()
	}
	return errors.GetUserMessage(err)
}
