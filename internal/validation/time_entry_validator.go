package validation

import (
	"fmt"

	"tztracker/internal/config"
	"tztracker/internal/timeutil"
)

// TimeEntryValidator provides validation for timer operations
type TimeEntryValidator struct {
	validator *Validator
}

// NewTimeEntryValidator creates a new time entry validator
func NewTimeEntryValidator() *TimeEntryValidator {
	return &TimeEntryValidator{validator: NewValidator()}
}

// NewTimeEntryValidatorWithConfig creates a time entry validator using configured limits
func NewTimeEntryValidatorWithConfig(cfg *config.Config) *TimeEntryValidator {
	return &TimeEntryValidator{validator: NewValidatorWithConfig(cfg)}
}

// ValidateStart validates the arguments of starting a timer
func (tev *TimeEntryValidator) ValidateStart(userID, projectID int64, taskID *int64, description string) error {
	validationError := NewValidationError()

	tev.checkIDs(validationError, userID, projectID, taskID)
	if !tev.validator.IsValidDescriptionLength(description) {
		validationError.AddInvalidLengthError("description", description, 0, tev.validator.descriptionMaxLength())
	}

	return validationError.Result()
}

// ValidateEntryID validates the target of pause, resume, stop and delete
func (tev *TimeEntryValidator) ValidateEntryID(userID, entryID int64) error {
	validationError := NewValidationError()

	if !tev.validator.IsValidID(userID) {
		validationError.AddInvalidValueError("user_id", userID, "must be a positive integer")
	}
	if !tev.validator.IsValidID(entryID) {
		validationError.AddInvalidValueError("entry_id", entryID, "must be a positive integer")
	}

	return validationError.Result()
}

// ValidateEdit validates an edit of an existing entry. Empty duration text
// is allowed and means "keep the stored duration".
func (tev *TimeEntryValidator) ValidateEdit(userID, entryID, projectID int64, taskID *int64, status, durationText, description string) error {
	validationError := NewValidationError()

	if !tev.validator.IsValidID(entryID) {
		validationError.AddInvalidValueError("entry_id", entryID, "must be a positive integer")
	}
	tev.checkIDs(validationError, userID, projectID, taskID)

	if !tev.validator.IsValidStatus(status) {
		validationError.AddInvalidValueError("status", status, "must be one of running, paused, completed")
	}
	if tev.validator.IsNonEmptyString(durationText) {
		switch {
		case !tev.validator.IsValidDurationText(durationText):
			validationError.AddInvalidFormatError("duration", durationText, "HH:MM:SS")
		case !tev.validator.IsDurationInRange(durationText):
			validationError.AddInvalidValueError("duration", durationText,
				fmt.Sprintf("must not exceed %s", timeutil.FormatDuration(timeutil.MaxDurationSeconds)))
		}
	}
	if !tev.validator.IsValidDescriptionLength(description) {
		validationError.AddInvalidLengthError("description", description, 0, tev.validator.descriptionMaxLength())
	}

	return validationError.Result()
}

func (tev *TimeEntryValidator) checkIDs(ve *ValidationError, userID, projectID int64, taskID *int64) {
	if !tev.validator.IsValidID(userID) {
		ve.AddInvalidValueError("user_id", userID, "must be a positive integer")
	}
	if !tev.validator.IsValidID(projectID) {
		ve.AddInvalidValueError("project_id", projectID, "must be a positive integer")
	}
	if taskID != nil && !tev.validator.IsValidID(*taskID) {
		ve.AddInvalidValueError("task_id", *taskID, "must be a positive integer")
	}
}
