package validation

import (
	"net/mail"

	"tztracker/internal/config"
)

// CatalogValidator validates users, projects and tasks
type CatalogValidator struct {
	validator *Validator
}

// NewCatalogValidator creates a new catalog validator
func NewCatalogValidator() *CatalogValidator {
	return &CatalogValidator{validator: NewValidator()}
}

// NewCatalogValidatorWithConfig creates a catalog validator using configured limits
func NewCatalogValidatorWithConfig(cfg *config.Config) *CatalogValidator {
	return &CatalogValidator{validator: NewValidatorWithConfig(cfg)}
}

// ValidateUser validates a username, optional email and timezone
func (cv *CatalogValidator) ValidateUser(username, email, timezone string) error {
	validationError := NewValidationError()

	trimmed := cv.validator.TrimAndValidateString(username)
	if !cv.validator.IsNonEmptyString(trimmed) {
		validationError.AddRequiredError("username")
	} else if !cv.validator.IsValidUsername(trimmed) {
		validationError.AddInvalidCharacterError("username", trimmed)
	}

	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			validationError.AddInvalidFormatError("email", email, "name@example.com")
		}
	}

	if !cv.validator.IsValidTimezone(timezone) {
		validationError.AddInvalidValueError("timezone", timezone, "must be an IANA timezone name")
	}

	return validationError.Result()
}

// ValidateProject validates a project name, description and color. An
// empty color is allowed and means the default.
func (cv *CatalogValidator) ValidateProject(userID int64, name, description, color string) error {
	validationError := NewValidationError()

	if !cv.validator.IsValidID(userID) {
		validationError.AddInvalidValueError("user_id", userID, "must be a positive integer")
	}
	cv.checkName(validationError, "project_name", name)
	if !cv.validator.IsValidDescriptionLength(description) {
		validationError.AddInvalidLengthError("description", description, 0, cv.validator.descriptionMaxLength())
	}
	if color != "" && !cv.validator.IsValidHexColor(color) {
		validationError.AddInvalidFormatError("color", color, "#rrggbb")
	}

	return validationError.Result()
}

// ValidateTask validates a task name and description
func (cv *CatalogValidator) ValidateTask(projectID int64, name, description string) error {
	validationError := NewValidationError()

	if !cv.validator.IsValidID(projectID) {
		validationError.AddInvalidValueError("project_id", projectID, "must be a positive integer")
	}
	cv.checkName(validationError, "task_name", name)
	if !cv.validator.IsValidDescriptionLength(description) {
		validationError.AddInvalidLengthError("description", description, 0, cv.validator.descriptionMaxLength())
	}

	return validationError.Result()
}

func (cv *CatalogValidator) checkName(ve *ValidationError, field, name string) {
	trimmed := cv.validator.TrimAndValidateString(name)
	if !cv.validator.IsNonEmptyString(trimmed) {
		ve.AddRequiredError(field)
		return
	}
	if !cv.validator.IsValidNameLength(trimmed) {
		ve.AddInvalidLengthError(field, trimmed, cv.validator.nameMinLength(), cv.validator.nameMaxLength())
	}
	if !cv.validator.IsValidName(trimmed) {
		ve.AddInvalidCharacterError(field, trimmed)
	}
}
