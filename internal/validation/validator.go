package validation

import (
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"tztracker/internal/config"
	"tztracker/internal/domain"
	"tztracker/internal/timeutil"
)

var (
	hexColorRegex     = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
	durationTextRegex = regexp.MustCompile(`^\s*\d+:\d+:\d+\s*$`)
	usernameRegex     = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)
)

// Validator provides common validation utilities
type Validator struct {
	config *config.Config
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{config: nil}
}

// NewValidatorWithConfig creates a new validator instance with configuration
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{config: cfg}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength checks if a string length in runes is within the specified range
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := utf8.RuneCountInString(strings.TrimSpace(s))
	return length >= min && length <= max
}

// IsValidNameLength checks a project or task name against configured limits
func (v *Validator) IsValidNameLength(name string) bool {
	return v.IsValidStringLength(name, v.nameMinLength(), v.nameMaxLength())
}

// IsValidName rejects names containing control characters such as newlines and tabs
func (v *Validator) IsValidName(name string) bool {
	for _, r := range name {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}

// IsValidDescriptionLength checks a description against the configured maximum
func (v *Validator) IsValidDescriptionLength(desc string) bool {
	return utf8.RuneCountInString(desc) <= v.descriptionMaxLength()
}

// IsValidUsername accepts letters, digits, dot, dash and underscore
func (v *Validator) IsValidUsername(name string) bool {
	return usernameRegex.MatchString(name)
}

// IsValidID checks if an ID is valid (positive)
func (v *Validator) IsValidID(id int64) bool {
	return id > 0
}

// IsValidHexColor checks for the #rrggbb form
func (v *Validator) IsValidHexColor(color string) bool {
	return hexColorRegex.MatchString(color)
}

// IsValidTimezone checks for a loadable IANA zone name
func (v *Validator) IsValidTimezone(zone string) bool {
	return timeutil.IsValidTimezone(zone)
}

// IsValidStatus checks for one of the entry states
func (v *Validator) IsValidStatus(status string) bool {
	return domain.Status(status).IsValid()
}

// IsValidDurationText checks the H:M:S shape without interpreting it
func (v *Validator) IsValidDurationText(text string) bool {
	return durationTextRegex.MatchString(text)
}

// IsDurationInRange checks that well-formed H:M:S text stays within
// timeutil.MaxDurationSeconds.
func (v *Validator) IsDurationInRange(text string) bool {
	_, err := timeutil.ParseDuration(text)
	return err == nil
}

// IsValidTimeRange checks if start time is not after end time
func (v *Validator) IsValidTimeRange(startTime time.Time, endTime *time.Time) bool {
	if endTime == nil {
		return true
	}
	return !endTime.Before(startTime)
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

func (v *Validator) nameMinLength() int {
	if v.config != nil {
		return v.config.Validation.NameMinLength
	}
	return 1
}

func (v *Validator) nameMaxLength() int {
	if v.config != nil {
		return v.config.Validation.NameMaxLength
	}
	return 100
}

func (v *Validator) descriptionMaxLength() int {
	if v.config != nil {
		return v.config.Validation.DescriptionMaxLength
	}
	return 1000
}
