package validation

import (
	"testing"

	"tztracker/internal/errors"
)

func int64Ptr(v int64) *int64 { return &v }

func TestTimeEntryValidator_ValidateStart(t *testing.T) {
	v := NewTimeEntryValidator()

	tests := []struct {
		name      string
		userID    int64
		projectID int64
		taskID    *int64
		wantField string
	}{
		{"valid without task", 1, 2, nil, ""},
		{"valid with task", 1, 2, int64Ptr(3), ""},
		{"bad user", 0, 2, nil, "user_id"},
		{"bad project", 1, -1, nil, "project_id"},
		{"bad task", 1, 2, int64Ptr(0), "task_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStart(tt.userID, tt.projectID, tt.taskID, "")
			assertField(t, err, tt.wantField)
		})
	}
}

func TestTimeEntryValidator_ValidateEntryID(t *testing.T) {
	v := NewTimeEntryValidator()

	assertField(t, v.ValidateEntryID(1, 1), "")
	assertField(t, v.ValidateEntryID(1, 0), "entry_id")
	assertField(t, v.ValidateEntryID(0, 1), "user_id")
}

func TestTimeEntryValidator_ValidateEdit(t *testing.T) {
	v := NewTimeEntryValidator()

	tests := []struct {
		name      string
		status    string
		duration  string
		wantField string
	}{
		{"valid completed", "completed", "01:00:00", ""},
		{"empty duration allowed", "paused", "", ""},
		{"whitespace duration allowed", "paused", "   ", ""},
		{"bad status", "stopped", "", "status"},
		{"bad duration", "completed", "1h", "duration"},
		{"duration beyond the maximum", "completed", "3000000:00:00", "duration"},
		{"duration that overflows", "completed", "99999999999999999999:00:00", "duration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateEdit(1, 5, 2, nil, tt.status, tt.duration, "")
			assertField(t, err, tt.wantField)
		})
	}
}

// assertField checks that err is nil when field is empty, and otherwise a
// validation AppError carrying a FieldError for field.
func assertField(t *testing.T, err error, field string) {
	t.Helper()
	if field == "" {
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		return
	}
	if !errors.IsErrorType(err, errors.ErrorTypeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	appErr, _ := errors.AsAppError(err)
	ve, ok := appErr.Cause.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError cause, got %T", appErr.Cause)
	}
	if len(ve.GetFieldErrors(field)) == 0 {
		t.Errorf("expected an error for field %q, got %v", field, ve.Errors)
	}
}
