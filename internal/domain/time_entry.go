package domain

import (
	"time"

	"tztracker/internal/timeutil"
)

// Status is the lifecycle state of a time entry.
type Status string

const (
	StatusRunning   Status = "running"
	StatusPaused    Status = "paused"
	StatusCompleted Status = "completed"
)

// IsValid reports whether s is one of the three known states.
func (s Status) IsValid() bool {
	switch s {
	case StatusRunning, StatusPaused, StatusCompleted:
		return true
	}
	return false
}

// String returns the stored form of the status.
func (s Status) String() string {
	return string(s)
}

// TimeEntry represents a time tracking entry in the domain model.
// Duration holds accumulated seconds: it is authoritative for paused and
// completed entries and a stale cache while running.
type TimeEntry struct {
	ID          int64
	UserID      int64
	ProjectID   int64
	TaskID      *int64
	Description string
	StartTime   time.Time
	EndTime     *time.Time
	Duration    *int64
	Status      Status
	CreatedAt   time.Time
}

// NewTimeEntry creates a running entry started at startTime.
func NewTimeEntry(userID, projectID int64, taskID *int64, description string, startTime time.Time) TimeEntry {
	return TimeEntry{
		UserID:      userID,
		ProjectID:   projectID,
		TaskID:      taskID,
		Description: description,
		StartTime:   startTime,
		Status:      StatusRunning,
		CreatedAt:   startTime,
	}
}

// IsRunning returns true if the entry is currently running.
func (te TimeEntry) IsRunning() bool {
	return te.Status == StatusRunning
}

// IsPaused returns true if the entry is paused.
func (te TimeEntry) IsPaused() bool {
	return te.Status == StatusPaused
}

// IsCompleted returns true if the entry is completed.
func (te TimeEntry) IsCompleted() bool {
	return te.Status == StatusCompleted
}

// StoredDuration returns the accumulated seconds, treating nil as zero.
func (te TimeEntry) StoredDuration() int64 {
	if te.Duration == nil {
		return 0
	}
	return *te.Duration
}

// EffectiveSeconds returns how much time the entry represents at now:
// live elapsed time while running, the stored duration while paused, and
// for completed entries the stored duration falling back to start..end.
func (te TimeEntry) EffectiveSeconds(now time.Time) int64 {
	switch te.Status {
	case StatusRunning:
		return timeutil.DurationSeconds(te.StartTime, now)
	case StatusPaused:
		return te.StoredDuration()
	case StatusCompleted:
		if te.Duration != nil {
			return *te.Duration
		}
		if te.EndTime != nil {
			return timeutil.DurationSeconds(te.StartTime, *te.EndTime)
		}
	}
	return 0
}

// FormattedDuration returns the stored duration as HH:MM:SS.
func (te TimeEntry) FormattedDuration() string {
	return timeutil.FormatDuration(te.StoredDuration())
}

// IsValid checks the structural invariants of a single entry.
func (te TimeEntry) IsValid() bool {
	if te.UserID <= 0 || te.ProjectID <= 0 {
		return false
	}
	if te.TaskID != nil && *te.TaskID <= 0 {
		return false
	}
	if te.StartTime.IsZero() || !te.Status.IsValid() {
		return false
	}
	if te.Duration != nil && *te.Duration < 0 {
		return false
	}
	if (te.EndTime != nil) != te.IsCompleted() {
		return false
	}
	if te.EndTime != nil && te.EndTime.Before(te.StartTime) {
		return false
	}
	return true
}
