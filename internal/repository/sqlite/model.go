package sqlite

import "time"

// User is the users table row.
type User struct {
	ID        int64
	Username  string
	Email     string
	Timezone  string
	CreatedAt time.Time
}

// Project is the projects table row.
type Project struct {
	ID          int64
	UserID      int64
	Name        string
	Description string
	Color       string
	CreatedAt   time.Time
}

// Task is the tasks table row.
type Task struct {
	ID          int64
	ProjectID   int64
	Name        string
	Description string
	CreatedAt   time.Time
}

// TimeEntry is the time_entries table row. Pointer fields map to NULL.
type TimeEntry struct {
	ID          int64
	UserID      int64
	ProjectID   int64
	TaskID      *int64
	Description string
	StartTime   time.Time
	EndTime     *time.Time
	Duration    *int64
	Status      string
	CreatedAt   time.Time
}

// Entry status values as stored in the status column.
const (
	StatusRunning   = "running"
	StatusPaused    = "paused"
	StatusCompleted = "completed"
)
