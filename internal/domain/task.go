package domain

import "time"

// Task is an optional subdivision of a project.
type Task struct {
	ID          int64
	ProjectID   int64
	Name        string
	Description string
	CreatedAt   time.Time
}

// NewTask creates a Task with the given name under projectID.
func NewTask(projectID int64, name string) Task {
	return Task{
		ProjectID: projectID,
		Name:      name,
	}
}

// IsValid checks if the task has valid data.
func (t Task) IsValid() bool {
	return t.ProjectID > 0 && t.Name != ""
}

// String returns the task name for display purposes.
func (t Task) String() string {
	return t.Name
}
