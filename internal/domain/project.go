package domain

import "time"

// DefaultProjectColor is used when a project has no color of its own.
const DefaultProjectColor = "#6c757d"

// Project groups tasks and time entries for one user.
type Project struct {
	ID          int64
	UserID      int64
	Name        string
	Description string
	Color       string
	CreatedAt   time.Time
}

// NewProject creates a project owned by userID with the default color.
func NewProject(userID int64, name string) Project {
	return Project{
		UserID: userID,
		Name:   name,
		Color:  DefaultProjectColor,
	}
}

// DisplayColor returns the project color or the default when unset.
func (p Project) DisplayColor() string {
	if p.Color == "" {
		return DefaultProjectColor
	}
	return p.Color
}

// IsValid checks if the project has valid data.
func (p Project) IsValid() bool {
	return p.UserID > 0 && p.Name != ""
}

// String returns the project name for display purposes.
func (p Project) String() string {
	return p.Name
}
