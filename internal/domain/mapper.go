package domain

import (
	"tztracker/internal/repository/sqlite"
)

// UserMapper handles conversion between domain and database User models.
type UserMapper struct{}

// ToDatabase converts a domain User to a database User.
func (m *UserMapper) ToDatabase(u *User) *sqlite.User {
	return &sqlite.User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Timezone:  u.Timezone,
		CreatedAt: u.CreatedAt,
	}
}

// FromDatabase converts a database User to a domain User.
func (m *UserMapper) FromDatabase(u *sqlite.User) *User {
	return &User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Timezone:  u.Timezone,
		CreatedAt: u.CreatedAt,
	}
}

// FromDatabaseSlice converts a slice of database Users to domain Users.
func (m *UserMapper) FromDatabaseSlice(users []*sqlite.User) []*User {
	out := make([]*User, len(users))
	for i, u := range users {
		out[i] = m.FromDatabase(u)
	}
	return out
}

// ProjectMapper handles conversion between domain and database Project models.
type ProjectMapper struct{}

// ToDatabase converts a domain Project to a database Project. An empty
// color is stored as the default.
func (m *ProjectMapper) ToDatabase(p *Project) *sqlite.Project {
	return &sqlite.Project{
		ID:          p.ID,
		UserID:      p.UserID,
		Name:        p.Name,
		Description: p.Description,
		Color:       p.DisplayColor(),
		CreatedAt:   p.CreatedAt,
	}
}

// FromDatabase converts a database Project to a domain Project.
func (m *ProjectMapper) FromDatabase(p *sqlite.Project) *Project {
	return &Project{
		ID:          p.ID,
		UserID:      p.UserID,
		Name:        p.Name,
		Description: p.Description,
		Color:       p.Color,
		CreatedAt:   p.CreatedAt,
	}
}

// FromDatabaseSlice converts a slice of database Projects to domain Projects.
func (m *ProjectMapper) FromDatabaseSlice(projects []*sqlite.Project) []*Project {
	out := make([]*Project, len(projects))
	for i, p := range projects {
		out[i] = m.FromDatabase(p)
	}
	return out
}

// TaskMapper handles conversion between domain and database Task models.
type TaskMapper struct{}

// ToDatabase converts a domain Task to a database Task.
func (m *TaskMapper) ToDatabase(t *Task) *sqlite.Task {
	return &sqlite.Task{
		ID:          t.ID,
		ProjectID:   t.ProjectID,
		Name:        t.Name,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
	}
}

// FromDatabase converts a database Task to a domain Task.
func (m *TaskMapper) FromDatabase(t *sqlite.Task) *Task {
	return &Task{
		ID:          t.ID,
		ProjectID:   t.ProjectID,
		Name:        t.Name,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
	}
}

// FromDatabaseSlice converts a slice of database Tasks to domain Tasks.
func (m *TaskMapper) FromDatabaseSlice(tasks []*sqlite.Task) []*Task {
	out := make([]*Task, len(tasks))
	for i, t := range tasks {
		out[i] = m.FromDatabase(t)
	}
	return out
}

// TimeEntryMapper handles conversion between domain and database TimeEntry models.
type TimeEntryMapper struct{}

// ToDatabase converts a domain TimeEntry to a database TimeEntry.
func (m *TimeEntryMapper) ToDatabase(e *TimeEntry) *sqlite.TimeEntry {
	return &sqlite.TimeEntry{
		ID:          e.ID,
		UserID:      e.UserID,
		ProjectID:   e.ProjectID,
		TaskID:      e.TaskID,
		Description: e.Description,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		Duration:    e.Duration,
		Status:      e.Status.String(),
		CreatedAt:   e.CreatedAt,
	}
}

// FromDatabase converts a database TimeEntry to a domain TimeEntry.
func (m *TimeEntryMapper) FromDatabase(e *sqlite.TimeEntry) *TimeEntry {
	return &TimeEntry{
		ID:          e.ID,
		UserID:      e.UserID,
		ProjectID:   e.ProjectID,
		TaskID:      e.TaskID,
		Description: e.Description,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		Duration:    e.Duration,
		Status:      Status(e.Status),
		CreatedAt:   e.CreatedAt,
	}
}

// FromDatabaseSlice converts a slice of database TimeEntries to domain TimeEntries.
func (m *TimeEntryMapper) FromDatabaseSlice(entries []*sqlite.TimeEntry) []*TimeEntry {
	out := make([]*TimeEntry, len(entries))
	for i, e := range entries {
		out[i] = m.FromDatabase(e)
	}
	return out
}

// FilterMapper converts entry filters to repository search options.
type FilterMapper struct{}

// ToDatabase converts a domain EntryFilter to database SearchOptions.
func (m *FilterMapper) ToDatabase(f EntryFilter) sqlite.SearchOptions {
	opts := sqlite.SearchOptions{
		ProjectID:   f.ProjectID,
		TaskID:      f.TaskID,
		StartFrom:   f.StartFrom,
		StartBefore: f.StartBefore,
		OrderBy:     sqlite.EntryOrder(f.OrderBy),
		Limit:       f.Limit,
	}
	if f.UserID > 0 {
		userID := f.UserID
		opts.UserID = &userID
	}
	if f.Status != nil {
		status := f.Status.String()
		opts.Status = &status
	}
	return opts
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	User      *UserMapper
	Project   *ProjectMapper
	Task      *TaskMapper
	TimeEntry *TimeEntryMapper
	Filter    *FilterMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		User:      &UserMapper{},
		Project:   &ProjectMapper{},
		Task:      &TaskMapper{},
		TimeEntry: &TimeEntryMapper{},
		Filter:    &FilterMapper{},
	}
}
