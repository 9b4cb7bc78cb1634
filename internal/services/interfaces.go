package services

import (
	"context"
	"time"

	"tztracker/internal/domain"
)

// Clock supplies the current instant. Services take one so tests can fix "now".
type Clock func() time.Time

// TimeRange represents a time period. Start is inclusive, End exclusive.
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// EditRequest carries the fields of an entry edit. Every field overwrites
// the stored value except Duration: empty text keeps the stored duration.
type EditRequest struct {
	ProjectID   int64         `json:"project_id"`
	TaskID      *int64        `json:"task_id,omitempty"`
	Description string        `json:"description"`
	Status      domain.Status `json:"status"`
	Duration    string        `json:"duration"` // HH:MM:SS
}

// WeeklySeries holds per-day hours for one Monday-anchored week.
type WeeklySeries struct {
	Dates  []string  `json:"dates"`  // 2006-01-02
	Labels []string  `json:"labels"` // Mon..Sun
	Hours  []float64 `json:"hours"`
}

// ProjectTotal is the tracked time of one project.
type ProjectTotal struct {
	ProjectID    int64   `json:"project_id"`
	Name         string  `json:"name"`
	Color        string  `json:"color"`
	TotalSeconds int64   `json:"total_seconds"`
	Hours        float64 `json:"hours"`
	Formatted    string  `json:"formatted"`
}

// DashboardData represents all data needed for a dashboard view
type DashboardData struct {
	Now           time.Time           `json:"now"`
	Timezone      string              `json:"timezone"`
	Active        *domain.TimeEntry   `json:"active,omitempty"`
	Recent        []*domain.TimeEntry `json:"recent"`
	Weekly        *WeeklySeries       `json:"weekly"`
	ProjectTotals []ProjectTotal      `json:"project_totals"`
}

// Conversion is the result of a wall-clock timezone conversion.
type Conversion struct {
	Source time.Time `json:"source"`
	Target time.Time `json:"target"`
}

// LocalTime is an instant expressed in the zone that was actually used.
type LocalTime struct {
	Time     time.Time `json:"time"`
	Timezone string    `json:"timezone"`
}

// TimerService drives the start/pause/resume/stop lifecycle of time
// entries. Entries not owned by userID are reported as not found.
// Transitions that do not apply to the entry's current status return the
// unchanged entry together with a not-applicable error.
type TimerService interface {
	Start(ctx context.Context, userID, projectID int64, taskID *int64, description string) (*domain.TimeEntry, error)
	Pause(ctx context.Context, userID, entryID int64) (*domain.TimeEntry, error)
	Resume(ctx context.Context, userID, entryID int64) (*domain.TimeEntry, error)
	Stop(ctx context.Context, userID, entryID int64) (*domain.TimeEntry, error)
	Edit(ctx context.Context, userID, entryID int64, req EditRequest) (*domain.TimeEntry, error)
	Delete(ctx context.Context, userID, entryID int64) error

	Get(ctx context.Context, userID, entryID int64) (*domain.TimeEntry, error)
	Current(ctx context.Context, userID int64) (*domain.TimeEntry, error)
	LatestPaused(ctx context.Context, userID int64) (*domain.TimeEntry, error)
	Recent(ctx context.Context, userID int64, limit int) ([]*domain.TimeEntry, error)
}

// StatsService aggregates entries into weekly and per-project rollups.
// Aggregations never fail: errors are logged and an empty result returned.
type StatsService interface {
	WeeklySeries(ctx context.Context, userID int64, ref time.Time) *WeeklySeries
	ProjectTotals(ctx context.Context, userID int64, window *TimeRange) []ProjectTotal
	Dashboard(ctx context.Context, userID int64) (*DashboardData, error)
	ReportWindow() *TimeRange
}

// TimezoneService handles timezone conversion and local time lookups
type TimezoneService interface {
	Convert(text, fromZone, toZone string) (*Conversion, error)
	Now(ctx context.Context, userID int64) (*LocalTime, error)
	ListTimezones() []string
}

// CatalogService manages the users, projects and tasks timers refer to.
type CatalogService interface {
	CreateUser(ctx context.Context, username, email, timezone string) (*domain.User, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	EnsureUser(ctx context.Context, username, defaultTimezone string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	SetUserTimezone(ctx context.Context, id int64, timezone string) (*domain.User, error)
	DeleteUser(ctx context.Context, id int64) error

	CreateProject(ctx context.Context, userID int64, name, description, color string) (*domain.Project, error)
	GetProject(ctx context.Context, userID, projectID int64) (*domain.Project, error)
	ListProjects(ctx context.Context, userID int64) ([]*domain.Project, error)
	UpdateProject(ctx context.Context, userID, projectID int64, name, description, color string) (*domain.Project, error)
	DeleteProject(ctx context.Context, userID, projectID int64) error

	CreateTask(ctx context.Context, userID, projectID int64, name, description string) (*domain.Task, error)
	ListTasks(ctx context.Context, userID, projectID int64) ([]*domain.Task, error)
	UpdateTask(ctx context.Context, userID, taskID int64, name, description string) (*domain.Task, error)
	DeleteTask(ctx context.Context, userID, taskID int64) error
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	TimerService    TimerService
	StatsService    StatsService
	TimezoneService TimezoneService
	CatalogService  CatalogService
}
