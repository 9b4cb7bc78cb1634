package api

import (
	"context"
	"time"

	"tztracker/internal/config"
	"tztracker/internal/domain"
	"tztracker/internal/repository/sqlite"
	"tztracker/internal/services"
)

// API is the external surface of the tracker. Every user-scoped operation
// takes the acting user's id; entries, projects and tasks of other users
// are reported as not found.
type API interface {
	// Timer operations
	Start(ctx context.Context, userID, projectID int64, taskID *int64, description string) (*domain.TimeEntry, error)
	Pause(ctx context.Context, userID, entryID int64) (*domain.TimeEntry, error)
	Resume(ctx context.Context, userID, entryID int64) (*domain.TimeEntry, error)
	Stop(ctx context.Context, userID, entryID int64) (*domain.TimeEntry, error)
	Edit(ctx context.Context, userID, entryID int64, req services.EditRequest) (*domain.TimeEntry, error)
	DeleteEntry(ctx context.Context, userID, entryID int64) error
	GetEntry(ctx context.Context, userID, entryID int64) (*domain.TimeEntry, error)
	CurrentEntry(ctx context.Context, userID int64) (*domain.TimeEntry, error)
	LatestPausedEntry(ctx context.Context, userID int64) (*domain.TimeEntry, error)
	RecentEntries(ctx context.Context, userID int64, limit int) ([]*domain.TimeEntry, error)
	Session(ctx context.Context, userID int64, entry *domain.TimeEntry) (*EntrySession, error)

	// Statistics
	WeeklySeries(ctx context.Context, userID int64, ref time.Time) *services.WeeklySeries
	ProjectTotals(ctx context.Context, userID int64, window *services.TimeRange) []services.ProjectTotal
	ReportWindow() *services.TimeRange
	Dashboard(ctx context.Context, userID int64) (*services.DashboardData, error)

	// Timezones
	ConvertTimezone(text, fromZone, toZone string) (*services.Conversion, error)
	CurrentTime(ctx context.Context, userID int64) (*services.LocalTime, error)
	Timezones() []string

	// Users
	CreateUser(ctx context.Context, username, email, timezone string) (*domain.User, error)
	EnsureUser(ctx context.Context, username, defaultTimezone string) (*domain.User, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	SetUserTimezone(ctx context.Context, id int64, timezone string) (*domain.User, error)
	DeleteUser(ctx context.Context, id int64) error

	// Projects and tasks
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

type apiImpl struct {
	repo     sqlite.Repository
	mapper   *domain.Mapper
	services *services.ServiceContainer
	now      services.Clock
}

// New creates a new API instance. A nil cfg uses defaults.
func New(repo sqlite.Repository, cfg *config.Config) API {
	return NewWithClock(repo, cfg, time.Now)
}

// NewWithClock creates an API whose notion of "now" comes from now.
func NewWithClock(repo sqlite.Repository, cfg *config.Config, now services.Clock) API {
	if now == nil {
		now = time.Now
	}
	return &apiImpl{
		repo:     repo,
		mapper:   domain.NewMapper(),
		services: services.NewServiceContainer(repo, cfg, now),
		now:      now,
	}
}

// Timer operations

func (a *apiImpl) Start(ctx context.Context, userID, projectID int64, taskID *int64, description string) (*domain.TimeEntry, error) {
	return a.services.TimerService.Start(ctx, userID, projectID, taskID, description)
}

func (a *apiImpl) Pause(ctx context.Context, userID, entryID int64) (*domain.TimeEntry, error) {
	return a.services.TimerService.Pause(ctx, userID, entryID)
}

func (a *apiImpl) Resume(ctx context.Context, userID, entryID int64) (*domain.TimeEntry, error) {
	return a.services.TimerService.Resume(ctx, userID, entryID)
}

func (a *apiImpl) Stop(ctx context.Context, userID, entryID int64) (*domain.TimeEntry, error) {
	return a.services.TimerService.Stop(ctx, userID, entryID)
}

func (a *apiImpl) Edit(ctx context.Context, userID, entryID int64, req services.EditRequest) (*domain.TimeEntry, error) {
	return a.services.TimerService.Edit(ctx, userID, entryID, req)
}

func (a *apiImpl) DeleteEntry(ctx context.Context, userID, entryID int64) error {
	return a.services.TimerService.Delete(ctx, userID, entryID)
}

func (a *apiImpl) GetEntry(ctx context.Context, userID, entryID int64) (*domain.TimeEntry, error) {
	return a.services.TimerService.Get(ctx, userID, entryID)
}

func (a *apiImpl) CurrentEntry(ctx context.Context, userID int64) (*domain.TimeEntry, error) {
	return a.services.TimerService.Current(ctx, userID)
}

func (a *apiImpl) LatestPausedEntry(ctx context.Context, userID int64) (*domain.TimeEntry, error) {
	return a.services.TimerService.LatestPaused(ctx, userID)
}

func (a *apiImpl) RecentEntries(ctx context.Context, userID int64, limit int) ([]*domain.TimeEntry, error) {
	return a.services.TimerService.Recent(ctx, userID, limit)
}

// Statistics

func (a *apiImpl) WeeklySeries(ctx context.Context, userID int64, ref time.Time) *services.WeeklySeries {
	return a.services.StatsService.WeeklySeries(ctx, userID, ref)
}

func (a *apiImpl) ProjectTotals(ctx context.Context, userID int64, window *services.TimeRange) []services.ProjectTotal {
	return a.services.StatsService.ProjectTotals(ctx, userID, window)
}

func (a *apiImpl) ReportWindow() *services.TimeRange {
	return a.services.StatsService.ReportWindow()
}

func (a *apiImpl) Dashboard(ctx context.Context, userID int64) (*services.DashboardData, error) {
	return a.services.StatsService.Dashboard(ctx, userID)
}

// Timezones

func (a *apiImpl) ConvertTimezone(text, fromZone, toZone string) (*services.Conversion, error) {
	return a.services.TimezoneService.Convert(text, fromZone, toZone)
}

func (a *apiImpl) CurrentTime(ctx context.Context, userID int64) (*services.LocalTime, error) {
	return a.services.TimezoneService.Now(ctx, userID)
}

func (a *apiImpl) Timezones() []string {
	return a.services.TimezoneService.ListTimezones()
}

// Users

func (a *apiImpl) CreateUser(ctx context.Context, username, email, timezone string) (*domain.User, error) {
	return a.services.CatalogService.CreateUser(ctx, username, email, timezone)
}

func (a *apiImpl) EnsureUser(ctx context.Context, username, defaultTimezone string) (*domain.User, error) {
	return a.services.CatalogService.EnsureUser(ctx, username, defaultTimezone)
}

func (a *apiImpl) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return a.services.CatalogService.GetUser(ctx, id)
}

func (a *apiImpl) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return a.services.CatalogService.ListUsers(ctx)
}

func (a *apiImpl) SetUserTimezone(ctx context.Context, id int64, timezone string) (*domain.User, error) {
	return a.services.CatalogService.SetUserTimezone(ctx, id, timezone)
}

func (a *apiImpl) DeleteUser(ctx context.Context, id int64) error {
	return a.services.CatalogService.DeleteUser(ctx, id)
}

// Projects and tasks

func (a *apiImpl) CreateProject(ctx context.Context, userID int64, name, description, color string) (*domain.Project, error) {
	return a.services.CatalogService.CreateProject(ctx, userID, name, description, color)
}

func (a *apiImpl) GetProject(ctx context.Context, userID, projectID int64) (*domain.Project, error) {
	return a.services.CatalogService.GetProject(ctx, userID, projectID)
}

func (a *apiImpl) ListProjects(ctx context.Context, userID int64) ([]*domain.Project, error) {
	return a.services.CatalogService.ListProjects(ctx, userID)
}

func (a *apiImpl) UpdateProject(ctx context.Context, userID, projectID int64, name, description, color string) (*domain.Project, error) {
	return a.services.CatalogService.UpdateProject(ctx, userID, projectID, name, description, color)
}

func (a *apiImpl) DeleteProject(ctx context.Context, userID, projectID int64) error {
	return a.services.CatalogService.DeleteProject(ctx, userID, projectID)
}

func (a *apiImpl) CreateTask(ctx context.Context, userID, projectID int64, name, description string) (*domain.Task, error) {
	return a.services.CatalogService.CreateTask(ctx, userID, projectID, name, description)
}

func (a *apiImpl) ListTasks(ctx context.Context, userID, projectID int64) ([]*domain.Task, error) {
	return a.services.CatalogService.ListTasks(ctx, userID, projectID)
}

func (a *apiImpl) UpdateTask(ctx context.Context, userID, taskID int64, name, description string) (*domain.Task, error) {
	return a.services.CatalogService.UpdateTask(ctx, userID, taskID, name, description)
}

func (a *apiImpl) DeleteTask(ctx context.Context, userID, taskID int64) error {
	return a.services.CatalogService.DeleteTask(ctx, userID, taskID)
}
