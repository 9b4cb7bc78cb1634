package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"tztracker/internal/errors"
	"tztracker/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// EntryOrder selects the ORDER BY clause of a search.
type EntryOrder string

const (
	OrderStartDesc   EntryOrder = "start_desc"
	OrderStartAsc    EntryOrder = "start_asc"
	OrderCreatedDesc EntryOrder = "created_desc"
)

// SearchOptions contains all possible search parameters
type SearchOptions struct {
	UserID      *int64
	ProjectID   *int64
	TaskID      *int64
	Status      *string
	StartFrom   *time.Time // inclusive
	StartBefore *time.Time // exclusive
	OrderBy     EntryOrder
	Limit       int
}

// Store holds the data operations. It is implemented both by the repository
// and by the transaction-scoped view passed to WithTx callbacks.
type Store interface {
	CreateUser(ctx context.Context, user *User) error
	GetUser(ctx context.Context, id int64) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	ListUsers(ctx context.Context) ([]*User, error)
	UpdateUser(ctx context.Context, user *User) error
	DeleteUser(ctx context.Context, id int64) error

	CreateProject(ctx context.Context, project *Project) error
	GetProject(ctx context.Context, id int64) (*Project, error)
	ListProjects(ctx context.Context, userID int64) ([]*Project, error)
	UpdateProject(ctx context.Context, project *Project) error
	DeleteProject(ctx context.Context, id int64) error

	CreateTask(ctx context.Context, task *Task) error
	GetTask(ctx context.Context, id int64) (*Task, error)
	ListTasks(ctx context.Context, projectID int64) ([]*Task, error)
	UpdateTask(ctx context.Context, task *Task) error
	DeleteTask(ctx context.Context, id int64) error

	CreateTimeEntry(ctx context.Context, entry *TimeEntry) error
	GetTimeEntry(ctx context.Context, id int64) (*TimeEntry, error)
	GetRunningTimeEntry(ctx context.Context, userID int64) (*TimeEntry, error)
	SearchTimeEntries(ctx context.Context, opts SearchOptions) ([]*TimeEntry, error)
	UpdateTimeEntry(ctx context.Context, entry *TimeEntry) error
	DeleteTimeEntry(ctx context.Context, id int64) error
}

// Repository defines the interface for database operations
type Repository interface {
	Store

	// WithTx runs fn inside a transaction. The transaction commits when fn
	// returns nil and rolls back on error or panic.
	WithTx(ctx context.Context, fn func(Store) error) error

	Close() error
}

// Options tunes the connection.
type Options struct {
	BusyTimeout time.Duration
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	*queries
	db *sql.DB
}

// queries implements Store over either the database or a transaction.
type queries struct {
	db  dbtx
	now func() time.Time
}

// New creates a new SQLite repository instance
func New(dbPath string) (*SQLiteRepository, error) {
	return NewWithOptions(context.Background(), dbPath, Options{})
}

// NewWithOptions opens dbPath, applies pragmas and runs migrations.
func NewWithOptions(ctx context.Context, dbPath string, opts Options) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", buildDSN(dbPath, opts))
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}

	// One connection: a single writer, and :memory: stays one database.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("configure database", err)
	}

	if err := migrations.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{queries: &queries{db: db, now: time.Now}, db: db}, nil
}

// buildDSN appends the connection pragmas as _pragma parameters, which the
// driver applies to every connection it opens.
func buildDSN(dbPath string, opts Options) string {
	params := []string{"_pragma=foreign_keys(1)"}
	if opts.BusyTimeout > 0 {
		params = append(params, fmt.Sprintf("_pragma=busy_timeout(%d)", opts.BusyTimeout.Milliseconds()))
	}
	sep := "?"
	if strings.Contains(dbPath, "?") {
		sep = "&"
	}
	return dbPath + sep + strings.Join(params, "&")
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// WithTx runs fn in a transaction.
func (r *SQLiteRepository) WithTx(ctx context.Context, fn func(Store) error) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return HandleDatabaseError("begin transaction", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
		if err != nil {
			tx.Rollback()
			return
		}
		if cerr := tx.Commit(); cerr != nil {
			err = HandleDatabaseError("commit transaction", cerr)
		}
	}()

	return fn(&queries{db: tx, now: r.now})
}

func idString(id int64) string {
	return fmt.Sprintf("%d", id)
}

// CreateUser creates a new user
func (q *queries) CreateUser(ctx context.Context, user *User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = q.now()
	}
	if user.Timezone == "" {
		user.Timezone = "UTC"
	}
	query := `INSERT INTO users (username, email, timezone, created_at) VALUES (?, ?, ?, ?)`
	id, err := ExecuteWithLastInsertID(ctx, q.db, query, user.Username, user.Email, user.Timezone, FormatTimeForDB(user.CreatedAt))
	if err != nil {
		return err
	}
	user.ID = id
	return nil
}

// GetUser retrieves a user by ID
func (q *queries) GetUser(ctx context.Context, id int64) (*User, error) {
	query := `SELECT id, username, email, timezone, created_at FROM users WHERE id = ?`
	return QuerySingle(ctx, q.db, query, ScanUser, "user", idString(id), id)
}

// GetUserByUsername retrieves a user by username
func (q *queries) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	query := `SELECT id, username, email, timezone, created_at FROM users WHERE username = ?`
	return QuerySingle(ctx, q.db, query, ScanUser, "user", username, username)
}

// ListUsers retrieves all users
func (q *queries) ListUsers(ctx context.Context) ([]*User, error) {
	query := `SELECT id, username, email, timezone, created_at FROM users ORDER BY username ASC`
	return QueryMultiple(ctx, q.db, query, ScanUsers, "users")
}

// UpdateUser updates an existing user
func (q *queries) UpdateUser(ctx context.Context, user *User) error {
	query := `UPDATE users SET username = ?, email = ?, timezone = ? WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, q.db, query, "user", idString(user.ID), user.Username, user.Email, user.Timezone, user.ID)
}

// DeleteUser deletes a user and, through cascades, everything they own
func (q *queries) DeleteUser(ctx context.Context, id int64) error {
	query := `DELETE FROM users WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, q.db, query, "user", idString(id), id)
}

// CreateProject creates a new project
func (q *queries) CreateProject(ctx context.Context, project *Project) error {
	if project.CreatedAt.IsZero() {
		project.CreatedAt = q.now()
	}
	query := `INSERT INTO projects (user_id, name, description, color, created_at) VALUES (?, ?, ?, ?, ?)`
	id, err := ExecuteWithLastInsertID(ctx, q.db, query, project.UserID, project.Name, project.Description, project.Color, FormatTimeForDB(project.CreatedAt))
	if err != nil {
		return err
	}
	project.ID = id
	return nil
}

// GetProject retrieves a project by ID
func (q *queries) GetProject(ctx context.Context, id int64) (*Project, error) {
	query := `SELECT id, user_id, name, description, color, created_at FROM projects WHERE id = ?`
	return QuerySingle(ctx, q.db, query, ScanProject, "project", idString(id), id)
}

// ListProjects retrieves the projects owned by userID
func (q *queries) ListProjects(ctx context.Context, userID int64) ([]*Project, error) {
	query := `SELECT id, user_id, name, description, color, created_at FROM projects WHERE user_id = ? ORDER BY name ASC`
	return QueryMultiple(ctx, q.db, query, ScanProjects, "projects", userID)
}

// UpdateProject updates an existing project
func (q *queries) UpdateProject(ctx context.Context, project *Project) error {
	query := `UPDATE projects SET name = ?, description = ?, color = ? WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, q.db, query, "project", idString(project.ID), project.Name, project.Description, project.Color, project.ID)
}

// DeleteProject deletes a project and its tasks and entries
func (q *queries) DeleteProject(ctx context.Context, id int64) error {
	query := `DELETE FROM projects WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, q.db, query, "project", idString(id), id)
}

// CreateTask creates a new task
func (q *queries) CreateTask(ctx context.Context, task *Task) error {
	if task.CreatedAt.IsZero() {
		task.CreatedAt = q.now()
	}
	query := `INSERT INTO tasks (project_id, name, description, created_at) VALUES (?, ?, ?, ?)`
	id, err := ExecuteWithLastInsertID(ctx, q.db, query, task.ProjectID, task.Name, task.Description, FormatTimeForDB(task.CreatedAt))
	if err != nil {
		return err
	}
	task.ID = id
	return nil
}

// GetTask retrieves a task by ID
func (q *queries) GetTask(ctx context.Context, id int64) (*Task, error) {
	query := `SELECT id, project_id, name, description, created_at FROM tasks WHERE id = ?`
	return QuerySingle(ctx, q.db, query, ScanTask, "task", idString(id), id)
}

// ListTasks retrieves the tasks of a project
func (q *queries) ListTasks(ctx context.Context, projectID int64) ([]*Task, error) {
	query := `SELECT id, project_id, name, description, created_at FROM tasks WHERE project_id = ? ORDER BY name ASC`
	return QueryMultiple(ctx, q.db, query, ScanTasks, "tasks", projectID)
}

// UpdateTask updates an existing task
func (q *queries) UpdateTask(ctx context.Context, task *Task) error {
	query := `UPDATE tasks SET name = ?, description = ? WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, q.db, query, "task", idString(task.ID), task.Name, task.Description, task.ID)
}

// DeleteTask deletes a task by ID
func (q *queries) DeleteTask(ctx context.Context, id int64) error {
	query := `DELETE FROM tasks WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, q.db, query, "task", idString(id), id)
}

// CreateTimeEntry creates a new time entry
func (q *queries) CreateTimeEntry(ctx context.Context, entry *TimeEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = q.now()
	}
	query := `
	INSERT INTO time_entries (user_id, project_id, task_id, description, start_time, end_time, duration, status, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	id, err := ExecuteWithLastInsertID(ctx, q.db, query,
		entry.UserID, entry.ProjectID, Int64PtrForDB(entry.TaskID), entry.Description,
		FormatTimeForDB(entry.StartTime), FormatTimePtrForDB(entry.EndTime),
		Int64PtrForDB(entry.Duration), entry.Status, FormatTimeForDB(entry.CreatedAt))
	if err != nil {
		return err
	}

	entry.ID = id
	return nil
}

// GetTimeEntry retrieves a time entry by ID
func (q *queries) GetTimeEntry(ctx context.Context, id int64) (*TimeEntry, error) {
	query := `SELECT ` + timeEntryColumns + ` FROM time_entries WHERE id = ?`
	return QuerySingle(ctx, q.db, query, ScanTimeEntry, "time entry", idString(id), id)
}

// GetRunningTimeEntry returns the user's running entry or a NotFound error
func (q *queries) GetRunningTimeEntry(ctx context.Context, userID int64) (*TimeEntry, error) {
	query := `SELECT ` + timeEntryColumns + ` FROM time_entries WHERE user_id = ? AND status = ?`
	return QuerySingle(ctx, q.db, query, ScanTimeEntry, "running time entry", idString(userID), userID, StatusRunning)
}

// UpdateTimeEntry updates an existing time entry
func (q *queries) UpdateTimeEntry(ctx context.Context, entry *TimeEntry) error {
	query := `
	UPDATE time_entries
	SET project_id = ?, task_id = ?, description = ?, start_time = ?, end_time = ?, duration = ?, status = ?
	WHERE id = ?`

	return ExecuteWithRowsAffected(ctx, q.db, query, "time entry", idString(entry.ID),
		entry.ProjectID, Int64PtrForDB(entry.TaskID), entry.Description,
		FormatTimeForDB(entry.StartTime), FormatTimePtrForDB(entry.EndTime),
		Int64PtrForDB(entry.Duration), entry.Status, entry.ID)
}

// DeleteTimeEntry deletes a time entry by ID
func (q *queries) DeleteTimeEntry(ctx context.Context, id int64) error {
	query := `DELETE FROM time_entries WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, q.db, query, "time entry", idString(id), id)
}

// SearchTimeEntries searches for time entries based on the provided options
func (q *queries) SearchTimeEntries(ctx context.Context, opts SearchOptions) ([]*TimeEntry, error) {
	var conditions []string
	var args []interface{}

	if opts.UserID != nil {
		conditions = append(conditions, "time_entries.user_id = ?")
		args = append(args, *opts.UserID)
	}
	if opts.ProjectID != nil {
		conditions = append(conditions, "time_entries.project_id = ?")
		args = append(args, *opts.ProjectID)
	}
	if opts.TaskID != nil {
		conditions = append(conditions, "time_entries.task_id = ?")
		args = append(args, *opts.TaskID)
	}
	if opts.Status != nil {
		conditions = append(conditions, "time_entries.status = ?")
		args = append(args, *opts.Status)
	}
	if opts.StartFrom != nil {
		conditions = append(conditions, "time_entries.start_time >= ?")
		args = append(args, FormatTimePtrForDB(opts.StartFrom))
	}
	if opts.StartBefore != nil {
		conditions = append(conditions, "time_entries.start_time < ?")
		args = append(args, FormatTimePtrForDB(opts.StartBefore))
	}

	query := `SELECT ` + timeEntryColumns + ` FROM time_entries`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	switch opts.OrderBy {
	case OrderStartAsc:
		query += " ORDER BY time_entries.start_time ASC, time_entries.id ASC"
	case OrderCreatedDesc:
		query += " ORDER BY time_entries.created_at DESC, time_entries.id DESC"
	default:
		query += " ORDER BY time_entries.start_time DESC, time_entries.id DESC"
	}

	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	return QueryMultiple(ctx, q.db, query, ScanTimeEntries, "time entries", args...)
}
