package sqlite

import (
	"database/sql"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

const timeEntryColumns = `time_entries.id, time_entries.user_id, time_entries.project_id, time_entries.task_id,
	time_entries.description, time_entries.start_time, time_entries.end_time,
	time_entries.duration, time_entries.status, time_entries.created_at`

// ScanTimeEntry scans a single time entry selected with timeEntryColumns.
func ScanTimeEntry(scanner Scanner) (*TimeEntry, error) {
	entry := &TimeEntry{}
	var (
		taskID      sql.NullInt64
		description sql.NullString
		startTime   string
		endTime     sql.NullString
		duration    sql.NullInt64
		createdAt   string
	)

	err := scanner.Scan(
		&entry.ID,
		&entry.UserID,
		&entry.ProjectID,
		&taskID,
		&description,
		&startTime,
		&endTime,
		&duration,
		&entry.Status,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if taskID.Valid {
		entry.TaskID = &taskID.Int64
	}
	if duration.Valid {
		entry.Duration = &duration.Int64
	}
	entry.Description = description.String

	if entry.StartTime, err = ParseTimeFromDB(startTime); err != nil {
		return nil, err
	}
	if entry.EndTime, err = ParseNullTimeFromDB(endTime); err != nil {
		return nil, err
	}
	if entry.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, err
	}

	return entry, nil
}

// ScanTimeEntries scans multiple time entries from database rows
func ScanTimeEntries(rows Rows) ([]*TimeEntry, error) {
	return scanAll(rows, ScanTimeEntry)
}

// ScanProject scans a single project row.
func ScanProject(scanner Scanner) (*Project, error) {
	project := &Project{}
	var description sql.NullString
	var createdAt string
	err := scanner.Scan(&project.ID, &project.UserID, &project.Name, &description, &project.Color, &createdAt)
	if err != nil {
		return nil, err
	}
	project.Description = description.String
	if project.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, err
	}
	return project, nil
}

// ScanProjects scans multiple projects from database rows
func ScanProjects(rows Rows) ([]*Project, error) {
	return scanAll(rows, ScanProject)
}

// ScanTask scans a single task row.
func ScanTask(scanner Scanner) (*Task, error) {
	task := &Task{}
	var description sql.NullString
	var createdAt string
	err := scanner.Scan(&task.ID, &task.ProjectID, &task.Name, &description, &createdAt)
	if err != nil {
		return nil, err
	}
	task.Description = description.String
	if task.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, err
	}
	return task, nil
}

// ScanTasks scans multiple tasks from database rows
func ScanTasks(rows Rows) ([]*Task, error) {
	return scanAll(rows, ScanTask)
}

// ScanUser scans a single user row.
func ScanUser(scanner Scanner) (*User, error) {
	user := &User{}
	var createdAt string
	err := scanner.Scan(&user.ID, &user.Username, &user.Email, &user.Timezone, &createdAt)
	if err != nil {
		return nil, err
	}
	if user.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, err
	}
	return user, nil
}

// ScanUsers scans multiple users from database rows
func ScanUsers(rows Rows) ([]*User, error) {
	return scanAll(rows, ScanUser)
}

func scanAll[T any](rows Rows, scanOne func(Scanner) (*T, error)) ([]*T, error) {
	var results []*T
	for rows.Next() {
		item, err := scanOne(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}
