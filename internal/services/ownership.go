package services

import (
	"context"
	"strconv"

	"tztracker/internal/errors"
	"tztracker/internal/repository/sqlite"
)

// Ownership checks. A row owned by someone else is reported exactly like a
// missing row so ids of other users are not disclosed.

func ownedEntry(ctx context.Context, store sqlite.Store, userID, entryID int64) (*sqlite.TimeEntry, error) {
	entry, err := store.GetTimeEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.UserID != userID {
		return nil, errors.NewNotFoundError("time entry", strconv.FormatInt(entryID, 10))
	}
	return entry, nil
}

func ownedProject(ctx context.Context, store sqlite.Store, userID, projectID int64) (*sqlite.Project, error) {
	project, err := store.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.UserID != userID {
		return nil, errors.NewNotFoundError("project", strconv.FormatInt(projectID, 10))
	}
	return project, nil
}

// taskInProject verifies the task exists under projectID.
func taskInProject(ctx context.Context, store sqlite.Store, projectID, taskID int64) (*sqlite.Task, error) {
	task, err := store.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.ProjectID != projectID {
		return nil, errors.NewNotFoundError("task", strconv.FormatInt(taskID, 10))
	}
	return task, nil
}

// ownedTask verifies the task belongs to a project owned by userID.
func ownedTask(ctx context.Context, store sqlite.Store, userID, taskID int64) (*sqlite.Task, error) {
	task, err := store.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if _, err := ownedProject(ctx, store, userID, task.ProjectID); err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.NewNotFoundError("task", strconv.FormatInt(taskID, 10))
		}
		return nil, err
	}
	return task, nil
}
