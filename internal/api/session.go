package api

import (
	"context"

	"tztracker/internal/domain"
	"tztracker/internal/errors"
	"tztracker/internal/timeutil"
)

// EntrySession is a time entry together with the project and task it
// belongs to, ready for display.
type EntrySession struct {
	Entry   *domain.TimeEntry `json:"entry"`
	Project *domain.Project   `json:"project"`
	Task    *domain.Task      `json:"task,omitempty"`
	Elapsed string            `json:"elapsed"` // HH:MM:SS, live for running entries
}

// Session resolves the project and task of entry. A task that has since
// been deleted is left out rather than failing the lookup.
func (a *apiImpl) Session(ctx context.Context, userID int64, entry *domain.TimeEntry) (*EntrySession, error) {
	if entry == nil {
		return nil, errors.NewInvalidInputError("entry", nil, "entry is required")
	}

	project, err := a.services.CatalogService.GetProject(ctx, userID, entry.ProjectID)
	if err != nil {
		return nil, err
	}

	session := &EntrySession{
		Entry:   entry,
		Project: project,
		Elapsed: timeutil.FormatDuration(entry.EffectiveSeconds(a.now())),
	}

	if entry.TaskID != nil {
		task, err := a.repo.GetTask(ctx, *entry.TaskID)
		switch {
		case err == nil:
			session.Task = a.mapper.Task.FromDatabase(task)
		case !errors.IsNotFound(err):
			return nil, err
		}
	}
	return session, nil
}
