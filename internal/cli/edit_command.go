package cli

import (
	"context"

	"tztracker/internal/domain"
	"tztracker/internal/errors"
	"tztracker/internal/services"
)

// EditCommand handles the edit command. Nil fields keep the stored value.
type EditCommand struct {
	app          *App
	errorHandler *ErrorHandler

	ProjectID   *int64
	TaskID      *int64 // 0 detaches the task
	Status      *string
	Duration    *string // HH:MM:SS
	Description *string
}

// NewEditCommand creates a new edit command handler
func NewEditCommand(app *App) *EditCommand {
	return &EditCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute edits one entry: edit <entry-id> [flags]
func (c *EditCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "edit", "usage: tzt edit <entry-id> [--project N] [--task N] [--status S] [--duration HH:MM:SS] [--description D]")
	}
	entryID, err := parseID("entry_id", args[0])
	if err != nil {
		return c.errorHandler.Handle("edit entry", err)
	}

	user, err := c.app.currentUser(ctx)
	if err != nil {
		return c.errorHandler.Handle("edit entry", err)
	}
	entry, err := c.app.api.GetEntry(ctx, user.ID, entryID)
	if err != nil {
		return c.errorHandler.Handle("edit entry", err)
	}

	req := c.request(entry)
	edited, err := c.app.api.Edit(ctx, user.ID, entryID, req)
	if err != nil {
		return c.errorHandler.Handle("edit entry", err)
	}

	c.app.printf("Updated entry #%d: %s, %s\n", edited.ID, edited.Status, edited.FormattedDuration())
	return nil
}

// request merges the set flags over the stored entry.
func (c *EditCommand) request(entry *domain.TimeEntry) services.EditRequest {
	req := services.EditRequest{
		ProjectID:   entry.ProjectID,
		TaskID:      entry.TaskID,
		Description: entry.Description,
		Status:      entry.Status,
	}
	if c.ProjectID != nil {
		req.ProjectID = *c.ProjectID
		if c.TaskID == nil && *c.ProjectID != entry.ProjectID {
			req.TaskID = nil
		}
	}
	if c.TaskID != nil {
		req.TaskID = nil
		if *c.TaskID > 0 {
			req.TaskID = c.TaskID
		}
	}
	if c.Status != nil {
		req.Status = domain.Status(*c.Status)
	}
	if c.Duration != nil {
		req.Duration = *c.Duration
	}
	if c.Description != nil {
		req.Description = *c.Description
	}
	return req
}
