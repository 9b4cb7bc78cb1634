package cli

import (
	"context"
	"strings"

	"tztracker/internal/errors"
)

// StartCommand handles the start command
type StartCommand struct {
	app          *App
	errorHandler *ErrorHandler

	// TaskID optionally attaches the entry to a task of the project.
	TaskID int64
}

// NewStartCommand creates a new start command handler
func NewStartCommand(app *App) *StartCommand {
	return &StartCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the start command: start <project-id> [description...]
func (c *StartCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewInvalidInputError("command", "start", "usage: tzt start <project-id> [description]")
	}
	projectID, err := parseID("project_id", args[0])
	if err != nil {
		return c.errorHandler.Handle("start timer", err)
	}

	user, err := c.app.currentUser(ctx)
	if err != nil {
		return c.errorHandler.Handle("start timer", err)
	}

	var taskID *int64
	if c.TaskID > 0 {
		taskID = &c.TaskID
	}

	previous, _ := c.app.api.CurrentEntry(ctx, user.ID)
	entry, err := c.app.api.Start(ctx, user.ID, projectID, taskID, strings.Join(args[1:], " "))
	if err != nil {
		return c.errorHandler.Handle("start timer", err)
	}

	if previous != nil {
		c.app.printf("Stopped timer #%d\n", previous.ID)
	}
	session, err := c.app.api.Session(ctx, user.ID, entry)
	if err != nil {
		return c.errorHandler.Handle("start timer", err)
	}
	c.app.printf("Started timer #%d on %s at %s\n", entry.ID, describeSession(session), c.app.formatTime(entry.StartTime))
	return nil
}
