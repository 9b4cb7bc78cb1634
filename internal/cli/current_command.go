package cli

import (
	"context"

	"tztracker/internal/errors"
)

// CurrentCommand handles the current command
type CurrentCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewCurrentCommand creates a new current command handler
func NewCurrentCommand(app *App) *CurrentCommand {
	return &CurrentCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute shows the running timer, if any.
func (c *CurrentCommand) Execute(ctx context.Context, args []string) error {
	user, err := c.app.currentUser(ctx)
	if err != nil {
		return c.errorHandler.Handle("show current timer", err)
	}

	entry, err := c.app.api.CurrentEntry(ctx, user.ID)
	if errors.IsNotFound(err) {
		c.app.printf("No timer is currently running\n")
		return nil
	}
	if err != nil {
		return c.errorHandler.Handle("show current timer", err)
	}

	session, err := c.app.api.Session(ctx, user.ID, entry)
	if err != nil {
		return c.errorHandler.Handle("show current timer", err)
	}
	c.app.printf("Current timer #%d: %s (running for %s, since %s)\n",
		entry.ID, describeSession(session), elapsed(entry), c.app.formatTime(entry.StartTime))
	return nil
}
