package cli

import (
	"context"

	"tztracker/internal/errors"
)

// DeleteCommand handles the delete command
type DeleteCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute deletes one time entry: delete <entry-id>
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "delete", "usage: tzt delete <entry-id>")
	}
	entryID, err := parseID("entry_id", args[0])
	if err != nil {
		return c.errorHandler.Handle("delete entry", err)
	}

	user, err := c.app.currentUser(ctx)
	if err != nil {
		return c.errorHandler.Handle("delete entry", err)
	}
	if err := c.app.api.DeleteEntry(ctx, user.ID, entryID); err != nil {
		return c.errorHandler.Handle("delete entry", err)
	}

	c.app.printf("Deleted entry #%d\n", entryID)
	return nil
}
