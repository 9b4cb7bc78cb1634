package cli

import (
	"context"

	"tztracker/internal/domain"
	"tztracker/internal/errors"
)

// ResumeCommand handles the resume command
type ResumeCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewResumeCommand creates a new resume command handler
func NewResumeCommand(app *App) *ResumeCommand {
	return &ResumeCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute resumes a paused entry: resume <entry-id>
func (c *ResumeCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "resume", "usage: tzt resume <entry-id>")
	}
	return runTransition(ctx, c.app, c.errorHandler, "resume", args, false, c.app.api.Resume, func(e *domain.TimeEntry) {
		c.app.printf("Resumed timer #%d at %s\n", e.ID, e.FormattedDuration())
	})
}
