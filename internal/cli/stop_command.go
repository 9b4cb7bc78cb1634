package cli

import (
	"context"

	"tztracker/internal/domain"
	"tztracker/internal/errors"
	"tztracker/internal/timeutil"
)

// transitionFunc is one of the API's pause/resume/stop operations.
type transitionFunc func(ctx context.Context, userID, entryID int64) (*domain.TimeEntry, error)

// StopCommand handles the stop command
type StopCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewStopCommand creates a new stop command handler
func NewStopCommand(app *App) *StopCommand {
	return &StopCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute stops the given entry. Without an id it stops the running entry,
// or the most recently started paused one.
func (c *StopCommand) Execute(ctx context.Context, args []string) error {
	return runTransition(ctx, c.app, c.errorHandler, "stop", args, true, c.app.api.Stop, func(e *domain.TimeEntry) {
		c.app.printf("Stopped timer #%d after %s\n", e.ID, e.FormattedDuration())
	})
}

// PauseCommand handles the pause command
type PauseCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewPauseCommand creates a new pause command handler
func NewPauseCommand(app *App) *PauseCommand {
	return &PauseCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute pauses the given entry, or the running one when no id is given.
func (c *PauseCommand) Execute(ctx context.Context, args []string) error {
	return runTransition(ctx, c.app, c.errorHandler, "pause", args, false, c.app.api.Pause, func(e *domain.TimeEntry) {
		c.app.printf("Paused timer #%d at %s\n", e.ID, e.FormattedDuration())
	})
}

// runTransition resolves the target entry and applies op. Without an id
// the running entry is used, then the newest paused one when orPaused is
// set. A transition that does not apply is reported, not treated as a
// failure.
func runTransition(ctx context.Context, app *App, eh *ErrorHandler, operation string, args []string,
	orPaused bool, op transitionFunc, report func(*domain.TimeEntry)) error {

	user, err := app.currentUser(ctx)
	if err != nil {
		return eh.Handle(operation+" timer", err)
	}

	var entryID int64
	if len(args) > 0 {
		if entryID, err = parseID("entry_id", args[0]); err != nil {
			return eh.Handle(operation+" timer", err)
		}
	} else {
		target, err := app.api.CurrentEntry(ctx, user.ID)
		if errors.IsNotFound(err) && orPaused {
			target, err = app.api.LatestPausedEntry(ctx, user.ID)
		}
		if errors.IsNotFound(err) {
			app.printf("No timer is currently running\n")
			return nil
		}
		if err != nil {
			return eh.Handle(operation+" timer", err)
		}
		entryID = target.ID
	}

	entry, err := op(ctx, user.ID, entryID)
	if errors.IsNotApplicable(err) {
		app.printf("Timer #%d: %s\n", entryID, errors.GetUserMessage(err))
		return nil
	}
	if err != nil {
		return eh.Handle(operation+" timer", err)
	}
	report(entry)
	return nil
}

// elapsed formats the live time of an entry.
func elapsed(e *domain.TimeEntry) string {
	return timeutil.FormatHoursMinutes(e.EffectiveSeconds(timeNow()))
}
