package cli

import (
	"context"
	"strings"

	"tztracker/internal/errors"
	"tztracker/internal/timeutil"
)

const conversionLayout = "2006-01-02 15:04 MST"

// TzConvertCommand handles "tz convert"
type TzConvertCommand struct {
	app          *App
	errorHandler *ErrorHandler

	From string
	To   string
}

// NewTzConvertCommand creates a new timezone conversion handler
func NewTzConvertCommand(app *App) *TzConvertCommand {
	return &TzConvertCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute converts a wall-clock time: tz convert <2006-01-02 15:04>.
// Both zones default to the acting user's timezone.
func (c *TzConvertCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewInvalidInputError("command", "tz convert", "usage: tzt tz convert \"2006-01-02 15:04\" --from ZONE --to ZONE")
	}

	from, to := c.From, c.To
	if from == "" || to == "" {
		user, err := c.app.currentUser(ctx)
		if err != nil {
			return c.errorHandler.Handle("convert time", err)
		}
		if from == "" {
			from = user.ZoneOrUTC()
		}
		if to == "" {
			to = user.ZoneOrUTC()
		}
	}

	conversion, err := c.app.api.ConvertTimezone(strings.Join(args, " "), from, to)
	if err != nil {
		return c.errorHandler.Handle("convert time", err)
	}
	c.app.printf("%s (%s) = %s (%s)\n",
		conversion.Source.Format(conversionLayout), conversion.Source.Location(),
		conversion.Target.Format(conversionLayout), conversion.Target.Location())
	return nil
}

// TzNowCommand handles "tz now"
type TzNowCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewTzNowCommand creates a new local time handler
func NewTzNowCommand(app *App) *TzNowCommand {
	return &TzNowCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute prints the current time in the acting user's timezone, or in
// the zone given as argument.
func (c *TzNowCommand) Execute(ctx context.Context, args []string) error {
	if len(args) > 0 {
		now, err := timeutil.Localize(timeNow(), args[0])
		if err != nil {
			return c.errorHandler.Handle("show time", err)
		}
		c.app.printf("%s (%s)\n", now.Format(c.app.config.Time.DisplayFormat), now.Location())
		return nil
	}

	user, err := c.app.currentUser(ctx)
	if err != nil {
		return c.errorHandler.Handle("show time", err)
	}
	local, err := c.app.api.CurrentTime(ctx, user.ID)
	if err != nil {
		return c.errorHandler.Handle("show time", err)
	}
	c.app.printf("%s (%s)\n", local.Time.Format(c.app.config.Time.DisplayFormat), local.Timezone)
	return nil
}

// TzListCommand handles "tz list"
type TzListCommand struct {
	app *App
}

// NewTzListCommand creates a new timezone list handler
func NewTzListCommand(app *App) *TzListCommand {
	return &TzListCommand{app: app}
}

// Execute prints the selectable timezones, optionally filtered by a
// case-insensitive substring.
func (c *TzListCommand) Execute(ctx context.Context, args []string) error {
	filter := ""
	if len(args) > 0 {
		filter = strings.ToLower(args[0])
	}
	for _, zone := range c.app.api.Timezones() {
		if filter == "" || strings.Contains(strings.ToLower(zone), filter) {
			c.app.printf("%s\n", zone)
		}
	}
	return nil
}
