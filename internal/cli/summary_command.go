package cli

import (
	"context"
	"strings"
	"time"

	"tztracker/internal/services"
	"tztracker/internal/timeutil"
)

const barWidth = 40

// WeekCommand handles the week command
type WeekCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewWeekCommand creates a new week command handler
func NewWeekCommand(app *App) *WeekCommand {
	return &WeekCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute prints hours per day for the week containing a date in the
// user's timezone: week [2006-01-02]. The default is the current week.
func (c *WeekCommand) Execute(ctx context.Context, args []string) error {
	user, err := c.app.currentUser(ctx)
	if err != nil {
		return c.errorHandler.Handle("show week", err)
	}

	ref := timeutil.NowIn(user.ZoneOrUTC(), timeNow)
	if len(args) > 0 {
		ref, err = timeutil.ParseWallClock(args[0]+" 12:00", timeutil.WallClockLayout, user.ZoneOrUTC())
		if err != nil {
			return c.errorHandler.Handle("show week", err)
		}
	}

	series := c.app.api.WeeklySeries(ctx, user.ID, ref)
	if len(series.Dates) == 0 {
		c.app.printf("No statistics available\n")
		return nil
	}
	printSeries(c.app, series)
	return nil
}

func printSeries(app *App, series *services.WeeklySeries) {
	var total, peak float64
	for _, h := range series.Hours {
		total += h
		if h > peak {
			peak = h
		}
	}
	for i := range series.Dates {
		app.printf("%s %s %5.1fh %s\n", series.Labels[i], series.Dates[i], series.Hours[i], bar(series.Hours[i], peak))
	}
	app.printf("Total          %5.1fh\n", total)
}

func bar(value, peak float64) string {
	if peak <= 0 || value <= 0 {
		return ""
	}
	n := int(value / peak * barWidth)
	if n == 0 {
		n = 1
	}
	return strings.Repeat("#", n)
}

// ProjectsCommand handles the projects report command
type ProjectsCommand struct {
	app          *App
	errorHandler *ErrorHandler

	// Window selects entries started within the trailing shorthand period
	// ("7d", "2w"). Report uses the configured report window. With neither
	// set, all completed entries count.
	Window string
	Report bool
}

// NewProjectsCommand creates a new projects report handler
func NewProjectsCommand(app *App) *ProjectsCommand {
	return &ProjectsCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute prints tracked time per project.
func (c *ProjectsCommand) Execute(ctx context.Context, args []string) error {
	user, err := c.app.currentUser(ctx)
	if err != nil {
		return c.errorHandler.Handle("show project totals", err)
	}

	var window *services.TimeRange
	switch {
	case c.Window != "":
		d, err := parseTimeShorthand(c.Window)
		if err != nil {
			return c.errorHandler.Handle("show project totals", err)
		}
		now := timeNow().UTC()
		window = &services.TimeRange{Start: now.Add(-d), End: now.Add(time.Second)}
	case c.Report:
		window = c.app.api.ReportWindow()
	}

	totals := c.app.api.ProjectTotals(ctx, user.ID, window)
	if len(totals) == 0 {
		c.app.printf("No tracked time found\n")
		return nil
	}
	if window != nil {
		c.app.printf("From %s to %s\n", c.app.formatTime(window.Start), c.app.formatTime(window.End))
	}
	printTotals(c.app, totals)
	return nil
}

func printTotals(app *App, totals []services.ProjectTotal) {
	for _, t := range totals {
		app.printf("%-24s %-8s %6.1fh  %s\n", t.Name, t.Color, t.Hours, t.Formatted)
	}
}

// DashboardCommand handles the dashboard command
type DashboardCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewDashboardCommand creates a new dashboard command handler
func NewDashboardCommand(app *App) *DashboardCommand {
	return &DashboardCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute prints the overview: local time, active timer, recent entries,
// this week and project totals.
func (c *DashboardCommand) Execute(ctx context.Context, args []string) error {
	user, err := c.app.currentUser(ctx)
	if err != nil {
		return c.errorHandler.Handle("show dashboard", err)
	}
	data, err := c.app.api.Dashboard(ctx, user.ID)
	if err != nil {
		return c.errorHandler.Handle("show dashboard", err)
	}

	c.app.printf("%s (%s)\n\n", data.Now.Format(c.app.config.Time.DisplayFormat), data.Timezone)

	if data.Active != nil {
		c.app.printf("Active: timer #%d running for %s\n\n", data.Active.ID, elapsed(data.Active))
	} else {
		c.app.printf("Active: none\n\n")
	}

	c.app.printf("Recent entries\n")
	if len(data.Recent) == 0 {
		c.app.printf("  none\n")
	} else {
		list := &ListCommand{app: c.app}
		list.printEntries(ctx, user.ID, data.Recent)
	}

	c.app.printf("\nThis week\n")
	printSeries(c.app, data.Weekly)

	c.app.printf("\nProjects\n")
	if len(data.ProjectTotals) == 0 {
		c.app.printf("  none\n")
	} else {
		printTotals(c.app, data.ProjectTotals)
	}
	return nil
}
