package cli

import (
	"context"
	"fmt"
	"strings"

	"tztracker/internal/api"
	"tztracker/internal/domain"
	"tztracker/internal/logging"
)

// ListCommand handles the list command
type ListCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute lists the most recent entries: list [limit]
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	limit := c.app.config.Stats.RecentLimit
	if len(args) > 0 {
		n, err := parseID("limit", args[0])
		if err != nil {
			return c.errorHandler.Handle("list entries", err)
		}
		limit = int(n)
	}

	user, err := c.app.currentUser(ctx)
	if err != nil {
		return c.errorHandler.Handle("list entries", err)
	}
	entries, err := c.app.api.RecentEntries(ctx, user.ID, limit)
	if err != nil {
		return c.errorHandler.Handle("list entries", err)
	}

	if len(entries) == 0 {
		c.app.printf("No time entries found\n")
		return nil
	}
	c.printEntries(ctx, user.ID, entries)
	return nil
}

func (c *ListCommand) printEntries(ctx context.Context, userID int64, entries []*domain.TimeEntry) {
	c.app.printf("%-6s %-10s %-20s %-9s %s\n", "ID", "STATUS", "STARTED", "DURATION", "PROJECT")
	for _, entry := range entries {
		description := fmt.Sprintf("project %d", entry.ProjectID)
		if session, err := c.app.api.Session(ctx, userID, entry); err == nil {
			description = describeSession(session)
		} else {
			logging.Debugf("describe entry %d: %v\n", entry.ID, err)
		}
		c.app.printf("%-6d %-10s %-20s %-9s %s\n",
			entry.ID, entry.Status, c.app.formatTime(entry.StartTime), entry.FormattedDuration(), description)
	}
}

// describeSession renders "Project / Task: description".
func describeSession(s *api.EntrySession) string {
	var b strings.Builder
	b.WriteString(s.Project.Name)
	if s.Task != nil {
		b.WriteString(" / ")
		b.WriteString(s.Task.Name)
	}
	if s.Entry.Description != "" {
		b.WriteString(": ")
		b.WriteString(s.Entry.Description)
	}
	return b.String()
}
