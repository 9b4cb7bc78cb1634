package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"time"

	"tztracker/internal/api"
	"tztracker/internal/config"
	"tztracker/internal/domain"
	"tztracker/internal/errors"
	"tztracker/internal/timeutil"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// Command represents a CLI command
type Command interface {
	Execute(ctx context.Context, args []string) error
}

// App holds what every command handler needs: the API, the effective
// configuration, the output stream and the acting user.
type App struct {
	api    api.API
	config *config.Config
	out    io.Writer
	user   *domain.User
}

// NewApp creates a new CLI application instance. A nil out writes to stdout.
func NewApp(apiInstance api.API, cfg *config.Config, out io.Writer) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if out == nil {
		out = os.Stdout
	}
	return &App{api: apiInstance, config: cfg, out: out}
}

// currentUser resolves the configured username to a user, creating it on
// first use with the default timezone.
func (a *App) currentUser(ctx context.Context) (*domain.User, error) {
	if a.user != nil {
		return a.user, nil
	}
	user, err := a.api.EnsureUser(ctx, a.config.Application.Username, a.config.Time.DefaultTimezone)
	if err != nil {
		return nil, err
	}
	a.user = user
	return user, nil
}

func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

// formatTime renders t in the acting user's timezone.
func (a *App) formatTime(t time.Time) string {
	zone := "UTC"
	if a.user != nil {
		zone = a.user.ZoneOrUTC()
	}
	local, err := timeutil.Localize(t, zone)
	if err != nil {
		local = t.UTC()
	}
	return local.Format(a.config.Time.DisplayFormat)
}

// parseID parses a positive integer id argument.
func parseID(field, arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewInvalidInputError(field, arg, "must be a positive integer")
	}
	return id, nil
}

var shorthandRegex = regexp.MustCompile(`^(\d+)(m|h|d|w|mo|y)$`)

// parseTimeShorthand parses time shorthand like "30m", "2h", "1d", etc.
func parseTimeShorthand(shorthand string) (time.Duration, error) {
	matches := shorthandRegex.FindStringSubmatch(shorthand)
	if matches == nil {
		return 0, errors.NewInvalidInputError("window", shorthand, "use a shorthand like 30m, 2h, 7d, 2w, 3mo or 1y")
	}

	value, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0, errors.NewInvalidInputError("window", shorthand, "invalid number")
	}

	day := 24 * time.Hour
	switch matches[2] {
	case "m":
		return time.Duration(value) * time.Minute, nil
	case "h":
		return time.Duration(value) * time.Hour, nil
	case "d":
		return time.Duration(value) * day, nil
	case "w":
		return time.Duration(value) * 7 * day, nil
	case "mo":
		return time.Duration(value) * 30 * day, nil
	default:
		return time.Duration(value) * 365 * day, nil
	}
}
