package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"tztracker/internal/api"
	"tztracker/internal/config"
	"tztracker/internal/logging"
	"tztracker/internal/repository/sqlite"
)

// Opener opens the repository for the effective configuration.
type Opener func(ctx context.Context, cfg *config.Config) (sqlite.Repository, error)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd    *cobra.Command
	config *config.Config
	open   Opener
	out    io.Writer

	app  *App
	repo sqlite.Repository
}

// NewRootCommand creates the root cobra command with global flags. The
// repository is opened after flag overrides are applied, so --db-dir and
// friends take effect.
func NewRootCommand(cfg *config.Config, open Opener) *RootCommand {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	root := &RootCommand{
		config: cfg,
		open:   open,
	}

	root.cmd = &cobra.Command{
		Use:   "tzt",
		Short: "A timezone-aware command-line time tracker",
		Long: `tzt tracks time against projects and tasks with start, pause, resume
and stop timers, and reports daily, weekly and per-project totals in your
own timezone.

EXAMPLES:
  tzt project add "Website"                # Create a project
  tzt task add 1 "Design"                  # Create a task in project 1
  tzt start 1 --task 1 "landing page"      # Start a timer (stops the running one)
  tzt pause                                # Pause the running timer
  tzt resume 7                             # Resume paused entry 7
  tzt stop                                 # Stop the running timer
  tzt edit 7 --duration 01:30:00 --status completed
  tzt week                                 # Hours per day this week
  tzt projects --window 2w                 # Project totals for two weeks
  tzt dashboard                            # Overview
  tzt tz convert "2024-03-12 09:00" --from America/New_York --to Asia/Tokyo

CONFIGURATION:
  Priority order: command-line flags > environment variables > config file > defaults
  Config file: ~/.tzt/config.yaml (override with TZT_CONFIG)

    TZT_DB_DIR                  Database directory (default: ~/.tzt)
    TZT_DB_FILENAME             Database filename (default: tzt.db)
    TZT_TIME_DISPLAY_FORMAT     Time format (default: 2006-01-02 15:04:05)
    TZT_TIME_DEFAULT_TIMEZONE   Timezone for new users (default: UTC)
    TZT_STATS_REPORT_WINDOW     Report window (default: 720h)
    TZT_STATS_RECENT_LIMIT      Recent entries shown (default: 5)
    TZT_APP_TIMEOUT             Command timeout (default: 60s)
    TZT_APP_VERBOSE             Verbose output (default: false)
    TZT_USER                    Acting username (default: $USER)
    TZT_DEBUG                   Debug logging to stderr`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := root.applyFlags(); err != nil {
				return err
			}
			return root.openApp(cmd)
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Command returns the underlying cobra command.
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// SetOutput redirects command output.
func (r *RootCommand) SetOutput(w io.Writer) {
	r.out = w
	r.cmd.SetOut(w)
}

// SetArgs sets the arguments to parse instead of os.Args.
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// Execute runs the root command and closes the repository afterwards
func (r *RootCommand) Execute(ctx context.Context) error {
	err := r.cmd.ExecuteContext(ctx)
	if r.repo != nil {
		if cerr := r.repo.Close(); cerr != nil && err == nil {
			err = cerr
		}
		r.repo = nil
	}
	return err
}

func (r *RootCommand) openApp(cmd *cobra.Command) error {
	if r.open == nil {
		return fmt.Errorf("no repository configured")
	}
	repo, err := r.open(cmd.Context(), r.config)
	if err != nil {
		return NewErrorHandler().Handle("open database", err)
	}
	r.repo = repo

	out := r.out
	if out == nil {
		out = cmd.OutOrStdout()
	}
	clock := func() time.Time { return timeNow() }
	r.app = NewApp(api.NewWithClock(repo, r.config, clock), r.config, out)
	return nil
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("user", "", "Acting username (overrides TZT_USER)")

	// Database configuration
	flags.String("db-dir", "", "Database directory (overrides TZT_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides TZT_DB_FILENAME)")

	// Time configuration
	flags.String("time-format", "", "Time display format (overrides TZT_TIME_DISPLAY_FORMAT)")
	flags.String("timezone", "", "Timezone for new users (overrides TZT_TIME_DEFAULT_TIMEZONE)")

	// Stats configuration
	flags.Duration("report-window", 0, "Report window (overrides TZT_STATS_REPORT_WINDOW)")
	flags.Int("recent-limit", 0, "Recent entries shown (overrides TZT_STATS_RECENT_LIMIT)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Command timeout (overrides TZT_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose output (overrides TZT_APP_VERBOSE)")
}

// applyFlags copies changed global flags into the configuration.
func (r *RootCommand) applyFlags() error {
	flags := r.cmd.PersistentFlags()
	overrides := &config.ConfigOverrides{}

	if flags.Changed("user") {
		v, _ := flags.GetString("user")
		overrides.Username = &v
	}
	if flags.Changed("db-dir") {
		v, _ := flags.GetString("db-dir")
		overrides.DBDir = &v
	}
	if flags.Changed("db-filename") {
		v, _ := flags.GetString("db-filename")
		overrides.DBFilename = &v
	}
	if flags.Changed("time-format") {
		v, _ := flags.GetString("time-format")
		overrides.TimeFormat = &v
	}
	if flags.Changed("timezone") {
		v, _ := flags.GetString("timezone")
		overrides.DefaultTimezone = &v
	}
	if flags.Changed("report-window") {
		v, _ := flags.GetDuration("report-window")
		overrides.ReportWindow = &v
	}
	if flags.Changed("recent-limit") {
		v, _ := flags.GetInt("recent-limit")
		overrides.RecentLimit = &v
	}
	if flags.Changed("app-timeout") {
		v, _ := flags.GetDuration("app-timeout")
		overrides.Timeout = &v
	}
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		overrides.Verbose = &v
	}

	overrides.ApplyTo(r.config)
	if err := r.config.Validate(); err != nil {
		return err
	}
	if r.config.Application.Verbose {
		logging.Enable(true)
	}
	return nil
}

// run adapts a command handler to cobra, bounding it by the app timeout.
func (r *RootCommand) run(build func(cmd *cobra.Command) Command) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
		defer cancel()
		return NewErrorHandler().HandleSimple(build(cmd).Execute(ctx, args))
	}
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	r.cmd.AddCommand(r.timerCommands()...)
	r.cmd.AddCommand(r.statsCommands()...)
	r.cmd.AddCommand(r.projectCommand(), r.taskCommand(), r.userCommand(), r.tzCommand())
}

func (r *RootCommand) timerCommands() []*cobra.Command {
	var taskID int64
	startCmd := &cobra.Command{
		Use:   "start <project-id> [description]",
		Short: "Start a timer",
		Long:  "Start a timer on a project. A running timer is stopped first.",
		Args:  cobra.MinimumNArgs(1),
		RunE: r.run(func(*cobra.Command) Command {
			c := NewStartCommand(r.app)
			c.TaskID = taskID
			return c
		}),
	}
	startCmd.Flags().Int64Var(&taskID, "task", 0, "Task id within the project")

	pauseCmd := &cobra.Command{
		Use:   "pause [entry-id]",
		Short: "Pause a running timer",
		Args:  cobra.MaximumNArgs(1),
		RunE:  r.run(func(*cobra.Command) Command { return NewPauseCommand(r.app) }),
	}

	resumeCmd := &cobra.Command{
		Use:   "resume <entry-id>",
		Short: "Resume a paused timer",
		Long:  "Resume a paused timer. A different running timer is stopped first.",
		Args:  cobra.ExactArgs(1),
		RunE:  r.run(func(*cobra.Command) Command { return NewResumeCommand(r.app) }),
	}

	stopCmd := &cobra.Command{
		Use:   "stop [entry-id]",
		Short: "Stop a running or paused timer",
		Args:  cobra.MaximumNArgs(1),
		RunE:  r.run(func(*cobra.Command) Command { return NewStopCommand(r.app) }),
	}

	editCmd := &cobra.Command{
		Use:   "edit <entry-id>",
		Short: "Edit a time entry",
		Long: `Edit a time entry. Unset flags keep the stored value.

A duration of 00:00:00 keeps the stored duration. Setting the status to
completed sets the end time to start plus duration.`,
		Args: cobra.ExactArgs(1),
		RunE: r.run(func(cmd *cobra.Command) Command {
			c := NewEditCommand(r.app)
			c.ProjectID = changedInt64(cmd, "project")
			c.TaskID = changedInt64(cmd, "task")
			c.Status = changedString(cmd, "status")
			c.Duration = changedString(cmd, "duration")
			c.Description = changedString(cmd, "description")
			return c
		}),
	}
	editCmd.Flags().Int64("project", 0, "Project id")
	editCmd.Flags().Int64("task", 0, "Task id (0 detaches the task)")
	editCmd.Flags().String("status", "", "running, paused or completed")
	editCmd.Flags().String("duration", "", "Duration as HH:MM:SS")
	editCmd.Flags().String("description", "", "Description")

	currentCmd := &cobra.Command{
		Use:   "current",
		Short: "Show the running timer",
		Args:  cobra.NoArgs,
		RunE:  r.run(func(*cobra.Command) Command { return NewCurrentCommand(r.app) }),
	}

	listCmd := &cobra.Command{
		Use:   "list [limit]",
		Short: "List recent time entries",
		Args:  cobra.MaximumNArgs(1),
		RunE:  r.run(func(*cobra.Command) Command { return NewListCommand(r.app) }),
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <entry-id>",
		Short: "Delete a time entry",
		Args:  cobra.ExactArgs(1),
		RunE:  r.run(func(*cobra.Command) Command { return NewDeleteCommand(r.app) }),
	}

	return []*cobra.Command{startCmd, pauseCmd, resumeCmd, stopCmd, editCmd, currentCmd, listCmd, deleteCmd}
}

func (r *RootCommand) statsCommands() []*cobra.Command {
	weekCmd := &cobra.Command{
		Use:   "week [2006-01-02]",
		Short: "Show hours per day for a week",
		Long:  "Show hours per day for the Monday-anchored week containing the given date, in your timezone.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  r.run(func(*cobra.Command) Command { return NewWeekCommand(r.app) }),
	}

	var window string
	var report bool
	projectsCmd := &cobra.Command{
		Use:   "projects",
		Short: "Show tracked time per project",
		Long: `Show tracked time per project.

Without flags all completed entries count. With --window or --report every
entry started in the period counts, running timers included.

Window shorthand: 30m, 2h, 7d, 2w, 3mo, 1y`,
		Args: cobra.NoArgs,
		RunE: r.run(func(*cobra.Command) Command {
			c := NewProjectsCommand(r.app)
			c.Window = window
			c.Report = report
			return c
		}),
	}
	projectsCmd.Flags().StringVar(&window, "window", "", "Trailing period, e.g. 7d")
	projectsCmd.Flags().BoolVar(&report, "report", false, "Use the configured report window")

	dashboardCmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show an overview",
		Args:  cobra.NoArgs,
		RunE:  r.run(func(*cobra.Command) Command { return NewDashboardCommand(r.app) }),
	}

	return []*cobra.Command{weekCmd, projectsCmd, dashboardCmd}
}

func (r *RootCommand) projectCommand() *cobra.Command {
	projectCmd := &cobra.Command{Use: "project", Short: "Manage projects"}

	var color, description string
	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a project",
		Args:  cobra.MinimumNArgs(1),
		RunE: r.run(func(*cobra.Command) Command {
			c := NewProjectAddCommand(r.app)
			c.Color = color
			c.Description = description
			return c
		}),
	}
	addCmd.Flags().StringVar(&color, "color", "", "Hex color, e.g. #336699")
	addCmd.Flags().StringVar(&description, "description", "", "Description")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List projects and their tasks",
		Args:  cobra.NoArgs,
		RunE:  r.run(func(*cobra.Command) Command { return NewProjectListCommand(r.app) }),
	}

	renameCmd := &cobra.Command{
		Use:   "rename <project-id> <name>",
		Short: "Rename a project",
		Args:  cobra.MinimumNArgs(2),
		RunE: r.run(func(cmd *cobra.Command) Command {
			c := NewProjectUpdateCommand(r.app)
			c.Color = changedString(cmd, "color")
			c.Description = changedString(cmd, "description")
			return c
		}),
	}
	renameCmd.Flags().String("color", "", "Hex color, e.g. #336699")
	renameCmd.Flags().String("description", "", "Description")

	deleteCmd := &cobra.Command{
		Use:   "delete <project-id>",
		Short: "Delete a project with its tasks and entries",
		Args:  cobra.ExactArgs(1),
		RunE:  r.run(func(*cobra.Command) Command { return NewProjectDeleteCommand(r.app) }),
	}

	projectCmd.AddCommand(addCmd, listCmd, renameCmd, deleteCmd)
	return projectCmd
}

func (r *RootCommand) taskCommand() *cobra.Command {
	taskCmd := &cobra.Command{Use: "task", Short: "Manage tasks"}

	var description string
	addCmd := &cobra.Command{
		Use:   "add <project-id> <name>",
		Short: "Create a task",
		Args:  cobra.MinimumNArgs(2),
		RunE: r.run(func(*cobra.Command) Command {
			c := NewTaskAddCommand(r.app)
			c.Description = description
			return c
		}),
	}
	addCmd.Flags().StringVar(&description, "description", "", "Description")

	listCmd := &cobra.Command{
		Use:   "list <project-id>",
		Short: "List the tasks of a project",
		Args:  cobra.ExactArgs(1),
		RunE:  r.run(func(*cobra.Command) Command { return NewTaskListCommand(r.app) }),
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <task-id>",
		Short: "Delete a task with its entries",
		Args:  cobra.ExactArgs(1),
		RunE:  r.run(func(*cobra.Command) Command { return NewTaskDeleteCommand(r.app) }),
	}

	taskCmd.AddCommand(addCmd, listCmd, deleteCmd)
	return taskCmd
}

func (r *RootCommand) userCommand() *cobra.Command {
	userCmd := &cobra.Command{Use: "user", Short: "Manage users"}

	var email, timezone string
	addCmd := &cobra.Command{
		Use:   "add <username>",
		Short: "Create a user",
		Args:  cobra.ExactArgs(1),
		RunE: r.run(func(*cobra.Command) Command {
			c := NewUserAddCommand(r.app)
			c.Email = email
			c.Timezone = timezone
			return c
		}),
	}
	addCmd.Flags().StringVar(&email, "email", "", "Email address")
	addCmd.Flags().StringVar(&timezone, "tz", "", "IANA timezone")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE:  r.run(func(*cobra.Command) Command { return NewUserListCommand(r.app) }),
	}

	tzCmd := &cobra.Command{
		Use:   "tz <zone>",
		Short: "Set your display timezone",
		Args:  cobra.ExactArgs(1),
		RunE:  r.run(func(*cobra.Command) Command { return NewUserTimezoneCommand(r.app) }),
	}

	userCmd.AddCommand(addCmd, listCmd, tzCmd)
	return userCmd
}

func (r *RootCommand) tzCommand() *cobra.Command {
	tzCmd := &cobra.Command{Use: "tz", Short: "Timezone tools"}

	var from, to string
	convertCmd := &cobra.Command{
		Use:   `convert "2006-01-02 15:04"`,
		Short: "Convert a wall-clock time between timezones",
		Args:  cobra.MinimumNArgs(1),
		RunE: r.run(func(*cobra.Command) Command {
			c := NewTzConvertCommand(r.app)
			c.From = from
			c.To = to
			return c
		}),
	}
	convertCmd.Flags().StringVar(&from, "from", "", "Source timezone (default: yours)")
	convertCmd.Flags().StringVar(&to, "to", "", "Target timezone (default: yours)")

	nowCmd := &cobra.Command{
		Use:   "now [zone]",
		Short: "Show the current time in your or another timezone",
		Args:  cobra.MaximumNArgs(1),
		RunE:  r.run(func(*cobra.Command) Command { return NewTzNowCommand(r.app) }),
	}

	listCmd := &cobra.Command{
		Use:   "list [filter]",
		Short: "List selectable timezones",
		Args:  cobra.MaximumNArgs(1),
		RunE:  r.run(func(*cobra.Command) Command { return NewTzListCommand(r.app) }),
	}

	tzCmd.AddCommand(convertCmd, nowCmd, listCmd)
	return tzCmd
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil && r.config.Application.Timeout > 0 {
		return r.config.Application.Timeout
	}
	return 60 * time.Second
}

func changedString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

func changedInt64(cmd *cobra.Command, name string) *int64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetInt64(name)
	return &v
}
