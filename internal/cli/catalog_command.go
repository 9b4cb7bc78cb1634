package cli

import (
	"context"
	"strings"

	"tztracker/internal/errors"
)

// ProjectAddCommand handles "project add <name>"
type ProjectAddCommand struct {
	app          *App
	errorHandler *ErrorHandler

	Color       string
	Description string
}

// NewProjectAddCommand creates a new project add handler
func NewProjectAddCommand(app *App) *ProjectAddCommand {
	return &ProjectAddCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute creates a project owned by the acting user.
func (c *ProjectAddCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewInvalidInputError("command", "project add", "usage: tzt project add <name>")
	}
	user, err := c.app.currentUser(ctx)
	if err != nil {
		return c.errorHandler.Handle("create project", err)
	}
	project, err := c.app.api.CreateProject(ctx, user.ID, strings.Join(args, " "), c.Description, c.Color)
	if err != nil {
		return c.errorHandler.Handle("create project", err)
	}
	c.app.printf("Created project #%d: %s\n", project.ID, project.Name)
	return nil
}

// ProjectListCommand handles "project list"
type ProjectListCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewProjectListCommand creates a new project list handler
func NewProjectListCommand(app *App) *ProjectListCommand {
	return &ProjectListCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute lists the acting user's projects with their tasks.
func (c *ProjectListCommand) Execute(ctx context.Context, args []string) error {
	user, err := c.app.currentUser(ctx)
	if err != nil {
		return c.errorHandler.Handle("list projects", err)
	}
	projects, err := c.app.api.ListProjects(ctx, user.ID)
	if err != nil {
		return c.errorHandler.Handle("list projects", err)
	}
	if len(projects) == 0 {
		c.app.printf("No projects yet. Create one with: tzt project add <name>\n")
		return nil
	}

	for _, p := range projects {
		c.app.printf("#%-4d %-24s %s\n", p.ID, p.Name, p.DisplayColor())
		tasks, err := c.app.api.ListTasks(ctx, user.ID, p.ID)
		if err != nil {
			return c.errorHandler.Handle("list projects", err)
		}
		for _, t := range tasks {
			c.app.printf("      task #%-4d %s\n", t.ID, t.Name)
		}
	}
	return nil
}

// ProjectUpdateCommand handles "project rename <id> <name>"
type ProjectUpdateCommand struct {
	app          *App
	errorHandler *ErrorHandler

	Color       *string
	Description *string
}

// NewProjectUpdateCommand creates a new project update handler
func NewProjectUpdateCommand(app *App) *ProjectUpdateCommand {
	return &ProjectUpdateCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute renames a project, optionally changing color and description.
func (c *ProjectUpdateCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.NewInvalidInputError("command", "project rename", "usage: tzt project rename <project-id> <name>")
	}
	projectID, err := parseID("project_id", args[0])
	if err != nil {
		return c.errorHandler.Handle("update project", err)
	}
	user, err := c.app.currentUser(ctx)
	if err != nil {
		return c.errorHandler.Handle("update project", err)
	}
	current, err := c.app.api.GetProject(ctx, user.ID, projectID)
	if err != nil {
		return c.errorHandler.Handle("update project", err)
	}

	color, description := current.Color, current.Description
	if c.Color != nil {
		color = *c.Color
	}
	if c.Description != nil {
		description = *c.Description
	}
	project, err := c.app.api.UpdateProject(ctx, user.ID, projectID, strings.Join(args[1:], " "), description, color)
	if err != nil {
		return c.errorHandler.Handle("update project", err)
	}
	c.app.printf("Updated project #%d: %s\n", project.ID, project.Name)
	return nil
}

// ProjectDeleteCommand handles "project delete <id>"
type ProjectDeleteCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewProjectDeleteCommand creates a new project delete handler
func NewProjectDeleteCommand(app *App) *ProjectDeleteCommand {
	return &ProjectDeleteCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute deletes a project with its tasks and entries.
func (c *ProjectDeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "project delete", "usage: tzt project delete <project-id>")
	}
	projectID, err := parseID("project_id", args[0])
	if err != nil {
		return c.errorHandler.Handle("delete project", err)
	}
	user, err := c.app.currentUser(ctx)
	if err != nil {
		return c.errorHandler.Handle("delete project", err)
	}
	if err := c.app.api.DeleteProject(ctx, user.ID, projectID); err != nil {
		return c.errorHandler.Handle("delete project", err)
	}
	c.app.printf("Deleted project #%d and its entries\n", projectID)
	return nil
}

// TaskAddCommand handles "task add <project-id> <name>"
type TaskAddCommand struct {
	app          *App
	errorHandler *ErrorHandler

	Description string
}

// NewTaskAddCommand creates a new task add handler
func NewTaskAddCommand(app *App) *TaskAddCommand {
	return &TaskAddCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute creates a task under a project of the acting user.
func (c *TaskAddCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.NewInvalidInputError("command", "task add", "usage: tzt task add <project-id> <name>")
	}
	projectID, err := parseID("project_id", args[0])
	if err != nil {
		return c.errorHandler.Handle("create task", err)
	}
	user, err := c.app.currentUser(ctx)
	if err != nil {
		return c.errorHandler.Handle("create task", err)
	}
	task, err := c.app.api.CreateTask(ctx, user.ID, projectID, strings.Join(args[1:], " "), c.Description)
	if err != nil {
		return c.errorHandler.Handle("create task", err)
	}
	c.app.printf("Created task #%d: %s\n", task.ID, task.Name)
	return nil
}

// TaskListCommand handles "task list <project-id>"
type TaskListCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewTaskListCommand creates a new task list handler
func NewTaskListCommand(app *App) *TaskListCommand {
	return &TaskListCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute lists the tasks of one project.
func (c *TaskListCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "task list", "usage: tzt task list <project-id>")
	}
	projectID, err := parseID("project_id", args[0])
	if err != nil {
		return c.errorHandler.Handle("list tasks", err)
	}
	user, err := c.app.currentUser(ctx)
	if err != nil {
		return c.errorHandler.Handle("list tasks", err)
	}
	tasks, err := c.app.api.ListTasks(ctx, user.ID, projectID)
	if err != nil {
		return c.errorHandler.Handle("list tasks", err)
	}
	if len(tasks) == 0 {
		c.app.printf("No tasks in project #%d\n", projectID)
		return nil
	}
	for _, t := range tasks {
		c.app.printf("#%-4d %s\n", t.ID, t.Name)
	}
	return nil
}

// TaskDeleteCommand handles "task delete <id>"
type TaskDeleteCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewTaskDeleteCommand creates a new task delete handler
func NewTaskDeleteCommand(app *App) *TaskDeleteCommand {
	return &TaskDeleteCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute deletes a task with its entries.
func (c *TaskDeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "task delete", "usage: tzt task delete <task-id>")
	}
	taskID, err := parseID("task_id", args[0])
	if err != nil {
		return c.errorHandler.Handle("delete task", err)
	}
	user, err := c.app.currentUser(ctx)
	if err != nil {
		return c.errorHandler.Handle("delete task", err)
	}
	if err := c.app.api.DeleteTask(ctx, user.ID, taskID); err != nil {
		return c.errorHandler.Handle("delete task", err)
	}
	c.app.printf("Deleted task #%d and its entries\n", taskID)
	return nil
}

// UserAddCommand handles "user add <username>"
type UserAddCommand struct {
	app          *App
	errorHandler *ErrorHandler

	Email    string
	Timezone string
}

// NewUserAddCommand creates a new user add handler
func NewUserAddCommand(app *App) *UserAddCommand {
	return &UserAddCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute creates a user. Select it later with --user.
func (c *UserAddCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "user add", "usage: tzt user add <username>")
	}
	zone := c.Timezone
	if zone == "" {
		zone = c.app.config.Time.DefaultTimezone
	}
	user, err := c.app.api.CreateUser(ctx, args[0], c.Email, zone)
	if err != nil {
		return c.errorHandler.Handle("create user", err)
	}
	c.app.printf("Created user #%d: %s (%s)\n", user.ID, user.Username, user.Timezone)
	return nil
}

// UserListCommand handles "user list"
type UserListCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewUserListCommand creates a new user list handler
func NewUserListCommand(app *App) *UserListCommand {
	return &UserListCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute lists all users.
func (c *UserListCommand) Execute(ctx context.Context, args []string) error {
	users, err := c.app.api.ListUsers(ctx)
	if err != nil {
		return c.errorHandler.Handle("list users", err)
	}
	if len(users) == 0 {
		c.app.printf("No users yet\n")
		return nil
	}
	for _, u := range users {
		marker := " "
		if u.Username == c.app.config.Application.Username {
			marker = "*"
		}
		c.app.printf("%s #%-4d %-20s %s\n", marker, u.ID, u.Username, u.ZoneOrUTC())
	}
	return nil
}

// UserTimezoneCommand handles "user tz <zone>"
type UserTimezoneCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewUserTimezoneCommand creates a new user timezone handler
func NewUserTimezoneCommand(app *App) *UserTimezoneCommand {
	return &UserTimezoneCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute sets the acting user's display timezone.
func (c *UserTimezoneCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "user tz", "usage: tzt user tz <IANA zone>")
	}
	user, err := c.app.currentUser(ctx)
	if err != nil {
		return c.errorHandler.Handle("set timezone", err)
	}
	updated, err := c.app.api.SetUserTimezone(ctx, user.ID, args[0])
	if err != nil {
		return c.errorHandler.Handle("set timezone", err)
	}
	c.app.user = updated
	c.app.printf("Timezone for %s set to %s\n", updated.Username, updated.Timezone)
	return nil
}
