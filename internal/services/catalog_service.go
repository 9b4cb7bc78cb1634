package services

import (
	"context"
	"strings"

	"tztracker/internal/domain"
	"tztracker/internal/errors"
	"tztracker/internal/repository/sqlite"
	"tztracker/internal/validation"
)

// catalogServiceImpl implements the CatalogService interface
type catalogServiceImpl struct {
	repo      sqlite.Repository
	mapper    *domain.Mapper
	validator *validation.CatalogValidator
}

// NewCatalogService creates a new CatalogService instance
func NewCatalogService(repo sqlite.Repository, validator *validation.CatalogValidator) CatalogService {
	if validator == nil {
		validator = validation.NewCatalogValidator()
	}
	return &catalogServiceImpl{repo: repo, mapper: domain.NewMapper(), validator: validator}
}

// CreateUser creates a user. An empty timezone means UTC.
func (s *catalogServiceImpl) CreateUser(ctx context.Context, username, email, timezone string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if err := s.validator.ValidateUser(username, email, timezone); err != nil {
		return nil, err
	}
	user := &domain.User{Username: username, Email: strings.TrimSpace(email), Timezone: timezone}
	user.Timezone = user.ZoneOrUTC()

	row := s.mapper.User.ToDatabase(user)
	if err := s.repo.CreateUser(ctx, row); err != nil {
		return nil, err
	}
	return s.mapper.User.FromDatabase(row), nil
}

// GetUser retrieves a user by ID.
func (s *catalogServiceImpl) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	row, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.mapper.User.FromDatabase(row), nil
}

// EnsureUser returns the user with username, creating it when missing.
func (s *catalogServiceImpl) EnsureUser(ctx context.Context, username, defaultTimezone string) (*domain.User, error) {
	row, err := s.repo.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err == nil {
		return s.mapper.User.FromDatabase(row), nil
	}
	if !errors.IsNotFound(err) {
		return nil, err
	}
	return s.CreateUser(ctx, username, "", defaultTimezone)
}

// ListUsers returns all users ordered by username.
func (s *catalogServiceImpl) ListUsers(ctx context.Context) ([]*domain.User, error) {
	rows, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	return s.mapper.User.FromDatabaseSlice(rows), nil
}

// SetUserTimezone changes the display timezone of a user.
func (s *catalogServiceImpl) SetUserTimezone(ctx context.Context, id int64, timezone string) (*domain.User, error) {
	row, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validator.ValidateUser(row.Username, row.Email, timezone); err != nil {
		return nil, err
	}
	row.Timezone = (&domain.User{Timezone: timezone}).ZoneOrUTC()
	if err := s.repo.UpdateUser(ctx, row); err != nil {
		return nil, err
	}
	return s.mapper.User.FromDatabase(row), nil
}

// DeleteUser deletes a user with all their projects and entries.
func (s *catalogServiceImpl) DeleteUser(ctx context.Context, id int64) error {
	return s.repo.DeleteUser(ctx, id)
}

// CreateProject creates a project for userID. An empty color means the default.
func (s *catalogServiceImpl) CreateProject(ctx context.Context, userID int64, name, description, color string) (*domain.Project, error) {
	if err := s.validator.ValidateProject(userID, name, description, color); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	project := domain.NewProject(userID, strings.TrimSpace(name))
	project.Description = strings.TrimSpace(description)
	if color != "" {
		project.Color = color
	}

	row := s.mapper.Project.ToDatabase(&project)
	if err := s.repo.CreateProject(ctx, row); err != nil {
		return nil, err
	}
	return s.mapper.Project.FromDatabase(row), nil
}

// GetProject returns a project owned by userID.
func (s *catalogServiceImpl) GetProject(ctx context.Context, userID, projectID int64) (*domain.Project, error) {
	row, err := ownedProject(ctx, s.repo, userID, projectID)
	if err != nil {
		return nil, err
	}
	return s.mapper.Project.FromDatabase(row), nil
}

// ListProjects returns the user's projects ordered by name.
func (s *catalogServiceImpl) ListProjects(ctx context.Context, userID int64) ([]*domain.Project, error) {
	rows, err := s.repo.ListProjects(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.mapper.Project.FromDatabaseSlice(rows), nil
}

// UpdateProject overwrites name, description and color.
func (s *catalogServiceImpl) UpdateProject(ctx context.Context, userID, projectID int64, name, description, color string) (*domain.Project, error) {
	if err := s.validator.ValidateProject(userID, name, description, color); err != nil {
		return nil, err
	}
	row, err := ownedProject(ctx, s.repo, userID, projectID)
	if err != nil {
		return nil, err
	}

	project := s.mapper.Project.FromDatabase(row)
	project.Name = strings.TrimSpace(name)
	project.Description = strings.TrimSpace(description)
	project.Color = color

	updated := s.mapper.Project.ToDatabase(project)
	if err := s.repo.UpdateProject(ctx, updated); err != nil {
		return nil, err
	}
	return s.mapper.Project.FromDatabase(updated), nil
}

// DeleteProject deletes a project with its tasks and entries.
func (s *catalogServiceImpl) DeleteProject(ctx context.Context, userID, projectID int64) error {
	return s.repo.WithTx(ctx, func(tx sqlite.Store) error {
		if _, err := ownedProject(ctx, tx, userID, projectID); err != nil {
			return err
		}
		return tx.DeleteProject(ctx, projectID)
	})
}

// CreateTask creates a task under a project owned by userID.
func (s *catalogServiceImpl) CreateTask(ctx context.Context, userID, projectID int64, name, description string) (*domain.Task, error) {
	if err := s.validator.ValidateTask(projectID, name, description); err != nil {
		return nil, err
	}
	if _, err := ownedProject(ctx, s.repo, userID, projectID); err != nil {
		return nil, err
	}

	task := domain.NewTask(projectID, strings.TrimSpace(name))
	task.Description = strings.TrimSpace(description)

	row := s.mapper.Task.ToDatabase(&task)
	if err := s.repo.CreateTask(ctx, row); err != nil {
		return nil, err
	}
	return s.mapper.Task.FromDatabase(row), nil
}

// ListTasks returns the tasks of a project owned by userID.
func (s *catalogServiceImpl) ListTasks(ctx context.Context, userID, projectID int64) ([]*domain.Task, error) {
	if _, err := ownedProject(ctx, s.repo, userID, projectID); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListTasks(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return s.mapper.Task.FromDatabaseSlice(rows), nil
}

// UpdateTask overwrites name and description.
func (s *catalogServiceImpl) UpdateTask(ctx context.Context, userID, taskID int64, name, description string) (*domain.Task, error) {
	row, err := ownedTask(ctx, s.repo, userID, taskID)
	if err != nil {
		return nil, err
	}
	if err := s.validator.ValidateTask(row.ProjectID, name, description); err != nil {
		return nil, err
	}

	task := s.mapper.Task.FromDatabase(row)
	task.Name = strings.TrimSpace(name)
	task.Description = strings.TrimSpace(description)

	updated := s.mapper.Task.ToDatabase(task)
	if err := s.repo.UpdateTask(ctx, updated); err != nil {
		return nil, err
	}
	return task, nil
}

// DeleteTask deletes a task with its entries.
func (s *catalogServiceImpl) DeleteTask(ctx context.Context, userID, taskID int64) error {
	return s.repo.WithTx(ctx, func(tx sqlite.Store) error {
		if _, err := ownedTask(ctx, tx, userID, taskID); err != nil {
			return err
		}
		return tx.DeleteTask(ctx, taskID)
	})
}
