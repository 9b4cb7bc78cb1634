package config

import (
	"context"
	"fmt"
	"os"

	"tztracker/internal/repository/sqlite"
)

// Environment selects where the repository lives.
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// EnvironmentVar names the variable read by GetEnvironment.
const EnvironmentVar = "TZT_ENV"

// GetEnvironment determines the current environment, defaulting to production.
func GetEnvironment() Environment {
	switch Environment(os.Getenv(EnvironmentVar)) {
	case Development:
		return Development
	case Testing:
		return Testing
	default:
		return Production
	}
}

// RepositoryFactory creates repository instances based on environment
type RepositoryFactory struct {
	env    Environment
	config *Config
}

// NewRepositoryFactory creates a new repository factory for the given environment
func NewRepositoryFactory(env Environment, cfg *Config) *RepositoryFactory {
	return &RepositoryFactory{env: env, config: cfg}
}

// CreateRepository creates a repository instance based on the current environment
func (rf *RepositoryFactory) CreateRepository(ctx context.Context) (sqlite.Repository, error) {
	switch rf.env {
	case Development:
		// Local database file in the working directory
		return openRepository(ctx, rf.config.Database.Filename, rf.config)
	case Testing:
		return CreateTestRepository()
	default:
		return CreateRepository(ctx, rf.config)
	}
}

// CreateRepository creates a repository instance using the configuration system
func CreateRepository(ctx context.Context, config *Config) (sqlite.Repository, error) {
	if err := os.MkdirAll(config.Database.Dir, os.FileMode(config.Database.DirPermissions)); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	return openRepository(ctx, config.GetDatabasePath(), config)
}

// CreateTestRepository creates an in-memory repository for testing
func CreateTestRepository() (sqlite.Repository, error) {
	repo, err := sqlite.New(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize test database: %w", err)
	}
	return repo, nil
}

func openRepository(ctx context.Context, dbPath string, config *Config) (sqlite.Repository, error) {
	repo, err := sqlite.NewWithOptions(ctx, dbPath, sqlite.Options{
		BusyTimeout: config.GetWriteTimeout(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return repo, nil
}
