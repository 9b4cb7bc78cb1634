package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"tztracker/internal/timeutil"
)

// Config holds all configuration options for the time tracker application
type Config struct {
	Database    DatabaseConfig    `yaml:"database"`
	Time        TimeConfig        `yaml:"time"`
	Validation  ValidationConfig  `yaml:"validation"`
	Stats       StatsConfig       `yaml:"stats"`
	Application ApplicationConfig `yaml:"application"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Dir            string        `yaml:"dir" env:"TZT_DB_DIR"`
	Filename       string        `yaml:"filename" env:"TZT_DB_FILENAME"`
	QueryTimeout   time.Duration `yaml:"query_timeout" env:"TZT_DB_QUERY_TIMEOUT"`
	WriteTimeout   time.Duration `yaml:"write_timeout" env:"TZT_DB_WRITE_TIMEOUT"`
	DirPermissions uint32        `yaml:"dir_permissions" env:"TZT_DB_DIR_PERMISSIONS"`
}

// TimeConfig holds time formatting configuration
type TimeConfig struct {
	DisplayFormat   string `yaml:"display_format" env:"TZT_TIME_DISPLAY_FORMAT"`
	DefaultTimezone string `yaml:"default_timezone" env:"TZT_TIME_DEFAULT_TIMEZONE"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	NameMinLength        int `yaml:"name_min_length" env:"TZT_VALIDATION_NAME_MIN"`
	NameMaxLength        int `yaml:"name_max_length" env:"TZT_VALIDATION_NAME_MAX"`
	DescriptionMaxLength int `yaml:"description_max_length" env:"TZT_VALIDATION_DESCRIPTION_MAX"`
}

// StatsConfig holds statistics defaults
type StatsConfig struct {
	ReportWindow time.Duration `yaml:"report_window" env:"TZT_STATS_REPORT_WINDOW"`
	RecentLimit  int           `yaml:"recent_limit" env:"TZT_STATS_RECENT_LIMIT"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout  time.Duration `yaml:"timeout" env:"TZT_APP_TIMEOUT"`
	Verbose  bool          `yaml:"verbose" env:"TZT_APP_VERBOSE"`
	Username string        `yaml:"username" env:"TZT_USER"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDBDir := filepath.Join(homeDir, ".tzt")

	username := os.Getenv("USER")
	if username == "" {
		username = "default"
	}

	return &Config{
		Database: DatabaseConfig{
			Dir:            defaultDBDir,
			Filename:       "tzt.db",
			QueryTimeout:   10 * time.Second,
			WriteTimeout:   5 * time.Second,
			DirPermissions: 0755,
		},
		Time: TimeConfig{
			DisplayFormat:   "2006-01-02 15:04:05",
			DefaultTimezone: "UTC",
		},
		Validation: ValidationConfig{
			NameMinLength:        1,
			NameMaxLength:        100,
			DescriptionMaxLength: 1000,
		},
		Stats: StatsConfig{
			ReportWindow: 30 * 24 * time.Hour,
			RecentLimit:  5,
		},
		Application: ApplicationConfig{
			Timeout:  60 * time.Second,
			Verbose:  false,
			Username: username,
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// GetQueryTimeout returns the database query timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return c.Database.QueryTimeout
}

// GetWriteTimeout returns the database write timeout
func (c *Config) GetWriteTimeout() time.Duration {
	return c.Database.WriteTimeout
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Database configuration
	if dir := os.Getenv("TZT_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("TZT_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if timeout := os.Getenv("TZT_DB_QUERY_TIMEOUT"); timeout != "" {
		c.Database.QueryTimeout = ParseDurationWithFallback(timeout, c.Database.QueryTimeout)
	}
	if timeout := os.Getenv("TZT_DB_WRITE_TIMEOUT"); timeout != "" {
		c.Database.WriteTimeout = ParseDurationWithFallback(timeout, c.Database.WriteTimeout)
	}
	if perms := os.Getenv("TZT_DB_DIR_PERMISSIONS"); perms != "" {
		c.Database.DirPermissions = ParseUint32WithFallback(perms, 8, c.Database.DirPermissions)
	}

	// Time configuration
	if format := os.Getenv("TZT_TIME_DISPLAY_FORMAT"); format != "" {
		c.Time.DisplayFormat = format
	}
	if zone := os.Getenv("TZT_TIME_DEFAULT_TIMEZONE"); zone != "" {
		c.Time.DefaultTimezone = zone
	}

	// Validation configuration
	if minLen := os.Getenv("TZT_VALIDATION_NAME_MIN"); minLen != "" {
		c.Validation.NameMinLength = ParseIntWithFallback(minLen, c.Validation.NameMinLength)
	}
	if maxLen := os.Getenv("TZT_VALIDATION_NAME_MAX"); maxLen != "" {
		c.Validation.NameMaxLength = ParseIntWithFallback(maxLen, c.Validation.NameMaxLength)
	}
	if maxLen := os.Getenv("TZT_VALIDATION_DESCRIPTION_MAX"); maxLen != "" {
		c.Validation.DescriptionMaxLength = ParseIntWithFallback(maxLen, c.Validation.DescriptionMaxLength)
	}

	// Stats configuration
	if window := os.Getenv("TZT_STATS_REPORT_WINDOW"); window != "" {
		c.Stats.ReportWindow = ParseDurationWithFallback(window, c.Stats.ReportWindow)
	}
	if limit := os.Getenv("TZT_STATS_RECENT_LIMIT"); limit != "" {
		c.Stats.RecentLimit = ParseIntWithFallback(limit, c.Stats.RecentLimit)
	}

	// Application configuration
	if timeout := os.Getenv("TZT_APP_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseDurationWithFallback(timeout, c.Application.Timeout)
	}
	if verbose := os.Getenv("TZT_APP_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseBoolWithFallback(verbose, c.Application.Verbose)
	}
	if user := os.Getenv("TZT_USER"); user != "" {
		c.Application.Username = user
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate database configuration
	if c.Database.Dir == "" {
		return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
	}
	if c.Database.Filename == "" {
		return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Database.WriteTimeout <= 0 {
		return &ConfigError{Field: "database.write_timeout", Message: "write timeout must be positive"}
	}

	// Validate time configuration
	if c.Time.DisplayFormat == "" {
		return &ConfigError{Field: "time.display_format", Message: "display format cannot be empty"}
	}
	if !timeutil.IsValidTimezone(c.Time.DefaultTimezone) {
		return &ConfigError{Field: "time.default_timezone", Message: "unknown timezone " + strconv.Quote(c.Time.DefaultTimezone)}
	}

	// Validate validation configuration
	if c.Validation.NameMinLength < 1 {
		return &ConfigError{Field: "validation.name_min_length", Message: "name minimum length must be at least 1"}
	}
	if c.Validation.NameMaxLength < c.Validation.NameMinLength {
		return &ConfigError{Field: "validation.name_max_length", Message: "name maximum length must be greater than minimum length"}
	}
	if c.Validation.DescriptionMaxLength < 0 {
		return &ConfigError{Field: "validation.description_max_length", Message: "description maximum length cannot be negative"}
	}

	// Validate stats configuration
	if c.Stats.ReportWindow <= 0 {
		return &ConfigError{Field: "stats.report_window", Message: "report window must be positive"}
	}
	if c.Stats.RecentLimit < 1 {
		return &ConfigError{Field: "stats.recent_limit", Message: "recent limit must be at least 1"}
	}

	// Validate application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}
	if c.Application.Username == "" {
		return &ConfigError{Field: "application.username", Message: "username cannot be empty"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
