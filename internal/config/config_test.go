package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, "tzt.db", cfg.Database.Filename)
	assert.Equal(t, "UTC", cfg.Time.DefaultTimezone)
	assert.Equal(t, 30*24*time.Hour, cfg.Stats.ReportWindow)
	assert.Equal(t, 5, cfg.Stats.RecentLimit)
	assert.NotEmpty(t, cfg.Application.Username)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("TZT_DB_DIR", "/tmp/tzt")
	t.Setenv("TZT_TIME_DEFAULT_TIMEZONE", "Europe/Berlin")
	t.Setenv("TZT_STATS_REPORT_WINDOW", "168h")
	t.Setenv("TZT_STATS_RECENT_LIMIT", "10")
	t.Setenv("TZT_APP_VERBOSE", "true")
	t.Setenv("TZT_USER", "alice")
	t.Setenv("TZT_DB_QUERY_TIMEOUT", "not-a-duration")

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromEnvironment())

	assert.Equal(t, "/tmp/tzt", cfg.Database.Dir)
	assert.Equal(t, "Europe/Berlin", cfg.Time.DefaultTimezone)
	assert.Equal(t, 168*time.Hour, cfg.Stats.ReportWindow)
	assert.Equal(t, 10, cfg.Stats.RecentLimit)
	assert.True(t, cfg.Application.Verbose)
	assert.Equal(t, "alice", cfg.Application.Username)
	assert.Equal(t, 10*time.Second, cfg.Database.QueryTimeout, "unparseable values keep the default")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *Config)
		wantField string
	}{
		{name: "empty db dir", mutate: func(c *Config) { c.Database.Dir = "" }, wantField: "database.dir"},
		{name: "zero query timeout", mutate: func(c *Config) { c.Database.QueryTimeout = 0 }, wantField: "database.query_timeout"},
		{name: "unknown timezone", mutate: func(c *Config) { c.Time.DefaultTimezone = "Mars/Olympus" }, wantField: "time.default_timezone"},
		{name: "max below min", mutate: func(c *Config) { c.Validation.NameMaxLength = 0 }, wantField: "validation.name_max_length"},
		{name: "zero report window", mutate: func(c *Config) { c.Stats.ReportWindow = 0 }, wantField: "stats.report_window"},
		{name: "zero recent limit", mutate: func(c *Config) { c.Stats.RecentLimit = 0 }, wantField: "stats.recent_limit"},
		{name: "empty username", mutate: func(c *Config) { c.Application.Username = "" }, wantField: "application.username"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.wantField, cfgErr.Field)
		})
	}
}

func TestGetDatabasePath(t *testing.T) {
	cfg := NewConfig()
	cfg.Database.Dir = "/data"
	cfg.Database.Filename = "x.db"
	assert.Equal(t, "/data/x.db", cfg.GetDatabasePath())
}
