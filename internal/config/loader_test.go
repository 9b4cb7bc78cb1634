package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Cascade(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("time:\n  default_timezone: Asia/Tokyo\nstats:\n  recent_limit: 7\n"), 0644))

	// Environment beats the file.
	t.Setenv("TZT_STATS_RECENT_LIMIT", "8")

	cfg, err := NewLoaderWithFile(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Tokyo", cfg.Time.DefaultTimezone)
	assert.Equal(t, 8, cfg.Stats.RecentLimit)
}

func TestLoader_LoadWithOverrides(t *testing.T) {
	zone := "Europe/London"
	window := 7 * 24 * time.Hour
	user := "bob"

	cfg, err := NewLoaderWithFile("").LoadWithOverrides(&ConfigOverrides{
		DefaultTimezone: &zone,
		ReportWindow:    &window,
		Username:        &user,
	})
	require.NoError(t, err)
	assert.Equal(t, zone, cfg.Time.DefaultTimezone)
	assert.Equal(t, window, cfg.Stats.ReportWindow)
	assert.Equal(t, "bob", cfg.Application.Username)
}

func TestLoader_OverrideRevalidated(t *testing.T) {
	bad := "Not/AZone"
	_, err := NewLoaderWithFile("").LoadWithOverrides(&ConfigOverrides{DefaultTimezone: &bad})
	assert.Error(t, err)
}

func TestParseWithFallback(t *testing.T) {
	assert.Equal(t, time.Minute, ParseDurationWithFallback("1m", time.Second))
	assert.Equal(t, time.Second, ParseDurationWithFallback("x", time.Second))
	assert.Equal(t, 3, ParseIntWithFallback("3", 1))
	assert.Equal(t, 1, ParseIntWithFallback("three", 1))
	assert.True(t, ParseBoolWithFallback("true", false))
	assert.False(t, ParseBoolWithFallback("maybe", false))
	assert.Equal(t, uint32(0700), ParseUint32WithFallback("700", 8, 0755))
	assert.Equal(t, uint32(0755), ParseUint32WithFallback("9z", 8, 0755))
}
