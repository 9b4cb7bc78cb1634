// Package timeutil holds the pure time arithmetic the timer and statistics
// services are built on: second-granularity durations, HH:MM:SS text, and
// timezone lookups.
package timeutil

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"tztracker/internal/errors"
)

// DurationSeconds returns the whole seconds between start and end, never negative.
func DurationSeconds(start, end time.Time) int64 {
	secs := int64(end.Sub(start) / time.Second)
	if secs < 0 {
		return 0
	}
	return secs
}

// ElapsedSeconds is DurationSeconds with the end fixed to the supplied now.
func ElapsedSeconds(start time.Time, now func() time.Time) int64 {
	if now == nil {
		now = time.Now
	}
	return DurationSeconds(start, now())
}

// MaxDurationSeconds is the longest duration that still converts to a
// time.Duration without overflowing.
const MaxDurationSeconds = int64(math.MaxInt64 / int64(time.Second))

// ParseDuration parses "H:M:S" text into seconds. Each part must be a
// non-negative integer; zero padding is optional. Totals above
// MaxDurationSeconds are rejected.
func ParseDuration(text string) (int64, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0, errors.NewMalformedDurationError(text, "empty")
	}

	parts := strings.Split(trimmed, ":")
	if len(parts) != 3 {
		return 0, errors.NewMalformedDurationError(text, "expected HH:MM:SS")
	}

	var values [3]int64
	for i, part := range parts {
		if part == "" || strings.ContainsAny(part, "+-") {
			return 0, errors.NewMalformedDurationError(text, "non-numeric component")
		}
		n, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return 0, errors.NewMalformedDurationError(text, "non-numeric component")
		}
		values[i] = n
	}

	var total int64
	for i, unit := range [3]int64{3600, 60, 1} {
		if values[i] > (MaxDurationSeconds-total)/unit {
			return 0, errors.NewMalformedDurationError(text, "out of range")
		}
		total += values[i] * unit
	}
	return total, nil
}

// FormatDuration renders seconds as HH:MM:SS. Hours are not capped at 99.
func FormatDuration(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
}

// FormatHoursMinutes renders seconds as "{h}h {m}m", truncating both parts.
func FormatHoursMinutes(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%dh %dm", seconds/3600, (seconds%3600)/60)
}

// Hours converts seconds to hours rounded to one decimal place.
func Hours(seconds int64) float64 {
	if seconds <= 0 {
		return 0
	}
	return math.Round(float64(seconds)/360) / 10
}
