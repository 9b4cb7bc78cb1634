package timeutil

import (
	"testing"
	"time"

	"tztracker/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurationSeconds(t *testing.T) {
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		expected int64
	}{
		{"should count whole seconds", base, base.Add(90*time.Minute + 500*time.Millisecond), 5400},
		{"should be zero for equal instants", base, base, 0},
		{"should clamp negative spans to zero", base, base.Add(-time.Minute), 0},
		{"should ignore the zone each side is expressed in", base, base.Add(time.Hour).In(tokyo), 3600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DurationSeconds(tt.start, tt.end))
		})
	}
}

func TestElapsedSeconds(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	now := func() time.Time { return start.Add(2 * time.Hour) }

	assert.Equal(t, int64(7200), ElapsedSeconds(start, now))
	assert.GreaterOrEqual(t, ElapsedSeconds(time.Now().Add(-time.Minute), nil), int64(59))
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected int64
		wantErr  bool
	}{
		{name: "should parse padded text", text: "01:01:01", expected: 3661},
		{name: "should parse unpadded text", text: "1:2:3", expected: 3723},
		{name: "should parse explicit zero", text: "00:00:00", expected: 0},
		{name: "should parse hours beyond 99", text: "125:00:00", expected: 450000},
		{name: "should tolerate surrounding whitespace", text: " 00:10:00 ", expected: 600},
		{name: "should reject words", text: "bad", wantErr: true},
		{name: "should reject empty text", text: "", wantErr: true},
		{name: "should reject missing separator", text: "01:01", wantErr: true},
		{name: "should reject extra separator", text: "01:01:01:01", wantErr: true},
		{name: "should reject non-numeric part", text: "01:xx:01", wantErr: true},
		{name: "should reject empty part", text: "01::01", wantErr: true},
		{name: "should reject signed part", text: "-1:00:00", wantErr: true},
		{name: "should reject hours that overflow when multiplied", text: "9223372036854775807:00:00", wantErr: true},
		{name: "should reject a total beyond the maximum", text: "3000000:00:00", wantErr: true},
		{name: "should reject seconds beyond the maximum", text: "0:0:9223372036854775807", wantErr: true},
		{name: "should accept the maximum", text: "0:0:9223372036", expected: MaxDurationSeconds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseDuration(tt.text)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorType(err, errors.ErrorTypeMalformedDuration))
				assert.Equal(t, int64(0), result)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds  int64
		expected string
	}{
		{0, "00:00:00"},
		{59, "00:00:59"},
		{3661, "01:01:01"},
		{86399, "23:59:59"},
		{450000, "125:00:00"},
		{-5, "00:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDuration(tt.seconds))
		})
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	for _, n := range []int64{0, 1, 59, 60, 3599, 3600, 3661, 86400, 360000, 1234567, 9999999} {
		parsed, err := ParseDuration(FormatDuration(n))
		require.NoError(t, err)
		assert.Equal(t, n, parsed, "round trip of %d", n)
	}
}

func TestFormatHoursMinutes(t *testing.T) {
	assert.Equal(t, "2h 0m", FormatHoursMinutes(7200))
	assert.Equal(t, "1h 59m", FormatHoursMinutes(7199))
	assert.Equal(t, "0h 0m", FormatHoursMinutes(59))
	assert.Equal(t, "0h 0m", FormatHoursMinutes(-1))
}

func TestHours(t *testing.T) {
	assert.Equal(t, 2.0, Hours(7200))
	assert.Equal(t, 0.5, Hours(1800))
	assert.Equal(t, 0.2, Hours(700))
	assert.Equal(t, 0.0, Hours(0))
	assert.Equal(t, 0.0, Hours(-60))
}
