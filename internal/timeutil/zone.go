package timeutil

import (
	"sort"
	"sync"
	"time"
	_ "time/tzdata"

	"tztracker/internal/errors"
	"tztracker/internal/logging"
)

// WallClockLayout is the layout accepted by the timezone converter.
const WallClockLayout = "2006-01-02 15:04"

var (
	locMu    sync.RWMutex
	locCache = map[string]*time.Location{}
)

// LoadLocation resolves an IANA zone name, caching the result. An empty
// name means UTC. "Local" is rejected because it depends on the host.
func LoadLocation(zone string) (*time.Location, error) {
	if zone == "" || zone == "UTC" {
		return time.UTC, nil
	}
	if zone == "Local" {
		return nil, errors.NewInvalidTimezoneError(zone, nil)
	}

	locMu.RLock()
	loc, ok := locCache[zone]
	locMu.RUnlock()
	if ok {
		return loc, nil
	}

	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, errors.NewInvalidTimezoneError(zone, err)
	}

	locMu.Lock()
	locCache[zone] = loc
	locMu.Unlock()
	return loc, nil
}

// IsValidTimezone reports whether zone resolves to a location.
func IsValidTimezone(zone string) bool {
	_, err := LoadLocation(zone)
	return err == nil
}

// Localize re-expresses the instant t in zone.
func Localize(t time.Time, zone string) (time.Time, error) {
	loc, err := LoadLocation(zone)
	if err != nil {
		return time.Time{}, err
	}
	return t.In(loc), nil
}

// AttachZone reads the wall-clock fields of wall as local time in zone.
// The location already carried by wall is ignored.
func AttachZone(wall time.Time, zone string) (time.Time, error) {
	loc, err := LoadLocation(zone)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(wall.Year(), wall.Month(), wall.Day(),
		wall.Hour(), wall.Minute(), wall.Second(), wall.Nanosecond(), loc), nil
}

// ConvertTimezone treats wall as local to fromZone and expresses it in toZone.
func ConvertTimezone(wall time.Time, fromZone, toZone string) (time.Time, error) {
	attached, err := AttachZone(wall, fromZone)
	if err != nil {
		return time.Time{}, err
	}
	return Localize(attached, toZone)
}

// ParseWallClock parses text with layout as local time in zone.
func ParseWallClock(text, layout, zone string) (time.Time, error) {
	loc, err := LoadLocation(zone)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.ParseInLocation(layout, text, loc)
	if err != nil {
		return time.Time{}, errors.NewInvalidInputError("date_time", text, "expected format "+layout)
	}
	return t, nil
}

// NowIn returns now expressed in zone. An unknown zone falls back to UTC so
// a broken preference never blocks rendering.
func NowIn(zone string, now func() time.Time) time.Time {
	if now == nil {
		now = time.Now
	}
	t, err := Localize(now(), zone)
	if err != nil {
		logging.Debugf("timezone %q unavailable, using UTC: %v\n", zone, err)
		return now().UTC()
	}
	return t
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WeekStart returns Monday 00:00 of the week containing t, in t's location.
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7 // Monday = 0
	return StartOfDay(t).AddDate(0, 0, -offset)
}

// CommonTimezones returns the zone names offered to users, sorted.
func CommonTimezones() []string {
	zones := make([]string, len(commonTimezones))
	copy(zones, commonTimezones)
	sort.Strings(zones)
	return zones
}

var commonTimezones = []string{
	"UTC",
	"Africa/Cairo", "Africa/Johannesburg", "Africa/Lagos", "Africa/Nairobi",
	"America/Anchorage", "America/Argentina/Buenos_Aires", "America/Bogota",
	"America/Chicago", "America/Denver", "America/Halifax", "America/Los_Angeles",
	"America/Mexico_City", "America/New_York", "America/Phoenix", "America/Sao_Paulo",
	"America/St_Johns", "America/Toronto", "America/Vancouver",
	"Asia/Bangkok", "Asia/Dhaka", "Asia/Dubai", "Asia/Hong_Kong", "Asia/Jakarta",
	"Asia/Jerusalem", "Asia/Karachi", "Asia/Kathmandu", "Asia/Kolkata", "Asia/Manila",
	"Asia/Seoul", "Asia/Shanghai", "Asia/Singapore", "Asia/Tehran", "Asia/Tokyo",
	"Atlantic/Reykjavik",
	"Australia/Adelaide", "Australia/Brisbane", "Australia/Perth", "Australia/Sydney",
	"Europe/Amsterdam", "Europe/Athens", "Europe/Berlin", "Europe/Dublin",
	"Europe/Istanbul", "Europe/Lisbon", "Europe/London", "Europe/Madrid",
	"Europe/Moscow", "Europe/Paris", "Europe/Rome", "Europe/Stockholm",
	"Europe/Warsaw", "Europe/Zurich",
	"Pacific/Auckland", "Pacific/Honolulu",
}
