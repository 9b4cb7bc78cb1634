package domain

import "time"

// User owns projects and time entries. Timezone is an IANA zone name used
// for display only; all stored instants are UTC.
type User struct {
	ID        int64
	Username  string
	Email     string
	Timezone  string
	CreatedAt time.Time
}

// ZoneOrUTC returns the user's timezone, defaulting to UTC.
func (u User) ZoneOrUTC() string {
	if u.Timezone == "" {
		return "UTC"
	}
	return u.Timezone
}
