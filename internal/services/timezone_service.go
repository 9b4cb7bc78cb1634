package services

import (
	"context"
	"time"

	"tztracker/internal/domain"
	"tztracker/internal/repository/sqlite"
	"tztracker/internal/timeutil"
)

// timezoneServiceImpl implements the TimezoneService interface
type timezoneServiceImpl struct {
	repo   sqlite.Repository
	mapper *domain.Mapper
	now    Clock
}

// NewTimezoneService creates a new TimezoneService instance
func NewTimezoneService(repo sqlite.Repository, now Clock) TimezoneService {
	if now == nil {
		now = time.Now
	}
	return &timezoneServiceImpl{repo: repo, mapper: domain.NewMapper(), now: now}
}

// Convert reads text ("2006-01-02 15:04") as wall-clock time in fromZone
// and expresses the same instant in toZone.
func (s *timezoneServiceImpl) Convert(text, fromZone, toZone string) (*Conversion, error) {
	source, err := timeutil.ParseWallClock(text, timeutil.WallClockLayout, fromZone)
	if err != nil {
		return nil, err
	}
	target, err := timeutil.Localize(source, toZone)
	if err != nil {
		return nil, err
	}
	return &Conversion{Source: source, Target: target}, nil
}

// Now returns the current time in the user's timezone, falling back to UTC
// when the stored zone cannot be loaded.
func (s *timezoneServiceImpl) Now(ctx context.Context, userID int64) (*LocalTime, error) {
	row, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	user := s.mapper.User.FromDatabase(row)
	now := timeutil.NowIn(user.ZoneOrUTC(), s.now)
	return &LocalTime{Time: now, Timezone: now.Location().String()}, nil
}

// ListTimezones returns the zone names offered for selection.
func (s *timezoneServiceImpl) ListTimezones() []string {
	return timeutil.CommonTimezones()
}
