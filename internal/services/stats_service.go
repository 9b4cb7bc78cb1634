package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"tztracker/internal/domain"
	"tztracker/internal/errors"
	"tztracker/internal/logging"
	"tztracker/internal/repository/sqlite"
	"tztracker/internal/timeutil"
)

const defaultReportWindow = 30 * 24 * time.Hour

// statsServiceImpl implements the StatsService interface
type statsServiceImpl struct {
	repo         sqlite.Repository
	mapper       *domain.Mapper
	now          Clock
	reportWindow time.Duration
	recentLimit  int
}

// NewStatsService creates a new StatsService instance
func NewStatsService(repo sqlite.Repository, now Clock, reportWindow time.Duration, recentLimit int) StatsService {
	if now == nil {
		now = time.Now
	}
	if reportWindow <= 0 {
		reportWindow = defaultReportWindow
	}
	if recentLimit <= 0 {
		recentLimit = defaultRecentLimit
	}
	return &statsServiceImpl{
		repo:         repo,
		mapper:       domain.NewMapper(),
		now:          now,
		reportWindow: reportWindow,
		recentLimit:  recentLimit,
	}
}

func emptySeries() *WeeklySeries {
	return &WeeklySeries{Dates: []string{}, Labels: []string{}, Hours: []float64{}}
}

// WeeklySeries returns hours per day of the Monday-anchored week containing
// ref, in ref's location. Entries count toward the day they started.
func (s *statsServiceImpl) WeeklySeries(ctx context.Context, userID int64, ref time.Time) *WeeklySeries {
	weekStart := timeutil.WeekStart(ref)
	var dayStarts [8]time.Time
	for i := range dayStarts {
		dayStarts[i] = weekStart.AddDate(0, 0, i)
	}

	rows, err := s.repo.SearchTimeEntries(ctx, s.mapper.Filter.ToDatabase(domain.EntryFilter{
		UserID:      userID,
		StartFrom:   &dayStarts[0],
		StartBefore: &dayStarts[7],
		OrderBy:     domain.OrderByStartAsc,
	}))
	if err != nil {
		logging.Debugf("weekly series for user %d: %v\n", userID, err)
		return emptySeries()
	}

	now := s.now()
	var seconds [7]int64
	for _, entry := range s.mapper.TimeEntry.FromDatabaseSlice(rows) {
		day := dayIndex(entry.StartTime, dayStarts)
		if day < 0 {
			continue
		}
		seconds[day] += entry.EffectiveSeconds(now)
	}

	series := &WeeklySeries{
		Dates:  make([]string, 7),
		Labels: make([]string, 7),
		Hours:  make([]float64, 7),
	}
	for i := 0; i < 7; i++ {
		series.Dates[i] = dayStarts[i].Format("2006-01-02")
		series.Labels[i] = dayStarts[i].Format("Mon")
		series.Hours[i] = timeutil.Hours(seconds[i])
	}
	return series
}

// dayIndex finds the day bucket of t. Comparing against real day starts
// keeps 23 and 25 hour DST days correct.
func dayIndex(t time.Time, dayStarts [8]time.Time) int {
	for i := 6; i >= 0; i-- {
		if !t.Before(dayStarts[i]) {
			if t.Before(dayStarts[i+1]) {
				return i
			}
			return -1
		}
	}
	return -1
}

// ProjectTotals sums tracked time per project. Without a window only
// completed entries count. With a window every entry started inside it
// counts, running ones with their live elapsed time.
func (s *statsServiceImpl) ProjectTotals(ctx context.Context, userID int64, window *TimeRange) []ProjectTotal {
	filter := domain.EntryFilter{UserID: userID, OrderBy: domain.OrderByStartAsc}
	if window == nil {
		completed := domain.StatusCompleted
		filter.Status = &completed
	} else {
		filter.StartFrom = &window.Start
		filter.StartBefore = &window.End
	}

	rows, err := s.repo.SearchTimeEntries(ctx, s.mapper.Filter.ToDatabase(filter))
	if err != nil {
		logging.Debugf("project totals for user %d: %v\n", userID, err)
		return []ProjectTotal{}
	}
	projects, err := s.repo.ListProjects(ctx, userID)
	if err != nil {
		logging.Debugf("project totals for user %d: %v\n", userID, err)
		return []ProjectTotal{}
	}

	byID := make(map[int64]*sqlite.Project, len(projects))
	for _, p := range projects {
		byID[p.ID] = p
	}

	sums := make(map[int64]int64)
	for _, entry := range s.mapper.TimeEntry.FromDatabaseSlice(rows) {
		sums[entry.ProjectID] += s.totalSeconds(entry)
	}

	totals := make([]ProjectTotal, 0, len(sums))
	for projectID, secs := range sums {
		total := ProjectTotal{
			ProjectID:    projectID,
			Name:         fmt.Sprintf("project %d", projectID),
			Color:        domain.DefaultProjectColor,
			TotalSeconds: secs,
			Hours:        timeutil.Hours(secs),
			Formatted:    timeutil.FormatHoursMinutes(secs),
		}
		if p, ok := byID[projectID]; ok {
			project := s.mapper.Project.FromDatabase(p)
			total.Name = project.Name
			total.Color = project.DisplayColor()
		}
		totals = append(totals, total)
	}

	sort.Slice(totals, func(i, j int) bool {
		if totals[i].TotalSeconds != totals[j].TotalSeconds {
			return totals[i].TotalSeconds > totals[j].TotalSeconds
		}
		if totals[i].Name != totals[j].Name {
			return totals[i].Name < totals[j].Name
		}
		return totals[i].ProjectID < totals[j].ProjectID
	})
	return totals
}

// Dashboard gathers the overview for a user in their own timezone.
func (s *statsServiceImpl) Dashboard(ctx context.Context, userID int64) (*DashboardData, error) {
	row, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	user := s.mapper.User.FromDatabase(row)
	now := timeutil.NowIn(user.ZoneOrUTC(), s.now)

	data := &DashboardData{
		Now:      now,
		Timezone: now.Location().String(),
		Recent:   []*domain.TimeEntry{},
	}

	active, err := s.repo.GetRunningTimeEntry(ctx, userID)
	switch {
	case err == nil:
		data.Active = s.mapper.TimeEntry.FromDatabase(active)
	case !errors.IsNotFound(err):
		logging.Debugf("dashboard active entry for user %d: %v\n", userID, err)
	}

	recent, err := s.repo.SearchTimeEntries(ctx, s.mapper.Filter.ToDatabase(domain.EntryFilter{
		UserID:  userID,
		OrderBy: domain.OrderByCreatedDesc,
		Limit:   s.recentLimit,
	}))
	if err != nil {
		logging.Debugf("dashboard recent entries for user %d: %v\n", userID, err)
	} else {
		data.Recent = s.mapper.TimeEntry.FromDatabaseSlice(recent)
	}

	data.Weekly = s.WeeklySeries(ctx, userID, now)
	data.ProjectTotals = s.ProjectTotals(ctx, userID, nil)
	return data, nil
}

// ReportWindow returns the trailing report window. End is exclusive, so it
// is pushed one second past now to include entries started this second.
func (s *statsServiceImpl) ReportWindow() *TimeRange {
	now := s.now().UTC()
	return &TimeRange{Start: now.Add(-s.reportWindow), End: now.Add(time.Second)}
}

// totalSeconds is an entry's share of a project total: live elapsed time
// while running, otherwise the stored duration with null counted as 0.
// Unlike the weekly series, no start..end fallback is applied.
func (s *statsServiceImpl) totalSeconds(entry *domain.TimeEntry) int64 {
	if entry.IsRunning() {
		return timeutil.ElapsedSeconds(entry.StartTime, s.now)
	}
	return entry.StoredDuration()
}
