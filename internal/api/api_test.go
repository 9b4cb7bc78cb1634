package api

import (
	"context"
	"testing"
	"time"

	"tztracker/internal/domain"
	"tztracker/internal/errors"
	"tztracker/internal/repository/sqlite"
	"tztracker/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ now time.Time }

func (c *clock) Now() time.Time          { return c.now }
func (c *clock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func setupTestAPI(t *testing.T) (API, *clock) {
	t.Helper()
	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	c := &clock{now: time.Date(2024, 3, 12, 8, 0, 0, 0, time.UTC)}
	return NewWithClock(repo, nil, c.Now), c
}

func TestAPI_TimerWorkflow(t *testing.T) {
	ctx := context.Background()
	api, c := setupTestAPI(t)

	user, err := api.EnsureUser(ctx, "alice", "Europe/Paris")
	require.NoError(t, err)
	project, err := api.CreateProject(ctx, user.ID, "Website", "", "")
	require.NoError(t, err)
	task, err := api.CreateTask(ctx, user.ID, project.ID, "Design", "")
	require.NoError(t, err)

	entry, err := api.Start(ctx, user.ID, project.ID, &task.ID, "landing page")
	require.NoError(t, err)

	c.Advance(25 * time.Minute)
	_, err = api.Pause(ctx, user.ID, entry.ID)
	require.NoError(t, err)

	_, err = api.CurrentEntry(ctx, user.ID)
	assert.True(t, errors.IsNotFound(err))

	c.Advance(time.Hour)
	_, err = api.Resume(ctx, user.ID, entry.ID)
	require.NoError(t, err)

	c.Advance(5 * time.Minute)
	session, err := api.Session(ctx, user.ID, mustCurrent(t, api, user.ID))
	require.NoError(t, err)
	assert.Equal(t, "Website", session.Project.Name)
	require.NotNil(t, session.Task)
	assert.Equal(t, "Design", session.Task.Name)
	assert.Equal(t, "00:30:00", session.Elapsed)

	stopped, err := api.Stop(ctx, user.ID, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1800), *stopped.Duration)

	_, err = api.Stop(ctx, user.ID, entry.ID)
	assert.True(t, errors.IsNotApplicable(err))
	assert.Equal(t, "cannot stop a completed timer", errors.GetUserMessage(err))

	edited, err := api.Edit(ctx, user.ID, entry.ID, services.EditRequest{
		ProjectID: project.ID, Status: domain.StatusCompleted, Duration: "00:45:00", Description: "landing page",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2700), *edited.Duration)

	totals := api.ProjectTotals(ctx, user.ID, nil)
	require.Len(t, totals, 1)
	assert.Equal(t, "0h 45m", totals[0].Formatted)

	week := api.WeeklySeries(ctx, user.ID, c.Now())
	assert.Equal(t, 0.8, week.Hours[1]) // Tuesday

	dashboard, err := api.Dashboard(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Europe/Paris", dashboard.Timezone)
	assert.Nil(t, dashboard.Active)
	assert.Len(t, dashboard.Recent, 1)

	recent, err := api.RecentEntries(ctx, user.ID, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)

	require.NoError(t, api.DeleteEntry(ctx, user.ID, entry.ID))
	_, err = api.GetEntry(ctx, user.ID, entry.ID)
	assert.True(t, errors.IsNotFound(err))
}

func TestAPI_SessionWithDeletedTask(t *testing.T) {
	ctx := context.Background()
	api, _ := setupTestAPI(t)

	user, err := api.CreateUser(ctx, "bob", "", "")
	require.NoError(t, err)
	project, err := api.CreateProject(ctx, user.ID, "Ops", "", "#123456")
	require.NoError(t, err)

	entry, err := api.Start(ctx, user.ID, project.ID, nil, "")
	require.NoError(t, err)

	session, err := api.Session(ctx, user.ID, entry)
	require.NoError(t, err)
	assert.Nil(t, session.Task)
	assert.Equal(t, "00:00:00", session.Elapsed)

	_, err = api.Session(ctx, user.ID, nil)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
}

func TestAPI_Timezones(t *testing.T) {
	ctx := context.Background()
	api, _ := setupTestAPI(t)

	conversion, err := api.ConvertTimezone("2024-03-12 09:00", "Asia/Kolkata", "UTC")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-12 03:30", conversion.Target.Format("2006-01-02 15:04"))

	_, err = api.ConvertTimezone("2024-03-12 09:00", "Nowhere", "UTC")
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidTimezone))

	user, err := api.CreateUser(ctx, "carol", "", "Asia/Kolkata")
	require.NoError(t, err)
	local, err := api.CurrentTime(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asia/Kolkata", local.Timezone)
	assert.Equal(t, 13, local.Time.Hour())
	assert.Equal(t, 30, local.Time.Minute())

	assert.Contains(t, api.Timezones(), "Asia/Kolkata")
}

func mustCurrent(t *testing.T, api API, userID int64) *domain.TimeEntry {
	t.Helper()
	entry, err := api.CurrentEntry(context.Background(), userID)
	require.NoError(t, err)
	return entry
}
