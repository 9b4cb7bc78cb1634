package services

import (
	"context"
	"testing"
	"time"

	"tztracker/internal/repository/sqlite"

	"github.com/stretchr/testify/require"
)

// testClock is a settable clock for deterministic "now".
type testClock struct {
	now time.Time
}

func newTestClock(t time.Time) *testClock { return &testClock{now: t} }

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type fixture struct {
	user    *sqlite.User
	project *sqlite.Project
	task    *sqlite.Task
}

func setupRepo(t *testing.T) *sqlite.SQLiteRepository {
	t.Helper()
	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func seedUser(t *testing.T, repo sqlite.Repository, username, timezone string) fixture {
	t.Helper()
	ctx := context.Background()

	user := &sqlite.User{Username: username, Timezone: timezone}
	require.NoError(t, repo.CreateUser(ctx, user))
	project := &sqlite.Project{UserID: user.ID, Name: "Website", Color: "#336699"}
	require.NoError(t, repo.CreateProject(ctx, project))
	task := &sqlite.Task{ProjectID: project.ID, Name: "Design"}
	require.NoError(t, repo.CreateTask(ctx, task))

	return fixture{user: user, project: project, task: task}
}

// insertEntry stores an entry directly, bypassing the timer.
func insertEntry(t *testing.T, repo sqlite.Repository, e *sqlite.TimeEntry) *sqlite.TimeEntry {
	t.Helper()
	require.NoError(t, repo.CreateTimeEntry(context.Background(), e))
	return e
}

func int64Ptr(v int64) *int64 { return &v }

func timePtr(t time.Time) *time.Time { return &t }
