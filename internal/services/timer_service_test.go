package services

import (
	"context"
	"testing"
	"time"

	"tztracker/internal/domain"
	"tztracker/internal/errors"
	"tztracker/internal/repository/sqlite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC) // a Monday

func setupTimerService(t *testing.T) (TimerService, *sqlite.SQLiteRepository, *testClock, fixture) {
	t.Helper()
	repo := setupRepo(t)
	clock := newTestClock(baseTime)
	f := seedUser(t, repo, "alice", "UTC")
	return NewTimerService(repo, clock.Now, nil, 0), repo, clock, f
}

func TestTimerService_Start(t *testing.T) {
	ctx := context.Background()
	service, _, clock, f := setupTimerService(t)

	entry, err := service.Start(ctx, f.user.ID, f.project.ID, &f.task.ID, "  homepage  ")
	require.NoError(t, err)

	assert.NotZero(t, entry.ID)
	assert.Equal(t, domain.StatusRunning, entry.Status)
	assert.True(t, entry.StartTime.Equal(clock.Now()))
	assert.Nil(t, entry.EndTime)
	assert.Nil(t, entry.Duration)
	assert.Equal(t, "homepage", entry.Description)
	require.NotNil(t, entry.TaskID)
	assert.Equal(t, f.task.ID, *entry.TaskID)
}

func TestTimerService_StartCompletesRunningEntry(t *testing.T) {
	ctx := context.Background()
	service, _, clock, f := setupTimerService(t)

	first, err := service.Start(ctx, f.user.ID, f.project.ID, nil, "first")
	require.NoError(t, err)

	clock.Advance(90 * time.Minute)
	second, err := service.Start(ctx, f.user.ID, f.project.ID, nil, "second")
	require.NoError(t, err)

	previous, err := service.Get(ctx, f.user.ID, first.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, previous.Status)
	require.NotNil(t, previous.Duration)
	assert.Equal(t, int64(5400), *previous.Duration)
	require.NotNil(t, previous.EndTime)
	assert.True(t, previous.EndTime.Equal(clock.Now()))

	current, err := service.Current(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, current.ID)
}

func TestTimerService_StartOwnership(t *testing.T) {
	ctx := context.Background()
	service, repo, _, f := setupTimerService(t)
	other := seedUser(t, repo, "bob", "UTC")

	tests := []struct {
		name      string
		projectID int64
		taskID    *int64
		errType   errors.ErrorType
	}{
		{name: "should reject project of another user", projectID: other.project.ID, errType: errors.ErrorTypeNotFound},
		{name: "should reject task from another project", projectID: f.project.ID, taskID: &other.task.ID, errType: errors.ErrorTypeNotFound},
		{name: "should reject missing project", projectID: 999, errType: errors.ErrorTypeNotFound},
		{name: "should reject zero project id", projectID: 0, errType: errors.ErrorTypeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := service.Start(ctx, f.user.ID, tt.projectID, tt.taskID, "")
			assert.Nil(t, entry)
			assert.True(t, errors.IsErrorType(err, tt.errType), "got %v", err)
		})
	}

	_, err := service.Current(ctx, f.user.ID)
	assert.True(t, errors.IsNotFound(err))
}

func TestTimerService_PauseResumeStop(t *testing.T) {
	ctx := context.Background()
	service, _, clock, f := setupTimerService(t)

	entry, err := service.Start(ctx, f.user.ID, f.project.ID, nil, "")
	require.NoError(t, err)

	clock.Advance(20 * time.Minute)
	paused, err := service.Pause(ctx, f.user.ID, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaused, paused.Status)
	require.NotNil(t, paused.Duration)
	assert.Equal(t, int64(1200), *paused.Duration)
	assert.True(t, paused.StartTime.Equal(baseTime))
	assert.Nil(t, paused.EndTime)

	// Time spent paused is not counted.
	clock.Advance(time.Hour)
	resumed, err := service.Resume(ctx, f.user.ID, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRunning, resumed.Status)
	assert.True(t, resumed.StartTime.Equal(clock.Now().Add(-20*time.Minute)))

	clock.Advance(10 * time.Minute)
	stopped, err := service.Stop(ctx, f.user.ID, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, stopped.Status)
	require.NotNil(t, stopped.Duration)
	assert.Equal(t, int64(1800), *stopped.Duration)
	require.NotNil(t, stopped.EndTime)
	assert.True(t, stopped.EndTime.Equal(clock.Now()))
}

func TestTimerService_StopFromPaused(t *testing.T) {
	ctx := context.Background()
	service, _, clock, f := setupTimerService(t)

	entry, err := service.Start(ctx, f.user.ID, f.project.ID, nil, "")
	require.NoError(t, err)
	clock.Advance(15 * time.Minute)
	_, err = service.Pause(ctx, f.user.ID, entry.ID)
	require.NoError(t, err)

	clock.Advance(2 * time.Hour)
	stopped, err := service.Stop(ctx, f.user.ID, entry.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCompleted, stopped.Status)
	assert.Equal(t, int64(900), *stopped.Duration)
	require.NotNil(t, stopped.EndTime)
	assert.True(t, stopped.EndTime.Equal(clock.Now()))
}

func TestTimerService_ResumeCompletesOtherRunning(t *testing.T) {
	ctx := context.Background()
	service, _, clock, f := setupTimerService(t)

	first, err := service.Start(ctx, f.user.ID, f.project.ID, nil, "first")
	require.NoError(t, err)
	clock.Advance(10 * time.Minute)
	_, err = service.Pause(ctx, f.user.ID, first.ID)
	require.NoError(t, err)

	second, err := service.Start(ctx, f.user.ID, f.project.ID, nil, "second")
	require.NoError(t, err)
	clock.Advance(5 * time.Minute)

	_, err = service.Resume(ctx, f.user.ID, first.ID)
	require.NoError(t, err)

	other, err := service.Get(ctx, f.user.ID, second.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, other.Status)
	assert.Equal(t, int64(300), *other.Duration)

	current, err := service.Current(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, current.ID)
}

func TestTimerService_NotApplicableTransitions(t *testing.T) {
	ctx := context.Background()
	service, _, clock, f := setupTimerService(t)

	entry, err := service.Start(ctx, f.user.ID, f.project.ID, nil, "")
	require.NoError(t, err)
	clock.Advance(time.Minute)
	_, err = service.Stop(ctx, f.user.ID, entry.ID)
	require.NoError(t, err)

	tests := []struct {
		name string
		op   func() (*domain.TimeEntry, error)
		msg  string
	}{
		{name: "should not pause a completed entry", op: func() (*domain.TimeEntry, error) { return service.Pause(ctx, f.user.ID, entry.ID) }, msg: "cannot pause a completed timer"},
		{name: "should not resume a completed entry", op: func() (*domain.TimeEntry, error) { return service.Resume(ctx, f.user.ID, entry.ID) }, msg: "cannot resume a completed timer"},
		{name: "should not stop a completed entry", op: func() (*domain.TimeEntry, error) { return service.Stop(ctx, f.user.ID, entry.ID) }, msg: "cannot stop a completed timer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock.Advance(time.Hour)
			result, err := tt.op()

			assert.True(t, errors.IsNotApplicable(err))
			assert.Contains(t, err.Error(), tt.msg)
			require.NotNil(t, result)
			assert.Equal(t, domain.StatusCompleted, result.Status)
			assert.Equal(t, int64(60), *result.Duration)
		})
	}
}

func TestTimerService_PauseRequiresRunning(t *testing.T) {
	ctx := context.Background()
	service, _, _, f := setupTimerService(t)

	entry, err := service.Start(ctx, f.user.ID, f.project.ID, nil, "")
	require.NoError(t, err)
	_, err = service.Resume(ctx, f.user.ID, entry.ID)
	assert.True(t, errors.IsNotApplicable(err))

	_, err = service.Pause(ctx, f.user.ID, entry.ID)
	require.NoError(t, err)
	result, err := service.Pause(ctx, f.user.ID, entry.ID)
	assert.True(t, errors.IsNotApplicable(err))
	assert.Equal(t, domain.StatusPaused, result.Status)
}

func TestTimerService_Ownership(t *testing.T) {
	ctx := context.Background()
	service, repo, _, f := setupTimerService(t)
	other := seedUser(t, repo, "bob", "UTC")

	entry, err := service.Start(ctx, other.user.ID, other.project.ID, nil, "")
	require.NoError(t, err)

	_, err = service.Get(ctx, f.user.ID, entry.ID)
	assert.True(t, errors.IsNotFound(err))
	_, err = service.Pause(ctx, f.user.ID, entry.ID)
	assert.True(t, errors.IsNotFound(err))
	_, err = service.Stop(ctx, f.user.ID, entry.ID)
	assert.True(t, errors.IsNotFound(err))
	err = service.Delete(ctx, f.user.ID, entry.ID)
	assert.True(t, errors.IsNotFound(err))

	// The other user's timer is untouched.
	current, err := service.Current(ctx, other.user.ID)
	require.NoError(t, err)
	assert.Equal(t, entry.ID, current.ID)
}

func TestTimerService_Edit(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name           string
		stored         sqlite.TimeEntry
		req            func(f fixture) EditRequest
		expectDuration *int64
		expectEnd      *time.Time
		errorAssertion func(t *testing.T, err error)
	}{
		{
			name:   "should overwrite duration and set end for completed",
			stored: sqlite.TimeEntry{StartTime: baseTime, Status: sqlite.StatusPaused, Duration: int64Ptr(600)},
			req: func(f fixture) EditRequest {
				return EditRequest{ProjectID: f.project.ID, Status: domain.StatusCompleted, Duration: "01:30:00"}
			},
			expectDuration: int64Ptr(5400),
			expectEnd:      timePtr(baseTime.Add(90 * time.Minute)),
		},
		{
			name:   "should keep duration when text is empty",
			stored: sqlite.TimeEntry{StartTime: baseTime, Status: sqlite.StatusPaused, Duration: int64Ptr(600)},
			req: func(f fixture) EditRequest {
				return EditRequest{ProjectID: f.project.ID, Status: domain.StatusPaused}
			},
			expectDuration: int64Ptr(600),
		},
		{
			name:   "should keep duration when text is zero",
			stored: sqlite.TimeEntry{StartTime: baseTime, Status: sqlite.StatusPaused, Duration: int64Ptr(600)},
			req: func(f fixture) EditRequest {
				return EditRequest{ProjectID: f.project.ID, Status: domain.StatusPaused, Duration: "00:00:00"}
			},
			expectDuration: int64Ptr(600),
		},
		{
			name:   "should compute duration when completing without one",
			stored: sqlite.TimeEntry{StartTime: baseTime, Status: sqlite.StatusRunning},
			req: func(f fixture) EditRequest {
				return EditRequest{ProjectID: f.project.ID, Status: domain.StatusCompleted}
			},
			expectDuration: int64Ptr(3600),
			expectEnd:      timePtr(baseTime.Add(time.Hour)),
		},
		{
			name: "should clear end when reopening",
			stored: sqlite.TimeEntry{StartTime: baseTime, Status: sqlite.StatusCompleted,
				Duration: int64Ptr(60), EndTime: timePtr(baseTime.Add(time.Minute))},
			req: func(f fixture) EditRequest {
				return EditRequest{ProjectID: f.project.ID, Status: domain.StatusPaused}
			},
			expectDuration: int64Ptr(60),
		},
		{
			name:   "should reject malformed duration",
			stored: sqlite.TimeEntry{StartTime: baseTime, Status: sqlite.StatusPaused, Duration: int64Ptr(600)},
			req: func(f fixture) EditRequest {
				return EditRequest{ProjectID: f.project.ID, Status: domain.StatusPaused, Duration: "1:30"}
			},
			errorAssertion: func(t *testing.T, err error) {
				assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
			},
		},
		{
			name: "should count running time since resume when completing",
			stored: sqlite.TimeEntry{StartTime: baseTime.Add(-10 * time.Minute), Status: sqlite.StatusRunning,
				Duration: int64Ptr(600)},
			req: func(f fixture) EditRequest {
				return EditRequest{ProjectID: f.project.ID, Status: domain.StatusCompleted}
			},
			expectDuration: int64Ptr(4200),
			expectEnd:      timePtr(baseTime.Add(time.Hour)),
		},
		{
			name: "should count running time since resume when pausing",
			stored: sqlite.TimeEntry{StartTime: baseTime.Add(-10 * time.Minute), Status: sqlite.StatusRunning,
				Duration: int64Ptr(600)},
			req: func(f fixture) EditRequest {
				return EditRequest{ProjectID: f.project.ID, Status: domain.StatusPaused}
			},
			expectDuration: int64Ptr(4200),
		},
		{
			name:   "should reject duration beyond the maximum",
			stored: sqlite.TimeEntry{StartTime: baseTime, Status: sqlite.StatusRunning},
			req: func(f fixture) EditRequest {
				return EditRequest{ProjectID: f.project.ID, Status: domain.StatusCompleted, Duration: "3000000:00:00"}
			},
			errorAssertion: func(t *testing.T, err error) {
				assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
			},
		},
		{
			name:   "should reject invalid status",
			stored: sqlite.TimeEntry{StartTime: baseTime, Status: sqlite.StatusPaused},
			req: func(f fixture) EditRequest {
				return EditRequest{ProjectID: f.project.ID, Status: domain.Status("archived")}
			},
			errorAssertion: func(t *testing.T, err error) {
				assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo, clock, f := setupTimerService(t)
			clock.Advance(time.Hour)

			stored := tt.stored
			stored.UserID = f.user.ID
			stored.ProjectID = f.project.ID
			insertEntry(t, repo, &stored)

			edited, err := service.Edit(ctx, f.user.ID, stored.ID, tt.req(f))
			if tt.errorAssertion != nil {
				tt.errorAssertion(t, err)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, tt.expectDuration, edited.Duration)
			if tt.expectEnd == nil {
				assert.Nil(t, edited.EndTime)
			} else {
				require.NotNil(t, edited.EndTime)
				assert.True(t, tt.expectEnd.Equal(*edited.EndTime))
			}

			reloaded, err := service.Get(ctx, f.user.ID, stored.ID)
			require.NoError(t, err)
			assert.Equal(t, edited.Status, reloaded.Status)
			assert.Equal(t, edited.Duration, reloaded.Duration)
		})
	}
}

func TestTimerService_EditAfterResumeMatchesStop(t *testing.T) {
	ctx := context.Background()
	service, _, clock, f := setupTimerService(t)

	entry, err := service.Start(ctx, f.user.ID, f.project.ID, nil, "")
	require.NoError(t, err)
	clock.Advance(10 * time.Minute)
	_, err = service.Pause(ctx, f.user.ID, entry.ID)
	require.NoError(t, err)
	clock.Advance(5 * time.Minute)
	_, err = service.Resume(ctx, f.user.ID, entry.ID)
	require.NoError(t, err)
	clock.Advance(time.Hour)

	edited, err := service.Edit(ctx, f.user.ID, entry.ID, EditRequest{ProjectID: f.project.ID, Status: domain.StatusCompleted})
	require.NoError(t, err)

	require.NotNil(t, edited.Duration)
	assert.Equal(t, int64(4200), *edited.Duration)
	require.NotNil(t, edited.EndTime)
	assert.True(t, clock.Now().Equal(*edited.EndTime))
	assert.False(t, edited.EndTime.Before(edited.StartTime))
}

func TestTimerService_LatestPaused(t *testing.T) {
	ctx := context.Background()
	service, repo, _, f := setupTimerService(t)

	_, err := service.LatestPaused(ctx, f.user.ID)
	assert.True(t, errors.IsNotFound(err))

	older := insertEntry(t, repo, &sqlite.TimeEntry{
		UserID: f.user.ID, ProjectID: f.project.ID, StartTime: baseTime.Add(-3 * time.Hour),
		Status: sqlite.StatusPaused, Duration: int64Ptr(60),
	})
	newer := insertEntry(t, repo, &sqlite.TimeEntry{
		UserID: f.user.ID, ProjectID: f.project.ID, StartTime: baseTime.Add(-time.Hour),
		Status: sqlite.StatusPaused, Duration: int64Ptr(120),
	})
	insertEntry(t, repo, completedEntry(f, f.project.ID, baseTime.Add(-30*time.Minute), 600))

	latest, err := service.LatestPaused(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, newer.ID, latest.ID)
	assert.NotEqual(t, older.ID, latest.ID)

	other := seedUser(t, repo, "bob", "UTC")
	_, err = service.LatestPaused(ctx, other.user.ID)
	assert.True(t, errors.IsNotFound(err))
}

func TestTimerService_EditCannotCreateSecondRunning(t *testing.T) {
	ctx := context.Background()
	service, repo, _, f := setupTimerService(t)

	running, err := service.Start(ctx, f.user.ID, f.project.ID, nil, "")
	require.NoError(t, err)
	paused := insertEntry(t, repo, &sqlite.TimeEntry{
		UserID: f.user.ID, ProjectID: f.project.ID, StartTime: baseTime.Add(-time.Hour),
		Status: sqlite.StatusPaused, Duration: int64Ptr(60),
	})

	_, err = service.Edit(ctx, f.user.ID, paused.ID, EditRequest{ProjectID: f.project.ID, Status: domain.StatusRunning})
	require.Error(t, err)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrorTypeInvariantViolation, appErr.Type)
	assert.Equal(t, running.ID, appErr.Context["running_entry_id"])

	// Editing the running entry itself stays allowed.
	_, err = service.Edit(ctx, f.user.ID, running.ID, EditRequest{ProjectID: f.project.ID, Status: domain.StatusRunning, Description: "renamed"})
	assert.NoError(t, err)
}

func TestTimerService_DeleteAndRecent(t *testing.T) {
	ctx := context.Background()
	service, _, clock, f := setupTimerService(t)

	var ids []int64
	for i := 0; i < 4; i++ {
		entry, err := service.Start(ctx, f.user.ID, f.project.ID, nil, "")
		require.NoError(t, err)
		ids = append(ids, entry.ID)
		clock.Advance(time.Minute)
	}

	recent, err := service.Recent(ctx, f.user.ID, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, ids[3], recent[0].ID)
	assert.Equal(t, ids[2], recent[1].ID)

	require.NoError(t, service.Delete(ctx, f.user.ID, ids[3]))
	_, err = service.Get(ctx, f.user.ID, ids[3])
	assert.True(t, errors.IsNotFound(err))

	recent, err = service.Recent(ctx, f.user.ID, 0)
	require.NoError(t, err)
	assert.Len(t, recent, 3)
}
