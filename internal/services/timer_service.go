package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	"tztracker/internal/domain"
	"tztracker/internal/errors"
	"tztracker/internal/logging"
	"tztracker/internal/repository/sqlite"
	"tztracker/internal/timeutil"
	"tztracker/internal/validation"
)

const defaultRecentLimit = 5

// timerServiceImpl implements the TimerService interface
type timerServiceImpl struct {
	repo        sqlite.Repository
	mapper      *domain.Mapper
	validator   *validation.TimeEntryValidator
	now         Clock
	recentLimit int
}

// NewTimerService creates a new TimerService instance
func NewTimerService(repo sqlite.Repository, now Clock, validator *validation.TimeEntryValidator, recentLimit int) TimerService {
	if now == nil {
		now = time.Now
	}
	if validator == nil {
		validator = validation.NewTimeEntryValidator()
	}
	if recentLimit <= 0 {
		recentLimit = defaultRecentLimit
	}
	return &timerServiceImpl{
		repo:        repo,
		mapper:      domain.NewMapper(),
		validator:   validator,
		now:         now,
		recentLimit: recentLimit,
	}
}

// Start completes the user's running entry, if any, and opens a new one.
func (s *timerServiceImpl) Start(ctx context.Context, userID, projectID int64, taskID *int64, description string) (*domain.TimeEntry, error) {
	if err := s.validator.ValidateStart(userID, projectID, taskID, description); err != nil {
		return nil, err
	}

	var started *domain.TimeEntry
	err := s.repo.WithTx(ctx, func(tx sqlite.Store) error {
		if _, err := ownedProject(ctx, tx, userID, projectID); err != nil {
			return err
		}
		if taskID != nil {
			if _, err := taskInProject(ctx, tx, projectID, *taskID); err != nil {
				return err
			}
		}

		now := s.now()
		if err := s.completeRunning(ctx, tx, userID, 0, now); err != nil {
			return err
		}

		entry := domain.NewTimeEntry(userID, projectID, taskID, strings.TrimSpace(description), now)
		row := s.mapper.TimeEntry.ToDatabase(&entry)
		if err := tx.CreateTimeEntry(ctx, row); err != nil {
			return err
		}
		started = s.mapper.TimeEntry.FromDatabase(row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return started, nil
}

// Pause freezes the elapsed time of a running entry into its duration.
func (s *timerServiceImpl) Pause(ctx context.Context, userID, entryID int64) (*domain.TimeEntry, error) {
	return s.transition(ctx, userID, entryID, "pause", func(tx sqlite.Store, e *domain.TimeEntry, now time.Time) (bool, error) {
		if !e.IsRunning() {
			return false, nil
		}
		d := accumulated(e, now)
		e.Duration = &d
		e.Status = domain.StatusPaused
		return true, nil
	})
}

// Resume restarts a paused entry so that now - start equals the
// accumulated duration. Any other running entry of the user is completed.
func (s *timerServiceImpl) Resume(ctx context.Context, userID, entryID int64) (*domain.TimeEntry, error) {
	return s.transition(ctx, userID, entryID, "resume", func(tx sqlite.Store, e *domain.TimeEntry, now time.Time) (bool, error) {
		if !e.IsPaused() {
			return false, nil
		}
		if err := s.completeRunning(ctx, tx, userID, e.ID, now); err != nil {
			return false, err
		}
		e.StartTime = now.Add(-time.Duration(e.StoredDuration()) * time.Second)
		e.EndTime = nil
		e.Status = domain.StatusRunning
		return true, nil
	})
}

// Stop completes a running or paused entry.
func (s *timerServiceImpl) Stop(ctx context.Context, userID, entryID int64) (*domain.TimeEntry, error) {
	return s.transition(ctx, userID, entryID, "stop", func(tx sqlite.Store, e *domain.TimeEntry, now time.Time) (bool, error) {
		switch e.Status {
		case domain.StatusRunning:
			d := accumulated(e, now)
			e.Duration = &d
		case domain.StatusPaused:
			d := e.StoredDuration()
			e.Duration = &d
		default:
			return false, nil
		}
		end := endAt(e.StartTime, now)
		e.EndTime = &end
		e.Status = domain.StatusCompleted
		return true, nil
	})
}

// Edit overwrites the editable fields of an entry.
func (s *timerServiceImpl) Edit(ctx context.Context, userID, entryID int64, req EditRequest) (*domain.TimeEntry, error) {
	if err := s.validator.ValidateEdit(userID, entryID, req.ProjectID, req.TaskID, req.Status.String(), req.Duration, req.Description); err != nil {
		return nil, err
	}

	var parsed *int64
	if text := strings.TrimSpace(req.Duration); text != "" {
		seconds, err := timeutil.ParseDuration(text)
		if err != nil {
			return nil, errors.NewValidationError(errors.GetUserMessage(err), err)
		}
		if seconds > 0 {
			parsed = &seconds
		}
	}

	var edited *domain.TimeEntry
	err := s.repo.WithTx(ctx, func(tx sqlite.Store) error {
		row, err := ownedEntry(ctx, tx, userID, entryID)
		if err != nil {
			return err
		}
		if _, err := ownedProject(ctx, tx, userID, req.ProjectID); err != nil {
			return err
		}
		if req.TaskID != nil {
			if _, err := taskInProject(ctx, tx, req.ProjectID, *req.TaskID); err != nil {
				return err
			}
		}

		if req.Status == domain.StatusRunning {
			running, err := tx.GetRunningTimeEntry(ctx, userID)
			switch {
			case err == nil && running.ID != entryID:
				return errors.NewInvariantViolationError("one running timer per user", nil).
					WithContext("running_entry_id", running.ID)
			case err != nil && !errors.IsNotFound(err):
				return err
			}
		}

		entry := s.mapper.TimeEntry.FromDatabase(row)
		now := s.now()
		// A running entry's stored duration is only the total at its last
		// pause; leaving running counts up to now, as Stop and Pause do.
		if entry.IsRunning() && req.Status != domain.StatusRunning {
			d := accumulated(entry, now)
			entry.Duration = &d
		}
		entry.ProjectID = req.ProjectID
		entry.TaskID = req.TaskID
		entry.Description = strings.TrimSpace(req.Description)
		entry.Status = req.Status
		if parsed != nil {
			entry.Duration = parsed
		}

		if entry.IsCompleted() {
			if entry.Duration == nil {
				d := timeutil.DurationSeconds(entry.StartTime, now)
				entry.Duration = &d
			}
			end := entry.StartTime.Add(time.Duration(*entry.Duration) * time.Second)
			entry.EndTime = &end
		} else {
			entry.EndTime = nil
		}

		if err := tx.UpdateTimeEntry(ctx, s.mapper.TimeEntry.ToDatabase(entry)); err != nil {
			return err
		}
		edited = entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return edited, nil
}

// Delete removes an entry owned by the user.
func (s *timerServiceImpl) Delete(ctx context.Context, userID, entryID int64) error {
	if err := s.validator.ValidateEntryID(userID, entryID); err != nil {
		return err
	}
	return s.repo.WithTx(ctx, func(tx sqlite.Store) error {
		if _, err := ownedEntry(ctx, tx, userID, entryID); err != nil {
			return err
		}
		return tx.DeleteTimeEntry(ctx, entryID)
	})
}

// Get returns one entry owned by the user.
func (s *timerServiceImpl) Get(ctx context.Context, userID, entryID int64) (*domain.TimeEntry, error) {
	row, err := ownedEntry(ctx, s.repo, userID, entryID)
	if err != nil {
		return nil, err
	}
	return s.mapper.TimeEntry.FromDatabase(row), nil
}

// Current returns the user's running entry or a not-found error.
func (s *timerServiceImpl) Current(ctx context.Context, userID int64) (*domain.TimeEntry, error) {
	row, err := s.repo.GetRunningTimeEntry(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.mapper.TimeEntry.FromDatabase(row), nil
}

// LatestPaused returns the user's most recently started paused entry or a
// not-found error.
func (s *timerServiceImpl) LatestPaused(ctx context.Context, userID int64) (*domain.TimeEntry, error) {
	paused := domain.StatusPaused
	rows, err := s.repo.SearchTimeEntries(ctx, s.mapper.Filter.ToDatabase(domain.EntryFilter{
		UserID:  userID,
		Status:  &paused,
		OrderBy: domain.OrderByStartDesc,
		Limit:   1,
	}))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.NewNotFoundError("paused time entry", strconv.FormatInt(userID, 10))
	}
	return s.mapper.TimeEntry.FromDatabase(rows[0]), nil
}

// Recent returns the user's newest entries by creation time.
func (s *timerServiceImpl) Recent(ctx context.Context, userID int64, limit int) ([]*domain.TimeEntry, error) {
	if limit <= 0 {
		limit = s.recentLimit
	}
	rows, err := s.repo.SearchTimeEntries(ctx, s.mapper.Filter.ToDatabase(domain.EntryFilter{
		UserID:  userID,
		OrderBy: domain.OrderByCreatedDesc,
		Limit:   limit,
	}))
	if err != nil {
		return nil, err
	}
	return s.mapper.TimeEntry.FromDatabaseSlice(rows), nil
}

// transition loads an owned entry, applies fn and persists the result in
// one transaction. fn reports false when the transition does not apply, in
// which case nothing is written and the unchanged entry is returned with a
// not-applicable error.
func (s *timerServiceImpl) transition(ctx context.Context, userID, entryID int64, operation string,
	fn func(tx sqlite.Store, e *domain.TimeEntry, now time.Time) (bool, error)) (*domain.TimeEntry, error) {

	if err := s.validator.ValidateEntryID(userID, entryID); err != nil {
		return nil, err
	}

	var (
		result  *domain.TimeEntry
		skipped bool
	)
	err := s.repo.WithTx(ctx, func(tx sqlite.Store) error {
		row, err := ownedEntry(ctx, tx, userID, entryID)
		if err != nil {
			return err
		}
		entry := s.mapper.TimeEntry.FromDatabase(row)

		applied, err := fn(tx, entry, s.now())
		if err != nil {
			return err
		}
		result = entry
		if !applied {
			skipped = true
			return nil
		}
		return tx.UpdateTimeEntry(ctx, s.mapper.TimeEntry.ToDatabase(entry))
	})
	if err != nil {
		return nil, err
	}
	if skipped {
		return result, errors.NewNotApplicableError(operation, result.Status.String()).
			WithContext("entry_id", entryID)
	}
	return result, nil
}

// completeRunning closes the user's running entry unless it is exceptID.
func (s *timerServiceImpl) completeRunning(ctx context.Context, tx sqlite.Store, userID, exceptID int64, now time.Time) error {
	row, err := tx.GetRunningTimeEntry(ctx, userID)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil
		}
		return err
	}
	if row.ID == exceptID {
		return nil
	}

	entry := s.mapper.TimeEntry.FromDatabase(row)
	d := accumulated(entry, now)
	end := endAt(entry.StartTime, now)
	entry.Duration = &d
	entry.EndTime = &end
	entry.Status = domain.StatusCompleted

	logging.Debugf("completing running entry %d for user %d after %s\n", entry.ID, userID, timeutil.FormatDuration(d))
	return tx.UpdateTimeEntry(ctx, s.mapper.TimeEntry.ToDatabase(entry))
}

// accumulated is the elapsed time of a running entry at now. It never drops
// below the stored duration.
func accumulated(e *domain.TimeEntry, now time.Time) int64 {
	d := timeutil.DurationSeconds(e.StartTime, now)
	if stored := e.StoredDuration(); stored > d {
		return stored
	}
	return d
}

// endAt keeps end_time from preceding start_time when the clock is behind.
func endAt(start, now time.Time) time.Time {
	if now.Before(start) {
		return start
	}
	return now
}
