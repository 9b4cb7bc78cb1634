package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"tztracker/internal/logging"
)

// Matches the repository's storage layout.
const storedTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func init() {
	RegisterGoMigration(2, upNormalizeEntryEndTimes, downNormalizeEntryEndTimes)
}

// upNormalizeEntryEndTimes makes end_time agree with status: completed
// entries missing an end get start + duration, and any end_time on a
// running or paused entry is cleared.
func upNormalizeEntryEndTimes(ctx context.Context, tx *sql.Tx) error {
	type entry struct {
		id        int64
		startTime string
		duration  int64
	}
	var pending []entry

	rows, err := tx.QueryContext(ctx, `
		SELECT id, start_time, COALESCE(duration, 0)
		FROM time_entries
		WHERE status = 'completed' AND end_time IS NULL`)
	if err != nil {
		return fmt.Errorf("failed to query completed entries: %w", err)
	}
	for rows.Next() {
		var e entry
		if err := rows.Scan(&e.id, &e.startTime, &e.duration); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan row: %w", err)
		}
		pending = append(pending, e)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("error iterating time entries: %w", err)
	}
	rows.Close()

	stmt, err := tx.PrepareContext(ctx, "UPDATE time_entries SET end_time = ?, duration = ? WHERE id = ?")
	if err != nil {
		return fmt.Errorf("failed to prepare end_time update statement: %w", err)
	}
	defer stmt.Close()

	skipped := 0
	for _, e := range pending {
		start, err := time.Parse(time.RFC3339Nano, e.startTime)
		if err != nil {
			logging.Debugf("skipping entry %d: unparseable start_time %q\n", e.id, e.startTime)
			skipped++
			continue
		}
		end := start.Add(time.Duration(e.duration) * time.Second).UTC().Format(storedTimeLayout)
		if _, err := stmt.ExecContext(ctx, end, e.duration, e.id); err != nil {
			return fmt.Errorf("failed to update end_time for id %d: %w", e.id, err)
		}
	}

	res, err := tx.ExecContext(ctx,
		"UPDATE time_entries SET end_time = NULL WHERE status IN ('running', 'paused') AND end_time IS NOT NULL")
	if err != nil {
		return fmt.Errorf("failed to clear end_time on open entries: %w", err)
	}
	cleared, _ := res.RowsAffected()

	logging.Debugf("normalized end times: %d backfilled, %d cleared, %d skipped\n",
		len(pending)-skipped, cleared, skipped)
	return nil
}

// downNormalizeEntryEndTimes is a no-op; the normalized data is valid for
// the previous schema version.
func downNormalizeEntryEndTimes(ctx context.Context, tx *sql.Tx) error {
	return nil
}
