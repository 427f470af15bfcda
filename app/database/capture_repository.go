package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

var _ CaptureRepository = (*LedgerCaptureRepository)(nil)

// LedgerCaptureRepository persists per-item outcomes. It is an audit trail
// only; skip decisions always come from the filesystem.
type LedgerCaptureRepository struct {
	db *DB
}

func NewCaptureRepository(db *DB) *LedgerCaptureRepository {
	return &LedgerCaptureRepository{db: db}
}

func (r *LedgerCaptureRepository) RecordCapture(ctx context.Context, c Capture) error {
	var exitCode sql.NullInt64
	if c.ExitCode != nil {
		exitCode = sql.NullInt64{Int64: int64(*c.ExitCode), Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO captures (
			run_id, feed_title, feed_url, item_id, item_guid, target_url,
			tool, output_path, state, exit_code, error, started_at, finished_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		c.RunID, c.FeedTitle, c.FeedURL, c.ItemID, c.ItemGUID, c.TargetURL,
		c.Tool, c.OutputPath, c.State, exitCode, c.Error,
		c.StartedAt.UTC().Format(time.RFC3339Nano),
		c.FinishedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to record capture for %s: %w", c.OutputPath, err)
	}
	return nil
}

func (r *LedgerCaptureRepository) GetStateCounts(ctx context.Context, runID string) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT state, COUNT(*)
		FROM captures
		WHERE run_id = ?
		GROUP BY state
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get state counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var state string
		var count int
		if err := rows.Scan(&state, &count); err != nil {
			return nil, fmt.Errorf("failed to scan state count: %w", err)
		}
		counts[state] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating state counts: %w", err)
	}

	return counts, nil
}
