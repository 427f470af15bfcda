package database

import (
	"time"
)

// Capture is one ledger row: a single item's outcome in a single run.
type Capture struct {
	RunID      string
	FeedTitle  string
	FeedURL    string
	ItemID     int64
	ItemGUID   string
	TargetURL  string
	Tool       string
	OutputPath string
	State      string // skipped, done, failed
	ExitCode   *int   // nil when the tool never ran
	Error      string
	StartedAt  time.Time
	FinishedAt time.Time
}
