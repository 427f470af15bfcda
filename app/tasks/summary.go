package tasks

import (
	"sync"

	"github.com/lysyi3m/feed-archiver/app/archive"
)

// Summary counts what a run did. Feed workers update it concurrently.
type Summary struct {
	mu sync.Mutex

	RunID        string
	Feeds        int
	Excluded     int
	InvalidFeeds int
	InvalidItems int
	Items        int
	Skipped      int
	Planned      int // dry run only
	Attempted    int
	Captured     int
	Failed       int
}

func (s *Summary) recordState(state archive.ItemState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch state {
	case archive.StateSkipped:
		s.Skipped++
	case archive.StateAttempting:
		s.Attempted++
	case archive.StateDone:
		s.Captured++
	case archive.StateFailed:
		s.Failed++
	}
}

func (s *Summary) add(field *int, n int) {
	s.mu.Lock()
	*field += n
	s.mu.Unlock()
}

// Args returns the counters as slog key/value pairs.
func (s *Summary) Args() []any {
	s.mu.Lock()
	defer s.mu.Unlock()

	return []any{
		"run_id", s.RunID,
		"feeds", s.Feeds,
		"excluded", s.Excluded,
		"invalid_feeds", s.InvalidFeeds,
		"invalid_items", s.InvalidItems,
		"items", s.Items,
		"skipped", s.Skipped,
		"planned", s.Planned,
		"attempted", s.Attempted,
		"captured", s.Captured,
		"failed", s.Failed,
	}
}
