package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lysyi3m/feed-archiver/app/archive"
	"github.com/lysyi3m/feed-archiver/app/capture"
	"github.com/lysyi3m/feed-archiver/app/database"
)

type Options struct {
	Workers  int
	Timeout  time.Duration // per capture, 0 disables
	DryRun   bool
	FailFast bool
}

// Archiver drives one archiving run over a snapshot of the cache.
type Archiver struct {
	rules       *archive.RuleSet
	exclusions  *archive.ExclusionFilter
	planner     *archive.Planner
	invoker     capture.Invoker
	captureRepo database.CaptureRepository
	opts        Options
}

// NewArchiver wires the run. captureRepo may be nil when no ledger is kept.
func NewArchiver(rules *archive.RuleSet, exclusions *archive.ExclusionFilter, planner *archive.Planner,
	invoker capture.Invoker, captureRepo database.CaptureRepository, opts Options) *Archiver {
	return &Archiver{
		rules:       rules,
		exclusions:  exclusions,
		planner:     planner,
		invoker:     invoker,
		captureRepo: captureRepo,
		opts:        opts,
	}
}

type feedGroup struct {
	dir   string
	feeds []archive.Feed
}

// Run archives every non-excluded feed. With one worker each feed is its
// own task, in store order. With more, feeds that share an output
// directory go to the same task so no two workers write the same path.
// The summary is returned even when the run is aborted.
func (a *Archiver) Run(ctx context.Context, feeds []archive.Feed, items []archive.Item) (*Summary, error) {
	summary := &Summary{
		RunID: uuid.NewString(),
		Feeds: len(feeds),
	}

	groups, err := a.groupFeeds(feeds, a.opts.Workers > 1, summary)
	if err != nil {
		return summary, err
	}

	if len(groups) == 0 {
		slog.Info("No feeds to archive", "feeds", len(feeds), "excluded", summary.Excluded)
		return summary, nil
	}

	workers := a.opts.Workers
	if workers > len(groups) {
		workers = len(groups)
	}

	slog.Debug("Starting archive run", "run_id", summary.RunID, "feed_dirs", len(groups), "items", len(items), "workers", workers, "dry_run", a.opts.DryRun)

	scheduler := NewScheduler(workers, len(groups))
	scheduler.Start(ctx)

	for _, group := range groups {
		task := NewArchiveFeedTask(summary.RunID, group.dir, group.feeds, items,
			a.rules, a.planner, a.invoker, a.captureRepo, a.opts, summary)
		if err := scheduler.EnqueueTask(task); err != nil {
			// The pool is already stopping; Stop reports why.
			break
		}
	}

	if err := scheduler.Stop(); err != nil {
		return summary, err
	}

	return summary, nil
}

func (a *Archiver) groupFeeds(feeds []archive.Feed, merge bool, summary *Summary) ([]*feedGroup, error) {
	var groups []*feedGroup
	byDir := make(map[string]*feedGroup)

	for _, feed := range feeds {
		if entry, ok := a.exclusions.Match(feed); ok {
			slog.Info("Feed excluded", "feed", feed.Title, "url", feed.CanonicalURL, "exclusion", entry)
			summary.Excluded++
			continue
		}

		if err := feed.Validate(); err != nil {
			if a.opts.FailFast {
				return nil, fmt.Errorf("feed %q: %w", feed.SubscriptionURL, err)
			}
			slog.Warn("Skipping invalid feed", "feed", feed.Title, "url", feed.SubscriptionURL, "error", err)
			summary.InvalidFeeds++
			continue
		}

		dir := a.planner.FeedDir(feed.Title)
		group, ok := byDir[dir]
		if !ok || !merge {
			group = &feedGroup{dir: dir}
			byDir[dir] = group
			groups = append(groups, group)
		}
		group.feeds = append(group.feeds, feed)
	}

	return groups, nil
}
