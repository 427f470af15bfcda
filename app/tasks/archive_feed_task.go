package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lysyi3m/feed-archiver/app/archive"
	"github.com/lysyi3m/feed-archiver/app/capture"
	"github.com/lysyi3m/feed-archiver/app/database"
)

// ArchiveFeedTask captures the items of every feed that writes into one
// output directory. Feeds are handled in store order and items in
// association order, one capture at a time.
type ArchiveFeedTask struct {
	Task
	RunID       string
	FeedDir     string
	Feeds       []archive.Feed
	items       []archive.Item
	rules       *archive.RuleSet
	planner     *archive.Planner
	invoker     capture.Invoker
	captureRepo database.CaptureRepository
	opts        Options
	summary     *Summary
	dirErr      error
}

func NewArchiveFeedTask(runID, feedDir string, feeds []archive.Feed, items []archive.Item,
	rules *archive.RuleSet, planner *archive.Planner, invoker capture.Invoker,
	captureRepo database.CaptureRepository, opts Options, summary *Summary) *ArchiveFeedTask {
	feedName := ""
	if len(feeds) > 0 {
		feedName = feeds[0].Title
	}

	return &ArchiveFeedTask{
		Task:        NewTask(TaskTypeArchiveFeed, feedName),
		RunID:       runID,
		FeedDir:     feedDir,
		Feeds:       feeds,
		items:       items,
		rules:       rules,
		planner:     planner,
		invoker:     invoker,
		captureRepo: captureRepo,
		opts:        opts,
		summary:     summary,
	}
}

func (t *ArchiveFeedTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if !t.opts.DryRun {
		// An existing directory is reused.
		if err := os.MkdirAll(t.FeedDir, 0o755); err != nil {
			t.dirErr = fmt.Errorf("failed to create feed directory: %w", err)
			if t.opts.FailFast {
				return t.dirErr
			}
			slog.Error("Failed to create feed directory", "feed", t.FeedName, "path", t.FeedDir, "error", err)
		}
	}

	var captured, skipped, failed int

	for _, feed := range t.Feeds {
		items := archive.ItemsFor(feed, t.items)
		t.summary.add(&t.summary.Items, len(items))

		slog.Debug("Archiving feed", "feed", feed.Title, "url", feed.CanonicalURL, "items", len(items), "path", t.FeedDir)

		for _, item := range items {
			state, err := t.processItem(ctx, feed, item)
			if err != nil {
				return err
			}

			switch state {
			case archive.StateDone:
				captured++
			case archive.StateSkipped:
				skipped++
			case archive.StateFailed:
				failed++
			}

			if err := ctx.Err(); err != nil {
				return err
			}
		}
	}

	slog.Info("Task completed",
		"type", t.GetType(),
		"feed", t.FeedName,
		"duration", t.GetDuration(),
		"captured", captured,
		"skipped", skipped,
		"failed", failed)

	return nil
}

// processItem walks one item through pending, then skipped or attempting,
// then done or failed. A returned error aborts the run.
func (t *ArchiveFeedTask) processItem(ctx context.Context, feed archive.Feed, item archive.Item) (archive.ItemState, error) {
	if err := item.Validate(); err != nil {
		if t.opts.FailFast {
			return archive.StatePending, fmt.Errorf("item %d of feed %q: %w", item.ID, feed.Title, err)
		}
		slog.Warn("Skipping invalid item", "feed", feed.Title, "item_id", item.ID, "error", err)
		t.summary.add(&t.summary.InvalidItems, 1)
		return archive.StatePending, nil
	}

	started := time.Now()
	rule := t.rules.Resolve(item.URL)
	plan := t.planner.Plan(feed.Title, item, rule)
	spec := capture.BuildCommand(plan.Rule, item.URL, plan.Path)

	if plan.Action == archive.ActionSkip {
		slog.Debug("Skipping existing capture", "feed", feed.Title, "url", item.URL, "path", plan.Path)
		t.finish(ctx, feed, item, spec, archive.StateSkipped, nil, "", started)
		return archive.StateSkipped, nil
	}

	if t.opts.DryRun {
		slog.Info("Would execute capture", "feed", feed.Title, "command", spec.String())
		t.summary.add(&t.summary.Planned, 1)
		return archive.StatePending, nil
	}

	slog.Info("Executing capture", "feed", feed.Title, "tool", spec.Tool, "url", item.URL, "path", plan.Path)

	if t.dirErr != nil {
		t.finish(ctx, feed, item, spec, archive.StateFailed, nil, t.dirErr.Error(), started)
		return archive.StateFailed, nil
	}

	t.summary.recordState(archive.StateAttempting)

	captureCtx := ctx
	if t.opts.Timeout > 0 {
		var cancel context.CancelFunc
		captureCtx, cancel = context.WithTimeout(ctx, t.opts.Timeout)
		defer cancel()
	}

	outcome, err := t.invoker.Invoke(captureCtx, spec)
	if err != nil {
		t.discard(plan.Path)
		t.finish(ctx, feed, item, spec, archive.StateFailed, nil, err.Error(), started)
		if t.opts.FailFast {
			return archive.StateFailed, fmt.Errorf("failed to capture %s: %w", item.URL, err)
		}
		slog.Error("Failed to launch capture", "feed", feed.Title, "url", item.URL, "path", plan.Path, "error", err)
		return archive.StateFailed, nil
	}

	exitCode := outcome.ExitCode
	if !outcome.Success() {
		t.discard(plan.Path)
		slog.Warn("Capture failed",
			"feed", feed.Title,
			"url", item.URL,
			"path", plan.Path,
			"exit_code", outcome.ExitCode,
			"interrupted", outcome.Interrupted,
			"stderr", outcome.Stderr)
		t.finish(ctx, feed, item, spec, archive.StateFailed, &exitCode, failureMessage(outcome), started)
		return archive.StateFailed, nil
	}

	slog.Debug("Capture completed", "feed", feed.Title, "url", item.URL, "path", plan.Path, "duration", outcome.Duration)
	t.finish(ctx, feed, item, spec, archive.StateDone, &exitCode, "", started)
	return archive.StateDone, nil
}

// discard leaves a zero-length artifact so the next run retries the item.
func (t *ArchiveFeedTask) discard(path string) {
	if err := capture.DiscardArtifact(path); err != nil {
		slog.Warn("Failed to discard partial capture", "path", path, "error", err)
	}
}

func (t *ArchiveFeedTask) finish(ctx context.Context, feed archive.Feed, item archive.Item, spec capture.CommandSpec,
	state archive.ItemState, exitCode *int, errMsg string, started time.Time) {
	t.summary.recordState(state)

	if t.captureRepo == nil {
		return
	}

	err := t.captureRepo.RecordCapture(context.WithoutCancel(ctx), database.Capture{
		RunID:      t.RunID,
		FeedTitle:  feed.Title,
		FeedURL:    feed.CanonicalURL,
		ItemID:     item.ID,
		ItemGUID:   item.GUID,
		TargetURL:  item.URL,
		Tool:       spec.Tool,
		OutputPath: spec.OutputPath,
		State:      string(state),
		ExitCode:   exitCode,
		Error:      errMsg,
		StartedAt:  started,
		FinishedAt: time.Now(),
	})
	if err != nil {
		slog.Warn("Failed to record capture in ledger", "path", spec.OutputPath, "error", err)
	}
}

func failureMessage(outcome capture.Outcome) string {
	if outcome.Interrupted {
		return "capture interrupted"
	}
	if outcome.Stderr != "" {
		return outcome.Stderr
	}
	return fmt.Sprintf("exit status %d", outcome.ExitCode)
}
