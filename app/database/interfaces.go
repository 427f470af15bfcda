package database

import (
	"context"

	"github.com/lysyi3m/feed-archiver/app/archive"
)

type FeedRepository interface {
	GetFeeds(ctx context.Context) ([]archive.Feed, error)
}

type ItemRepository interface {
	GetItems(ctx context.Context) ([]archive.Item, error)
}

type CaptureRepository interface {
	RecordCapture(ctx context.Context, capture Capture) error
	GetStateCounts(ctx context.Context, runID string) (map[string]int, error)
}
