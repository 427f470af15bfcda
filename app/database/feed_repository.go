package database

import (
	"context"
	"fmt"

	"github.com/lysyi3m/feed-archiver/app/archive"
)

var _ FeedRepository = (*CacheFeedRepository)(nil)

// CacheFeedRepository reads subscribed feeds from the reader's rss_feed table
type CacheFeedRepository struct {
	db *DB
}

func NewFeedRepository(db *DB) *CacheFeedRepository {
	return &CacheFeedRepository{db: db}
}

// GetFeeds returns every feed in table order
func (r *CacheFeedRepository) GetFeeds(ctx context.Context) ([]archive.Feed, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT rssurl, url, title, lastmodified, is_rtl, etag
		FROM rss_feed
		ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get feeds: %w", err)
	}
	defer rows.Close()

	var feeds []archive.Feed
	for rows.Next() {
		var row feedRow
		err := rows.Scan(&row.RSSURL, &row.URL, &row.Title, &row.LastModified, &row.IsRTL, &row.ETag)
		if err != nil {
			return nil, fmt.Errorf("failed to scan feed row: %w", err)
		}
		feeds = append(feeds, row.toFeed())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating feed rows: %w", err)
	}

	return feeds, nil
}
