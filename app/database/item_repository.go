package database

import (
	"context"
	"fmt"

	"github.com/lysyi3m/feed-archiver/app/archive"
)

var _ ItemRepository = (*CacheItemRepository)(nil)

// CacheItemRepository reads feed items from the reader's rss_item table
type CacheItemRepository struct {
	db *DB
}

func NewItemRepository(db *DB) *CacheItemRepository {
	return &CacheItemRepository{db: db}
}

// GetItems returns every cached item, including read and deleted ones, in
// table order
func (r *CacheItemRepository) GetItems(ctx context.Context) ([]archive.Item, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, guid, title, author, url, feedurl, pubDate, content,
		       unread, enclosure_url, enclosure_type, enqueued, flags,
		       deleted, base
		FROM rss_item
		ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}
	defer rows.Close()

	var items []archive.Item
	for rows.Next() {
		var row itemRow
		err := rows.Scan(
			&row.ID, &row.GUID, &row.Title, &row.Author, &row.URL, &row.FeedURL,
			&row.PubDate, &row.Content, &row.Unread, &row.EnclosureURL,
			&row.EnclosureType, &row.Enqueued, &row.Flags, &row.Deleted, &row.Base,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item row: %w", err)
		}
		items = append(items, row.toItem())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating item rows: %w", err)
	}

	return items, nil
}
