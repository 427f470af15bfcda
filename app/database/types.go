package database

import (
	"database/sql"
	"time"

	"github.com/lysyi3m/feed-archiver/app/archive"
)

// Raw cache rows. Every column is scanned as nullable and converted once.

type feedRow struct {
	RSSURL       sql.NullString
	URL          sql.NullString
	Title        sql.NullString
	LastModified sql.NullInt64
	IsRTL        sql.NullInt64
	ETag         sql.NullString
}

func (r feedRow) toFeed() archive.Feed {
	return archive.Feed{
		SubscriptionURL: r.RSSURL.String,
		CanonicalURL:    r.URL.String,
		Title:           r.Title.String,
		LastModified:    unixTime(r.LastModified),
		IsRTL:           flag(r.IsRTL),
		ETag:            r.ETag.String,
	}
}

type itemRow struct {
	ID            sql.NullInt64
	GUID          sql.NullString
	Title         sql.NullString
	Author        sql.NullString
	URL           sql.NullString
	FeedURL       sql.NullString
	PubDate       sql.NullInt64
	Content       sql.NullString
	Unread        sql.NullInt64
	EnclosureURL  sql.NullString
	EnclosureType sql.NullString
	Enqueued      sql.NullInt64
	Flags         sql.NullString
	Deleted       sql.NullInt64
	Base          sql.NullString
}

func (r itemRow) toItem() archive.Item {
	return archive.Item{
		ID:            r.ID.Int64,
		GUID:          r.GUID.String,
		Title:         r.Title.String,
		Author:        r.Author.String,
		URL:           r.URL.String,
		FeedURL:       r.FeedURL.String,
		PublishedAt:   unixTime(r.PubDate),
		Content:       r.Content.String,
		Unread:        r.Unread.Valid && r.Unread.Int64 != 0,
		Deleted:       r.Deleted.Valid && r.Deleted.Int64 != 0,
		EnclosureURL:  r.EnclosureURL.String,
		EnclosureType: r.EnclosureType.String,
		Enqueued:      r.Enqueued.Valid && r.Enqueued.Int64 != 0,
		Flags:         r.Flags.String,
		Base:          r.Base.String,
	}
}

// unixTime maps the reader's "0 means unknown" convention to nil.
func unixTime(v sql.NullInt64) *time.Time {
	if !v.Valid || v.Int64 == 0 {
		return nil
	}
	t := time.Unix(v.Int64, 0).UTC()
	return &t
}

func flag(v sql.NullInt64) *bool {
	if !v.Valid {
		return nil
	}
	b := v.Int64 != 0
	return &b
}
