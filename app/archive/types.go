package archive

import (
	"errors"
	"fmt"
	"time"
)

var ErrPrecondition = errors.New("precondition violated")

// Cache record types

type Feed struct {
	SubscriptionURL string // rssurl: the feed endpoint
	CanonicalURL    string // url: the site the feed belongs to
	Title           string
	LastModified    *time.Time
	IsRTL           *bool
	ETag            string
}

type Item struct {
	ID            int64
	GUID          string
	Title         string
	Author        string
	URL           string // page to capture
	FeedURL       string // owning feed reference stored on the item row
	PublishedAt   *time.Time
	Content       string
	Unread        bool
	Deleted       bool
	EnclosureURL  string
	EnclosureType string
	Enqueued      bool
	Flags         string
	Base          string
}

func (f Feed) Validate() error {
	switch {
	case f.Title == "":
		return fmt.Errorf("%w: feed %q has no title", ErrPrecondition, f.SubscriptionURL)
	case f.CanonicalURL == "":
		return fmt.Errorf("%w: feed %q has no site URL", ErrPrecondition, f.Title)
	case f.SubscriptionURL == "":
		return fmt.Errorf("%w: feed %q has no subscription URL", ErrPrecondition, f.Title)
	}
	return nil
}

func (i Item) Validate() error {
	switch {
	case i.Title == "":
		return fmt.Errorf("%w: item %d has no title", ErrPrecondition, i.ID)
	case i.URL == "":
		return fmt.Errorf("%w: item %d (%s) has no URL", ErrPrecondition, i.ID, i.Title)
	}
	return nil
}

// Planning types

type Action string

const (
	ActionCapture Action = "capture"
	ActionSkip    Action = "skip"
)

type Plan struct {
	FeedDir string
	Path    string
	Action  Action
	Rule    Rule
}

type ItemState string

const (
	StatePending    ItemState = "pending"
	StateSkipped    ItemState = "skipped"
	StateAttempting ItemState = "attempting"
	StateDone       ItemState = "done"
	StateFailed     ItemState = "failed"
)
