package archive

import "strings"

// ItemsFor returns the items whose feed reference contains either of the
// feed's URLs. Containment rather than equality tolerates the scheme and
// trailing-slash drift between the two stored fields. Input order is kept.
//
// Both feed URLs must be non-empty; callers check Feed.Validate first, since
// an empty URL is contained in every string.
func ItemsFor(feed Feed, items []Item) []Item {
	var matched []Item
	for _, item := range items {
		if strings.Contains(item.FeedURL, feed.CanonicalURL) ||
			strings.Contains(item.FeedURL, feed.SubscriptionURL) {
			matched = append(matched, item)
		}
	}
	return matched
}
