package archive

import "strings"

type ExclusionFilter struct {
	entries []string
}

func NewExclusionFilter(entries []string) *ExclusionFilter {
	return &ExclusionFilter{entries: append([]string(nil), entries...)}
}

// Match returns the first entry found in the feed's site URL.
func (f *ExclusionFilter) Match(feed Feed) (string, bool) {
	for _, entry := range f.entries {
		if strings.Contains(feed.CanonicalURL, entry) {
			return entry, true
		}
	}
	return "", false
}

func IsExcluded(feed Feed, entries []string) bool {
	for _, entry := range entries {
		if strings.Contains(feed.CanonicalURL, entry) {
			return true
		}
	}
	return false
}
