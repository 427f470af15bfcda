package archive

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIsExcluded_PartialDomain(t *testing.T) {
	feed := Feed{CanonicalURL: "https://www.youtube.com/watch?v=1"}

	if !IsExcluded(feed, []string{"youtube.com"}) {
		t.Error("Expected feed to be excluded by partial domain match")
	}
}

func TestIsExcluded_NoMatch(t *testing.T) {
	feed := Feed{CanonicalURL: "https://example.com/feed"}

	if IsExcluded(feed, []string{"youtube.com", "reddit.com"}) {
		t.Error("Expected feed not to be excluded")
	}
	if IsExcluded(feed, nil) {
		t.Error("Expected empty exclusion list to exclude nothing")
	}
}

func TestIsExcluded_ChecksCanonicalURLOnly(t *testing.T) {
	feed := Feed{
		SubscriptionURL: "https://feeds.youtube.com/videos.xml",
		CanonicalURL:    "https://example.com",
	}

	if IsExcluded(feed, []string{"youtube.com"}) {
		t.Error("Expected subscription URL to be ignored by the exclusion check")
	}
}

func TestExclusionFilter_Match(t *testing.T) {
	filter := NewExclusionFilter([]string{"reddit.com", "youtube.com"})
	feed := Feed{CanonicalURL: "https://m.youtube.com/@channel"}

	entry, ok := filter.Match(feed)
	if !ok {
		t.Fatal("Expected a match")
	}
	if entry != "youtube.com" {
		t.Errorf("Expected matching entry 'youtube.com', got '%s'", entry)
	}
	if !IsExcluded(feed, []string{"reddit.com", "youtube.com"}) {
		t.Error("Expected IsExcluded to agree with Match")
	}

	if _, ok := filter.Match(Feed{CanonicalURL: "https://example.org"}); ok {
		t.Error("Expected no match for an unlisted site")
	}
}

func TestLoadExclusions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blacklist.conf")
	content := "youtube.com\n\n   \n# reddit.com\nexample.org\r\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	entries, err := LoadExclusions(path)
	if err != nil {
		t.Fatal(err)
	}

	expected := []string{"youtube.com", "example.org"}
	if len(entries) != len(expected) {
		t.Fatalf("Expected %d entries, got %d: %v", len(expected), len(entries), entries)
	}
	for i := range expected {
		if entries[i] != expected[i] {
			t.Errorf("Expected entry %d to be '%s', got '%s'", i, expected[i], entries[i])
		}
	}
}

func TestLoadExclusions_MissingFile(t *testing.T) {
	entries, err := LoadExclusions(filepath.Join(t.TempDir(), "absent.conf"))
	if err != nil {
		t.Fatalf("Expected missing file to be non-fatal, got %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected no entries, got %d", len(entries))
	}
}

func TestLoadExclusions_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exclusions.yaml")
	content := `
exclusions:
  - youtube.com
  - ""
  - twitch.tv
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	entries, err := LoadExclusions(path)
	if err != nil {
		t.Fatal(err)
	}

	if len(entries) != 2 || entries[0] != "youtube.com" || entries[1] != "twitch.tv" {
		t.Errorf("Expected [youtube.com twitch.tv], got %v", entries)
	}
}
