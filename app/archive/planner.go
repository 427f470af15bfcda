package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

const maxSegmentBytes = 200

type Planner struct {
	outputDir string
}

func NewPlanner(outputDir string) *Planner {
	return &Planner{outputDir: outputDir}
}

// FeedDir is the directory holding every capture of the feed.
func (p *Planner) FeedDir(feedTitle string) string {
	return filepath.Join(p.outputDir, segment(Sanitize(feedTitle), "untitled-feed"))
}

// Plan computes where the item's capture lives and whether it still has to
// be made. A non-empty regular file means a completed capture; a missing or
// zero-length file means no capture or an interrupted one.
func (p *Planner) Plan(feedTitle string, item Item, rule Rule) Plan {
	feedDir := p.FeedDir(feedTitle)
	name := segment(Sanitize(item.Title), fmt.Sprintf("item-%d", item.ID))
	path := filepath.Join(feedDir, name+"."+rule.Extension())

	action := ActionCapture
	if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() && info.Size() > 0 {
		action = ActionSkip
	}

	return Plan{
		FeedDir: feedDir,
		Path:    path,
		Action:  action,
		Rule:    rule,
	}
}

func segment(name, fallback string) string {
	if name == "" || name == "." || name == ".." {
		return fallback
	}
	if len(name) <= maxSegmentBytes {
		return name
	}
	cut := maxSegmentBytes
	for cut > 0 && !utf8.RuneStart(name[cut]) {
		cut--
	}
	// The cut may end on a hyphen left over from a space.
	if trimmed := strings.TrimRight(name[:cut], "-"); trimmed != "" {
		return trimmed
	}
	return fallback
}
