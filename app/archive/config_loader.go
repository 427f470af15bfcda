package archive

import (
	"bufio"
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const ruleSeparator = "|"

type rulesFile struct {
	Rules []Rule `yaml:"rules"`
}

type exclusionsFile struct {
	Exclusions []string `yaml:"exclusions"`
}

// LoadRules reads the ordered rule list. A missing file yields no rules, so
// every URL falls back to DefaultRule.
func LoadRules(path string) ([]Rule, error) {
	data, err := readOptional(path)
	if err != nil || data == nil {
		return nil, err
	}

	if isYAML(path) {
		var file rulesFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse YAML rules %s: %w", path, err)
		}

		rules := make([]Rule, 0, len(file.Rules))
		for i, rule := range file.Rules {
			if rule.Tool == "" {
				slog.Debug("Rule without tool dropped", "file", path, "index", i)
				continue
			}
			rules = append(rules, rule)
		}
		return rules, nil
	}

	var rules []Rule
	err = scanLines(data, func(lineNo int, line string) {
		fields := strings.Split(line, ruleSeparator)
		if len(fields) != 3 {
			slog.Debug("Malformed rule dropped", "file", path, "line", lineNo, "fields", len(fields))
			return
		}
		rules = append(rules, Rule{Tool: fields[0], Matcher: fields[1], Args: fields[2]})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read rules %s: %w", path, err)
	}

	return rules, nil
}

// LoadExclusions reads one URL substring per line. A missing file yields an
// empty list.
func LoadExclusions(path string) ([]string, error) {
	data, err := readOptional(path)
	if err != nil || data == nil {
		return nil, err
	}

	if isYAML(path) {
		var file exclusionsFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse YAML exclusions %s: %w", path, err)
		}

		entries := make([]string, 0, len(file.Exclusions))
		for _, entry := range file.Exclusions {
			if entry != "" {
				entries = append(entries, entry)
			}
		}
		return entries, nil
	}

	var entries []string
	err = scanLines(data, func(_ int, line string) {
		entries = append(entries, line)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read exclusions %s: %w", path, err)
	}

	return entries, nil
}

func readOptional(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		slog.Debug("Configuration file not found, using empty list", "file", path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return data, nil
}

// scanLines calls fn for every non-blank line that is not a # comment.
// An empty exclusion would match every feed, so blank lines never reach fn.
func scanLines(data []byte, fn func(lineNo int, line string)) error {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fn(lineNo, line)
	}

	return scanner.Err()
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return true
	}
	return false
}
