package capture

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/lysyi3m/feed-archiver/app/archive"
)

// CommandSpec is everything needed to capture one item: which tool, with
// which arguments, for which URL, written to which file.
type CommandSpec struct {
	Tool       string   // effective rule tool
	Binary     string   // executable; empty for in-process tools
	Args       []string // tool arguments, URL excluded
	URL        string
	OutputPath string
}

func BuildCommand(rule archive.Rule, url, outputPath string) CommandSpec {
	spec := CommandSpec{
		Tool:       rule.Tool,
		URL:        url,
		OutputPath: outputPath,
	}

	switch rule.Tool {
	case archive.ToolMonolith:
		spec.Binary = "monolith"
		spec.Args = monolithArgs(rule.Args)
	case archive.ToolLynx:
		spec.Binary = "lynx"
		spec.Args = append([]string{"-dump"}, strings.Fields(rule.Args)...)
	case archive.ToolReadability:
	default:
		spec.Tool = archive.ToolDefault
		spec.Binary = "monolith"
		spec.Args = monolithArgs(archive.DefaultArgs)
	}

	return spec
}

// Argv is the argument vector passed to Binary.
func (s CommandSpec) Argv() []string {
	argv := make([]string, 0, len(s.Args)+1)
	argv = append(argv, s.Args...)
	return append(argv, s.URL)
}

// ShellLine renders the command as a single sh command with stdout redirected
// to the output file. Operands are single-quoted.
func (s CommandSpec) ShellLine() string {
	parts := []string{shellQuote(s.binaryOrTool())}
	for _, arg := range s.Argv() {
		parts = append(parts, shellQuote(arg))
	}
	return strings.Join(parts, " ") + " > " + shellQuote(s.OutputPath)
}

func (s CommandSpec) String() string {
	if s.Binary == "" {
		return fmt.Sprintf("%s %s > %s", s.Tool, s.URL, s.OutputPath)
	}
	return s.ShellLine()
}

func (s CommandSpec) binaryOrTool() string {
	if s.Binary != "" {
		return s.Binary
	}
	return s.Tool
}

// monolithArgs treats a bare value such as "jIs" as a short-flag cluster.
func monolithArgs(args string) []string {
	args = strings.TrimSpace(args)
	if args == "" {
		return nil
	}
	if strings.HasPrefix(args, "-") {
		return strings.Fields(args)
	}
	return []string{"-" + args}
}

func shellQuote(s string) string {
	if s != "" && strings.IndexFunc(s, needsQuote) < 0 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func needsQuote(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	}
	return !strings.ContainsRune("-_./:,+=@%", r)
}

// DiscardArtifact truncates a failed capture's output to zero bytes, which
// the planner treats as "capture again".
func DiscardArtifact(path string) error {
	err := os.Truncate(path, 0)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to discard artifact: %w", err)
	}
	return nil
}
