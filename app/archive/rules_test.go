package archive

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_FirstMatchWins(t *testing.T) {
	rules := []Rule{
		{Tool: ToolLynx, Matcher: "example.com", Args: ""},
		{Tool: ToolMonolith, Matcher: "example.com/a", Args: "jIs"},
	}

	got := Resolve("https://example.com/a", rules)

	assert.Equal(t, rules[0], got)
}

func TestResolve_OrderIsSignificant(t *testing.T) {
	rules := []Rule{
		{Tool: ToolMonolith, Matcher: "example.com/a", Args: "jIs"},
		{Tool: ToolLynx, Matcher: "example.com", Args: ""},
	}

	assert.Equal(t, rules[0], Resolve("https://example.com/a", rules))
	assert.Equal(t, rules[1], Resolve("https://example.com/b", rules))
}

func TestResolve_NoMatchReturnsDefault(t *testing.T) {
	rules := []Rule{{Tool: ToolLynx, Matcher: "news.ycombinator.com"}}

	assert.Equal(t, DefaultRule, Resolve("https://example.com/a", rules))
	assert.Equal(t, DefaultRule, Resolve("https://example.com/a", nil))
}

func TestResolve_UnknownToolFallsBackToDefault(t *testing.T) {
	rules := []Rule{{Tool: "wget", Matcher: "example.com", Args: "--mirror"}}

	got := Resolve("https://example.com/a", rules)

	assert.Equal(t, ToolDefault, got.Tool)
	assert.Equal(t, DefaultArgs, got.Args)
	assert.Equal(t, "example.com", got.Matcher)
}

func TestResolve_EmptyMatcherMatchesEverything(t *testing.T) {
	rules := []Rule{
		{Tool: ToolReadability, Matcher: ""},
		{Tool: ToolLynx, Matcher: "example.com"},
	}

	assert.Equal(t, ToolReadability, Resolve("https://example.com/a", rules).Tool)
}

func TestRuleSet_Resolve(t *testing.T) {
	source := []Rule{{Tool: ToolLynx, Matcher: "lwn.net"}}
	rs := NewRuleSet(source)
	source[0].Tool = ToolMonolith

	assert.Equal(t, ToolLynx, rs.Resolve("https://lwn.net/Articles/1").Tool, "rule set must not alias the caller's slice")
	assert.Equal(t, DefaultRule, rs.Resolve("https://example.com"))
}

func TestRule_Extension(t *testing.T) {
	assert.Equal(t, "txt", Rule{Tool: ToolLynx}.Extension())
	assert.Equal(t, "html", Rule{Tool: ToolMonolith}.Extension())
	assert.Equal(t, "html", Rule{Tool: ToolReadability}.Extension())
	assert.Equal(t, "html", DefaultRule.Extension())
}

func TestLoadRules_LineFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.conf")
	content := "monolith|youtube.com|jIs\n" +
		"# comment|with|pipes\n" +
		"\n" +
		"lynx|lwn.net|\r\n" +
		"too|many|fields|here\n" +
		"toofew|fields\n" +
		"readability||\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	rules, err := LoadRules(path)
	require.NoError(t, err)

	assert.Equal(t, []Rule{
		{Tool: ToolMonolith, Matcher: "youtube.com", Args: "jIs"},
		{Tool: ToolLynx, Matcher: "lwn.net", Args: ""},
		{Tool: ToolReadability, Matcher: "", Args: ""},
	}, rules)
}

func TestLoadRules_MissingFile(t *testing.T) {
	rules, err := LoadRules(filepath.Join(t.TempDir(), "absent.conf"))

	require.NoError(t, err)
	assert.Empty(t, rules)
	assert.Equal(t, DefaultRule, Resolve("https://example.com", rules))
}

func TestLoadRules_EmptyPath(t *testing.T) {
	rules, err := LoadRules("")

	require.NoError(t, err)
	assert.Empty(t, rules)
}

func TestLoadRules_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yml")
	content := `
rules:
  - tool: lynx
    match: lwn.net
  - match: missing-tool.example
    args: x
  - tool: monolith
    match: youtube.com
    args: jIs
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	rules, err := LoadRules(path)
	require.NoError(t, err)

	assert.Equal(t, []Rule{
		{Tool: ToolLynx, Matcher: "lwn.net"},
		{Tool: ToolMonolith, Matcher: "youtube.com", Args: "jIs"},
	}, rules)
}

func TestLoadRules_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rules:\n  tool: [unterminated\n"), 0o644))

	_, err := LoadRules(path)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML rules")
}
