package archive

import "strings"

const (
	ToolDefault     = "default"
	ToolMonolith    = "monolith"
	ToolLynx        = "lynx"
	ToolReadability = "readability"

	DefaultArgs = "s"
)

// DefaultRule applies to every URL no configured rule matches.
var DefaultRule = Rule{Tool: ToolDefault, Args: DefaultArgs}

type Rule struct {
	Tool    string `yaml:"tool"`
	Matcher string `yaml:"match"`
	Args    string `yaml:"args"`
}

// IsKnownTool reports whether tool belongs to the closed set of capture tools.
func IsKnownTool(tool string) bool {
	switch tool {
	case ToolMonolith, ToolLynx, ToolReadability:
		return true
	}
	return false
}

// Effective folds a rule naming an unknown tool into the default rule. The
// matcher is kept so logs still show which line matched.
func (r Rule) Effective() Rule {
	if IsKnownTool(r.Tool) {
		return r
	}
	return Rule{Tool: ToolDefault, Matcher: r.Matcher, Args: DefaultArgs}
}

// Extension is the file extension of the artifact the rule's tool produces.
func (r Rule) Extension() string {
	if r.Tool == ToolLynx {
		return "txt"
	}
	return "html"
}

// RuleSet is an ordered rule list. Order is part of the configuration
// contract: the first rule whose matcher occurs in the URL wins.
type RuleSet struct {
	rules []Rule
}

func NewRuleSet(rules []Rule) *RuleSet {
	return &RuleSet{rules: append([]Rule(nil), rules...)}
}

func (rs *RuleSet) Resolve(url string) Rule {
	return Resolve(url, rs.rules)
}

func Resolve(url string, rules []Rule) Rule {
	for _, rule := range rules {
		if strings.Contains(url, rule.Matcher) {
			return rule.Effective()
		}
	}
	return DefaultRule
}
