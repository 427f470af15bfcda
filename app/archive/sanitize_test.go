package archive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain", "plain", "plain"},
		{"comma and space", "Hello, World!", "Hello-World!"},
		{"double hyphen", "a--b", "a-b"},
		{"triple hyphen", "a---b", "a-b"},
		{"long hyphen run", "a------b", "a-b"},
		{"colon and apostrophe", "Go 1.22: What's new?", "Go-1.22-Whats-new?"},
		{"parentheses", "The End (Part 2)", "The-End-Part-2"},
		{"trailing dots", "Wait for it ...", "Wait-for-it..."},
		{"hyphen before dot", "item :.", "item."},
		{"ellipsis character", "Really… really", "Really-really"},
		{"smart single quotes", "‘Smart’ move", "Smart-move"},
		{"smart double quotes", "“Quoted” text", "Quoted-text"},
		{"straight double quotes", `Say "hi" now.`, "Say-hi-now."},
		{"ampersand", "Tom & Jerry", "Tom-Jerry"},
		{"shell characters", "a <b> | c; d * e", "a-b-c-d-e"},
		{"backtick", "run `ls`", "run-ls"},
		{"path separator", "AC/DC live", "AC-DC-live"},
		{"backslash", `C:\Windows`, "C-Windows"},
		{"greek question mark", "why\u037e", "why"},
		{"combining accent", "cafe\u0301", "café"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.input))
		})
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"Hello, World!",
		"a - - b",
		"--leading and trailing--",
		"- . - . -",
		"Wait for it ...",
		"‘a’ “b” c… d",
		"x\u0301'\u0301y",
		"e'\u0301",
		"many     spaces",
		"..",
		"a-.b-.c",
		"Ünïcödé & <tags>; (parens) *stars* |pipes|",
		"\u037e\u1fef",
	}

	for _, input := range inputs {
		once := Sanitize(input)
		assert.Equal(t, once, Sanitize(once), "input %q", input)
	}
}

func TestSanitize_NoUnsafeCharacters(t *testing.T) {
	got := Sanitize(`a b,c:d(e)f'g*h|i;j` + "`k…l\"m<n>o&p/q")

	assert.NotContains(t, got, " ")
	assert.NotContains(t, got, "--")
	assert.NotContains(t, got, "/")
	for _, r := range ",:()'*|;`…\"<>&" {
		assert.NotContains(t, got, string(r))
	}
}
