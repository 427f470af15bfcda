package archive

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

var hyphenated = strings.NewReplacer(
	" ", "-",
	"/", "-",
	`\`, "-",
)

var stripped = strings.NewReplacer(
	",", "",
	":", "",
	"(", "",
	")", "",
	"'", "",
	"*", "",
	"|", "",
	";", "",
	"`", "",
	"…", "",
	`"`, "",
	"<", "",
	">", "",
	"&", "",
	"‘", "",
	"’", "",
	"“", "",
	"”", "",
	"‚", "",
	"„", "",
	"′", "",
	"″", "",
)

// Sanitize turns an arbitrary title into a fragment usable as a single path
// segment. Sanitize(Sanitize(s)) == Sanitize(s) for every s.
func Sanitize(s string) string {
	// Leading NFC folds canonical singletons such as U+037E into the ASCII
	// punctuation removed below.
	s = norm.NFC.String(s)
	s = hyphenated.Replace(s)
	s = stripped.Replace(s)

	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	s = strings.ReplaceAll(s, "-.", ".")

	// Removal can leave a combining mark next to a new base character.
	return norm.NFC.String(s)
}
