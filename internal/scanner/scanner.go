// Package scanner counts lexical markers in source text after removing
// comments and string literals.
//
// Stripping is two sequential regexp substitutions, comments first and
// then double-quoted strings. This is not a lexer and has known edge cases
// that are kept for output compatibility:
//
//   - a comment marker inside a string literal is treated as a comment,
//     so `"http://host"` loses everything from `//` to end of line;
//   - the string pattern is greedy within a line, so two literals on the
//     same line are removed together with the code between them.
package scanner

import (
	"regexp"

	"github.com/taigrr/dirstats/internal/types"
)

// whitespace matches the ASCII whitespace set used by the marker patterns.
const whitespace = `[ \t\n\r\f\v]`

var (
	commentPattern = regexp.MustCompile(`/\*([^*]|[\r\n]|(\*+([^*/]|[\r\n])))*\*+/|//.*`)
	stringPattern  = regexp.MustCompile(`".*"`)

	publicPattern  = regexp.MustCompile(`(?:^|` + whitespace + `|;)public` + whitespace)
	privatePattern = regexp.MustCompile(`(?:^|` + whitespace + `|;)private` + whitespace)
	tryPattern     = regexp.MustCompile(`(?:^|` + whitespace + `|;|\})try(?:` + whitespace + `*\{|\{)`)
	catchPattern   = regexp.MustCompile(`(?:^|` + whitespace + `|;|\})(?:catch\(|catch` + whitespace + `*\()`)
)

// Strip removes block comments, line comments and then double-quoted
// string literals from content.
func Strip(content string) string {
	stripped := commentPattern.ReplaceAllLiteralString(content, "")
	return stringPattern.ReplaceAllLiteralString(stripped, "")
}

// Count counts non-overlapping marker occurrences in text as is.
func Count(text string) types.MarkerCounts {
	return types.MarkerCounts{
		Public:  countMatches(publicPattern, text),
		Private: countMatches(privatePattern, text),
		Try:     countMatches(tryPattern, text),
		Catch:   countMatches(catchPattern, text),
	}
}

// Scan strips content and counts the markers left in it.
func Scan(content string) types.MarkerCounts {
	return Count(Strip(content))
}

func countMatches(re *regexp.Regexp, text string) int {
	return len(re.FindAllStringIndex(text, -1))
}
