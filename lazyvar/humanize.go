package lazyvar

import (
	"strings"
	"unicode"
)

// Humanize splits camelCase words: every upper case letter that follows a lower case letter is
// lowered and preceded by a space. "itBehavesLike" becomes "it behaves like".
func Humanize(value string) string {
	var b strings.Builder
	var prev rune
	for i, r := range value {
		if i > 0 && isASCIILower(prev) && isASCIIUpper(r) {
			b.WriteByte(' ')
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
		prev = r
	}
	return b.String()
}

func isASCIILower(r rune) bool { return r >= 'a' && r <= 'z' }
func isASCIIUpper(r rune) bool { return r >= 'A' && r <= 'Z' }

// ParseMessage turns expectation phrases into a test title: "is expected " followed by the
// humanized phrases joined with commas. An "and" inside a phrase also becomes a comma. It
// returns "" when there are no phrases.
func ParseMessage(phrases ...string) string {
	if len(phrases) == 0 {
		return ""
	}
	chunks := make([]string, 0, len(phrases))
	for _, p := range phrases {
		clean := strings.Join(strings.Fields(p), " ")
		chunks = append(chunks, strings.ReplaceAll(Humanize(clean), " and ", ", "))
	}
	return "is expected " + strings.Join(chunks, ", ")
}
