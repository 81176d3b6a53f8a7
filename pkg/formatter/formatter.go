package formatter

import (
	"strings"
	"unicode/utf8"
)

// Truncate shortens s to at most max runes, marking the cut with "...".
// Example: Truncate("hello world", 8) -> "hello..."
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	if max <= 3 {
		return string([]rune(s)[:max])
	}
	return string([]rune(s)[:max-3]) + "..."
}

// SingleLine collapses every run of whitespace, newlines included, into one space.
func SingleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Plural returns singular when n == 1 and singular+"s" otherwise.
func Plural(n int, singular string) string {
	if n == 1 {
		return singular
	}
	return singular + "s"
}
