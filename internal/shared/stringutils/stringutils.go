package stringutils

import (
	"strings"
	"unicode/utf8"
)

const truncatedMarker = "... (truncated)"

// Truncate shortens a string to at most n bytes, adding "..." if it was truncated.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return runePrefix(s, n) + "..."
}

// TruncateAtBoundary cuts s to roughly max bytes, preferring to end on a
// paragraph, sentence, line or word boundary found in the second half of the
// kept text, and marks the cut with "... (truncated)".
func TruncateAtBoundary(s string, max int) string {
	if len(s) <= max {
		return s
	}
	at := max - 20
	if at <= 0 {
		return truncatedMarker
	}
	head := runePrefix(s, at)
	at = len(head)

	for _, sep := range []string{"\n\n", ".\n", ". ", "\n"} {
		if pos := strings.LastIndex(head, sep); pos > at/2 {
			return s[:pos+len(sep)] + "\n" + truncatedMarker
		}
	}
	if pos := strings.LastIndexByte(head, ' '); pos > at/2 {
		return s[:pos] + " " + truncatedMarker
	}
	return head + truncatedMarker
}

// runePrefix returns the longest prefix of s of at most n bytes that does not
// split a UTF-8 sequence.
func runePrefix(s string, n int) string {
	if n >= len(s) {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
