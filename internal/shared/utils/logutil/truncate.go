package logutil

import "unicode/utf8"

// DefaultMaxLen bounds model output and tool arguments in log lines.
const DefaultMaxLen = 512

// TruncateForLog shortens s to at most maxLen runes and marks the cut with
// "...". Multi-byte characters are never split.
func TruncateForLog(s string, maxLen int) string {
	if maxLen <= 0 {
		return "..."
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	n := 0
	for i := range s {
		if n == maxLen {
			return s[:i] + "..."
		}
		n++
	}
	return s
}
