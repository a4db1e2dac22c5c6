package utils

import "strings"

// TruncateForLog flattens whitespace in s and shortens it to limit runes,
// appending an ellipsis when truncated. Resume text is multi-line, so previews
// are kept on a single log line.
func TruncateForLog(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
