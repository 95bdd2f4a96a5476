package summary

import "strings"

// Truncate produces a bounded summary: the first wordLimit words of text,
// with an ellipsis appended when anything was cut. Whitespace is collapsed.
func Truncate(text string, wordLimit int) string {
	if wordLimit <= 0 {
		return ""
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	if len(words) <= wordLimit {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:wordLimit], " ") + "..."
}
