package util

import "strings"

func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

// StripLabel removes a leading label such as "Deadline:" or "Call closes"
// from scraped date text.
func StripLabel(s string, labels ...string) string {
	s = CleanText(s)
	for _, l := range labels {
		if len(s) >= len(l) && strings.EqualFold(s[:len(l)], l) {
			s = strings.TrimSpace(strings.TrimLeft(s[len(l):], ": "))
		}
	}
	return s
}
