package util

import (
	"strconv"
	"strings"
	"time"
)

// Layouts seen across the funder portals: European, American and ISO
// styles, with and without abbreviated month names.
var dateLayouts = []string{
	"2 January 2006",
	"2 Jan 2006",
	"January 2 2006",
	"Jan 2 2006",
	"January 2006",
	"02/01/2006",
	"01/02/2006",
	"2006-01-02",
	"2006/01/02",
}

// Spanish (ministry pages) and French (ANR) month names.
var monthNames = map[string]time.Month{
	"enero": time.January, "febrero": time.February, "marzo": time.March,
	"abril": time.April, "mayo": time.May, "junio": time.June,
	"julio": time.July, "agosto": time.August, "septiembre": time.September,
	"octubre": time.October, "noviembre": time.November, "diciembre": time.December,

	"janvier": time.January, "février": time.February, "fevrier": time.February,
	"mars": time.March, "avril": time.April, "mai": time.May, "juin": time.June,
	"juillet": time.July, "août": time.August, "aout": time.August,
	"septembre": time.September, "octobre": time.October,
	"novembre": time.November, "décembre": time.December, "decembre": time.December,
}

// ParseDate parses the many date shapes the portals emit into a calendar
// date. Returns nil when the text does not resemble a date; sorting and
// freshness checks treat nil as "no date".
func ParseDate(s string) *time.Time {
	s = CleanText(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return parseWordDate(s)
}

// parseWordDate handles strings like "jueves 25 septiembre 2025 07:00 pm"
// or "mars 2026": scan tokens for a day number, a Spanish/French month
// name and a year, in any order around weekday/time noise. A missing day
// defaults to the first of the month.
func parseWordDate(s string) *time.Time {
	var (
		day, year int
		month     time.Month
	)
	for _, tok := range strings.Fields(strings.ToLower(s)) {
		tok = strings.Trim(tok, ".")
		if m, ok := monthNames[tok]; ok && month == 0 {
			month = m
			continue
		}
		n, err := strconv.Atoi(tok)
		if err != nil {
			continue
		}
		switch {
		case n >= 1000:
			if year == 0 {
				year = n
			}
		case n >= 1 && n <= 31:
			if day == 0 {
				day = n
			}
		}
	}
	if month == 0 || year == 0 {
		return nil
	}
	if day == 0 {
		day = 1
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}
