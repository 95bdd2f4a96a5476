package cache

import (
	"errors"
	"strings"
	"time"

	"callscout-engine/internal/domain"
)

// On-disk row schema shared by per-query entries and the global result
// file. Dates are ISO dates; goals are semicolon-joined tag numbers or the
// literal "unknown".
var csvHeader = []string{
	"title", "link", "opening_date", "deadline_date",
	"summary", "goals", "source", "category",
}

const dateLayout = "2006-01-02"

func encodeDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func decodeDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil
	}
	t = t.UTC()
	return &t
}

func encodeRecord(r domain.CallRecord) []string {
	return []string{
		r.Title,
		r.Link,
		encodeDate(r.OpeningDate),
		encodeDate(r.DeadlineDate),
		r.Summary,
		domain.FormatGoals(r.Goals),
		string(r.Source),
		string(r.Category),
	}
}

var errBadRow = errors.New("malformed cache row")

func decodeRecord(row []string) (domain.CallRecord, error) {
	if len(row) != len(csvHeader) {
		return domain.CallRecord{}, errBadRow
	}
	rec := domain.CallRecord{
		Title:        strings.TrimSpace(row[0]),
		Link:         strings.TrimSpace(row[1]),
		OpeningDate:  decodeDate(row[2]),
		DeadlineDate: decodeDate(row[3]),
		Summary:      row[4],
		Goals:        domain.ParseGoals(row[5]),
		Source:       domain.Source(strings.TrimSpace(row[6])),
		Category:     domain.Category(strings.TrimSpace(row[7])),
	}
	if rec.Title == "" && rec.Link == "" {
		return domain.CallRecord{}, errBadRow
	}
	return rec, nil
}
