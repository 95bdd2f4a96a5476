package rank

import (
	"sort"
	"strings"

	"callscout-engine/internal/domain"
)

// Rank orders a consolidated set for presentation: soonest-closing calls
// first, then calls with only an opening date (ascending), then undated
// calls by title. The order is a total one (title, then link, breaks every
// tie) so the same set ranks identically regardless of arrival order.
func Rank(records []domain.CallRecord) []domain.CallRecord {
	out := make([]domain.CallRecord, len(records))
	copy(out, records)
	sort.Slice(out, func(i, j int) bool {
		return less(out[i], out[j])
	})
	return out
}

func less(a, b domain.CallRecord) bool {
	if c := tier(a) - tier(b); c != 0 {
		return c < 0
	}
	switch tier(a) {
	case 0:
		if !a.DeadlineDate.Equal(*b.DeadlineDate) {
			return a.DeadlineDate.Before(*b.DeadlineDate)
		}
	case 1:
		if !a.OpeningDate.Equal(*b.OpeningDate) {
			return a.OpeningDate.Before(*b.OpeningDate)
		}
	}
	at, bt := strings.ToLower(a.Title), strings.ToLower(b.Title)
	if at != bt {
		return at < bt
	}
	return a.Link < b.Link
}

func tier(r domain.CallRecord) int {
	switch {
	case r.DeadlineDate != nil:
		return 0
	case r.OpeningDate != nil:
		return 1
	default:
		return 2
	}
}
