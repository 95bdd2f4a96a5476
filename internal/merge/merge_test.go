package merge

import (
	"testing"
	"time"

	"callscout-engine/internal/domain"
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func set() []domain.CallRecord {
	return []domain.CallRecord{
		{Title: "A", Link: "https://x/a", Goals: []domain.Goal{3}},
		{Title: "B", Link: "https://x/b", Goals: []domain.Goal{domain.GoalUnknown}},
		{Title: "C", Link: "https://x/c", Goals: []domain.Goal{7}, DeadlineDate: datePtr(2026, time.May, 1)},
	}
}

func TestDedupIdempotence(t *testing.T) {
	withSelf, _ := Consolidate(set(), set(), 10, false)
	alone, _ := Consolidate(set(), nil, 10, false)
	if len(withSelf) != len(alone) {
		t.Fatalf("self-merge changed cardinality: %d vs %d", len(withSelf), len(alone))
	}
	for i := range alone {
		if withSelf[i].DedupKey() != alone[i].DedupKey() {
			t.Fatalf("record %d differs: %q vs %q", i, withSelf[i].DedupKey(), alone[i].DedupKey())
		}
	}
}

func TestCompletenessPreference(t *testing.T) {
	cached := []domain.CallRecord{{Title: "A", Link: "https://x/a", Goals: []domain.Goal{domain.GoalUnknown}}}
	fresh := []domain.CallRecord{{Title: "A", Link: "https://x/a", Goals: []domain.Goal{3, 4}}}

	final, _ := Consolidate(cached, fresh, 1, false)
	if len(final) != 1 {
		t.Fatalf("got %d records", len(final))
	}
	if !final[0].HasKnownGoals() {
		t.Fatalf("less complete record survived: %v", final[0].Goals)
	}
}

func TestFreshWinsOnTie(t *testing.T) {
	cached := []domain.CallRecord{{Title: "A", Link: "https://x/a", Summary: "cached copy"}}
	fresh := []domain.CallRecord{{Title: "A", Link: "https://x/a", Summary: "fresh copy"}}

	final, _ := Consolidate(cached, fresh, 1, false)
	if final[0].Summary != "fresh copy" {
		t.Fatalf("cached copy won a completeness tie: %q", final[0].Summary)
	}
}

func TestNeedsMore(t *testing.T) {
	_, needsMore := Consolidate(set(), nil, 10, true)
	if !needsMore {
		t.Fatal("3 < 10 with sources remaining should need more")
	}
	_, needsMore = Consolidate(set(), nil, 3, true)
	if needsMore {
		t.Fatal("3 >= 3 should not need more")
	}
	_, needsMore = Consolidate(set(), nil, 10, false)
	if needsMore {
		t.Fatal("no sources remaining can never need more")
	}
	final, needsMore := Consolidate(nil, nil, 10, true)
	if len(final) != 0 || !needsMore {
		t.Fatalf("empty inputs: final=%d needsMore=%v", len(final), needsMore)
	}
}
