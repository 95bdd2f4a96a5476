package domain

import (
	"testing"
	"time"
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestDedupKeyNormalizesLink(t *testing.T) {
	a := CallRecord{Title: "A", Link: "https://example.org/calls/42/"}
	b := CallRecord{Title: "B", Link: "HTTPS://EXAMPLE.ORG/calls/42"}
	if a.DedupKey() != b.DedupKey() {
		t.Fatalf("keys differ: %q vs %q", a.DedupKey(), b.DedupKey())
	}
}

func TestDedupKeyTitleFallback(t *testing.T) {
	a := CallRecord{Title: "  Open  Call  ", Link: ""}
	b := CallRecord{Title: "open call", Link: "not a url"}
	if a.DedupKey() != b.DedupKey() {
		t.Fatalf("title fallback keys differ: %q vs %q", a.DedupKey(), b.DedupKey())
	}
	if a.DedupKey() == (CallRecord{Title: "other call"}).DedupKey() {
		t.Fatal("distinct titles collided")
	}
}

func TestNormalizeGoals(t *testing.T) {
	got := NormalizeGoals([]Goal{3, 3, 99, 0, 7})
	if len(got) != 2 || got[0] != 3 || got[1] != 7 {
		t.Fatalf("got %v", got)
	}
	got = NormalizeGoals(nil)
	if len(got) != 1 || got[0] != GoalUnknown {
		t.Fatalf("empty input should yield unknown sentinel, got %v", got)
	}
}

func TestFormatParseGoals(t *testing.T) {
	if s := FormatGoals([]Goal{4, 13}); s != "4;13" {
		t.Fatalf("got %q", s)
	}
	if s := FormatGoals(nil); s != "unknown" {
		t.Fatalf("got %q", s)
	}
	got := ParseGoals("4;13")
	if len(got) != 2 || got[0] != 4 || got[1] != 13 {
		t.Fatalf("got %v", got)
	}
	got = ParseGoals("unknown")
	if len(got) != 1 || got[0] != GoalUnknown {
		t.Fatalf("got %v", got)
	}
}

func TestCompleteness(t *testing.T) {
	bare := CallRecord{Title: "A", Link: "https://x", Goals: []Goal{GoalUnknown}}
	full := CallRecord{
		Title: "A", Link: "https://x",
		Summary:      "desc",
		Goals:        []Goal{3},
		DeadlineDate: datePtr(2026, time.October, 1),
	}
	if bare.Completeness() != 0 {
		t.Fatalf("bare completeness = %d", bare.Completeness())
	}
	if full.Completeness() != 3 {
		t.Fatalf("full completeness = %d", full.Completeness())
	}
}
