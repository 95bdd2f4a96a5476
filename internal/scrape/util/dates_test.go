package util

import (
	"testing"
	"time"
)

func TestParseDateLayouts(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"18 September 2026", time.Date(2026, time.September, 18, 0, 0, 0, 0, time.UTC)},
		{"18 Sep 2026", time.Date(2026, time.September, 18, 0, 0, 0, 0, time.UTC)},
		{"September 18, 2026", time.Date(2026, time.September, 18, 0, 0, 0, 0, time.UTC)},
		{"25/09/2026", time.Date(2026, time.September, 25, 0, 0, 0, 0, time.UTC)},
		{"2026-09-25", time.Date(2026, time.September, 25, 0, 0, 0, 0, time.UTC)},
		{"  2026/09/25 ", time.Date(2026, time.September, 25, 0, 0, 0, 0, time.UTC)},
	}
	for _, c := range cases {
		got := ParseDate(c.in)
		if got == nil || !got.Equal(c.want) {
			t.Errorf("ParseDate(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseDateSpanishLongForm(t *testing.T) {
	got := ParseDate("jueves 25 septiembre 2025 07:00 pm")
	want := time.Date(2025, time.September, 25, 0, 0, 0, 0, time.UTC)
	if got == nil || !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestParseDateFrenchMonthOnly(t *testing.T) {
	got := ParseDate("mars 2026")
	want := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	if got == nil || !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestParseDateGarbage(t *testing.T) {
	for _, in := range []string{"", "mirar anexos", "Program dependent", "TBD"} {
		if got := ParseDate(in); got != nil {
			t.Errorf("ParseDate(%q) = %v, want nil", in, got)
		}
	}
}
