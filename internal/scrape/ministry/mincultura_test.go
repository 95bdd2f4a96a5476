package ministry

import (
	"testing"
	"time"
)

func culturaAt(month time.Month) *MinCultura {
	s := NewMinCultura(Config{SummaryWords: 100}, nil)
	s.now = func() time.Time {
		return time.Date(2026, month, 15, 0, 0, 0, 0, time.UTC)
	}
	return s
}

func TestInterpretClosingSlashDate(t *testing.T) {
	s := culturaAt(time.March)
	deadline, keep := s.interpretClosing("25 / 09 / 2026")
	if !keep {
		t.Fatal("dated closing dropped")
	}
	want := time.Date(2026, time.September, 25, 0, 0, 0, 0, time.UTC)
	if deadline == nil || !deadline.Equal(want) {
		t.Fatalf("deadline = %v, want %v", deadline, want)
	}
}

func TestInterpretClosingSemesters(t *testing.T) {
	cases := []struct {
		month time.Month
		label string
		keep  bool
	}{
		{time.March, "Primer semestre", true},
		{time.September, "Primer semestre", false},
		{time.March, "Segundo semestre", false},
		{time.September, "Segundo semestre", true},
	}
	for _, c := range cases {
		deadline, keep := culturaAt(c.month).interpretClosing(c.label)
		if keep != c.keep {
			t.Errorf("%q in %v: keep = %v, want %v", c.label, c.month, keep, c.keep)
		}
		if deadline != nil {
			t.Errorf("%q produced a concrete deadline %v", c.label, deadline)
		}
	}
}

func TestInterpretClosingUnknownLabelKept(t *testing.T) {
	deadline, keep := culturaAt(time.March).interpretClosing("por definir")
	if !keep || deadline != nil {
		t.Fatalf("keep=%v deadline=%v", keep, deadline)
	}
}
