package classify

import (
	"testing"

	"callscout-engine/internal/domain"
)

func TestGoalsSpanishAndEnglish(t *testing.T) {
	got := Goals("Proyecto sobre salud y educación en zonas rurales")
	if len(got) != 2 || got[0] != 3 || got[1] != 4 {
		t.Fatalf("got %v, want [3 4]", got)
	}

	got = Goals("Grants for marine biodiversity and climate research")
	want := map[domain.Goal]bool{13: true, 14: true, 15: true}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for _, g := range got {
		if !want[g] {
			t.Fatalf("unexpected goal %d in %v", g, got)
		}
	}
}

func TestGoalsUnknownFallback(t *testing.T) {
	for _, text := range []string{"", "   ", "nothing matches here"} {
		got := Goals(text)
		if len(got) != 1 || got[0] != domain.GoalUnknown {
			t.Fatalf("Goals(%q) = %v, want unknown sentinel", text, got)
		}
	}
}

func TestGoalsCaseInsensitive(t *testing.T) {
	got := Goals("RENEWABLE Energy transition")
	if len(got) != 1 || got[0] != 7 {
		t.Fatalf("got %v, want [7]", got)
	}
}
