package cache

import (
	"testing"

	"callscout-engine/internal/domain"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Salud Mental":    "salud_mental",
		"  Energy (2026)": "energy_2026",
		"café":            "caf",
		"":                "",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSignatureSlug(t *testing.T) {
	sig := Signature{
		Mode:     domain.ModeInternational,
		Source:   "all",
		Theme:    "Salud Mental",
		Goal:     3,
		Keywords: "",
		Category: domain.CategoryNone,
	}
	want := "international_all_salud_mental_3_no_select_no_select"
	if got := sig.Slug(); got != want {
		t.Fatalf("slug = %q, want %q", got, want)
	}
	// Deterministic.
	if sig.Slug() != sig.Slug() {
		t.Fatal("slug not stable")
	}
}

func TestSignatureSlugEmptyGoal(t *testing.T) {
	sig := Signature{Mode: domain.ModeNational, Source: "mintic", Category: domain.CategoryProjects}
	want := "national_mintic_no_select_no_select_no_select_proyectos"
	if got := sig.Slug(); got != want {
		t.Fatalf("slug = %q, want %q", got, want)
	}
}
