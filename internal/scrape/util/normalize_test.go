package util

import "testing"

func TestCleanText(t *testing.T) {
	if got := CleanText("  a b \n\t c  "); got != "a b c" {
		t.Fatalf("got %q", got)
	}
	if got := CleanText(" "); got != "" {
		t.Fatalf("got %q", got)
	}
}

func TestStripLabel(t *testing.T) {
	if got := StripLabel("Deadline: 18 September 2026", "Deadline"); got != "18 September 2026" {
		t.Fatalf("got %q", got)
	}
	if got := StripLabel("call closes 1 May 2026", "Call closes"); got != "1 May 2026" {
		t.Fatalf("case-insensitive strip failed: %q", got)
	}
	if got := StripLabel("18 September 2026", "Deadline"); got != "18 September 2026" {
		t.Fatalf("unlabeled text mangled: %q", got)
	}
}
