package summary

import "testing"

func TestTruncate(t *testing.T) {
	cases := []struct {
		text  string
		limit int
		want  string
	}{
		{"one two three four", 2, "one two..."},
		{"one two", 5, "one two"},
		{"one two", 2, "one two"},
		{"  spaced   out   text  ", 10, "spaced out text"},
		{"", 10, ""},
		{"anything", 0, ""},
	}
	for _, c := range cases {
		if got := Truncate(c.text, c.limit); got != c.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", c.text, c.limit, got, c.want)
		}
	}
}
