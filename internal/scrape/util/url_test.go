package util

import "testing"

func TestCanonicalizeURL(t *testing.T) {
	cases := map[string]string{
		"HTTPS://Example.ORG/path?b=2&a=1":                  "https://example.org/path?a=1&b=2",
		"https://example.org/p?utm_source=x&utm_medium=y&q": "https://example.org/p?q=",
		"https://example.org/p?gclid=abc&id=7":              "https://example.org/p?id=7",
		"https://example.org/p#section":                     "https://example.org/p",
	}
	for in, want := range cases {
		if got := CanonicalizeURL(in); got != want {
			t.Errorf("CanonicalizeURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestAbsoluteURL(t *testing.T) {
	cases := []struct {
		base, href, want string
	}{
		{"https://example.org/", "/detail/1", "https://example.org/detail/1"},
		{"https://example.org", "https://other.org/x", "https://other.org/x"},
		{"https://example.org/calls/", "detail.html", "https://example.org/calls/detail.html"},
		{"https://example.org/calls/open/", "../archive/2", "https://example.org/calls/archive/2"},
	}
	for _, c := range cases {
		if got := AbsoluteURL(c.base, c.href); got != c.want {
			t.Errorf("AbsoluteURL(%q, %q) = %q, want %q", c.base, c.href, got, c.want)
		}
	}
}
