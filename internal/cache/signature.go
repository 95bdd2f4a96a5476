package cache

import (
	"regexp"
	"strconv"
	"strings"

	"callscout-engine/internal/domain"
)

// Signature is the deterministic cache key derived from a query's filter
// fields. Its slug names the on-disk cache entry.
type Signature struct {
	Mode     domain.Mode
	Source   string // concrete source id or "all"
	Theme    string
	Goal     domain.Goal // 0 means no goal filter
	Keywords string
	Category domain.Category
}

const emptySlot = "no_select"

var slugStrip = regexp.MustCompile(`[^a-z0-9_]+`)

// Slugify lowercases, replaces spaces with underscores and strips anything
// that is not alphanumeric or underscore.
func Slugify(v string) string {
	v = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(v)), " ", "_")
	return slugStrip.ReplaceAllString(v, "")
}

func slot(v string) string {
	if s := Slugify(v); s != "" {
		return s
	}
	return emptySlot
}

// Slug renders the signature as a filesystem-safe key. Deterministic: the
// same filters always map to the same slug.
func (s Signature) Slug() string {
	goal := emptySlot
	if s.Goal >= 1 && s.Goal <= 17 {
		goal = strconv.Itoa(int(s.Goal))
	}
	parts := []string{
		slot(string(s.Mode)),
		slot(s.Source),
		slot(s.Theme),
		goal,
		slot(s.Keywords),
		slot(string(s.Category)),
	}
	return strings.Join(parts, "_")
}
