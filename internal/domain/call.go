package domain

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Goal is one of the 17 development-goal identifiers; GoalUnknown marks a
// record no keyword matched.
type Goal int

const GoalUnknown Goal = 0

// CallRecord is one funding opportunity, normalized across all sources.
// Records are immutable once they enter the cache or merge path.
type CallRecord struct {
	Title        string
	Link         string
	OpeningDate  *time.Time
	DeadlineDate *time.Time
	Summary      string
	Goals        []Goal // never empty; falls back to GoalUnknown
	Source       Source
	Category     Category // national mode only
}

// NormalizeGoals enforces the never-empty invariant and drops out-of-range
// tags.
func NormalizeGoals(goals []Goal) []Goal {
	out := make([]Goal, 0, len(goals))
	seen := map[Goal]bool{}
	for _, g := range goals {
		if g < 1 || g > 17 || seen[g] {
			continue
		}
		seen[g] = true
		out = append(out, g)
	}
	if len(out) == 0 {
		return []Goal{GoalUnknown}
	}
	return out
}

// FormatGoals renders a tag set as semicolon-joined numbers, or the
// literal "unknown". This is the persisted wire form shared by the CSV
// cache and the run archive.
func FormatGoals(goals []Goal) string {
	goals = NormalizeGoals(goals)
	if len(goals) == 1 && goals[0] == GoalUnknown {
		return "unknown"
	}
	parts := make([]string, 0, len(goals))
	for _, g := range goals {
		parts = append(parts, strconv.Itoa(int(g)))
	}
	return strings.Join(parts, ";")
}

// ParseGoals is the inverse of FormatGoals; anything unparseable collapses
// to the unknown sentinel.
func ParseGoals(s string) []Goal {
	var goals []Goal
	for _, part := range strings.Split(s, ";") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		goals = append(goals, Goal(n))
	}
	return NormalizeGoals(goals)
}

// HasGoal reports whether the record carries the given tag.
func (c CallRecord) HasGoal(g Goal) bool {
	for _, t := range c.Goals {
		if t == g {
			return true
		}
	}
	return false
}

// HasKnownGoals reports whether the record matched at least one real goal.
func (c CallRecord) HasKnownGoals() bool {
	return len(c.Goals) > 0 && !(len(c.Goals) == 1 && c.Goals[0] == GoalUnknown)
}

// DedupKey is the identity used to collapse duplicates: the link,
// case-insensitive and trailing-slash-normalized. Records without a usable
// link fall back to the normalized title.
func (c CallRecord) DedupKey() string {
	link := strings.TrimSpace(c.Link)
	if link != "" {
		if u, err := url.Parse(link); err == nil && u.Host != "" {
			return strings.TrimRight(strings.ToLower(link), "/")
		}
	}
	return "title:" + strings.Join(strings.Fields(strings.ToLower(c.Title)), " ")
}

// Completeness scores how much usable detail a record carries. Used on
// dedup collisions: the more complete record wins.
func (c CallRecord) Completeness() int {
	score := 0
	if strings.TrimSpace(c.Summary) != "" {
		score++
	}
	if c.HasKnownGoals() {
		score++
	}
	if c.DeadlineDate != nil {
		score++
	}
	return score
}
