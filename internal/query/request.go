package query

import (
	"fmt"

	"callscout-engine/internal/cache"
	"callscout-engine/internal/domain"
)

// AllSources selects every source of the active mode.
const AllSources = "all"

// Request is the query the UI layer submits. Zero-value filter fields mean
// "no filter"; an empty Source means AllSources.
type Request struct {
	Mode         domain.Mode     `json:"mode"`
	Source       string          `json:"source"`
	Theme        string          `json:"theme"`
	Goal         domain.Goal     `json:"goal"`
	Keywords     string          `json:"keywords"`
	Category     domain.Category `json:"category"`
	UseCacheOnly bool            `json:"use_cache_only"`
}

// InvalidQueryError rejects a malformed filter combination before any state
// changes.
type InvalidQueryError struct{ Reason string }

func (e *InvalidQueryError) Error() string { return "invalid query: " + e.Reason }

// Validate fails fast on filter combinations no source set can satisfy.
func (r Request) Validate() error {
	switch r.Mode {
	case domain.ModeInternational, domain.ModeNational:
	default:
		return &InvalidQueryError{Reason: fmt.Sprintf("unknown mode %q", r.Mode)}
	}
	if src := r.sourceSelector(); src != AllSources && !domain.ValidSource(r.Mode, domain.Source(src)) {
		return &InvalidQueryError{Reason: fmt.Sprintf("unknown source %q for mode %q", src, r.Mode)}
	}
	if r.Goal != 0 && (r.Goal < 1 || r.Goal > 17) {
		return &InvalidQueryError{Reason: fmt.Sprintf("goal filter %d out of range", r.Goal)}
	}
	switch r.Category {
	case domain.CategoryNone:
	case domain.CategoryRoyalties, domain.CategoryProjects:
		if r.Mode != domain.ModeNational {
			return &InvalidQueryError{Reason: "category filter applies to national mode only"}
		}
	default:
		return &InvalidQueryError{Reason: fmt.Sprintf("unknown category %q", r.Category)}
	}
	return nil
}

func (r Request) sourceSelector() string {
	if r.Source == "" {
		return AllSources
	}
	return r.Source
}

// resolveSources expands the selector into the concrete source list.
func (r Request) resolveSources() []domain.Source {
	if r.sourceSelector() == AllSources {
		return domain.SourcesFor(r.Mode)
	}
	return []domain.Source{domain.Source(r.Source)}
}

// signature derives the deterministic cache key for this request.
func (r Request) signature() cache.Signature {
	return cache.Signature{
		Mode:     r.Mode,
		Source:   r.sourceSelector(),
		Theme:    r.Theme,
		Goal:     r.Goal,
		Keywords: r.Keywords,
		Category: r.Category,
	}
}
