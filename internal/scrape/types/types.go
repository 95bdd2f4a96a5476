package types

import (
	"context"

	"callscout-engine/internal/domain"
)

// FetchRequest carries the query filters a source can act on. Sources that
// cannot filter server-side apply them as post-filters or ignore them; the
// orchestrator re-checks filters on everything fetched.
type FetchRequest struct {
	Theme    string
	Keywords string
	Limit    int // per-source yield cap
}

// Fetcher is the capability contract each per-source adapter satisfies.
// A failed fetch must return an error rather than abort anything wider;
// the orchestrator treats it as zero records from that source.
type Fetcher interface {
	Source() domain.Source
	Fetch(ctx context.Context, req FetchRequest) ([]domain.CallRecord, error)
}
