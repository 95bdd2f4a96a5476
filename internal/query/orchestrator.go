// Package query holds the top-level orchestrator: it resolves sources,
// checks the cache, drives the adapter fan-out, consolidates, ranks and
// persists. Nothing below this package aborts a whole query.
package query

import (
	"context"
	"log"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"callscout-engine/internal/cache"
	"callscout-engine/internal/domain"
	"callscout-engine/internal/merge"
	"callscout-engine/internal/rank"
	"callscout-engine/internal/scrape/types"
)

// SourceReport is the per-source provenance entry of a result.
type SourceReport struct {
	Source    domain.Source `json:"source"`
	FromCache int           `json:"from_cache"`
	Fetched   int           `json:"fetched"`
	Failed    bool          `json:"failed"`
	Err       string        `json:"error,omitempty"`
}

// Result is what every query returns: the ranked record set plus
// provenance. A query with every source failed still completes with an
// empty set, never an error.
type Result struct {
	Records  []domain.CallRecord `json:"records"`
	Sources  []SourceReport      `json:"sources"`
	Warnings []string            `json:"warnings,omitempty"`
	At       time.Time           `json:"at"`
}

// Archiver records completed runs; satisfied by the sqlite store.
type Archiver interface {
	RecordRun(ctx context.Context, req Request, res *Result) error
}

// Orchestrator wires the cache store to the adapter registry. One query at
// a time; the store's atomic writes cover the rest.
type Orchestrator struct {
	Store    *cache.Store
	Fetchers map[domain.Source]types.Fetcher
	Archive  Archiver // optional

	PerSourceLimit int // adapter yield cap per fetch
	MinPerSource   int // desired records per selected source

	// now is swapped in tests.
	Now func() time.Time
}

func (o *Orchestrator) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// Run executes one query end to end. The only error returns are an invalid
// request and caller abandonment; everything else is contained in the
// result's provenance and warnings.
func (o *Orchestrator) Run(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sources := req.resolveSources()
	sig := req.signature()
	ref := o.now()

	cached := o.Store.Load(sig)
	valid, stale := o.Store.FilterValid(cached, ref)
	if len(stale) > 0 {
		log.Printf("[query] %s: %d cached records inside freshness horizon, re-verifying", sig.Slug(), len(stale))
	}

	minDesired := o.MinPerSource * len(sources)
	_, needsMore := merge.Consolidate(valid, nil, minDesired, true)

	reports := make([]SourceReport, len(sources))
	for i, src := range sources {
		reports[i] = SourceReport{Source: src, FromCache: countBySource(valid, src)}
	}

	var fresh []domain.CallRecord
	if needsMore && !req.UseCacheOnly {
		fresh = o.fetchAll(ctx, req, sources, reports, ref)
	} else {
		log.Printf("[query] %s: cache satisfies request (valid=%d min=%d cacheOnly=%v), skipping fetch",
			sig.Slug(), len(valid), minDesired, req.UseCacheOnly)
	}

	final, _ := merge.Consolidate(valid, fresh, minDesired, false)
	ranked := rank.Rank(final)

	res := &Result{Records: ranked, Sources: reports, At: ref}

	// An abandoned query must leave the store untouched.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := o.Store.Write(sig, ranked); err != nil {
		log.Printf("[query] cache write failed: %v", err)
		res.Warnings = append(res.Warnings, "cache write failed: "+err.Error())
	}
	if err := o.Store.WriteGlobal(ranked); err != nil {
		log.Printf("[query] global result write failed: %v", err)
		res.Warnings = append(res.Warnings, "global result write failed: "+err.Error())
	}
	if o.Archive != nil {
		if err := o.Archive.RecordRun(ctx, req, res); err != nil {
			log.Printf("[query] run archive failed: %v", err)
			res.Warnings = append(res.Warnings, "run archive failed: "+err.Error())
		}
	}
	return res, nil
}

type fetchOutcome struct {
	source  domain.Source
	records []domain.CallRecord
	err     error
}

// fetchAll runs every eligible adapter concurrently and waits for all of
// them. A failed source contributes zero records and never cancels its
// siblings.
func (o *Orchestrator) fetchAll(ctx context.Context, req Request, sources []domain.Source, reports []SourceReport, ref time.Time) []domain.CallRecord {
	freq := types.FetchRequest{Theme: req.Theme, Keywords: req.Keywords, Limit: o.PerSourceLimit}

	var g errgroup.Group
	outcomes := make(chan fetchOutcome, len(sources))

	for _, src := range sources {
		f, ok := o.Fetchers[src]
		if !ok {
			outcomes <- fetchOutcome{source: src, err: &InvalidQueryError{Reason: "no adapter registered for " + string(src)}}
			continue
		}
		g.Go(func() error {
			fctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
			defer cancel()

			log.Printf("[source:%s] fetching...", f.Source())
			recs, err := f.Fetch(fctx, freq)
			if err != nil {
				log.Printf("[source:%s] error: %v", f.Source(), err)
				outcomes <- fetchOutcome{source: f.Source(), err: err}
				return nil
			}
			outcomes <- fetchOutcome{source: f.Source(), records: recs}
			return nil
		})
	}
	_ = g.Wait()
	close(outcomes)

	var fresh []domain.CallRecord
	for out := range outcomes {
		i := reportIndex(reports, out.source)
		if out.err != nil {
			if i >= 0 {
				reports[i].Failed = true
				reports[i].Err = out.err.Error()
			}
			continue
		}
		kept := o.filterFetched(out.records, req, ref)
		if i >= 0 {
			reports[i].Fetched = len(kept)
		}
		log.Printf("[source:%s] got %d records, kept %d", out.source, len(out.records), len(kept))
		fresh = append(fresh, kept...)
	}
	return fresh
}

// filterFetched applies the freshness horizon and the query's post-filters
// to freshly-fetched records. Adapters pass theme and keywords upstream
// where they can; the checks here are authoritative.
func (o *Orchestrator) filterFetched(records []domain.CallRecord, req Request, ref time.Time) []domain.CallRecord {
	keep, _ := o.Store.FilterValid(records, ref)

	out := keep[:0]
	for _, rec := range keep {
		if req.Theme != "" && !matchesTheme(rec, req.Theme) {
			continue
		}
		if req.Goal != 0 && !rec.HasGoal(req.Goal) {
			continue
		}
		if req.Category != domain.CategoryNone && rec.Category != req.Category {
			continue
		}
		if req.Keywords != "" && !matchesKeywords(rec, req.Keywords) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// matchesTheme checks the theme against the record's title and summary,
// case-insensitive. Adapters that can filter server-side (search params,
// programme categories) still pass through here so every source ends up
// held to the same containment rule.
func matchesTheme(rec domain.CallRecord, theme string) bool {
	t := strings.ToLower(theme)
	return strings.Contains(strings.ToLower(rec.Title), t) ||
		strings.Contains(strings.ToLower(rec.Summary), t)
}

// matchesKeywords checks every whitespace-separated keyword against the
// record's title and summary, case-insensitive; all must appear.
func matchesKeywords(rec domain.CallRecord, keywords string) bool {
	haystack := strings.ToLower(rec.Title + " " + rec.Summary)
	for _, kw := range strings.Fields(strings.ToLower(keywords)) {
		if !strings.Contains(haystack, kw) {
			return false
		}
	}
	return true
}

func countBySource(records []domain.CallRecord, src domain.Source) int {
	n := 0
	for _, rec := range records {
		if rec.Source == src {
			n++
		}
	}
	return n
}

func reportIndex(reports []SourceReport, src domain.Source) int {
	for i := range reports {
		if reports[i].Source == src {
			return i
		}
	}
	return -1
}
