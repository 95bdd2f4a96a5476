package merge

import "callscout-engine/internal/domain"

// Consolidate unions cache-valid and freshly-fetched records by dedup key.
// On a collision the more complete record wins; on a completeness tie the
// fresher copy wins. needsMore reports whether the orchestrator should
// still invoke adapters: the set is short of minDesired and eligible
// sources remain unqueried.
//
// Output order is the cached-then-fresh insertion order; presentation
// ordering is the ranking engine's job.
func Consolidate(validCached, fresh []domain.CallRecord, minDesired int, sourcesRemaining bool) (final []domain.CallRecord, needsMore bool) {
	index := make(map[string]int, len(validCached)+len(fresh))

	add := func(rec domain.CallRecord, isFresh bool) {
		key := rec.DedupKey()
		at, ok := index[key]
		if !ok {
			index[key] = len(final)
			final = append(final, rec)
			return
		}
		existing := final[at]
		switch {
		case rec.Completeness() > existing.Completeness():
			final[at] = rec
		case rec.Completeness() == existing.Completeness() && isFresh:
			// Fresh data supersedes cached on ties.
			final[at] = rec
		}
	}

	for _, rec := range validCached {
		add(rec, false)
	}
	for _, rec := range fresh {
		add(rec, true)
	}

	needsMore = len(final) < minDesired && sourcesRemaining
	return final, needsMore
}
