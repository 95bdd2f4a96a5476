package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync/atomic"

	"callscout-engine/internal/domain"
	"callscout-engine/internal/events"
	"callscout-engine/internal/query"
)

type QueryHandler struct {
	Hub        *events.Hub
	LastResult *atomic.Value // *query.Result
	LoadGlobal func() []domain.CallRecord
	RunQuery   func(ctx context.Context, req query.Request) (*query.Result, error)
}

// Run executes a query synchronously and returns the consolidated result.
// Per-source failures ride inside the result; only a malformed request is
// an HTTP error.
func (h QueryHandler) Run(w http.ResponseWriter, r *http.Request) {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req query.Request
	if err := dec.Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_json", "invalid JSON: "+err.Error())
		return
	}

	h.Hub.Publish(events.MakeEvent(events.TypeQueryStarted, 1, map[string]any{
		"mode": req.Mode, "source": req.Source,
	}))

	res, err := h.RunQuery(r.Context(), req)
	if err != nil {
		var iq *query.InvalidQueryError
		if errors.As(err, &iq) {
			WriteError(w, r, http.StatusBadRequest, "invalid_query", iq.Reason)
			return
		}
		// Abandoned by the caller or some other terminal failure.
		WriteError(w, r, http.StatusInternalServerError, "query_failed", err.Error())
		return
	}

	h.LastResult.Store(res)
	h.Hub.Publish(events.MakeEvent(events.TypeQueryCompleted, 1, map[string]any{
		"records": len(res.Records), "warnings": len(res.Warnings),
	}))
	writeJSON(w, res)
}

// Last returns the most recent consolidated result. When no query has run
// in this process it falls back to the persisted global store.
func (h QueryHandler) Last(w http.ResponseWriter, r *http.Request) {
	if v := h.LastResult.Load(); v != nil {
		if res, ok := v.(*query.Result); ok && res != nil {
			writeJSON(w, res)
			return
		}
	}
	writeJSON(w, map[string]any{"records": h.LoadGlobal()})
}

// Clear drops the held last result. Cache files are untouched.
func (h QueryHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.LastResult.Store((*query.Result)(nil))
	writeJSON(w, map[string]any{"ok": true})
}
