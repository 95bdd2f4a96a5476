package httpapi

import "net/http"

// NewMux returns the raw mux so main() can still attach /shutdown (needs srv).
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Queries
	qh := QueryHandler{
		Hub:        d.Hub,
		LastResult: d.LastResult,
		LoadGlobal: d.LoadGlobal,
		RunQuery:   d.RunQuery,
	}
	mux.HandleFunc("/query", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: qh.Run,
	}))
	mux.HandleFunc("/results/last", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: qh.Last,
	}))
	mux.HandleFunc("/clear", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: qh.Clear,
	}))

	// Run history
	hh := HistoryHandler{Archive: d.Archive}
	mux.HandleFunc("/history", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.List,
	}))
	mux.HandleFunc("/history/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.RecordsByPath, // expects /history/{id}
	}))

	// Config
	ch := ConfigHandler{CfgVal: d.CfgVal}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	// Health
	hl := HealthHandler{}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hl.Health,
	}))

	return mux
}
