package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"callscout-engine/internal/events"
)

type EventsHandler struct {
	Hub *events.Hub
}

func (h EventsHandler) ServeSSE(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, ok := w.(http.Flusher)
	if !ok {
		WriteError(w, r, http.StatusInternalServerError, "stream_unsupported", "Streaming unsupported")
		return
	}

	ch := h.Hub.Subscribe()
	defer h.Hub.Unsubscribe(ch)

	// Ping as a proper event envelope so clients can validate the stream
	// before the first query runs.
	writeEvent(w, events.MakeEvent("ping", 1, nil))
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case evt := <-ch:
			writeEvent(w, evt)
			flusher.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, evt events.Event) {
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: message\ndata: %s\n\n", b)
}
