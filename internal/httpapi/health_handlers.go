package httpapi

import "net/http"

// HealthHandler answers the liveness check the local UI polls before it
// enables the query form.
type HealthHandler struct{}

func (h HealthHandler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]any{"ok": true})
}
