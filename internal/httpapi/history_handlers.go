package httpapi

import (
	"net/http"
	"strconv"
	"strings"
)

type HistoryHandler struct {
	Archive History
}

// List returns recent runs, newest first. ?limit= caps the page.
func (h HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.Archive == nil {
		WriteError(w, r, http.StatusNotFound, "no_archive", "run archive disabled")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	runs, err := h.Archive.ListRuns(r.Context(), limit)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "archive_error", err.Error())
		return
	}
	writeJSON(w, map[string]any{"runs": runs})
}

// RecordsByPath returns one run's archived record set; expects /history/{id}.
func (h HistoryHandler) RecordsByPath(w http.ResponseWriter, r *http.Request) {
	if h.Archive == nil {
		WriteError(w, r, http.StatusNotFound, "no_archive", "run archive disabled")
		return
	}
	idStr := strings.TrimPrefix(r.URL.Path, "/history/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_id", "run id must be an integer")
		return
	}
	records, err := h.Archive.RunRecords(r.Context(), id)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "archive_error", err.Error())
		return
	}
	writeJSON(w, map[string]any{"records": records})
}
