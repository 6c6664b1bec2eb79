package http

import (
	"net/http"

	"github.com/quizmint/quizmint-server/internal/audit"
)

// GET /admin/events — recent audit trail, newest first.
func ListEventsHandler(events *audit.Log) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := parseIntDefault(r.URL.Query().Get("limit"), 100)
		out, err := events.Recent(r.Context(), limit)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if out == nil {
			out = []audit.Event{}
		}
		writeJSON(w, out)
	}
}
