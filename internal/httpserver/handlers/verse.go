package handlers

import (
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/askgrace/internal/httpserver/deps"
)

// Verse handles GET /api/verse?ref=John+3:16.
func Verse(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ref := strings.TrimSpace(r.URL.Query().Get("ref"))
		if ref == "" {
			badRequest(w, "Missing verse reference.")
			return
		}

		p, err := d.Verses.Lookup(r.Context(), ref)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}
