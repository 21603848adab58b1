package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/askgrace/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready bool `json:"ready"`
}

// Readyz reports ready once both pipelines and the catalog are wired.
func Readyz(d deps.Deps) http.HandlerFunc {
	ready := d.Answers != nil && d.Verses != nil && d.Catalog != nil
	return func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusOK
		if !ready {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, readyzResponse{Ready: ready})
	}
}
