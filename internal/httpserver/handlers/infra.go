package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/askgrace/internal/domain"
	"github.com/MrSnakeDoc/askgrace/internal/httpserver/deps"
	"github.com/MrSnakeDoc/askgrace/internal/verse"
)

type componentStatus struct {
	OK       bool                 `json:"ok"`
	Tables   *domain.CatalogSizes `json:"tables,omitempty"`
	Model    string               `json:"model,omitempty"`
	Endpoint string               `json:"endpoint,omitempty"`
	Mode     string               `json:"mode,omitempty"`
	Impact   string               `json:"impact,omitempty"`
	Error    string               `json:"error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		components := map[string]componentStatus{
			"catalog":    catalogStatus(d.Catalog),
			"completion": completionStatus(d),
			"verse": {
				OK:       d.Verses != nil,
				Endpoint: d.VerseAPIURL,
				Mode:     "translation=" + verse.Translation,
			},
		}

		writeJSON(w, http.StatusOK, infraResponse{
			Mode:       determineMode(components),
			Components: components,
		})
	}
}

func catalogStatus(c *domain.Catalog) componentStatus {
	if c == nil {
		return componentStatus{OK: false, Impact: "answers-disabled", Error: "catalog not loaded"}
	}
	sizes := c.Sizes()
	return componentStatus{OK: true, Tables: &sizes}
}

func completionStatus(d deps.Deps) componentStatus {
	if !d.CompletionConfigured {
		// The upstream will answer 401; questions still reach it.
		return componentStatus{
			OK:     false,
			Model:  d.CompletionModel,
			Impact: "answers-will-fail",
			Error:  "api key not set",
		}
	}
	return componentStatus{OK: d.Answers != nil, Model: d.CompletionModel}
}

// determineMode is "critical" when questions cannot be answered at all,
// "degraded" when only verse lookups are affected.
func determineMode(components map[string]componentStatus) string {
	if !components["catalog"].OK || !components["completion"].OK {
		return "critical"
	}
	if !components["verse"].OK {
		return "degraded"
	}
	return "operational"
}
