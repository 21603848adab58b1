package handlers

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/MrSnakeDoc/askgrace/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type errorResponse struct {
	Error  string   `json:"error"`
	Kind   string   `json:"kind"`
	Issues []string `json:"issues,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError renders a pipeline failure. Only the display message and kind
// leave the process; the wrapped cause stays in the logs.
func writeError(w http.ResponseWriter, err error) {
	var de *domain.Error
	if !errors.As(err, &de) {
		de = domain.WrapError(domain.ErrCompletionFailed, domain.MsgCompletionFailed, err)
	}
	writeJSON(w, statusFor(de.Kind), errorResponse{
		Error:  de.Message,
		Kind:   string(de.Kind),
		Issues: de.Issues,
	})
}

func statusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.ErrModelRefused:
		return http.StatusUnprocessableEntity
	case domain.ErrInvalidReferenceFormat:
		return http.StatusBadRequest
	case domain.ErrVerseNotFound:
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg, Kind: "bad_request"})
}
