package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/askgrace/internal/httpserver/deps"
	"github.com/MrSnakeDoc/askgrace/internal/logger"
)

const defaultMaxQuestionBytes = 8 << 10

type answerRequest struct {
	Question string `json:"question"`
}

// Answer handles POST /api/answer with a body of {"question": "..."}.
func Answer(d deps.Deps) http.HandlerFunc {
	limit := d.MaxQuestionBytes
	if limit <= 0 {
		limit = defaultMaxQuestionBytes
	}

	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
		if err != nil {
			badRequest(w, "Request body is too large.")
			return
		}

		var req answerRequest
		if err := json.Unmarshal(body, &req); err != nil {
			badRequest(w, "Request body must be a JSON object with a question.")
			return
		}
		question := strings.TrimSpace(req.Question)
		if question == "" {
			badRequest(w, "Please type a question.")
			return
		}

		ans, err := d.Answers.GetAnswer(r.Context(), question)
		if err != nil {
			writeError(w, err)
			return
		}

		d.Logger.Debug("answered question",
			logger.Int("question_len", len(question)),
			logger.Int("references", len(ans.References)))
		writeJSON(w, http.StatusOK, ans)
	}
}
