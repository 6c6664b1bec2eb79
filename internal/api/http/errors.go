package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/quizmint/quizmint-server/internal/bank"
	"github.com/quizmint/quizmint-server/internal/quiz"
)

// writeError maps pipeline errors onto HTTP responses. The two empty-result
// conditions are not failures: they come back 200 with distinct guidance so
// the UI can tell "nothing approved yet" from "filters excluded everything".
func writeError(w http.ResponseWriter, err error) {
	switch {
	case quiz.IsValidation(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, quiz.ErrNoApprovedQuestions):
		writeJSON(w, map[string]string{
			"status":  "empty",
			"message": "No approved questions exist in the selected scope yet. Ask a reviewer to approve some questions first.",
		})
	case errors.Is(err, quiz.ErrNoMatchingType):
		writeJSON(w, map[string]string{
			"status":  "empty",
			"message": "Approved questions exist, but none match the enabled question types. Enable more types and try again.",
		})
	case errors.Is(err, bank.ErrNotFound), errors.Is(err, quiz.ErrQuizNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, quiz.ErrOwnerNotFound):
		http.Error(w, "teacher profile not found", http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
