package http

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/quizmint/quizmint-server/internal/audit"
	authmw "github.com/quizmint/quizmint-server/internal/auth/middleware"
	"github.com/quizmint/quizmint-server/internal/quiz"
	"github.com/quizmint/quizmint-server/internal/storage"
)

// POST /quizzes/generate — run the pipeline, return the quiz without saving.
func GenerateQuizHandler(svc *quiz.Service, events *audit.Log) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := authmw.EmailFromContext(r.Context())
		if email == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		var spec quiz.Spec
		if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		q, err := svc.Generate(r.Context(), spec)
		if err != nil {
			writeError(w, err)
			return
		}
		_ = events.Append(r.Context(), email, audit.EventQuizGenerated, q.ID,
			map[string]any{"book": q.BookName, "mode": q.Mode, "count": len(q.Questions)})
		writeJSON(w, q)
	}
}

// POST /quizzes — persist a generated quiz for the caller.
func SaveQuizHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := authmw.EmailFromContext(r.Context())
		if email == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		var q quiz.Quiz
		if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		id, err := svc.Save(r.Context(), q, email)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, map[string]string{"status": "ok", "id": id})
	}
}

// GET /quizzes — the caller's saved quizzes, newest first.
func ListQuizzesHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := authmw.EmailFromContext(r.Context())
		if email == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		list, err := svc.ListForTeacher(r.Context(), email)
		if err != nil {
			writeError(w, err)
			return
		}
		if list == nil {
			list = []quiz.Quiz{}
		}
		writeJSON(w, list)
	}
}

// DELETE /quizzes/{quizID}
func DeleteQuizHandler(svc *quiz.Service, events *audit.Log) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := authmw.EmailFromContext(r.Context())
		if email == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		id := chi.URLParam(r, "quizID")
		if err := svc.Delete(r.Context(), id, email); err != nil {
			writeError(w, err)
			return
		}
		_ = events.Append(r.Context(), email, audit.EventQuizDeleted, id, nil)
		w.WriteHeader(http.StatusNoContent)
	}
}

// POST /quizzes/{quizID}/export — render the printable body + answer key and
// write both to the blob store.
func ExportQuizHandler(svc *quiz.Service, bs storage.BlobStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := authmw.EmailFromContext(r.Context())
		if email == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		id := chi.URLParam(r, "quizID")
		q, err := svc.GetForTeacher(r.Context(), id, email)
		if err != nil {
			writeError(w, err)
			return
		}
		body, key := quiz.RenderText(q)
		bodyKey, err := bs.Put(id+"/quiz.txt", strings.NewReader(body))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		keyKey, err := bs.Put(id+"/answer-key.txt", strings.NewReader(key))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		log.Printf("exported quiz %s for %s", id, email)
		writeJSON(w, map[string]string{"quiz": bodyKey, "answer_key": keyKey})
	}
}
