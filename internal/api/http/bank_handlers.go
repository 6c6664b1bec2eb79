package http

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/quizmint/quizmint-server/internal/audit"
	authmw "github.com/quizmint/quizmint-server/internal/auth/middleware"
	"github.com/quizmint/quizmint-server/internal/bank"
	"github.com/quizmint/quizmint-server/internal/quiz"
)

// GET /books — books the caller may build quizzes from, per their parsed
// grade grants. Dropped grant strings are logged and audited, not swallowed.
func ListBooksHandler(svc *quiz.Service, events *audit.Log) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := authmw.EmailFromContext(r.Context())
		if email == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		scope, err := svc.GrantedBooks(r.Context(), email)
		if err != nil {
			writeError(w, err)
			return
		}
		if len(scope.Dropped) > 0 {
			log.Printf("teacher %s has %d unparseable grade grants: %v", email, len(scope.Dropped), scope.Dropped)
			_ = events.Append(r.Context(), email, audit.EventGrantsDropped, email,
				map[string]any{"dropped": scope.Dropped})
		}
		writeJSON(w, scope)
	}
}

// GET /books/{bookID}/tree
func GetBookTreeHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tree, err := svc.BookTree(r.Context(), chi.URLParam(r, "bookID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, tree)
	}
}

// Admin hierarchy upserts. One handler per level, same shape throughout.

func PutDepartmentHandler(store bank.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var d bank.Department
		if err := json.NewDecoder(r.Body).Decode(&d); err != nil || d.ID == "" || d.Name == "" {
			http.Error(w, "id and name required", http.StatusBadRequest)
			return
		}
		if err := store.PutDepartment(r.Context(), d); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]string{"status": "ok", "id": d.ID})
	}
}

func PutGradeHandler(store bank.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var g bank.Grade
		if err := json.NewDecoder(r.Body).Decode(&g); err != nil || g.ID == "" || g.DepartmentID == "" {
			http.Error(w, "id and department_id required", http.StatusBadRequest)
			return
		}
		if err := store.PutGrade(r.Context(), g); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]string{"status": "ok", "id": g.ID})
	}
}

func PutBookHandler(store bank.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var b bank.Book
		if err := json.NewDecoder(r.Body).Decode(&b); err != nil || b.ID == "" || b.GradeID == "" {
			http.Error(w, "id and grade_id required", http.StatusBadRequest)
			return
		}
		if err := store.PutBook(r.Context(), b); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]string{"status": "ok", "id": b.ID})
	}
}

func PutChapterHandler(store bank.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var c bank.Chapter
		if err := json.NewDecoder(r.Body).Decode(&c); err != nil || c.ID == "" || c.BookID == "" {
			http.Error(w, "id and book_id required", http.StatusBadRequest)
			return
		}
		if err := store.PutChapter(r.Context(), c); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]string{"status": "ok", "id": c.ID})
	}
}

func PutTopicHandler(store bank.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var t bank.Topic
		if err := json.NewDecoder(r.Body).Decode(&t); err != nil || t.ID == "" || t.ChapterID == "" {
			http.Error(w, "id and chapter_id required", http.StatusBadRequest)
			return
		}
		if err := store.PutTopic(r.Context(), t); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]string{"status": "ok", "id": t.ID})
	}
}

// POST /questions — author a question; it enters the review queue as pending.
func CreateQuestionHandler(store bank.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var q bank.Question
		if err := json.NewDecoder(r.Body).Decode(&q); err != nil || q.ID == "" || q.TopicID == "" {
			http.Error(w, "id and topic_id required", http.StatusBadRequest)
			return
		}
		switch q.Type {
		case bank.TypeMultiple, bank.TypeShort, bank.TypeTrueFalse, bank.TypeFillBlanks:
		default:
			http.Error(w, "unknown question type: "+q.Type, http.StatusBadRequest)
			return
		}
		q.Status = bank.StatusPending
		if err := store.PutQuestion(r.Context(), q); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]string{"status": "ok", "id": q.ID})
	}
}

// GET /questions/pending
func ListPendingQuestionsHandler(store bank.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := parseIntDefault(r.URL.Query().Get("limit"), 50)
		offset := parseIntDefault(r.URL.Query().Get("offset"), 0)
		qs, err := store.ListQuestionsByStatus(r.Context(), bank.StatusPending, limit, offset)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if qs == nil {
			qs = []bank.Question{}
		}
		writeJSON(w, qs)
	}
}

// POST /questions/{topicID}/{questionID}/review  { "status": "approved|rejected" }
func ReviewQuestionHandler(store bank.Store, events *audit.Log) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		topicID := chi.URLParam(r, "topicID")
		id := chi.URLParam(r, "questionID")
		var req struct {
			Status string `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		status := strings.ToLower(strings.TrimSpace(req.Status))
		if status != bank.StatusApproved && status != bank.StatusRejected {
			http.Error(w, "status must be approved or rejected", http.StatusBadRequest)
			return
		}
		if err := store.SetQuestionStatus(r.Context(), topicID, id, status); err != nil {
			writeError(w, err)
			return
		}
		reviewer := authmw.EmailFromContext(r.Context())
		_ = events.Append(r.Context(), reviewer, audit.EventQuestionReviewed, topicID+"/"+id,
			map[string]string{"status": status})
		writeJSON(w, map[string]string{"status": "ok"})
	}
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil && v >= 0 {
		return v
	}
	return def
}
