package bank

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// Store is the hierarchical content store: departments own grades, grades own
// books, books own chapters, chapters own topics, topics own questions.
type Store interface {
	ListDepartments(ctx context.Context) ([]Department, error)
	ListGrades(ctx context.Context, departmentID string) ([]Grade, error)
	ListBooks(ctx context.Context, gradeID string) ([]Book, error)

	GetBook(ctx context.Context, id string) (Book, error)
	ListChapters(ctx context.Context, bookID string) ([]Chapter, error)
	ListTopics(ctx context.Context, chapterID string) ([]Topic, error)

	// ListApprovedQuestions returns only status=approved questions, in stable
	// document order (created_at, then id).
	ListApprovedQuestions(ctx context.Context, topicID string) ([]Question, error)

	// Admin surface.
	PutDepartment(ctx context.Context, d Department) error
	PutGrade(ctx context.Context, g Grade) error
	PutBook(ctx context.Context, b Book) error
	PutChapter(ctx context.Context, c Chapter) error
	PutTopic(ctx context.Context, t Topic) error
	PutQuestion(ctx context.Context, q Question) error
	ListQuestionsByStatus(ctx context.Context, status string, limit, offset int) ([]Question, error)
	SetQuestionStatus(ctx context.Context, topicID, id, status string) error

	// BooksForGrant lists books under a {department, grade} pair, used to
	// enumerate what a teacher may build quizzes from.
	BooksForGrant(ctx context.Context, departmentName, gradeName string) ([]Book, error)
}
