package quiz

import (
	"context"

	"github.com/quizmint/quizmint-server/internal/bank"
)

// Bank is the slice of the content store the quiz service consumes.
type Bank interface {
	bank.TreeSource
	QuestionSource
	BooksForGrant(ctx context.Context, departmentName, gradeName string) ([]bank.Book, error)
}

// Store persists generated quizzes. A quiz is written exactly once; the only
// supported edit path is delete and regenerate.
type Store interface {
	PutQuiz(ctx context.Context, q Quiz) error
	GetQuiz(ctx context.Context, id string) (Quiz, error)
	// ListQuizzes returns a teacher's quizzes ordered by creation time desc.
	ListQuizzes(ctx context.Context, ownerID string) ([]Quiz, error)
	DeleteQuiz(ctx context.Context, id, ownerID string) error
}

// Directory resolves teacher profiles from the identity the auth layer hands
// us (email).
type Directory interface {
	FindTeacherByEmail(ctx context.Context, email string) (Teacher, error)
}
