package quiz

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/quizmint/quizmint-server/internal/bank"
)

// Service composes the generation pipeline: scope -> targets -> aggregate ->
// sample -> classify -> assemble, plus the quiz persistence entry points.
// Each call is stateless; nothing is written until Save.
type Service struct {
	bank  Bank
	store Store
	dir   Directory
}

func NewService(bankStore Bank, quizStore Store, dir Directory) *Service {
	return &Service{bank: bankStore, store: quizStore, dir: dir}
}

// ScopedBook is a book a teacher may draw questions from, tagged with the
// grant that admitted it.
type ScopedBook struct {
	Department string    `json:"department"`
	Grade      string    `json:"grade"`
	Book       bank.Book `json:"book"`
}

// GrantedScope is the resolved permission surface for one teacher.
type GrantedScope struct {
	Grants  bank.Grants  `json:"grants"`
	Dropped []string     `json:"dropped,omitempty"` // unparseable grant strings
	Books   []ScopedBook `json:"books"`
}

// GrantedBooks parses the teacher's raw grade grants against their assigned
// departments and enumerates every selectable book. Dropped grant strings are
// reported back, not swallowed.
func (s *Service) GrantedBooks(ctx context.Context, teacherEmail string) (GrantedScope, error) {
	t, err := s.dir.FindTeacherByEmail(ctx, teacherEmail)
	if err != nil {
		return GrantedScope{}, err
	}
	grants, dropped := bank.ParseGradeGrants(t.GradeGrants, t.Departments)
	scope := GrantedScope{Grants: grants, Dropped: dropped}
	for dep, gradeNames := range grants {
		for _, grade := range gradeNames {
			books, err := s.bank.BooksForGrant(ctx, dep, grade)
			if err != nil {
				return GrantedScope{}, err
			}
			for _, b := range books {
				scope.Books = append(scope.Books, ScopedBook{Department: dep, Grade: grade, Book: b})
			}
		}
	}
	return scope, nil
}

// BookTree loads a book's chapter/topic tree for selection UIs.
func (s *Service) BookTree(ctx context.Context, bookID string) (bank.BookTree, error) {
	return bank.LoadBookTree(ctx, s.bank, bookID)
}

// Generate runs the full pipeline for one spec and returns the assembled quiz
// without persisting it.
func (s *Service) Generate(ctx context.Context, spec Spec) (Quiz, error) {
	if spec.Count < 1 {
		return Quiz{}, validationf("question count must be at least 1")
	}
	if len(spec.EnabledTypes) == 0 {
		return Quiz{}, validationf("enable at least one question type")
	}
	if err := validateSelection(spec.Mode, spec.Selection); err != nil {
		return Quiz{}, err
	}
	enabled := map[string]bool{}
	for _, t := range spec.EnabledTypes {
		enabled[t] = true
	}

	tree, err := bank.LoadBookTree(ctx, s.bank, spec.BookID)
	if err != nil {
		return Quiz{}, err
	}
	targets, err := ResolveTargets(spec.Mode, tree, spec.Selection)
	if err != nil {
		return Quiz{}, err
	}
	pool, err := aggregate(ctx, s.bank, targets, enabled)
	if err != nil {
		return Quiz{}, err
	}
	picked := Sample(pool, spec.Count)
	classified := Classify(picked)

	title := spec.Title
	if title == "" {
		title = bank.DisplayName(tree.Book.Name) + " quiz"
	}
	return Quiz{
		ID:          uuid.NewString(),
		Title:       title,
		Description: spec.Description,
		Department:  spec.Department,
		Grade:       spec.Grade,
		BookName:    bank.DisplayName(tree.Book.Name),
		Mode:        spec.Mode,
		Questions:   classified.Flatten(),
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// Save persists a generated quiz for the teacher identified by email. The
// whole quiz goes down in a single write. Directory errors pass through
// unchanged; only a genuinely missing profile is ErrOwnerNotFound.
func (s *Service) Save(ctx context.Context, q Quiz, teacherEmail string) (string, error) {
	t, err := s.dir.FindTeacherByEmail(ctx, teacherEmail)
	if err != nil {
		return "", err
	}
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now().UTC()
	}
	q.OwnerID = t.ID
	if err := s.store.PutQuiz(ctx, q); err != nil {
		return "", err
	}
	return q.ID, nil
}

// ListForTeacher returns the teacher's saved quizzes, newest first.
func (s *Service) ListForTeacher(ctx context.Context, teacherEmail string) ([]Quiz, error) {
	t, err := s.dir.FindTeacherByEmail(ctx, teacherEmail)
	if err != nil {
		return nil, err
	}
	return s.store.ListQuizzes(ctx, t.ID)
}

// GetForTeacher fetches one quiz and verifies the caller owns it. A quiz
// owned by someone else looks exactly like a missing one.
func (s *Service) GetForTeacher(ctx context.Context, quizID, teacherEmail string) (Quiz, error) {
	t, err := s.dir.FindTeacherByEmail(ctx, teacherEmail)
	if err != nil {
		return Quiz{}, err
	}
	q, err := s.store.GetQuiz(ctx, quizID)
	if err != nil {
		return Quiz{}, err
	}
	if q.OwnerID != t.ID {
		return Quiz{}, ErrQuizNotFound
	}
	return q, nil
}

// Delete removes a quiz the teacher owns.
func (s *Service) Delete(ctx context.Context, quizID, teacherEmail string) error {
	t, err := s.dir.FindTeacherByEmail(ctx, teacherEmail)
	if err != nil {
		return err
	}
	return s.store.DeleteQuiz(ctx, quizID, t.ID)
}
