package quiz

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/quizmint/quizmint-server/internal/bank"
)

type fakeBank struct {
	book      bank.Book
	chapters  []bank.Chapter
	topics    map[string][]bank.Topic
	questions map[string][]bank.Question
	byGrant   map[string][]bank.Book
}

func (f *fakeBank) GetBook(ctx context.Context, id string) (bank.Book, error) {
	if id != f.book.ID {
		return bank.Book{}, bank.ErrNotFound
	}
	return f.book, nil
}

func (f *fakeBank) ListChapters(ctx context.Context, bookID string) ([]bank.Chapter, error) {
	return f.chapters, nil
}

func (f *fakeBank) ListTopics(ctx context.Context, chapterID string) ([]bank.Topic, error) {
	return f.topics[chapterID], nil
}

func (f *fakeBank) ListApprovedQuestions(ctx context.Context, topicID string) ([]bank.Question, error) {
	return f.questions[topicID], nil
}

func (f *fakeBank) BooksForGrant(ctx context.Context, departmentName, gradeName string) ([]bank.Book, error) {
	return f.byGrant[departmentName+"/"+gradeName], nil
}

type fakeQuizStore struct {
	saved   map[string]Quiz
	deleted []string
}

func newFakeQuizStore() *fakeQuizStore { return &fakeQuizStore{saved: map[string]Quiz{}} }

func (f *fakeQuizStore) PutQuiz(ctx context.Context, q Quiz) error {
	f.saved[q.ID] = q
	return nil
}

func (f *fakeQuizStore) GetQuiz(ctx context.Context, id string) (Quiz, error) {
	q, ok := f.saved[id]
	if !ok {
		return Quiz{}, ErrQuizNotFound
	}
	return q, nil
}

func (f *fakeQuizStore) ListQuizzes(ctx context.Context, ownerID string) ([]Quiz, error) {
	var out []Quiz
	for _, q := range f.saved {
		if q.OwnerID == ownerID {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeQuizStore) DeleteQuiz(ctx context.Context, id, ownerID string) error {
	q, ok := f.saved[id]
	if !ok || q.OwnerID != ownerID {
		return ErrQuizNotFound
	}
	delete(f.saved, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeDirectory struct {
	teachers map[string]Teacher
}

func (f *fakeDirectory) FindTeacherByEmail(ctx context.Context, email string) (Teacher, error) {
	t, ok := f.teachers[email]
	if !ok {
		return Teacher{}, ErrOwnerNotFound
	}
	return t, nil
}

func seededBank() *fakeBank {
	fb := &fakeBank{
		book: bank.Book{ID: "b1", GradeID: "g1", Name: "physics_9"},
		chapters: []bank.Chapter{
			{ID: "c1", BookID: "b1", Name: "laws_of_motion", Ord: 1},
			{ID: "c2", BookID: "b1", Name: "waves", Ord: 2},
		},
		topics: map[string][]bank.Topic{
			"c1": {
				{ID: "t1", ChapterID: "c1", Name: "first_law", Ord: 1},
				{ID: "t2", ChapterID: "c1", Name: "second_law", Ord: 2},
			},
			"c2": {
				{ID: "t3", ChapterID: "c2", Name: "sound", Ord: 1},
			},
		},
		questions: map[string][]bank.Question{},
	}
	for i := 0; i < 5; i++ {
		fb.questions["t1"] = append(fb.questions["t1"], bank.Question{
			ID: fmt.Sprintf("m%d", i), TopicID: "t1", Type: bank.TypeMultiple,
			Status: bank.StatusApproved, Prompt: fmt.Sprintf("multiple %d", i),
			Payload: bank.Payload{Options: []string{"a", "b"}, CorrectOption: 0},
		})
	}
	for i := 0; i < 3; i++ {
		fb.questions["t3"] = append(fb.questions["t3"], bank.Question{
			ID: fmt.Sprintf("tf%d", i), TopicID: "t3", Type: bank.TypeTrueFalse,
			Status: bank.StatusApproved, Prompt: fmt.Sprintf("truefalse %d", i),
		})
	}
	return fb
}

func newTestService(fb *fakeBank) (*Service, *fakeQuizStore) {
	store := newFakeQuizStore()
	dir := &fakeDirectory{teachers: map[string]Teacher{
		"jo@school.test": {
			ID: "u1", Username: "jo", Email: "jo@school.test",
			Departments: []string{"Science"},
			GradeGrants: []string{"Science|Grade 9", "bogus"},
		},
		"amit@school.test": {
			ID: "u2", Username: "amit", Email: "amit@school.test",
			Departments: []string{"Science"},
		},
	}}
	return NewService(fb, store, dir), store
}

func TestGenerateWholeBook(t *testing.T) {
	svc, _ := newTestService(seededBank())

	spec := Spec{
		BookID:       "b1",
		Mode:         ModeWhole,
		EnabledTypes: []string{bank.TypeMultiple, bank.TypeTrueFalse},
		Count:        4,
	}
	q, err := svc.Generate(context.Background(), spec)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(q.Questions) != 4 {
		t.Fatalf("questions = %d, want 4", len(q.Questions))
	}
	if q.ID == "" || q.CreatedAt.IsZero() {
		t.Fatalf("quiz not stamped: %+v", q)
	}
	if q.Title != "physics 9 quiz" || q.BookName != "physics 9" {
		t.Fatalf("title/book = %q/%q", q.Title, q.BookName)
	}
	// Numbering is 1..n in stored order.
	for i, question := range q.Questions {
		if question.Number != i+1 {
			t.Fatalf("question %d has number %d", i, question.Number)
		}
	}
}

func TestGenerateCountLargerThanPool(t *testing.T) {
	svc, _ := newTestService(seededBank())

	spec := Spec{
		BookID:       "b1",
		Mode:         ModeWhole,
		EnabledTypes: []string{bank.TypeMultiple, bank.TypeTrueFalse},
		Count:        50,
	}
	q, err := svc.Generate(context.Background(), spec)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	// Pool of 8 approved questions; all of them get used.
	if len(q.Questions) != 8 {
		t.Fatalf("questions = %d, want 8", len(q.Questions))
	}
	// Multiple section precedes truefalse in the flattened order.
	if q.Questions[0].Category != CatMultiple || q.Questions[7].Category != CatTrueFalse {
		t.Fatalf("category order wrong: first=%s last=%s",
			q.Questions[0].Category, q.Questions[7].Category)
	}
}

func TestGenerateValidation(t *testing.T) {
	svc, _ := newTestService(seededBank())
	ctx := context.Background()

	if _, err := svc.Generate(ctx, Spec{BookID: "b1", Mode: ModeWhole, EnabledTypes: []string{"multiple"}}); !IsValidation(err) {
		t.Fatalf("count 0: err = %v, want ValidationError", err)
	}
	if _, err := svc.Generate(ctx, Spec{BookID: "b1", Mode: ModeWhole, Count: 5}); !IsValidation(err) {
		t.Fatalf("no types: err = %v, want ValidationError", err)
	}
	if _, err := svc.Generate(ctx, Spec{BookID: "nope", Mode: ModeWhole, Count: 5, EnabledTypes: []string{"multiple"}}); !errors.Is(err, bank.ErrNotFound) {
		t.Fatalf("missing book: err = %v, want bank.ErrNotFound", err)
	}
}

func TestGenerateEmptyOutcomes(t *testing.T) {
	fb := seededBank()
	fb.questions = map[string][]bank.Question{} // nothing approved anywhere
	svc, _ := newTestService(fb)

	spec := Spec{BookID: "b1", Mode: ModeWhole, Count: 5, EnabledTypes: []string{bank.TypeMultiple}}
	if _, err := svc.Generate(context.Background(), spec); !errors.Is(err, ErrNoApprovedQuestions) {
		t.Fatalf("err = %v, want ErrNoApprovedQuestions", err)
	}

	svc2, _ := newTestService(seededBank())
	spec.EnabledTypes = []string{bank.TypeFillBlanks} // approved questions exist, none match
	if _, err := svc2.Generate(context.Background(), spec); !errors.Is(err, ErrNoMatchingType) {
		t.Fatalf("err = %v, want ErrNoMatchingType", err)
	}
}

func TestSaveListDelete(t *testing.T) {
	svc, store := newTestService(seededBank())
	ctx := context.Background()

	q := Quiz{Title: "saved quiz", Mode: ModeWhole}
	id, err := svc.Save(ctx, q, "jo@school.test")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if store.saved[id].OwnerID != "u1" {
		t.Fatalf("owner not stamped: %+v", store.saved[id])
	}

	list, err := svc.ListForTeacher(ctx, "jo@school.test")
	if err != nil || len(list) != 1 {
		t.Fatalf("ListForTeacher: %v, %d quizzes", err, len(list))
	}

	if err := svc.Delete(ctx, id, "jo@school.test"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, id, "jo@school.test"); !errors.Is(err, ErrQuizNotFound) {
		t.Fatalf("second delete: err = %v, want ErrQuizNotFound", err)
	}

	if _, err := svc.Save(ctx, q, "ghost@school.test"); !errors.Is(err, ErrOwnerNotFound) {
		t.Fatalf("unknown teacher: err = %v, want ErrOwnerNotFound", err)
	}
}

func TestGrantedBooks(t *testing.T) {
	fb := seededBank()
	fb.byGrant = map[string][]bank.Book{
		"Science/Grade 9": {fb.book},
	}
	svc, _ := newTestService(fb)

	scope, err := svc.GrantedBooks(context.Background(), "jo@school.test")
	if err != nil {
		t.Fatalf("GrantedBooks: %v", err)
	}
	if len(scope.Books) != 1 || scope.Books[0].Book.ID != "b1" {
		t.Fatalf("books = %v", scope.Books)
	}
	if scope.Books[0].Department != "Science" || scope.Books[0].Grade != "Grade 9" {
		t.Fatalf("grant tag wrong: %+v", scope.Books[0])
	}
	// The unparseable grant is reported, not swallowed.
	if len(scope.Dropped) != 1 || scope.Dropped[0] != "bogus" {
		t.Fatalf("dropped = %v", scope.Dropped)
	}
}

type failingDirectory struct{ err error }

func (f *failingDirectory) FindTeacherByEmail(ctx context.Context, email string) (Teacher, error) {
	return Teacher{}, f.err
}

func TestDirectoryErrorsPassThrough(t *testing.T) {
	// A transient directory failure must not masquerade as a missing
	// profile; only the directory itself decides when it is ErrOwnerNotFound.
	boom := errors.New("connection refused")
	svc := NewService(seededBank(), newFakeQuizStore(), &failingDirectory{err: boom})
	ctx := context.Background()

	if _, err := svc.Save(ctx, Quiz{Title: "x"}, "jo@school.test"); !errors.Is(err, boom) || errors.Is(err, ErrOwnerNotFound) {
		t.Fatalf("Save: err = %v, want the directory error", err)
	}
	if _, err := svc.ListForTeacher(ctx, "jo@school.test"); !errors.Is(err, boom) || errors.Is(err, ErrOwnerNotFound) {
		t.Fatalf("ListForTeacher: err = %v, want the directory error", err)
	}
	if err := svc.Delete(ctx, "q1", "jo@school.test"); !errors.Is(err, boom) || errors.Is(err, ErrOwnerNotFound) {
		t.Fatalf("Delete: err = %v, want the directory error", err)
	}
	if _, err := svc.GetForTeacher(ctx, "q1", "jo@school.test"); !errors.Is(err, boom) {
		t.Fatalf("GetForTeacher: err = %v, want the directory error", err)
	}
}

func TestListForTeacherNewestFirst(t *testing.T) {
	svc, _ := newTestService(seededBank())
	ctx := context.Background()

	older := Quiz{Title: "older", Mode: ModeWhole, CreatedAt: time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)}
	newer := Quiz{Title: "newer", Mode: ModeWhole, CreatedAt: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}

	// Insert out of order; listing must sort by creation time regardless.
	if _, err := svc.Save(ctx, newer, "jo@school.test"); err != nil {
		t.Fatalf("Save newer: %v", err)
	}
	if _, err := svc.Save(ctx, older, "jo@school.test"); err != nil {
		t.Fatalf("Save older: %v", err)
	}

	list, err := svc.ListForTeacher(ctx, "jo@school.test")
	if err != nil {
		t.Fatalf("ListForTeacher: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("quizzes = %d, want 2", len(list))
	}
	if list[0].Title != "newer" || list[1].Title != "older" {
		t.Fatalf("order = [%s, %s], want newest first", list[0].Title, list[1].Title)
	}
}

func TestGetForTeacherOwnership(t *testing.T) {
	svc, _ := newTestService(seededBank())
	ctx := context.Background()

	id, err := svc.Save(ctx, Quiz{Title: "jo's quiz", Mode: ModeWhole}, "jo@school.test")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	q, err := svc.GetForTeacher(ctx, id, "jo@school.test")
	if err != nil || q.Title != "jo's quiz" {
		t.Fatalf("owner fetch: %v, %+v", err, q)
	}
	// Someone else's quiz is indistinguishable from a missing one.
	if _, err := svc.GetForTeacher(ctx, id, "amit@school.test"); !errors.Is(err, ErrQuizNotFound) {
		t.Fatalf("cross-owner fetch: err = %v, want ErrQuizNotFound", err)
	}
	if _, err := svc.GetForTeacher(ctx, "nope", "jo@school.test"); !errors.Is(err, ErrQuizNotFound) {
		t.Fatalf("missing id: err = %v, want ErrQuizNotFound", err)
	}
}

type countingBank struct {
	*fakeBank
	bookLoads int
}

func (c *countingBank) GetBook(ctx context.Context, id string) (bank.Book, error) {
	c.bookLoads++
	return c.fakeBank.GetBook(ctx, id)
}

func TestGenerateRejectsSelectionBeforeStoreAccess(t *testing.T) {
	cb := &countingBank{fakeBank: seededBank()}
	store := newFakeQuizStore()
	svc := NewService(cb, store, &fakeDirectory{teachers: map[string]Teacher{}})
	ctx := context.Background()

	specs := []Spec{
		{BookID: "b1", Mode: ModeSingle, Count: 5, EnabledTypes: []string{bank.TypeMultiple}},
		{BookID: "b1", Mode: ModeSingle, Count: 5, EnabledTypes: []string{bank.TypeMultiple},
			Selection: Selection{ChapterID: "c1", Topics: map[string]bool{"t1": false}}},
		{BookID: "b1", Mode: ModeMultiple, Count: 5, EnabledTypes: []string{bank.TypeMultiple},
			Selection: Selection{Topics: map[string]bool{"t1": true}}},
	}
	for i, spec := range specs {
		if _, err := svc.Generate(ctx, spec); !IsValidation(err) {
			t.Fatalf("spec %d: err = %v, want ValidationError", i, err)
		}
	}
	if cb.bookLoads != 0 {
		t.Fatalf("incomplete selections reached the store (%d book loads)", cb.bookLoads)
	}
}
