package bank

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) ListDepartments(ctx context.Context) ([]Department, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id,name FROM departments ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Department
	for rows.Next() {
		var d Department
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *SQLStore) ListGrades(ctx context.Context, departmentID string) ([]Grade, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,department_id,name,ord FROM grades WHERE department_id=$1 ORDER BY ord,name`, departmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Grade
	for rows.Next() {
		var g Grade
		if err := rows.Scan(&g.ID, &g.DepartmentID, &g.Name, &g.Ord); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (s *SQLStore) ListBooks(ctx context.Context, gradeID string) ([]Book, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,grade_id,name,ord FROM books WHERE grade_id=$1 ORDER BY ord,name`, gradeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBooks(rows)
}

func (s *SQLStore) GetBook(ctx context.Context, id string) (Book, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,grade_id,name,ord FROM books WHERE id=$1`, id)
	var b Book
	if err := row.Scan(&b.ID, &b.GradeID, &b.Name, &b.Ord); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return b, nil
}

func (s *SQLStore) ListChapters(ctx context.Context, bookID string) ([]Chapter, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,book_id,name,ord FROM chapters WHERE book_id=$1`, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Chapter
	for rows.Next() {
		var c Chapter
		if err := rows.Scan(&c.ID, &c.BookID, &c.Name, &c.Ord); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *SQLStore) ListTopics(ctx context.Context, chapterID string) ([]Topic, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,chapter_id,name,ord FROM topics WHERE chapter_id=$1`, chapterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Topic
	for rows.Next() {
		var t Topic
		if err := rows.Scan(&t.ID, &t.ChapterID, &t.Name, &t.Ord); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *SQLStore) ListApprovedQuestions(ctx context.Context, topicID string) ([]Question, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,topic_id,type,status,prompt,payload_json,created_at
		   FROM questions WHERE topic_id=$1 AND status=$2 ORDER BY created_at,id`,
		topicID, StatusApproved)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanQuestions(rows)
}

func (s *SQLStore) PutDepartment(ctx context.Context, d Department) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO departments (id,name) VALUES ($1,$2)
		ON CONFLICT (id) DO UPDATE SET name=EXCLUDED.name`, d.ID, d.Name)
	return err
}

func (s *SQLStore) PutGrade(ctx context.Context, g Grade) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO grades (id,department_id,name,ord) VALUES ($1,$2,$3,$4)
		ON CONFLICT (id) DO UPDATE SET department_id=EXCLUDED.department_id, name=EXCLUDED.name, ord=EXCLUDED.ord`,
		g.ID, g.DepartmentID, g.Name, g.Ord)
	return err
}

func (s *SQLStore) PutBook(ctx context.Context, b Book) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO books (id,grade_id,name,ord) VALUES ($1,$2,$3,$4)
		ON CONFLICT (id) DO UPDATE SET grade_id=EXCLUDED.grade_id, name=EXCLUDED.name, ord=EXCLUDED.ord`,
		b.ID, b.GradeID, b.Name, b.Ord)
	return err
}

func (s *SQLStore) PutChapter(ctx context.Context, c Chapter) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO chapters (id,book_id,name,ord) VALUES ($1,$2,$3,$4)
		ON CONFLICT (id) DO UPDATE SET book_id=EXCLUDED.book_id, name=EXCLUDED.name, ord=EXCLUDED.ord`,
		c.ID, c.BookID, c.Name, c.Ord)
	return err
}

func (s *SQLStore) PutTopic(ctx context.Context, t Topic) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO topics (id,chapter_id,name,ord) VALUES ($1,$2,$3,$4)
		ON CONFLICT (id) DO UPDATE SET chapter_id=EXCLUDED.chapter_id, name=EXCLUDED.name, ord=EXCLUDED.ord`,
		t.ID, t.ChapterID, t.Name, t.Ord)
	return err
}

func (s *SQLStore) PutQuestion(ctx context.Context, q Question) error {
	if q.Status == "" {
		q.Status = StatusPending
	}
	pj, err := json.Marshal(q.Payload)
	if err != nil {
		return err
	}
	created := q.CreatedAt
	if created == 0 {
		created = time.Now().Unix()
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO questions (id,topic_id,type,status,prompt,payload_json,created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)
		 ON CONFLICT (topic_id,id) DO UPDATE SET type=EXCLUDED.type, status=EXCLUDED.status,
		   prompt=EXCLUDED.prompt, payload_json=EXCLUDED.payload_json`,
		q.ID, q.TopicID, q.Type, q.Status, q.Prompt, string(pj), created)
	return err
}

func (s *SQLStore) ListQuestionsByStatus(ctx context.Context, status string, limit, offset int) ([]Question, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,topic_id,type,status,prompt,payload_json,created_at
		   FROM questions WHERE status=$1 ORDER BY created_at,topic_id,id LIMIT $2 OFFSET $3`,
		status, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanQuestions(rows)
}

func (s *SQLStore) SetQuestionStatus(ctx context.Context, topicID, id, status string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE questions SET status=$1 WHERE topic_id=$2 AND id=$3`, status, topicID, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) BooksForGrant(ctx context.Context, departmentName, gradeName string) ([]Book, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT b.id,b.grade_id,b.name,b.ord
		   FROM books b
		   JOIN grades g ON b.grade_id=g.id
		   JOIN departments d ON g.department_id=d.id
		  WHERE LOWER(d.name)=LOWER($1) AND LOWER(g.name)=LOWER($2)
		  ORDER BY b.ord,b.name`, departmentName, gradeName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBooks(rows)
}

func scanBooks(rows *sql.Rows) ([]Book, error) {
	var out []Book
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.ID, &b.GradeID, &b.Name, &b.Ord); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func scanQuestions(rows *sql.Rows) ([]Question, error) {
	var out []Question
	for rows.Next() {
		var q Question
		var pj string
		if err := rows.Scan(&q.ID, &q.TopicID, &q.Type, &q.Status, &q.Prompt, &pj, &q.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(pj), &q.Payload); err != nil {
			q.Payload = Payload{}
		}
		out = append(out, q)
	}
	return out, rows.Err()
}
