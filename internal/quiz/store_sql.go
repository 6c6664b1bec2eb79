package quiz

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

func (s *SQLStore) PutQuiz(ctx context.Context, q Quiz) error {
	qj, err := json.Marshal(q.Questions)
	if err != nil {
		return err
	}
	// Single atomic insert: a failed write leaves no half-constructed quiz.
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO quizzes (id,owner_id,title,description,department,grade,book_name,mode,questions_json,created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		q.ID, q.OwnerID, q.Title, q.Description, q.Department, q.Grade, q.BookName, q.Mode,
		string(qj), q.CreatedAt.Unix())
	return err
}

func (s *SQLStore) GetQuiz(ctx context.Context, id string) (Quiz, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id,owner_id,title,description,department,grade,book_name,mode,questions_json,created_at
		   FROM quizzes WHERE id=$1`, id)
	return scanQuiz(row)
}

func (s *SQLStore) ListQuizzes(ctx context.Context, ownerID string) ([]Quiz, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,owner_id,title,description,department,grade,book_name,mode,questions_json,created_at
		   FROM quizzes WHERE owner_id=$1 ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Quiz
	for rows.Next() {
		q, err := scanQuiz(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (s *SQLStore) DeleteQuiz(ctx context.Context, id, ownerID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM quizzes WHERE id=$1 AND owner_id=$2`, id, ownerID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrQuizNotFound
	}
	return nil
}

type rowScanner interface{ Scan(dest ...any) error }

func scanQuiz(row rowScanner) (Quiz, error) {
	var q Quiz
	var qjson string
	var created int64
	if err := row.Scan(&q.ID, &q.OwnerID, &q.Title, &q.Description, &q.Department, &q.Grade,
		&q.BookName, &q.Mode, &qjson, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Quiz{}, ErrQuizNotFound
		}
		return Quiz{}, err
	}
	if err := json.Unmarshal([]byte(qjson), &q.Questions); err != nil {
		return Quiz{}, err
	}
	q.CreatedAt = time.Unix(created, 0).UTC()
	return q, nil
}

// SQLDirectory resolves teacher profiles from the users table.
type SQLDirectory struct {
	db *sql.DB
}

func NewSQLDirectory(db *sql.DB) *SQLDirectory { return &SQLDirectory{db: db} }

func (d *SQLDirectory) FindTeacherByEmail(ctx context.Context, email string) (Teacher, error) {
	row := d.db.QueryRowContext(ctx,
		`SELECT id,username,email,departments,grade_grants FROM users
		  WHERE LOWER(email)=LOWER($1) AND role='teacher'`, email)
	var t Teacher
	var deps, grants string
	if err := row.Scan(&t.ID, &t.Username, &t.Email, &deps, &grants); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Teacher{}, ErrOwnerNotFound
		}
		return Teacher{}, err
	}
	if err := json.Unmarshal([]byte(deps), &t.Departments); err != nil {
		t.Departments = nil
	}
	if err := json.Unmarshal([]byte(grants), &t.GradeGrants); err != nil {
		t.GradeGrants = nil
	}
	return t, nil
}
