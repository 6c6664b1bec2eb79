package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"
)

// Event types recorded by the gateway.
const (
	EventQuizGenerated    = "quiz.generated"
	EventQuizDeleted      = "quiz.deleted"
	EventQuestionReviewed = "question.reviewed"
	EventGrantsDropped    = "grants.dropped"
)

type Event struct {
	Offset    int64  `json:"offset"`
	Actor     string `json:"actor"`
	Type      string `json:"type"`
	Key       string `json:"key"`
	DataJSON  string `json:"data"`
	CreatedAt int64  `json:"created_at"`
}

// Log is an append-only event trail backed by the event_log table.
type Log struct{ db *sql.DB }

func NewLog(db *sql.DB) *Log { return &Log{db: db} }

func (l *Log) Append(ctx context.Context, actor, typ, key string, data any) error {
	dj := "{}"
	if data != nil {
		if b, err := json.Marshal(data); err == nil {
			dj = string(b)
		}
	}
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO event_log (actor, typ, key, data, created_at)
		 VALUES ($1,$2,$3,$4,$5)`,
		actor, typ, key, dj, time.Now().Unix())
	return err
}

// Recent returns the newest events, most recent first.
func (l *Log) Recent(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := l.db.QueryContext(ctx,
		`SELECT "offset", actor, typ, key, data, created_at
		   FROM event_log ORDER BY "offset" DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.Offset, &e.Actor, &e.Type, &e.Key, &e.DataJSON, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
