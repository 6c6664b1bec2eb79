package quiz

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/quizmint/quizmint-server/internal/bank"
)

// QuestionSource is the slice of the bank the aggregator needs.
type QuestionSource interface {
	ListApprovedQuestions(ctx context.Context, topicID string) ([]bank.Question, error)
}

// aggregate queries approved questions for every target, dedups by question
// id across targets (first occurrence in target order wins) and drops types
// that are not enabled. Topic queries run concurrently; the dedup pass runs
// only after all of them return, so precedence stays deterministic.
func aggregate(ctx context.Context, src QuestionSource, targets []Target, enabled map[string]bool) ([]Question, error) {
	perTarget := make([][]bank.Question, len(targets))
	g, gctx := errgroup.WithContext(ctx)
	for i, t := range targets {
		i, t := i, t
		g.Go(func() error {
			qs, err := src.ListApprovedQuestions(gctx, t.TopicID)
			if err != nil {
				return err
			}
			perTarget[i] = qs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var pool []Question
	total := 0
	for i, t := range targets {
		for _, q := range perTarget[i] {
			if seen[q.ID] {
				continue
			}
			seen[q.ID] = true
			total++
			if !enabled[q.Type] {
				continue
			}
			pool = append(pool, Question{
				ID:          q.ID,
				Type:        q.Type,
				Prompt:      q.Prompt,
				Payload:     q.Payload,
				ChapterName: t.ChapterName,
				TopicName:   t.TopicName,
			})
		}
	}
	if total == 0 {
		return nil, ErrNoApprovedQuestions
	}
	if len(pool) == 0 {
		return nil, ErrNoMatchingType
	}
	return pool, nil
}
