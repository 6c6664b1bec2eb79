package quiz

import (
	"context"
	"errors"
	"testing"

	"github.com/quizmint/quizmint-server/internal/bank"
)

type fakeSource struct {
	byTopic map[string][]bank.Question
	err     error
}

func (f *fakeSource) ListApprovedQuestions(ctx context.Context, topicID string) ([]bank.Question, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byTopic[topicID], nil
}

func approvedQ(id, topicID, typ string) bank.Question {
	return bank.Question{ID: id, TopicID: topicID, Type: typ, Status: bank.StatusApproved, Prompt: "p-" + id}
}

func allTypes() map[string]bool {
	return map[string]bool{
		bank.TypeMultiple: true, bank.TypeShort: true,
		bank.TypeTrueFalse: true, bank.TypeFillBlanks: true,
	}
}

func TestAggregateDedupFirstTargetWins(t *testing.T) {
	src := &fakeSource{byTopic: map[string][]bank.Question{
		"t1": {approvedQ("q1", "t1", bank.TypeMultiple)},
		"t2": {approvedQ("q1", "t2", bank.TypeMultiple), approvedQ("q2", "t2", bank.TypeShort)},
	}}
	targets := []Target{
		{TopicID: "t1", ChapterName: "ch one", TopicName: "top one"},
		{TopicID: "t2", ChapterName: "ch one", TopicName: "top two"},
	}

	pool, err := aggregate(context.Background(), src, targets, allTypes())
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if len(pool) != 2 {
		t.Fatalf("pool = %d questions, want 2", len(pool))
	}
	// q1 is attributed to the first target that produced it.
	if pool[0].ID != "q1" || pool[0].TopicName != "top one" {
		t.Fatalf("dup attribution wrong: %+v", pool[0])
	}
	if pool[1].ID != "q2" || pool[1].TopicName != "top two" {
		t.Fatalf("pool[1] = %+v", pool[1])
	}
}

func TestAggregateNoApprovedQuestions(t *testing.T) {
	src := &fakeSource{byTopic: map[string][]bank.Question{}}
	_, err := aggregate(context.Background(), src, []Target{{TopicID: "t1"}}, allTypes())
	if !errors.Is(err, ErrNoApprovedQuestions) {
		t.Fatalf("err = %v, want ErrNoApprovedQuestions", err)
	}
}

func TestAggregateNoMatchingType(t *testing.T) {
	src := &fakeSource{byTopic: map[string][]bank.Question{
		"t1": {approvedQ("q1", "t1", bank.TypeShort)},
	}}
	enabled := map[string]bool{bank.TypeMultiple: true}
	_, err := aggregate(context.Background(), src, []Target{{TopicID: "t1"}}, enabled)
	if !errors.Is(err, ErrNoMatchingType) {
		t.Fatalf("err = %v, want ErrNoMatchingType", err)
	}
}

func TestAggregateSourceError(t *testing.T) {
	boom := errors.New("boom")
	src := &fakeSource{err: boom}
	_, err := aggregate(context.Background(), src, []Target{{TopicID: "t1"}}, allTypes())
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped source error", err)
	}
}
