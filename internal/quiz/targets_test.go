package quiz

import (
	"testing"

	"github.com/quizmint/quizmint-server/internal/bank"
)

func twoChapterTree() bank.BookTree {
	return bank.BookTree{
		Book: bank.Book{ID: "b1", Name: "physics_9"},
		Chapters: []bank.ChapterNode{
			{
				Chapter: bank.Chapter{ID: "c1", Name: "laws_of_motion", Ord: 1},
				Topics: []bank.Topic{
					{ID: "t1", ChapterID: "c1", Name: "first_law", Ord: 1},
					{ID: "t2", ChapterID: "c1", Name: "second_law", Ord: 2},
				},
			},
			{
				Chapter: bank.Chapter{ID: "c2", Name: "waves", Ord: 2},
				Topics: []bank.Topic{
					{ID: "t3", ChapterID: "c2", Name: "sound", Ord: 1},
				},
			},
		},
	}
}

func TestResolveTargetsWhole(t *testing.T) {
	targets, err := ResolveTargets(ModeWhole, twoChapterTree(), Selection{})
	if err != nil {
		t.Fatalf("ResolveTargets: %v", err)
	}
	if len(targets) != 3 {
		t.Fatalf("targets = %d, want 3", len(targets))
	}
	// Tree order preserved, display names cleaned.
	if targets[0].TopicID != "t1" || targets[1].TopicID != "t2" || targets[2].TopicID != "t3" {
		t.Fatalf("target order wrong: %v", targets)
	}
	if targets[0].ChapterName != "laws of motion" || targets[0].TopicName != "first law" {
		t.Fatalf("display names not applied: %+v", targets[0])
	}
}

func TestResolveTargetsWholeEmptyBook(t *testing.T) {
	tree := bank.BookTree{Book: bank.Book{ID: "b1", Name: "empty"}}
	_, err := ResolveTargets(ModeWhole, tree, Selection{})
	if !IsValidation(err) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestResolveTargetsMultiple(t *testing.T) {
	sel := Selection{
		Chapters: map[string]bool{"c1": true},
		// t3 is selected but its chapter is not; it must not leak in.
		Topics: map[string]bool{"t2": true, "t3": true},
	}
	targets, err := ResolveTargets(ModeMultiple, twoChapterTree(), sel)
	if err != nil {
		t.Fatalf("ResolveTargets: %v", err)
	}
	if len(targets) != 1 || targets[0].TopicID != "t2" {
		t.Fatalf("targets = %v, want only t2", targets)
	}
}

func TestResolveTargetsMultipleNothingSelected(t *testing.T) {
	sel := Selection{
		Chapters: map[string]bool{"c2": true},
		Topics:   map[string]bool{"t1": true}, // topic not in a selected chapter
	}
	_, err := ResolveTargets(ModeMultiple, twoChapterTree(), sel)
	if !IsValidation(err) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestResolveTargetsSingle(t *testing.T) {
	sel := Selection{ChapterID: "c1", Topics: map[string]bool{"t1": true}}
	targets, err := ResolveTargets(ModeSingle, twoChapterTree(), sel)
	if err != nil {
		t.Fatalf("ResolveTargets: %v", err)
	}
	if len(targets) != 1 || targets[0].TopicID != "t1" || targets[0].ChapterID != "c1" {
		t.Fatalf("targets = %v", targets)
	}
}

func TestResolveTargetsSingleValidation(t *testing.T) {
	tree := twoChapterTree()

	if _, err := ResolveTargets(ModeSingle, tree, Selection{}); !IsValidation(err) {
		t.Fatalf("missing chapter: err = %v, want ValidationError", err)
	}
	sel := Selection{ChapterID: "c1"}
	if _, err := ResolveTargets(ModeSingle, tree, sel); !IsValidation(err) {
		t.Fatalf("no topics: err = %v, want ValidationError", err)
	}
}

func TestResolveTargetsUnknownMode(t *testing.T) {
	if _, err := ResolveTargets("chaotic", twoChapterTree(), Selection{}); !IsValidation(err) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}
