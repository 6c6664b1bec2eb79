package bank

import (
	"context"
	"sort"
)

// BookTree is a fully loaded book: ordered chapters, each with ordered topics.
type BookTree struct {
	Book     Book          `json:"book"`
	Chapters []ChapterNode `json:"chapters"`
}

type ChapterNode struct {
	Chapter Chapter `json:"chapter"`
	Topics  []Topic `json:"topics"`
}

// TreeSource is the slice of the store the tree loader needs.
type TreeSource interface {
	GetBook(ctx context.Context, id string) (Book, error)
	ListChapters(ctx context.Context, bookID string) ([]Chapter, error)
	ListTopics(ctx context.Context, chapterID string) ([]Topic, error)
}

// LoadBookTree fetches a book with all its chapters and topics. Chapters and
// each chapter's topics are sorted by ord ascending; ties keep the store's
// enumeration order (stable sort). Returns ErrNotFound if the book is absent.
func LoadBookTree(ctx context.Context, store TreeSource, bookID string) (BookTree, error) {
	book, err := store.GetBook(ctx, bookID)
	if err != nil {
		return BookTree{}, err
	}
	chapters, err := store.ListChapters(ctx, bookID)
	if err != nil {
		return BookTree{}, err
	}
	sort.SliceStable(chapters, func(i, j int) bool { return chapters[i].Ord < chapters[j].Ord })

	tree := BookTree{Book: book, Chapters: make([]ChapterNode, 0, len(chapters))}
	for _, ch := range chapters {
		topics, err := store.ListTopics(ctx, ch.ID)
		if err != nil {
			return BookTree{}, err
		}
		sort.SliceStable(topics, func(i, j int) bool { return topics[i].Ord < topics[j].Ord })
		tree.Chapters = append(tree.Chapters, ChapterNode{Chapter: ch, Topics: topics})
	}
	return tree, nil
}
