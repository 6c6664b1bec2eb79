package quiz

import (
	"time"

	"github.com/quizmint/quizmint-server/internal/bank"
)

// Quiz scope modes.
const (
	ModeSingle   = "single"   // selected topics within one chapter
	ModeMultiple = "multiple" // selected topics within selected chapters
	ModeWhole    = "whole"    // every topic of every chapter
)

// Category is a fixed print/display bucket. The classifier, renderer and
// persister all share this one type.
type Category string

const (
	CatMultiple    Category = "multiple"
	CatTrueFalse   Category = "truefalse"
	CatFillBlanks  Category = "fillinblanks"
	CatShortAnswer Category = "shortAnswer"
	CatOneWord     Category = "oneWord"
	CatDescribe    Category = "describe"
	CatJumbled     Category = "jumbled"
	CatPunctuation Category = "punctuation"
	CatScrambled   Category = "scrambled"
	CatOther       Category = "other"
)

// CategoryOrder is the canonical emission order. Question numbering and the
// stored flat list both follow it; the answer key depends on it bit-exactly.
var CategoryOrder = []Category{
	CatMultiple, CatTrueFalse, CatFillBlanks, CatShortAnswer, CatOneWord,
	CatDescribe, CatJumbled, CatPunctuation, CatScrambled, CatOther,
}

// Target is one (chapter, topic) pair to pull questions from. Names are the
// printable display names, denormalized so the quiz stays self-contained.
type Target struct {
	ChapterID   string `json:"chapter_id"`
	TopicID     string `json:"topic_id"`
	ChapterName string `json:"chapter_name"`
	TopicName   string `json:"topic_name"`
}

// Selection captures the teacher's chapter/topic picks. A chapter being
// selected never implies its topics are; both flags are required per topic in
// multiple mode.
type Selection struct {
	ChapterID string          `json:"chapter_id,omitempty"` // single mode
	Chapters  map[string]bool `json:"chapters,omitempty"`   // multiple mode
	Topics    map[string]bool `json:"topics,omitempty"`
}

// Spec is the resolved generation request. Ephemeral: it is consumed by one
// Generate call and never stored.
type Spec struct {
	BookID       string    `json:"book_id"`
	Mode         string    `json:"mode"`
	Selection    Selection `json:"selection"`
	EnabledTypes []string  `json:"enabled_types"`
	Count        int       `json:"count"`

	Title       string `json:"title"`
	Description string `json:"description"`
	Department  string `json:"department"`
	Grade       string `json:"grade"`
}

// Question is a bank question annotated with its origin and print position.
type Question struct {
	ID          string       `json:"id"`
	Type        string       `json:"type"`
	Prompt      string       `json:"prompt"`
	Payload     bank.Payload `json:"payload"`
	ChapterName string       `json:"chapter_name"`
	TopicName   string       `json:"topic_name"`
	Category    Category     `json:"category"`
	Number      int          `json:"number"` // 1-based, assigned in category emission order
}

type Quiz struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"owner_id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Department  string     `json:"department"`
	Grade       string     `json:"grade"`
	BookName    string     `json:"book_name"`
	Mode        string     `json:"mode"`
	Questions   []Question `json:"questions"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Teacher is the profile the directory resolves from an authenticated email.
type Teacher struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	Departments []string `json:"departments"`
	GradeGrants []string `json:"grade_grants"` // raw strings; parsed by bank.ParseGradeGrants
}
