package bank

import "strings"

// Question types as authored. "short" carries an instruction subtype in its
// payload that decides which printed section it lands in.
const (
	TypeMultiple   = "multiple"
	TypeShort      = "short"
	TypeTrueFalse  = "truefalse"
	TypeFillBlanks = "fillinblanks"
)

// Review workflow states. Only approved questions are eligible for quizzes.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type Department struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Grade struct {
	ID           string `json:"id"`
	DepartmentID string `json:"department_id"`
	Name         string `json:"name"`
	Ord          int    `json:"ord"`
}

type Book struct {
	ID      string `json:"id"`
	GradeID string `json:"grade_id"`
	Name    string `json:"name"`
	Ord     int    `json:"ord"`
}

type Chapter struct {
	ID     string `json:"id"`
	BookID string `json:"book_id"`
	Name   string `json:"name"`
	Ord    int    `json:"ord"`
}

type Topic struct {
	ID        string `json:"id"`
	ChapterID string `json:"chapter_id"`
	Name      string `json:"name"`
	Ord       int    `json:"ord"`
}

// Payload holds the type-specific part of a question.
type Payload struct {
	Options       []string `json:"options,omitempty"`
	CorrectOption int      `json:"correct_option,omitempty"` // index into Options
	ShortAnswer   string   `json:"short_answer,omitempty"`
	// Instruction subtype for short questions: oneWord, describe, jumbled,
	// punctuation, scrambled. Empty means plain shortAnswer.
	InstructionType string `json:"instruction_type,omitempty"`
	IsTrueAnswer    bool   `json:"is_true_answer,omitempty"`
	BlankAnswer     string `json:"blank_answer,omitempty"`
}

// Question ids are unique within their topic only; two topics may reuse the
// same authored id, which is why quiz aggregation dedups by id.
type Question struct {
	ID        string  `json:"id"`
	TopicID   string  `json:"topic_id"`
	Type      string  `json:"type"`
	Status    string  `json:"status"`
	Prompt    string  `json:"prompt"`
	Payload   Payload `json:"payload"`
	CreatedAt int64   `json:"created_at,omitempty"`
}

// DisplayName turns a stored identifier into its printable form by replacing
// separator characters with spaces, e.g. "laws_of-motion" -> "laws of motion".
func DisplayName(stored string) string {
	r := strings.NewReplacer("_", " ", "-", " ")
	return strings.Join(strings.Fields(r.Replace(stored)), " ")
}
