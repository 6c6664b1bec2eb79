package quiz

import (
	"fmt"
	"strings"

	"github.com/quizmint/quizmint-server/internal/bank"
)

// Printed instruction line for each category section.
var categoryInstructions = map[Category]string{
	CatMultiple:    "Choose the correct option.",
	CatTrueFalse:   "State whether the following are true or false.",
	CatFillBlanks:  "Fill in the blanks.",
	CatShortAnswer: "Answer the following questions.",
	CatOneWord:     "Answer in one word.",
	CatDescribe:    "Describe in detail.",
	CatJumbled:     "Rearrange the jumbled sentences.",
	CatPunctuation: "Punctuate the following.",
	CatScrambled:   "Unscramble the following.",
	CatOther:       "Answer the following.",
}

var optionLabels = []string{"A", "B", "C", "D", "E", "F"}

// RenderText produces the printable quiz body and its answer key. Both walk
// the stored question list in its canonical order, so the numbers printed in
// the body and in the key always agree.
func RenderText(q Quiz) (body, answerKey string) {
	var b, k strings.Builder

	fmt.Fprintf(&b, "%s\n", q.Title)
	if q.Description != "" {
		fmt.Fprintf(&b, "%s\n", q.Description)
	}
	fmt.Fprintf(&b, "%s | %s | %s\n\n", q.Department, q.Grade, q.BookName)
	fmt.Fprintf(&k, "Answer key: %s\n\n", q.Title)

	var current Category
	section := 0
	for _, question := range q.Questions {
		if question.Category != current || section == 0 {
			current = question.Category
			section++
			fmt.Fprintf(&b, "Q%d. %s\n", section, categoryInstructions[current])
		}
		fmt.Fprintf(&b, "  %d. %s\n", question.Number, question.Prompt)
		if question.Category == CatMultiple {
			for i, opt := range question.Payload.Options {
				fmt.Fprintf(&b, "     %s) %s\n", optionLabel(i), opt)
			}
		}
		fmt.Fprintf(&k, "%d. %s\n", question.Number, answerFor(question))
	}
	return b.String(), k.String()
}

func optionLabel(i int) string {
	if i < len(optionLabels) {
		return optionLabels[i]
	}
	return fmt.Sprintf("%d", i+1)
}

func answerFor(q Question) string {
	switch q.Type {
	case bank.TypeMultiple:
		i := q.Payload.CorrectOption
		if i >= 0 && i < len(q.Payload.Options) {
			return fmt.Sprintf("%s) %s", optionLabel(i), q.Payload.Options[i])
		}
		return ""
	case bank.TypeTrueFalse:
		if q.Payload.IsTrueAnswer {
			return "True"
		}
		return "False"
	case bank.TypeFillBlanks:
		return q.Payload.BlankAnswer
	case bank.TypeShort:
		return q.Payload.ShortAnswer
	default:
		return ""
	}
}
