package quiz

import "github.com/quizmint/quizmint-server/internal/bank"

// Classified is the grouped result of a classification pass. Buckets follow
// CategoryOrder; every question carries its assigned 1-based number.
type Classified struct {
	buckets map[Category][]Question
}

// Classify partitions questions into the fixed print categories. Each
// question is assigned exactly once (ids already classified are skipped), and
// numbering runs 1..n in category emission order: all multiple first, then
// truefalse, and so on. The answer key reuses these numbers verbatim.
func Classify(questions []Question) *Classified {
	c := &Classified{buckets: map[Category][]Question{}}
	seen := map[string]bool{}
	for _, q := range questions {
		if seen[q.ID] {
			continue
		}
		seen[q.ID] = true
		q.Category = categoryFor(q)
		c.buckets[q.Category] = append(c.buckets[q.Category], q)
	}
	n := 0
	for _, cat := range CategoryOrder {
		for i := range c.buckets[cat] {
			n++
			c.buckets[cat][i].Number = n
		}
	}
	return c
}

// Category returns the questions in one bucket, in assignment order.
func (c *Classified) Category(cat Category) []Question { return c.buckets[cat] }

// Len is the total number of classified questions.
func (c *Classified) Len() int {
	n := 0
	for _, qs := range c.buckets {
		n += len(qs)
	}
	return n
}

// Flatten emits all questions in canonical category order. This is the list
// that gets stored; the grouping is reconstructible from each question's
// Category on read.
func (c *Classified) Flatten() []Question {
	out := make([]Question, 0, c.Len())
	for _, cat := range CategoryOrder {
		out = append(out, c.buckets[cat]...)
	}
	return out
}

func categoryFor(q Question) Category {
	switch q.Type {
	case bank.TypeMultiple:
		return CatMultiple
	case bank.TypeTrueFalse:
		return CatTrueFalse
	case bank.TypeFillBlanks:
		return CatFillBlanks
	case bank.TypeShort:
		switch q.Payload.InstructionType {
		case "":
			return CatShortAnswer
		case string(CatShortAnswer):
			return CatShortAnswer
		case string(CatOneWord):
			return CatOneWord
		case string(CatDescribe):
			return CatDescribe
		case string(CatJumbled):
			return CatJumbled
		case string(CatPunctuation):
			return CatPunctuation
		case string(CatScrambled):
			return CatScrambled
		default:
			return CatOther
		}
	default:
		return CatOther
	}
}
