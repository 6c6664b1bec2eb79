package quiz

import "github.com/quizmint/quizmint-server/internal/bank"

// ResolveTargets flattens the teacher's selection against a loaded book tree
// into the ordered list of (chapter, topic) pairs to pull questions from.
// Validation failures are ValidationErrors; an empty result after validation
// passes is ErrNoTargets.
func ResolveTargets(mode string, tree bank.BookTree, sel Selection) ([]Target, error) {
	switch mode {
	case ModeWhole:
		if len(tree.Chapters) == 0 {
			return nil, validationf("book %q has no chapters", tree.Book.Name)
		}
		var targets []Target
		for _, ch := range tree.Chapters {
			for _, t := range ch.Topics {
				targets = append(targets, newTarget(ch.Chapter, t))
			}
		}
		return checkTargets(targets)

	case ModeMultiple:
		var targets []Target
		any := false
		for _, ch := range tree.Chapters {
			if !sel.Chapters[ch.Chapter.ID] {
				continue
			}
			for _, t := range ch.Topics {
				if sel.Topics[t.ID] {
					any = true
					targets = append(targets, newTarget(ch.Chapter, t))
				}
			}
		}
		if !any {
			return nil, validationf("select at least one chapter with at least one topic")
		}
		return checkTargets(targets)

	case ModeSingle:
		if sel.ChapterID == "" {
			return nil, validationf("choose a chapter")
		}
		var targets []Target
		for _, ch := range tree.Chapters {
			if ch.Chapter.ID != sel.ChapterID {
				continue
			}
			for _, t := range ch.Topics {
				if sel.Topics[t.ID] {
					targets = append(targets, newTarget(ch.Chapter, t))
				}
			}
		}
		if len(targets) == 0 {
			return nil, validationf("select at least one topic in the chosen chapter")
		}
		return targets, nil

	default:
		return nil, validationf("unknown quiz mode %q", mode)
	}
}

// validateSelection rejects obviously incomplete selections before any store
// access. ResolveTargets re-checks against the actual tree afterwards.
func validateSelection(mode string, sel Selection) error {
	switch mode {
	case ModeWhole:
	case ModeSingle:
		if sel.ChapterID == "" {
			return validationf("choose a chapter")
		}
		if !anySelected(sel.Topics) {
			return validationf("select at least one topic in the chosen chapter")
		}
	case ModeMultiple:
		if !anySelected(sel.Chapters) || !anySelected(sel.Topics) {
			return validationf("select at least one chapter with at least one topic")
		}
	default:
		return validationf("unknown quiz mode %q", mode)
	}
	return nil
}

func anySelected(m map[string]bool) bool {
	for _, v := range m {
		if v {
			return true
		}
	}
	return false
}

func newTarget(ch bank.Chapter, t bank.Topic) Target {
	return Target{
		ChapterID:   ch.ID,
		TopicID:     t.ID,
		ChapterName: bank.DisplayName(ch.Name),
		TopicName:   bank.DisplayName(t.Name),
	}
}

func checkTargets(targets []Target) ([]Target, error) {
	if len(targets) == 0 {
		return nil, ErrNoTargets
	}
	return targets, nil
}
