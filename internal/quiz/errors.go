package quiz

import (
	"errors"
	"fmt"
)

// ValidationError reports a bad or incomplete selection. It is raised before
// any store query is issued; no partial work happens behind it.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

func validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

var (
	// ErrNoTargets means validation passed but target resolution produced
	// nothing; an internal-consistency failure, not user error.
	ErrNoTargets = errors.New("no targets resolved")

	// ErrNoApprovedQuestions: the target topics hold no approved questions at
	// all. Distinct from ErrNoMatchingType for user guidance.
	ErrNoApprovedQuestions = errors.New("no approved questions in the selected scope")

	// ErrNoMatchingType: approved questions exist but none match the enabled
	// question types.
	ErrNoMatchingType = errors.New("no approved questions match the enabled types")

	// ErrOwnerNotFound: the teacher profile vanished between auth and save.
	ErrOwnerNotFound = errors.New("owner not found")

	ErrQuizNotFound = errors.New("quiz not found")
)
