package questions

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/adaptiquiz/internal/difficulty"
)

// ErrNoQuestionsAvailable is returned when a tier's bank is empty.
var ErrNoQuestionsAvailable = errors.New("no questions available")

const (
	MinOptions = 2
	MaxOptions = 6
)

// Question is a single multiple-choice question.
type Question struct {
	ID           string
	Prompt       string
	Options      []string
	CorrectIndex int
	Tier         difficulty.Tier
	Explanation  string
}

// CorrectAnswer returns the text of the correct option.
func (q Question) CorrectAnswer() string {
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return ""
	}
	return q.Options[q.CorrectIndex]
}

// IsCorrect reports whether choice is the index of the correct option.
func (q Question) IsCorrect(choice int) bool {
	return choice == q.CorrectIndex
}

// Validate checks the structural rules every stored question must satisfy.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Prompt) == "" {
		return errors.New("empty prompt")
	}
	if len(q.Options) < MinOptions || len(q.Options) > MaxOptions {
		return fmt.Errorf("need %d-%d options, got %d", MinOptions, MaxOptions, len(q.Options))
	}
	seen := make(map[string]bool, len(q.Options))
	for i, opt := range q.Options {
		key := strings.ToLower(strings.TrimSpace(opt))
		if key == "" {
			return fmt.Errorf("option %d is empty", i+1)
		}
		if seen[key] {
			return fmt.Errorf("duplicate option %q", opt)
		}
		seen[key] = true
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return fmt.Errorf("correct index %d out of range", q.CorrectIndex)
	}
	if !q.Tier.Valid() {
		return fmt.Errorf("%w: %d", difficulty.ErrUnknownTier, int(q.Tier))
	}
	return nil
}
