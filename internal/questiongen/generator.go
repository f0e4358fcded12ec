// Package questiongen authors new bank questions with a language model.
package questiongen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/abhisek/adaptiquiz/internal/difficulty"
	"github.com/abhisek/adaptiquiz/internal/llm"
	"github.com/abhisek/adaptiquiz/internal/questions"
)

// OptionCount is the number of options every generated question carries.
const OptionCount = 4

// ErrDuplicate is returned when the model repeats a question already in
// the bank.
var ErrDuplicate = errors.New("duplicate question")

// RejectedError explains why a generated question was discarded.
type RejectedError struct {
	Reason string
}

func (e *RejectedError) Error() string {
	return "generated question rejected: " + e.Reason
}

// Input describes the question to generate.
type Input struct {
	Tier     difficulty.Tier
	Topic    string   // optional
	Existing []string // prompts already in the tier's bank
}

// Config tunes generation.
type Config struct {
	MaxTokens   int
	Temperature float64
	// MaxExisting caps how many existing prompts are listed in the prompt.
	MaxExisting int
}

// DefaultConfig returns the recommended settings.
func DefaultConfig() Config {
	return Config{MaxTokens: 512, Temperature: 0.8, MaxExisting: 30}
}

// Generator produces questions with an llm.Provider.
type Generator struct {
	provider llm.Provider
	cfg      Config
}

// New returns a Generator.
func New(p llm.Provider, cfg Config) *Generator {
	return &Generator{provider: p, cfg: cfg}
}

// Generate asks the model for one question at in.Tier and checks it before
// returning. The returned question has no ID; the bank assigns one on Add.
func (g *Generator) Generate(ctx context.Context, in Input) (questions.Question, error) {
	if !in.Tier.Valid() {
		return questions.Question{}, difficulty.ErrUnknownTier
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeQuestionGen)

	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Prompt:      userPrompt(in, g.cfg.MaxExisting),
		Schema:      QuestionSchema,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	})
	if err != nil {
		return questions.Question{}, fmt.Errorf("LLM generation failed: %w", err)
	}

	var out output
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return questions.Question{}, fmt.Errorf("failed to parse LLM response: %w", err)
	}
	return toQuestion(out, in)
}

// toQuestion checks the model output and converts it.
func toQuestion(out output, in Input) (questions.Question, error) {
	prompt := strings.TrimSpace(out.Question)
	if prompt == "" {
		return questions.Question{}, &RejectedError{Reason: "empty question"}
	}
	if len(out.Options) != OptionCount {
		return questions.Question{}, &RejectedError{
			Reason: fmt.Sprintf("expected %d options, got %d", OptionCount, len(out.Options)),
		}
	}

	options := make([]string, len(out.Options))
	seen := make(map[string]bool, len(out.Options))
	correct := -1
	answer := strings.TrimSpace(out.CorrectAnswer)
	for i, o := range out.Options {
		o = strings.TrimSpace(o)
		key := strings.ToLower(o)
		if o == "" || seen[key] {
			return questions.Question{}, &RejectedError{Reason: fmt.Sprintf("option %d is empty or repeated", i+1)}
		}
		seen[key] = true
		options[i] = o
		if o == answer {
			correct = i
		}
	}
	if correct < 0 {
		return questions.Question{}, &RejectedError{Reason: fmt.Sprintf("answer %q is not among the options", answer)}
	}

	if isDuplicate(prompt, in.Existing) {
		return questions.Question{}, fmt.Errorf("%w: %q", ErrDuplicate, prompt)
	}

	q := questions.Question{
		Prompt:       prompt,
		Options:      options,
		CorrectIndex: correct,
		Tier:         in.Tier,
		Explanation:  strings.TrimSpace(out.Explanation),
	}
	if err := q.Validate(); err != nil {
		return questions.Question{}, &RejectedError{Reason: err.Error()}
	}
	return q, nil
}

func isDuplicate(prompt string, existing []string) bool {
	key := normalize(prompt)
	for _, e := range existing {
		if normalize(e) == key {
			return true
		}
	}
	return false
}

// normalize lowercases, drops punctuation and collapses spaces.
func normalize(s string) string {
	s = strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			return unicode.ToLower(r)
		case unicode.IsSpace(r):
			return ' '
		}
		return -1
	}, s)
	return strings.Join(strings.Fields(s), " ")
}
