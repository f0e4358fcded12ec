package questiongen

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/adaptiquiz/internal/difficulty"
	"github.com/abhisek/adaptiquiz/internal/llm"
)

func reply(q string, options []string, answer string) llm.MockReply {
	b, _ := json.Marshal(output{Question: q, Options: options, CorrectAnswer: answer, Explanation: "because"})
	return llm.MockReply{Content: b}
}

var planets = []string{"Mercury", "Venus", "Earth", "Mars"}

func TestGenerate_Valid(t *testing.T) {
	mock := llm.NewMockProvider(reply("Which planet is closest to the Sun?", planets, "Mercury"))
	gen := New(mock, DefaultConfig())

	q, err := gen.Generate(context.Background(), Input{
		Tier:     difficulty.Medium,
		Topic:    "astronomy",
		Existing: []string{"What is the capital of France?"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Which planet is closest to the Sun?", q.Prompt)
	assert.Equal(t, 0, q.CorrectIndex)
	assert.Equal(t, difficulty.Medium, q.Tier)
	assert.Equal(t, "because", q.Explanation)
	assert.Empty(t, q.ID)

	reqs := mock.Requests()
	require.Len(t, reqs, 1)
	assert.Same(t, QuestionSchema, reqs[0].Schema)
	assert.Contains(t, reqs[0].Prompt, "Tier: medium")
	assert.Contains(t, reqs[0].Prompt, "Topic: astronomy")
	assert.Contains(t, reqs[0].Prompt, "1. What is the capital of France?")
}

func TestGenerate_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		reply llm.MockReply
	}{
		{"empty prompt", reply("  ", planets, "Mars")},
		{"three options", reply("Q?", planets[:3], "Mars")},
		{"repeated option", reply("Q?", []string{"A", "B", "a", "C"}, "A")},
		{"answer missing", reply("Q?", planets, "Pluto")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := New(llm.NewMockProvider(tt.reply), DefaultConfig())
			_, err := gen.Generate(context.Background(), Input{Tier: difficulty.Easy})
			var rejected *RejectedError
			assert.True(t, errors.As(err, &rejected), "got %v", err)
		})
	}
}

func TestGenerate_Duplicate(t *testing.T) {
	mock := llm.NewMockProvider(reply("What is the capital of France", []string{"Paris", "Rome", "Berlin", "Madrid"}, "Paris"))
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), Input{
		Tier:     difficulty.Easy,
		Existing: []string{"what is the  capital of France?"},
	})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestGenerate_ProviderError(t *testing.T) {
	gen := New(llm.NewMockProvider(), DefaultConfig())
	_, err := gen.Generate(context.Background(), Input{Tier: difficulty.Hard})
	var unavail *llm.UnavailableError
	assert.True(t, errors.As(err, &unavail))
}

func TestGenerate_UnknownTier(t *testing.T) {
	gen := New(llm.NewMockProvider(), DefaultConfig())
	_, err := gen.Generate(context.Background(), Input{Tier: difficulty.Tier(9)})
	assert.ErrorIs(t, err, difficulty.ErrUnknownTier)
}

func TestUserPrompt_CapsExisting(t *testing.T) {
	var existing []string
	for i := 0; i < 10; i++ {
		existing = append(existing, strings.Repeat("q", i+1))
	}
	p := userPrompt(Input{Tier: difficulty.Hard, Existing: existing}, 3)
	assert.Contains(t, p, "3. qqqqqqqqqq")
	assert.NotContains(t, p, "4. ")
	assert.NotContains(t, p, "Topic:")

	assert.Contains(t, userPrompt(Input{Tier: difficulty.Easy}, 3), "None")
}
