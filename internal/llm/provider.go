// Package llm talks to hosted language models for question authoring.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates one completion per call.
type Provider interface {
	// Generate sends req and returns the model output. When req.Schema is
	// set the output is JSON validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model the provider sends requests to.
	ModelID() string
}

// Request is a single-turn prompt.
type Request struct {
	System      string
	Prompt      string
	Schema      *Schema
	MaxTokens   int
	Temperature float64 // 0 leaves the provider default
}

// Schema is a named JSON Schema the output must satisfy.
type Schema struct {
	// Name is kebab-case, e.g. "quiz-question". Providers use it as the
	// tool or format name.
	Name        string
	Description string
	Definition  map[string]any
}

// Stop reasons.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

// Response is the model output.
type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason string
}

// Usage counts tokens for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Total returns input plus output tokens.
func (u Usage) Total() int {
	return u.InputTokens + u.OutputTokens
}

// finish validates content against the request schema and wraps it in a
// Response. A truncated reply is reported before validation so callers see
// why the JSON is incomplete.
func finish(req Request, content json.RawMessage, model, stop string, usage Usage) (*Response, error) {
	if stop == StopMaxTokens && req.Schema != nil {
		return nil, &TruncatedError{Content: content}
	}
	if err := validateContent(req.Schema, content); err != nil {
		return nil, err
	}
	return &Response{Content: content, Usage: usage, Model: model, StopReason: stop}, nil
}
