package store

import (
	"context"
	"time"

	"github.com/abhisek/adaptiquiz/internal/difficulty"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit     int       // max results (0 = unlimited)
	After     int64     // sequence > After
	Before    int64     // sequence < Before
	From      time.Time // timestamp >= From
	To        time.Time // timestamp <= To
	SessionID string    // only events of this session
}

// AnswerEventData captures one submitted answer.
type AnswerEventData struct {
	SessionID     string
	Tier          difficulty.Tier
	QuestionID    string
	QuestionText  string
	ChosenAnswer  string
	CorrectAnswer string
	Correct       bool
	Points        int
}

// AnswerEvent is a stored answer.
type AnswerEvent struct {
	Sequence  int64
	Timestamp time.Time
	AnswerEventData
}

// Tier change reasons.
const (
	ReasonPromoted = "promoted"
	ReasonDemoted  = "demoted"
	ReasonReset    = "reset"
)

// TierChangeEventData captures a difficulty transition.
type TierChangeEventData struct {
	SessionID string
	From      difficulty.Tier
	To        difficulty.Tier
	Reason    string
	Accuracy  float64 // window accuracy that triggered the change
}

// TierChangeEvent is a stored tier transition.
type TierChangeEvent struct {
	Sequence  int64
	Timestamp time.Time
	TierChangeEventData
}

// Session actions.
const (
	SessionStart = "start"
	SessionEnd   = "end"
)

// SessionEventData captures the start or end of a quiz session.
type SessionEventData struct {
	SessionID       string
	Action          string
	Tier            difficulty.Tier
	QuestionsServed int
	CorrectAnswers  int
	Score           int
	DurationSecs    int
}

// SessionEvent is a stored session event.
type SessionEvent struct {
	Sequence  int64
	Timestamp time.Time
	SessionEventData
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMRequestEvent is a stored LLM request.
type LLMRequestEvent struct {
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// EventRepo provides append and query access to domain events.
// Queries return newest first.
type EventRepo interface {
	AppendAnswer(ctx context.Context, data AnswerEventData) error
	AppendTierChange(ctx context.Context, data TierChangeEventData) error
	AppendSession(ctx context.Context, data SessionEventData) error
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	RecentAnswers(ctx context.Context, opts QueryOpts) ([]AnswerEvent, error)
	TierChanges(ctx context.Context, opts QueryOpts) ([]TierChangeEvent, error)
	Sessions(ctx context.Context, opts QueryOpts) ([]SessionEvent, error)
	LLMRequests(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)
}
