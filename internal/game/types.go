package game

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/adaptiquiz/internal/difficulty"
	"github.com/abhisek/adaptiquiz/internal/progress"
	"github.com/abhisek/adaptiquiz/internal/questions"
	"github.com/abhisek/adaptiquiz/internal/store"
)

var (
	// ErrNoSession is returned by operations that need a started session.
	ErrNoSession = errors.New("no active session")
	// ErrNotAsking is returned by Submit when no question is awaiting an answer.
	ErrNotAsking = errors.New("no question awaiting an answer")
	// ErrInvalidChoice is returned when the chosen option does not exist.
	ErrInvalidChoice = errors.New("invalid choice")
)

// Phase is where the game is in its question loop.
type Phase int

const (
	PhaseIdle     Phase = iota // no session yet
	PhaseAsking                // a question awaits an answer
	PhaseFeedback              // the last answer has been judged
	PhaseEnded                 // the session is over
)

func (p Phase) String() string {
	switch p {
	case PhaseAsking:
		return "asking"
	case PhaseFeedback:
		return "feedback"
	case PhaseEnded:
		return "ended"
	default:
		return "idle"
	}
}

// Recorder receives the game's events. store.EventRepo satisfies it.
type Recorder interface {
	AppendAnswer(ctx context.Context, data store.AnswerEventData) error
	AppendTierChange(ctx context.Context, data store.TierChangeEventData) error
	AppendSession(ctx context.Context, data store.SessionEventData) error
}

// Session holds the counters of one play-through.
type Session struct {
	ID        string
	StartedAt time.Time
	Answered  int
	Correct   int
	Score     int
}

// Accuracy returns Correct/Answered, or 0 before the first answer.
func (s Session) Accuracy() float64 {
	if s.Answered == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Answered)
}

// Feedback describes the outcome of one submitted answer.
type Feedback struct {
	Question questions.Question
	Choice   int
	Correct  bool
	Points   int
	Result   difficulty.Result
}

// Stats is a display snapshot.
type Stats struct {
	Phase      Phase
	Difficulty difficulty.Info
	Session    Session
	Record     *progress.Record // copy of the persisted record
}
