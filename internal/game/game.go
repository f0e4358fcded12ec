// Package game runs the quiz loop: it serves questions for the current
// tier, judges answers, feeds outcomes to the difficulty controller and
// persists progress after every answer.
package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/adaptiquiz/internal/difficulty"
	"github.com/abhisek/adaptiquiz/internal/progress"
	"github.com/abhisek/adaptiquiz/internal/questions"
	"github.com/abhisek/adaptiquiz/internal/store"
)

// repeatAttempts bounds re-picks that avoid serving the same question twice
// in a row.
const repeatAttempts = 3

// Deps are the collaborators of a Game.
type Deps struct {
	Questions  questions.Source
	Progress   progress.Store
	Events     Recorder // optional
	Difficulty difficulty.Config
	Log        *zap.SugaredLogger
	Now        func() time.Time
	NewID      func() string
}

// Game owns all state of a quiz: the controller, the progress record, the
// current question and the session counters. It is not safe for
// concurrent use.
type Game struct {
	deps    Deps
	ctrl    *difficulty.Controller
	record  *progress.Record
	phase   Phase
	current questions.Question
	session Session
}

// New loads the progress record and seeds the controller with its tier.
// A record that cannot be loaded is replaced by a fresh one.
func New(ctx context.Context, deps Deps) (*Game, error) {
	if deps.Questions == nil || deps.Progress == nil {
		return nil, errors.New("game: question source and progress store are required")
	}
	if deps.Log == nil {
		deps.Log = zap.NewNop().Sugar()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.NewID == nil {
		deps.NewID = uuid.NewString
	}
	if deps.Difficulty == (difficulty.Config{}) {
		deps.Difficulty = difficulty.DefaultConfig()
	}

	rec, err := deps.Progress.Load(ctx)
	if err != nil || rec == nil {
		deps.Log.Warnw("could not load progress, starting fresh", "error", err)
		rec = progress.NewRecord(deps.Now())
	}

	ctrl, err := difficulty.NewController(deps.Difficulty, rec.CurrentTier)
	if err != nil {
		return nil, fmt.Errorf("difficulty config: %w", err)
	}

	return &Game{deps: deps, ctrl: ctrl, record: rec}, nil
}

// Phase returns the current phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// Tier returns the current difficulty tier.
func (g *Game) Tier() difficulty.Tier {
	return g.ctrl.Tier()
}

// Current returns the question awaiting or last given an answer.
func (g *Game) Current() (questions.Question, bool) {
	return g.current, g.phase == PhaseAsking || g.phase == PhaseFeedback
}

// Start begins a new session and serves its first question. A session
// still in progress is ended first.
func (g *Game) Start(ctx context.Context) (questions.Question, error) {
	if g.inSession() {
		g.End(ctx)
	}

	g.session = Session{ID: g.deps.NewID(), StartedAt: g.deps.Now()}
	g.current = questions.Question{}
	g.phase = PhaseFeedback
	g.deps.Log.Infow("session started", "session_id", g.session.ID, "tier", g.ctrl.Tier())
	g.emit(ctx, "session", func(r Recorder) error {
		return r.AppendSession(ctx, store.SessionEventData{
			SessionID: g.session.ID,
			Action:    store.SessionStart,
			Tier:      g.ctrl.Tier(),
		})
	})

	return g.NextQuestion(ctx)
}

// NextQuestion serves a question for the current tier. When the tier has
// no questions the session ends and the error, wrapping
// questions.ErrNoQuestionsAvailable, is returned for display.
func (g *Game) NextQuestion(ctx context.Context) (questions.Question, error) {
	if !g.inSession() {
		return questions.Question{}, ErrNoSession
	}
	if g.phase == PhaseAsking {
		return g.current, nil
	}

	tier := g.ctrl.Tier()
	var (
		q   questions.Question
		err error
	)
	for i := 0; i < repeatAttempts; i++ {
		q, err = g.deps.Questions.RandomQuestion(tier)
		if err != nil || q.ID == "" || q.ID != g.current.ID {
			break
		}
	}
	if err != nil {
		g.deps.Log.Warnw("no question to serve", "tier", tier, "error", err)
		g.End(ctx)
		return questions.Question{}, err
	}

	g.current = q
	g.phase = PhaseAsking
	return q, nil
}

// Submit judges choice against the current question, updates the
// controller, the session and the progress record, and records events.
// A failure to save progress is logged and does not fail the answer.
func (g *Game) Submit(ctx context.Context, choice int) (Feedback, error) {
	if g.phase != PhaseAsking {
		return Feedback{}, ErrNotAsking
	}
	q := g.current
	if choice < 0 || choice >= len(q.Options) {
		return Feedback{}, fmt.Errorf("%w: %d of %d options", ErrInvalidChoice, choice+1, len(q.Options))
	}

	tier := g.ctrl.Tier()
	correct := q.IsCorrect(choice)
	points := 0
	if correct {
		points = Points(tier)
	}
	result := g.ctrl.RecordAnswer(correct)

	if g.session.Answered == 0 {
		g.record.BeginSession()
	}
	g.session.Answered++
	if correct {
		g.session.Correct++
		g.session.Score += points
	}

	g.record.RecordAnswer(tier, correct, points)
	g.record.CurrentTier = result.Tier
	if err := g.deps.Progress.Save(ctx, g.record); err != nil {
		g.deps.Log.Warnw("failed to save progress", "error", err)
	}

	g.emit(ctx, "answer", func(r Recorder) error {
		return r.AppendAnswer(ctx, store.AnswerEventData{
			SessionID:     g.session.ID,
			Tier:          tier,
			QuestionID:    q.ID,
			QuestionText:  q.Prompt,
			ChosenAnswer:  q.Options[choice],
			CorrectAnswer: q.CorrectAnswer(),
			Correct:       correct,
			Points:        points,
		})
	})
	if result.Changed() {
		g.deps.Log.Infow("tier changed",
			"session_id", g.session.ID, "from", result.From, "to", result.Tier,
			"change", result.Change, "accuracy", result.Accuracy)
		g.emit(ctx, "tier change", func(r Recorder) error {
			return r.AppendTierChange(ctx, store.TierChangeEventData{
				SessionID: g.session.ID,
				From:      result.From,
				To:        result.Tier,
				Reason:    string(result.Change),
				Accuracy:  result.Accuracy,
			})
		})
	}

	g.phase = PhaseFeedback
	return Feedback{
		Question: q,
		Choice:   choice,
		Correct:  correct,
		Points:   points,
		Result:   result,
	}, nil
}

// End closes the session and records its summary. Ending twice is a no-op.
func (g *Game) End(ctx context.Context) Session {
	if !g.inSession() {
		return g.session
	}
	g.phase = PhaseEnded

	s := g.session
	g.deps.Log.Infow("session ended",
		"session_id", s.ID, "answered", s.Answered, "correct", s.Correct, "score", s.Score)
	g.emit(ctx, "session", func(r Recorder) error {
		return r.AppendSession(ctx, store.SessionEventData{
			SessionID:       s.ID,
			Action:          store.SessionEnd,
			Tier:            g.ctrl.Tier(),
			QuestionsServed: s.Answered,
			CorrectAnswers:  s.Correct,
			Score:           s.Score,
			DurationSecs:    int(g.deps.Now().Sub(s.StartedAt).Seconds()),
		})
	})
	return s
}

// Reset wipes the persisted progress, returns the controller to Easy and
// clears the session. Unlike Submit, a failed save is returned.
func (g *Game) Reset(ctx context.Context) error {
	from := g.ctrl.Tier()
	if g.inSession() {
		g.End(ctx)
	}

	rec, err := progress.Reset(ctx, g.deps.Progress, g.deps.Now())
	if err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	g.record = rec
	g.ctrl.Reset()
	g.session = Session{}
	g.current = questions.Question{}
	g.phase = PhaseIdle

	g.deps.Log.Infow("progress reset", "from", from)
	if from != difficulty.Easy {
		g.emit(ctx, "tier change", func(r Recorder) error {
			return r.AppendTierChange(ctx, store.TierChangeEventData{
				From:   from,
				To:     difficulty.Easy,
				Reason: store.ReasonReset,
			})
		})
	}
	return nil
}

// Stats returns a snapshot for display.
func (g *Game) Stats() Stats {
	return Stats{
		Phase:      g.phase,
		Difficulty: g.ctrl.Info(),
		Session:    g.session,
		Record:     g.record.Clone(),
	}
}

func (g *Game) inSession() bool {
	return g.phase == PhaseAsking || g.phase == PhaseFeedback
}

// emit sends an event to the recorder, if any, logging failures.
func (g *Game) emit(ctx context.Context, kind string, fn func(Recorder) error) {
	if g.deps.Events == nil {
		return
	}
	if err := fn(g.deps.Events); err != nil {
		g.deps.Log.Warnw("failed to record event", "kind", kind, "error", err)
	}
}
