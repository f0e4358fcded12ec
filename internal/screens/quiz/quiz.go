// Package quiz is the screen that plays a session: it shows the current
// question, judges the answer through the game and reports tier changes.
package quiz

import (
	"context"
	"errors"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/adaptiquiz/internal/difficulty"
	"github.com/abhisek/adaptiquiz/internal/game"
	"github.com/abhisek/adaptiquiz/internal/questions"
	"github.com/abhisek/adaptiquiz/internal/router"
	"github.com/abhisek/adaptiquiz/internal/screen"
	"github.com/abhisek/adaptiquiz/internal/screens/summary"
	"github.com/abhisek/adaptiquiz/internal/ui/components"
	"github.com/abhisek/adaptiquiz/internal/ui/layout"
)

// QuizScreen implements screen.Screen for an active quiz session.
type QuizScreen struct {
	game     *game.Game
	log      *zap.SugaredLogger
	keys     keyMap
	mc       components.MultiChoice
	feedback *game.Feedback
	changes  []difficulty.Result
}

var (
	_ screen.Screen          = (*QuizScreen)(nil)
	_ screen.KeyHintProvider = (*QuizScreen)(nil)
	_ screen.BackHandler     = (*QuizScreen)(nil)
)

// New creates a QuizScreen playing g.
func New(g *game.Game, log *zap.SugaredLogger) *QuizScreen {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &QuizScreen{game: g, log: log, keys: newKeyMap()}
}

// Init starts a new session and shows its first question.
func (s *QuizScreen) Init() tea.Cmd {
	q, err := s.game.Start(context.Background())
	return s.show(q, err)
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

// CapturesBack keeps Esc for ending the session while one is running.
func (s *QuizScreen) CapturesBack() bool {
	return s.inSession()
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch s.game.Phase() {
	case game.PhaseAsking:
		return append(layout.HintsFromBindings(s.keys.Pick, s.mc.Keys.Up, s.mc.Keys.Down, s.mc.Keys.Select),
			layout.HintsFromBindings(s.keys.Quit)...)
	case game.PhaseFeedback:
		return layout.HintsFromBindings(s.keys.Next, s.keys.Quit)
	default:
		return nil
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case components.ChoiceMadeMsg:
		s.submit(msg.Index)
		return s, nil
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if !s.inSession() {
		return s, nil
	}

	if key.Matches(msg, s.keys.Quit) {
		return s, s.finish(nil)
	}

	switch s.game.Phase() {
	case game.PhaseAsking:
		var cmd tea.Cmd
		s.mc, cmd = s.mc.Update(msg)
		return s, cmd
	case game.PhaseFeedback:
		if key.Matches(msg, s.keys.Next) {
			q, err := s.game.NextQuestion(context.Background())
			return s, s.show(q, err)
		}
	}
	return s, nil
}

func (s *QuizScreen) submit(choice int) {
	fb, err := s.game.Submit(context.Background(), choice)
	if err != nil {
		// A stale choice after the phase moved on; nothing to judge.
		s.log.Debugw("ignored answer", "choice", choice, "error", err)
		return
	}
	s.mc.Reveal(choice, fb.Question.CorrectIndex)
	s.feedback = &fb
	if fb.Result.Changed() {
		s.changes = append(s.changes, fb.Result)
	}
}

// show displays q, or hands over to the summary when there is nothing
// left to ask.
func (s *QuizScreen) show(q questions.Question, err error) tea.Cmd {
	s.feedback = nil
	if err != nil {
		if !errors.Is(err, questions.ErrNoQuestionsAvailable) {
			s.log.Errorw("could not serve a question", "error", err)
		}
		return s.finish(err)
	}
	s.mc = components.NewMultiChoice(q.Prompt, q.Options)
	return nil
}

// finish closes the session and replaces this screen with its summary.
func (s *QuizScreen) finish(cause error) tea.Cmd {
	sess := s.game.End(context.Background())
	s.feedback = nil
	res := summary.Result{
		Session:  sess,
		Duration: time.Since(sess.StartedAt),
		Tier:     s.game.Tier(),
		Changes:  s.changes,
		Err:      cause,
	}
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(res)}
	}
}

func (s *QuizScreen) inSession() bool {
	p := s.game.Phase()
	return p == game.PhaseAsking || p == game.PhaseFeedback
}
