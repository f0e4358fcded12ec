package app

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/adaptiquiz/internal/difficulty"
	"github.com/abhisek/adaptiquiz/internal/game"
	"github.com/abhisek/adaptiquiz/internal/logging"
	"github.com/abhisek/adaptiquiz/internal/progress"
	"github.com/abhisek/adaptiquiz/internal/questions"
	"github.com/abhisek/adaptiquiz/internal/router"
	"github.com/abhisek/adaptiquiz/internal/screens/quiz"
)

type oneQuestion struct{}

func (oneQuestion) RandomQuestion(t difficulty.Tier) (questions.Question, error) {
	if t != difficulty.Easy {
		return questions.Question{}, fmt.Errorf("%w for tier %s", questions.ErrNoQuestionsAvailable, t)
	}
	return questions.Question{
		ID: "q1", Prompt: "2 + 2?", Options: []string{"3", "4"}, CorrectIndex: 1, Tier: t,
	}, nil
}

func newTestModel(t *testing.T) (AppModel, *game.Game) {
	t.Helper()
	ps := progress.NewFileStore(filepath.Join(t.TempDir(), progress.FileName), logging.Nop())
	g, err := game.New(context.Background(), game.Deps{Questions: oneQuestion{}, Progress: ps})
	require.NoError(t, err)
	m := newAppModel(Options{Game: g})
	m.width, m.height = 100, 40
	return m, g
}

func TestApp_EscOnRootDoesNothing(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Nil(t, cmd)
}

func TestApp_EscIsLeftToRunningQuiz(t *testing.T) {
	m, g := newTestModel(t)
	m.router.Push(quiz.New(g, nil))
	require.Equal(t, game.PhaseAsking, g.Phase())

	next, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	m = next.(AppModel)
	require.NotNil(t, cmd)
	assert.Equal(t, game.PhaseEnded, g.Phase(), "the quiz screen ended the session")

	// The quiz hands over to its summary without growing the stack.
	next, _ = m.Update(cmd())
	m = next.(AppModel)
	assert.Equal(t, 2, m.router.Depth())
	assert.Equal(t, "Session Summary", m.router.Active().Title())

	// With the session over, esc goes back to the menu.
	_, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.Equal(t, router.PopScreenMsg{}, cmd())
}

func TestApp_ViewShowsHeaderAndMenu(t *testing.T) {
	m, _ := newTestModel(t)
	frame := m.frame()
	assert.Contains(t, frame, "AdaptiQuiz")
	assert.Contains(t, frame, "Start Quiz")
	assert.Contains(t, frame, "Reset Progress")
	assert.Contains(t, frame, "Easy")
}

func TestApp_TooSmall(t *testing.T) {
	m, _ := newTestModel(t)
	m.width, m.height = 40, 10
	assert.Contains(t, m.frame(), "Terminal too small")
}

func TestApp_CtrlCEndsRunningSession(t *testing.T) {
	m, g := newTestModel(t)
	m.router.Push(quiz.New(g, nil))

	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	assert.Equal(t, game.PhaseEnded, g.Phase())
}

func TestApp_SplashHandsOverToMenu(t *testing.T) {
	ps := progress.NewFileStore(filepath.Join(t.TempDir(), progress.FileName), logging.Nop())
	g, err := game.New(context.Background(), game.Deps{Questions: oneQuestion{}, Progress: ps})
	require.NoError(t, err)
	m := newAppModel(Options{Game: g, Splash: true})
	m.width, m.height = 100, 40

	assert.NotNil(t, m.Init(), "the splash starts its animation")
	assert.Empty(t, m.router.Active().Title())

	next, cmd := m.Update(tea.KeyPressMsg{Code: ' ', Text: " "})
	require.NotNil(t, cmd)
	m = next.(AppModel)
	next, _ = m.Update(cmd())
	m = next.(AppModel)

	assert.Equal(t, 1, m.router.Depth())
	assert.Contains(t, m.frame(), "Start Quiz")
}
