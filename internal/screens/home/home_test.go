package home

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
	"github.com/abhisek/adaptiquiz/internal/screens/confirm"
	"github.com/abhisek/adaptiquiz/internal/screens/quiz"
	"github.com/abhisek/adaptiquiz/internal/screens/stats"
)

type easyOnly struct{}

func (easyOnly) RandomQuestion(t difficulty.Tier) (questions.Question, error) {
	if t != difficulty.Easy {
		return questions.Question{}, fmt.Errorf("%w for tier %s", questions.ErrNoQuestionsAvailable, t)
	}
	return questions.Question{ID: "q", Prompt: "1 + 1?", Options: []string{"1", "2"}, CorrectIndex: 1, Tier: t}, nil
}

func newTestHome(t *testing.T) (*HomeScreen, *game.Game) {
	t.Helper()
	ps := progress.NewFileStore(filepath.Join(t.TempDir(), progress.FileName), logging.Nop())
	g, err := game.New(context.Background(), game.Deps{Questions: easyOnly{}, Progress: ps})
	require.NoError(t, err)
	return New(g, nil, logging.Nop()), g
}

func pushed(t *testing.T, cmd tea.Cmd) any {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	return msg.Screen
}

func down(h *HomeScreen, n int) {
	for i := 0; i < n; i++ {
		h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
}

func TestHome_StartPushesQuiz(t *testing.T) {
	h, _ := newTestHome(t)
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.IsType(t, &quiz.QuizScreen{}, pushed(t, cmd))
}

func TestHome_StatsPushesStats(t *testing.T) {
	h, _ := newTestHome(t)
	down(h, 1)
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.IsType(t, &stats.StatsScreen{}, pushed(t, cmd))
}

func TestHome_HistoryDisabledWithoutEvents(t *testing.T) {
	h, _ := newTestHome(t)
	// History is skipped, so two steps down land on Reset.
	down(h, 2)
	assert.Equal(t, LabelReset, h.menu.Items[h.menu.Selected].Label)

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.IsType(t, &confirm.ConfirmScreen{}, pushed(t, cmd))
}

func TestHome_RefreshShowsProgress(t *testing.T) {
	h, g := newTestHome(t)
	assert.Contains(t, h.View(100, 40), "No questions answered yet.")

	_, err := g.Start(context.Background())
	require.NoError(t, err)
	_, err = g.Submit(context.Background(), 1)
	require.NoError(t, err)
	g.End(context.Background())

	assert.Contains(t, h.View(100, 40), "No questions answered yet.", "stale until refreshed")
	h.Refresh()
	view := h.View(100, 40)
	assert.Contains(t, view, "1 answered")
	assert.Contains(t, view, "10 pts")
}

func TestHome_ResetAction(t *testing.T) {
	h, g := newTestHome(t)
	_, err := g.Start(context.Background())
	require.NoError(t, err)
	_, err = g.Submit(context.Background(), 1)
	require.NoError(t, err)

	require.NoError(t, h.reset())
	assert.Zero(t, g.Stats().Record.QuestionsAnswered)
	assert.Equal(t, game.PhaseIdle, g.Phase())
}
