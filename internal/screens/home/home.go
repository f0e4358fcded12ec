package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/adaptiquiz/internal/game"
	"github.com/abhisek/adaptiquiz/internal/router"
	"github.com/abhisek/adaptiquiz/internal/screen"
	"github.com/abhisek/adaptiquiz/internal/screens/confirm"
	"github.com/abhisek/adaptiquiz/internal/screens/history"
	"github.com/abhisek/adaptiquiz/internal/screens/quiz"
	"github.com/abhisek/adaptiquiz/internal/screens/stats"
	"github.com/abhisek/adaptiquiz/internal/store"
	"github.com/abhisek/adaptiquiz/internal/ui/components"
	"github.com/abhisek/adaptiquiz/internal/ui/layout"
	"github.com/abhisek/adaptiquiz/internal/ui/theme"
)

// Menu labels, in display order.
const (
	LabelStart   = "Start Quiz"
	LabelStats   = "Stats"
	LabelHistory = "History"
	LabelReset   = "Reset Progress"
	LabelExit    = "Exit"
)

// HomeScreen is the main menu.
type HomeScreen struct {
	game   *game.Game
	events store.EventRepo
	log    *zap.SugaredLogger
	menu   components.Menu
	status game.Stats
}

var (
	_ screen.Screen    = (*HomeScreen)(nil)
	_ screen.Refresher = (*HomeScreen)(nil)
)

// New creates the home screen. events may be nil, which disables History.
func New(g *game.Game, events store.EventRepo, log *zap.SugaredLogger) *HomeScreen {
	h := &HomeScreen{game: g, events: events, log: log}

	items := []components.MenuItem{
		{Label: LabelStart, Action: func() tea.Cmd {
			return push(quiz.New(g, log))
		}},
		{Label: LabelStats, Action: func() tea.Cmd {
			return push(stats.New(g))
		}},
		{Label: LabelHistory, Disabled: events == nil, Action: func() tea.Cmd {
			return push(history.New(events))
		}},
		{Label: LabelReset, Action: func() tea.Cmd {
			return push(confirm.New(
				"Reset Progress",
				"This erases your score, accuracy and tier.\nStart again from Easy?",
				h.reset,
			))
		}},
		{Label: LabelExit, Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	h.menu = components.NewMenu(items)
	h.status = g.Stats()
	return h
}

func push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

func (h *HomeScreen) reset() error {
	return h.game.Reset(context.Background())
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

// Refresh reloads the summary after returning from another screen.
func (h *HomeScreen) Refresh() tea.Cmd {
	h.status = h.game.Stats()
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	title := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(
		theme.Title.Render("A D A P T I Q U I Z") + "\n" +
			theme.Subtitle.Render("questions that keep up with you"))

	sections := []string{
		title,
		components.Card(h.renderSummary(), cw),
		components.Card(h.menu.View(), cw),
	}
	return layout.Center(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) renderSummary() string {
	rec := h.status.Record
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	if rec.QuestionsAnswered == 0 {
		return theme.TierBadge(h.status.Difficulty.Tier) + "  " + dim.Render("No questions answered yet.")
	}
	return fmt.Sprintf("%s  %s  %s  %s",
		theme.TierBadge(h.status.Difficulty.Tier),
		dim.Render(fmt.Sprintf("%d answered", rec.QuestionsAnswered)),
		dim.Render(fmt.Sprintf("%.0f%% accuracy", rec.Accuracy()*100)),
		lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(fmt.Sprintf("%d pts", rec.TotalScore)),
	)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
