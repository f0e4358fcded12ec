// Package stats shows the persisted progress record.
package stats

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptiquiz/internal/difficulty"
	"github.com/abhisek/adaptiquiz/internal/game"
	"github.com/abhisek/adaptiquiz/internal/router"
	"github.com/abhisek/adaptiquiz/internal/screen"
	"github.com/abhisek/adaptiquiz/internal/ui/components"
	"github.com/abhisek/adaptiquiz/internal/ui/layout"
	"github.com/abhisek/adaptiquiz/internal/ui/theme"
)

// StatsScreen renders the overall and per-tier statistics.
type StatsScreen struct {
	stats game.Stats
}

var _ screen.Screen = (*StatsScreen)(nil)

// New snapshots g's statistics.
func New(g *game.Game) *StatsScreen {
	return &StatsScreen{stats: g.Stats()}
}

func (s *StatsScreen) Init() tea.Cmd { return nil }

func (s *StatsScreen) Title() string { return "Statistics" }

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && (kmsg.String() == "enter" || kmsg.String() == "q") {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *StatsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	rec := s.stats.Record
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	row := func(label, value string) string {
		return dim.Render(fmt.Sprintf("%-18s", label)) + theme.Body.Render(value)
	}
	lastPlayed := "never"
	if rec.QuestionsAnswered > 0 {
		lastPlayed = rec.UpdatedAt.Local().Format("Jan 02, 2006 15:04")
	}
	overall := strings.Join([]string{
		row("Current tier", rec.CurrentTier.DisplayName()),
		row("Questions", fmt.Sprint(rec.QuestionsAnswered)),
		row("Correct", fmt.Sprintf("%d (%.1f%%)", rec.CorrectAnswers, rec.Accuracy()*100)),
		row("Best accuracy", fmt.Sprintf("%.1f%%", rec.BestAccuracy)),
		row("Total score", fmt.Sprint(rec.TotalScore)),
		row("Sessions", fmt.Sprint(rec.SessionsPlayed)),
		row("Last played", lastPlayed),
	}, "\n")

	bars := make([]string, 0, len(difficulty.AllTiers))
	for _, t := range difficulty.AllTiers {
		ts := rec.Tier(t)
		bar := components.NewProgressBar(fmt.Sprintf("%-6s", t.DisplayName()), ts.Accuracy(), true, cw-16)
		bar.Color = theme.TierColor(t)
		bars = append(bars, bar.View()+dim.Render(fmt.Sprintf("  %d/%d", ts.Correct, ts.Answered)))
	}

	info := s.stats.Difficulty
	window := fmt.Sprintf("%d of %d recent answers, %.0f%% correct",
		info.WindowFill, info.WindowCapacity, info.Accuracy*100)

	return layout.Center(strings.Join([]string{
		components.TitledCard("Overall", overall, cw),
		components.TitledCard("Accuracy by tier", strings.Join(bars, "\n"), cw),
		components.TitledCard("Current window", dim.Render(window), cw),
	}, "\n"), width, height)
}
