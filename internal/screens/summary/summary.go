// Package summary shows the result of a finished quiz session.
package summary

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptiquiz/internal/difficulty"
	"github.com/abhisek/adaptiquiz/internal/game"
	"github.com/abhisek/adaptiquiz/internal/questions"
	"github.com/abhisek/adaptiquiz/internal/router"
	"github.com/abhisek/adaptiquiz/internal/screen"
	"github.com/abhisek/adaptiquiz/internal/ui/components"
	"github.com/abhisek/adaptiquiz/internal/ui/layout"
	"github.com/abhisek/adaptiquiz/internal/ui/theme"
)

// Result is everything the summary needs about the closed session.
type Result struct {
	Session  game.Session
	Duration time.Duration
	// Tier is the tier the player ended on.
	Tier    difficulty.Tier
	Changes []difficulty.Result
	// Err is why the session stopped early, nil when the player ended it.
	Err error
}

// SummaryScreen displays the session summary.
type SummaryScreen struct {
	result Result
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(r Result) *SummaryScreen {
	return &SummaryScreen{result: r}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	r := s.result
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Session over"))

	if r.Err != nil {
		sections = append(sections, renderError(r.Err, r.Tier, cw))
	}

	mins := int(r.Duration.Minutes())
	secs := int(r.Duration.Seconds()) % 60
	sess := r.Session
	body := fmt.Sprintf("Questions answered  %d\nCorrect             %d (%.0f%%)\nScore               %d\nTier reached        %s\nDuration            %d:%02d",
		sess.Answered, sess.Correct, sess.Accuracy()*100, sess.Score, r.Tier.DisplayName(), mins, secs)
	sections = append(sections, components.TitledCard("Results", body, cw))

	if len(r.Changes) > 0 {
		var b strings.Builder
		for i, c := range r.Changes {
			if i > 0 {
				b.WriteString("\n")
			}
			arrow, style := "▲", lipgloss.NewStyle().Foreground(theme.Success)
			if c.Change == difficulty.Demoted {
				arrow, style = "▼", lipgloss.NewStyle().Foreground(theme.Warning)
			}
			b.WriteString(style.Render(fmt.Sprintf("%s %s → %s at %.0f%%",
				arrow, c.From.DisplayName(), c.Tier.DisplayName(), c.Accuracy*100)))
		}
		sections = append(sections, components.TitledCard("Tier changes", b.String(), cw))
	}

	return layout.Center(strings.Join(sections, "\n"), width, height)
}

func renderError(err error, tier difficulty.Tier, cw int) string {
	msg := "Something went wrong: " + err.Error()
	if errors.Is(err, questions.ErrNoQuestionsAvailable) {
		msg = fmt.Sprintf("No questions available for the %s tier.\nAdd some with `adaptiquiz questions add` or `questions generate`.",
			tier.DisplayName())
	}
	return lipgloss.NewStyle().
		Width(cw).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Error).
		Foreground(theme.Error).
		Padding(1, 2).
		Render(msg)
}
