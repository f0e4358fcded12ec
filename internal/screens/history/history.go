package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptiquiz/internal/router"
	"github.com/abhisek/adaptiquiz/internal/screen"
	"github.com/abhisek/adaptiquiz/internal/store"
	"github.com/abhisek/adaptiquiz/internal/ui/layout"
	"github.com/abhisek/adaptiquiz/internal/ui/theme"
)

// maxSessions bounds how many finished sessions are listed.
const maxSessions = 50

type historyLoadedMsg struct {
	Sessions []store.SessionEvent
	Changes  map[string][]store.TierChangeEvent // sessionID → tier changes
	Err      error
}

// HistoryScreen lists finished sessions and the tier changes within them.
type HistoryScreen struct {
	events   store.EventRepo
	sessions []store.SessionEvent
	changes  map[string][]store.TierChangeEvent
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(events store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		events:   events,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		return load(context.Background(), s.events)
	}
}

func load(ctx context.Context, events store.EventRepo) historyLoadedMsg {
	all, err := events.Sessions(ctx, store.QueryOpts{})
	if err != nil {
		return historyLoadedMsg{Err: err}
	}
	var ended []store.SessionEvent
	for _, e := range all {
		if e.Action == store.SessionEnd {
			ended = append(ended, e)
			if len(ended) == maxSessions {
				break
			}
		}
	}

	changes := make(map[string][]store.TierChangeEvent)
	tcs, err := events.TierChanges(ctx, store.QueryOpts{})
	if err != nil {
		return historyLoadedMsg{Sessions: ended, Changes: changes}
	}
	for _, c := range tcs {
		if c.SessionID != "" {
			changes[c.SessionID] = append(changes[c.SessionID], c)
		}
	}
	return historyLoadedMsg{Sessions: ended, Changes: changes}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Tier changes"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
			s.changes = msg.Changes
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No finished sessions yet. Start a quiz!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, sess := range s.sessions {
		var accuracy float64
		if sess.QuestionsServed > 0 {
			accuracy = float64(sess.CorrectAnswers) / float64(sess.QuestionsServed) * 100
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%s  %d:%02d  %d questions  %.0f%%  %d pts  ended on %s",
			prefix, sess.Timestamp.Local().Format("Jan 02 15:04"),
			sess.DurationSecs/60, sess.DurationSecs%60,
			sess.QuestionsServed, accuracy, sess.Score, sess.Tier.DisplayName())

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(s.renderChanges(sess.SessionID, width))
		}
	}

	return b.String()
}

func (s *HistoryScreen) renderChanges(sessionID string, width int) string {
	changes := s.changes[sessionID]
	if len(changes) == 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
				Render("    Tier held all session")) + "\n"
	}
	var b strings.Builder
	// Oldest first reads as a story.
	for i := len(changes) - 1; i >= 0; i-- {
		c := changes[i]
		arrow := "▲"
		if c.Reason == store.ReasonDemoted {
			arrow = "▼"
		}
		line := fmt.Sprintf("    %s %s → %s at %.0f%%",
			arrow, c.From.DisplayName(), c.To.DisplayName(), c.Accuracy*100)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TierColor(c.To)).Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}
