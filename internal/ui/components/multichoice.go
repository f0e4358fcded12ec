package components

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptiquiz/internal/ui/theme"
)

// ChoiceMadeMsg is emitted when an option is submitted.
type ChoiceMadeMsg struct {
	Index int
}

// MultiChoice is a multiple-choice selector component. It only collects
// the choice; judging it is left to the caller, which reveals the result
// with Reveal.
type MultiChoice struct {
	Question     string
	Options      []string
	Selected     int
	Keys         NavKeys
	revealed     bool
	chosen       int
	correctIndex int
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(question string, options []string) MultiChoice {
	return MultiChoice{
		Question: question,
		Options:  options,
		Keys:     DefaultNavKeys(),
		chosen:   -1,
	}
}

// Update handles keyboard navigation and selection. Number keys pick an
// option directly.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.revealed {
		return m, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(kmsg, m.Keys.Up):
		if m.Selected > 0 {
			m.Selected--
		}
	case key.Matches(kmsg, m.Keys.Down):
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case key.Matches(kmsg, m.Keys.Select):
		return m, choose(m.Selected)
	default:
		if n, err := strconv.Atoi(kmsg.String()); err == nil && n >= 1 && n <= len(m.Options) {
			m.Selected = n - 1
			return m, choose(m.Selected)
		}
	}
	return m, nil
}

func choose(i int) tea.Cmd {
	return func() tea.Msg { return ChoiceMadeMsg{Index: i} }
}

// Reveal marks the chosen and correct options for display and freezes input.
func (m *MultiChoice) Reveal(chosen, correct int) {
	m.revealed = true
	m.chosen = chosen
	m.correctIndex = correct
}

// Revealed reports whether the answer has been shown.
func (m MultiChoice) Revealed() bool {
	return m.revealed
}

// View renders the question and its options.
func (m MultiChoice) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.Question))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.revealed {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)

		var style lipgloss.Style
		switch {
		case m.revealed && i == m.correctIndex:
			style = theme.Correct
			line += "  ✓"
		case m.revealed && i == m.chosen:
			style = theme.Incorrect
			line += "  ✗"
		case m.revealed:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Selected:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
