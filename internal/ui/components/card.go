package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptiquiz/internal/ui/theme"
)

// ContentWidth returns the inner width used for stacked cards so they
// line up.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 70 {
		w = 70
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Card wraps content in a rounded-border box at the given content width.
func Card(content string, cw int) string {
	return theme.Card.
		Width(cw).
		Render(content)
}

// TitledCard is a Card with a bold heading line.
func TitledCard(title, content string, cw int) string {
	heading := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(title)
	return Card(heading+"\n\n"+content, cw)
}
