// Package confirm is a yes/no dialog screen that runs an action on yes and
// pops itself once the action succeeds.
package confirm

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptiquiz/internal/router"
	"github.com/abhisek/adaptiquiz/internal/screen"
	"github.com/abhisek/adaptiquiz/internal/ui/components"
	"github.com/abhisek/adaptiquiz/internal/ui/layout"
	"github.com/abhisek/adaptiquiz/internal/ui/theme"
)

type keyMap struct {
	Yes key.Binding
	No  key.Binding
}

// ConfirmScreen asks a yes/no question.
type ConfirmScreen struct {
	title  string
	prompt string
	action func() error
	keys   keyMap
	err    error
}

var (
	_ screen.Screen          = (*ConfirmScreen)(nil)
	_ screen.KeyHintProvider = (*ConfirmScreen)(nil)
)

// New creates a dialog that runs action when the user answers yes.
func New(title, prompt string, action func() error) *ConfirmScreen {
	return &ConfirmScreen{
		title:  title,
		prompt: prompt,
		action: action,
		keys: keyMap{
			Yes: key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("Y", "Yes")),
			No:  key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("N", "No")),
		},
	}
}

func (c *ConfirmScreen) Init() tea.Cmd { return nil }

func (c *ConfirmScreen) Title() string { return c.title }

func (c *ConfirmScreen) KeyHints() []layout.KeyHint {
	return layout.HintsFromBindings(c.keys.Yes, c.keys.No)
}

func (c *ConfirmScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}
	switch {
	case key.Matches(kmsg, c.keys.Yes):
		if err := c.action(); err != nil {
			c.err = err
			return c, nil
		}
		return c, pop
	case key.Matches(kmsg, c.keys.No):
		return c, pop
	}
	return c, nil
}

func pop() tea.Msg { return router.PopScreenMsg{} }

func (c *ConfirmScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	body := theme.Body.Render(c.prompt) + "\n\n" +
		lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("[Y]es    [N]o")
	if c.err != nil {
		body += "\n\n" + theme.Incorrect.Render("Failed: "+c.err.Error())
	}
	return layout.Center(components.TitledCard(c.title, body, cw), width, height)
}
