package components

import "charm.land/bubbles/v2/key"

// NavKeys are the bindings shared by the list-like components.
type NavKeys struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
}

// DefaultNavKeys binds arrows and vim keys for movement and Enter to select.
func DefaultNavKeys() NavKeys {
	return NavKeys{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "Up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "Down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "Select"),
		),
	}
}
