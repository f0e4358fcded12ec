package quiz

import "charm.land/bubbles/v2/key"

type keyMap struct {
	Next key.Binding
	Quit key.Binding
	Pick key.Binding // help only; MultiChoice reads the digits
}

func newKeyMap() keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys("enter", "space", "n"),
			key.WithHelp("Enter", "Next question"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "q"),
			key.WithHelp("Esc", "End quiz"),
		),
		Pick: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6"),
			key.WithHelp("1-4", "Answer"),
		),
	}
}
