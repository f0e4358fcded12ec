package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestChoice() MultiChoice {
	return NewMultiChoice("Capital of France?", []string{"Berlin", "Paris", "Rome", "Madrid"})
}

func chosen(t *testing.T, cmd tea.Cmd) int {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(ChoiceMadeMsg)
	require.True(t, ok)
	return msg.Index
}

func TestMultiChoice_ArrowsAndEnter(t *testing.T) {
	m := newTestChoice()
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, 1, m.Selected)

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Equal(t, 1, chosen(t, cmd))
}

func TestMultiChoice_SelectionStaysInBounds(t *testing.T) {
	m := newTestChoice()
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, 0, m.Selected)

	for i := 0; i < 10; i++ {
		m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	assert.Equal(t, 3, m.Selected)
}

func TestMultiChoice_NumberKeys(t *testing.T) {
	m := newTestChoice()
	m, cmd := m.Update(tea.KeyPressMsg{Code: '3', Text: "3"})
	assert.Equal(t, 2, chosen(t, cmd))
	assert.Equal(t, 2, m.Selected)

	_, cmd = m.Update(tea.KeyPressMsg{Code: '7', Text: "7"})
	assert.Nil(t, cmd, "out-of-range number is ignored")
}

func TestMultiChoice_RevealFreezesInput(t *testing.T) {
	m := newTestChoice()
	m.Reveal(0, 1)
	assert.True(t, m.Revealed())

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, cmd)

	view := m.View()
	assert.Contains(t, view, "2)  Paris  ✓")
	assert.Contains(t, view, "1)  Berlin  ✗")
}

func TestMultiChoice_ViewMarksSelection(t *testing.T) {
	view := newTestChoice().View()
	assert.Contains(t, view, "Capital of France?")
	assert.Contains(t, view, "▸ 1)  Berlin")
	assert.Contains(t, view, "4)  Madrid")
}
