package confirm

import (
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/adaptiquiz/internal/router"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestConfirm_YesRunsActionAndPops(t *testing.T) {
	ran := false
	c := New("Reset", "Sure?", func() error { ran = true; return nil })

	_, cmd := c.Update(keyPress('y'))
	assert.True(t, ran)
	require.NotNil(t, cmd)
	assert.Equal(t, router.PopScreenMsg{}, cmd())
}

func TestConfirm_NoPopsWithoutAction(t *testing.T) {
	ran := false
	c := New("Reset", "Sure?", func() error { ran = true; return nil })

	_, cmd := c.Update(keyPress('n'))
	assert.False(t, ran)
	require.NotNil(t, cmd)
	assert.Equal(t, router.PopScreenMsg{}, cmd())
}

func TestConfirm_ActionErrorStays(t *testing.T) {
	c := New("Reset", "Sure?", func() error { return errors.New("read-only database") })

	_, cmd := c.Update(keyPress('y'))
	assert.Nil(t, cmd)
	assert.Contains(t, c.View(100, 30), "read-only database")
}

func TestConfirm_IgnoresOtherKeys(t *testing.T) {
	c := New("Reset", "Sure?", func() error { t.Fatal("action must not run"); return nil })
	_, cmd := c.Update(keyPress('x'))
	assert.Nil(t, cmd)
}
