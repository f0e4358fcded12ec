// Package app hosts the Bubble Tea program: the root model frames the
// active screen with a header and footer and routes navigation.
package app

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/adaptiquiz/internal/game"
	"github.com/abhisek/adaptiquiz/internal/router"
	"github.com/abhisek/adaptiquiz/internal/screen"
	"github.com/abhisek/adaptiquiz/internal/screens/home"
	"github.com/abhisek/adaptiquiz/internal/screens/welcome"
	"github.com/abhisek/adaptiquiz/internal/store"
	"github.com/abhisek/adaptiquiz/internal/ui/layout"
)

// Options are the dependencies of the TUI.
type Options struct {
	Game   *game.Game
	Events store.EventRepo // optional; enables History
	Log    *zap.SugaredLogger
	// Splash shows the welcome animation before the menu.
	Splash bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	game   *game.Game
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	log := opts.Log
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	newHome := func() screen.Screen {
		return home.New(opts.Game, opts.Events, log)
	}
	root := newHome()
	if opts.Splash {
		root = welcome.New(newHome, opts.Game.Tier())
	}
	return AppModel{
		router: router.New(root),
		game:   opts.Game,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			if m.game.Phase() == game.PhaseAsking || m.game.Phase() == game.PhaseFeedback {
				m.game.End(context.Background())
			}
			return m, tea.Quit
		case "esc":
			if bh, ok := m.router.Active().(screen.BackHandler); ok && bh.CapturesBack() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.frame())
	v.AltScreen = true
	return v
}

// frame renders header, active screen and footer for the current size.
func (m AppModel) frame() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	st := m.game.Stats()
	header := layout.RenderHeader(title, layout.HeaderStatus{
		Tier:  st.Difficulty.Tier,
		Score: st.Record.TotalScore,
	}, m.width)

	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if kp, ok := active.(screen.KeyHintProvider); ok {
		return append(kp.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	if opts.Game == nil {
		return errors.New("app: game is required")
	}
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
