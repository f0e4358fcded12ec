package summary

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/adaptiquiz/internal/difficulty"
	"github.com/abhisek/adaptiquiz/internal/game"
	"github.com/abhisek/adaptiquiz/internal/questions"
	"github.com/abhisek/adaptiquiz/internal/router"
)

func testResult() Result {
	return Result{
		Session:  game.Session{ID: "s1", Answered: 7, Correct: 6, Score: 70},
		Duration: 3*time.Minute + 5*time.Second,
		Tier:     difficulty.Medium,
		Changes: []difficulty.Result{
			{Change: difficulty.Promoted, From: difficulty.Easy, Tier: difficulty.Medium, Accuracy: 1},
		},
	}
}

func contains(t *testing.T, view, want string) {
	t.Helper()
	if !strings.Contains(view, want) {
		t.Errorf("view does not contain %q:\n%s", want, view)
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testResult())
	if s.Title() != "Session Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Session Summary")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	view := New(testResult()).View(100, 40)
	contains(t, view, "Session over")
	contains(t, view, "Questions answered  7")
	contains(t, view, "Score               70")
	contains(t, view, "3:05")
	contains(t, view, "Easy → Medium at 100%")
}

func TestSummaryScreen_NoQuestionsError(t *testing.T) {
	r := testResult()
	r.Err = fmt.Errorf("%w for tier medium", questions.ErrNoQuestionsAvailable)
	view := New(r).View(100, 40)
	contains(t, view, "No questions available for the Medium tier")
}

func TestSummaryScreen_Navigation_Enter(t *testing.T) {
	s := New(testResult())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter (pop)")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg on Enter")
	}
}

func TestSummaryScreen_Navigation_Esc(t *testing.T) {
	s := New(testResult())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Error("expected a command on Esc (pop)")
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	s := New(testResult())
	hints := s.KeyHints()
	if len(hints) != 2 {
		t.Errorf("KeyHints length = %d, want 2", len(hints))
	}
}
