package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptiquiz/internal/difficulty"
	"github.com/abhisek/adaptiquiz/internal/game"
	"github.com/abhisek/adaptiquiz/internal/ui/components"
	"github.com/abhisek/adaptiquiz/internal/ui/layout"
	"github.com/abhisek/adaptiquiz/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	if !s.inSession() {
		return ""
	}

	sections := []string{renderStats(s.game.Stats(), cw)}
	if s.feedback != nil && s.feedback.Result.Changed() {
		sections = append(sections, renderTierBanner(s.feedback.Result, cw))
	}
	sections = append(sections, components.Card(s.mc.View(), cw))
	if s.feedback != nil {
		sections = append(sections, renderFeedback(*s.feedback, cw))
	}
	return layout.Center(strings.Join(sections, "\n"), width, height)
}

// renderStats is the panel above the question: tier, the rolling window
// and the running session score.
func renderStats(st game.Stats, cw int) string {
	info := st.Difficulty
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	window := strings.Repeat("●", info.WindowFill) +
		strings.Repeat("○", info.WindowCapacity-info.WindowFill)

	line1 := fmt.Sprintf("%s  %s %s  %s",
		theme.TierBadge(info.Tier),
		dim.Render("window"),
		lipgloss.NewStyle().Foreground(theme.Secondary).Render(window),
		dim.Render(fmt.Sprintf("%.0f%% recent", info.Accuracy*100)),
	)
	line2 := fmt.Sprintf("%s  %s  %s",
		dim.Render(fmt.Sprintf("answered %d", st.Session.Answered)),
		dim.Render(fmt.Sprintf("correct %d (%.0f%%)", st.Session.Correct, st.Session.Accuracy()*100)),
		lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(fmt.Sprintf("score %d", st.Session.Score)),
	)
	return components.Card(line1+"\n"+line2, cw)
}

func renderTierBanner(r difficulty.Result, cw int) string {
	text := fmt.Sprintf("▲ Level up! Now playing %s questions", r.Tier.DisplayName())
	color := theme.Success
	if r.Change == difficulty.Demoted {
		text = fmt.Sprintf("▼ Stepping down to %s questions", r.Tier.DisplayName())
		color = theme.Warning
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(theme.BgDark).
		Background(color).
		Render(text)
}

func renderFeedback(fb game.Feedback, cw int) string {
	var b strings.Builder
	if fb.Correct {
		b.WriteString(theme.Correct.Render(fmt.Sprintf("Correct! +%d points", fb.Points)))
	} else {
		b.WriteString(theme.Incorrect.Render("Not quite."))
		b.WriteString(" ")
		b.WriteString(theme.Body.Render("The answer is " + fb.Question.CorrectAnswer() + "."))
	}
	if fb.Question.Explanation != "" {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render(fb.Question.Explanation))
	}
	return components.Card(b.String(), cw)
}
