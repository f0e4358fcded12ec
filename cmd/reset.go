package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptiquiz/internal/difficulty"
	"github.com/abhisek/adaptiquiz/internal/questions"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase saved progress and start again from Easy",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			fmt.Fprint(cmd.OutOrStdout(), "Reset all progress? [y/N] ")
			line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if a := strings.ToLower(strings.TrimSpace(line)); a != "y" && a != "yes" {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}
		}

		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		// The game records the reset in the event log; no questions are served.
		g, err := e.game(cmd.Context(), noQuestions{})
		if err != nil {
			return err
		}
		if err := g.Reset(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Progress reset. You are back on Easy.")
		return nil
	},
}

type noQuestions struct{}

func (noQuestions) RandomQuestion(t difficulty.Tier) (questions.Question, error) {
	return questions.Question{}, fmt.Errorf("%w for tier %s", questions.ErrNoQuestionsAvailable, t)
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
