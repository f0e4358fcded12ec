package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptiquiz/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent answers and tier changes from the event log",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		session, _ := cmd.Flags().GetString("session")

		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		opts := store.QueryOpts{Limit: limit, SessionID: session}
		answers, err := e.events().RecentAnswers(ctx, opts)
		if err != nil {
			return fmt.Errorf("query answers: %w", err)
		}
		changes, err := e.events().TierChanges(ctx, opts)
		if err != nil {
			return fmt.Errorf("query tier changes: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(answers) == 0 && len(changes) == 0 {
			fmt.Fprintln(out, "No history yet.")
			return nil
		}

		fmt.Fprintln(out, "Recent answers")
		fmt.Fprintln(out, strings.Repeat("─", 90))
		fmt.Fprintf(out, "%-6s  %-16s  %-6s  %-2s  %4s  %s\n", "Seq", "Time", "Tier", "", "Pts", "Question")
		for _, a := range answers {
			mark := "✓"
			if !a.Correct {
				mark = "✗"
			}
			fmt.Fprintf(out, "%-6d  %-16s  %-6s  %-2s  %4d  %s\n",
				a.Sequence, a.Timestamp.Local().Format("2006-01-02 15:04"),
				a.Tier, mark, a.Points, truncate(a.QuestionText, 50))
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, "Tier changes")
		fmt.Fprintln(out, strings.Repeat("─", 90))
		if len(changes) == 0 {
			fmt.Fprintln(out, "none")
		}
		for _, c := range changes {
			fmt.Fprintf(out, "%-6d  %-16s  %-8s  %s → %s  (%.0f%% of recent answers)\n",
				c.Sequence, c.Timestamp.Local().Format("2006-01-02 15:04"),
				c.Reason, c.From.DisplayName(), c.To.DisplayName(), c.Accuracy*100)
		}
		return nil
	},
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of events of each kind to show")
	historyCmd.Flags().String("session", "", "Only show events of this session")
}
