package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptiquiz/internal/difficulty"
	"github.com/abhisek/adaptiquiz/internal/progress"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the saved progress record",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		rec, err := e.progress.Load(cmd.Context())
		if err != nil {
			return fmt.Errorf("load progress: %w", err)
		}

		out := cmd.OutOrStdout()
		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(rec)
		}
		printStats(out, rec)
		return nil
	},
}

func printStats(w io.Writer, rec *progress.Record) {
	fmt.Fprintf(w, "Current tier:   %s\n", rec.CurrentTier.DisplayName())
	fmt.Fprintf(w, "Questions:      %d\n", rec.QuestionsAnswered)
	fmt.Fprintf(w, "Correct:        %d (%.1f%%)\n", rec.CorrectAnswers, rec.Accuracy()*100)
	fmt.Fprintf(w, "Best accuracy:  %.1f%%\n", rec.BestAccuracy)
	fmt.Fprintf(w, "Total score:    %d\n", rec.TotalScore)
	fmt.Fprintf(w, "Sessions:       %d\n", rec.SessionsPlayed)
	if rec.QuestionsAnswered > 0 {
		fmt.Fprintf(w, "Last played:    %s\n", rec.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-8s  %8s  %8s  %8s\n", "Tier", "Answered", "Correct", "Accuracy")
	fmt.Fprintln(w, strings.Repeat("─", 38))
	for _, t := range difficulty.AllTiers {
		ts := rec.Tier(t)
		fmt.Fprintf(w, "%-8s  %8d  %8d  %7.1f%%\n", t.DisplayName(), ts.Answered, ts.Correct, ts.Accuracy()*100)
	}
}

func init() {
	statsCmd.Flags().Bool("json", false, "Print the record as JSON")
}
