package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptiquiz/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect LLM request events",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM events",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		events, err := e.events().LLMRequests(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No LLM events found.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-19s  %-14s  %-28s  %-6s  %-6s  %-7s  %s\n",
			"Seq", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK")
		fmt.Fprintln(out, strings.Repeat("─", 100))

		for _, ev := range events {
			if purpose != "" && ev.Purpose != purpose {
				continue
			}
			ok := "✓"
			if !ev.Success {
				ok = "✗ " + truncate(ev.ErrorMessage, 40)
			}
			fmt.Fprintf(out, "%-5d  %-19s  %-14s  %-28s  %-6d  %-6d  %-7d  %s\n",
				ev.Sequence,
				ev.Timestamp.Local().Format("2006-01-02 15:04:05"),
				ev.Purpose,
				truncate(ev.Model, 28),
				ev.InputTokens,
				ev.OutputTokens,
				ev.LatencyMs,
				ok,
			)
		}
		return nil
	},
}

// usage aggregates LLM calls for one model.
type usage struct {
	Model        string
	Calls        int
	Failures     int
	InputTokens  int
	OutputTokens int
	TotalMs      int64
}

func summarizeUsage(events []store.LLMRequestEvent) []usage {
	byModel := make(map[string]*usage)
	for _, ev := range events {
		u := byModel[ev.Model]
		if u == nil {
			u = &usage{Model: ev.Model}
			byModel[ev.Model] = u
		}
		u.Calls++
		if !ev.Success {
			u.Failures++
		}
		u.InputTokens += ev.InputTokens
		u.OutputTokens += ev.OutputTokens
		u.TotalMs += ev.LatencyMs
	}
	out := make([]usage, 0, len(byModel))
	for _, u := range byModel {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Calls > out[j].Calls })
	return out
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated LLM token usage per model",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		events, err := e.events().LLMRequests(cmd.Context(), store.QueryOpts{})
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}

		out := cmd.OutOrStdout()
		stats := summarizeUsage(events)
		if len(stats) == 0 {
			fmt.Fprintln(out, "No LLM usage recorded yet.")
			return nil
		}

		fmt.Fprintln(out, strings.Repeat("─", 80))
		fmt.Fprintf(out, "%-32s  %6s  %6s  %10s  %10s  %8s\n",
			"Model", "Calls", "Failed", "Input", "Output", "Avg Ms")
		fmt.Fprintln(out, strings.Repeat("─", 80))

		var calls, in, outTok int
		for _, u := range stats {
			fmt.Fprintf(out, "%-32s  %6d  %6d  %10d  %10d  %8d\n",
				truncate(u.Model, 32), u.Calls, u.Failures, u.InputTokens, u.OutputTokens, u.TotalMs/int64(u.Calls))
			calls += u.Calls
			in += u.InputTokens
			outTok += u.OutputTokens
		}
		fmt.Fprintln(out, strings.Repeat("─", 80))
		fmt.Fprintf(out, "%-32s  %6d  %6s  %10d  %10d\n", "TOTAL", calls, "", in, outTok)
		return nil
	},
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (e.g. question-gen)")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
