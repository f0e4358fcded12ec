package cmd

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/adaptiquiz/internal/difficulty"
	"github.com/abhisek/adaptiquiz/internal/llm"
	"github.com/abhisek/adaptiquiz/internal/logging"
	"github.com/abhisek/adaptiquiz/internal/questiongen"
	"github.com/abhisek/adaptiquiz/internal/questions"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Inspect and extend the question banks",
}

// exportedQuestion is the YAML shape printed by `questions list --yaml`.
type exportedQuestion struct {
	ID          string   `yaml:"id"`
	Tier        string   `yaml:"tier"`
	Question    string   `yaml:"question"`
	Options     []string `yaml:"options"`
	Answer      string   `yaml:"answer"`
	Explanation string   `yaml:"explanation,omitempty"`
}

var questionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the questions of one or all tiers",
	RunE: func(cmd *cobra.Command, args []string) error {
		tiers, err := tiersFlag(cmd)
		if err != nil {
			return err
		}
		asYAML, _ := cmd.Flags().GetBool("yaml")

		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()
		bank, err := e.bank()
		if err != nil {
			return fmt.Errorf("load questions: %w", err)
		}

		out := cmd.OutOrStdout()
		if asYAML {
			var export []exportedQuestion
			for _, t := range tiers {
				for _, q := range bank.All(t) {
					export = append(export, exportedQuestion{
						ID:          q.ID,
						Tier:        t.String(),
						Question:    q.Prompt,
						Options:     q.Options,
						Answer:      q.CorrectAnswer(),
						Explanation: q.Explanation,
					})
				}
			}
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(export)
		}

		for _, t := range tiers {
			printTier(out, t, bank.All(t))
		}
		return nil
	},
}

func printTier(w io.Writer, t difficulty.Tier, qs []questions.Question) {
	fmt.Fprintf(w, "%s (%d)\n", t.DisplayName(), len(qs))
	fmt.Fprintln(w, strings.Repeat("─", 60))
	for i, q := range qs {
		fmt.Fprintf(w, "%3d. %s\n", i+1, q.Prompt)
		for j, opt := range q.Options {
			mark := " "
			if j == q.CorrectIndex {
				mark = "*"
			}
			fmt.Fprintf(w, "       %s %d) %s\n", mark, j+1, opt)
		}
	}
	fmt.Fprintln(w)
}

var questionsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a question to a tier's bank",
	Example: `  adaptiquiz questions add --tier easy --question "What is 2 + 2?" \
    --option 3 --option 4 --option 5 --option 22 --answer 2`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tierName, _ := cmd.Flags().GetString("tier")
		tier, err := difficulty.ParseTier(tierName)
		if err != nil {
			return err
		}
		prompt, _ := cmd.Flags().GetString("question")
		options, _ := cmd.Flags().GetStringArray("option")
		answer, _ := cmd.Flags().GetString("answer")
		explanation, _ := cmd.Flags().GetString("explanation")

		idx, err := answerIndex(answer, options)
		if err != nil {
			return err
		}

		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()
		bank, err := e.bank()
		if err != nil {
			return fmt.Errorf("load questions: %w", err)
		}

		q, err := bank.Add(questions.Question{
			Prompt:       prompt,
			Options:      options,
			CorrectIndex: idx,
			Tier:         tier,
			Explanation:  explanation,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s to the %s bank (%d questions).\n", q.ID, tier, bank.Count(tier))
		return nil
	},
}

// answerIndex accepts the 1-based option number or the option text.
func answerIndex(answer string, options []string) (int, error) {
	if n, err := strconv.Atoi(answer); err == nil {
		if n < 1 || n > len(options) {
			return 0, fmt.Errorf("answer %d is not between 1 and %d", n, len(options))
		}
		return n - 1, nil
	}
	for i, opt := range options {
		if strings.EqualFold(strings.TrimSpace(opt), strings.TrimSpace(answer)) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("answer %q is not one of the options", answer)
}

var questionsGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Author new questions with a language model",
	Long: `Generate multiple-choice questions for a tier with the configured LLM
provider and append the accepted ones to the bank. The provider comes from
the llm section of the config or ADAPTIQUIZ_LLM_* variables, falling back to
GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY or OPENROUTER_API_KEY.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		tierName, _ := cmd.Flags().GetString("tier")
		tier, err := difficulty.ParseTier(tierName)
		if err != nil {
			return err
		}
		count, _ := cmd.Flags().GetInt("count")
		topic, _ := cmd.Flags().GetString("topic")
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		if count < 1 {
			return fmt.Errorf("count must be at least 1")
		}

		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		llmCfg, ok := e.cfg.LLMConfig()
		if !ok {
			return fmt.Errorf("no LLM provider configured: set ADAPTIQUIZ_LLM_PROVIDER or one of the vendor API key variables")
		}
		provider, err := llm.New(ctx, llmCfg, e.events(), e.log)
		if err != nil {
			return fmt.Errorf("LLM provider: %w", err)
		}
		e.log.Infow("llm provider ready",
			"provider", llmCfg.Provider, "model", provider.ModelID(), "api_key", logging.Redact(llmCfg.APIKey))
		bank, err := e.bank()
		if err != nil {
			return fmt.Errorf("load questions: %w", err)
		}

		gen := questiongen.New(provider, questiongen.DefaultConfig())
		out := cmd.OutOrStdout()
		var accepted []questions.Question
		existing := bank.Prompts(tier)

		// Rejections are expected now and then; give up after a few per question.
		for attempt := 0; len(accepted) < count && attempt < count*3; attempt++ {
			q, err := gen.Generate(ctx, questiongen.Input{Tier: tier, Topic: topic, Existing: existing})
			var rejected *questiongen.RejectedError
			switch {
			case errors.Is(err, questiongen.ErrDuplicate), errors.As(err, &rejected):
				e.log.Infow("discarded generated question", "reason", err)
				continue
			case err != nil:
				return err
			}

			if !dryRun {
				if q, err = bank.Add(q); err != nil {
					e.log.Infow("bank refused generated question", "error", err)
					continue
				}
			}
			accepted = append(accepted, q)
			existing = append(existing, q.Prompt)
			fmt.Fprintf(out, "✓ %s\n", q.Prompt)
		}

		verb := "Added"
		if dryRun {
			verb = "Generated (not saved)"
		}
		fmt.Fprintf(out, "%s %d of %d %s questions with %s.\n", verb, len(accepted), count, tier, provider.ModelID())
		if len(accepted) < count {
			return fmt.Errorf("only %d of %d questions were accepted", len(accepted), count)
		}
		return nil
	},
}

// tiersFlag returns the --tier value as a list, or every tier when unset.
func tiersFlag(cmd *cobra.Command) ([]difficulty.Tier, error) {
	name, _ := cmd.Flags().GetString("tier")
	if name == "" {
		return difficulty.AllTiers, nil
	}
	t, err := difficulty.ParseTier(name)
	if err != nil {
		return nil, err
	}
	return []difficulty.Tier{t}, nil
}

func init() {
	questionsListCmd.Flags().String("tier", "", "Only list this tier (easy, medium, hard)")
	questionsListCmd.Flags().Bool("yaml", false, "Print as YAML")

	questionsAddCmd.Flags().String("tier", "", "Tier of the question (easy, medium, hard)")
	questionsAddCmd.Flags().String("question", "", "Question text")
	questionsAddCmd.Flags().StringArray("option", nil, "An answer option; repeat for each")
	questionsAddCmd.Flags().String("answer", "", "Correct option, by number (1-based) or text")
	questionsAddCmd.Flags().String("explanation", "", "Shown after the question is answered")
	for _, f := range []string{"tier", "question", "option", "answer"} {
		_ = questionsAddCmd.MarkFlagRequired(f)
	}

	questionsGenerateCmd.Flags().String("tier", "", "Tier to generate for (easy, medium, hard)")
	questionsGenerateCmd.Flags().IntP("count", "n", 5, "Number of questions to add")
	questionsGenerateCmd.Flags().String("topic", "", "Optional subject to focus on")
	questionsGenerateCmd.Flags().Bool("dry-run", false, "Print the questions without saving them")
	_ = questionsGenerateCmd.MarkFlagRequired("tier")

	questionsCmd.AddCommand(questionsListCmd)
	questionsCmd.AddCommand(questionsAddCmd)
	questionsCmd.AddCommand(questionsGenerateCmd)
}
