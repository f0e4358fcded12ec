package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptiquiz/internal/app"
)

var rootCmd = &cobra.Command{
	Use:   "adaptiquiz",
	Short: "Adaptive-difficulty terminal quiz",
	Long: `AdaptiQuiz asks multiple-choice questions and adjusts their difficulty
to how well you are doing: five answers at 80% or better move you up a tier,
40% or worse move you down.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd, true)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Config file (default: $XDG_CONFIG_HOME/adaptiquiz/config.yaml)")
	pf.String("db", "", "Path to SQLite database file (overrides ADAPTIQUIZ_DB)")
	pf.String("data-dir", "", "Directory for question banks, progress and logs")
	pf.String("log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// runTUI builds the game from config and launches the Bubble Tea program.
// The splash plays only when splash is set and the config allows it.
func runTUI(cmd *cobra.Command, splash bool) error {
	e, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer e.Close()

	bank, err := e.bank()
	if err != nil {
		return fmt.Errorf("load questions: %w", err)
	}
	g, err := e.game(cmd.Context(), bank)
	if err != nil {
		return err
	}

	e.log.Infow("starting", "version", version, "tier", g.Tier(), "db", e.cfg.DB, "backend", e.cfg.Progress.Backend)
	return app.Run(app.Options{
		Game:   g,
		Events: e.events(),
		Log:    e.log,
		Splash: splash && e.cfg.UI.Splash,
	})
}
