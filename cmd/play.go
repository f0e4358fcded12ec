package cmd

import "github.com/spf13/cobra"

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the menu directly, skipping the splash screen",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd, false)
	},
}
