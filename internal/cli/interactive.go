package cli

import (
	"github.com/buemura/reconbox/internal/tui"
	"github.com/spf13/cobra"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Launch interactive TUI mode",
	Long:  "Start an interactive terminal UI for picking a tool, entering a target and browsing the output.",
	Args:  cobra.NoArgs,
	RunE:  runInteractive,
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}

func runInteractive(cmd *cobra.Command, args []string) error {
	return tui.Run(appRunner, appConfig.DefaultTarget, appConfig.ScannerOptions())
}
