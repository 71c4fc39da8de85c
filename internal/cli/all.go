package cli

import (
	"github.com/buemura/reconbox/internal/scanner"
	"github.com/spf13/cobra"
)

var allFailFastFlag bool

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Run every recon tool",
	Long:  "Runs every tool in the catalog against the target concurrently.",
	Args:  cobra.NoArgs,
	RunE:  runAll,
}

func init() {
	allCmd.Flags().BoolVar(&allFailFastFlag, "fail-fast", false, "stop every scanner after the first launch failure")
	rootCmd.AddCommand(allCmd)
}

func runAll(cmd *cobra.Command, args []string) error {
	return runBatch(cmd, scanner.IDs())
}
