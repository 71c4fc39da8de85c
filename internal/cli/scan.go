package cli

import (
	"fmt"

	"github.com/buemura/reconbox/internal/output"
	"github.com/buemura/reconbox/internal/scanner"
	"github.com/buemura/reconbox/pkg/types"
	"github.com/spf13/cobra"
)

var captureFlag bool

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run a single recon tool",
	Long: `Run one recon tool against the target. By default the tool inherits the
terminal and reconbox waits for it to exit; --capture collects its output
and prints a formatted report instead.`,
}

func init() {
	scanCmd.PersistentFlags().BoolVar(&captureFlag, "capture", false, "capture output and print a formatted report")

	for _, spec := range scanner.DefaultRegistry().All() {
		scanCmd.AddCommand(newScanToolCmd(spec))
	}
	rootCmd.AddCommand(scanCmd)
}

func newScanToolCmd(spec scanner.Spec) *cobra.Command {
	id := spec.ID
	return &cobra.Command{
		Use:   id.String(),
		Short: spec.Description,
		Long:  fmt.Sprintf("%s\n\nRuns: %s %s", spec.Description, spec.Executable, spec.Template()),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScanTool(cmd, id)
		},
	}
}

func runScanTool(cmd *cobra.Command, id scanner.ID) error {
	target, err := resolveTarget()
	if err != nil {
		return err
	}
	opts := appConfig.ScannerOptions()

	if !opts.Capture {
		inv, err := appRunner.RunOne(cmd.Context(), id, target, opts)
		if err != nil {
			return err
		}
		if inv.Error != "" {
			return fmt.Errorf("%s: %s", inv.Scanner, inv.Error)
		}
		if inv.ExitCode != 0 {
			return fmt.Errorf("%s exited with status %d", inv.Scanner, inv.ExitCode)
		}
		return nil
	}

	formatter, err := output.GetFormatter(appConfig.OutputFormat)
	if err != nil {
		return err
	}

	inv, runErr := appRunner.RunOne(cmd.Context(), id, target, opts)
	if err := formatter.Format(cmd.OutOrStdout(), []types.Invocation{inv}); err != nil {
		return err
	}
	return runErr
}
