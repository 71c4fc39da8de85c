package cli

import (
	"fmt"

	"github.com/buemura/reconbox/internal/output"
	"github.com/buemura/reconbox/internal/scanner"
	"github.com/buemura/reconbox/pkg/types"
	"github.com/spf13/cobra"
)

var (
	scannersFlag    []string
	profileFlag     string
	runFailFastFlag bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run several recon tools concurrently",
	Long: `Runs the selected tools concurrently against the target, captures their
output and prints a report. Select tools with --scanners or a named
profile from the config file.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringSliceVar(&scannersFlag, "scanners", nil, "comma-separated scanners to run")
	runCmd.Flags().StringVar(&profileFlag, "profile", "", "scan profile from the config file")
	runCmd.Flags().BoolVar(&runFailFastFlag, "fail-fast", false, "stop every scanner after the first launch failure")
	runCmd.MarkFlagsMutuallyExclusive("scanners", "profile")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	ids, err := selectedScanners()
	if err != nil {
		return err
	}
	return runBatch(cmd, ids)
}

func selectedScanners() ([]scanner.ID, error) {
	switch {
	case profileFlag != "":
		profile := appConfig.GetProfile(profileFlag)
		if profile == nil {
			return nil, fmt.Errorf("profile %q not found", profileFlag)
		}
		return scanner.ParseIDs(profile.Scanners)
	case len(scannersFlag) > 0:
		return scanner.ParseIDs(scannersFlag)
	default:
		return nil, fmt.Errorf("--scanners or --profile is required")
	}
}

// runBatch runs ids through the runner with capture on and prints the report.
func runBatch(cmd *cobra.Command, ids []scanner.ID) error {
	target, err := resolveTarget()
	if err != nil {
		return err
	}

	formatter, err := output.GetFormatter(appConfig.OutputFormat)
	if err != nil {
		return err
	}

	opts := appConfig.ScannerOptions()
	opts.Capture = true
	log := appLogger.Zerolog()
	opts.OnFinish = func(i int, inv types.Invocation) {
		log.Debug().Int("index", i).Str("scanner", inv.Scanner).Str("status", inv.Status()).Msg("progress")
	}

	results := appRunner.RunAll(cmd.Context(), ids, target, opts)
	return formatter.Format(cmd.OutOrStdout(), results)
}
