package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/buemura/reconbox/internal/config"
	"github.com/buemura/reconbox/internal/logger"
	"github.com/buemura/reconbox/internal/scanner"
	"github.com/buemura/reconbox/pkg/types"
	"github.com/spf13/cobra"
)

var version = "dev"

var (
	targetFlag      string
	outputFlag      string
	verboseFlag     bool
	concurrencyFlag int
	timeoutFlag     time.Duration
	configFlag      string
	logLevelFlag    string
)

// Set by PersistentPreRunE.
var (
	appConfig *config.Config
	appLogger *logger.Logger
	appRunner *scanner.Runner
)

var rootCmd = &cobra.Command{
	Use:   "reconbox",
	Short: "reconbox — launch reconnaissance tools against a target",
	Long: `reconbox dispatches external recon tools (dirsearch, httpx, katana,
nuclei, waybackurls, subfinder, naabu) against a single target, with the
target's URL or host substituted into each tool's argument template.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		closeLogger()

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		log, err := cfg.Logger()
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		reg, err := cfg.Registry()
		if err != nil {
			log.Close()
			return fmt.Errorf("building registry: %w", err)
		}

		invoker := scanner.NewInvoker(
			scanner.WithLogger(log.Zerolog()),
			scanner.WithStreamsOption(scanner.Streams{
				Stdin:  cmd.InOrStdin(),
				Stdout: cmd.OutOrStdout(),
				Stderr: cmd.ErrOrStderr(),
			}),
		)

		appConfig = cfg
		appLogger = log
		appRunner = scanner.NewRunner(reg, invoker, log.Zerolog())
		return nil
	},
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command's
// context, which kills any running scanner.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer closeLogger()

	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&targetFlag, "target", "t", "", "target URL or host")
	rootCmd.PersistentFlags().StringVarP(&outputFlag, "output", "o", "table", "output format: table, json, markdown, html")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "verbose output (debug logging)")
	rootCmd.PersistentFlags().IntVarP(&concurrencyFlag, "concurrency", "c", 4, "max scanners running at once")
	rootCmd.PersistentFlags().DurationVar(&timeoutFlag, "timeout", 30*time.Minute, "per-scanner timeout (0 disables)")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "config file (default ~/.reconbox.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configFlag != "" {
		cfg, err = config.LoadFromFile(configFlag)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	config.ApplyFlags(cfg, cmd)
	return cfg, nil
}

func closeLogger() {
	if appLogger != nil {
		appLogger.Close()
		appLogger = nil
	}
}

// resolveTarget parses the target from --target or the configured default.
func resolveTarget() (types.Target, error) {
	if appConfig.DefaultTarget == "" {
		return types.Target{}, fmt.Errorf("--target (-t) is required")
	}

	target, err := types.ParseTarget(appConfig.DefaultTarget)
	if err != nil {
		return types.Target{}, fmt.Errorf("invalid target: %w", err)
	}
	return target, nil
}
