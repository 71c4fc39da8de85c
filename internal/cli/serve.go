package cli

import (
	"fmt"

	"github.com/buemura/reconbox/internal/web"
	"github.com/spf13/cobra"
)

var addrFlag string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the reconbox API server",
	Long:  "Serves the HTTP API for submitting scans and fetching their reports.",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&addrFlag, "addr", ":3000", "listen address (host:port)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	defaults := appConfig.ScannerOptions()
	defaults.Capture = true

	s := web.NewServer(addrFlag, appRunner, defaults, appLogger.Zerolog())
	fmt.Fprintf(cmd.OutOrStdout(), "reconbox API listening on %s\n", addrFlag)
	return s.Start(cmd.Context())
}
