package cli

import (
	"errors"
	"fmt"

	"github.com/buemura/reconbox/internal/config"
	"github.com/spf13/cobra"
)

var forceFlag bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the reconbox config file",
	// Config commands must work with a broken config, so they skip
	// validation and logger setup.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

func init() {
	configInitCmd.Flags().BoolVar(&forceFlag, "force", false, "overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

func configPath() string {
	if configFlag != "" {
		return configFlag
	}
	return config.ConfigFilePath()
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configPath()
	cfg := config.Starter()

	if err := cfg.Write(path, forceFlag); err != nil {
		if errors.Is(err, config.ErrConfigExists) {
			return fmt.Errorf("%w (use --force to overwrite)", err)
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote config to %s\n", path)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
