// Package config provides configuration loading for reconbox.
// It supports a layered configuration approach with priority:
// CLI flags > environment variables (RECONBOX_*) > config file (~/.reconbox.yaml).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/buemura/reconbox/internal/logger"
	"github.com/buemura/reconbox/internal/scanner"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	envPrefix = "RECONBOX"
	fileName  = ".reconbox"
)

// ScanProfile defines a named set of scanners to run together.
type ScanProfile struct {
	Name     string   `mapstructure:"name" yaml:"name" validate:"required"`
	Scanners []string `mapstructure:"scanners" yaml:"scanners" validate:"required,min=1,dive,scanner"`
}

// LogConfig controls the logger.
type LogConfig struct {
	Level      string `mapstructure:"level" yaml:"level" validate:"loglevel"`
	Format     string `mapstructure:"format" yaml:"format" validate:"logformat"`
	File       string `mapstructure:"file" yaml:"file,omitempty"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" yaml:"max_size_mb" validate:"min=1"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups" validate:"min=0"`
}

// Config holds all reconbox configuration options.
type Config struct {
	DefaultTarget string            `mapstructure:"default_target" yaml:"default_target"`
	OutputFormat  string            `mapstructure:"output_format" yaml:"output_format" validate:"oneof=table json markdown html"`
	Concurrency   int               `mapstructure:"concurrency" yaml:"concurrency" validate:"min=1,max=64"`
	Timeout       time.Duration     `mapstructure:"timeout" yaml:"timeout"`
	Capture       bool              `mapstructure:"capture" yaml:"capture"`
	FailFast      bool              `mapstructure:"fail_fast" yaml:"fail_fast"`
	Log           LogConfig         `mapstructure:"log" yaml:"log"`
	Executables   map[string]string `mapstructure:"executables" yaml:"executables,omitempty" validate:"dive,keys,scanner,endkeys,required"`
	ScanProfiles  []ScanProfile     `mapstructure:"scan_profiles" yaml:"scan_profiles,omitempty" validate:"dive"`
}

// Defaults returns a Config populated with default values.
func Defaults() Config {
	return Config{
		OutputFormat: "table",
		Concurrency:  4,
		Timeout:      30 * time.Minute,
		Log: LogConfig{
			Level:      "info",
			Format:     "console",
			MaxSizeMB:  100,
			MaxBackups: 3,
		},
	}
}

// Load reads configuration from ~/.reconbox.yaml and environment variables.
// It does NOT apply CLI flag overrides; call ApplyFlags for that.
func Load() (*Config, error) {
	v := newViper()
	v.SetConfigName(fileName)
	v.SetConfigType("yaml")

	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}
	return decode(v)
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	cfg := Defaults()
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// ApplyFlags overrides config values with any CLI flags that were explicitly set.
func ApplyFlags(cfg *Config, cmd *cobra.Command) {
	flags := cmd.Flags()

	if flags.Changed("target") {
		cfg.DefaultTarget, _ = flags.GetString("target")
	}
	if flags.Changed("output") {
		cfg.OutputFormat, _ = flags.GetString("output")
	}
	if flags.Changed("concurrency") {
		cfg.Concurrency, _ = flags.GetInt("concurrency")
	}
	if flags.Changed("timeout") {
		cfg.Timeout, _ = flags.GetDuration("timeout")
	}
	if flags.Changed("capture") {
		cfg.Capture, _ = flags.GetBool("capture")
	}
	if flags.Changed("fail-fast") {
		cfg.FailFast, _ = flags.GetBool("fail-fast")
	}
	if flags.Changed("log-level") {
		cfg.Log.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("verbose") {
		if verbose, _ := flags.GetBool("verbose"); verbose {
			cfg.Log.Level = "debug"
		}
	}
}

// GetProfile returns the scan profile with the given name, or nil if not found.
func (c *Config) GetProfile(name string) *ScanProfile {
	for i := range c.ScanProfiles {
		if c.ScanProfiles[i].Name == name {
			return &c.ScanProfiles[i]
		}
	}
	return nil
}

// ScannerOptions converts the run policy into scanner options.
func (c *Config) ScannerOptions() scanner.Options {
	return scanner.Options{
		Concurrency: c.Concurrency,
		Timeout:     c.Timeout,
		Capture:     c.Capture,
		FailFast:    c.FailFast,
		Verbose:     c.Log.Level == "debug",
	}
}

// Registry builds a scanner registry from the built-in catalog with the
// configured executable overrides applied.
func (c *Config) Registry() (*scanner.Registry, error) {
	if len(c.Executables) == 0 {
		return scanner.DefaultRegistry(), nil
	}

	catalog := scanner.Catalog()
	for name, path := range c.Executables {
		id, err := scanner.ParseID(name)
		if err != nil {
			return nil, fmt.Errorf("executables: %w", err)
		}
		spec := catalog[id]
		spec.Executable = path
		catalog[id] = spec
	}
	return scanner.NewRegistry(catalog)
}

// Logger builds the logger described by the log section.
func (c *Config) Logger() (*logger.Logger, error) {
	level, err := logger.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}
	format, err := logger.ParseFormat(c.Log.Format)
	if err != nil {
		return nil, err
	}

	b := logger.NewBuilder().WithLevel(level).WithFormat(format)
	if c.Log.File != "" {
		b = b.WithFile(c.Log.File, c.Log.MaxSizeMB, c.Log.MaxBackups)
	}
	return b.Build()
}

// ConfigFilePath returns the default config file path (~/.reconbox.yaml).
func ConfigFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return fileName + ".yaml"
	}
	return filepath.Join(home, fileName+".yaml")
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("default_target", d.DefaultTarget)
	v.SetDefault("output_format", d.OutputFormat)
	v.SetDefault("concurrency", d.Concurrency)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("capture", d.Capture)
	v.SetDefault("fail_fast", d.FailFast)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.max_size_mb", d.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
}
