package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrConfigExists is returned by Write when the file exists and overwrite
// was not requested.
var ErrConfigExists = errors.New("config file already exists")

// fileView mirrors Config with the timeout as a duration string, since
// yaml.v3 would encode time.Duration as integer nanoseconds.
type fileView struct {
	DefaultTarget string            `yaml:"default_target"`
	OutputFormat  string            `yaml:"output_format"`
	Concurrency   int               `yaml:"concurrency"`
	Timeout       string            `yaml:"timeout"`
	Capture       bool              `yaml:"capture"`
	FailFast      bool              `yaml:"fail_fast"`
	Log           LogConfig         `yaml:"log"`
	Executables   map[string]string `yaml:"executables,omitempty"`
	ScanProfiles  []ScanProfile     `yaml:"scan_profiles,omitempty"`
}

// Marshal encodes the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	view := fileView{
		DefaultTarget: c.DefaultTarget,
		OutputFormat:  c.OutputFormat,
		Concurrency:   c.Concurrency,
		Timeout:       c.Timeout.String(),
		Capture:       c.Capture,
		FailFast:      c.FailFast,
		Log:           c.Log,
		Executables:   c.Executables,
		ScanProfiles:  c.ScanProfiles,
	}
	data, err := yaml.Marshal(view)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return data, nil
}

// Write saves the configuration to path, creating parent directories.
func (c *Config) Write(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("checking config file: %w", err)
		}
	}

	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Starter returns the configuration written by `config init`: the defaults
// plus example scan profiles.
func Starter() Config {
	cfg := Defaults()
	cfg.ScanProfiles = []ScanProfile{
		{Name: "passive", Scanners: []string{"waybackurls", "subfinder"}},
		{Name: "web", Scanners: []string{"httpx", "katana", "dirsearch"}},
		{Name: "full", Scanners: []string{"dirsearch", "httpx", "katana", "nuclei", "waybackurls", "subfinder", "naabu"}},
	}
	return cfg
}
