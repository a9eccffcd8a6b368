// Package config loads the optional YAML run configuration for the
// speccheck CLI. Every field has a default; a missing file is not an error.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mahdiidarabi/eddsa-speccheck/pkg/speccheck"
)

// Config holds the run settings. Command-line flags override any value set
// here.
type Config struct {
	// Timeout is the per-backend-call budget, as a Go duration string.
	Timeout string `yaml:"timeout"`
	// Workers is the harness parallelism; 0 means one worker per CPU.
	Workers int `yaml:"workers"`
	// OutputDir is where generate writes cases.json and cases.txt.
	OutputDir string `yaml:"output_dir"`
	// Verbosity is one of "quiet", "normal", "debug".
	Verbosity string `yaml:"verbosity"`
	// Backends filters the registered backend set by name; empty runs all.
	Backends []string `yaml:"backends"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Timeout:   speccheck.DefaultCallTimeout.String(),
		Workers:   0,
		OutputDir: ".",
		Verbosity: "normal",
	}
}

// Load reads a YAML config file, applying defaults for unset fields. An
// empty path, or a path that does not exist, yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field values without applying them.
func (c *Config) Validate() error {
	if _, err := c.CallTimeout(); err != nil {
		return err
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	switch c.Verbosity {
	case "quiet", "normal", "debug":
	default:
		return fmt.Errorf("verbosity must be quiet, normal or debug, got %q", c.Verbosity)
	}
	return nil
}

// CallTimeout parses the Timeout field.
func (c *Config) CallTimeout() (time.Duration, error) {
	if c.Timeout == "" {
		return speccheck.DefaultCallTimeout, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("timeout must be positive, got %s", d)
	}
	return d, nil
}
