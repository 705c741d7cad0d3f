// Package config loads driver-wide defaults for the benchmark CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ssargent/intsetbtree/pkg/bptree"
)

// Config holds driver settings from an optional --config file. The run
// command reads the Metrics and History sections, which the --metrics-addr
// and --history-dir flags override. Order, Backend, Rounds and Logging are
// parsed (Backend is also validated) but no command reads them; run takes
// the order, backend and round count from its own flags.
type Config struct {
	Order   int     `yaml:"order"`
	Backend string  `yaml:"backend"`
	Rounds  int     `yaml:"rounds"`
	Metrics Metrics `yaml:"metrics"`
	History History `yaml:"history"`
	Logging Logging `yaml:"logging"`
}

// Metrics controls the optional Prometheus exposition endpoint.
type Metrics struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// History controls the optional run-history ledger.
type History struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

// Logging holds logger settings. The driver logs through the standard
// library log package and does not read them.
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns the driver's built-in defaults, used when no
// --config file is given and as the base onto which a loaded file's
// fields are layered.
func DefaultConfig() *Config {
	return &Config{
		Order:   64,
		Backend: bptree.Array.String(),
		Rounds:  3,
		Metrics: Metrics{
			Enabled: false,
			Addr:    "127.0.0.1:9090",
		},
		History: History{
			Enabled: false,
			Dir:     "./bench-history",
		},
		Logging: Logging{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig reads and parses a YAML defaults file, starting from
// DefaultConfig so an omitted field keeps its default value.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if _, ok := bptree.ParseBackend(cfg.Backend); !ok {
		return nil, fmt.Errorf("config: unknown backend %q", cfg.Backend)
	}

	return cfg, nil
}

// ConfigExists reports whether a configuration file exists at path.
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
