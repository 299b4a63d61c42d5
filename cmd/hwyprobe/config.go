package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds defaults for hwyprobe flags, loaded from a YAML file.
// Zero fields leave the built-in flag defaults alone; flags given on the
// command line always win.
//
// Example file:
//
//	log_level: debug
//	count:
//	  goroutines: 8
//	  iterations: 100000
//	bench:
//	  size: 1048576
//	  rounds: 20
type Config struct {
	LogLevel string `yaml:"log_level"`

	Count struct {
		Goroutines int `yaml:"goroutines"`
		Iterations int `yaml:"iterations"`
	} `yaml:"count"`

	Bench struct {
		Size   int    `yaml:"size"`
		Rounds int    `yaml:"rounds"`
		Seed   uint64 `yaml:"seed"`
	} `yaml:"bench"`
}

// LoadConfig reads and validates a config file. An empty path returns an
// empty Config.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects negative counts and unknown log levels.
func (c *Config) Validate() error {
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Count.Goroutines < 0 || c.Count.Iterations < 0 {
		return fmt.Errorf("count: goroutines and iterations must be >= 0")
	}
	if c.Bench.Size < 0 || c.Bench.Rounds < 0 {
		return fmt.Errorf("bench: size and rounds must be >= 0")
	}
	return nil
}

// parseLevel maps a log_level string to a slog level. Empty means warn.
func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log_level %q", s)
	}
}
