// Package config provides configuration loading for the twigmerge CLI,
// grounded on the teacher's config.Load() (env-var driven, getEnvOrDefault
// helpers), generalized from HTTP-server settings (database URL, port) to
// the CLI's file-path and log-level settings, plus a YAML-decoded
// MergerOptions file for the reconciliation parameters spec.md leaves as
// implementer choices.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/NumerousHats/twig-graft/internal/merger"
)

// Config holds the twigmerge CLI's process-level settings.
type Config struct {
	InputPath  string // JSON graph to read (default: stdin, "-")
	OutputPath string // JSON graph to write (default: stdout, "-")
	LogLevel   string // debug, info, warn, error (default: info)
	Verbose    bool   // print a graph summary after merging
}

// Load reads configuration from environment variables, mirroring the
// teacher's env-var-driven Load().
func Load() *Config {
	return &Config{
		InputPath:  getEnvOrDefault("TWIGMERGE_INPUT", "-"),
		OutputPath: getEnvOrDefault("TWIGMERGE_OUTPUT", "-"),
		LogLevel:   getEnvOrDefault("TWIGMERGE_LOG_LEVEL", "info"),
		Verbose:    getEnvBoolOrDefault("TWIGMERGE_VERBOSE", false),
	}
}

// LoadMergerOptions reads a YAML-encoded merger.Options file. A missing
// path argument ("") returns merger.DefaultOptions() unchanged.
func LoadMergerOptions(path string) (merger.Options, error) {
	opts := merger.DefaultOptions()
	if path == "" {
		return opts, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return merger.Options{}, fmt.Errorf("config: read merger options: %w", err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return merger.Options{}, fmt.Errorf("config: parse merger options: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return merger.Options{}, fmt.Errorf("config: invalid merger options: %w", err)
	}
	return opts, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		switch strings.ToLower(value) {
		case "true", "1", "yes":
			return true
		case "false", "0", "no":
			return false
		}
	}
	return defaultValue
}
