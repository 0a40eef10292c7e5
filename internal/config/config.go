// Package config provides configuration loading and validation for the CLI
// and the HTTP server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the service configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults or must be
// provided via CLI flags.
type Config struct {
	// Paths
	Dataset   string `json:"dataset,omitempty"`    // Path to the plumber CSV dataset
	SchemaDir string `json:"schema_dir,omitempty"` // Directory holding JSON schemas

	// Server
	Addr        string `json:"addr,omitempty"`         // HTTP listen address, e.g. ":8080"
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL

	// Behavior
	MaxResults int  `json:"max_results,omitempty"` // Default result cap for match queries
	Verbose    bool `json:"verbose,omitempty"`     // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Required fields are handled by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.MaxResults < 0 {
		return fmt.Errorf("config error: 'max_results' must be non-negative")
	}

	if c.Dataset != "" {
		if _, err := os.Stat(c.Dataset); os.IsNotExist(err) {
			return fmt.Errorf("config error: dataset file not found: %s", c.Dataset)
		}
	}

	if c.SchemaDir != "" {
		if _, err := os.Stat(c.SchemaDir); os.IsNotExist(err) {
			return fmt.Errorf("config error: schema directory not found: %s", c.SchemaDir)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This is used to apply config file values as defaults for CLI
// flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Dataset == "" {
		result.Dataset = defaults.Dataset
	}
	if result.SchemaDir == "" {
		result.SchemaDir = defaults.SchemaDir
	}
	if result.Addr == "" {
		result.Addr = defaults.Addr
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// Int fields: use default if zero
	if result.MaxResults == 0 {
		result.MaxResults = defaults.MaxResults
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
