// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Identity
	UserID string `json:"user_id,omitempty"` // User UUID owning the track-flow namespace

	// Persistence
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL (remote tier)
	CachePath   string `json:"cache_path,omitempty"`   // SQLite cache file (local tier); empty selects in-memory

	// Oracle
	APIKey       string `json:"api_key,omitempty"`       // Gemini API key
	ExtractModel string `json:"extract_model,omitempty"` // Override for the keyword-extraction model
	FitModel     string `json:"fit_model,omitempty"`     // Override for the fit-commentary model

	// Behavior
	SettleMS int  `json:"settle_ms,omitempty"` // Debounce settle window in milliseconds (default 600)
	Verbose  bool `json:"verbose,omitempty"`   // Print detailed debug information
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
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.SettleMS < 0 {
		return fmt.Errorf("config error: 'settle_ms' must be non-negative")
	}

	if c.UserID != "" {
		if _, err := uuid.Parse(c.UserID); err != nil {
			return fmt.Errorf("config error: 'user_id' is not a valid UUID: %w", err)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.UserID == "" {
		result.UserID = defaults.UserID
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.CachePath == "" {
		result.CachePath = defaults.CachePath
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.ExtractModel == "" {
		result.ExtractModel = defaults.ExtractModel
	}
	if result.FitModel == "" {
		result.FitModel = defaults.FitModel
	}

	// Int fields: use default if zero
	if result.SettleMS == 0 {
		result.SettleMS = defaults.SettleMS
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
