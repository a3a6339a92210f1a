// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/agentic-researcher/internal/types"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Research behavior
	Depth              string `json:"depth,omitempty"`                // shallow, medium, or deep
	MaxConcurrency     int    `json:"max_concurrency,omitempty"`     // parallel source extractions
	StageTimeoutSecs   int    `json:"stage_timeout_secs,omitempty"`  // per-stage deadline; 0 disables
	UseBrowser         bool   `json:"use_browser,omitempty"`         // use headless browser for SPA sites
	Verbose            bool   `json:"verbose,omitempty"`             // print detailed debug information

	// Collaborators
	APIKey         string `json:"api_key,omitempty"`          // Gemini API key
	SearchAPIKey   string `json:"search_api_key,omitempty"`   // Google Custom Search API key
	SearchEngineID string `json:"search_engine_id,omitempty"` // Google Custom Search engine ID

	// Persistence and serving
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	ServerAddr  string `json:"server_addr,omitempty"`  // HTTP listen address
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
	if c.Depth != "" && !types.Depth(c.Depth).IsValid() {
		return fmt.Errorf("config error: 'depth' must be shallow, medium, or deep")
	}
	if c.MaxConcurrency < 0 {
		return fmt.Errorf("config error: 'max_concurrency' must be non-negative")
	}
	if c.StageTimeoutSecs < 0 {
		return fmt.Errorf("config error: 'stage_timeout_secs' must be non-negative")
	}

	// The search provider needs both halves of its credentials
	if (c.SearchAPIKey == "") != (c.SearchEngineID == "") {
		return fmt.Errorf("config error: 'search_api_key' and 'search_engine_id' must be set together")
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Depth == "" {
		result.Depth = defaults.Depth
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.SearchAPIKey == "" {
		result.SearchAPIKey = defaults.SearchAPIKey
	}
	if result.SearchEngineID == "" {
		result.SearchEngineID = defaults.SearchEngineID
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.ServerAddr == "" {
		result.ServerAddr = defaults.ServerAddr
	}

	// Int fields: use default if zero
	if result.MaxConcurrency == 0 {
		result.MaxConcurrency = defaults.MaxConcurrency
	}
	if result.StageTimeoutSecs == 0 {
		result.StageTimeoutSecs = defaults.StageTimeoutSecs
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
