// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/unsc-scraper/internal/crawling"
	"github.com/jonathan/unsc-scraper/internal/fetch"
	"github.com/jonathan/unsc-scraper/internal/output"
	"github.com/jonathan/unsc-scraper/internal/types"
)

// Config represents the CLI configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Source
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty" validate:"omitempty,url"`
	Backend string `json:"backend,omitempty" yaml:"backend,omitempty" validate:"omitempty,oneof=goquery htmltree browser"`

	// Output
	Out    string `json:"out,omitempty" yaml:"out,omitempty"`
	Format string `json:"format,omitempty" yaml:"format,omitempty" validate:"omitempty,oneof=csv json"`

	// Politeness
	Delay         string `json:"delay,omitempty" yaml:"delay,omitempty"`     // Go duration, e.g. "10ms"
	Timeout       string `json:"timeout,omitempty" yaml:"timeout,omitempty"` // Go duration, e.g. "30s"
	UserAgent     string `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
	RespectRobots *bool  `json:"respect_robots,omitempty" yaml:"respect_robots,omitempty"`

	// Behavior
	CleanText   bool   `json:"clean_text,omitempty" yaml:"clean_text,omitempty"`
	Headless    *bool  `json:"headless,omitempty" yaml:"headless,omitempty"`
	Summary     bool   `json:"summary,omitempty" yaml:"summary,omitempty"`
	Verbose     bool   `json:"verbose,omitempty" yaml:"verbose,omitempty"`
	DatabaseURL string `json:"database_url,omitempty" yaml:"database_url,omitempty"`

	// Exceptions adds to or overrides the built-in irregular years.
	Exceptions types.ExceptionTable `json:"exceptions,omitempty" yaml:"exceptions,omitempty"`
}

var validate = validator.New()

// LoadConfig loads configuration from a JSON file, or a YAML file when the
// extension is .yaml or .yml. Environment variables in YAML files are expanded.
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
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Defaults returns the values used when neither a flag nor the config file sets one.
// Format is left empty so the output extension decides it.
func Defaults() Config {
	robots := true
	headless := true
	return Config{
		BaseURL:       crawling.DefaultBaseURL,
		Backend:       "goquery",
		Out:           output.DefaultPath,
		Delay:         crawling.DefaultDelay.String(),
		Timeout:       fetch.DefaultTimeout.String(),
		UserAgent:     fetch.DefaultUserAgent,
		RespectRobots: &robots,
		Headless:      &headless,
	}
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.BaseURL != "" && !strings.HasSuffix(c.BaseURL, "/") {
		return fmt.Errorf("config error: 'base_url' must end with '/'")
	}

	if c.Delay != "" {
		d, err := time.ParseDuration(c.Delay)
		if err != nil {
			return fmt.Errorf("config error: invalid 'delay': %w", err)
		}
		if d < 0 {
			return fmt.Errorf("config error: 'delay' must be non-negative")
		}
	}
	if c.Timeout != "" {
		d, err := time.ParseDuration(c.Timeout)
		if err != nil {
			return fmt.Errorf("config error: invalid 'timeout': %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("config error: 'timeout' must be positive")
		}
	}

	for year := range c.Exceptions {
		if year <= 0 {
			return fmt.Errorf("config error: exception year %d must be positive", year)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.BaseURL == "" {
		result.BaseURL = defaults.BaseURL
	}
	if result.Backend == "" {
		result.Backend = defaults.Backend
	}
	if result.Out == "" {
		result.Out = defaults.Out
	}
	if result.Format == "" {
		result.Format = defaults.Format
	}
	if result.Delay == "" {
		result.Delay = defaults.Delay
	}
	if result.Timeout == "" {
		result.Timeout = defaults.Timeout
	}
	if result.UserAgent == "" {
		result.UserAgent = defaults.UserAgent
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// Pointer bools distinguish unset from false
	if result.RespectRobots == nil {
		result.RespectRobots = defaults.RespectRobots
	}
	if result.Headless == nil {
		result.Headless = defaults.Headless
	}

	// Plain bools: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// ParsedDelay returns Delay as a duration, falling back to the crawler default.
func (c *Config) ParsedDelay() (time.Duration, error) {
	if c.Delay == "" {
		return crawling.DefaultDelay, nil
	}
	return time.ParseDuration(c.Delay)
}

// ParsedTimeout returns Timeout as a duration, falling back to the fetch default.
func (c *Config) ParsedTimeout() (time.Duration, error) {
	if c.Timeout == "" {
		return fetch.DefaultTimeout, nil
	}
	return time.ParseDuration(c.Timeout)
}

// ExceptionTable returns the built-in exceptions overridden by the configured ones.
func (c *Config) ExceptionTable() types.ExceptionTable {
	return types.DefaultExceptions().Merge(c.Exceptions)
}

// RobotsEnabled reports whether robots.txt should be honored. Unset means yes.
func (c *Config) RobotsEnabled() bool {
	return c.RespectRobots == nil || *c.RespectRobots
}

// HeadlessEnabled reports whether the browser backend runs headless. Unset means yes.
func (c *Config) HeadlessEnabled() bool {
	return c.Headless == nil || *c.Headless
}
