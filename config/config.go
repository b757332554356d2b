// Package config provides CLI configuration management for the callsight
// command-line tool. It supports loading configuration from a YAML file,
// environment variables, and command-line flags, in that order of
// increasing precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// OutputFormat defines the supported output formats for CLI results.
type OutputFormat string

const (
	// OutputFormatTerminal is human-readable terminal output.
	OutputFormatTerminal OutputFormat = "terminal"
	// OutputFormatJSON is JSON-formatted output for machine processing.
	OutputFormatJSON OutputFormat = "json"
)

// Default configuration values.
const (
	DefaultModel        = "gemini-2.0-flash"
	DefaultMaxTokens    = 4096
	DefaultTimeout      = 2 * time.Minute
	DefaultOutputFormat = OutputFormatTerminal
	DefaultConfigDir    = ".callsight"
	DefaultConfigFile   = "config.yaml"
)

// Environment variable names recognized for overrides.
const (
	EnvModel     = "CALLSIGHT_MODEL"
	EnvMaxTokens = "CALLSIGHT_MAX_TOKENS"
	EnvTimeout   = "CALLSIGHT_TIMEOUT"
	EnvOutput    = "CALLSIGHT_OUTPUT"
	EnvDebug     = "CALLSIGHT_DEBUG"
)

// CLIConfig holds the configuration for the callsight CLI.
type CLIConfig struct {
	// Model is the completion model used for extraction.
	Model string `yaml:"model"`

	// MaxTokens is the primary-stage response token budget.
	MaxTokens int `yaml:"max_tokens"`

	// Timeout bounds a single extraction run, both stages included.
	Timeout time.Duration `yaml:"timeout"`

	// OutputFormat selects terminal or JSON output.
	OutputFormat OutputFormat `yaml:"output_format"`

	// Debug enables debug-level logging.
	Debug bool `yaml:"debug"`
}

// DefaultConfig returns a config populated with default values.
func DefaultConfig() *CLIConfig {
	return &CLIConfig{
		Model:        DefaultModel,
		MaxTokens:    DefaultMaxTokens,
		Timeout:      DefaultTimeout,
		OutputFormat: DefaultOutputFormat,
	}
}

// ConfigPath returns the default config file location,
// ~/.callsight/config.yaml.
func ConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, DefaultConfigDir, DefaultConfigFile), nil
}

// LoadConfig loads configuration from the default file location, then
// applies environment variable overrides. A missing config file is not an
// error; defaults are used.
func LoadConfig() (*CLIConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFromFile(path)
}

// LoadConfigFromFile loads configuration from the given path, then applies
// environment variable overrides. A missing file yields defaults.
func LoadConfigFromFile(path string) (*CLIConfig, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies CALLSIGHT_* environment variables on top of
// file values.
func (c *CLIConfig) applyEnvOverrides() {
	if v := os.Getenv(EnvModel); v != "" {
		c.Model = v
	}
	if v := os.Getenv(EnvMaxTokens); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxTokens = n
		}
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Timeout = d
		}
	}
	if v := os.Getenv(EnvOutput); v != "" {
		c.OutputFormat = OutputFormat(v)
	}
	if v := os.Getenv(EnvDebug); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Debug = b
		}
	}
}

// Validate checks the configuration for invalid values.
func (c *CLIConfig) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("model must not be empty")
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be positive, got %d", c.MaxTokens)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	switch c.OutputFormat {
	case OutputFormatTerminal, OutputFormatJSON:
	default:
		return fmt.Errorf("unsupported output format %q (want %s or %s)",
			c.OutputFormat, OutputFormatTerminal, OutputFormatJSON)
	}
	return nil
}

// Save writes the configuration to the given path, creating the parent
// directory if needed.
func (c *CLIConfig) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	return nil
}
