// Package config provides configuration loading and validation for the API server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config represents the server configuration that can be loaded from a JSON file.
// All fields are optional; missing values are filled by MergeWithDefaults.
type Config struct {
	// Listener
	Port            int    `json:"port,omitempty"`             // TCP port to listen on
	ReadTimeout     string `json:"read_timeout,omitempty"`     // Go duration, e.g. "10s"
	WriteTimeout    string `json:"write_timeout,omitempty"`    // Go duration
	IdleTimeout     string `json:"idle_timeout,omitempty"`     // Go duration
	ShutdownTimeout string `json:"shutdown_timeout,omitempty"` // Grace period on SIGINT/SIGTERM

	// Requests
	MaxBodyBytes    int64  `json:"max_body_bytes,omitempty"`    // Upper bound on request body size
	CORSAllowOrigin string `json:"cors_allow_origin,omitempty"` // Access-Control-Allow-Origin value

	// Logging
	LogLevel  string `json:"log_level,omitempty"`  // debug, info, warn, error
	LogFormat string `json:"log_format,omitempty"` // json or pretty
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() Config {
	return Config{
		Port:            8080,
		ReadTimeout:     "10s",
		WriteTimeout:    "10s",
		IdleTimeout:     "60s",
		ShutdownTimeout: "10s",
		MaxBodyBytes:    1 << 20,
		CORSAllowOrigin: "*",
		LogLevel:        "info",
		LogFormat:       "json",
	}
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
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.MaxBodyBytes < 0 {
		return fmt.Errorf("config error: 'max_body_bytes' must be non-negative")
	}

	durations := map[string]string{
		"read_timeout":     c.ReadTimeout,
		"write_timeout":    c.WriteTimeout,
		"idle_timeout":     c.IdleTimeout,
		"shutdown_timeout": c.ShutdownTimeout,
	}
	for name, value := range durations {
		if value == "" {
			continue
		}
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("config error: '%s' is not a duration: %w", name, err)
		}
		if d < 0 {
			return fmt.Errorf("config error: '%s' must be non-negative", name)
		}
	}

	switch c.LogFormat {
	case "", "json", "pretty":
	default:
		return fmt.Errorf("config error: 'log_format' must be json or pretty")
	}

	return nil
}

// MergeWithDefaults returns a new Config with zero fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.ReadTimeout == "" {
		result.ReadTimeout = defaults.ReadTimeout
	}
	if result.WriteTimeout == "" {
		result.WriteTimeout = defaults.WriteTimeout
	}
	if result.IdleTimeout == "" {
		result.IdleTimeout = defaults.IdleTimeout
	}
	if result.ShutdownTimeout == "" {
		result.ShutdownTimeout = defaults.ShutdownTimeout
	}
	if result.MaxBodyBytes == 0 {
		result.MaxBodyBytes = defaults.MaxBodyBytes
	}
	if result.CORSAllowOrigin == "" {
		result.CORSAllowOrigin = defaults.CORSAllowOrigin
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}

	return result
}

// ApplyEnv overrides fields from environment variables when they are set.
// Unparseable numeric values are ignored.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Port = n
		}
	}
	if v := os.Getenv("MAX_BODY_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.MaxBodyBytes = n
		}
	}
	if v := os.Getenv("CORS_ALLOW_ORIGIN"); v != "" {
		c.CORSAllowOrigin = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
}

// Duration parses one of the duration fields, returning fallback when it is empty
// or invalid. Validate reports invalid values.
func Duration(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}
