// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"quote-engine/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Server contains HTTP server configuration
	Server ServerConfig `json:"server"`

	// Rates contains rate table configuration
	Rates RatesConfig `json:"rates"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	// Address is the listen address
	Address string `json:"address"`

	// CORSOrigins lists allowed origins for the quote form frontend
	CORSOrigins []string `json:"cors_origins"`

	// ShutdownTimeoutSeconds bounds graceful shutdown
	ShutdownTimeoutSeconds int `json:"shutdown_timeout_seconds"`
}

// RatesConfig contains rate table settings
type RatesConfig struct {
	// File is an optional HCL rates file overlaid on the built-in
	// defaults. Empty means defaults only.
	File string `json:"file,omitempty"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default CLI output format (cli, json)
	DefaultFormat string `json:"default_format"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Server: ServerConfig{
			Address:                ":8080",
			CORSOrigins:            []string{"*"},
			ShutdownTimeoutSeconds: 10,
		},
		Rates: RatesConfig{},
		Output: OutputConfig{
			DefaultFormat: "cli",
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
