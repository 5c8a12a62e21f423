// Package config provides configuration loading and management for SysML Studio.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the complete SysML Studio configuration
type Config struct {
	Graph GraphConfig `yaml:"graph"`
	HTTP  HTTPConfig  `yaml:"http"`
	NATS  NATSConfig  `yaml:"nats"`
	Log   LogConfig   `yaml:"log"`
}

// GraphConfig configures the Neo4j connection
type GraphConfig struct {
	// URI is the bolt URI of the graph store (default: bolt://localhost:7687)
	URI string `yaml:"uri"`
	// Username for basic auth
	Username string `yaml:"username"`
	// Password for basic auth
	Password string `yaml:"password"`
	// Database selects the Neo4j database (empty = server default)
	Database string `yaml:"database"`
}

// HTTPConfig configures the HTTP server
type HTTPConfig struct {
	// Addr is the listen address (default: :8080)
	Addr string `yaml:"addr"`
	// Prefix is the base path segment for all API routes (default: api)
	Prefix string `yaml:"prefix"`
}

// NATSConfig configures the NATS connection for model change events
type NATSConfig struct {
	// URL is the NATS server URL (empty = use embedded server when enabled)
	URL string `yaml:"url"`
	// Embedded indicates whether to run an embedded NATS server
	Embedded bool `yaml:"embedded"`
	// Enabled turns event publishing on; the store works without it
	Enabled bool `yaml:"enabled"`
}

// LogConfig configures structured logging
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `yaml:"level"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Graph: GraphConfig{
			URI:      "bolt://localhost:7687",
			Username: "neo4j",
			Password: "",
			Database: "",
		},
		HTTP: HTTPConfig{
			Addr:   ":8080",
			Prefix: "api",
		},
		NATS: NATSConfig{
			URL:      "",
			Embedded: true,
			Enabled:  false,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Graph.URI == "" {
		return fmt.Errorf("graph.uri is required")
	}
	if c.Graph.Username == "" {
		return fmt.Errorf("graph.username is required")
	}
	if c.HTTP.Addr == "" {
		return fmt.Errorf("http.addr is required")
	}
	if c.HTTP.Prefix == "" {
		return fmt.Errorf("http.prefix is required")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Graph
	if other.Graph.URI != "" {
		c.Graph.URI = other.Graph.URI
	}
	if other.Graph.Username != "" {
		c.Graph.Username = other.Graph.Username
	}
	if other.Graph.Password != "" {
		c.Graph.Password = other.Graph.Password
	}
	if other.Graph.Database != "" {
		c.Graph.Database = other.Graph.Database
	}

	// HTTP
	if other.HTTP.Addr != "" {
		c.HTTP.Addr = other.HTTP.Addr
	}
	if other.HTTP.Prefix != "" {
		c.HTTP.Prefix = other.HTTP.Prefix
	}

	// NATS
	if other.NATS.URL != "" {
		c.NATS.URL = other.NATS.URL
		c.NATS.Embedded = false
	}
	if other.NATS.Enabled {
		c.NATS.Enabled = true
	}

	// Log
	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
}
