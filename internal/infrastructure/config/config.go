// Package config internal/infrastructure/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the service configuration
type Config struct {
	Server struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Feed struct {
		URLTemplate string        `yaml:"url_template"`
		Timeout     time.Duration `yaml:"timeout"`
	} `yaml:"feed"`
	Store struct {
		Backend string `yaml:"backend"` // "memory" or "badger"
		Path    string `yaml:"path"`    // badger data directory
	} `yaml:"store"`
	Rates struct {
		NearTermDays int `yaml:"near_term_days"`
		NextTermDays int `yaml:"next_term_days"`
		Year         int `yaml:"year"` // 0 means current year
	} `yaml:"rates"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Default returns the configuration used when no file is supplied
func Default() *Config {
	c := &Config{}
	c.Server.Port = 8080
	c.Server.ReadTimeout = 10 * time.Second
	c.Server.WriteTimeout = 60 * time.Second
	c.Server.ShutdownTimeout = 10 * time.Second
	c.Feed.Timeout = 30 * time.Second
	c.Store.Backend = "memory"
	c.Store.Path = "./data"
	c.Rates.NearTermDays = 30
	c.Rates.NextTermDays = 60
	c.Log.Level = "info"
	return c
}

// Load reads and parses a YAML configuration file over the defaults
func Load(path string) (*Config, error) {
	c := Default()

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment
// variables. An empty path loads the defaults only.
func LoadWithEnv(path string) (*Config, error) {
	var c *Config
	if path == "" {
		c = Default()
	} else {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		c = loaded
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("FEED_URL_TEMPLATE"); v != "" {
		c.Feed.URLTemplate = v
	}
	if v := os.Getenv("STORE_BACKEND"); v != "" {
		c.Store.Backend = v
	}
	if v := os.Getenv("STORE_PATH"); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return c, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in (0, 65535], got %d", c.Server.Port)
	}
	if c.Store.Backend != "memory" && c.Store.Backend != "badger" {
		return fmt.Errorf("store.backend must be 'memory' or 'badger', got '%s'", c.Store.Backend)
	}
	if c.Store.Backend == "badger" && c.Store.Path == "" {
		return fmt.Errorf("store.path is required for the badger backend")
	}
	if c.Rates.NearTermDays <= 0 || c.Rates.NextTermDays <= 0 {
		return fmt.Errorf("rates.near_term_days and rates.next_term_days must be positive")
	}
	return nil
}
