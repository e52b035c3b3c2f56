// Package config loads postdash configuration from
// ~/.postdash/config.yaml with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all postdash configuration.
type Config struct {
	// External services
	Auth  AuthConfig  `yaml:"auth"`
	Posts PostsConfig `yaml:"posts"`

	// UI
	Theme string `yaml:"theme"` // light, dark

	// Logging
	Debug bool `yaml:"debug"`
}

// AuthConfig configures the mock auth API client.
type AuthConfig struct {
	BaseURL string `yaml:"base_url"`
	// APIKey is attached on the single 401 retry.
	APIKey    string `yaml:"api_key"`
	KeyHeader string `yaml:"key_header"`
	Timeout   string `yaml:"timeout"` // empty = no timeout
}

// PostsConfig configures the posts feed client.
type PostsConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

// DefaultConfig returns the default configuration, pointed at the
// public mock services.
func DefaultConfig() *Config {
	return &Config{
		Auth: AuthConfig{
			BaseURL:   "https://reqres.in/api",
			APIKey:    "reqres-free-v1",
			KeyHeader: "x-api-key",
		},
		Posts: PostsConfig{
			BaseURL: "https://jsonplaceholder.typicode.com",
		},
		Theme: "light",
	}
}

// DefaultDir returns the postdash home directory (~/.postdash).
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".postdash"
	}
	return filepath.Join(home, ".postdash")
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return filepath.Join(DefaultDir(), "config.yaml")
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults; environment overrides are applied either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies POSTDASH_* environment overrides.
func (c *Config) applyEnvOverrides() {
	if url := os.Getenv("POSTDASH_AUTH_URL"); url != "" {
		c.Auth.BaseURL = url
	}
	if key := os.Getenv("POSTDASH_API_KEY"); key != "" {
		c.Auth.APIKey = key
	}
	if url := os.Getenv("POSTDASH_POSTS_URL"); url != "" {
		c.Posts.BaseURL = url
	}
	if theme := os.Getenv("POSTDASH_THEME"); theme != "" {
		c.Theme = theme
	}
	if os.Getenv("POSTDASH_DEBUG") == "1" {
		c.Debug = true
	}
}

// AuthTimeout returns the auth client timeout, zero when unset so a
// hung request only stalls its own flow.
func (c *Config) AuthTimeout() time.Duration {
	return parseTimeout(c.Auth.Timeout)
}

// PostsTimeout returns the posts client timeout.
func (c *Config) PostsTimeout() time.Duration {
	return parseTimeout(c.Posts.Timeout)
}

func parseTimeout(s string) time.Duration {
	if s == "" {
		return 0
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0
	}
	return d
}
