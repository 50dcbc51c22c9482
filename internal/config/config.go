// Package config resolves the two required settings of the server:
// the Jira base URL and a personal access token. Either missing is a
// startup-fatal condition.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the full server configuration.
type Config struct {
	BaseURL string `yaml:"base_url"`
	Token   string `yaml:"token"`
}

// Load builds the configuration from an optional YAML file with
// environment variables filling anything the file leaves empty.
func Load(path string) (Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = strings.TrimSpace(os.Getenv("JIRA_BASE_URL"))
	}
	if cfg.Token == "" {
		cfg.Token = strings.TrimSpace(os.Getenv("JIRA_PAT"))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the required settings.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("missing Jira base URL: set JIRA_BASE_URL or base_url in the config file")
	}
	if c.Token == "" {
		return errors.New("missing Jira personal access token: set JIRA_PAT or token in the config file")
	}
	return nil
}
