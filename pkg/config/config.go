// Package config loads the optional YAML configuration for multiquery.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/germanamz/multiquery/pkg/credentials"
	"github.com/germanamz/multiquery/pkg/modeladapter"
	"github.com/germanamz/multiquery/pkg/query"
	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration.
type Config struct {
	Timeout   string                    `yaml:"timeout"` // Per-call timeout as a duration string (e.g. "120s").
	Providers map[string]ProviderConfig `yaml:"providers"`
}

// ProviderConfig overrides the built-in settings of one provider. Empty
// fields keep the defaults.
type ProviderConfig struct {
	BaseURL   string `yaml:"base_url"`
	Model     string `yaml:"model"`
	APIKeyEnv string `yaml:"api_key_env"`
}

// Load reads a YAML file and returns a Config.
// Environment variables referenced as ${VAR} or $VAR in the YAML are expanded
// before parsing.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is caller-provided configuration, not user input
	if err != nil {
		return Config{}, fmt.Errorf("config: load: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}

	return cfg, nil
}

// Validate checks that every configured provider is known and the timeout
// parses.
func (c Config) Validate() error {
	known := make(map[string]struct{})
	for _, p := range query.DefaultProviders() {
		known[p.Name] = struct{}{}
	}

	for name := range c.Providers {
		if _, ok := known[name]; !ok {
			return fmt.Errorf("config: unknown provider %q", name)
		}
	}

	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}

	return nil
}

// TimeoutDuration returns the per-call timeout, defaulting to
// modeladapter.DefaultTimeout.
func (c Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return modeladapter.DefaultTimeout, nil
	}

	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("config: invalid timeout %q: %w", c.Timeout, err)
	}

	if d <= 0 {
		return 0, fmt.Errorf("config: timeout must be positive, got %q", c.Timeout)
	}

	return d, nil
}

// QueryProviders returns the default providers with this config's overrides
// applied.
func (c Config) QueryProviders() []query.Provider {
	provs := query.DefaultProviders()

	for i, p := range provs {
		pc, ok := c.Providers[p.Name]
		if !ok {
			continue
		}

		if pc.BaseURL != "" {
			provs[i].BaseURL = pc.BaseURL
		}

		if pc.Model != "" {
			provs[i].DefaultModel = pc.Model
		}
	}

	return provs
}

// EnvVars returns the provider → env var bindings with this config's
// overrides applied.
func (c Config) EnvVars() map[string]string {
	vars := map[string]string{
		query.Gemini: credentials.GeminiEnvVar,
		query.OpenAI: credentials.OpenAIEnvVar,
	}

	for name, pc := range c.Providers {
		if pc.APIKeyEnv != "" {
			vars[name] = pc.APIKeyEnv
		}
	}

	return vars
}
