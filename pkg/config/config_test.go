package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/germanamz/multiquery/pkg/config"
	"github.com/germanamz/multiquery/pkg/credentials"
	"github.com/germanamz/multiquery/pkg/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "multiquery.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("GEMINI_PROXY", "http://localhost:9999")

	path := writeConfig(t, `
timeout: 30s
providers:
  gemini:
    base_url: ${GEMINI_PROXY}
    model: gemini-1.5-pro
  openai:
    api_key_env: AZURE_OPENAI_KEY
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "http://localhost:9999", cfg.Providers["gemini"].BaseURL)

	d, err := cfg.TimeoutDuration()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, d)

	provs := cfg.QueryProviders()
	require.Len(t, provs, 2)
	for _, p := range provs {
		switch p.Name {
		case query.Gemini:
			assert.Equal(t, "http://localhost:9999", p.BaseURL)
			assert.Equal(t, "gemini-1.5-pro", p.DefaultModel)
		case query.OpenAI:
			assert.Equal(t, "https://api.openai.com", p.BaseURL)
			assert.Equal(t, "gpt-4o", p.DefaultModel)
		}
	}

	assert.Equal(t, map[string]string{
		query.Gemini: credentials.GeminiEnvVar,
		query.OpenAI: "AZURE_OPENAI_KEY",
	}, cfg.EnvVars())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "config: load")
}

func TestLoad_BadYAML(t *testing.T) {
	_, err := config.Load(writeConfig(t, "providers: [unclosed"))
	assert.ErrorContains(t, err, "config: parse")
}

func TestZeroConfigDefaults(t *testing.T) {
	var cfg config.Config
	require.NoError(t, cfg.Validate())

	d, err := cfg.TimeoutDuration()
	require.NoError(t, err)
	assert.Equal(t, 120*time.Second, d)

	assert.Equal(t, query.DefaultProviders()[0].BaseURL, cfg.QueryProviders()[0].BaseURL)
	assert.Equal(t, credentials.GeminiEnvVar, cfg.EnvVars()[query.Gemini])
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		err  string
	}{
		{"unknown provider", config.Config{Providers: map[string]config.ProviderConfig{"claude": {}}}, `unknown provider "claude"`},
		{"bad timeout", config.Config{Timeout: "soon"}, `invalid timeout "soon"`},
		{"negative timeout", config.Config{Timeout: "-1s"}, "timeout must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorContains(t, tt.cfg.Validate(), tt.err)
		})
	}
}
