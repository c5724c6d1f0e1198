package render_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/germanamz/multiquery/pkg/credentials"
	"github.com/germanamz/multiquery/pkg/query"
	"github.com/germanamz/multiquery/pkg/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	f, err := render.ParseFormat("json")
	require.NoError(t, err)
	assert.Equal(t, render.JSON, f)

	f, err = render.ParseFormat("markdown")
	require.NoError(t, err)
	assert.Equal(t, render.Markdown, f)

	_, err = render.ParseFormat("yaml")
	assert.ErrorContains(t, err, `unknown format "yaml"`)
}

func TestResult_JSONIsIndented(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render.Result(&buf, render.JSON, query.Success("gpt-4o", "a <b> & c")))

	want := "{\n  \"model\": \"gpt-4o\",\n  \"available\": true,\n  \"response\": \"a <b> & c\"\n}\n"
	assert.Equal(t, want, buf.String())
}

func TestResult_JSONFailure(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render.Result(&buf, render.JSON, query.Failure("gemini-2.0-flash", "GOOGLE_AI_KEY not set")))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, false, got["available"])
	assert.Equal(t, "GOOGLE_AI_KEY not set", got["error"])
	assert.NotContains(t, got, "response")
}

func TestCheck_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render.Check(&buf, render.JSON, map[string]credentials.Status{
		"openai": {Configured: true, EnvVar: "OPENAI_API_KEY"},
		"gemini": {Configured: false, EnvVar: "GOOGLE_AI_KEY"},
	}))

	want := `{
  "gemini": {
    "configured": false,
    "env_var": "GOOGLE_AI_KEY"
  },
  "openai": {
    "configured": true,
    "env_var": "OPENAI_API_KEY"
  }
}
`
	assert.Equal(t, want, buf.String())
}

func TestResult_Markdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render.Result(&buf, render.Markdown, query.Success("gpt-4o", "plain words")))

	assert.Contains(t, buf.String(), "gpt-4o")
	assert.Contains(t, buf.String(), "plain")
}

func TestResult_MarkdownFailure(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render.Result(&buf, render.Markdown, query.Failure("gpt-4o", "HTTP 401: denied")))

	assert.Contains(t, buf.String(), "HTTP 401: denied")
}

func TestCheck_Markdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render.Check(&buf, render.Markdown, map[string]credentials.Status{
		"openai": {Configured: true, EnvVar: "OPENAI_API_KEY"},
		"gemini": {Configured: false, EnvVar: "GOOGLE_AI_KEY"},
	}))

	out := buf.String()
	assert.Less(t, strings.Index(out, "gemini"), strings.Index(out, "openai"))
	assert.Contains(t, out, "GOOGLE_AI_KEY")
	assert.Contains(t, out, "configured")
}
