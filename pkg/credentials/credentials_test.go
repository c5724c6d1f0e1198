package credentials_test

import (
	"testing"

	"github.com/germanamz/multiquery/pkg/credentials"
	"github.com/stretchr/testify/assert"
)

func envMap(m map[string]string) credentials.LookupFunc {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestResolve_Configured(t *testing.T) {
	r := credentials.New(map[string]string{"gemini": "GOOGLE_AI_KEY"}, envMap(map[string]string{
		"GOOGLE_AI_KEY": "abc",
	}))

	key, st := r.Resolve("gemini")
	assert.Equal(t, "abc", key)
	assert.Equal(t, credentials.Status{Configured: true, EnvVar: "GOOGLE_AI_KEY"}, st)
}

func TestResolve_UnsetAndEmpty(t *testing.T) {
	r := credentials.New(map[string]string{
		"gemini": "GOOGLE_AI_KEY",
		"openai": "OPENAI_API_KEY",
	}, envMap(map[string]string{"OPENAI_API_KEY": ""}))

	key, st := r.Resolve("gemini")
	assert.Empty(t, key)
	assert.False(t, st.Configured)
	assert.Equal(t, "GOOGLE_AI_KEY", st.EnvVar)

	key, st = r.Resolve("openai")
	assert.Empty(t, key)
	assert.False(t, st.Configured)
	assert.Equal(t, "OPENAI_API_KEY", st.EnvVar)
}

func TestResolve_UnknownProvider(t *testing.T) {
	r := credentials.New(map[string]string{"gemini": "GOOGLE_AI_KEY"}, envMap(nil))

	key, st := r.Resolve("claude")
	assert.Empty(t, key)
	assert.Equal(t, credentials.Status{}, st)
}

func TestCheck_AlwaysListsEveryProvider(t *testing.T) {
	r := credentials.New(map[string]string{
		"gemini": "GOOGLE_AI_KEY",
		"openai": "OPENAI_API_KEY",
	}, envMap(map[string]string{"OPENAI_API_KEY": "sk"}))

	got := r.Check()
	assert.Equal(t, map[string]credentials.Status{
		"gemini": {Configured: false, EnvVar: "GOOGLE_AI_KEY"},
		"openai": {Configured: true, EnvVar: "OPENAI_API_KEY"},
	}, got)
}

func TestNew_NilLookupReadsProcessEnv(t *testing.T) {
	t.Setenv(credentials.GeminiEnvVar, "g")
	t.Setenv(credentials.OpenAIEnvVar, "")

	got := credentials.New(map[string]string{
		"gemini": credentials.GeminiEnvVar,
		"openai": credentials.OpenAIEnvVar,
	}, nil).Check()
	assert.True(t, got["gemini"].Configured)
	assert.False(t, got["openai"].Configured)
}

func TestNew_CopiesBindings(t *testing.T) {
	bindings := map[string]string{"gemini": "GOOGLE_AI_KEY"}
	r := credentials.New(bindings, envMap(nil))
	bindings["openai"] = "OPENAI_API_KEY"

	got := r.Check()
	assert.Len(t, got, 1)
	assert.Contains(t, got, "gemini")
}
