// Package credentials reports which provider API keys are present in the
// environment.
package credentials

import "os"

// Default environment variables holding the provider API keys.
const (
	GeminiEnvVar = "GOOGLE_AI_KEY"
	OpenAIEnvVar = "OPENAI_API_KEY"
)

// Status describes whether a provider's credential is available.
type Status struct {
	Configured bool   `json:"configured"`
	EnvVar     string `json:"env_var"`
}

// LookupFunc reads an environment variable. It has the signature of
// os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Resolver maps provider names to the environment variables that hold their
// keys. The zero value has no bindings; use New.
type Resolver struct {
	envVars map[string]string
	lookup  LookupFunc
}

// New creates a Resolver over the given provider → env var bindings.
// A nil lookup reads the process environment.
func New(envVars map[string]string, lookup LookupFunc) *Resolver {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	bindings := make(map[string]string, len(envVars))
	for p, v := range envVars {
		bindings[p] = v
	}

	return &Resolver{envVars: bindings, lookup: lookup}
}

// Resolve returns the key for provider and its status. An unset or empty
// variable is reported as not configured; an unknown provider additionally
// has an empty EnvVar.
func (r *Resolver) Resolve(provider string) (string, Status) {
	envVar, ok := r.envVars[provider]
	if !ok {
		return "", Status{}
	}

	key, _ := r.lookup(envVar)

	return key, Status{Configured: key != "", EnvVar: envVar}
}

// Check reports the status of every bound provider.
func (r *Resolver) Check() map[string]Status {
	out := make(map[string]Status, len(r.envVars))
	for p := range r.envVars {
		_, st := r.Resolve(p)
		out[p] = st
	}

	return out
}
