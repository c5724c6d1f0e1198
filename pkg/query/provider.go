package query

import (
	"net/http"

	"github.com/germanamz/multiquery/pkg/modeladapter"
	"github.com/germanamz/multiquery/pkg/providers"
	"github.com/germanamz/multiquery/pkg/providers/gemini"
	"github.com/germanamz/multiquery/pkg/providers/openai"
)

// Factory builds a Generator for one call. A nil client selects the adapter's
// default HTTP client.
type Factory func(baseURL, apiKey, model string, client *http.Client) providers.Generator

// Provider describes one queryable backend. RateLimits, when set, reads the
// quota headers of an error response for the debug log.
type Provider struct {
	Name         string
	BaseURL      string
	DefaultModel string
	New          Factory
	RateLimits   modeladapter.RateLimitHeaderParser
}

// Provider names accepted by Client.Query.
const (
	Gemini = "gemini"
	OpenAI = "openai"
)

// DefaultProviders returns the gemini and openai providers with their public
// endpoints and default models.
func DefaultProviders() []Provider {
	return []Provider{
		{
			Name:         Gemini,
			BaseURL:      gemini.DefaultBaseURL,
			DefaultModel: gemini.DefaultModel,
			New:          newGemini,
		},
		{
			Name:         OpenAI,
			BaseURL:      openai.DefaultBaseURL,
			DefaultModel: openai.DefaultModel,
			New:          newOpenAI,
			RateLimits:   modeladapter.ParseOpenAIRateLimitHeaders,
		},
	}
}

func newGemini(baseURL, apiKey, model string, client *http.Client) providers.Generator {
	a := gemini.New(baseURL, apiKey, model)
	a.Client = client

	return a
}

func newOpenAI(baseURL, apiKey, model string, client *http.Client) providers.Generator {
	a := openai.New(baseURL, apiKey, model)
	a.Client = client

	return a
}
