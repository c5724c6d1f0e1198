// Package providers defines the interface shared by the LLM provider adapters.
//
// It is organized into sub-packages:
//   - [github.com/germanamz/multiquery/pkg/providers/gemini]: Google Gemini generateContent, key in the query string
//   - [github.com/germanamz/multiquery/pkg/providers/openai]: OpenAI chat completions, key as a bearer token
//
// Both adapters embed [github.com/germanamz/multiquery/pkg/modeladapter.ModelAdapter]
// and differ only in endpoint, credential placement, request body and the path
// the reply text is read from.
package providers
