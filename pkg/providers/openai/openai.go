// Package openai provides a chat completions adapter for the OpenAI API.
package openai

import (
	"context"
	"fmt"

	"github.com/germanamz/multiquery/pkg/modeladapter"
	"github.com/germanamz/multiquery/pkg/providers"
)

const (
	// DefaultBaseURL is the public OpenAI API endpoint.
	DefaultBaseURL = "https://api.openai.com"
	// DefaultModel is used when the caller does not pick a model.
	DefaultModel = "gpt-4o"

	completionsPath = "/v1/chat/completions"
)

var _ providers.Generator = (*Adapter)(nil)

// Adapter implements providers.Generator for the OpenAI Chat Completions API.
type Adapter struct {
	modeladapter.ModelAdapter
}

// New creates an Adapter configured for the OpenAI API.
// The baseURL should be "https://api.openai.com" (no trailing slash).
func New(baseURL, apiKey, model string) *Adapter {
	a := &Adapter{}
	a.BaseURL = baseURL
	a.Auth = modeladapter.Auth{Key: apiKey}
	a.Name = model

	return a
}

// Generate sends the prompt, preceded by an optional system message, and
// returns the content of the first choice.
func (a *Adapter) Generate(ctx context.Context, prompt, role string) (string, error) {
	req := BuildRequest(a.Name, prompt, role)

	var resp apiResponse
	if err := a.PostJSON(ctx, completionsPath, req, &resp); err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}

	if resp.Usage != nil {
		a.RecordUsage(modeladapter.Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
		})
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: %w", &modeladapter.FormatError{Detail: "no choices in response"})
	}

	msg := resp.Choices[0].Message
	if msg == nil || msg.Content == nil {
		return "", fmt.Errorf("openai: %w", &modeladapter.FormatError{Detail: "first choice has no message content"})
	}

	return *msg.Content, nil
}

// --- request types ---

// Request is the chat completions request body.
type Request struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

// Message is one chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// BuildRequest lays out the messages for a single prompt. A non-empty role
// becomes a leading system message.
func BuildRequest(model, prompt, role string) Request {
	msgs := make([]Message, 0, 2)

	if role != "" {
		msgs = append(msgs, Message{Role: "system", Content: role})
	}

	msgs = append(msgs, Message{Role: "user", Content: prompt})

	return Request{Model: model, Messages: msgs}
}

// --- response types ---

type apiResponse struct {
	Choices []apiChoice `json:"choices"`
	Usage   *apiUsage   `json:"usage"`
}

type apiChoice struct {
	Message *apiRespMessage `json:"message"`
}

type apiRespMessage struct {
	Content *string `json:"content"`
}

type apiUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
}
