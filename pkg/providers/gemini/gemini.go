// Package gemini provides a generateContent adapter for the Google Gemini API.
package gemini

import (
	"context"
	"fmt"
	"net/url"

	"github.com/germanamz/multiquery/pkg/modeladapter"
	"github.com/germanamz/multiquery/pkg/providers"
)

const (
	// DefaultBaseURL is the public Generative Language API endpoint.
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	// DefaultModel is used when the caller does not pick a model.
	DefaultModel = "gemini-2.0-flash"

	// RoleAck is the model turn injected after a role instruction so the
	// conversation keeps strict user/model alternation.
	RoleAck = "Understood. I'll follow that role."
)

var _ providers.Generator = (*Adapter)(nil)

// Adapter implements providers.Generator for the Google Gemini API.
type Adapter struct {
	modeladapter.ModelAdapter
}

// New creates an Adapter configured for the Gemini API.
// The baseURL should be "https://generativelanguage.googleapis.com" (no trailing slash).
// The key is sent as the "key" query parameter.
func New(baseURL, apiKey, model string) *Adapter {
	a := &Adapter{}
	a.BaseURL = baseURL
	a.Auth = modeladapter.Auth{
		Key:   apiKey,
		Query: "key",
	}
	a.Name = model

	return a
}

// Generate sends the prompt, preceded by an optional role instruction, and
// returns the text of the first part of the first candidate.
func (a *Adapter) Generate(ctx context.Context, prompt, role string) (string, error) {
	req := BuildRequest(prompt, role)
	path := fmt.Sprintf("/v1beta/models/%s:generateContent", url.PathEscape(a.Name))

	var resp apiResponse
	if err := a.PostJSON(ctx, path, req, &resp); err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}

	if resp.UsageMetadata != nil {
		a.RecordUsage(modeladapter.Usage{
			InputTokens:  resp.UsageMetadata.PromptTokenCount,
			OutputTokens: resp.UsageMetadata.CandidatesTokenCount,
		})
	}

	text, err := resp.firstText()
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}

	return text, nil
}

// --- request types ---

// Request is the generateContent request body.
type Request struct {
	Contents []Content `json:"contents"`
}

// Content is one conversation turn.
type Content struct {
	Role  string `json:"role"`
	Parts []Part `json:"parts"`
}

// Part is a text fragment of a turn.
type Part struct {
	Text string `json:"text"`
}

// BuildRequest lays out the turns for a single prompt. A non-empty role is
// sent as a leading user turn answered by a canned model acknowledgment, since
// the role instruction is part of the conversation rather than a system field.
func BuildRequest(prompt, role string) Request {
	contents := make([]Content, 0, 3)

	if role != "" {
		contents = append(contents,
			textContent("user", role),
			textContent("model", RoleAck),
		)
	}

	contents = append(contents, textContent("user", prompt))

	return Request{Contents: contents}
}

func textContent(role, text string) Content {
	return Content{Role: role, Parts: []Part{{Text: text}}}
}

// --- response types ---

type apiResponse struct {
	Candidates    []apiCandidate `json:"candidates"`
	UsageMetadata *apiUsageMeta  `json:"usageMetadata"`
}

type apiCandidate struct {
	Content *apiContent `json:"content"`
}

type apiContent struct {
	Parts []apiPart `json:"parts"`
}

type apiPart struct {
	Text *string `json:"text"`
}

type apiUsageMeta struct {
	PromptTokenCount     int `json:"promptTokenCount"`
	CandidatesTokenCount int `json:"candidatesTokenCount"`
}

func (r apiResponse) firstText() (string, error) {
	if len(r.Candidates) == 0 {
		return "", &modeladapter.FormatError{Detail: "no candidates in response"}
	}

	c := r.Candidates[0].Content
	if c == nil {
		return "", &modeladapter.FormatError{Detail: "candidate has no content"}
	}

	if len(c.Parts) == 0 {
		return "", &modeladapter.FormatError{Detail: "candidate content has no parts"}
	}

	if c.Parts[0].Text == nil {
		return "", &modeladapter.FormatError{Detail: "first content part has no text"}
	}

	return *c.Parts[0].Text, nil
}
