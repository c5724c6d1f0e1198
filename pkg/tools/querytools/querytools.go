// Package querytools builds the MCP tools that forward prompts to the
// configured providers.
package querytools

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/germanamz/multiquery/pkg/query"
	"github.com/germanamz/multiquery/pkg/render"
	"github.com/germanamz/multiquery/pkg/tools/toolbox"
)

// Tool names.
const (
	QueryModel = "query_model"
	CheckKeys  = "check_keys"
)

type queryInput struct {
	Model   string `json:"model"`
	Prompt  string `json:"prompt"`
	Role    string `json:"role"`
	ModelID string `json:"model_id"`
}

// New returns the query_model and check_keys tools backed by c.
func New(c *query.Client) []toolbox.Tool {
	return []toolbox.Tool{queryTool(c), checkTool(c)}
}

func queryTool(c *query.Client) toolbox.Tool {
	names := c.Providers()
	enum, _ := json.Marshal(names)

	schema := fmt.Sprintf(`{
  "type": "object",
  "properties": {
    "model": {"type": "string", "enum": %s, "description": "Provider to query"},
    "prompt": {"type": "string", "description": "The prompt to send"},
    "role": {"type": "string", "description": "Optional system/role instruction"},
    "model_id": {"type": "string", "description": "Provider model id; empty selects the default"}
  },
  "required": ["model", "prompt"]
}`, enum)

	return toolbox.Tool{
		Name:        QueryModel,
		Description: "Send a prompt to an external LLM and return {model, available, response|error}.",
		InputSchema: json.RawMessage(schema),
		Handler: func(ctx context.Context, input json.RawMessage) (string, error) {
			var in queryInput
			if err := json.Unmarshal(input, &in); err != nil {
				return "", fmt.Errorf("invalid input: %w", err)
			}

			if !slices.Contains(names, in.Model) {
				return "", fmt.Errorf("model must be one of %v, got %q", names, in.Model)
			}

			if in.Prompt == "" {
				return "", errors.New("prompt is required")
			}

			res := c.Query(ctx, in.Model, query.Request{
				Prompt: in.Prompt,
				Role:   in.Role,
				Model:  in.ModelID,
			})

			return encode(res)
		},
	}
}

func checkTool(c *query.Client) toolbox.Tool {
	return toolbox.Tool{
		Name:        CheckKeys,
		Description: "Report which provider API keys are configured.",
		InputSchema: json.RawMessage(`{"type":"object","properties":{}}`),
		Handler: func(context.Context, json.RawMessage) (string, error) {
			return encode(c.Check())
		},
	}
}

func encode(v any) (string, error) {
	var buf bytes.Buffer
	if err := render.WriteJSON(&buf, v); err != nil {
		return "", err
	}

	return buf.String(), nil
}
