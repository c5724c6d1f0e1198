package providers

import (
	"context"

	"github.com/germanamz/multiquery/pkg/modeladapter"
)

// Generator sends a single prompt, with an optional role instruction, to an
// LLM and returns the generated text.
type Generator interface {
	Generate(ctx context.Context, prompt, role string) (string, error)
	ModelName() string
}

// UsageReporter exposes the token counts of the last call.
// Generators that embed modeladapter.ModelAdapter implement it automatically.
type UsageReporter interface {
	LastUsage() (modeladapter.Usage, bool)
}
