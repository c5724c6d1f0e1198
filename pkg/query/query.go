package query

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/germanamz/multiquery/pkg/credentials"
	"github.com/germanamz/multiquery/pkg/metrics"
	"github.com/germanamz/multiquery/pkg/modeladapter"
	"github.com/germanamz/multiquery/pkg/providers"
)

// Client dispatches queries to the registered providers.
type Client struct {
	providers  map[string]Provider
	creds      *credentials.Resolver
	httpClient *http.Client
	log        *slog.Logger
	metrics    metrics.Collector
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client handed to every adapter. Its Timeout
// bounds each call; nil keeps the adapters' 120 second default.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithMetrics sets the metrics collector. The default is a no-op.
func WithMetrics(m metrics.Collector) Option {
	return func(c *Client) { c.metrics = m }
}

// NewClient creates a Client over the given providers. Later entries replace
// earlier ones with the same name.
func NewClient(creds *credentials.Resolver, provs []Provider, opts ...Option) *Client {
	c := &Client{
		providers: make(map[string]Provider, len(provs)),
		creds:     creds,
		log:       slog.New(slog.DiscardHandler),
		metrics:   metrics.NewNoopCollector(),
	}

	for _, p := range provs {
		c.providers[p.Name] = p
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Providers returns the registered provider names in sorted order.
func (c *Client) Providers() []string {
	names := make([]string, 0, len(c.providers))
	for n := range c.providers {
		names = append(names, n)
	}

	sort.Strings(names)

	return names
}

// Check reports the credential status of every provider the resolver knows.
func (c *Client) Check() map[string]credentials.Status {
	return c.creds.Check()
}

// Query sends req to the named provider. It never fails: a missing
// credential, an HTTP error, a transport failure, an unexpected body or even a
// panic inside the adapter all come back as an unavailable Result.
func (c *Client) Query(ctx context.Context, provider string, req Request) (res Result) {
	start := time.Now()

	p, ok := c.providers[provider]

	model := req.Model
	if model == "" {
		model = p.DefaultModel
	}

	log := c.log.With("provider", provider, "model", model)

	if !ok {
		return Failure(model, fmt.Sprintf("unknown provider %q", provider))
	}

	outcome := OutcomeOK
	defer func() {
		if r := recover(); r != nil {
			outcome = OutcomeError
			res = Failure(model, fmt.Sprint(r))
			log.ErrorContext(ctx, "adapter panicked", "panic", r)
		}
		c.metrics.RecordQuery(ctx, provider, string(outcome), time.Since(start).Milliseconds())
	}()

	key, st := c.creds.Resolve(provider)
	if !st.Configured {
		outcome = OutcomeMissingCredential
		log.DebugContext(ctx, "credential not set", "env_var", st.EnvVar)
		return Failure(model, missingCredential(provider, st.EnvVar))
	}

	gen := p.New(p.BaseURL, key, model, c.httpClient)

	log.DebugContext(ctx, "query started", "prompt_chars", len(req.Prompt), "has_role", req.Role != "")

	text, err := gen.Generate(ctx, req.Prompt, req.Role)
	c.recordUsage(ctx, provider, gen)

	if err != nil {
		var msg string
		outcome, msg = Classify(err)
		log.DebugContext(ctx, "query failed", "outcome", outcome, "error", err, "elapsed", time.Since(start))
		logRateLimits(ctx, log, p.RateLimits, err)
		return Failure(model, msg)
	}

	log.DebugContext(ctx, "query finished", "response_chars", len(text), "elapsed", time.Since(start))

	return Success(model, text)
}

func (c *Client) recordUsage(ctx context.Context, provider string, gen providers.Generator) {
	ur, ok := gen.(providers.UsageReporter)
	if !ok {
		return
	}

	u, ok := ur.LastUsage()
	if !ok {
		return
	}

	c.metrics.RecordTokens(ctx, provider, "input", u.InputTokens)
	c.metrics.RecordTokens(ctx, provider, "output", u.OutputTokens)
	c.log.DebugContext(ctx, "token usage", "provider", provider, "input", u.InputTokens, "output", u.OutputTokens, "total", u.Total())
}

// logRateLimits logs the remaining quota reported with an HTTP error, which
// is usually what explains a 429.
func logRateLimits(ctx context.Context, log *slog.Logger, parse modeladapter.RateLimitHeaderParser, err error) {
	var statusErr *modeladapter.StatusError
	if parse == nil || !errors.As(err, &statusErr) {
		return
	}

	info := parse(statusErr.Header, time.Now())
	if info == nil {
		return
	}

	log.DebugContext(ctx, "rate limit",
		"remaining_requests", info.RemainingRequests,
		"remaining_tokens", info.RemainingTokens,
		"requests_reset", info.RequestsReset,
		"tokens_reset", info.TokensReset,
	)
}

func missingCredential(provider, envVar string) string {
	if envVar == "" {
		return fmt.Sprintf("no credential configured for %s", provider)
	}

	return envVar + " not set"
}
