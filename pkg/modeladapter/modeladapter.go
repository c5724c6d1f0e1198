package modeladapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultTimeout bounds a single provider call, including reading the body.
const DefaultTimeout = 120 * time.Second

// MaxErrorBodyBytes caps how much of a non-2xx body is read. It holds 500
// characters even when each one takes four bytes.
const MaxErrorBodyBytes = 2000

// StatusError is returned when the API answers with a non-2xx status. Body
// holds at most MaxErrorBodyBytes of the response.
type StatusError struct {
	Code   int
	Body   string
	Header http.Header
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

// TransportError is returned when the HTTP round trip itself fails: DNS
// resolution, refused connections, TLS failures and timeouts.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "transport: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }

// Reason returns the innermost cause of the transport failure, stripped of
// the method and URL that net/http prepends.
func (e *TransportError) Reason() string {
	var urlErr *url.Error
	if errors.As(e.Err, &urlErr) {
		return urlErr.Err.Error()
	}

	return e.Err.Error()
}

// FormatError is returned by adapters when a 2xx response decodes as JSON but
// does not have the shape the provider documents.
type FormatError struct {
	Detail string
}

func (e *FormatError) Error() string {
	return "unexpected response format: " + e.Detail
}

// Auth holds authentication settings for an LLM provider API.
type Auth struct {
	Key    string // API key value.
	Header string // Header name (default: "Authorization").
	Scheme string // Scheme prefix (default: "Bearer" when Header is "Authorization").
	Query  string // Query parameter name; when set the key goes in the URL instead of a header.
}

// Usage holds the token counts a provider reported for one call.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Total returns the sum of input and output tokens.
func (u Usage) Total() int {
	return u.InputTokens + u.OutputTokens
}

// ModelAdapter holds shared state for LLM provider implementations. Embed it in
// concrete provider structs to get HTTP helpers, auth placement, custom headers
// and usage reporting.
type ModelAdapter struct {
	Name    string            // Model identifier (e.g. "gpt-4o").
	Auth    Auth              // Authentication settings.
	BaseURL string            // API base URL (no trailing slash).
	Client  *http.Client      // HTTP client; falls back to a client with DefaultTimeout.
	Headers map[string]string // Extra headers applied to every request.

	lastUsage     atomic.Pointer[Usage]
	clientOnce    sync.Once
	defaultClient *http.Client
}

// New creates a ModelAdapter with the given settings.
// A nil client falls back to a client with DefaultTimeout at call time.
func New(baseURL string, auth Auth, client *http.Client) ModelAdapter {
	return ModelAdapter{
		Auth:    auth,
		BaseURL: baseURL,
		Client:  client,
	}
}

// RecordUsage stores the token counts of the most recent call.
func (a *ModelAdapter) RecordUsage(u Usage) { a.lastUsage.Store(&u) }

// LastUsage returns the token counts of the most recent call.
// The bool is false when no call has reported usage yet.
func (a *ModelAdapter) LastUsage() (Usage, bool) {
	u := a.lastUsage.Load()
	if u == nil {
		return Usage{}, false
	}

	return *u, true
}

// ModelName returns the model identifier the adapter sends requests for.
func (a *ModelAdapter) ModelName() string { return a.Name }

func (a *ModelAdapter) httpClient() *http.Client {
	if a.Client != nil {
		return a.Client
	}

	a.clientOnce.Do(func() {
		a.defaultClient = &http.Client{Timeout: DefaultTimeout}
	})

	return a.defaultClient
}

// NewRequest builds an *http.Request with the base URL, auth, and custom
// headers already applied.
func (a *ModelAdapter) NewRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, a.BaseURL+path, body)
	if err != nil {
		return nil, err
	}

	if a.Auth.Key != "" {
		if a.Auth.Query != "" {
			q := req.URL.Query()
			q.Set(a.Auth.Query, a.Auth.Key)
			req.URL.RawQuery = q.Encode()
		} else {
			header := a.Auth.Header
			if header == "" {
				header = "Authorization"
			}

			value := a.Auth.Key
			if header == "Authorization" {
				scheme := a.Auth.Scheme
				if scheme == "" {
					scheme = "Bearer"
				}

				value = scheme + " " + value
			} else if a.Auth.Scheme != "" {
				value = a.Auth.Scheme + " " + value
			}

			req.Header.Set(header, value)
		}
	}

	for k, v := range a.Headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

// Do sends the request using the configured HTTP client. Round-trip failures
// are wrapped in a *TransportError.
func (a *ModelAdapter) Do(req *http.Request) (*http.Response, error) {
	resp, err := a.httpClient().Do(req) //nolint:gosec // URL is built from trusted BaseURL config, not user input.
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	return resp, nil
}

// PostJSON marshals payload as JSON, sends a POST to the given path,
// checks for a 2xx status, and unmarshals the response body into dest.
// If dest is nil the response body is discarded after the status check.
func (a *ModelAdapter) PostJSON(ctx context.Context, path string, payload any, dest any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := a.NewRequest(ctx, http.MethodPost, path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := a.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, MaxErrorBodyBytes))
		return &StatusError{Code: resp.StatusCode, Body: string(respBody), Header: resp.Header}
	}

	if dest == nil {
		return nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		// The client timeout also covers reading the body.
		return &TransportError{Err: err}
	}

	if err := json.Unmarshal(respBody, dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
