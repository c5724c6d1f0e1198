package query

// Request is a single prompt for one provider.
type Request struct {
	Prompt string `json:"prompt"`
	Role   string `json:"role,omitempty"`  // Optional system/instruction text.
	Model  string `json:"model,omitempty"` // Provider model id; empty selects the provider default.
}

// Result is the envelope returned for every query. Response is set iff
// Available is true; Error is set iff it is false.
type Result struct {
	Model     string  `json:"model"`
	Available bool    `json:"available"`
	Response  *string `json:"response,omitempty"`
	Error     *string `json:"error,omitempty"`
}

// Success builds an available result carrying text.
func Success(model, text string) Result {
	return Result{Model: model, Available: true, Response: &text}
}

// Failure builds an unavailable result carrying msg.
func Failure(model, msg string) Result {
	return Result{Model: model, Available: false, Error: &msg}
}

// Text returns the response or the error message, whichever is set.
func (r Result) Text() string {
	switch {
	case r.Response != nil:
		return *r.Response
	case r.Error != nil:
		return *r.Error
	}
	return ""
}
