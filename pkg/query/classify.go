package query

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/germanamz/multiquery/pkg/modeladapter"
)

// Outcome labels how a query ended.
type Outcome string

const (
	OutcomeOK                Outcome = "ok"
	OutcomeMissingCredential Outcome = "missing_credential"
	OutcomeHTTPError         Outcome = "http_error"
	OutcomeTransportError    Outcome = "transport_error"
	OutcomeFormatError       Outcome = "format_error"
	OutcomeError             Outcome = "error"
)

// MaxErrorBody is the number of characters of an error response body kept in
// the envelope.
const MaxErrorBody = 500

// Classify maps an adapter error to its outcome and the message reported in
// the envelope.
func Classify(err error) (Outcome, string) {
	var (
		statusErr    *modeladapter.StatusError
		transportErr *modeladapter.TransportError
		formatErr    *modeladapter.FormatError
	)

	switch {
	case errors.As(err, &statusErr):
		return OutcomeHTTPError, fmt.Sprintf("HTTP %d: %s", statusErr.Code, truncate(statusErr.Body, MaxErrorBody))
	case errors.As(err, &transportErr):
		return OutcomeTransportError, "Connection error: " + transportErr.Reason()
	case errors.As(err, &formatErr):
		return OutcomeFormatError, "Unexpected response format: " + formatErr.Detail
	default:
		return OutcomeError, err.Error()
	}
}

// truncate keeps the first n characters of s. Every byte that is not part of
// a valid UTF-8 sequence becomes one U+FFFD and counts as one character.
func truncate(s string, n int) string {
	var sb strings.Builder

	for i := 0; i < n && len(s) > 0; i++ {
		r, size := utf8.DecodeRuneInString(s)
		sb.WriteRune(r)
		s = s[size:]
	}

	return sb.String()
}
