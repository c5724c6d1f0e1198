// Package render writes query results and credential reports to a terminal
// or a pipe.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/germanamz/multiquery/pkg/credentials"
	"github.com/germanamz/multiquery/pkg/query"
)

// Format selects how output is written.
type Format string

const (
	JSON     Format = "json"
	Markdown Format = "markdown"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case JSON, Markdown:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown format %q (want json or markdown)", s)
}

var (
	colorMuted   = lipgloss.Color("#656d76")
	colorError   = lipgloss.Color("#cf222e")
	colorSuccess = lipgloss.Color("#1a7f37")

	modelStyle      = lipgloss.NewStyle().Bold(true)
	dimStyle        = lipgloss.NewStyle().Foreground(colorMuted)
	okStyle         = lipgloss.NewStyle().Foreground(colorSuccess)
	errorBlockStyle = lipgloss.NewStyle().
			PaddingLeft(1).
			BorderLeft(true).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(colorError)
)

// WriteJSON writes v as a 2-space indented JSON document followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)

	return enc.Encode(v)
}

// Result writes res in the given format.
func Result(w io.Writer, f Format, res query.Result) error {
	if f != Markdown {
		return WriteJSON(w, res)
	}

	header := modelStyle.Render(res.Model)
	if !res.Available {
		_, err := fmt.Fprintf(w, "%s\n%s\n", header, errorBlockStyle.Render(res.Text()))
		return err
	}

	_, err := fmt.Fprintf(w, "%s\n%s", header, renderMarkdown(res.Text(), 100))
	return err
}

// Check writes a credential report in the given format.
func Check(w io.Writer, f Format, statuses map[string]credentials.Status) error {
	if f != Markdown {
		return WriteJSON(w, statuses)
	}

	names := make([]string, 0, len(statuses))
	for n := range statuses {
		names = append(names, n)
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, n := range names {
		st := statuses[n]
		mark := errorBlockStyle.Render("missing")
		if st.Configured {
			mark = okStyle.Render("configured")
		}
		fmt.Fprintf(&sb, "%s %s %s\n", modelStyle.Render(n), mark, dimStyle.Render("("+st.EnvVar+")"))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// renderMarkdown converts markdown text to terminal-formatted output. Falls
// back to the plain text if the renderer cannot be built or fails.
func renderMarkdown(text string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return text + "\n"
	}

	out, err := r.Render(text)
	if err != nil {
		return text + "\n"
	}

	return out
}
