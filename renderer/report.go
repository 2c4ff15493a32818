package renderer

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/rpametrics"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// ReportMarkdown renders the full report of a dashboard: summary, trend,
// breakdowns and, when loaded, the functional-area savings.
func ReportMarkdown(d *rpametrics.Dashboard) string {
	var b strings.Builder
	io.WriteString(&b, SummaryMarkdown(d))
	io.WriteString(&b, "\n")
	io.WriteString(&b, TrendMarkdown(d))
	ConditionalBlock(&b, func(w io.Writer) bool {
		if len(d.Rows) == 0 {
			return false
		}
		io.WriteString(w, "\n")
		io.WriteString(w, BreakdownMarkdown(d))
		return true
	})
	ConditionalBlock(&b, func(w io.Writer) bool {
		if d.FunctionalSavings == nil {
			return false
		}
		io.WriteString(w, "\n")
		io.WriteString(w, SavingsMarkdown(d.FunctionalSavings, d.Currency))
		return true
	})
	return b.String()
}

var gfm = goldmark.New(goldmark.WithExtensions(extension.GFM))

// HTML converts a markdown document to HTML, tables included.
func HTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := gfm.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("cannot render markdown: %w", err)
	}
	return buf.String(), nil
}
