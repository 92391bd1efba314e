package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
)

// Markdown renders the summary as GitHub-flavoured markdown.
func Markdown(s *Summary) string {
	var b strings.Builder
	b.WriteString("# perfexp report\n\n")
	fmt.Fprintf(&b, "Seed `%d`, %d cases, elapsed %s.\n\n", s.Seed, len(s.Rows), elapsed(s.Started, s.Finished))

	for _, g := range groupRows(s.Rows) {
		fmt.Fprintf(&b, "## %s\n\n", g.name)
		b.WriteString("| Params | Variant | Status | Mean | Median | P95 | Alloc | Ratio |\n")
		b.WriteString("|---|---|---|--:|--:|--:|--:|--:|\n")
		for _, row := range g.rows {
			variant := row.Case.Variant
			if row.Case.Baseline {
				variant = "*" + variant + "* (baseline)"
			}
			status := Label(row.Status)
			if row.Status != "passed" {
				status = "**" + status + "**"
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s |\n",
				params(row.Case), variant, status,
				statOrDash(row, row.Stats.Mean, Nanos),
				statOrDash(row, row.Stats.Median, Nanos),
				statOrDash(row, row.Stats.P95, Nanos),
				statOrDash(row, row.Stats.AllocBytes, Bytes),
				RatioText(row.Ratio))
		}
		b.WriteString("\n")
	}

	var failures []string
	for _, row := range s.Rows {
		if row.Err != nil {
			failures = append(failures, fmt.Sprintf("- `%s` %s: %s", row.Case.ID(), Label(row.Status), row.Err))
		}
	}
	if len(failures) > 0 {
		b.WriteString("## Failures\n\n")
		b.WriteString(strings.Join(failures, "\n"))
		b.WriteString("\n\n")
	}

	for _, n := range s.Notes {
		fmt.Fprintf(&b, "> %s\n\n", n)
	}
	fmt.Fprintf(&b, "%d passed, %d disqualified, %d setup failed.\n", s.Passed, s.Disqualified, s.SetupFailed)
	return b.String()
}

// renderMarkdown writes raw markdown for non-terminals and glamour-styled
// markdown otherwise.
func renderMarkdown(w io.Writer, s *Summary, opts Options) error {
	md := Markdown(s)
	if opts.Profile == termenv.Ascii {
		_, err := io.WriteString(w, md)
		return err
	}

	width := opts.Width
	if width == 0 {
		width = 100
	}
	out, err := Glamourize(md, width, glamour.WithAutoStyle())
	if err != nil {
		// Fall back to plain markdown.
		_, err = io.WriteString(w, md)
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// Glamourize renders markdown for a terminal.
func Glamourize(md string, width int, style glamour.TermRendererOption) (string, error) {
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}
