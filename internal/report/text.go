package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"
)

var textHeaders = []string{"PARAMS", "VARIANT", "STATUS", "MEAN", "MEDIAN", "P95", "ALLOC", "RATIO"}

func renderText(w io.Writer, s *Summary, profile termenv.Profile) error {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(profile)
	st := newStyles(r)

	var b strings.Builder
	b.WriteString(st.title.Render("perfexp"))
	fmt.Fprintf(&b, " seed %d · %d cases · %s\n\n", s.Seed, len(s.Rows), elapsed(s.Started, s.Finished))

	for _, g := range groupRows(s.Rows) {
		b.WriteString(st.header.Render(g.name))
		b.WriteString("\n")
		b.WriteString(textTable(st, g.rows).String())
		b.WriteString("\n\n")
	}

	var failures []Row
	for _, row := range s.Rows {
		if row.Err != nil {
			failures = append(failures, row)
		}
	}
	if len(failures) > 0 {
		b.WriteString(st.header.Render("Failures"))
		b.WriteString("\n")
		for _, row := range failures {
			label := Label(row.Status)
			fmt.Fprintf(&b, "  %s %s: %v\n", st.status(label).Render(label), row.Case.ID(), row.Err)
		}
		b.WriteString("\n")
	}

	for _, n := range s.Notes {
		b.WriteString(st.note.Render(n))
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "%d passed, %d disqualified, %d setup failed\n", s.Passed, s.Disqualified, s.SetupFailed)

	_, err := io.WriteString(w, b.String())
	return err
}

func textTable(st styles, rows []Row) *table.Table {
	cells := make([][]string, len(rows))
	for i, row := range rows {
		variant := row.Case.Variant
		if row.Case.Baseline {
			variant += " (baseline)"
		}
		cells[i] = []string{
			params(row.Case),
			variant,
			Label(row.Status),
			statOrDash(row, row.Stats.Mean, Nanos),
			statOrDash(row, row.Stats.Median, Nanos),
			statOrDash(row, row.Stats.P95, Nanos),
			statOrDash(row, row.Stats.AllocBytes, Bytes),
			RatioText(row.Ratio),
		}
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(st.border).
		Headers(textHeaders...).
		Rows(cells...).
		StyleFunc(func(r, c int) lipgloss.Style {
			switch {
			case r == table.HeaderRow:
				return st.header
			case c == 2:
				return st.status(cells[r][2]).Padding(0, 1)
			case c == 1 && rows[r].Case.Baseline:
				return st.baseline.Padding(0, 1)
			}
			return st.cell
		})
}

func statOrDash(row Row, v float64, format func(float64) string) string {
	if row.Stats.N == 0 {
		return "-"
	}
	return format(v)
}

type rowGroup struct {
	name string
	rows []Row
}

// groupRows splits rows by group, keeping first-seen order.
func groupRows(rows []Row) []rowGroup {
	var out []rowGroup
	index := make(map[string]int)
	for _, row := range rows {
		i, ok := index[row.Case.Group]
		if !ok {
			i = len(out)
			index[row.Case.Group] = i
			out = append(out, rowGroup{name: row.Case.Group})
		}
		out[i].rows = append(out[i].rows, row)
	}
	return out
}
