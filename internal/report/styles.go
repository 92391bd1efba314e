package report

import "github.com/charmbracelet/lipgloss"

// styles holds the lipgloss styles of the text report, bound to one
// renderer so the colour profile follows the destination writer.
type styles struct {
	title    lipgloss.Style
	header   lipgloss.Style
	cell     lipgloss.Style
	pass     lipgloss.Style
	fail     lipgloss.Style
	setup    lipgloss.Style
	baseline lipgloss.Style
	note     lipgloss.Style
	border   lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title: r.NewStyle().
			Foreground(lipgloss.Color("#FFF")).
			Background(lipgloss.Color("#7D56F4")). // Brand Color
			Bold(true).
			Padding(0, 1),
		header: r.NewStyle().
			Foreground(lipgloss.Color("63")).
			Bold(true).
			Padding(0, 1),
		cell: r.NewStyle().Padding(0, 1),
		pass: r.NewStyle().
			Foreground(lipgloss.Color("46")). // Green
			Bold(true),
		fail: r.NewStyle().
			Foreground(lipgloss.Color("196")). // Red
			Bold(true),
		setup: r.NewStyle().
			Foreground(lipgloss.Color("214")). // Orange
			Bold(true),
		baseline: r.NewStyle().Italic(true),
		note:     r.NewStyle().Foreground(lipgloss.Color("241")),
		border:   r.NewStyle().Foreground(lipgloss.Color("63")),
	}
}

func (s styles) status(st string) lipgloss.Style {
	switch st {
	case "PASS":
		return s.pass
	case "DISQUALIFIED":
		return s.fail
	case "SETUP FAILED":
		return s.setup
	}
	return s.cell
}
