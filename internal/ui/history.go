// Package ui holds the terminal browser for saved runs.
package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"perfexp/internal/benchmark"
)

var (
	baseStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// HistoryModel lists saved runs and drills into the results of one of them.
// Runs are shown in the order given.
type HistoryModel struct {
	runs    []benchmark.Run
	list    table.Model
	results table.Model
	open    int
}

// NewHistoryModel builds the browser over runs.
func NewHistoryModel(runs []benchmark.Run) HistoryModel {
	list := newTable([]table.Column{
		{Title: "ID", Width: 36},
		{Title: "TIME", Width: 19},
		{Title: "SOURCE", Width: 8},
		{Title: "COMMIT", Width: 8},
		{Title: "CASES", Width: 6},
		{Title: "FAILED", Width: 6},
	})
	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		rows[i] = table.Row{
			r.ID,
			r.Timestamp.Format("2006-01-02 15:04:05"),
			string(r.Source),
			orDash(r.Commit),
			fmt.Sprintf("%d", len(r.Results)),
			fmt.Sprintf("%d", failed(r)),
		}
	}
	list.SetRows(rows)

	results := newTable([]table.Column{
		{Title: "NAME", Width: 48},
		{Title: "STATUS", Width: 14},
		{Title: "ns/op", Width: 12},
		{Title: "B/op", Width: 10},
		{Title: "ERROR", Width: 40},
	})

	return HistoryModel{runs: runs, list: list, results: results, open: -1}
}

func newTable(columns []table.Column) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// Open returns the run being inspected, if any.
func (m HistoryModel) Open() (benchmark.Run, bool) {
	if m.open < 0 {
		return benchmark.Run{}, false
	}
	return m.runs[m.open], true
}

func (m HistoryModel) Init() tea.Cmd { return nil }

func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetHeight(msg.Height - 6)
		m.results.SetHeight(msg.Height - 6)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "enter":
			if m.open < 0 && len(m.runs) > 0 {
				m.open = m.list.Cursor()
				m.results.SetRows(resultRows(m.runs[m.open]))
				m.results.GotoTop()
				return m, nil
			}
		case "esc", "backspace":
			if m.open >= 0 {
				m.open = -1
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	if m.open >= 0 {
		m.results, cmd = m.results.Update(msg)
	} else {
		m.list, cmd = m.list.Update(msg)
	}
	return m, cmd
}

func (m HistoryModel) View() string {
	if len(m.runs) == 0 {
		return "No saved runs.\n"
	}
	if run, ok := m.Open(); ok {
		title := titleStyle.Render(fmt.Sprintf(" Run %s (%s) ", run.ID, run.Source))
		if run.Seed != 0 {
			title += fmt.Sprintf(" seed %d", run.Seed)
		}
		return title + "\n" + baseStyle.Render(m.results.View()) + "\n" +
			helpStyle.Render("  ↑/↓: Navigate • esc: Back • q: Quit")
	}
	return titleStyle.Render(" Saved runs ") + "\n" + baseStyle.Render(m.list.View()) + "\n" +
		helpStyle.Render("  ↑/↓: Navigate • enter: Results • q: Quit")
}

func resultRows(run benchmark.Run) []table.Row {
	rows := make([]table.Row, len(run.Results))
	for i, r := range run.Results {
		status := r.Status
		if status == "" {
			status = "passed"
		}
		rows[i] = table.Row{
			r.Name,
			status,
			fmt.Sprintf("%.1f", r.NsPerOp),
			fmt.Sprintf("%d", r.BytesPerOp),
			orDash(r.Error),
		}
	}
	return rows
}

func failed(r benchmark.Run) int {
	n := 0
	for _, res := range r.Results {
		if !res.Passed() {
			n++
		}
	}
	return n
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
