package main

import (
	"os/exec"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	tea "github.com/charmbracelet/bubbletea"

	"perfexp/internal/benchmark"
	"perfexp/internal/db"
	"perfexp/internal/harness"
	"perfexp/internal/scenarios"
	"perfexp/internal/ui"
)

// Replaced in tests.
var (
	groupsFunc     = scenarios.All
	newHistoryFunc = func(path string) (benchmark.Store, error) { return benchmark.NewFileStore(path) }
	newStoreFunc   = db.NewStore
	newRunnerFunc  = func(pattern string, count int) benchmark.Runner {
		r := benchmark.NewGoRunner(pattern)
		r.Count = count
		return r
	}
	gitCommitFunc = gitCommit
	askOne        = survey.AskOne
	browseHistory = func(runs []benchmark.Run) error {
		_, err := tea.NewProgram(ui.NewHistoryModel(runs), tea.WithAltScreen()).Run()
		return err
	}
)

func gitCommit() string {
	out, err := exec.Command("git", "rev-parse", "--short", "HEAD").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

// promptGroups asks which groups to run. Every group starts selected.
func promptGroups(groups []*harness.Group) ([]string, error) {
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = g.Name
	}

	var selected []string
	prompt := &survey.MultiSelect{
		Message: "Select groups to run:",
		Options: names,
		Default: names,
	}
	if err := askOne(prompt, &selected, survey.WithValidator(survey.MinItems(1))); err != nil {
		return nil, err
	}
	return selected, nil
}
