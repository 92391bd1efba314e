package main

import (
	"bytes"
	"math/rand/v2"
	"testing"

	"github.com/spf13/viper"

	"perfexp/internal/harness"
)

// stubDeps restores every injectable dependency after the test and pins the
// commit hash.
func stubDeps(t *testing.T) {
	t.Helper()
	groups, history, store, runner, commit, ask, browse := groupsFunc, newHistoryFunc, newStoreFunc, newRunnerFunc, gitCommitFunc, askOne, browseHistory
	t.Cleanup(func() {
		groupsFunc, newHistoryFunc, newStoreFunc, newRunnerFunc, gitCommitFunc, askOne, browseHistory = groups, history, store, runner, commit, ask, browse
	})
	gitCommitFunc = func() string { return "abc123" }
	t.Chdir(t.TempDir())
}

// executeCmd runs a fresh command tree with args and returns everything
// written to stdout and stderr.
func executeCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	root := newRootCmd()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// brokenGroup has a variant that always returns the wrong answer.
func brokenGroup() *harness.Group {
	setup := func(result int) harness.TrialSetup {
		return func(env harness.TrialEnv) (harness.Trial, error) {
			return harness.Trial{
				Invoke: func() any { return result },
				Oracle: harness.ExpectEqual(1),
			}, nil
		}
	}
	return &harness.Group{
		Name:  "Broken",
		Axes:  []harness.Axis{harness.NewAxis("N", 1)},
		Setup: func(*rand.Rand) (any, error) { return nil, nil },
		Variants: []harness.Variant{
			{Name: "Right", Baseline: true, Setup: setup(1)},
			{Name: "Wrong", Setup: setup(2)},
		},
	}
}
