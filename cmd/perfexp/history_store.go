package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"perfexp/internal/benchmark"
	"perfexp/internal/config"
	"perfexp/internal/telemetry"
)

// recordRun compares run with the latest saved run of the same source and
// appends it to the history file, as requested.
func recordRun(cmd *cobra.Command, run benchmark.Run, save, compare bool, settings config.Settings) error {
	if !save && !compare {
		return nil
	}
	hist, err := newHistoryFunc(settings.HistoryFile)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}

	if compare {
		prev, err := latestOf(hist, run.Source)
		telemetry.LogDebug("loaded previous run", "source", run.Source, "found", prev != nil)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to load history: %v\n", err)
		}
		if prev != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "\nComparison with run %s (%s):\n", prev.ID, prev.Timestamp.Format("2006-01-02 15:04:05"))
			comps := benchmark.Compare(*prev, run)
			printComparison(cmd.OutOrStdout(), comps, settings.Threshold)
			for _, r := range benchmark.Regressions(comps, settings.Threshold) {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: regression %s\n", r)
			}
		} else if err == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "\nNo previous run to compare with.")
		}
	}

	if save {
		if err := hist.Save(run); err != nil {
			return fmt.Errorf("failed to save history: %w", err)
		}
		telemetry.LogInfof("saved %s run %s with %d results", run.Source, run.ID, len(run.Results))
		fmt.Fprintf(cmd.OutOrStdout(), "\nResults saved to %s\n", settings.HistoryFile)
	}
	return nil
}

// latestOf returns the newest run recorded from source, or nil.
func latestOf(store benchmark.Store, source benchmark.Source) (*benchmark.Run, error) {
	runs, err := store.LoadAll()
	if err != nil {
		return nil, err
	}
	for i := len(runs) - 1; i >= 0; i-- {
		if runs[i].Source == source {
			return &runs[i], nil
		}
	}
	return nil, nil
}

func printComparison(w io.Writer, comps []benchmark.Comparison, threshold float64) {
	if len(comps) == 0 {
		fmt.Fprintln(w, "No common cases.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tPREV ns/op\tCURR ns/op\tDELTA\tVERDICT")
	for _, c := range comps {
		fmt.Fprintf(tw, "%s\t%.1f\t%.1f\t%+.2f%%\t%s\n", c.Name, c.Prev.NsPerOp, c.Curr.NsPerOp, c.NsPerOpDiff, c.Verdict(threshold))
	}
	tw.Flush()
}
