package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"perfexp/internal/config"
	"perfexp/internal/telemetry"
)

func newGoBenchCmd() *cobra.Command {
	var (
		pattern string
		count   int
		save    bool
		compare bool
	)
	cmd := &cobra.Command{
		Use:   "gobench [packages]",
		Short: "Run 'go test -bench' and track the results over time",
		Long: `Executes 'go test -bench' for the specified packages (defaulting to ./...)
and parses the output. Sub-benchmarks produced by the harness adapter are
mapped back to their case names, so saved runs can be compared with each other.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := config.Current()
			runner := newRunnerFunc(pattern, count)

			fmt.Fprintln(cmd.ErrOrStderr(), "Running benchmarks...")
			telemetry.LogDebug("running go test", "bench", pattern, "count", count, "packages", args)
			run, err := runner.Run(cmd.Context(), args)
			if err != nil {
				return err
			}
			if len(run.Results) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No benchmarks found.")
				return nil
			}
			run.Commit = gitCommitFunc()

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tITERATIONS\tns/op\tB/op\tallocs/op")
			for _, r := range run.Results {
				fmt.Fprintf(tw, "%s\t%d\t%.2f\t%d\t%d\n", r.Name, r.Iterations, r.NsPerOp, r.BytesPerOp, r.AllocsPerOp)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			return recordRun(cmd, run, save, compare, settings)
		},
	}

	f := cmd.Flags()
	f.StringVar(&pattern, "bench", ".", "Benchmark name pattern passed to -bench")
	f.IntVar(&count, "count", 0, "Run each benchmark this many times")
	f.BoolVar(&save, "save", false, "Append the results to the history file")
	f.BoolVar(&compare, "compare", false, "Compare with the latest saved gobench run")
	f.Float64("threshold", 10.0, "Percentage change reported as a regression")
	return cmd
}
