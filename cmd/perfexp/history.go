package main

import (
	"fmt"
	"math"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"perfexp/internal/benchmark"
	"perfexp/internal/config"
	"perfexp/internal/telemetry"
)

func newHistoryCmd() *cobra.Command {
	var (
		limit       int
		fromStore   bool
		interactive bool
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved runs",
		Long: `Lists the runs saved with --save, newest first. With --store, lists the
runs persisted to the measurement store instead. With --interactive, opens a
browser over the saved runs and their results.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := config.Current()
			switch {
			case fromStore && interactive:
				return fmt.Errorf("--interactive cannot be combined with --store")
			case fromStore:
				return listStoredRuns(cmd, settings, limit)
			case interactive:
				return browseSavedRuns(cmd, settings, limit)
			}
			return listHistory(cmd, settings, limit)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to list (0 for all)")
	cmd.Flags().BoolVar(&fromStore, "store", false, "List runs from the measurement store")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Browse saved runs and their results")

	cmd.AddCommand(newHistoryShowCmd())
	return cmd
}

// recentRuns loads the saved runs newest first, keeping at most limit of them
// when limit is positive.
func recentRuns(settings config.Settings, limit int) ([]benchmark.Run, error) {
	hist, err := newHistoryFunc(settings.HistoryFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	runs, err := hist.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	telemetry.LogDebug("loaded history", "path", settings.HistoryFile, "runs", len(runs))

	runs = slices.Clone(runs)
	slices.Reverse(runs)
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

func listHistory(cmd *cobra.Command, settings config.Settings, limit int) error {
	runs, err := recentRuns(settings, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No saved runs.")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTIME\tSOURCE\tCOMMIT\tCASES\tFAILED")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\n", r.ID, r.Timestamp.Format("2006-01-02 15:04:05"), r.Source, orDash(r.Commit), len(r.Results), failedResults(r))
	}
	return tw.Flush()
}

func browseSavedRuns(cmd *cobra.Command, settings config.Settings, limit int) error {
	runs, err := recentRuns(settings, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No saved runs.")
		return nil
	}
	if err := browseHistory(runs); err != nil {
		return fmt.Errorf("failed to run history browser: %w", err)
	}
	return nil
}

func listStoredRuns(cmd *cobra.Command, settings config.Settings, limit int) error {
	st, err := newStoreFunc(settings.Store)
	if err != nil {
		return fmt.Errorf("failed to open measurement store: %w", err)
	}
	defer st.Close()

	if limit <= 0 {
		limit = math.MaxInt32
	}
	runs, err := st.ListRuns(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No stored runs.")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTARTED\tSEED\tCOMMIT\tCASES\tFAILED")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%d\t%d\n", r.ID, r.StartedAt.Format("2006-01-02 15:04:05"), r.Seed, orDash(r.Commit), r.Cases, r.Failed)
	}
	return tw.Flush()
}

func newHistoryShowCmd() *cobra.Command {
	var (
		fromStore bool
		caseID    string
	)
	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show the results of a saved run",
		Long: `Shows the per-case results of a run from the history file. With --store,
reads the run from the measurement store; add --case to list that case's raw
samples.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := config.Current()
			if fromStore {
				return showStoredRun(cmd, settings, args[0], caseID)
			}
			return showHistoryRun(cmd, settings, args[0])
		},
	}
	cmd.Flags().BoolVar(&fromStore, "store", false, "Read the run from the measurement store")
	cmd.Flags().StringVar(&caseID, "case", "", "With --store, list the raw samples of this case")
	return cmd
}

func showHistoryRun(cmd *cobra.Command, settings config.Settings, id string) error {
	hist, err := newHistoryFunc(settings.HistoryFile)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	run, err := hist.Get(id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run %s (%s, %s)\n", run.ID, run.Source, run.Timestamp.Format("2006-01-02 15:04:05"))
	if run.Seed != 0 {
		fmt.Fprintf(out, "Seed: %d\n", run.Seed)
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSTATUS\tns/op\tB/op")
	for _, r := range run.Results {
		status := r.Status
		if status == "" {
			status = "passed"
		}
		fmt.Fprintf(tw, "%s\t%s\t%.1f\t%d\n", r.Name, status, r.NsPerOp, r.BytesPerOp)
	}
	return tw.Flush()
}

func showStoredRun(cmd *cobra.Command, settings config.Settings, runID, caseID string) error {
	st, err := newStoreFunc(settings.Store)
	if err != nil {
		return fmt.Errorf("failed to open measurement store: %w", err)
	}
	defer st.Close()

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	if caseID != "" {
		samples, err := st.Samples(cmd.Context(), runID, caseID)
		if err != nil {
			return err
		}
		if len(samples) == 0 {
			return fmt.Errorf("no samples for case %s in run %s", caseID, runID)
		}
		fmt.Fprintln(tw, "TRIAL\tns\tB")
		for _, s := range samples {
			fmt.Fprintf(tw, "%d\t%d\t%d\n", s.Trial, s.DurationNs, s.AllocBytes)
		}
		return tw.Flush()
	}

	cases, err := st.Cases(cmd.Context(), runID)
	if err != nil {
		return err
	}
	if len(cases) == 0 {
		return fmt.Errorf("%w: %s", benchmark.ErrRunNotFound, runID)
	}
	fmt.Fprintln(tw, "CASE\tSTATUS\tSAMPLES\tMEAN ns\tERROR")
	for _, c := range cases {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.1f\t%s\n", c.CaseID, c.Status, c.Samples, c.MeanNs, orDash(c.Error))
	}
	return tw.Flush()
}

func failedResults(r benchmark.Run) int {
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
