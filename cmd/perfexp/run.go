package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"perfexp/internal/benchmark"
	"perfexp/internal/config"
	"perfexp/internal/harness"
	"perfexp/internal/metrics"
	"perfexp/internal/report"
	"perfexp/internal/telemetry"
)

type runOptions struct {
	groups      []string
	variants    []string
	params      []string
	save        bool
	compare     bool
	store       bool
	interactive bool
}

func newRunCmd() *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run benchmark groups and report each variant against its baseline",
		Long: `Expands the selected groups into cases, times every trial after its
warm-up, verifies each result with the group's oracle, and prints a report.
Exits non-zero when any case is disqualified or fails setup.`,
		Example: `  perfexp run --group KeyedLookup --param N=10,100
  perfexp run --variant HashedLookup --trials 500 --format markdown
  perfexp run --save --compare`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGroups(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringSliceVarP(&opts.groups, "group", "g", nil, "Group name patterns to run (default all)")
	f.StringSliceVar(&opts.variants, "variant", nil, "Variant name patterns to run; baselines always run")
	f.StringArrayVarP(&opts.params, "param", "p", nil, "Restrict an axis, e.g. N=10,100 (repeatable)")
	f.Int("trials", 100, "Timed trials per case")
	f.Int("warmup", 10, "Untimed warm-up trials per case")
	f.Uint64("seed", 0, "Root random seed (0 picks one and prints it)")
	f.Bool("track-allocs", false, "Record heap bytes allocated per trial")
	f.StringP("format", "f", "text", "Report format: text, markdown or json")
	f.Float64("threshold", 10.0, "Percentage change reported as a regression")
	f.String("metrics-addr", "", "Serve Prometheus metrics on this address while running")
	f.BoolVar(&opts.save, "save", false, "Append the run to the history file")
	f.BoolVar(&opts.compare, "compare", false, "Compare with the latest saved run")
	f.BoolVar(&opts.store, "store", false, "Persist every sample to the measurement store")
	f.BoolVarP(&opts.interactive, "interactive", "i", false, "Choose groups interactively")

	return cmd
}

func runGroups(cmd *cobra.Command, opts *runOptions) error {
	settings := config.Current()
	out := cmd.OutOrStdout()
	logger := telemetry.Component("run")

	all := groupsFunc()
	if opts.interactive {
		picked, err := promptGroups(all)
		if err != nil {
			return fmt.Errorf("failed to select groups: %w", err)
		}
		opts.groups = picked
	}

	params, err := harness.ParseParams(opts.params)
	if err != nil {
		return err
	}
	groups, err := harness.Selector{Groups: opts.groups, Variants: opts.variants, Params: params}.Apply(all)
	if err != nil {
		return err
	}

	m := metrics.NewMetrics()
	if settings.MetricsAddr != "" {
		srv, err := telemetry.StartMetricsServer(settings.MetricsAddr, m.Gatherer())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Serving metrics on http://%s/metrics\n", srv.Addr())
		defer stopMetricsServer(srv, 5*time.Second, logger)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	runner := &harness.Runner{
		Sampler:     settings.Sampler(),
		Seed:        settings.ResolvedSeed(),
		TrackAllocs: settings.TrackAllocs,
		Observer:    m,
		Logger:      logger,
	}
	rep, runErr := runner.Run(ctx, groups)
	if rep == nil {
		return runErr
	}

	summary := report.Build(rep)
	renderOpts := report.Options{
		Format:  report.Format(settings.Format),
		Profile: report.DetectProfile(out),
	}
	if err := report.Render(out, summary, renderOpts); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	if runErr != nil {
		return fmt.Errorf("run interrupted after %d cases: %w", len(rep.Results), runErr)
	}

	run := benchmark.FromReport(rep)
	run.Commit = gitCommitFunc()
	if err := recordRun(cmd, run, opts.save, opts.compare, settings); err != nil {
		return err
	}

	if opts.store {
		st, err := newStoreFunc(settings.Store)
		if err != nil {
			return fmt.Errorf("failed to open measurement store: %w", err)
		}
		defer st.Close()
		if err := st.SaveRun(ctx, run.ID, run.Commit, rep); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Samples stored as run %s\n", run.ID)
	}

	if summary.Failed() {
		logger.Error("cases failed", "disqualified", summary.Disqualified, "setup_failed", summary.SetupFailed)
		return errCasesFailed
	}
	return nil
}

type shutdowner interface {
	Shutdown(ctx context.Context) error
}

func stopMetricsServer(srv shutdowner, timeout time.Duration, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("metrics server shutdown failed", "error", err)
	}
}
