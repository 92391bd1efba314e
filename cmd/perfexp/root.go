package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"perfexp/internal/config"
	"perfexp/internal/telemetry"
)

var exit = os.Exit

// errCasesFailed is returned after the report is written when any case was
// disqualified or failed setup. Its message is already on screen.
var errCasesFailed = errors.New("one or more cases failed")

// flagKeys maps flag names to the configuration keys they override.
var flagKeys = map[string]string{
	"verbose":      config.KeyVerbose,
	"log-file":     config.KeyLogFile,
	"trials":       config.KeyTrials,
	"warmup":       config.KeyWarmup,
	"seed":         config.KeySeed,
	"track-allocs": config.KeyTrackAllocs,
	"format":       config.KeyFormat,
	"threshold":    config.KeyThreshold,
	"metrics-addr": config.KeyMetricsAddr,
	"history-file": config.KeyHistoryFile,
}

// bindFlags binds the flags of the command being executed, so commands
// sharing a key do not override each other's binding.
func bindFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			viper.BindPFlag(key, f)
		}
	})
}

// newRootCmd builds the command tree. Tests build a fresh tree per run.
func newRootCmd() *cobra.Command {
	var (
		cfgFile   string
		logCloser io.Closer
	)

	root := &cobra.Command{
		Use:   "perfexp",
		Short: "Run controlled performance experiments",
		Long: `perfexp measures groups of competing implementations of the same
operation over a matrix of parameters, checks every result with an oracle,
and reports each variant relative to its group's baseline.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			bindFlags(cmd)
			if err := config.Load(cfgFile); err != nil {
				return err
			}
			if err := config.ValidateConfig(); err != nil {
				return err
			}
			logCloser = telemetry.InitLogger(viper.GetBool(config.KeyVerbose), viper.GetString(config.KeyLogFile))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logCloser != nil {
				logCloser.Close()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./perfexp.yaml)")
	flags.BoolP("verbose", "v", false, "Enable verbose/debug logging")
	flags.String("log-file", "", "Also write JSON logs to this file")
	flags.String("history-file", ".perfexp/history.json", "JSON file holding saved runs")

	root.AddCommand(newRunCmd(), newListCmd(), newHistoryCmd(), newGoBenchCmd(), newVersionCmd())
	return root
}

// Execute runs the CLI and exits non-zero on error.
func Execute() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\n=== CRITICAL ERROR: Command Execution Panic ===\n")
			fmt.Fprintf(os.Stderr, "Error: %v\n", r)
			exit(1)
		}
	}()

	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errCasesFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			fmt.Fprintln(os.Stderr, "Run 'perfexp --help' for usage.")
		}
		exit(1)
	}
}
