package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. PERFEXP_TRIALS.
const EnvPrefix = "PERFEXP"

// Configuration keys.
const (
	KeyTrials      = "trials"
	KeyWarmup      = "warmup"
	KeySeed        = "seed"
	KeyTrackAllocs = "track_allocs"
	KeyFormat      = "format"
	KeyHistoryFile = "history_file"
	KeyThreshold   = "threshold"
	KeyStoreType   = "store.type"
	KeyStoreDSN    = "store.dsn"
	KeyMetricsAddr = "metrics.addr"
	KeyVerbose     = "verbose"
	KeyLogFile     = "log_file"
)

// SetDefaults installs the default value of every key.
func SetDefaults() {
	viper.SetDefault(KeyTrials, 100)
	viper.SetDefault(KeyWarmup, 10)
	viper.SetDefault(KeySeed, 0)
	viper.SetDefault(KeyTrackAllocs, false)
	viper.SetDefault(KeyFormat, "text")
	viper.SetDefault(KeyHistoryFile, ".perfexp/history.json")
	viper.SetDefault(KeyThreshold, 10.0)
	viper.SetDefault(KeyStoreType, "sqlite")
	viper.SetDefault(KeyStoreDSN, "")
	viper.SetDefault(KeyMetricsAddr, "")
	viper.SetDefault(KeyVerbose, false)
	viper.SetDefault(KeyLogFile, "")
}

// Load reads .env, then the config file, then PERFEXP_* environment
// variables. A missing default config file is not an error; a missing
// explicit one is.
func Load(cfgFile string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("perfexp")
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	SetDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	return nil
}
