package config

import (
	"github.com/spf13/viper"

	"perfexp/internal/db"
	"perfexp/internal/harness"
)

// Settings is a typed snapshot of the loaded configuration.
type Settings struct {
	Trials      int
	Warmup      int
	Seed        uint64
	TrackAllocs bool
	Format      string
	HistoryFile string
	Threshold   float64
	Store       db.StoreConfig
	MetricsAddr string
	Verbose     bool
	LogFile     string
}

// Current reads the settings from viper.
func Current() Settings {
	return Settings{
		Trials:      viper.GetInt(KeyTrials),
		Warmup:      viper.GetInt(KeyWarmup),
		Seed:        viper.GetUint64(KeySeed),
		TrackAllocs: viper.GetBool(KeyTrackAllocs),
		Format:      viper.GetString(KeyFormat),
		HistoryFile: viper.GetString(KeyHistoryFile),
		Threshold:   viper.GetFloat64(KeyThreshold),
		Store: db.StoreConfig{
			Type:             viper.GetString(KeyStoreType),
			ConnectionString: viper.GetString(KeyStoreDSN),
		},
		MetricsAddr: viper.GetString(KeyMetricsAddr),
		Verbose:     viper.GetBool(KeyVerbose),
		LogFile:     viper.GetString(KeyLogFile),
	}
}

// Sampler returns the fixed trial plan described by the settings.
func (s Settings) Sampler() harness.FixedSampler {
	return harness.FixedSampler{Warmup: s.Warmup, Trials: s.Trials}
}

// ResolvedSeed returns the configured seed, or a fresh random one when the
// seed is zero.
func (s Settings) ResolvedSeed() uint64 {
	if s.Seed != 0 {
		return s.Seed
	}
	return harness.RandomSeed()
}
