package config

import (
	"fmt"
	"net"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

// Formats lists the accepted report formats.
var Formats = []string{"text", "markdown", "json"}

// ValidateConfig validates configuration values and returns an error listing
// every invalid one. Call it after Load.
func ValidateConfig() error {
	var errors []string

	if trials := viper.GetInt(KeyTrials); trials <= 0 {
		errors = append(errors, fmt.Sprintf("trials must be positive, got: %d", trials))
	}
	if warmup := viper.GetInt(KeyWarmup); warmup < 0 {
		errors = append(errors, fmt.Sprintf("warmup must not be negative, got: %d", warmup))
	}
	if format := viper.GetString(KeyFormat); !slices.Contains(Formats, format) {
		errors = append(errors, fmt.Sprintf("format must be one of %s, got: %q", strings.Join(Formats, ", "), format))
	}
	if threshold := viper.GetFloat64(KeyThreshold); threshold < 0 {
		errors = append(errors, fmt.Sprintf("threshold must not be negative, got: %v", threshold))
	}
	if viper.GetString(KeyHistoryFile) == "" {
		errors = append(errors, "history_file must not be empty")
	}

	switch typ := strings.ToLower(viper.GetString(KeyStoreType)); typ {
	case "sqlite", "sqlite3", "":
	case "postgres", "postgresql":
		if viper.GetString(KeyStoreDSN) == "" {
			errors = append(errors, "store.dsn is required for postgres")
		}
	default:
		errors = append(errors, fmt.Sprintf("store.type must be sqlite or postgres, got: %q", typ))
	}

	if addr := viper.GetString(KeyMetricsAddr); addr != "" {
		if _, _, err := net.SplitHostPort(addr); err != nil {
			errors = append(errors, fmt.Sprintf("metrics.addr must be host:port, got: %q", addr))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  %s", strings.Join(errors, "\n  "))
	}
	return nil
}
