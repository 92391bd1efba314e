package harness

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is wrapped by ConfigurationError.
	ErrConfiguration = errors.New("invalid benchmark configuration")
	// ErrOracleViolation is wrapped by OracleViolationError.
	ErrOracleViolation = errors.New("oracle violation")
	// ErrSetupFailure is wrapped by SetupFailureError.
	ErrSetupFailure = errors.New("setup failure")
)

// ConfigurationError is raised before any timing starts when a group is
// declared incorrectly. No partial run is attempted.
type ConfigurationError struct {
	Group  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Group == "" {
		return fmt.Sprintf("%s: %s", ErrConfiguration, e.Reason)
	}
	return fmt.Sprintf("%s: group %q: %s", ErrConfiguration, e.Group, e.Reason)
}

func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }

func configErrorf(group, format string, args ...any) error {
	return &ConfigurationError{Group: group, Reason: fmt.Sprintf(format, args...)}
}

// OracleViolationError reports that the operation under test returned a
// wrong result. It aborts the case it belongs to.
type OracleViolationError struct {
	Case  Case
	Trial int
	Err   error
}

func (e *OracleViolationError) Error() string {
	return fmt.Sprintf("%s: %s (trial %d): %v", ErrOracleViolation, e.Case.ID(), e.Trial, e.Err)
}

// Unwrap exposes both the sentinel and the oracle's own error.
func (e *OracleViolationError) Unwrap() []error { return []error{ErrOracleViolation, e.Err} }

// SetupFailureError reports that a valid fixture could not be built, either
// by the group setup or by a trial setup. It is treated like an oracle
// violation: the case is aborted.
type SetupFailureError struct {
	Case  Case
	Trial int
	Err   error
}

func (e *SetupFailureError) Error() string {
	if e.Trial < 0 {
		return fmt.Sprintf("%s: %s (group setup): %v", ErrSetupFailure, e.Case.ID(), e.Err)
	}
	return fmt.Sprintf("%s: %s (trial %d): %v", ErrSetupFailure, e.Case.ID(), e.Trial, e.Err)
}

func (e *SetupFailureError) Unwrap() []error { return []error{ErrSetupFailure, e.Err} }
