package harness

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// Status is the outcome of a case.
type Status string

const (
	// StatusPassed means every trial returned the expected result.
	StatusPassed Status = "passed"
	// StatusDisqualified means the oracle rejected a result.
	StatusDisqualified Status = "disqualified"
	// StatusSetupFailed means a fixture could not be built.
	StatusSetupFailed Status = "setup_failed"
)

// CaseResult is what a case leaves behind. Samples is nil unless the case
// passed.
type CaseResult struct {
	Case    Case
	Status  Status
	Samples []Measurement
	Err     error
}

// Report is the ordered output of one run.
type Report struct {
	Seed     uint64
	Started  time.Time
	Finished time.Time
	Results  []CaseResult
}

// Failed reports whether any case was disqualified or failed setup.
func (r *Report) Failed() bool {
	for _, res := range r.Results {
		if res.Status != StatusPassed {
			return true
		}
	}
	return false
}

// Count returns how many results have the given status.
func (r *Report) Count(s Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == s {
			n++
		}
	}
	return n
}

// Observer is notified as the run progresses. Measurements are only
// reported for cases that passed.
type Observer interface {
	ObserveMeasurement(m Measurement)
	ObserveCase(r CaseResult)
}

// Runner measures groups one case at a time on the calling goroutine.
type Runner struct {
	Sampler     Sampler
	Seed        uint64
	TrackAllocs bool
	Observer    Observer
	Logger      *slog.Logger
}

// Run validates every group, then measures all cases in expansion order. A
// configuration error aborts the run before anything is timed. Oracle
// violations and setup failures are recorded on their case only. The context
// is only consulted between cases; a running case always completes.
func (r *Runner) Run(ctx context.Context, groups []*Group) (*Report, error) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	expanded := make([][]Case, len(groups))
	var errs []error
	for i, g := range groups {
		cases, err := Expand(g)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		expanded[i] = cases
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	report := &Report{Seed: r.Seed, Started: time.Now()}
	for i, g := range groups {
		logger.Info("running group", "group", g.Name, "cases", len(expanded[i]))

		lc := NewLifecycle(g, r.Seed)
		exec := &Executor{Lifecycle: lc, Sampler: r.Sampler, TrackAllocs: r.TrackAllocs, Seed: r.Seed}
		setupErr := lc.Prepare()

		for _, c := range expanded[i] {
			if err := ctx.Err(); err != nil {
				report.Finished = time.Now()
				return report, err
			}

			var res CaseResult
			if setupErr != nil {
				res = CaseResult{Case: c, Status: StatusSetupFailed, Err: &SetupFailureError{Case: c, Trial: -1, Err: setupErr}}
			} else {
				res = r.measure(exec, c)
			}
			r.record(logger, res)
			report.Results = append(report.Results, res)
		}
	}
	report.Finished = time.Now()

	logger.Info("run finished",
		"cases", len(report.Results),
		"passed", report.Count(StatusPassed),
		"disqualified", report.Count(StatusDisqualified),
		"setup_failed", report.Count(StatusSetupFailed),
	)
	return report, nil
}

func (r *Runner) measure(exec *Executor, c Case) CaseResult {
	samples, err := exec.Measure(c)
	switch {
	case err == nil:
		return CaseResult{Case: c, Status: StatusPassed, Samples: samples}
	case errors.Is(err, ErrOracleViolation):
		return CaseResult{Case: c, Status: StatusDisqualified, Err: err}
	default:
		return CaseResult{Case: c, Status: StatusSetupFailed, Err: err}
	}
}

func (r *Runner) record(logger *slog.Logger, res CaseResult) {
	if res.Status == StatusPassed {
		logger.Debug("case passed", "case", res.Case.ID(), "samples", len(res.Samples))
	} else {
		logger.Error("case failed", "case", res.Case.ID(), "status", string(res.Status), "error", res.Err)
	}

	if r.Observer == nil {
		return
	}
	for _, m := range res.Samples {
		r.Observer.ObserveMeasurement(m)
	}
	r.Observer.ObserveCase(res)
}
