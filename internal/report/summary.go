package report

import (
	"time"

	"perfexp/internal/harness"
)

// Row is one case as presented to readers.
type Row struct {
	Case   harness.Case
	Status harness.Status
	Stats  Stats
	// Ratio is mean(variant)/mean(baseline) for the same combination, or
	// nil when undefined.
	Ratio *float64
	Err   error
	// Samples keeps the raw measurements for machine-readable output.
	Samples []harness.Measurement
}

// Summary is a rendered-agnostic view of a report.
type Summary struct {
	Seed         uint64
	Started      time.Time
	Finished     time.Time
	Rows         []Row
	Passed       int
	Disqualified int
	SetupFailed  int
	// Notes carries problems that did not stop rendering, such as ratios
	// that could not be computed for a partial run.
	Notes []string
}

// Build summarizes a report. Ratios are computed with the mean as center.
func Build(rep *harness.Report) *Summary {
	s := &Summary{
		Seed:         rep.Seed,
		Started:      rep.Started,
		Finished:     rep.Finished,
		Passed:       rep.Count(harness.StatusPassed),
		Disqualified: rep.Count(harness.StatusDisqualified),
		SetupFailed:  rep.Count(harness.StatusSetupFailed),
		Rows:         make([]Row, len(rep.Results)),
	}
	for i, res := range rep.Results {
		s.Rows[i] = Row{
			Case:    res.Case,
			Status:  res.Status,
			Stats:   Summarize(res.Samples),
			Err:     res.Err,
			Samples: res.Samples,
		}
	}

	ratios, err := harness.Normalize(rep.Results, harness.MeanNanos)
	if err != nil {
		s.Notes = append(s.Notes, "ratios unavailable: "+err.Error())
		return s
	}
	for i, r := range ratios {
		if r.Defined {
			v := r.Value
			s.Rows[i].Ratio = &v
		}
	}
	return s
}

// Failed reports whether any case did not pass.
func (s *Summary) Failed() bool { return s.Disqualified+s.SetupFailed > 0 }
