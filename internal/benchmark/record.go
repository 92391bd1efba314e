package benchmark

import (
	"github.com/google/uuid"

	"perfexp/internal/harness"
)

// FromReport summarizes a harness report as a run. Each case keeps the mean
// of its samples; failed cases keep their status and error only.
func FromReport(report *harness.Report) Run {
	run := Run{
		ID:        uuid.NewString(),
		Timestamp: report.Started,
		Source:    SourceHarness,
		Seed:      report.Seed,
		Results:   make([]Result, 0, len(report.Results)),
	}
	for _, cr := range report.Results {
		res := Result{
			Name:    cr.Case.ID(),
			Group:   cr.Case.Group,
			Variant: cr.Case.Variant,
			Params:  cr.Case.Params.String(),
			Status:  string(cr.Status),
			Samples: len(cr.Samples),
		}
		if cr.Err != nil {
			res.Error = cr.Err.Error()
		}
		if len(cr.Samples) > 0 {
			res.NsPerOp = harness.MeanNanos(cr.Samples)
			var total uint64
			for _, m := range cr.Samples {
				total += m.AllocBytes
			}
			res.BytesPerOp = int64(total / uint64(len(cr.Samples)))
		}
		run.Results = append(run.Results, res)
	}
	return run
}
