package report

import (
	"errors"
	"time"

	"perfexp/internal/harness"
)

func lookupCase(variant string, baseline bool, n int) harness.Case {
	return harness.Case{
		Group:    "KeyedLookup",
		Variant:  variant,
		Baseline: baseline,
		Params:   harness.Combination{{Axis: "N", Value: n}},
	}
}

func samples(c harness.Case, ns ...int) []harness.Measurement {
	out := make([]harness.Measurement, len(ns))
	for i, v := range ns {
		out[i] = harness.Measurement{Case: c, Trial: i, Duration: time.Duration(v), AllocBytes: 32}
	}
	return out
}

// sampleReport has one passing pair at N=10 and a disqualified variant at
// N=100.
func sampleReport() *harness.Report {
	base10 := lookupCase("LinearScanArray", true, 10)
	hash10 := lookupCase("HashedLookup", false, 10)
	base100 := lookupCase("LinearScanArray", true, 100)
	hash100 := lookupCase("HashedLookup", false, 100)
	started := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	violation := &harness.OracleViolationError{Case: hash100, Trial: 3, Err: errors.New("returned a copy")}
	return &harness.Report{
		Seed:     42,
		Started:  started,
		Finished: started.Add(1500 * time.Millisecond),
		Results: []harness.CaseResult{
			{Case: base10, Status: harness.StatusPassed, Samples: samples(base10, 100, 200, 300)},
			{Case: hash10, Status: harness.StatusPassed, Samples: samples(hash10, 50, 50, 50)},
			{Case: base100, Status: harness.StatusPassed, Samples: samples(base100, 1000, 1000)},
			{Case: hash100, Status: harness.StatusDisqualified, Err: violation},
		},
	}
}
