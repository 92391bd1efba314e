package db

import (
	"errors"
	"time"

	"perfexp/internal/harness"
)

func sampleReport() *harness.Report {
	fast := harness.Case{Group: "KeyedLookup", Variant: "HashedLookup", Params: harness.Combination{{Axis: "N", Value: 10}}}
	slow := harness.Case{Group: "KeyedLookup", Variant: "LinearScanArray", Baseline: true, Params: harness.Combination{{Axis: "N", Value: 10}}}
	started := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	return &harness.Report{
		Seed:     18446744073709551615,
		Started:  started,
		Finished: started.Add(2 * time.Second),
		Results: []harness.CaseResult{
			{Case: slow, Status: harness.StatusPassed, Samples: []harness.Measurement{
				{Case: slow, Trial: 0, Duration: 120, AllocBytes: 0},
				{Case: slow, Trial: 1, Duration: 80, AllocBytes: 16},
			}},
			{Case: fast, Status: harness.StatusDisqualified, Err: errors.New("oracle violation")},
		},
	}
}
