package benchmark

import "time"

// Result is the summary of one case in a run.
type Result struct {
	Name        string  `json:"name"`
	Group       string  `json:"group"`
	Variant     string  `json:"variant"`
	Params      string  `json:"params,omitempty"`
	Status      string  `json:"status"`
	Samples     int     `json:"samples"`
	Iterations  int64   `json:"iterations,omitempty"`
	NsPerOp     float64 `json:"ns_per_op"`
	MBPerSec    float64 `json:"mb_per_sec,omitempty"`
	BytesPerOp  int64   `json:"bytes_per_op"`
	AllocsPerOp int64   `json:"allocs_per_op,omitempty"`
	Error       string  `json:"error,omitempty"`
}

// Passed reports whether the case produced usable timings.
func (r Result) Passed() bool { return r.Status == "" || r.Status == "passed" }

// Source tells where a run's numbers came from.
type Source string

const (
	SourceHarness Source = "harness"
	SourceGoBench Source = "gobench"
)

// Run is one recorded execution.
type Run struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Commit    string    `json:"commit,omitempty"`
	Source    Source    `json:"source"`
	Seed      uint64    `json:"seed,omitempty"`
	Results   []Result  `json:"results"`
}

// Lookup returns the result with the given case name.
func (r Run) Lookup(name string) (Result, bool) {
	for _, res := range r.Results {
		if res.Name == name {
			return res, true
		}
	}
	return Result{}, false
}
