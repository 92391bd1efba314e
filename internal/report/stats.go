package report

import (
	"math"
	"slices"
	"time"

	"perfexp/internal/harness"
)

// Stats summarizes the samples of one case. Durations are nanoseconds.
type Stats struct {
	N          int     `json:"n"`
	Mean       float64 `json:"mean_ns"`
	Median     float64 `json:"median_ns"`
	Min        float64 `json:"min_ns"`
	Max        float64 `json:"max_ns"`
	StdDev     float64 `json:"stddev_ns"`
	P95        float64 `json:"p95_ns"`
	AllocBytes float64 `json:"alloc_bytes_mean"`
}

// Summarize computes Stats. An empty sample set yields the zero value.
func Summarize(samples []harness.Measurement) Stats {
	n := len(samples)
	if n == 0 {
		return Stats{}
	}

	ds := make([]time.Duration, n)
	var alloc float64
	for i, m := range samples {
		ds[i] = m.Duration
		alloc += float64(m.AllocBytes)
	}
	slices.Sort(ds)

	s := Stats{
		N:          n,
		Mean:       harness.MeanNanos(samples),
		Min:        float64(ds[0]),
		Max:        float64(ds[n-1]),
		Median:     quantile(ds, 0.5),
		P95:        quantile(ds, 0.95),
		AllocBytes: alloc / float64(n),
	}
	if n > 1 {
		var sq float64
		for _, d := range ds {
			diff := float64(d) - s.Mean
			sq += diff * diff
		}
		s.StdDev = math.Sqrt(sq / float64(n-1))
	}
	return s
}

// quantile interpolates linearly between the closest ranks of sorted.
func quantile(sorted []time.Duration, q float64) float64 {
	if len(sorted) == 1 {
		return float64(sorted[0])
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	frac := pos - float64(lo)
	return float64(sorted[lo]) + frac*float64(sorted[hi]-sorted[lo])
}
