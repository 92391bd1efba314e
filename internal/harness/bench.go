package harness

import (
	"testing"
)

// Benchmark runs g under go test -bench as nested sub-benchmarks named
// Combination/Variant. The group setup runs once; every b.N iteration gets a
// fresh trial with the timer stopped, and the oracle also runs with the timer
// stopped. A wrong result fails the sub-benchmark immediately.
func Benchmark(b *testing.B, g *Group, seed uint64) {
	b.Helper()

	cases, err := Expand(g)
	if err != nil {
		b.Fatal(err)
	}
	lc := NewLifecycle(g, seed)
	if err := lc.Prepare(); err != nil {
		b.Fatal(err)
	}

	var (
		combos []string
		byName = make(map[string][]Case)
	)
	for _, c := range cases {
		key := c.Params.String()
		if _, seen := byName[key]; !seen {
			combos = append(combos, key)
		}
		byName[key] = append(byName[key], c)
	}

	for _, key := range combos {
		runCases := func(b *testing.B) {
			for _, c := range byName[key] {
				b.Run(c.Variant, func(b *testing.B) { benchmarkCase(b, lc, c, seed) })
			}
		}
		if key == "" {
			runCases(b)
			continue
		}
		b.Run(key, runCases)
	}
}

func benchmarkCase(b *testing.B, lc *Lifecycle, c Case, seed uint64) {
	b.ReportAllocs()
	rng := NewRand(seed, caseStream(c))

	b.StopTimer()
	for i := 0; i < b.N; i++ {
		trial, err := lc.NewTrial(c, rng, i)
		if err != nil {
			b.Fatal(err)
		}

		b.StartTimer()
		got := trial.Invoke()
		b.StopTimer()

		if err := verify(c, i, trial.Oracle, got); err != nil {
			b.Fatal(err)
		}
	}
}
