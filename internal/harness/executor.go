package harness

import (
	"runtime"
	"time"
)

// Measurement is one timed trial. It is never modified after recording.
type Measurement struct {
	Case       Case
	Trial      int
	Duration   time.Duration
	AllocBytes uint64
}

// Plan is how many warm-up and measured trials a case gets.
type Plan struct {
	Warmup int
	Trials int
}

// Sampler is the measurement collaborator: it decides trial counts and owns
// the clock. Time must run fn exactly once.
type Sampler interface {
	Plan(c Case) Plan
	Time(fn func()) time.Duration
}

// FixedSampler runs a fixed number of trials per case and times them with
// the monotonic clock.
type FixedSampler struct {
	Warmup int
	Trials int
}

func (s FixedSampler) Plan(Case) Plan { return Plan{Warmup: s.Warmup, Trials: s.Trials} }

func (s FixedSampler) Time(fn func()) time.Duration {
	start := time.Now()
	fn()
	return time.Since(start)
}

// Executor runs the trials of one case. It is not safe for concurrent use;
// cases are measured one at a time.
type Executor struct {
	Lifecycle   *Lifecycle
	Sampler     Sampler
	TrackAllocs bool
	Seed        uint64
}

// Measure runs warm-up and measured trials for c. Every trial is set up
// fresh, then exactly one invocation is timed, then the oracle checks the
// result. The first setup failure or oracle violation aborts the case and no
// measurements are returned.
func (e *Executor) Measure(c Case) ([]Measurement, error) {
	plan := e.Sampler.Plan(c)
	rng := NewRand(e.Seed, caseStream(c))
	samples := make([]Measurement, 0, plan.Trials)

	var before, after runtime.MemStats
	for i := 0; i < plan.Warmup+plan.Trials; i++ {
		trial, err := e.Lifecycle.NewTrial(c, rng, i)
		if err != nil {
			return nil, err
		}

		if e.TrackAllocs {
			runtime.ReadMemStats(&before)
		}
		var got any
		elapsed := e.Sampler.Time(func() { got = trial.Invoke() })
		if e.TrackAllocs {
			runtime.ReadMemStats(&after)
		}

		if err := verify(c, i, trial.Oracle, got); err != nil {
			return nil, err
		}
		if i < plan.Warmup {
			continue
		}

		m := Measurement{Case: c, Trial: i - plan.Warmup, Duration: elapsed}
		if e.TrackAllocs {
			m.AllocBytes = after.TotalAlloc - before.TotalAlloc
		}
		samples = append(samples, m)
	}
	return samples, nil
}
