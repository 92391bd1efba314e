package harness

import (
	"errors"
	"math/rand/v2"
	"time"
)

type item struct {
	ID   int
	Name string
}

type lookupData struct {
	items []*item
}

// newLookupGroup returns a small keyed lookup group. The "Broken" variant
// returns an equal-looking copy instead of the canonical item when
// brokenAt matches N, which the identity oracle must reject.
func newLookupGroup(brokenAt int) *Group {
	setup := func(scan bool, broken bool) TrialSetup {
		return func(env TrialEnv) (Trial, error) {
			data, err := DataAs[*lookupData](env)
			if err != nil {
				return Trial{}, err
			}
			n, err := env.Params().Int("N")
			if err != nil {
				return Trial{}, err
			}
			if n > len(data.items) {
				return Trial{}, errors.New("sample size out of range")
			}

			arr := make([]*item, n)
			idx := make(map[int]*item, n)
			for i := 0; i < n; i++ {
				arr[i] = data.items[i]
				idx[data.items[i].ID] = data.items[i]
			}
			needle := data.items[env.Rand.IntN(n)]

			invoke := func() any { return idx[needle.ID] }
			if scan {
				invoke = func() any {
					for _, c := range arr {
						if c.ID == needle.ID {
							return c
						}
					}
					return (*item)(nil)
				}
			}
			if broken && n == brokenAt {
				invoke = func() any {
					cp := *idx[needle.ID]
					return &cp
				}
			}
			return Trial{Invoke: invoke, Oracle: SameEntity(needle)}, nil
		}
	}

	return &Group{
		Name: "KeyedLookup",
		Axes: []Axis{NewAxis("N", 10, 100)},
		Setup: func(rng *rand.Rand) (any, error) {
			data := &lookupData{items: make([]*item, 100)}
			for i := range data.items {
				data.items[i] = &item{ID: i, Name: "item"}
			}
			return data, nil
		},
		Variants: []Variant{
			{Name: "LinearScanArray", Baseline: true, Setup: setup(true, false)},
			{Name: "HashedLookup", Setup: setup(false, brokenAt > 0)},
		},
	}
}

func trivialSetup(result any, oracle Oracle) TrialSetup {
	return func(TrialEnv) (Trial, error) {
		return Trial{Invoke: func() any { return result }, Oracle: oracle}, nil
	}
}

func noData(*rand.Rand) (any, error) { return nil, nil }

// stepSampler returns a fixed duration per trial without looking at a clock.
type stepSampler struct {
	plan  Plan
	step  time.Duration
	calls int
}

func (s *stepSampler) Plan(Case) Plan { return s.plan }

func (s *stepSampler) Time(fn func()) time.Duration {
	s.calls++
	fn()
	return s.step
}

type recordingObserver struct {
	measurements []Measurement
	cases        []CaseResult
}

func (o *recordingObserver) ObserveMeasurement(m Measurement) { o.measurements = append(o.measurements, m) }
func (o *recordingObserver) ObserveCase(r CaseResult)         { o.cases = append(o.cases, r) }
