// Package dispatch compares the cost of calling the same tiny method through
// different binding strategies.
package dispatch

import (
	"fmt"
	"math/rand/v2"

	"perfexp/internal/harness"
)

// GroupName is the harness group name.
const GroupName = "Dispatch"

// Sizes are the call counts swept by default.
var Sizes = []int{100}

// Strategy is one way of binding the RestByTwo call.
type Strategy int

const (
	// NonVirtual calls a method on a concrete type; it is the baseline.
	NonVirtual Strategy = iota
	// Virtual calls through an interface value.
	Virtual
	// SealedOverride calls a concrete type that overrides an abstract base.
	SealedOverride
	// UnsealedOverride calls a base whose behaviour is replaced through a
	// hook that could be swapped at runtime.
	UnsealedOverride
	// Sealed calls a pointer method on a standalone type with no base to
	// override.
	Sealed
)

// Strategies lists every strategy in report order.
var Strategies = []Strategy{NonVirtual, Virtual, SealedOverride, UnsealedOverride, Sealed}

func (s Strategy) String() string {
	switch s {
	case NonVirtual:
		return "NonVirtual"
	case Virtual:
		return "Virtual"
	case SealedOverride:
		return "SealedOverride"
	case UnsealedOverride:
		return "UnsealedOverride"
	case Sealed:
		return "Sealed"
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// Invoker sums RestByTwo(i) for i in [0,n).
type Invoker func(n int) int

// Invoker returns the strategy's uniform entry point.
func (s Strategy) Invoker() (Invoker, error) {
	switch s {
	case NonVirtual:
		return sumPlain, nil
	case Virtual:
		return sumVirtual, nil
	case SealedOverride:
		return sumSealed, nil
	case UnsealedOverride:
		return sumUnsealed, nil
	case Sealed:
		return sumStandalone, nil
	}
	return nil, fmt.Errorf("unknown dispatch strategy %v", s)
}

// Group returns the Dispatch group.
func Group() *harness.Group {
	variants := make([]harness.Variant, len(Strategies))
	for i, s := range Strategies {
		variants[i] = harness.Variant{
			Name:     s.String(),
			Baseline: s == NonVirtual,
			Setup:    trialSetup(s),
		}
	}
	return &harness.Group{
		Name:     GroupName,
		Axes:     []harness.Axis{harness.NewAxis("N", Sizes...)},
		Setup:    func(_ *rand.Rand) (any, error) { return nil, nil },
		Variants: variants,
	}
}

func trialSetup(s Strategy) harness.TrialSetup {
	return func(env harness.TrialEnv) (harness.Trial, error) {
		n, err := env.Params().Int("N")
		if err != nil {
			return harness.Trial{}, err
		}
		if n < 0 {
			return harness.Trial{}, fmt.Errorf("call count %d is negative", n)
		}
		invoke, err := s.Invoker()
		if err != nil {
			return harness.Trial{}, err
		}
		return harness.Trial{
			Invoke: func() any { return invoke(n) },
			Oracle: harness.ExpectEqual(n / 2),
		}, nil
	}
}
