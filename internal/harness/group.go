package harness

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// GroupSetup builds the canonical data set shared by every case and trial of
// a group. It runs exactly once per group, before any case executes. The
// returned value must not be mutated afterwards.
type GroupSetup func(rng *rand.Rand) (any, error)

// TrialSetup builds the private fixture for one trial from the canonical
// data set. It runs before every timed invocation and is never timed.
type TrialSetup func(env TrialEnv) (Trial, error)

// TrialEnv is everything a TrialSetup may read.
type TrialEnv struct {
	Case  Case
	Data  any
	Rand  *rand.Rand
	Trial int
}

// Params is shorthand for env.Case.Params.
func (env TrialEnv) Params() Combination { return env.Case.Params }

// DataAs returns the canonical data set as T.
func DataAs[T any](env TrialEnv) (T, error) {
	t, ok := env.Data.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("canonical data is %T, not %T", env.Data, zero)
	}
	return t, nil
}

// Trial is one prepared invocation: the operation under test and the oracle
// holding the expected result for this trial's inputs.
type Trial struct {
	Invoke func() any
	Oracle Oracle
}

// Variant is one candidate strategy within a group.
type Variant struct {
	Name     string
	Baseline bool
	Setup    TrialSetup
}

// Group declares the axes swept and the variants compared. Every variant is
// measured against the identical matrix of axis combinations.
type Group struct {
	Name     string
	Axes     []Axis
	Variants []Variant
	Setup    GroupSetup
}

// Validate reports every configuration problem of the group joined in one
// error. Each joined error is a *ConfigurationError.
func (g *Group) Validate() error {
	if g == nil {
		return configErrorf("", "nil group")
	}

	var errs []error
	if g.Name == "" {
		errs = append(errs, configErrorf(g.Name, "group has no name"))
	}
	if g.Setup == nil {
		errs = append(errs, configErrorf(g.Name, "group setup is nil"))
	}

	axes := make(map[string]struct{}, len(g.Axes))
	for _, a := range g.Axes {
		if a.Name() == "" {
			errs = append(errs, configErrorf(g.Name, "axis has no name"))
		}
		if _, dup := axes[a.Name()]; dup {
			errs = append(errs, configErrorf(g.Name, "duplicate axis %q", a.Name()))
		}
		axes[a.Name()] = struct{}{}
		if a.Len() == 0 {
			errs = append(errs, configErrorf(g.Name, "axis %q has no values", a.Name()))
		}
		seen := make(map[string]struct{}, a.Len())
		for _, v := range a.values {
			key := formatValue(v)
			if _, dup := seen[key]; dup {
				errs = append(errs, configErrorf(g.Name, "axis %q repeats value %s", a.Name(), key))
			}
			seen[key] = struct{}{}
		}
	}

	if len(g.Variants) == 0 {
		errs = append(errs, configErrorf(g.Name, "group has no variants"))
	}
	variants := make(map[string]struct{}, len(g.Variants))
	baselines := 0
	for _, v := range g.Variants {
		if v.Name == "" {
			errs = append(errs, configErrorf(g.Name, "variant has no name"))
		}
		if _, dup := variants[v.Name]; dup {
			errs = append(errs, configErrorf(g.Name, "duplicate variant %q", v.Name))
		}
		variants[v.Name] = struct{}{}
		if v.Setup == nil {
			errs = append(errs, configErrorf(g.Name, "variant %q has no trial setup", v.Name))
		}
		if v.Baseline {
			baselines++
		}
	}
	if len(g.Variants) > 0 && baselines != 1 {
		errs = append(errs, configErrorf(g.Name, "expected exactly one baseline variant, got %d", baselines))
	}

	return errors.Join(errs...)
}

// variant returns the named variant.
func (g *Group) variant(name string) (Variant, bool) {
	for _, v := range g.Variants {
		if v.Name == name {
			return v, true
		}
	}
	return Variant{}, false
}
