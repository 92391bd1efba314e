package harness

import (
	"math"
	"strings"
	"time"
)

// Baseline returns the name of the group's single baseline variant.
func Baseline(g *Group) (string, error) {
	var names []string
	for _, v := range g.Variants {
		if v.Baseline {
			names = append(names, v.Name)
		}
	}
	if len(names) != 1 {
		return "", configErrorf(g.Name, "expected exactly one baseline variant, got %d", len(names))
	}
	return names[0], nil
}

// Center reduces a case's samples to one number, e.g. the mean in
// nanoseconds. It is supplied by the statistics collaborator.
type Center func(samples []Measurement) float64

// Ratio expresses one variant relative to its group's baseline for a single
// combination. Defined is false when either side did not pass; Value is then
// NaN.
type Ratio struct {
	Group    string
	Params   Combination
	Variant  string
	Baseline string
	Value    float64
	Defined  bool
}

type comboKey struct {
	group  string
	params string
}

// Normalize computes center(variant) / center(baseline) for every result,
// per (group, combination). Results must come from expanded groups: every
// combination of a group carries exactly one baseline case, and every group
// uses a single axis set.
func Normalize(results []CaseResult, center Center) ([]Ratio, error) {
	axisSets := make(map[string]string)
	baselines := make(map[comboKey]CaseResult)
	baselineNames := make(map[string]string)

	for _, res := range results {
		c := res.Case
		sig := axisSignature(c.Params)
		if prev, ok := axisSets[c.Group]; ok && prev != sig {
			return nil, configErrorf(c.Group, "mismatched axis sets %q and %q", prev, sig)
		}
		axisSets[c.Group] = sig

		if !c.Baseline {
			continue
		}
		if name, ok := baselineNames[c.Group]; ok && name != c.Variant {
			return nil, configErrorf(c.Group, "more than one baseline variant: %q and %q", name, c.Variant)
		}
		baselineNames[c.Group] = c.Variant

		key := comboKey{c.Group, c.Params.String()}
		if _, dup := baselines[key]; dup {
			return nil, configErrorf(c.Group, "duplicate baseline result for %q", key.params)
		}
		baselines[key] = res
	}

	ratios := make([]Ratio, 0, len(results))
	for _, res := range results {
		c := res.Case
		key := comboKey{c.Group, c.Params.String()}
		base, ok := baselines[key]
		if !ok {
			return nil, configErrorf(c.Group, "no baseline result for %q", key.params)
		}

		r := Ratio{
			Group:    c.Group,
			Params:   c.Params,
			Variant:  c.Variant,
			Baseline: base.Case.Variant,
			Value:    math.NaN(),
		}
		if res.Status == StatusPassed && base.Status == StatusPassed {
			if b := center(base.Samples); b > 0 {
				r.Value = center(res.Samples) / b
				r.Defined = true
			}
		}
		ratios = append(ratios, r)
	}
	return ratios, nil
}

func axisSignature(c Combination) string {
	names := make([]string, len(c))
	for i, p := range c {
		names[i] = p.Axis
	}
	return strings.Join(names, ",")
}

// MeanNanos is a plain arithmetic-mean Center, in nanoseconds.
func MeanNanos(samples []Measurement) float64 {
	if len(samples) == 0 {
		return 0
	}
	var total time.Duration
	for _, m := range samples {
		total += m.Duration
	}
	return float64(total) / float64(len(samples))
}
