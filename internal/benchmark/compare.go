package benchmark

import "fmt"

// Verdict classifies a comparison against a threshold.
type Verdict string

const (
	VerdictSame       Verdict = "SAME"
	VerdictRegressed  Verdict = "REGRESSED"
	VerdictImproved   Verdict = "IMPROVED"
	VerdictIncomplete Verdict = "INCOMPLETE"
)

type Comparison struct {
	Name            string
	NsPerOpDiff     float64 // percent
	BytesPerOpDiff  float64 // percent
	AllocsPerOpDiff float64 // percent
	Prev            Result
	Curr            Result
}

// Compare pairs results present in both runs by case name, in the current
// run's order. Diffs are percentages relative to prev.
func Compare(prev, curr Run) []Comparison {
	prevByName := make(map[string]Result, len(prev.Results))
	for _, r := range prev.Results {
		prevByName[r.Name] = r
	}

	var comparisons []Comparison
	for _, c := range curr.Results {
		p, ok := prevByName[c.Name]
		if !ok {
			continue
		}
		comp := Comparison{Name: c.Name, Prev: p, Curr: c}
		comp.NsPerOpDiff = percent(p.NsPerOp, c.NsPerOp)
		comp.BytesPerOpDiff = percent(float64(p.BytesPerOp), float64(c.BytesPerOp))
		comp.AllocsPerOpDiff = percent(float64(p.AllocsPerOp), float64(c.AllocsPerOp))
		comparisons = append(comparisons, comp)
	}
	return comparisons
}

func percent(prev, curr float64) float64 {
	if prev <= 0 {
		return 0
	}
	return (curr - prev) / prev * 100
}

// Verdict compares the ns/op change against threshold percent. A pair where
// either side did not pass cannot be judged.
func (c Comparison) Verdict(threshold float64) Verdict {
	switch {
	case !c.Prev.Passed() || !c.Curr.Passed():
		return VerdictIncomplete
	case c.NsPerOpDiff > threshold:
		return VerdictRegressed
	case c.NsPerOpDiff < -threshold:
		return VerdictImproved
	}
	return VerdictSame
}

// Regressions returns the comparisons slower than threshold percent.
func Regressions(comps []Comparison, threshold float64) []Comparison {
	var out []Comparison
	for _, c := range comps {
		if c.Verdict(threshold) == VerdictRegressed {
			out = append(out, c)
		}
	}
	return out
}

func (c Comparison) String() string {
	return fmt.Sprintf("%s: %+.2f%% ns/op", c.Name, c.NsPerOpDiff)
}
