package harness

// Case is one concrete combination of axis values for one variant. Its
// identity is the (group, variant, combination) tuple.
type Case struct {
	Group    string
	Variant  string
	Baseline bool
	Params   Combination
}

// ID renders the case as Group/Combination/Variant, the same path the
// testing.B adapter uses for sub-benchmarks.
func (c Case) ID() string {
	if len(c.Params) == 0 {
		return c.Group + "/" + c.Variant
	}
	return c.Group + "/" + c.Params.String() + "/" + c.Variant
}

// Combinations returns the cartesian product of the axes. The first axis
// varies slowest. No axes yields exactly one empty combination.
func Combinations(axes []Axis) []Combination {
	total := 1
	for _, a := range axes {
		total *= a.Len()
	}

	combos := make([]Combination, 0, total)
	for i := 0; i < total; i++ {
		combo := make(Combination, len(axes))
		rem := i
		for j := len(axes) - 1; j >= 0; j-- {
			n := axes[j].Len()
			combo[j] = Param{Axis: axes[j].Name(), Value: axes[j].values[rem%n]}
			rem /= n
		}
		combos = append(combos, combo)
	}
	return combos
}

// Expand validates the group and returns its cases: every combination in
// Combinations order, and within one combination every variant in
// declaration order.
func Expand(g *Group) ([]Case, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	combos := Combinations(g.Axes)
	cases := make([]Case, 0, len(combos)*len(g.Variants))
	for _, combo := range combos {
		for _, v := range g.Variants {
			cases = append(cases, Case{
				Group:    g.Name,
				Variant:  v.Name,
				Baseline: v.Baseline,
				Params:   combo,
			})
		}
	}
	return cases, nil
}
