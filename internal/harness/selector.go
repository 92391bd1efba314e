package harness

import (
	"fmt"
	"path"
	"strings"
)

// Selector restricts which groups, variants and axis values run. Group and
// variant entries are path.Match patterns; an empty list selects everything.
// A group none of whose variants match is skipped. Params restricts an axis
// to the listed formatted values.
type Selector struct {
	Groups   []string
	Variants []string
	Params   map[string][]string
}

// ParseParams parses "Axis=v1,v2" entries. Repeated axes accumulate.
func ParseParams(entries []string) (map[string][]string, error) {
	out := make(map[string][]string)
	for _, e := range entries {
		name, vals, ok := strings.Cut(e, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" || strings.TrimSpace(vals) == "" {
			return nil, &ConfigurationError{Reason: fmt.Sprintf("malformed param %q, want Axis=v1,v2", e)}
		}
		for _, v := range strings.Split(vals, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out[name] = append(out[name], v)
			}
		}
	}
	return out, nil
}

// Apply returns restricted copies of the selected groups, in their original
// order. The baseline variant of a group is always kept so ratios stay
// defined. A param restricts only the groups declaring that axis; naming an
// axis no selected group declares, or values an axis does not have, is a
// configuration error.
func (s Selector) Apply(groups []*Group) ([]*Group, error) {
	var out []*Group
	for _, g := range groups {
		ok, err := matchAny(s.Groups, g.Name)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		sel := &Group{Name: g.Name, Setup: g.Setup}
		matched := false
		for _, v := range g.Variants {
			keep, err := matchAny(s.Variants, v.Name)
			if err != nil {
				return nil, err
			}
			matched = matched || keep
			if keep || v.Baseline {
				sel.Variants = append(sel.Variants, v)
			}
		}
		if len(s.Variants) > 0 && !matched {
			continue
		}

		for _, a := range g.Axes {
			vals, restricted := s.Params[a.Name()]
			if !restricted {
				sel.Axes = append(sel.Axes, a)
				continue
			}
			r := a.restrict(vals)
			if r.Len() == 0 {
				return nil, configErrorf(g.Name, "no value of axis %q matches %v", a.Name(), vals)
			}
			sel.Axes = append(sel.Axes, r)
		}

		out = append(out, sel)
	}
	if len(out) == 0 && len(groups) > 0 {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("no group matches groups %v variants %v", s.Groups, s.Variants)}
	}
	for name := range s.Params {
		if !anyHasAxis(out, name) {
			return nil, &ConfigurationError{Reason: fmt.Sprintf("no selected group declares axis %q", name)}
		}
	}
	return out, nil
}

func anyHasAxis(groups []*Group, name string) bool {
	for _, g := range groups {
		for _, a := range g.Axes {
			if a.Name() == name {
				return true
			}
		}
	}
	return false
}

func matchAny(patterns []string, name string) (bool, error) {
	if len(patterns) == 0 {
		return true, nil
	}
	for _, p := range patterns {
		ok, err := path.Match(p, name)
		if err != nil {
			return false, &ConfigurationError{Reason: fmt.Sprintf("bad pattern %q: %v", p, err)}
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
