package harness

import (
	"fmt"
	"strconv"
	"strings"
)

// Axis is a named, ordered set of values an experiment is swept across.
// The values are copied on construction and never handed out for mutation.
type Axis struct {
	name   string
	values []any
}

// NewAxis declares an axis. An axis with no values is kept as declared and
// rejected later by Group.Validate, so every configuration problem surfaces
// in one place before timing starts.
func NewAxis[T any](name string, values ...T) Axis {
	vs := make([]any, len(values))
	for i, v := range values {
		vs[i] = v
	}
	return Axis{name: name, values: vs}
}

// Name returns the axis name.
func (a Axis) Name() string { return a.name }

// Len returns the number of values on the axis.
func (a Axis) Len() int { return len(a.values) }

// Values returns a copy of the axis values in declaration order.
func (a Axis) Values() []any {
	out := make([]any, len(a.values))
	copy(out, a.values)
	return out
}

// restrict keeps only the values whose formatted form is in keep, preserving
// declaration order.
func (a Axis) restrict(keep []string) Axis {
	want := make(map[string]struct{}, len(keep))
	for _, k := range keep {
		want[k] = struct{}{}
	}
	var vs []any
	for _, v := range a.values {
		if _, ok := want[formatValue(v)]; ok {
			vs = append(vs, v)
		}
	}
	return Axis{name: a.name, values: vs}
}

// Param is one concrete axis value inside a Combination.
type Param struct {
	Axis  string
	Value any
}

func (p Param) String() string {
	return p.Axis + "=" + formatValue(p.Value)
}

// Combination holds one value per axis, in axis declaration order.
type Combination []Param

// String renders the combination as "N=10/Key=Int". The empty combination
// renders as "".
func (c Combination) String() string {
	parts := make([]string, len(c))
	for i, p := range c {
		parts[i] = p.String()
	}
	return strings.Join(parts, "/")
}

// Lookup returns the value bound to the named axis.
func (c Combination) Lookup(axis string) (any, bool) {
	for _, p := range c {
		if p.Axis == axis {
			return p.Value, true
		}
	}
	return nil, false
}

// Int returns the named axis value as an int.
func (c Combination) Int(axis string) (int, error) {
	v, ok := c.Lookup(axis)
	if !ok {
		return 0, fmt.Errorf("axis %q not in combination %q", axis, c)
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case int32:
		return int(n), nil
	case string:
		return strconv.Atoi(n)
	default:
		return 0, fmt.Errorf("axis %q value %v is %T, not an integer", axis, v, v)
	}
}

// Values returns the combination as a map of axis name to formatted value.
func (c Combination) Values() map[string]string {
	out := make(map[string]string, len(c))
	for _, p := range c {
		out[p.Axis] = formatValue(p.Value)
	}
	return out
}

// ValueOf returns the named axis value converted to T.
func ValueOf[T any](c Combination, axis string) (T, error) {
	var zero T
	v, ok := c.Lookup(axis)
	if !ok {
		return zero, fmt.Errorf("axis %q not in combination %q", axis, c)
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("axis %q value %v is %T, not %T", axis, v, v, zero)
	}
	return t, nil
}

func formatValue(v any) string { return fmt.Sprint(v) }
