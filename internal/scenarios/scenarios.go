// Package scenarios registers the experiment groups shipped with perfexp.
package scenarios

import (
	"perfexp/internal/harness"
	"perfexp/internal/scenarios/dispatch"
	"perfexp/internal/scenarios/keyedlookup"
	"perfexp/internal/scenarios/materialize"
)

// All returns a fresh copy of every group, in report order.
func All() []*harness.Group {
	return []*harness.Group{
		keyedlookup.Group(),
		materialize.Group(),
		dispatch.Group(),
	}
}

// Names returns the group names in report order.
func Names() []string {
	groups := All()
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = g.Name
	}
	return names
}
