package harness

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// Lifecycle owns a group's fixtures: the canonical data set built once by
// Prepare, and the per-trial fixtures built by NewTrial.
type Lifecycle struct {
	group    *Group
	seed     uint64
	prepared bool
	data     any
	err      error
}

// NewLifecycle returns a lifecycle for g. The seed drives the group setup's
// random source.
func NewLifecycle(g *Group, seed uint64) *Lifecycle {
	return &Lifecycle{group: g, seed: seed}
}

// Prepare runs the group setup exactly once. Later calls return the first
// call's outcome without running it again.
func (l *Lifecycle) Prepare() error {
	if l.prepared {
		return l.err
	}
	l.prepared = true

	data, err := l.group.Setup(NewRand(l.seed, groupStream(l.group.Name)))
	if err != nil {
		l.err = fmt.Errorf("group %q setup: %w", l.group.Name, err)
		return l.err
	}
	l.data = data
	return nil
}

// Data returns the canonical data set. It is nil until Prepare succeeds.
func (l *Lifecycle) Data() any { return l.data }

// NewTrial builds a fresh fixture for one invocation of c. The group must
// have been prepared. Any failure is a *SetupFailureError.
func (l *Lifecycle) NewTrial(c Case, rng *rand.Rand, trial int) (Trial, error) {
	fail := func(err error) (Trial, error) {
		return Trial{}, &SetupFailureError{Case: c, Trial: trial, Err: err}
	}

	if !l.prepared {
		return fail(errors.New("group setup has not run"))
	}
	if l.err != nil {
		return Trial{}, &SetupFailureError{Case: c, Trial: -1, Err: l.err}
	}

	v, ok := l.group.variant(c.Variant)
	if !ok {
		return fail(fmt.Errorf("unknown variant %q", c.Variant))
	}

	t, err := v.Setup(TrialEnv{Case: c, Data: l.data, Rand: rng, Trial: trial})
	if err != nil {
		return fail(err)
	}
	if t.Invoke == nil {
		return fail(errors.New("trial setup returned no operation"))
	}
	if t.Oracle == nil {
		return fail(errors.New("trial setup returned no oracle"))
	}
	return t, nil
}
