package harness

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLifecycle_GroupSetupRunsOnce(t *testing.T) {
	calls := 0
	g := &Group{
		Name: "Once",
		Setup: func(*rand.Rand) (any, error) {
			calls++
			return []int{1, 2, 3}, nil
		},
		Variants: []Variant{{Name: "A", Baseline: true, Setup: trivialSetup(3, ExpectCount(3))}},
	}

	lc := NewLifecycle(g, 1)
	require.NoError(t, lc.Prepare())
	require.NoError(t, lc.Prepare())
	assert.Equal(t, 1, calls)
	assert.Equal(t, []int{1, 2, 3}, lc.Data())
}

func TestLifecycle_GroupSetupFailureIsSticky(t *testing.T) {
	calls := 0
	g := &Group{
		Name: "Broken",
		Setup: func(*rand.Rand) (any, error) {
			calls++
			return nil, errors.New("disk on fire")
		},
		Variants: []Variant{{Name: "A", Baseline: true, Setup: trivialSetup(1, ExpectEqual(1))}},
	}

	lc := NewLifecycle(g, 1)
	require.Error(t, lc.Prepare())
	require.Error(t, lc.Prepare())
	assert.Equal(t, 1, calls)

	_, err := lc.NewTrial(Case{Group: "Broken", Variant: "A"}, NewRand(1, "x"), 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSetupFailure))
	assert.Contains(t, err.Error(), "group setup")
}

func TestLifecycle_NewTrialRequiresPrepare(t *testing.T) {
	lc := NewLifecycle(newLookupGroup(0), 1)
	_, err := lc.NewTrial(Case{Group: "KeyedLookup", Variant: "HashedLookup"}, NewRand(1, "x"), 0)
	assert.True(t, errors.Is(err, ErrSetupFailure))
}

func TestLifecycle_TrialSetupFailures(t *testing.T) {
	tests := []struct {
		name  string
		setup TrialSetup
		want  string
	}{
		{
			name:  "setup error",
			setup: func(TrialEnv) (Trial, error) { return Trial{}, errors.New("index out of range") },
			want:  "index out of range",
		},
		{
			name:  "no operation",
			setup: func(TrialEnv) (Trial, error) { return Trial{Oracle: ExpectEqual(1)}, nil },
			want:  "no operation",
		},
		{
			name:  "no oracle",
			setup: func(TrialEnv) (Trial, error) { return Trial{Invoke: func() any { return 1 }}, nil },
			want:  "no oracle",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &Group{Name: "G", Setup: noData, Variants: []Variant{{Name: "A", Baseline: true, Setup: tt.setup}}}
			lc := NewLifecycle(g, 1)
			require.NoError(t, lc.Prepare())

			c := Case{Group: "G", Variant: "A"}
			_, err := lc.NewTrial(c, NewRand(1, "x"), 7)
			require.Error(t, err)

			var setupErr *SetupFailureError
			require.True(t, errors.As(err, &setupErr))
			assert.Equal(t, 7, setupErr.Trial)
			assert.Equal(t, c, setupErr.Case)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

// Re-running trial setup from the same canonical data always yields a
// fixture whose answer matches the canonical source.
func TestLifecycle_TrialSetupRoundTrip(t *testing.T) {
	g := newLookupGroup(0)
	lc := NewLifecycle(g, 42)
	require.NoError(t, lc.Prepare())

	cases, err := Expand(g)
	require.NoError(t, err)

	for _, c := range cases {
		rng := NewRand(42, caseStream(c))
		for i := 0; i < 50; i++ {
			trial, err := lc.NewTrial(c, rng, i)
			require.NoError(t, err)
			assert.NoError(t, trial.Oracle.Verify(trial.Invoke()), c.ID())
		}
	}
}

func TestNewRand_DeterministicPerStream(t *testing.T) {
	a := NewRand(7, "case:X")
	b := NewRand(7, "case:X")
	c := NewRand(7, "case:Y")

	var sameAB, sameAC = true, true
	for i := 0; i < 20; i++ {
		x, y, z := a.Uint64(), b.Uint64(), c.Uint64()
		sameAB = sameAB && x == y
		sameAC = sameAC && x == z
	}
	assert.True(t, sameAB)
	assert.False(t, sameAC)
}
