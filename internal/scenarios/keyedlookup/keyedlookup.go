// Package keyedlookup compares a linear scan over a slice with a hashed map
// lookup for int, GUID, string and case-insensitive string keys.
package keyedlookup

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"perfexp/internal/harness"
)

const (
	// GroupName is the harness group name.
	GroupName = "KeyedLookup"
	// MaxN is the size of the canonical item set.
	MaxN = 100

	// LinearScanArray scans a slice comparing keys; it is the baseline.
	LinearScanArray = "LinearScanArray"
	// HashedLookup looks the key up in a map.
	HashedLookup = "HashedLookup"
)

// KeyKind selects which field is the key and how keys compare.
type KeyKind string

const (
	KeyInt         KeyKind = "Int"
	KeyGUID        KeyKind = "GUID"
	KeyString      KeyKind = "String"
	KeyInsensitive KeyKind = "Insensitive"
)

// Sizes are the N values swept by default.
var Sizes = []int{10, 20, 30, 40, 50, MaxN}

// KeyKinds are the key kinds swept by default.
var KeyKinds = []KeyKind{KeyInt, KeyGUID, KeyString, KeyInsensitive}

// Item is one keyed entity. Lookups must return the canonical pointer.
type Item struct {
	IntID int
	GUID  uuid.UUID
	Name  string
}

// Dataset is the canonical item set shared by every trial.
type Dataset struct {
	Items []*Item
}

// Group returns the KeyedLookup group.
func Group() *harness.Group {
	return &harness.Group{
		Name: GroupName,
		Axes: []harness.Axis{
			harness.NewAxis("N", Sizes...),
			harness.NewAxis("Key", KeyKinds...),
		},
		Setup: NewDataset,
		Variants: []harness.Variant{
			{Name: LinearScanArray, Baseline: true, Setup: trialSetup(scan)},
			{Name: HashedLookup, Setup: trialSetup(lookup)},
		},
	}
}

// NewDataset builds MaxN items with deterministic GUIDs drawn from rng.
func NewDataset(rng *rand.Rand) (any, error) {
	p := message.NewPrinter(language.English)
	ds := &Dataset{Items: make([]*Item, MaxN)}
	for i := range ds.Items {
		id, err := uuid.NewRandomFromReader(randReader{rng})
		if err != nil {
			return nil, fmt.Errorf("failed to generate GUID: %w", err)
		}
		ds.Items[i] = &Item{
			IntID: i,
			GUID:  id,
			Name:  p.Sprintf("Name %.5f", float64(i)),
		}
	}
	return ds, nil
}

// randReader feeds uuid generation from the injected source so GUIDs are
// reproducible for a given seed.
type randReader struct{ rng *rand.Rand }

func (r randReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(r.rng.Uint32())
	}
	return len(p), nil
}

// fixture is the private per-trial state: the first N items as a slice and
// as a map keyed by the selected key kind.
type fixture struct {
	kind   KeyKind
	items  []*Item
	byInt  map[int]*Item
	byGUID map[uuid.UUID]*Item
	byName map[string]*Item
	fold   cases.Caser
	needle *Item
}

func newFixture(ds *Dataset, kind KeyKind, n int, needleIdx int) (*fixture, error) {
	if n < 1 || n > len(ds.Items) {
		return nil, fmt.Errorf("sample size %d out of range [1,%d]", n, len(ds.Items))
	}
	if needleIdx < 0 || needleIdx >= n {
		return nil, fmt.Errorf("needle index %d out of range [0,%d)", needleIdx, n)
	}

	f := &fixture{
		kind:   kind,
		items:  make([]*Item, n),
		needle: ds.Items[needleIdx],
		fold:   cases.Fold(),
	}
	copy(f.items, ds.Items[:n])

	switch kind {
	case KeyInt:
		f.byInt = make(map[int]*Item, n)
		for _, it := range f.items {
			f.byInt[it.IntID] = it
		}
	case KeyGUID:
		f.byGUID = make(map[uuid.UUID]*Item, n)
		for _, it := range f.items {
			f.byGUID[it.GUID] = it
		}
	case KeyString:
		f.byName = make(map[string]*Item, n)
		for _, it := range f.items {
			f.byName[it.Name] = it
		}
	case KeyInsensitive:
		f.byName = make(map[string]*Item, n)
		for _, it := range f.items {
			f.byName[f.fold.String(it.Name)] = it
		}
	default:
		return nil, fmt.Errorf("unknown key kind %q", kind)
	}
	return f, nil
}

type strategy func(f *fixture) func() any

func trialSetup(op strategy) harness.TrialSetup {
	return func(env harness.TrialEnv) (harness.Trial, error) {
		ds, err := harness.DataAs[*Dataset](env)
		if err != nil {
			return harness.Trial{}, err
		}
		n, err := env.Params().Int("N")
		if err != nil {
			return harness.Trial{}, err
		}
		kind, err := harness.ValueOf[KeyKind](env.Params(), "Key")
		if err != nil {
			return harness.Trial{}, err
		}
		if n < 1 {
			return harness.Trial{}, errors.New("sample size must be positive")
		}

		f, err := newFixture(ds, kind, n, env.Rand.IntN(n))
		if err != nil {
			return harness.Trial{}, err
		}
		// The expected answer comes from the canonical set, never from the
		// containers under test.
		return harness.Trial{Invoke: op(f), Oracle: harness.SameEntity(f.needle)}, nil
	}
}

func scan(f *fixture) func() any {
	needle := f.needle
	items := f.items
	switch f.kind {
	case KeyInt:
		return func() any {
			for _, c := range items {
				if c.IntID == needle.IntID {
					return c
				}
			}
			return (*Item)(nil)
		}
	case KeyGUID:
		return func() any {
			for _, c := range items {
				if c.GUID == needle.GUID {
					return c
				}
			}
			return (*Item)(nil)
		}
	case KeyString:
		return func() any {
			for _, c := range items {
				if c.Name == needle.Name {
					return c
				}
			}
			return (*Item)(nil)
		}
	default:
		fold := f.fold
		return func() any {
			key := fold.String(needle.Name)
			for _, c := range items {
				if fold.String(c.Name) == key {
					return c
				}
			}
			return (*Item)(nil)
		}
	}
}

func lookup(f *fixture) func() any {
	needle := f.needle
	switch f.kind {
	case KeyInt:
		m := f.byInt
		return func() any { return m[needle.IntID] }
	case KeyGUID:
		m := f.byGUID
		return func() any { return m[needle.GUID] }
	case KeyString:
		m := f.byName
		return func() any { return m[needle.Name] }
	default:
		m, fold := f.byName, f.fold
		return func() any { return m[fold.String(needle.Name)] }
	}
}
