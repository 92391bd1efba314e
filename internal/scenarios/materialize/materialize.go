// Package materialize measures collecting a lazily produced sequence into an
// exact-length slice, a growable slice or a linked list, across element shapes
// of increasing size.
package materialize

import (
	"container/list"
	"fmt"
	"iter"
	"math/rand/v2"
	"slices"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"perfexp/internal/harness"
)

const (
	// GroupName is the harness group name.
	GroupName = "Materialization"
	// MaxN bounds the sequence length.
	MaxN = 100_000

	// CollectToArray buffers the sequence and copies it into a slice of
	// exactly its length; it is the baseline.
	CollectToArray = "CollectToArray"
	// CollectToList returns the append-grown slice as is.
	CollectToList = "CollectToList"
	// CollectToLinkedList pushes every element onto a container/list.
	CollectToLinkedList = "CollectToLinkedList"
)

// Sizes are the sequence lengths swept by default.
var Sizes = []int{10, 100, 1_000, 10_000, MaxN}

// Shapes are the element shapes swept by default.
var Shapes = []Shape{ShapeInt, ShapeSmallStruct, ShapeSmallObject, ShapeMediumObject, ShapeBigObject}

// Epoch anchors every generated timestamp so runs are reproducible.
var Epoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// Canon is the shared, read-only input to every trial.
type Canon struct {
	Names []string
	Epoch time.Time
}

// Group returns the Materialization group.
func Group() *harness.Group {
	return &harness.Group{
		Name: GroupName,
		Axes: []harness.Axis{
			harness.NewAxis("N", Sizes...),
			harness.NewAxis("Shape", Shapes...),
		},
		Setup: NewCanon,
		Variants: []harness.Variant{
			{Name: CollectToArray, Baseline: true, Setup: trialSetup(CollectToArray)},
			{Name: CollectToList, Setup: trialSetup(CollectToList)},
			{Name: CollectToLinkedList, Setup: trialSetup(CollectToLinkedList)},
		},
	}
}

// NewCanon precomputes the element names up to MaxN. The generator itself
// draws from per-trial sources.
func NewCanon(_ *rand.Rand) (any, error) {
	p := message.NewPrinter(language.English)
	names := make([]string, MaxN)
	for i := range names {
		names[i] = p.Sprintf("Name %.5f", float64(i))
	}
	return &Canon{Names: names, Epoch: Epoch}, nil
}

func trialSetup(target string) harness.TrialSetup {
	return func(env harness.TrialEnv) (harness.Trial, error) {
		canon, err := harness.DataAs[*Canon](env)
		if err != nil {
			return harness.Trial{}, err
		}
		n, err := env.Params().Int("N")
		if err != nil {
			return harness.Trial{}, err
		}
		shape, err := harness.ValueOf[Shape](env.Params(), "Shape")
		if err != nil {
			return harness.Trial{}, err
		}
		if n < 0 || n > len(canon.Names) {
			return harness.Trial{}, fmt.Errorf("sequence length %d out of range [0,%d]", n, len(canon.Names))
		}

		src := source{
			seed:  [2]uint64{env.Rand.Uint64(), env.Rand.Uint64()},
			names: canon.Names,
			epoch: canon.Epoch,
		}
		invoke, err := materializer(shape, n, src, target)
		if err != nil {
			return harness.Trial{}, err
		}
		return harness.Trial{Invoke: invoke, Oracle: harness.ExpectCount(n)}, nil
	}
}

func materializer(shape Shape, n int, src source, target string) (func() any, error) {
	switch shape {
	case ShapeInt:
		return collect(ints(n), target)
	case ShapeSmallStruct:
		return collect(smallStructs(n, src), target)
	case ShapeSmallObject:
		return collect(smallObjects(n, src), target)
	case ShapeMediumObject:
		return collect(mediumObjects(n, src), target)
	case ShapeBigObject:
		return collect(bigObjects(n, src), target)
	}
	return nil, fmt.Errorf("unknown shape %q", shape)
}

func collect[T any](seq iter.Seq[T], target string) (func() any, error) {
	switch target {
	case CollectToArray:
		return func() any {
			buf := slices.Collect(seq)
			out := make([]T, len(buf))
			copy(out, buf)
			return out
		}, nil
	case CollectToList:
		return func() any {
			return slices.Collect(seq)
		}, nil
	case CollectToLinkedList:
		return func() any {
			l := list.New()
			for v := range seq {
				l.PushBack(v)
			}
			return l
		}, nil
	}
	return nil, fmt.Errorf("unknown collection target %q", target)
}
