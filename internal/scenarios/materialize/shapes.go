package materialize

import (
	"iter"
	"math"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Shape selects the element type produced by the lazy sequence.
type Shape string

const (
	ShapeInt          Shape = "Int"
	ShapeSmallStruct  Shape = "SmallStruct"
	ShapeSmallObject  Shape = "SmallObject"
	ShapeMediumObject Shape = "MediumObject"
	ShapeBigObject    Shape = "BigObject"
)

// SmallStruct is stored by value.
type SmallStruct struct {
	ID          int
	Name        string
	Price       float64
	IsAvailable bool
	Symbol      rune
}

// SmallObject has the fields of SmallStruct but is produced as a pointer.
type SmallObject struct {
	ID          int
	Name        string
	Price       float64
	IsAvailable bool
	Symbol      rune
}

// MediumObject adds numeric fields and their optional counterparts.
type MediumObject struct {
	ID          int
	Name        string
	Price       float64
	IsAvailable bool
	Symbol      rune
	Level       uint8
	Rating      float32
	Views       int64
	Rank        int16
	Discount    float64

	OptionalID          *int
	OptionalPrice       *float64
	OptionalIsAvailable *bool
	OptionalSymbol      *rune
	OptionalLevel       *uint8
	OptionalRating      *float32
	OptionalViews       *int64
	OptionalRank        *int16
	OptionalDiscount    *float64
}

// Status is the lifecycle state carried by BigObject.
type Status int

const (
	StatusActive Status = iota
	StatusInactive
	StatusPending
	StatusSuspended
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusInactive:
		return "inactive"
	case StatusPending:
		return "pending"
	case StatusSuspended:
		return "suspended"
	}
	return "Status(" + strconv.Itoa(int(s)) + ")"
}

// BigObject embeds MediumObject's fields and adds text, time and identity
// fields.
type BigObject struct {
	MediumObject

	Description string
	URL         string

	CreatedAt        time.Time
	UpdatedAt        *time.Time
	Duration         time.Duration
	OptionalDuration *time.Duration

	Status         Status
	OptionalStatus *Status

	UniqueID         uuid.UUID
	OptionalUniqueID *uuid.UUID

	IsActive   bool
	IsVerified bool
	IsPremium  bool
}

// source holds what a generator needs. Each iteration of a sequence starts
// a new generator from seed, so repeated iterations yield equal elements.
type source struct {
	seed  [2]uint64
	names []string
	epoch time.Time
}

func (s source) rng() *rand.Rand { return rand.New(rand.NewPCG(s.seed[0], s.seed[1])) }

func ints(n int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < n; i++ {
			if !yield(i) {
				return
			}
		}
	}
}

func smallStructs(n int, src source) iter.Seq[SmallStruct] {
	return func(yield func(SmallStruct) bool) {
		r := src.rng()
		for i := 0; i < n; i++ {
			v := SmallStruct{
				ID:          i,
				Name:        src.names[i],
				Price:       round(r.Float64()*100, 2),
				IsAvailable: r.IntN(2) == 0,
				Symbol:      symbol(r),
			}
			if !yield(v) {
				return
			}
		}
	}
}

func smallObjects(n int, src source) iter.Seq[*SmallObject] {
	return func(yield func(*SmallObject) bool) {
		r := src.rng()
		for i := 0; i < n; i++ {
			v := &SmallObject{
				ID:          i,
				Name:        src.names[i],
				Price:       round(r.Float64()*100, 2),
				IsAvailable: r.IntN(2) == 0,
				Symbol:      symbol(r),
			}
			if !yield(v) {
				return
			}
		}
	}
}

func mediumObjects(n int, src source) iter.Seq[*MediumObject] {
	return func(yield func(*MediumObject) bool) {
		r := src.rng()
		for i := 0; i < n; i++ {
			v := &MediumObject{}
			fillMedium(v, i, src.names[i], r)
			if !yield(v) {
				return
			}
		}
	}
}

func bigObjects(n int, src source) iter.Seq[*BigObject] {
	return func(yield func(*BigObject) bool) {
		r := src.rng()
		ids := randReader{r}
		for i := 0; i < n; i++ {
			v := &BigObject{
				Description: "Description" + strconv.Itoa(i),
				URL:         "https://example.com/resource/" + strconv.Itoa(i),
				CreatedAt:   src.epoch.AddDate(0, 0, -r.IntN(1000)),
				Duration:    time.Duration(60+r.IntN(1380)) * time.Minute,
				Status:      Status(r.IntN(4)),
				UniqueID:    newUUID(ids),
				IsActive:    r.IntN(2) == 0,
				IsVerified:  r.IntN(2) == 0,
				IsPremium:   r.IntN(2) == 0,
			}
			fillMedium(&v.MediumObject, i, src.names[i], r)
			v.UpdatedAt = maybe(r, func() time.Time { return src.epoch.AddDate(0, 0, -r.IntN(1000)) })
			v.OptionalDuration = maybe(r, func() time.Duration { return time.Duration(60+r.IntN(1380)) * time.Minute })
			v.OptionalStatus = maybe(r, func() Status { return Status(r.IntN(4)) })
			v.OptionalUniqueID = maybe(r, func() uuid.UUID { return newUUID(ids) })
			if !yield(v) {
				return
			}
		}
	}
}

func fillMedium(v *MediumObject, i int, name string, r *rand.Rand) {
	v.ID = i
	v.Name = name
	v.Price = round(r.Float64()*100, 2)
	v.IsAvailable = r.IntN(2) == 0
	v.Symbol = symbol(r)
	v.Level = uint8(1 + r.IntN(9))
	v.Rating = float32(round(r.Float64()*5, 1))
	v.Views = r.Int64N(math.MaxInt32)
	v.Rank = int16(1 + r.IntN(99))
	v.Discount = round(r.Float64()*30, 2)

	v.OptionalID = maybe(r, r.Int)
	v.OptionalPrice = maybe(r, func() float64 { return round(r.Float64()*100, 2) })
	v.OptionalIsAvailable = maybe(r, func() bool { return r.IntN(2) == 0 })
	v.OptionalSymbol = maybe(r, func() rune { return symbol(r) })
	v.OptionalLevel = maybe(r, func() uint8 { return uint8(1 + r.IntN(9)) })
	v.OptionalRating = maybe(r, func() float32 { return float32(round(r.Float64()*5, 1)) })
	v.OptionalViews = maybe(r, func() int64 { return r.Int64N(math.MaxInt32) })
	v.OptionalRank = maybe(r, func() int16 { return int16(1 + r.IntN(99)) })
	v.OptionalDiscount = maybe(r, func() float64 { return round(r.Float64()*30, 2) })
}

// maybe returns nil half of the time, otherwise a pointer to next().
func maybe[T any](r *rand.Rand, next func() T) *T {
	if r.IntN(2) == 0 {
		return nil
	}
	v := next()
	return &v
}

func symbol(r *rand.Rand) rune { return rune('A' + r.IntN(26)) }

func round(f float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(f*p) / p
}

type randReader struct{ rng *rand.Rand }

func (r randReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(r.rng.Uint32())
	}
	return len(p), nil
}

func newUUID(r randReader) uuid.UUID {
	id, err := uuid.NewRandomFromReader(r)
	if err != nil {
		return uuid.Nil
	}
	return id
}
