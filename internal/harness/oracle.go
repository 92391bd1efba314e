package harness

import (
	"errors"
	"fmt"
	"reflect"
)

// Oracle validates the value returned by one invocation. Any non-nil error
// disqualifies the case.
type Oracle interface {
	Verify(got any) error
}

// OracleFunc adapts a function to Oracle.
type OracleFunc func(got any) error

func (f OracleFunc) Verify(got any) error { return f(got) }

// ErrNotFound is returned by lookup oracles when the operation found nothing.
var ErrNotFound = errors.New("expected item not found")

// SameEntity checks that the operation returned the very object tracked as
// the expected answer. A different object that merely looks equal fails.
func SameEntity[T any](want *T) Oracle {
	return OracleFunc(func(got any) error {
		p, ok := got.(*T)
		if !ok {
			return fmt.Errorf("got %T, want %T", got, want)
		}
		if p == nil {
			return ErrNotFound
		}
		if p != want {
			return fmt.Errorf("got a different %T than the expected one (%+v vs %+v)", p, *p, *want)
		}
		return nil
	})
}

// ExpectCount checks that the produced container holds exactly want
// elements. It accepts anything with a Len() int method, slices, arrays,
// maps, channels, strings and plain ints.
func ExpectCount(want int) Oracle {
	return OracleFunc(func(got any) error {
		n, err := countOf(got)
		if err != nil {
			return err
		}
		if n != want {
			return fmt.Errorf("got %d elements, want %d", n, want)
		}
		return nil
	})
}

// ExpectEqual checks the result by value.
func ExpectEqual[T comparable](want T) Oracle {
	return OracleFunc(func(got any) error {
		v, ok := got.(T)
		if !ok {
			return fmt.Errorf("got %T, want %T", got, want)
		}
		if v != want {
			return fmt.Errorf("expected %v got %v", want, v)
		}
		return nil
	})
}

type lener interface{ Len() int }

func countOf(got any) (int, error) {
	switch v := got.(type) {
	case nil:
		return 0, errors.New("got nil container")
	case int:
		return v, nil
	case lener:
		return v.Len(), nil
	}
	rv := reflect.ValueOf(got)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Chan, reflect.String:
		return rv.Len(), nil
	case reflect.Pointer:
		if rv.IsNil() {
			return 0, errors.New("got nil container")
		}
		if rv.Elem().Kind() == reflect.Array {
			return rv.Elem().Len(), nil
		}
	}
	return 0, fmt.Errorf("cannot count elements of %T", got)
}

// verify runs the trial's oracle and wraps a failure for the case.
func verify(c Case, trial int, o Oracle, got any) error {
	if err := o.Verify(got); err != nil {
		return &OracleViolationError{Case: c, Trial: trial, Err: err}
	}
	return nil
}
