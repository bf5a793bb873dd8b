// Package assert provides minimal assertions for tests, with failure
// locations pointing at the caller.
package assert

import (
	"reflect"

	"github.com/glyph-network/glyph/errors"
)

// Tester is the minimal subset of testing.TB needed here.
type Tester interface {
	Helper()
	Fatalf(format string, args ...interface{})
}

// Nil fails the test when the value is not nil.
func Nil(t Tester, value interface{}) {
	t.Helper()
	if !isNil(value) {
		t.Fatalf("want a nil value, got %+v", value)
	}
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	switch v := reflect.ValueOf(value); v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return v.IsNil()
	}
	return false
}

// Equal fails the test when want and got differ under deep comparison.
func Equal(t Tester, want, got interface{}) {
	t.Helper()
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("want %+v, got %+v", want, got)
	}
}

// Panics fails the test unless running fn panics.
func Panics(t Tester, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		if recover() == nil {
			t.Fatalf("expected a panic")
		}
	}()
	fn()
}

// IsErr fails the test unless got matches the wanted error kind.
func IsErr(t Tester, want *errors.Error, got error) {
	t.Helper()
	if !want.Is(got) {
		t.Fatalf("want %q error, got %+v", want, got)
	}
}
