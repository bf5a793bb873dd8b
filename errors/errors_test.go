package errors

import (
	"fmt"
	"testing"
)

func TestRegisterRejectsDuplicateCode(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("reusing a code must panic")
		}
	}()
	Register(2, "clone of unauthorized")
}

func TestErrorIs(t *testing.T) {
	cases := map[string]struct {
		kind  *Error
		err   error
		match bool
	}{
		"the root itself": {
			kind:  ErrNotFound,
			err:   ErrNotFound,
			match: true,
		},
		"wrapped once": {
			kind:  ErrNotFound,
			err:   Wrap(ErrNotFound, "token"),
			match: true,
		},
		"wrapped twice": {
			kind:  ErrNotFound,
			err:   Wrapf(Wrap(ErrNotFound, "token"), "handler"),
			match: true,
		},
		"different root": {
			kind:  ErrNotFound,
			err:   Wrap(ErrUnauthorized, "token"),
			match: false,
		},
		"nil error": {
			kind:  ErrNotFound,
			err:   nil,
			match: false,
		},
		"stdlib error": {
			kind:  ErrNotFound,
			err:   fmt.Errorf("not found"),
			match: false,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if got := tc.kind.Is(tc.err); got != tc.match {
				t.Fatalf("want %v, got %v", tc.match, got)
			}
		})
	}
}

func TestWrapKeepsMessageChain(t *testing.T) {
	err := Wrap(Wrap(ErrNotFound, "token"), "handler")
	const want = "handler: token: not found"
	if got := err.Error(); got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(nil, "no problem") != nil {
		t.Fatal("wrapping nil must return nil")
	}
}

func TestRecover(t *testing.T) {
	run := func() (err error) {
		defer Recover(&err)
		panic("argh")
	}
	err := run()
	if !ErrPanic.Is(err) {
		t.Fatalf("want a panic error, got %+v", err)
	}
}
