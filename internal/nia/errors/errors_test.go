package errors

import (
	"testing"

	stderrors "errors"

	"github.com/nialang/nia/internal/nia/value"
)

func TestIsKind(t *testing.T) {
	s := value.NewStore()
	err := New(s, Overflow, "overflow", "integer addition overflowed")
	if !Is(err, Overflow) {
		t.Fatalf("Is(Overflow) should match")
	}
	if Is(err, Failure) {
		t.Fatalf("Is(Failure) should not match an Overflow error")
	}
}

func TestMatchesSymbolIsIdentityNotString(t *testing.T) {
	s := value.NewStore()
	myErr := s.InternSymbol("my-err")
	other := s.InternSymbol("other")

	err := New(s, GenericExecution, "my-err", "oops")
	if !MatchesSymbol(err, myErr) {
		t.Fatalf("expected catch symbol my-err to match")
	}
	if MatchesSymbol(err, other) {
		t.Fatalf("catch symbol other must not match an error raised as my-err")
	}
}

func TestCauseChainUnwraps(t *testing.T) {
	s := value.NewStore()
	inner := New(s, Failure, "failure", "dangling identifier")
	outer := Wrap(s, GenericExecution, "generic-error", "lookup failed", inner)

	if !stderrors.Is(outer, outer) {
		t.Fatalf("errors.Is should find itself")
	}
	unwrapped := stderrors.Unwrap(outer)
	if unwrapped != inner {
		t.Fatalf("expected cause chain to unwrap to inner error")
	}
}
