package builtins

import (
	"testing"

	nerrors "github.com/nialang/nia/internal/nia/errors"
)

func TestBreakStopsWhileLoop(t *testing.T) {
	e, store := newTestMachine()
	got := store.Print(run(t, e, store, `
		(let ((i 0) (total 0))
		  (while (< i 10)
		    (set! i (+ i 1))
		    (if (> i 3) (break) nil)
		    (set! total (+ total i)))
		  total)`))
	if got != "6" {
		t.Errorf("expected the loop to accumulate 1+2+3=6 before breaking, got %s", got)
	}
}

func TestContinueSkipsRestOfIteration(t *testing.T) {
	e, store := newTestMachine()
	got := store.Print(run(t, e, store, `
		(let ((total 0))
		  (dolist (x (list 1 2 3 4 5))
		    (if (= (mod x 2) 0) (continue) nil)
		    (set! total (+ total x)))
		  total)`))
	if got != "9" {
		t.Errorf("expected only odd entries 1+3+5=9 to accumulate, got %s", got)
	}
}

func TestAssertPassesAndFails(t *testing.T) {
	e, store := newTestMachine()
	got := store.Print(run(t, e, store, `(assert #t)`))
	if got != "#t" {
		t.Errorf("assert #t = %s, want #t", got)
	}
	runExpectError(t, e, store, `(assert #f "should fail")`)
}

func TestBareBreakOutsideLoopIsGenericExecution(t *testing.T) {
	e, store := newTestMachine()
	err := runExpectError(t, e, store, `(break)`)
	if !nerrors.Is(err, nerrors.GenericExecution) {
		t.Errorf("break outside a loop should surface as GenericExecution, got %v", err)
	}
}
