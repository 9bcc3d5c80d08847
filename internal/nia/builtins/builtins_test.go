package builtins

import (
	"testing"

	"github.com/nialang/nia/internal/nia/eval"
	"github.com/nialang/nia/internal/nia/parser"
	"github.com/nialang/nia/internal/nia/reader"
	"github.com/nialang/nia/internal/nia/value"
)

// newTestMachine wires a Store, Evaluator, and full builtin
// registration — the same construction internal/nia/interp.New does —
// so builtin tests can run real Nia source through run() instead of
// hand-building argument slices for every case.
func newTestMachine() (*eval.Evaluator, *value.Store) {
	store := value.NewStore()
	e := eval.New(store)
	Register(store)
	return e, store
}

func run(t *testing.T, e *eval.Evaluator, store *value.Store, source string) value.Value {
	t.Helper()
	elements, err := parser.ParseAll(source)
	if err != nil {
		t.Fatalf("parse %q: %v", source, err)
	}
	forms, err := reader.New(store).ReadAll(elements)
	if err != nil {
		t.Fatalf("read %q: %v", source, err)
	}
	v, err := e.Execute(forms)
	if err != nil {
		t.Fatalf("execute %q: %v", source, err)
	}
	return v
}

func runExpectError(t *testing.T, e *eval.Evaluator, store *value.Store, source string) error {
	t.Helper()
	elements, err := parser.ParseAll(source)
	if err != nil {
		t.Fatalf("parse %q: %v", source, err)
	}
	forms, err := reader.New(store).ReadAll(elements)
	if err != nil {
		t.Fatalf("read %q: %v", source, err)
	}
	_, err = e.Execute(forms)
	if err == nil {
		t.Fatalf("execute %q: expected an error", source)
	}
	return err
}
