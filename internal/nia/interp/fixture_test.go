package interp

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	nerrors "github.com/nialang/nia/internal/nia/errors"
)

// TestEndToEndScenarios snapshot-tests the canonical-printed result of
// a table of representative end-to-end scenarios, since Nia has no
// external fixture corpus to drive from.
func TestEndToEndScenarios(t *testing.T) {
	scenarios := []struct {
		name   string
		source string
	}{
		{
			name:   "arithmetic_sum",
			source: `(+ 1 2 3)`,
		},
		{
			name:   "let_binding",
			source: `(let ((x 1) (y 2)) (+ x y))`,
		},
		{
			name: "optional_parameter_default",
			source: `(define-function add2 (function (lambda (a #opt (b 10)) (+ a b))))
					  (list (add2 1) (add2 1 2))`,
		},
		{
			name: "key_parameter_defaults",
			source: `(define-function f (function (lambda (#keys (a 1) (b 2)) (list a b))))
					  (list (f) (f :b 9) (f :a 7 :b 8))`,
		},
		{
			name: "mlet_defines_macro",
			source: `(mlet ((when (macro (cond #rest body) (list 'if cond (cons 'progn body) 'nil))))
					  (when #t 42))`,
		},
		{
			name:   "try_catch_matching_symbol",
			source: `(try (throw my-err "oops") (catch my-err 7))`,
		},
	}

	for _, scenario := range scenarios {
		t.Run(scenario.name, func(t *testing.T) {
			interp := New()
			result, err := interp.Execute(scenario.source)
			if err != nil {
				t.Fatalf("execute %q: unexpected error: %v", scenario.name, err)
			}
			snaps.MatchSnapshot(t, interp.Store.Print(result))
		})
	}
}

// TestTryCatchMismatchedSymbolEscapes covers the negative half of
// scenario 6: a throw whose symbol does not match any catch clause
// propagates with that symbol intact.
func TestTryCatchMismatchedSymbolEscapes(t *testing.T) {
	interp := New()
	_, err := interp.Execute(`(try (throw other) (catch my-err 7))`)
	if err == nil {
		t.Fatal("expected an unmatched throw to escape try")
	}
	nerr, ok := err.(*nerrors.Error)
	if !ok || nerr.Symbol != interp.Store.InternSymbol("other") {
		t.Fatalf("expected the escaping error to carry symbol other, got %v", err)
	}
	snaps.MatchSnapshot(t, err.Error())
}

// TestDispatchExecuteCommand exercises the command surface's execute
// path end to end.
func TestDispatchExecuteCommand(t *testing.T) {
	interp := New()
	result := Dispatch(interp, Command{Kind: CmdExecute, Source: `(+ 40 2)`})
	if result.Kind != ResultSuccess {
		t.Fatalf("expected success, got kind=%d message=%q", result.Kind, result.Message)
	}
	snaps.MatchSnapshot(t, interp.Store.Print(result.Payload))
}

// TestDispatchActionLifecycle exercises define/get/remove for one
// registry family; the other three (modifiers, devices, mappings)
// share the same registry implementation.
func TestDispatchActionLifecycle(t *testing.T) {
	interp := New()

	defineResult := Dispatch(interp, Command{Kind: CmdDefineAction, Name: "mute", Payload: interp.Store.Nil()})
	if defineResult.Kind != ResultSuccess {
		t.Fatalf("define: expected success, got %+v", defineResult)
	}

	duplicateResult := Dispatch(interp, Command{Kind: CmdDefineAction, Name: "mute", Payload: interp.Store.Nil()})
	if duplicateResult.Kind != ResultError {
		t.Fatalf("duplicate define: expected error, got %+v", duplicateResult)
	}

	getResult := Dispatch(interp, Command{Kind: CmdGetAction, Name: "mute"})
	if getResult.Kind != ResultSuccess {
		t.Fatalf("get: expected success, got %+v", getResult)
	}

	removeResult := Dispatch(interp, Command{Kind: CmdRemoveAction, Name: "mute"})
	if removeResult.Kind != ResultSuccess {
		t.Fatalf("remove: expected success, got %+v", removeResult)
	}

	missingResult := Dispatch(interp, Command{Kind: CmdGetAction, Name: "mute"})
	if missingResult.Kind != ResultError {
		t.Fatalf("get after remove: expected error, got %+v", missingResult)
	}
}

// TestDispatchListeningState covers the start/stop/query listening
// commands, which carry no registry payload.
func TestDispatchListeningState(t *testing.T) {
	interp := New()

	if r := Dispatch(interp, Command{Kind: CmdQueryListening}); interp.Store.Truthy(r.Payload) {
		t.Fatal("expected listening to start false")
	}
	Dispatch(interp, Command{Kind: CmdStartListening})
	if r := Dispatch(interp, Command{Kind: CmdQueryListening}); !interp.Store.Truthy(r.Payload) {
		t.Fatal("expected listening to be true after start")
	}
	Dispatch(interp, Command{Kind: CmdStopListening})
	if r := Dispatch(interp, Command{Kind: CmdQueryListening}); interp.Store.Truthy(r.Payload) {
		t.Fatal("expected listening to be false after stop")
	}
}
