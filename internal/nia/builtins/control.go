package builtins

import (
	nerrors "github.com/nialang/nia/internal/nia/errors"
	"github.com/nialang/nia/internal/nia/value"
)

// registerControlOps wires break/continue, raised as dedicated error
// Kinds and caught by loop constructs, plus the throw-adjacent assert
// builtin. while/dolist/dotimes (eval/specialforms.go) recognize these
// Kinds and stop unwinding at the loop boundary instead of propagating
// further.
func registerControlOps(store *value.Store) {
	define(store, "break", biBreak)
	define(store, "continue", biContinue)
	define(store, "assert", biAssert)
}

func biBreak(m value.Machine, env value.EnvironmentID, args []value.Value) (value.Value, error) {
	store := m.Store()
	if err := exactArity(store, "break", args, 0); err != nil {
		return value.Value{}, err
	}
	return value.Value{}, nerrors.New(store, nerrors.Break, "break", "break")
}

func biContinue(m value.Machine, env value.EnvironmentID, args []value.Value) (value.Value, error) {
	store := m.Store()
	if err := exactArity(store, "continue", args, 0); err != nil {
		return value.Value{}, err
	}
	return value.Value{}, nerrors.New(store, nerrors.Continue, "continue", "continue")
}

func biAssert(m value.Machine, env value.EnvironmentID, args []value.Value) (value.Value, error) {
	store := m.Store()
	if err := minArity(store, "assert", args, 1); err != nil {
		return value.Value{}, err
	}
	if store.Truthy(args[0]) {
		return args[0], nil
	}
	message := "assertion failed"
	if len(args) >= 2 {
		if s, err := asString(store, "assert", args[1]); err == nil {
			message = s
		}
	}
	return value.Value{}, nerrors.New(store, nerrors.Assertion, "assertion-failed", message)
}
