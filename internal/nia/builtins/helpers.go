// Package builtins implements the initial bindings populated into the
// root environment at interpreter construction. Each registration
// interns a symbol and defines a native value.FunctionBuiltin under a
// namespaced key ("list:join", "string:lower", "object:get", ...) —
// the naming convention is enforced by the registration keys
// themselves, not by any language feature.
//
// Every function here receives already-evaluated arguments (the
// Builtin flavor); arity and type mismatches are reported as
// InvalidArgument/InvalidArgumentCount errors.
package builtins

import (
	"strconv"

	nerrors "github.com/nialang/nia/internal/nia/errors"
	"github.com/nialang/nia/internal/nia/value"
)

// Register populates store's root environment with every builtin this
// package provides. Interpreter construction calls this once, after
// eval.RegisterSpecialForms.
func Register(store *value.Store) {
	registerArithmetic(store)
	registerPredicates(store)
	registerListOps(store)
	registerObjectOps(store)
	registerStringOps(store)
	registerControlOps(store)
	registerIOOps(store)
}

func define(store *value.Store, name string, fn value.NativeFn) {
	fid := store.AllocateFunction(value.Function{Kind: value.FunctionBuiltin, Native: fn, Name: name})
	store.DefineFunction(store.RootEnv, store.InternSymbol(name), value.Function(fid))
}

func arityErr(store *value.Store, name, detail string) error {
	return nerrors.New(store, nerrors.InvalidArgumentCount, "invalid-argument-count", name+": "+detail)
}

func typeErr(store *value.Store, name, detail string) error {
	return nerrors.New(store, nerrors.InvalidArgument, "invalid-argument", name+": "+detail)
}

func exactArity(store *value.Store, name string, args []value.Value, n int) error {
	if len(args) != n {
		return arityErr(store, name, "expects exactly "+strconv.Itoa(n)+" argument(s), got "+strconv.Itoa(len(args)))
	}
	return nil
}

func minArity(store *value.Store, name string, args []value.Value, n int) error {
	if len(args) < n {
		return arityErr(store, name, "expects at least "+strconv.Itoa(n)+" argument(s), got "+strconv.Itoa(len(args)))
	}
	return nil
}

// asNumber widens an Integer or Float Value to a float64, reporting
// which it originally was so callers that must preserve integer-ness
// (e.g. +) can do so.
func asNumber(v value.Value) (f float64, isInt bool, isNum bool) {
	if i, ok := v.AsInteger(); ok {
		return float64(i), true, true
	}
	if fv, ok := v.AsFloat(); ok {
		return fv, false, true
	}
	return 0, false, false
}

func asString(store *value.Store, name string, v value.Value) (string, error) {
	id, ok := v.AsString()
	if !ok {
		return "", typeErr(store, name, "expects a string argument")
	}
	s, ok := store.GetString(id)
	if !ok {
		return "", nerrors.New(store, nerrors.Failure, "failure", name+": dangling string identifier")
	}
	return s, nil
}

func asSymbol(store *value.Store, name string, v value.Value) (value.SymbolID, error) {
	id, ok := v.AsSymbol()
	if !ok {
		return 0, typeErr(store, name, "expects a symbol argument")
	}
	return id, nil
}

func asInt(store *value.Store, name string, v value.Value) (int64, error) {
	n, ok := v.AsInteger()
	if !ok {
		return 0, typeErr(store, name, "expects an integer argument")
	}
	return n, nil
}
