package builtins

import (
	"fmt"

	"github.com/nialang/nia/internal/nia/value"
)

// registerIOOps wires print/println: print writes every argument's
// printed form with no separator and no trailing newline, println does
// the same followed by one.
func registerIOOps(store *value.Store) {
	define(store, "print", biPrint)
	define(store, "println", biPrintLn)
}

func biPrint(m value.Machine, env value.EnvironmentID, args []value.Value) (value.Value, error) {
	store := m.Store()
	for _, a := range args {
		fmt.Fprint(store.Output, renderArg(store, a))
	}
	return store.Nil(), nil
}

func biPrintLn(m value.Machine, env value.EnvironmentID, args []value.Value) (value.Value, error) {
	store := m.Store()
	for _, a := range args {
		fmt.Fprint(store.Output, renderArg(store, a))
	}
	fmt.Fprintln(store.Output)
	return store.Nil(), nil
}

// renderArg prints strings raw (no surrounding quotes) and everything
// else through the canonical printer, matching the distinction Lisp
// display/write conventions draw between user-facing output and
// read-back-able syntax.
func renderArg(store *value.Store, v value.Value) string {
	if sid, ok := v.AsString(); ok {
		s, _ := store.GetString(sid)
		return s
	}
	return store.Print(v)
}
