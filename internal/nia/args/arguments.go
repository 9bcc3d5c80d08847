// Package args implements the argument model: parsing (structurally,
// via value.Arguments) and binding ordinary, optional, rest, and key
// parameters at call time.
package args

import (
	"strconv"

	nerrors "github.com/nialang/nia/internal/nia/errors"
	"github.com/nialang/nia/internal/nia/value"
)

// Bind binds values against params into an already-allocated callee
// environment. When forFunctions is true (macro parameters), every
// binding is written into both the variable and function namespaces,
// so a macro body can call a parameter named x as (x ...).
func Bind(m value.Machine, calleeEnv value.EnvironmentID, params value.Arguments, values []value.Value, forFunctions bool) error {
	store := m.Store()
	required := params.RequiredLen()
	total := len(values)

	if total < required {
		return nerrors.New(store, nerrors.InvalidArgumentCount, "invalid-argument-count",
			"too few arguments: expected at least "+strconv.Itoa(required)+", got "+strconv.Itoa(total))
	}

	bind := func(sym value.SymbolID, v value.Value) {
		store.DefineVariableForce(calleeEnv, sym, v)
		if forFunctions {
			store.DefineFunctionForce(calleeEnv, sym, v)
		}
	}

	idx := 0
	for _, ord := range params.Ordinary {
		bind(ord, values[idx])
		idx++
	}

	for _, opt := range params.Optional {
		var v value.Value
		provided := idx < total
		if provided {
			v = values[idx]
			idx++
		} else if opt.HasDefault {
			result, err := m.Evaluate(calleeEnv, opt.Default)
			if err != nil {
				return err
			}
			v = result
		} else {
			v = store.Nil()
		}
		bind(opt.Name, v)
		if opt.HasProvidedFlag {
			bind(opt.ProvidedFlag, value.Boolean(provided))
		}
	}

	if params.HasRest {
		var rest []value.Value
		for idx < total {
			if len(params.Key) > 0 {
				if _, isKeyword := values[idx].AsKeyword(); isKeyword {
					break
				}
			}
			rest = append(rest, values[idx])
			idx++
		}
		bind(params.Rest, store.List(store.Nil(), rest...))
	}

	if len(params.Key) > 0 {
		provided := make(map[value.SymbolID]bool, len(params.Key))
		byName := make(map[string]value.Param, len(params.Key))
		for _, kp := range params.Key {
			bind(kp.Name, store.KeyExclusive)
			if sym, ok := store.GetSymbol(kp.Name); ok {
				byName[sym.Name] = kp
			}
		}

		for idx < total {
			kwID, isKeyword := values[idx].AsKeyword()
			if !isKeyword {
				return nerrors.New(store, nerrors.InvalidArgument, "invalid-argument",
					"expected a keyword in key-argument position")
			}
			kwName, _ := store.GetKeyword(kwID)
			kp, ok := byName[kwName]
			if !ok {
				return nerrors.New(store, nerrors.InvalidArgument, "invalid-argument",
					"unknown key argument :"+kwName)
			}
			idx++
			if idx >= total {
				return nerrors.New(store, nerrors.InvalidArgumentCount, "invalid-argument-count",
					"missing value for key argument :"+kwName)
			}
			bind(kp.Name, values[idx])
			idx++
			provided[kp.Name] = true
			if kp.HasProvidedFlag {
				bind(kp.ProvidedFlag, value.Boolean(true))
			}
		}

		for _, kp := range params.Key {
			if provided[kp.Name] {
				continue
			}
			var v value.Value
			if kp.HasDefault {
				result, err := m.Evaluate(calleeEnv, kp.Default)
				if err != nil {
					return err
				}
				v = result
			} else {
				v = store.Nil()
			}
			bind(kp.Name, v)
			if kp.HasProvidedFlag {
				bind(kp.ProvidedFlag, value.Boolean(false))
			}
		}
	}

	if idx != total {
		return nerrors.New(store, nerrors.InvalidArgumentCount, "invalid-argument-count",
			"too many arguments: expected "+strconv.Itoa(idx)+", got "+strconv.Itoa(total))
	}

	return nil
}
