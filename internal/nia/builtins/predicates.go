package builtins

import "github.com/nialang/nia/internal/nia/value"

// registerPredicates wires the type-testing and equality predicates
// every builtin list/object helper and user script relies on.
func registerPredicates(store *value.Store) {
	define(store, "nil?", kindPredicate(func(v value.Value, s *value.Store) bool { return !s.Truthy(v) }))
	define(store, "symbol?", kindPredicateKind(value.KindSymbol))
	define(store, "keyword?", kindPredicateKind(value.KindKeyword))
	define(store, "string?", kindPredicateKind(value.KindString))
	define(store, "integer?", kindPredicateKind(value.KindInteger))
	define(store, "float?", kindPredicateKind(value.KindFloat))
	define(store, "boolean?", kindPredicateKind(value.KindBoolean))
	define(store, "cons?", kindPredicateKind(value.KindCons))
	define(store, "object?", kindPredicateKind(value.KindObject))
	define(store, "function?", kindPredicateKind(value.KindFunction))
	define(store, "list?", isProperList)
	define(store, "eq?", func(m value.Machine, env value.EnvironmentID, args []value.Value) (value.Value, error) {
		store := m.Store()
		if err := exactArity(store, "eq?", args, 2); err != nil {
			return value.Value{}, err
		}
		return value.Boolean(value.Equal(args[0], args[1])), nil
	})
	define(store, "equal?", func(m value.Machine, env value.EnvironmentID, args []value.Value) (value.Value, error) {
		store := m.Store()
		if err := exactArity(store, "equal?", args, 2); err != nil {
			return value.Value{}, err
		}
		return value.Boolean(store.DeepEqual(args[0], args[1])), nil
	})
	define(store, "not", func(m value.Machine, env value.EnvironmentID, args []value.Value) (value.Value, error) {
		store := m.Store()
		if err := exactArity(store, "not", args, 1); err != nil {
			return value.Value{}, err
		}
		return value.Boolean(!store.Truthy(args[0])), nil
	})
}

func kindPredicate(pred func(value.Value, *value.Store) bool) value.NativeFn {
	return func(m value.Machine, env value.EnvironmentID, args []value.Value) (value.Value, error) {
		store := m.Store()
		if err := exactArity(store, "nil?", args, 1); err != nil {
			return value.Value{}, err
		}
		return value.Boolean(pred(args[0], store)), nil
	}
}

func kindPredicateKind(k value.Kind) value.NativeFn {
	return func(m value.Machine, env value.EnvironmentID, args []value.Value) (value.Value, error) {
		store := m.Store()
		if err := exactArity(store, k.String()+"?", args, 1); err != nil {
			return value.Value{}, err
		}
		return value.Boolean(args[0].Kind() == k), nil
	}
}

func isProperList(m value.Machine, env value.EnvironmentID, args []value.Value) (value.Value, error) {
	store := m.Store()
	if err := exactArity(store, "list?", args, 1); err != nil {
		return value.Value{}, err
	}
	if sym, ok := args[0].AsSymbol(); ok && sym == store.NilSymbol {
		return value.Boolean(true), nil
	}
	_, tail, ok := store.ListToSlice(args[0])
	if !ok {
		return value.Boolean(false), nil
	}
	sym, isSym := tail.AsSymbol()
	return value.Boolean(isSym && sym == store.NilSymbol), nil
}
