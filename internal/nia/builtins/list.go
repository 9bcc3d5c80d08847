package builtins

import "github.com/nialang/nia/internal/nia/value"

// registerListOps wires the cons-chain surface: construction,
// accessors, and the handful of higher-order helpers (list:map,
// list:filter) user scripts need to pass functions back into the
// evaluator via Machine.Apply.
func registerListOps(store *value.Store) {
	define(store, "cons", biCons)
	define(store, "car", biCar)
	define(store, "cdr", biCdr)
	define(store, "set-car!", biSetCar)
	define(store, "set-cdr!", biSetCdr)
	define(store, "list", biList)
	define(store, "length", biLength)
	define(store, "list:join", biListJoin)
	define(store, "list:reverse", biListReverse)
	define(store, "list:append", biListAppend)
	define(store, "list:nth", biListNth)
	define(store, "list:map", biListMap)
	define(store, "list:filter", biListFilter)
	define(store, "list:reduce", biListReduce)
	define(store, "gensym", biGensym)
}

func biCons(m value.Machine, env value.EnvironmentID, args []value.Value) (value.Value, error) {
	store := m.Store()
	if err := exactArity(store, "cons", args, 2); err != nil {
		return value.Value{}, err
	}
	return value.Cons(store.AllocateCons(args[0], args[1])), nil
}

func biCar(m value.Machine, env value.EnvironmentID, args []value.Value) (value.Value, error) {
	store := m.Store()
	if err := exactArity(store, "car", args, 1); err != nil {
		return value.Value{}, err
	}
	id, ok := args[0].AsCons()
	if !ok {
		return value.Value{}, typeErr(store, "car", "expects a cons")
	}
	cell, _ := store.GetCons(id)
	return cell.Car, nil
}

func biCdr(m value.Machine, env value.EnvironmentID, args []value.Value) (value.Value, error) {
	store := m.Store()
	if err := exactArity(store, "cdr", args, 1); err != nil {
		return value.Value{}, err
	}
	id, ok := args[0].AsCons()
	if !ok {
		return value.Value{}, typeErr(store, "cdr", "expects a cons")
	}
	cell, _ := store.GetCons(id)
	return cell.Cdr, nil
}

func biSetCar(m value.Machine, env value.EnvironmentID, args []value.Value) (value.Value, error) {
	store := m.Store()
	if err := exactArity(store, "set-car!", args, 2); err != nil {
		return value.Value{}, err
	}
	id, ok := args[0].AsCons()
	if !ok {
		return value.Value{}, typeErr(store, "set-car!", "expects a cons")
	}
	store.SetCar(id, args[1])
	return args[1], nil
}

func biSetCdr(m value.Machine, env value.EnvironmentID, args []value.Value) (value.Value, error) {
	store := m.Store()
	if err := exactArity(store, "set-cdr!", args, 2); err != nil {
		return value.Value{}, err
	}
	id, ok := args[0].AsCons()
	if !ok {
		return value.Value{}, typeErr(store, "set-cdr!", "expects a cons")
	}
	store.SetCdr(id, args[1])
	return args[1], nil
}

func biList(m value.Machine, env value.EnvironmentID, args []value.Value) (value.Value, error) {
	store := m.Store()
	return store.List(store.Nil(), args...), nil
}

func biLength(m value.Machine, env value.EnvironmentID, args []value.Value) (value.Value, error) {
	store := m.Store()
	if err := exactArity(store, "length", args, 1); err != nil {
		return value.Value{}, err
	}
	if sid, ok := args[0].AsString(); ok {
		s, _ := store.GetString(sid)
		return value.Integer(int64(len([]rune(s)))), nil
	}
	elements, tail, ok := store.ListToSlice(args[0])
	if !ok || !isNilTailV(store, tail) {
		return value.Value{}, typeErr(store, "length", "expects a proper list or string")
	}
	return value.Integer(int64(len(elements))), nil
}

func isNilTailV(store *value.Store, tail value.Value) bool {
	sym, ok := tail.AsSymbol()
	return ok && sym == store.NilSymbol
}

// biListJoin implements `list:join sep list-of-strings`, concatenating
// each element's printed form (or raw contents for strings) with sep
// between entries.
func biListJoin(m value.Machine, env value.EnvironmentID, args []value.Value) (value.Value, error) {
	store := m.Store()
	if err := exactArity(store, "list:join", args, 2); err != nil {
		return value.Value{}, err
	}
	sep, err := asString(store, "list:join", args[0])
	if err != nil {
		return value.Value{}, err
	}
	elements, tail, ok := store.ListToSlice(args[1])
	if !ok || !isNilTailV(store, tail) {
		return value.Value{}, typeErr(store, "list:join", "second argument must be a proper list")
	}
	out := ""
	for i, el := range elements {
		if i > 0 {
			out += sep
		}
		if sid, ok := el.AsString(); ok {
			s, _ := store.GetString(sid)
			out += s
		} else {
			out += store.Print(el)
		}
	}
	return value.String(store.InternString(out)), nil
}

func biListReverse(m value.Machine, env value.EnvironmentID, args []value.Value) (value.Value, error) {
	store := m.Store()
	if err := exactArity(store, "list:reverse", args, 1); err != nil {
		return value.Value{}, err
	}
	elements, tail, ok := store.ListToSlice(args[0])
	if !ok || !isNilTailV(store, tail) {
		return value.Value{}, typeErr(store, "list:reverse", "expects a proper list")
	}
	reversed := make([]value.Value, len(elements))
	for i, el := range elements {
		reversed[len(elements)-1-i] = el
	}
	return store.List(store.Nil(), reversed...), nil
}

func biListAppend(m value.Machine, env value.EnvironmentID, args []value.Value) (value.Value, error) {
	store := m.Store()
	var all []value.Value
	for _, arg := range args {
		elements, tail, ok := store.ListToSlice(arg)
		if !ok || !isNilTailV(store, tail) {
			return value.Value{}, typeErr(store, "list:append", "every argument must be a proper list")
		}
		all = append(all, elements...)
	}
	return store.List(store.Nil(), all...), nil
}

func biListNth(m value.Machine, env value.EnvironmentID, args []value.Value) (value.Value, error) {
	store := m.Store()
	if err := exactArity(store, "list:nth", args, 2); err != nil {
		return value.Value{}, err
	}
	n, err := asInt(store, "list:nth", args[0])
	if err != nil {
		return value.Value{}, err
	}
	elements, tail, ok := store.ListToSlice(args[1])
	if !ok || !isNilTailV(store, tail) {
		return value.Value{}, typeErr(store, "list:nth", "second argument must be a proper list")
	}
	if n < 0 || int(n) >= len(elements) {
		return value.Value{}, typeErr(store, "list:nth", "index out of range")
	}
	return elements[n], nil
}

func biListMap(m value.Machine, env value.EnvironmentID, args []value.Value) (value.Value, error) {
	store := m.Store()
	if err := exactArity(store, "list:map", args, 2); err != nil {
		return value.Value{}, err
	}
	elements, tail, ok := store.ListToSlice(args[1])
	if !ok || !isNilTailV(store, tail) {
		return value.Value{}, typeErr(store, "list:map", "second argument must be a proper list")
	}
	out := make([]value.Value, len(elements))
	for i, el := range elements {
		v, err := m.Apply(args[0], nil, []value.Value{el})
		if err != nil {
			return value.Value{}, err
		}
		out[i] = v
	}
	return store.List(store.Nil(), out...), nil
}

func biListFilter(m value.Machine, env value.EnvironmentID, args []value.Value) (value.Value, error) {
	store := m.Store()
	if err := exactArity(store, "list:filter", args, 2); err != nil {
		return value.Value{}, err
	}
	elements, tail, ok := store.ListToSlice(args[1])
	if !ok || !isNilTailV(store, tail) {
		return value.Value{}, typeErr(store, "list:filter", "second argument must be a proper list")
	}
	var out []value.Value
	for _, el := range elements {
		v, err := m.Apply(args[0], nil, []value.Value{el})
		if err != nil {
			return value.Value{}, err
		}
		if store.Truthy(v) {
			out = append(out, el)
		}
	}
	return store.List(store.Nil(), out...), nil
}

func biListReduce(m value.Machine, env value.EnvironmentID, args []value.Value) (value.Value, error) {
	store := m.Store()
	if err := exactArity(store, "list:reduce", args, 3); err != nil {
		return value.Value{}, err
	}
	elements, tail, ok := store.ListToSlice(args[2])
	if !ok || !isNilTailV(store, tail) {
		return value.Value{}, typeErr(store, "list:reduce", "third argument must be a proper list")
	}
	acc := args[1]
	for _, el := range elements {
		v, err := m.Apply(args[0], nil, []value.Value{acc, el})
		if err != nil {
			return value.Value{}, err
		}
		acc = v
	}
	return acc, nil
}

func biGensym(m value.Machine, env value.EnvironmentID, args []value.Value) (value.Value, error) {
	store := m.Store()
	if len(args) > 1 {
		return value.Value{}, arityErr(store, "gensym", "expects at most one base-name argument")
	}
	base := "g"
	if len(args) == 1 {
		s, err := asString(store, "gensym", args[0])
		if err != nil {
			return value.Value{}, err
		}
		base = s
	}
	return value.Symbol(store.Gensym(base)), nil
}
