package builtins

import "github.com/nialang/nia/internal/nia/value"

// registerObjectOps wires the prototype-object surface: construction
// (object:make takes alternating :keyword value pairs, the same shape
// the reader's object-pattern macro-expansion emits), property
// access/mutation, and prototype-chain queries.
func registerObjectOps(store *value.Store) {
	define(store, "object:make", biObjectMake)
	define(store, "object:get", biObjectGet)
	define(store, "object:set!", biObjectSet)
	define(store, "object:has?", biObjectHas)
	define(store, "object:keys", biObjectKeys)
	define(store, "object:new", biObjectNew)
	define(store, "object:prototype", biObjectPrototype)
}

func biObjectMake(m value.Machine, env value.EnvironmentID, args []value.Value) (value.Value, error) {
	store := m.Store()
	if len(args)%2 != 0 {
		return value.Value{}, arityErr(store, "object:make", "expects alternating :keyword value pairs")
	}
	id := store.AllocateObject(0, false)
	for i := 0; i < len(args); i += 2 {
		kwID, ok := args[i].AsKeyword()
		if !ok {
			return value.Value{}, typeErr(store, "object:make", "expects a keyword in key position")
		}
		name, _ := store.GetKeyword(kwID)
		store.SetProperty(id, store.InternSymbol(name), args[i+1])
	}
	return value.Object(id), nil
}

func biObjectGet(m value.Machine, env value.EnvironmentID, args []value.Value) (value.Value, error) {
	store := m.Store()
	if err := exactArity(store, "object:get", args, 2); err != nil {
		return value.Value{}, err
	}
	objID, ok := args[0].AsObject()
	if !ok {
		return value.Value{}, typeErr(store, "object:get", "expects an object")
	}
	sym, err := propertySymbol(store, "object:get", args[1])
	if err != nil {
		return value.Value{}, err
	}
	v, found := store.GetProperty(objID, sym)
	if !found {
		return store.Nil(), nil
	}
	return v, nil
}

func biObjectSet(m value.Machine, env value.EnvironmentID, args []value.Value) (value.Value, error) {
	store := m.Store()
	if err := exactArity(store, "object:set!", args, 3); err != nil {
		return value.Value{}, err
	}
	objID, ok := args[0].AsObject()
	if !ok {
		return value.Value{}, typeErr(store, "object:set!", "expects an object")
	}
	sym, err := propertySymbol(store, "object:set!", args[1])
	if err != nil {
		return value.Value{}, err
	}
	store.SetProperty(objID, sym, args[2])
	return args[2], nil
}

func biObjectHas(m value.Machine, env value.EnvironmentID, args []value.Value) (value.Value, error) {
	store := m.Store()
	if err := exactArity(store, "object:has?", args, 2); err != nil {
		return value.Value{}, err
	}
	objID, ok := args[0].AsObject()
	if !ok {
		return value.Value{}, typeErr(store, "object:has?", "expects an object")
	}
	sym, err := propertySymbol(store, "object:has?", args[1])
	if err != nil {
		return value.Value{}, err
	}
	_, found := store.GetProperty(objID, sym)
	return value.Boolean(found), nil
}

func biObjectKeys(m value.Machine, env value.EnvironmentID, args []value.Value) (value.Value, error) {
	store := m.Store()
	if err := exactArity(store, "object:keys", args, 1); err != nil {
		return value.Value{}, err
	}
	objID, ok := args[0].AsObject()
	if !ok {
		return value.Value{}, typeErr(store, "object:keys", "expects an object")
	}
	obj, _ := store.GetObject(objID)
	keys := make([]value.Value, 0, len(obj.Keys()))
	for _, k := range obj.Keys() {
		keys = append(keys, value.Symbol(k))
	}
	return store.List(store.Nil(), keys...), nil
}

// biObjectNew allocates a fresh object whose prototype is its single
// argument — the prototype-chain construction primitive.
func biObjectNew(m value.Machine, env value.EnvironmentID, args []value.Value) (value.Value, error) {
	store := m.Store()
	if err := exactArity(store, "object:new", args, 1); err != nil {
		return value.Value{}, err
	}
	protoID, ok := args[0].AsObject()
	if !ok {
		return value.Value{}, typeErr(store, "object:new", "expects an object prototype")
	}
	return value.Object(store.AllocateObject(protoID, true)), nil
}

func biObjectPrototype(m value.Machine, env value.EnvironmentID, args []value.Value) (value.Value, error) {
	store := m.Store()
	if err := exactArity(store, "object:prototype", args, 1); err != nil {
		return value.Value{}, err
	}
	objID, ok := args[0].AsObject()
	if !ok {
		return value.Value{}, typeErr(store, "object:prototype", "expects an object")
	}
	obj, _ := store.GetObject(objID)
	if !obj.HasPrototype {
		return store.Nil(), nil
	}
	return value.Object(obj.Prototype), nil
}

// propertySymbol accepts either a Keyword or a Symbol as the property
// name position, matching the way both the reader's keyword-accessor
// form and plain symbol-named properties appear in scripts.
func propertySymbol(store *value.Store, name string, v value.Value) (value.SymbolID, error) {
	if kwID, ok := v.AsKeyword(); ok {
		kwName, _ := store.GetKeyword(kwID)
		return store.InternSymbol(kwName), nil
	}
	if sym, ok := v.AsSymbol(); ok {
		return sym, nil
	}
	return 0, typeErr(store, name, "expects a keyword or symbol property name")
}
