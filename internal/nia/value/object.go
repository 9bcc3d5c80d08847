package value

// Object is an ordered mapping from SymbolID to Value, plus an optional
// prototype. Property lookup consults the receiver then walks the
// prototype chain; property set is always local to the receiver (spec
// §3). Ordering is preserved via keys, a parallel slice to the value
// map, so iteration and printing are deterministic.
type Object struct {
	keys       []SymbolID
	values     map[SymbolID]Value
	Prototype  ObjectID
	HasPrototype bool
}

func newObject(prototype ObjectID, hasPrototype bool) Object {
	return Object{
		values:       make(map[SymbolID]Value),
		Prototype:    prototype,
		HasPrototype: hasPrototype,
	}
}

// Keys returns the property keys in insertion order.
func (o Object) Keys() []SymbolID { return o.keys }

func (o *Object) setLocal(sym SymbolID, v Value) {
	if _, exists := o.values[sym]; !exists {
		o.keys = append(o.keys, sym)
	}
	o.values[sym] = v
}

func (o Object) getLocal(sym SymbolID) (Value, bool) {
	v, ok := o.values[sym]
	return v, ok
}

// GetLocal returns sym's value on this object only, without consulting
// the prototype chain — used by callers (the evaluator re-running an
// object literal's stored property expressions) that already have the
// keys and need just the receiver's own slot.
func (o Object) GetLocal(sym SymbolID) (Value, bool) { return o.getLocal(sym) }

type objectArena struct {
	arena *arena[ObjectID, Object]
}

func newObjectArena() *objectArena {
	return &objectArena{arena: newArena[ObjectID, Object]()}
}

// Allocate creates a new object, optionally chained to a prototype.
func (a *objectArena) Allocate(prototype ObjectID, hasPrototype bool) ObjectID {
	return a.arena.allocate(newObject(prototype, hasPrototype))
}

func (a *objectArena) Get(id ObjectID) (Object, bool) { return a.arena.get(id) }

func (a *objectArena) free(id ObjectID) { a.arena.free(id) }

// SetProperty always writes to the receiver's own slot, never the
// prototype.
func (s *Store) SetProperty(id ObjectID, sym SymbolID, v Value) bool {
	obj, ok := s.objects.Get(id)
	if !ok {
		return false
	}
	obj.setLocal(sym, v)
	s.objects.arena.set(id, obj)
	return true
}

// GetProperty consults the receiver, then walks the prototype chain.
func (s *Store) GetProperty(id ObjectID, sym SymbolID) (Value, bool) {
	seen := make(map[ObjectID]bool)
	cur := id
	for {
		if seen[cur] {
			return Value{}, false
		}
		seen[cur] = true
		obj, ok := s.objects.Get(cur)
		if !ok {
			return Value{}, false
		}
		if v, found := obj.getLocal(sym); found {
			return v, true
		}
		if !obj.HasPrototype {
			return Value{}, false
		}
		cur = obj.Prototype
	}
}
