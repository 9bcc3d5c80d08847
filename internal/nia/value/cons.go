package value

// Cons is the pair cell lists are built from; a list is a chain of Cons
// cells terminated by the nil symbol. Cycles are representable — code
// that walks a Cons chain without an a-priori length bound (printing,
// deep equality, the garbage collector) must track visited cells.
type Cons struct {
	Car Value
	Cdr Value
}

type consArena struct {
	arena *arena[ConsID, Cons]
}

func newConsArena() *consArena {
	return &consArena{arena: newArena[ConsID, Cons]()}
}

func (a *consArena) Allocate(car, cdr Value) ConsID {
	return a.arena.allocate(Cons{Car: car, Cdr: cdr})
}

func (a *consArena) Get(id ConsID) (Cons, bool) { return a.arena.get(id) }

func (a *consArena) SetCar(id ConsID, v Value) bool {
	c, ok := a.arena.get(id)
	if !ok {
		return false
	}
	c.Car = v
	a.arena.set(id, c)
	return true
}

func (a *consArena) SetCdr(id ConsID, v Value) bool {
	c, ok := a.arena.get(id)
	if !ok {
		return false
	}
	c.Cdr = v
	a.arena.set(id, c)
	return true
}

func (a *consArena) free(id ConsID) { a.arena.free(id) }

// List allocates a proper list from elements, terminated by nilSym.
func (s *Store) List(nilSym Value, elements ...Value) Value {
	result := nilSym
	for i := len(elements) - 1; i >= 0; i-- {
		result = Cons(s.cons.Allocate(elements[i], result))
	}
	return result
}

// ListToSlice walks a proper or improper list into a slice of elements
// plus the final tail (the nil symbol for a proper list). It stops and
// returns false for tail-termination detection if the chain cycles.
func (s *Store) ListToSlice(v Value) (elements []Value, tail Value, ok bool) {
	seen := make(map[ConsID]bool)
	cur := v
	for {
		id, isCons := cur.AsCons()
		if !isCons {
			return elements, cur, true
		}
		if seen[id] {
			return elements, cur, false
		}
		seen[id] = true
		cell, found := s.cons.Get(id)
		if !found {
			return elements, cur, false
		}
		elements = append(elements, cell.Car)
		cur = cell.Cdr
	}
}
