package value

// pairKey identifies a (ConsID, ConsID) or (ObjectID, ObjectID) pair
// already under comparison, so DeepEqual can detect cycles instead of
// recursing forever on a self-referential cons chain.
type pairKey struct {
	kind   Kind
	a, b   int64
}

// DeepEqual implements recursive structural equality: scalars and
// interned String/Symbol/Keyword compare by identifier (interning
// already gives them value semantics), Function compares by identifier
// only, and Cons/Object recurse — with cycle detection so a
// self-referential cons chain (`(set-cdr! c c)`) terminates instead of
// looping forever.
func (s *Store) DeepEqual(a, b Value) bool {
	return s.deepEqual(a, b, make(map[pairKey]bool))
}

func (s *Store) deepEqual(a, b Value, visited map[pairKey]bool) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindCons:
		aid, _ := a.AsCons()
		bid, _ := b.AsCons()
		if aid == bid {
			return true
		}
		key := pairKey{KindCons, int64(aid), int64(bid)}
		if visited[key] {
			return true
		}
		visited[key] = true
		ac, aok := s.GetCons(aid)
		bc, bok := s.GetCons(bid)
		if !aok || !bok {
			return aok == bok
		}
		return s.deepEqual(ac.Car, bc.Car, visited) && s.deepEqual(ac.Cdr, bc.Cdr, visited)
	case KindObject:
		aid, _ := a.AsObject()
		bid, _ := b.AsObject()
		if aid == bid {
			return true
		}
		key := pairKey{KindObject, int64(aid), int64(bid)}
		if visited[key] {
			return true
		}
		visited[key] = true
		ao, aok := s.GetObject(aid)
		bo, bok := s.GetObject(bid)
		if !aok || !bok {
			return aok == bok
		}
		if len(ao.Keys()) != len(bo.Keys()) {
			return false
		}
		for _, k := range ao.Keys() {
			av, _ := ao.getLocal(k)
			bv, found := bo.getLocal(k)
			if !found || !s.deepEqual(av, bv, visited) {
				return false
			}
		}
		return ao.HasPrototype == bo.HasPrototype &&
			(!ao.HasPrototype || ao.Prototype == bo.Prototype)
	default:
		return Equal(a, b)
	}
}
