package value

import "testing"

func TestGCFreesUnreachableCons(t *testing.T) {
	s := NewStore()
	garbage := s.AllocateCons(Integer(1), s.Nil())

	stats := s.CollectGarbage(nil, nil)
	if stats.FreedCons != 1 {
		t.Fatalf("expected the unreachable cons to be freed, got stats %+v", stats)
	}
	if _, ok := s.GetCons(garbage); ok {
		t.Fatalf("freed cons identifier still resolves")
	}
}

func TestGCPreservesRootEnvironmentBindings(t *testing.T) {
	s := NewStore()
	x := s.InternSymbol("x")
	list := s.List(s.Nil(), Integer(1), Integer(2), Integer(3))
	s.DefineVariable(s.RootEnv, x, list)

	s.CollectGarbage(nil, nil)

	v, ok := s.LookupVariable(s.RootEnv, x)
	if !ok {
		t.Fatalf("root binding lost across GC")
	}
	if !s.DeepEqual(v, list) {
		t.Fatalf("root binding value changed across GC: %v", s.Print(v))
	}
}

func TestGCPreservesExtraRootEnvironments(t *testing.T) {
	s := NewStore()
	child := s.NewChildEnvironment(s.RootEnv)
	y := s.InternSymbol("y")
	s.DefineVariable(child, y, Integer(7))

	// Without passing child as an extra root, it is only reachable
	// through the (still-live) root's children bookkeeping, which the
	// collector does not treat as a marking edge — a closure's captured
	// environment must be kept alive by the function that references it,
	// not by environment parentage alone.
	s.CollectGarbage([]Value{}, []EnvironmentID{child})

	if _, ok := s.GetEnvironment(child); !ok {
		t.Fatalf("explicitly rooted environment was swept")
	}
	v, ok := s.LookupVariable(child, y)
	if !ok || mustInt(v) != 7 {
		t.Fatalf("child environment binding lost across GC")
	}
}

func TestGCSweepsEnvironmentNotPassedAsRoot(t *testing.T) {
	s := NewStore()
	orphan := s.NewChildEnvironment(s.RootEnv)

	s.CollectGarbage(nil, nil)

	if _, ok := s.GetEnvironment(orphan); ok {
		t.Fatalf("orphaned child environment should have been swept")
	}
}

func TestGCMarksThroughClosure(t *testing.T) {
	s := NewStore()
	captured := s.NewChildEnvironment(s.RootEnv)
	sym := s.InternSymbol("captured-var")
	s.DefineVariable(captured, sym, Integer(123))

	fnID := s.AllocateFunction(Function{
		Kind:        FunctionInterpreted,
		CapturedEnv: captured,
		Params:      Arguments{},
		Body:        []Value{Integer(0)},
	})

	s.CollectGarbage([]Value{Function(fnID)}, nil)

	if _, ok := s.GetEnvironment(captured); !ok {
		t.Fatalf("closure's captured environment was swept")
	}
	v, ok := s.LookupVariable(captured, sym)
	if !ok || mustInt(v) != 123 {
		t.Fatalf("captured binding lost across GC")
	}
}
