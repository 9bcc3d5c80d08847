package value

import "testing"

func TestInternIdempotent(t *testing.T) {
	s := NewStore()
	a := s.InternSymbol("foo")
	b := s.InternSymbol("foo")
	if a != b {
		t.Fatalf("intern(foo) = %v, intern(foo) = %v, want equal", a, b)
	}

	sa := s.InternString("bar")
	sb := s.InternString("bar")
	if sa != sb {
		t.Fatalf("string intern not idempotent")
	}
}

func TestGensymNeverEqualsIntern(t *testing.T) {
	s := NewStore()
	interned := s.InternSymbol("x")
	g1 := s.Gensym("x")
	g2 := s.Gensym("x")
	if g1 == interned || g2 == interned {
		t.Fatalf("gensym collided with interned symbol")
	}
	if g1 == g2 {
		t.Fatalf("two gensyms with the same base name compared equal")
	}
}

func TestDeepEqualReflexiveAndSymmetric(t *testing.T) {
	s := NewStore()
	nested := s.List(s.Nil(), Integer(1), Integer(2))
	v := s.List(s.Nil(), Integer(1), nested, Boolean(true))

	if !s.DeepEqual(v, v) {
		t.Fatalf("deep_equal not reflexive")
	}

	other := s.List(s.Nil(), Integer(1), s.List(s.Nil(), Integer(1), Integer(2)), Boolean(true))
	if !s.DeepEqual(v, other) {
		t.Fatalf("structurally equal lists compared unequal")
	}
	if !s.DeepEqual(other, v) {
		t.Fatalf("deep_equal not symmetric")
	}
}

func TestDeepEqualToleratesCycles(t *testing.T) {
	s := NewStore()
	id := s.AllocateCons(Integer(1), s.Nil())
	s.SetCdr(id, Cons(id))

	idB := s.AllocateCons(Integer(1), s.Nil())
	s.SetCdr(idB, Cons(idB))

	// Must terminate (the whole point of the visited-pair tracking) and
	// report the two self-referential cells as structurally equal.
	if !s.DeepEqual(Cons(id), Cons(idB)) {
		t.Fatalf("structurally identical cycles compared unequal")
	}
}

func TestTruthiness(t *testing.T) {
	s := NewStore()
	if s.Truthy(Boolean(false)) {
		t.Fatalf("#f must be falsy")
	}
	if s.Truthy(s.Nil()) {
		t.Fatalf("nil symbol must be falsy")
	}
	truthyValues := []Value{
		Integer(0), Float(0.0), Boolean(true),
		String(s.InternString("")),
	}
	for _, v := range truthyValues {
		if !s.Truthy(v) {
			t.Fatalf("%v should be truthy", v)
		}
	}
}

func TestEnvironmentDefineLookupSet(t *testing.T) {
	s := NewStore()
	root := s.RootEnv
	x := s.InternSymbol("x")

	if !s.DefineVariable(root, x, Integer(1)) {
		t.Fatalf("first define should succeed")
	}
	if s.DefineVariable(root, x, Integer(2)) {
		t.Fatalf("redefining in the same frame should fail")
	}

	v, ok := s.LookupVariable(root, x)
	if !ok || mustInt(v) != 1 {
		t.Fatalf("lookup after define: got %v, %v", v, ok)
	}

	child := s.NewChildEnvironment(root)
	if !s.SetVariable(child, x, Integer(42)) {
		t.Fatalf("set! from child should find ancestor binding")
	}
	v, _ = s.LookupVariable(root, x)
	if mustInt(v) != 42 {
		t.Fatalf("set! did not update ancestor frame, got %v", v)
	}

	y := s.InternSymbol("y")
	if s.SetVariable(root, y, Integer(1)) {
		t.Fatalf("set! on unbound variable must fail")
	}
}

func TestLisp2NamespacesDoNotCollide(t *testing.T) {
	s := NewStore()
	root := s.RootEnv
	list := s.InternSymbol("list")

	s.DefineVariable(root, list, Integer(99))
	s.DefineFunction(root, list, Function(0))

	v, _ := s.LookupVariable(root, list)
	if mustInt(v) != 99 {
		t.Fatalf("variable namespace clobbered by function definition")
	}
	fv, ok := s.LookupFunction(root, list)
	if !ok || fv.Kind() != KindFunction {
		t.Fatalf("function namespace lookup failed")
	}
}

func mustInt(v Value) int64 {
	n, _ := v.AsInteger()
	return n
}
