package args

import (
	"testing"

	"github.com/nialang/nia/internal/nia/value"
)

// fakeMachine evaluates a Value by returning it as-is, which is enough
// to exercise default-expression evaluation for literal defaults.
type fakeMachine struct {
	store *value.Store
}

func (f *fakeMachine) Store() *value.Store { return f.store }

func (f *fakeMachine) Evaluate(env value.EnvironmentID, v value.Value) (value.Value, error) {
	return v, nil
}

func (f *fakeMachine) Apply(fn value.Value, callingSymbol *value.SymbolID, args []value.Value) (value.Value, error) {
	return f.store.Nil(), nil
}

func newMachine() (*fakeMachine, value.EnvironmentID) {
	s := value.NewStore()
	return &fakeMachine{store: s}, s.NewChildEnvironment(s.RootEnv)
}

func TestBindOrdinaryOnly(t *testing.T) {
	m, env := newMachine()
	a := m.store.InternSymbol("a")
	b := m.store.InternSymbol("b")
	params := value.Arguments{Ordinary: []value.SymbolID{a, b}}

	if err := Bind(m, env, params, []value.Value{value.Integer(1), value.Integer(2)}, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	va, _ := m.store.LookupVariable(env, a)
	vb, _ := m.store.LookupVariable(env, b)
	if n, _ := va.AsInteger(); n != 1 {
		t.Fatalf("a = %v, want 1", va)
	}
	if n, _ := vb.AsInteger(); n != 2 {
		t.Fatalf("b = %v, want 2", vb)
	}
}

func TestBindTooFewArgumentsIsArityError(t *testing.T) {
	m, env := newMachine()
	a := m.store.InternSymbol("a")
	params := value.Arguments{Ordinary: []value.SymbolID{a}}
	if err := Bind(m, env, params, nil, false); err == nil {
		t.Fatalf("expected arity error")
	}
}

func TestBindOptionalDefaultsAndRestWhenOmitted(t *testing.T) {
	m, env := newMachine()
	a := m.store.InternSymbol("a")
	bName := m.store.InternSymbol("b")
	restName := m.store.InternSymbol("rest")
	params := value.Arguments{
		Ordinary: []value.SymbolID{a},
		Optional: []value.Param{{Name: bName, HasDefault: true, Default: value.Integer(10)}},
		HasRest:  true,
		Rest:     restName,
	}

	if err := Bind(m, env, params, []value.Value{value.Integer(1)}, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	vb, _ := m.store.LookupVariable(env, bName)
	if n, _ := vb.AsInteger(); n != 10 {
		t.Fatalf("optional default not applied: %v", vb)
	}
	rest, _ := m.store.LookupVariable(env, restName)
	if sym, ok := rest.AsSymbol(); !ok || sym != m.store.NilSymbol {
		t.Fatalf("rest should default to nil when nothing remains")
	}
}

func TestBindKeyArguments(t *testing.T) {
	m, env := newMachine()
	aName := m.store.InternSymbol("a")
	bName := m.store.InternSymbol("b")
	kwA := m.store.InternKeyword("a")
	kwB := m.store.InternKeyword("b")
	params := value.Arguments{
		Key: []value.Param{
			{Name: aName, HasDefault: true, Default: value.Integer(1)},
			{Name: bName, HasDefault: true, Default: value.Integer(2)},
		},
	}

	// (f) -> a=1 b=2
	if err := Bind(m, env, params, nil, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	va, _ := m.store.LookupVariable(env, aName)
	vb, _ := m.store.LookupVariable(env, bName)
	if n, _ := va.AsInteger(); n != 1 {
		t.Fatalf("a = %v, want default 1", va)
	}
	if n, _ := vb.AsInteger(); n != 2 {
		t.Fatalf("b = %v, want default 2", vb)
	}

	// (f :b 9) -> a=1 b=9
	env2 := m.store.NewChildEnvironment(m.store.RootEnv)
	if err := Bind(m, env2, params, []value.Value{value.Keyword(kwB), value.Integer(9)}, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	vb2, _ := m.store.LookupVariable(env2, bName)
	if n, _ := vb2.AsInteger(); n != 9 {
		t.Fatalf("b = %v, want 9", vb2)
	}

	// (f :a 7 :b 8)
	env3 := m.store.NewChildEnvironment(m.store.RootEnv)
	err := Bind(m, env3, params, []value.Value{
		value.Keyword(kwA), value.Integer(7),
		value.Keyword(kwB), value.Integer(8),
	}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	va3, _ := m.store.LookupVariable(env3, aName)
	vb3, _ := m.store.LookupVariable(env3, bName)
	if n, _ := va3.AsInteger(); n != 7 {
		t.Fatalf("a = %v, want 7", va3)
	}
	if n, _ := vb3.AsInteger(); n != 8 {
		t.Fatalf("b = %v, want 8", vb3)
	}
}

func TestBindUnknownKeyArgumentErrors(t *testing.T) {
	m, env := newMachine()
	aName := m.store.InternSymbol("a")
	kwZ := m.store.InternKeyword("z")
	params := value.Arguments{Key: []value.Param{{Name: aName}}}
	if err := Bind(m, env, params, []value.Value{value.Keyword(kwZ), value.Integer(1)}, false); err == nil {
		t.Fatalf("expected error for unknown key argument")
	}
}

func TestBindTooManyArgumentsErrors(t *testing.T) {
	m, env := newMachine()
	a := m.store.InternSymbol("a")
	params := value.Arguments{Ordinary: []value.SymbolID{a}}
	if err := Bind(m, env, params, []value.Value{value.Integer(1), value.Integer(2)}, false); err == nil {
		t.Fatalf("expected error for surplus arguments")
	}
}

func TestBindMacroParamsBindBothNamespaces(t *testing.T) {
	m, env := newMachine()
	x := m.store.InternSymbol("x")
	params := value.Arguments{Ordinary: []value.SymbolID{x}}
	if err := Bind(m, env, params, []value.Value{value.Integer(5)}, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := m.store.LookupVariable(env, x); !ok {
		t.Fatalf("macro param not bound in variable namespace")
	}
	if _, ok := m.store.LookupFunction(env, x); !ok {
		t.Fatalf("macro param not bound in function namespace")
	}
}
