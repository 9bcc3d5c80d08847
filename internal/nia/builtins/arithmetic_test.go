package builtins

import "testing"

func TestArithmeticIntegerTower(t *testing.T) {
	e, store := newTestMachine()
	tests := []struct {
		source string
		want   string
	}{
		{"(+ 1 2 3)", "6"},
		{"(- 10 3 2)", "5"},
		{"(- 5)", "-5"},
		{"(* 2 3 4)", "24"},
		{"(mod 10 3)", "1"},
	}
	for _, tt := range tests {
		got := store.Print(run(t, e, store, tt.source))
		if got != tt.want {
			t.Errorf("%s = %s, want %s", tt.source, got, tt.want)
		}
	}
}

func TestArithmeticFloatContagion(t *testing.T) {
	e, store := newTestMachine()
	got := store.Print(run(t, e, store, "(+ 1 2.5)"))
	if got != "3.5" {
		t.Errorf("(+ 1 2.5) = %s, want 3.5", got)
	}
}

func TestArithmeticOverflowRaises(t *testing.T) {
	e, store := newTestMachine()
	err := runExpectError(t, e, store, "(+ 9223372036854775807 1)")
	if err == nil {
		t.Fatal("expected an overflow error")
	}
}

func TestArithmeticDivisionByZero(t *testing.T) {
	e, store := newTestMachine()
	runExpectError(t, e, store, "(/ 1 0)")
}

func TestComparisons(t *testing.T) {
	e, store := newTestMachine()
	tests := []struct {
		source string
		want   string
	}{
		{"(< 1 2 3)", "#t"},
		{"(< 1 3 2)", "#f"},
		{"(= 1 1 1)", "#t"},
		{"(>= 3 3 2)", "#t"},
	}
	for _, tt := range tests {
		got := store.Print(run(t, e, store, tt.source))
		if got != tt.want {
			t.Errorf("%s = %s, want %s", tt.source, got, tt.want)
		}
	}
}
