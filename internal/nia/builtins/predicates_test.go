package builtins

import "testing"

func TestKindPredicates(t *testing.T) {
	e, store := newTestMachine()
	tests := []struct {
		source string
		want   string
	}{
		{"(nil? nil)", "#t"},
		{"(nil? 1)", "#f"},
		{"(symbol? 'foo)", "#t"},
		{"(symbol? :foo)", "#f"},
		{"(keyword? :foo)", "#t"},
		{"(string? \"foo\")", "#t"},
		{"(integer? 1)", "#t"},
		{"(integer? 1.0)", "#f"},
		{"(float? 1.0)", "#t"},
		{"(boolean? #t)", "#t"},
		{"(boolean? 0)", "#f"},
		{"(cons? (cons 1 2))", "#t"},
		{"(cons? nil)", "#f"},
		{"(object? (object:make :x 1))", "#t"},
		{"(function? (function (lambda (x) x)))", "#t"},
		{"(list? (list 1 2))", "#t"},
		{"(list? (cons 1 2))", "#f"},
		{"(list? nil)", "#t"},
		{"(not #f)", "#t"},
		{"(not nil)", "#t"},
		{"(not 0)", "#f"},
	}
	for _, tt := range tests {
		got := store.Print(run(t, e, store, tt.source))
		if got != tt.want {
			t.Errorf("%s = %s, want %s", tt.source, got, tt.want)
		}
	}
}

func TestEqVsEqualOnStructuralValues(t *testing.T) {
	e, store := newTestMachine()

	got := store.Print(run(t, e, store, `(eq? (list 1 2) (list 1 2))`))
	if got != "#f" {
		t.Errorf("eq? on two distinct conses = %s, want #f", got)
	}

	got = store.Print(run(t, e, store, `(equal? (list 1 2) (list 1 2))`))
	if got != "#t" {
		t.Errorf("equal? on structurally-identical lists = %s, want #t", got)
	}

	got = store.Print(run(t, e, store, `(let ((x 1)) (eq? x x))`))
	if got != "#t" {
		t.Errorf("eq? on the same integer value = %s, want #t", got)
	}
}
