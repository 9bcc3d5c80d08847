package builtins

import "testing"

func TestListConstruction(t *testing.T) {
	e, store := newTestMachine()
	tests := []struct {
		source string
		want   string
	}{
		{"(list 1 2 3)", "(1 2 3)"},
		{"(cons 1 2)", "(1 . 2)"},
		{"(car (list 1 2 3))", "1"},
		{"(cdr (list 1 2 3))", "(2 3)"},
		{"(length (list 1 2 3))", "3"},
		{"(length \"hello\")", "5"},
		{"(list:reverse (list 1 2 3))", "(3 2 1)"},
		{"(list:append (list 1 2) (list 3 4))", "(1 2 3 4)"},
		{"(list:nth 1 (list 1 2 3))", "2"},
		{"(list:join \",\" (list \"a\" \"b\" \"c\"))", `"a,b,c"`},
	}
	for _, tt := range tests {
		got := store.Print(run(t, e, store, tt.source))
		if got != tt.want {
			t.Errorf("%s = %s, want %s", tt.source, got, tt.want)
		}
	}
}

func TestListHigherOrder(t *testing.T) {
	e, store := newTestMachine()
	tests := []struct {
		source string
		want   string
	}{
		{"(list:map (function (lambda (x) (* x x))) (list 1 2 3))", "(1 4 9)"},
		{"(list:filter (function (lambda (x) (> x 1))) (list 1 2 3))", "(2 3)"},
		{"(list:reduce (function (lambda (acc x) (+ acc x))) 0 (list 1 2 3))", "6"},
	}
	for _, tt := range tests {
		got := store.Print(run(t, e, store, tt.source))
		if got != tt.want {
			t.Errorf("%s = %s, want %s", tt.source, got, tt.want)
		}
	}
}

func TestGensymNeverEqualsAnother(t *testing.T) {
	e, store := newTestMachine()
	a := run(t, e, store, "(gensym)")
	b := run(t, e, store, "(gensym)")
	eq := store.Print(run(t, e, store, "(eq? (gensym) (gensym))"))
	if eq != "#f" {
		t.Errorf("two gensyms compared eq? should be #f, got %s", eq)
	}
	if store.Print(a) != store.Print(b) {
		// Printed forms legitimately differ (different gensym ids); this
		// just documents that gensym output isn't required to match.
		t.Skip("gensym print forms differ as expected")
	}
}
