package builtins

import "testing"

func TestStringBasics(t *testing.T) {
	e, store := newTestMachine()
	tests := []struct {
		source string
		want   string
	}{
		{`(string:concat "foo" "bar")`, `"foobar"`},
		{`(string:length "hello")`, "5"},
		{`(string:upper "abc")`, `"ABC"`},
		{`(string:lower "ABC")`, `"abc"`},
		{`(string:trim "  hi  ")`, `"hi"`},
		{`(string:lt "abc" "abd")`, "#t"},
		{`(string:to-symbol "foo")`, "foo"},
		{`(symbol:to-string 'foo)`, `"foo"`},
	}
	for _, tt := range tests {
		got := store.Print(run(t, e, store, tt.source))
		if got != tt.want {
			t.Errorf("%s = %s, want %s", tt.source, got, tt.want)
		}
	}
}

func TestStringSplit(t *testing.T) {
	e, store := newTestMachine()
	got := store.Print(run(t, e, store, `(string:split "a,b,c" ",")`))
	want := `("a" "b" "c")`
	if got != want {
		t.Errorf("string:split = %s, want %s", got, want)
	}
}

func TestStringCollate(t *testing.T) {
	e, store := newTestMachine()
	got := store.Print(run(t, e, store, `(string:collate "a" "b")`))
	if got != "-1" {
		t.Errorf("string:collate a b = %s, want -1", got)
	}
}

func TestStringUTF16RoundTrip(t *testing.T) {
	e, store := newTestMachine()
	got := store.Print(run(t, e, store, `(string:from-utf16 (string:to-utf16 "hello"))`))
	want := `"hello"`
	if got != want {
		t.Errorf("utf16 round trip = %s, want %s", got, want)
	}
}
