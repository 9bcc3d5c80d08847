package parser

import (
	"reflect"
	"testing"

	"github.com/nialang/nia/internal/nia/reader"
)

func TestParseAtoms(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want reader.Element
	}{
		{"integer", "42", reader.Element{Kind: reader.Integer, Int: 42}},
		{"negative integer", "-7", reader.Element{Kind: reader.Integer, Int: -7}},
		{"float", "3.14", reader.Element{Kind: reader.Float, Flt: 3.14}},
		{"true", "#t", reader.Element{Kind: reader.Boolean, Bool: true}},
		{"false", "#f", reader.Element{Kind: reader.Boolean, Bool: false}},
		{"symbol", "define-function", reader.Element{Kind: reader.Symbol, Text: "define-function"}},
		{"special-name symbol", "#opt", reader.Element{Kind: reader.Symbol, Text: "#opt"}},
		{"keyword", ":name", reader.Element{Kind: reader.Keyword, Text: "name"}},
		{"delimited symbol", "a:b:c", reader.Element{Kind: reader.DelimitedSymbol, Parts: []string{"a", "b", "c"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			els, err := ParseAll(tt.src)
			if err != nil {
				t.Fatalf("ParseAll(%q): unexpected error: %v", tt.src, err)
			}
			if len(els) != 1 {
				t.Fatalf("ParseAll(%q): expected 1 element, got %d", tt.src, len(els))
			}
			if !reflect.DeepEqual(els[0], tt.want) {
				t.Errorf("ParseAll(%q) = %+v, want %+v", tt.src, els[0], tt.want)
			}
		})
	}
}

func TestParseSExpr(t *testing.T) {
	els, err := ParseAll("(+ 1 2 3)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(els) != 1 || els[0].Kind != reader.SExpr {
		t.Fatalf("expected a single SExpr, got %+v", els)
	}
	if len(els[0].Items) != 4 {
		t.Fatalf("expected 4 items, got %d", len(els[0].Items))
	}
	if !reflect.DeepEqual(els[0].Items[0], reader.Element{Kind: reader.Symbol, Text: "+"}) {
		t.Errorf("expected head symbol +, got %+v", els[0].Items[0])
	}
}

func TestParseString(t *testing.T) {
	els, err := ParseAll(`"hello\nworld"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := reader.Element{Kind: reader.String, Text: "hello\nworld"}
	if !reflect.DeepEqual(els[0], want) {
		t.Errorf("got %+v, want %+v", els[0], want)
	}
}

func TestParsePrefixedForms(t *testing.T) {
	tests := []struct {
		src    string
		prefix string
	}{
		{"'x", reader.PrefixQuote},
		{"`x", reader.PrefixQuasiquote},
		{",x", reader.PrefixUnquote},
		{",@x", reader.PrefixUnquoteSplicing},
	}
	for _, tt := range tests {
		els, err := ParseAll(tt.src)
		if err != nil {
			t.Fatalf("ParseAll(%q): unexpected error: %v", tt.src, err)
		}
		if els[0].Kind != reader.Prefixed || els[0].Text != tt.prefix {
			t.Errorf("ParseAll(%q) = %+v, want prefix %q", tt.src, els[0], tt.prefix)
		}
	}
}

func TestParseObjectLiteralAndPattern(t *testing.T) {
	els, err := ParseAll(`{:x 1 :y 2}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if els[0].Kind != reader.ObjectLiteral || len(els[0].Pairs) != 2 {
		t.Fatalf("got %+v", els[0])
	}

	els, err = ParseAll(`#{:x :y}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if els[0].Kind != reader.ObjectPattern || len(els[0].Pairs) != 2 {
		t.Fatalf("got %+v", els[0])
	}
}

func TestParseShortLambda(t *testing.T) {
	els, err := ParseAll(`#(+ %1 %2)`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if els[0].Kind != reader.ShortLambda || len(els[0].Items) != 3 {
		t.Fatalf("got %+v", els[0])
	}
}

func TestParseMultipleTopLevelForms(t *testing.T) {
	els, err := ParseAll("(define-variable x 1)\n(define-variable y 2)\n; a comment\n(+ x y)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(els) != 3 {
		t.Fatalf("expected 3 top-level forms, got %d", len(els))
	}
}

func TestParseUnterminatedSExprErrors(t *testing.T) {
	if _, err := ParseAll("(+ 1 2"); err == nil {
		t.Fatal("expected an error for an unterminated s-expression")
	}
}

func TestParseUnterminatedStringErrors(t *testing.T) {
	if _, err := ParseAll(`"unterminated`); err == nil {
		t.Fatal("expected an error for an unterminated string literal")
	}
}
