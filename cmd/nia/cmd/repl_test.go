package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestReplEchoesResults(t *testing.T) {
	in := strings.NewReader("(+ 1 2 3)\n(* 2 3)\n")
	var out bytes.Buffer

	if err := repl(in, &out); err != nil {
		t.Fatalf("repl returned error: %v", err)
	}

	got := out.String()
	for _, want := range []string{"6", "6"} {
		if !strings.Contains(got, want) {
			t.Errorf("repl output %q does not contain %q", got, want)
		}
	}
}

func TestReplSkipsBlankLines(t *testing.T) {
	in := strings.NewReader("\n\n(+ 1 1)\n")
	var out bytes.Buffer

	if err := repl(in, &out); err != nil {
		t.Fatalf("repl returned error: %v", err)
	}

	if !strings.Contains(out.String(), "2") {
		t.Errorf("expected blank lines to be skipped and (+ 1 1) to print 2, got %q", out.String())
	}
}
