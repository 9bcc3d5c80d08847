// Package errors implements the evaluator's tagged error model: one
// Kind-bearing Error type carrying an interned symbol (so try/catch can
// dispatch by identifier equality rather than string comparison) and a
// cause chain, unified into a single carrier instead of one Go type per
// failure mode.
package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nialang/nia/internal/nia/value"
)

// Kind enumerates the error taxonomy.
type Kind uint8

const (
	GenericExecution Kind = iota
	InvalidArgument
	InvalidArgumentCount
	Overflow
	StackOverflow
	Assertion
	// Failure indicates a broken interpreter invariant (e.g. a dangling
	// arena identifier). It is never caught by user code.
	Failure
	// Break and Continue are control-flow signals raised by the break/
	// continue builtins. They are legal only inside loop constructs;
	// escaping one unwinds it into GenericExecution.
	Break
	Continue
	// Thrown is a user-raised condition via the throw special form,
	// dispatched to a matching catch clause by Symbol identity rather
	// than by Kind.
	Thrown
)

func (k Kind) String() string {
	switch k {
	case GenericExecution:
		return "generic-execution"
	case InvalidArgument:
		return "invalid-argument"
	case InvalidArgumentCount:
		return "invalid-argument-count"
	case Overflow:
		return "overflow"
	case StackOverflow:
		return "stack-overflow"
	case Assertion:
		return "assertion"
	case Failure:
		return "failure"
	case Break:
		return "break"
	case Continue:
		return "continue"
	case Thrown:
		return "thrown"
	default:
		return "unknown"
	}
}

// StackFrame is one call-stack entry captured at the point an Error was
// raised, named after the calling symbol where one exists.
type StackFrame struct {
	FunctionName  string
	CallingSymbol string
	HasSymbol     bool
}

func (f StackFrame) String() string {
	if f.HasSymbol {
		return fmt.Sprintf("%s (called as %s)", f.FunctionName, f.CallingSymbol)
	}
	return f.FunctionName
}

// StackTrace is a call stack snapshot, oldest frame first.
type StackTrace []StackFrame

func (st StackTrace) String() string {
	if len(st) == 0 {
		return ""
	}
	lines := make([]string, len(st))
	for i := len(st) - 1; i >= 0; i-- {
		lines[len(st)-1-i] = "  at " + st[i].String()
	}
	return strings.Join(lines, "\n")
}

// Error is the evaluator's single error carrier: {kind, symbol, message,
// cause}. Symbol is an interned value.SymbolID so a catch clause
// compares against it by identifier equality, never by string.
type Error struct {
	Kind      Kind
	Symbol    value.SymbolID
	Message   string
	Cause     error
	CallStack StackTrace
}

// New constructs an Error, interning symbolName as its dispatch symbol.
func New(store *value.Store, kind Kind, symbolName, message string) *Error {
	return &Error{
		Kind:    kind,
		Symbol:  store.InternSymbol(symbolName),
		Message: message,
	}
}

// NewSym constructs an Error from an already-interned symbol, used by
// the throw special form where the symbol comes from evaluating a
// user expression rather than from a literal Go string.
func NewSym(kind Kind, sym value.SymbolID, message string) *Error {
	return &Error{Kind: kind, Symbol: sym, Message: message}
}

// Wrap is New with a cause chain.
func Wrap(store *value.Store, kind Kind, symbolName, message string, cause error) *Error {
	e := New(store, kind, symbolName, message)
	e.Cause = cause
	return e
}

// WithStack returns a copy of e with its call stack snapshot set.
func (e *Error) WithStack(trace StackTrace) *Error {
	cp := *e
	cp.CallStack = trace
	return &cp
}

// Error implements the error interface with a one-line summary: kind
// and message. Use Summary for the full kind/symbol/message plus
// cause-chain rendering the REPL prints.
func (e *Error) Error() string {
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap exposes the cause chain to errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.Cause }

// Summary renders the one-line kind/symbol/message the REPL prints,
// followed by the cause chain, one cause per line.
func (e *Error) Summary(store *value.Store) string {
	symName := "?"
	if sym, ok := store.GetSymbol(e.Symbol); ok {
		symName = sym.Name
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (%s): %s", e.Kind, symName, e.Message)
	cause := e.Cause
	for cause != nil {
		fmt.Fprintf(&sb, "\ncaused by: %s", cause.Error())
		var wrapped interface{ Unwrap() error }
		if errors.As(cause, &wrapped) {
			cause = wrapped.Unwrap()
		} else {
			cause = nil
		}
	}
	return sb.String()
}

// Is reports whether err is (or wraps) an *Error of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// MatchesSymbol reports whether err is (or wraps) an *Error, of any
// Kind, whose Symbol equals sym.
func MatchesSymbol(err error, sym value.SymbolID) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Symbol == sym
	}
	return false
}
