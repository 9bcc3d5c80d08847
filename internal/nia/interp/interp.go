// Package interp wires the arena store, evaluator, and builtin
// registration into a single entry point (Execute/ExecuteIn), and
// implements the outer daemon's command surface on top of it
// (commands.go).
package interp

import (
	"github.com/nialang/nia/internal/nia/builtins"
	"github.com/nialang/nia/internal/nia/eval"
	"github.com/nialang/nia/internal/nia/parser"
	"github.com/nialang/nia/internal/nia/reader"
	"github.com/nialang/nia/internal/nia/value"
)

// Interpreter owns one Store/Evaluator pair plus the command-surface
// registries (actions, modifiers, devices, mappings) the out-of-scope
// daemon manipulates through Dispatch.
type Interpreter struct {
	Store     *value.Store
	Evaluator *eval.Evaluator
	reader    *reader.Reader

	actions   *registry
	modifiers *registry
	devices   *registry
	mappings  *registry
	listening bool
}

// New allocates a fresh Store, registers special forms (via eval.New)
// and builtins, and returns a ready-to-use Interpreter.
func New() *Interpreter {
	store := value.NewStore()
	evaluator := eval.New(store)
	builtins.Register(store)
	return &Interpreter{
		Store:     store,
		Evaluator: evaluator,
		reader:    reader.New(store),
		actions:   newRegistry(),
		modifiers: newRegistry(),
		devices:   newRegistry(),
		mappings:  newRegistry(),
	}
}

// Execute parses, reads, and evaluates every top-level form in source
// against the root environment, returning the last value.
func (interp *Interpreter) Execute(source string) (value.Value, error) {
	return interp.ExecuteIn(interp.Store.RootEnv, source)
}

// ExecuteIn is Execute against a caller-supplied environment, letting a
// REPL front end keep evaluating into the same top-level scope across
// calls.
func (interp *Interpreter) ExecuteIn(env value.EnvironmentID, source string) (value.Value, error) {
	elements, err := parser.ParseAll(source)
	if err != nil {
		return value.Value{}, err
	}
	forms, err := interp.reader.ReadAll(elements)
	if err != nil {
		return value.Value{}, err
	}
	return interp.Evaluator.ExecuteIn(env, forms)
}
