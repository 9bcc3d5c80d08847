// Package eval implements the tree-walking evaluator: expression
// dispatch, the call stack and its overflow guard, and, in
// specialforms.go, the special-form table. Evaluator implements
// value.Machine so builtins and special forms registered in the
// function namespace can call back into evaluation without this
// package depending on theirs.
package eval

import (
	"time"

	"github.com/nialang/nia/internal/nia/args"
	nerrors "github.com/nialang/nia/internal/nia/errors"
	"github.com/nialang/nia/internal/nia/value"
)

// defaultGCPeriod is the naive wall-clock pacing found sufficient
// between collections.
const defaultGCPeriod = 2 * time.Second

// Evaluator is the tree-walking evaluator for one Store. It owns the
// call stack and the garbage-collection pacer, both of which must see
// every invocation to do their jobs: the stack to bound recursion, the
// collector to know when a safe point between top-level forms has
// arrived.
type Evaluator struct {
	store     *value.Store
	stack     *CallStack
	Collector *value.Collector
}

// New creates an Evaluator over store with the default call-depth bound
// and garbage-collection period.
func New(store *value.Store) *Evaluator {
	e := &Evaluator{
		store: store,
		stack: NewCallStack(DefaultMaxDepth),
	}
	e.Collector = value.NewCollector(store, defaultGCPeriod)
	RegisterSpecialForms(store)
	return e
}

// Store implements value.Machine.
func (e *Evaluator) Store() *value.Store { return e.store }

// Execute evaluates a sequence of top-level forms in the root
// environment, in order, returning the last result. It runs the
// garbage collector at the safe point between forms, once the
// configured period has elapsed.
func (e *Evaluator) Execute(forms []value.Value) (value.Value, error) {
	return e.ExecuteIn(e.store.RootEnv, forms)
}

// ExecuteIn is Execute against a caller-supplied environment, letting a
// REPL front end keep evaluating into the same top-level scope across
// calls.
func (e *Evaluator) ExecuteIn(env value.EnvironmentID, forms []value.Value) (value.Value, error) {
	result := e.store.Nil()
	for i, form := range forms {
		v, err := e.Evaluate(env, form)
		if err != nil {
			if nerrors.Is(err, nerrors.Break) || nerrors.Is(err, nerrors.Continue) {
				return value.Value{}, nerrors.Wrap(e.store, nerrors.GenericExecution, "generic-execution",
					"break or continue used outside of a loop", err)
			}
			return value.Value{}, err
		}
		result = v
		e.Collector.MaybeCollect(append([]value.Value{result}, forms[i+1:]...), []value.EnvironmentID{env})
	}
	return result, nil
}

// Evaluate implements value.Machine's expression dispatch.
func (e *Evaluator) Evaluate(env value.EnvironmentID, v value.Value) (value.Value, error) {
	switch v.Kind() {
	case value.KindInteger, value.KindFloat, value.KindBoolean, value.KindString, value.KindKeyword, value.KindFunction:
		return v, nil
	case value.KindSymbol:
		return e.evaluateSymbol(env, v)
	case value.KindCons:
		return e.evaluateSExpression(env, v)
	case value.KindObject:
		return e.evaluateObjectLiteral(env, v)
	default:
		return value.Value{}, nerrors.New(e.store, nerrors.Failure, "failure", "evaluator: value of unknown kind")
	}
}

// evaluateSymbol resolves nil/#t/#f to their constant values and every
// other symbol as a variable reference.
func (e *Evaluator) evaluateSymbol(env value.EnvironmentID, v value.Value) (value.Value, error) {
	sym, _ := v.AsSymbol()
	name, ok := e.store.GetSymbol(sym)
	if !ok {
		return value.Value{}, nerrors.New(e.store, nerrors.Failure, "failure", "evaluator: dangling symbol identifier")
	}
	switch name.Name {
	case "nil":
		return e.store.Nil(), nil
	case "#t":
		return value.Boolean(true), nil
	case "#f":
		return value.Boolean(false), nil
	}
	result, found := e.store.LookupVariable(env, sym)
	if !found {
		return value.Value{}, nerrors.New(e.store, nerrors.GenericExecution, "unbound-variable",
			"unbound variable: "+name.Name)
	}
	return result, nil
}

// evaluateObjectLiteral re-evaluates an object's stored property
// values in env and builds a fresh Object from the results — the
// reader stores a literal's property expressions unevaluated, so
// evaluating the literal is what actually runs them, in the
// environment the literal appears in rather than the one it was read
// in.
func (e *Evaluator) evaluateObjectLiteral(env value.EnvironmentID, v value.Value) (value.Value, error) {
	id, _ := v.AsObject()
	obj, ok := e.store.GetObject(id)
	if !ok {
		return value.Value{}, nerrors.New(e.store, nerrors.Failure, "failure", "evaluator: dangling object identifier")
	}
	result := e.store.AllocateObject(obj.Prototype, obj.HasPrototype)
	for _, key := range obj.Keys() {
		raw, _ := obj.GetLocal(key)
		evaluated, err := e.Evaluate(env, raw)
		if err != nil {
			return value.Value{}, err
		}
		e.store.SetProperty(result, key, evaluated)
	}
	return value.Object(result), nil
}

// evaluateSExpression implements call dispatch: quote/if/et al. and
// user functions are both reached through the same function-namespace
// lookup, distinguished only by the value.FunctionKind bound there.
func (e *Evaluator) evaluateSExpression(env value.EnvironmentID, v value.Value) (value.Value, error) {
	consID, _ := v.AsCons()
	cell, ok := e.store.GetCons(consID)
	if !ok {
		return value.Value{}, nerrors.New(e.store, nerrors.Failure, "failure", "evaluator: dangling cons identifier")
	}
	argForms, tail, ok := e.store.ListToSlice(cell.Cdr)
	if !ok {
		return value.Value{}, nerrors.New(e.store, nerrors.GenericExecution, "invalid-form", "call form must be a proper list")
	}
	if sym, isSym := tail.AsSymbol(); !isSym || sym != e.store.NilSymbol {
		return value.Value{}, nerrors.New(e.store, nerrors.GenericExecution, "invalid-form", "call form must be a proper list")
	}

	if headSym, isSym := cell.Car.AsSymbol(); isSym {
		fnValue, found := e.store.LookupFunction(env, headSym)
		if !found {
			name, _ := e.store.GetSymbol(headSym)
			return value.Value{}, nerrors.New(e.store, nerrors.GenericExecution, "undefined-function",
				"undefined function: "+name.Name)
		}
		return e.dispatch(env, fnValue, &headSym, argForms)
	}

	if kw, isKeyword := cell.Car.AsKeyword(); isKeyword {
		return e.evaluateKeywordAccessor(env, kw, argForms)
	}

	head, err := e.Evaluate(env, cell.Car)
	if err != nil {
		return value.Value{}, err
	}
	evaluated := make([]value.Value, len(argForms))
	for i, form := range argForms {
		ev, err := e.Evaluate(env, form)
		if err != nil {
			return value.Value{}, err
		}
		evaluated[i] = ev
	}
	return e.Apply(head, nil, evaluated)
}

// evaluateKeywordAccessor implements the keyword-in-head-position object
// accessor: `(:k object)` gets the property named k (nil if absent),
// `(:k object new-value)` sets it and returns new-value. Both operand
// positions are evaluated, since this is an ordinary call shape, not a
// special form.
func (e *Evaluator) evaluateKeywordAccessor(env value.EnvironmentID, kw value.KeywordID, argForms []value.Value) (value.Value, error) {
	if len(argForms) != 1 && len(argForms) != 2 {
		return value.Value{}, nerrors.New(e.store, nerrors.InvalidArgumentCount, "invalid-argument-count",
			"keyword accessor takes 1 or 2 arguments")
	}
	name, _ := e.store.GetKeyword(kw)
	propSym := e.store.InternSymbol(name)

	receiver, err := e.Evaluate(env, argForms[0])
	if err != nil {
		return value.Value{}, err
	}
	objID, isObj := receiver.AsObject()
	if !isObj {
		return value.Value{}, nerrors.New(e.store, nerrors.InvalidArgument, "invalid-argument",
			"keyword accessor receiver must be an object")
	}

	if len(argForms) == 1 {
		v, found := e.store.GetProperty(objID, propSym)
		if !found {
			return e.store.Nil(), nil
		}
		return v, nil
	}

	newValue, err := e.Evaluate(env, argForms[1])
	if err != nil {
		return value.Value{}, err
	}
	e.store.SetProperty(objID, propSym, newValue)
	return newValue, nil
}

// dispatch handles a call whose head resolved to fn, deciding whether
// argForms are evaluated before the call (Builtin/Interpreted) or
// handed over raw (SpecialForm/Macro).
func (e *Evaluator) dispatch(env value.EnvironmentID, fn value.Value, callingSymbol *value.SymbolID, argForms []value.Value) (value.Value, error) {
	fnID, isFn := fn.AsFunction()
	if !isFn {
		return value.Value{}, nerrors.New(e.store, nerrors.InvalidArgument, "not-a-function", "call head does not resolve to a function")
	}
	def, ok := e.store.GetFunction(fnID)
	if !ok {
		return value.Value{}, nerrors.New(e.store, nerrors.Failure, "failure", "evaluator: dangling function identifier")
	}

	switch def.Kind {
	case value.FunctionSpecialForm:
		return e.invoke(env, fnID, def, callingSymbol, argForms)
	case value.FunctionMacro:
		expansion, err := e.invoke(env, fnID, def, callingSymbol, argForms)
		if err != nil {
			return value.Value{}, err
		}
		return e.Evaluate(env, expansion)
	default:
		evaluated := make([]value.Value, len(argForms))
		for i, form := range argForms {
			ev, err := e.Evaluate(env, form)
			if err != nil {
				return value.Value{}, err
			}
			evaluated[i] = ev
		}
		return e.applyResolved(fnID, def, callingSymbol, evaluated)
	}
}

// Apply implements value.Machine: invoke an already-resolved function
// value with already-evaluated arguments, as ordinary call position
// does once the head has been reduced to a Function.
func (e *Evaluator) Apply(fn value.Value, callingSymbol *value.SymbolID, args []value.Value) (value.Value, error) {
	fnID, isFn := fn.AsFunction()
	if !isFn {
		return value.Value{}, nerrors.New(e.store, nerrors.InvalidArgument, "not-a-function", "value is not callable")
	}
	def, ok := e.store.GetFunction(fnID)
	if !ok {
		return value.Value{}, nerrors.New(e.store, nerrors.Failure, "failure", "evaluator: dangling function identifier")
	}
	if def.Kind == value.FunctionMacro {
		return value.Value{}, nerrors.New(e.store, nerrors.InvalidArgument, "not-a-function", "macros cannot be applied to evaluated arguments")
	}
	return e.applyResolved(fnID, def, callingSymbol, args)
}

func (e *Evaluator) applyResolved(fnID value.FunctionID, def value.Function, callingSymbol *value.SymbolID, args []value.Value) (value.Value, error) {
	return e.invoke(0, fnID, def, callingSymbol, args)
}

// invoke pushes a call-stack frame, binds parameters (for Interpreted
// and Macro functions), runs the body, and pops the frame on every
// path — including error returns — so an evaluation error never leaks
// a stack frame.
func (e *Evaluator) invoke(callerEnv value.EnvironmentID, fnID value.FunctionID, def value.Function, callingSymbol *value.SymbolID, args []value.Value) (value.Value, error) {
	frame := Frame{Function: fnID, Arguments: args}
	if callingSymbol != nil {
		frame.HasCallingSymbol = true
		frame.CallingSymbol = *callingSymbol
	}
	if !e.stack.Push(frame) {
		return value.Value{}, nerrors.New(e.store, nerrors.StackOverflow, "stack-overflow",
			"call stack exceeded maximum depth").WithStack(e.snapshotStack())
	}
	defer e.stack.Pop()

	switch def.Kind {
	case value.FunctionBuiltin, value.FunctionSpecialForm:
		if callerEnv == 0 {
			callerEnv = e.store.RootEnv
		}
		return def.Native(e, callerEnv, args)
	case value.FunctionMacro, value.FunctionInterpreted:
		return e.invokeLexical(def, args)
	default:
		return value.Value{}, nerrors.New(e.store, nerrors.Failure, "failure", "evaluator: function of unknown kind")
	}
}

func (e *Evaluator) invokeLexical(def value.Function, callArgs []value.Value) (value.Value, error) {
	callEnv := e.store.NewChildEnvironment(def.CapturedEnv)
	forFunctions := def.Kind == value.FunctionMacro
	if err := args.Bind(e, callEnv, def.Params, callArgs, forFunctions); err != nil {
		return value.Value{}, err
	}
	return evalBody(e, callEnv, def.Body)
}

// snapshotStack renders the live call stack into an errors.StackTrace
// for attaching to a freshly raised error.
func (e *Evaluator) snapshotStack() nerrors.StackTrace {
	frames := e.stack.Frames()
	trace := make(nerrors.StackTrace, 0, len(frames))
	for _, f := range frames {
		def, ok := e.store.GetFunction(f.Function)
		name := "<anonymous>"
		if ok && def.Name != "" {
			name = def.Name
		}
		sf := nerrors.StackFrame{FunctionName: name}
		if f.HasCallingSymbol {
			if sym, ok := e.store.GetSymbol(f.CallingSymbol); ok {
				sf.HasSymbol = true
				sf.CallingSymbol = sym.Name
			}
		}
		trace = append(trace, sf)
	}
	return trace
}
