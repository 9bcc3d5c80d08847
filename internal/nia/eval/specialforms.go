package eval

import (
	stderrors "errors"

	"github.com/nialang/nia/internal/nia/args"
	nerrors "github.com/nialang/nia/internal/nia/errors"
	"github.com/nialang/nia/internal/nia/value"
)

// RegisterSpecialForms populates store's root environment with the
// special-form table. Every entry is a value.FunctionSpecialForm: the
// evaluator hands it unevaluated argument Values and the caller's
// environment.
func RegisterSpecialForms(store *value.Store) {
	define := func(name string, fn value.NativeFn) {
		fid := store.AllocateFunction(value.Function{Kind: value.FunctionSpecialForm, Native: fn, Name: name})
		store.DefineFunction(store.RootEnv, store.InternSymbol(name), value.Function(fid))
	}

	define("quote", specialQuote)
	define("if", specialIf)
	define("cond", specialCond)
	define("and", specialAnd)
	define("or", specialOr)
	define("progn", specialProgn)
	define("block", specialBlock)
	define("let", specialLet(false))
	define("let*", specialLet(true))
	define("flet", specialFunctionLet(false, false))
	define("flet*", specialFunctionLet(true, false))
	define("mlet", specialFunctionLet(false, true))
	define("mlet*", specialFunctionLet(true, true))
	define("define-variable", specialDefineVariable)
	define("define-function", specialDefineFunction)
	define("set!", specialSetVariable)
	define("fset!", specialSetFunction)
	define("function", specialFunction)
	define("throw", specialThrow)
	define("try", specialTry)
	define("while", specialWhile)
	define("dolist", specialDolist)
	define("dotimes", specialDotimes)
	define("match", specialMatch)
	define("with-this", specialWithThis)
	define("quasiquote", specialQuasiquote)
}

// evalBody evaluates forms in sequence against a value.Machine,
// returning the last result (or nil for an empty body) — the shared
// "progn" behavior every body-form special form and every interpreted
// function call needs.
func evalBody(m value.Machine, env value.EnvironmentID, body []value.Value) (value.Value, error) {
	store := m.Store()
	result := store.Nil()
	for _, form := range body {
		v, err := m.Evaluate(env, form)
		if err != nil {
			return value.Value{}, err
		}
		result = v
	}
	return result, nil
}

func arityError(store *value.Store, form string, detail string) error {
	return nerrors.New(store, nerrors.InvalidArgumentCount, "invalid-argument-count", form+": "+detail)
}

func formError(store *value.Store, form string, detail string) error {
	return nerrors.New(store, nerrors.InvalidArgument, "invalid-argument", form+": "+detail)
}

// --- quote / if / cond / and / or / progn / block ---

func specialQuote(m value.Machine, env value.EnvironmentID, argForms []value.Value) (value.Value, error) {
	store := m.Store()
	if len(argForms) != 1 {
		return value.Value{}, arityError(store, "quote", "expects exactly one operand")
	}
	return argForms[0], nil
}

func specialIf(m value.Machine, env value.EnvironmentID, argForms []value.Value) (value.Value, error) {
	store := m.Store()
	if len(argForms) < 2 || len(argForms) > 3 {
		return value.Value{}, arityError(store, "if", "expects (if predicate consequent alternative?)")
	}
	p, err := m.Evaluate(env, argForms[0])
	if err != nil {
		return value.Value{}, err
	}
	if store.Truthy(p) {
		return m.Evaluate(env, argForms[1])
	}
	if len(argForms) == 3 {
		return m.Evaluate(env, argForms[2])
	}
	return store.Nil(), nil
}

func specialCond(m value.Machine, env value.EnvironmentID, argForms []value.Value) (value.Value, error) {
	store := m.Store()
	for _, clause := range argForms {
		parts, tail, ok := store.ListToSlice(clause)
		if !ok || !isNilTail(store, tail) || len(parts) < 1 {
			return value.Value{}, formError(store, "cond", "each clause must be a proper (predicate body...) list")
		}
		pv, err := m.Evaluate(env, parts[0])
		if err != nil {
			return value.Value{}, err
		}
		if store.Truthy(pv) {
			return evalBody(m, env, parts[1:])
		}
	}
	return store.Nil(), nil
}

func specialAnd(m value.Machine, env value.EnvironmentID, argForms []value.Value) (value.Value, error) {
	store := m.Store()
	result := value.Boolean(true)
	for _, form := range argForms {
		v, err := m.Evaluate(env, form)
		if err != nil {
			return value.Value{}, err
		}
		if !store.Truthy(v) {
			return v, nil
		}
		result = v
	}
	return result, nil
}

func specialOr(m value.Machine, env value.EnvironmentID, argForms []value.Value) (value.Value, error) {
	store := m.Store()
	result := value.Boolean(false)
	for _, form := range argForms {
		v, err := m.Evaluate(env, form)
		if err != nil {
			return value.Value{}, err
		}
		if store.Truthy(v) {
			return v, nil
		}
		result = v
	}
	return result, nil
}

func specialProgn(m value.Machine, env value.EnvironmentID, argForms []value.Value) (value.Value, error) {
	return evalBody(m, env, argForms)
}

// specialBlock evaluates forms in order like progn, but returns the
// list of every result instead of just the last.
func specialBlock(m value.Machine, env value.EnvironmentID, argForms []value.Value) (value.Value, error) {
	store := m.Store()
	results := make([]value.Value, 0, len(argForms))
	for _, form := range argForms {
		v, err := m.Evaluate(env, form)
		if err != nil {
			return value.Value{}, err
		}
		results = append(results, v)
	}
	return store.List(store.Nil(), results...), nil
}

// --- let / let* / flet / flet* / mlet / mlet* ---

func isNilTail(store *value.Store, tail value.Value) bool {
	sym, ok := tail.AsSymbol()
	return ok && sym == store.NilSymbol
}

// specialLet implements both let (parallel, sequential=false) and let*
// (sequential=true): bind each name to its evaluated value-expression in
// a fresh child environment, then evaluate the body there.
func specialLet(sequential bool) value.NativeFn {
	return func(m value.Machine, env value.EnvironmentID, argForms []value.Value) (value.Value, error) {
		store := m.Store()
		formName := "let"
		if sequential {
			formName = "let*"
		}
		if len(argForms) < 1 {
			return value.Value{}, arityError(store, formName, "expects a binding list")
		}
		bindings, tail, ok := store.ListToSlice(argForms[0])
		if !ok || !isNilTail(store, tail) {
			return value.Value{}, formError(store, formName, "binding list must be a proper list")
		}
		childEnv := store.NewChildEnvironment(env)
		evalEnv := env
		if sequential {
			evalEnv = childEnv
		}
		for _, b := range bindings {
			pair, ptail, ok := store.ListToSlice(b)
			if !ok || !isNilTail(store, ptail) || len(pair) != 2 {
				return value.Value{}, formError(store, formName, "each binding must be (name value-expr)")
			}
			sym, isSym := pair[0].AsSymbol()
			if !isSym {
				return value.Value{}, formError(store, formName, "binding name must be a symbol")
			}
			if symName, ok := store.GetSymbol(sym); ok && (value.IsConstantName(symName.Name) || value.IsSpecialName(symName.Name)) {
				return value.Value{}, formError(store, formName, "cannot bind constant or special symbol "+symName.Name)
			}
			v, err := m.Evaluate(evalEnv, pair[1])
			if err != nil {
				return value.Value{}, err
			}
			if !store.DefineVariable(childEnv, sym, v) {
				return value.Value{}, formError(store, formName, "duplicate binding in the same frame")
			}
		}
		return evalBody(m, childEnv, argForms[1:])
	}
}

// buildLambdaOrMacro constructs the Function value the `function`
// special form, and the flet/mlet binding position, share: a literal
// (lambda params body...) or (macro params body...) form, captured
// over capturedEnv — never evaluated, just compiled into a closure.
func buildLambdaOrMacro(store *value.Store, capturedEnv value.EnvironmentID, form value.Value) (value.Value, error) {
	consID, isCons := form.AsCons()
	if !isCons {
		return value.Value{}, formError(store, "function", "expects (lambda params body...) or (macro params body...)")
	}
	cell, _ := store.GetCons(consID)
	headSym, isSym := cell.Car.AsSymbol()
	if !isSym {
		return value.Value{}, formError(store, "function", "expects lambda or macro in head position")
	}
	headName, _ := store.GetSymbol(headSym)

	var kind value.FunctionKind
	switch headName.Name {
	case "lambda":
		kind = value.FunctionInterpreted
	case "macro":
		kind = value.FunctionMacro
	default:
		return value.Value{}, formError(store, "function", "expects lambda or macro, got "+headName.Name)
	}

	rest, tail, ok := store.ListToSlice(cell.Cdr)
	if !ok || !isNilTail(store, tail) {
		return value.Value{}, formError(store, "function", "body must be a proper list")
	}
	if len(rest) < 1 {
		return value.Value{}, formError(store, "function", "missing parameter list")
	}
	parsed, err := args.Parse(store, rest[0])
	if err != nil {
		return value.Value{}, formError(store, "function", err.Error())
	}

	fid := store.AllocateFunction(value.Function{
		Kind:        kind,
		CapturedEnv: capturedEnv,
		Params:      parsed,
		Body:        rest[1:],
	})
	return value.Function(fid), nil
}

func specialFunction(m value.Machine, env value.EnvironmentID, argForms []value.Value) (value.Value, error) {
	store := m.Store()
	if len(argForms) != 1 {
		return value.Value{}, arityError(store, "function", "expects exactly one (lambda|macro ...) operand")
	}
	return buildLambdaOrMacro(store, env, argForms[0])
}

// specialFunctionLet implements flet/flet*/mlet/mlet*: like let/let*,
// but binds the function namespace from literal (lambda ...) / (macro
// ...) forms instead of evaluating an arbitrary expression.
func specialFunctionLet(sequential, isMacro bool) value.NativeFn {
	formName := map[[2]bool]string{
		{false, false}: "flet", {true, false}: "flet*",
		{false, true}: "mlet", {true, true}: "mlet*",
	}[[2]bool{sequential, isMacro}]

	return func(m value.Machine, env value.EnvironmentID, argForms []value.Value) (value.Value, error) {
		store := m.Store()
		if len(argForms) < 1 {
			return value.Value{}, arityError(store, formName, "expects a binding list")
		}
		bindings, tail, ok := store.ListToSlice(argForms[0])
		if !ok || !isNilTail(store, tail) {
			return value.Value{}, formError(store, formName, "binding list must be a proper list")
		}
		childEnv := store.NewChildEnvironment(env)
		capturingEnv := env
		if sequential {
			capturingEnv = childEnv
		}
		for _, b := range bindings {
			pair, ptail, ok := store.ListToSlice(b)
			if !ok || !isNilTail(store, ptail) || len(pair) != 2 {
				return value.Value{}, formError(store, formName, "each binding must be (name (lambda|macro ...))")
			}
			sym, isSym := pair[0].AsSymbol()
			if !isSym {
				return value.Value{}, formError(store, formName, "binding name must be a symbol")
			}
			fnVal, err := buildLambdaOrMacro(store, capturingEnv, pair[1])
			if err != nil {
				return value.Value{}, err
			}
			fid, _ := fnVal.AsFunction()
			def, _ := store.GetFunction(fid)
			if (def.Kind == value.FunctionMacro) != isMacro {
				want := "lambda"
				if isMacro {
					want = "macro"
				}
				return value.Value{}, formError(store, formName, "each binding must use "+want)
			}
			if !store.DefineFunction(childEnv, sym, fnVal) {
				return value.Value{}, formError(store, formName, "duplicate binding in the same frame")
			}
		}
		return evalBody(m, childEnv, argForms[1:])
	}
}

// --- define-variable / define-function / set! / fset! ---

func specialDefineVariable(m value.Machine, env value.EnvironmentID, argForms []value.Value) (value.Value, error) {
	store := m.Store()
	if len(argForms) < 1 || len(argForms) > 2 {
		return value.Value{}, arityError(store, "define-variable", "expects (define-variable name value?)")
	}
	sym, isSym := argForms[0].AsSymbol()
	if !isSym {
		return value.Value{}, formError(store, "define-variable", "name must be a symbol")
	}
	if name, ok := store.GetSymbol(sym); ok && (value.IsConstantName(name.Name) || value.IsSpecialName(name.Name)) {
		return value.Value{}, formError(store, "define-variable", "cannot define constant or special symbol "+name.Name)
	}
	v := store.Nil()
	if len(argForms) == 2 {
		ev, err := m.Evaluate(env, argForms[1])
		if err != nil {
			return value.Value{}, err
		}
		v = ev
	}
	if !store.DefineVariable(store.RootEnv, sym, v) {
		name, _ := store.GetSymbol(sym)
		return value.Value{}, nerrors.New(store, nerrors.GenericExecution, "already-defined",
			"variable already defined at root: "+name.Name)
	}
	return value.Symbol(sym), nil
}

func specialDefineFunction(m value.Machine, env value.EnvironmentID, argForms []value.Value) (value.Value, error) {
	store := m.Store()
	if len(argForms) < 1 || len(argForms) > 2 {
		return value.Value{}, arityError(store, "define-function", "expects (define-function name value?)")
	}
	sym, isSym := argForms[0].AsSymbol()
	if !isSym {
		return value.Value{}, formError(store, "define-function", "name must be a symbol")
	}
	if name, ok := store.GetSymbol(sym); ok && value.IsConstantName(name.Name) {
		return value.Value{}, formError(store, "define-function", "cannot define constant symbol "+name.Name)
	}
	v := store.Nil()
	if len(argForms) == 2 {
		ev, err := m.Evaluate(env, argForms[1])
		if err != nil {
			return value.Value{}, err
		}
		v = ev
	}
	if !store.DefineFunction(store.RootEnv, sym, v) {
		name, _ := store.GetSymbol(sym)
		return value.Value{}, nerrors.New(store, nerrors.GenericExecution, "already-defined",
			"function already defined at root: "+name.Name)
	}
	return value.Symbol(sym), nil
}

func specialSetVariable(m value.Machine, env value.EnvironmentID, argForms []value.Value) (value.Value, error) {
	store := m.Store()
	if len(argForms) != 2 {
		return value.Value{}, arityError(store, "set!", "expects (set! name value)")
	}
	sym, isSym := argForms[0].AsSymbol()
	if !isSym {
		return value.Value{}, formError(store, "set!", "name must be a symbol")
	}
	if name, ok := store.GetSymbol(sym); ok && value.IsConstantName(name.Name) {
		return value.Value{}, formError(store, "set!", "cannot assign constant symbol "+name.Name)
	}
	v, err := m.Evaluate(env, argForms[1])
	if err != nil {
		return value.Value{}, err
	}
	if !store.SetVariable(env, sym, v) {
		name, _ := store.GetSymbol(sym)
		return value.Value{}, nerrors.New(store, nerrors.GenericExecution, "unbound-variable",
			"set!: unbound variable "+name.Name)
	}
	return v, nil
}

func specialSetFunction(m value.Machine, env value.EnvironmentID, argForms []value.Value) (value.Value, error) {
	store := m.Store()
	if len(argForms) != 2 {
		return value.Value{}, arityError(store, "fset!", "expects (fset! name value)")
	}
	sym, isSym := argForms[0].AsSymbol()
	if !isSym {
		return value.Value{}, formError(store, "fset!", "name must be a symbol")
	}
	if name, ok := store.GetSymbol(sym); ok && value.IsConstantName(name.Name) {
		return value.Value{}, formError(store, "fset!", "cannot assign constant symbol "+name.Name)
	}
	v, err := m.Evaluate(env, argForms[1])
	if err != nil {
		return value.Value{}, err
	}
	if !store.SetFunction(env, sym, v) {
		name, _ := store.GetSymbol(sym)
		return value.Value{}, nerrors.New(store, nerrors.GenericExecution, "unbound-function",
			"fset!: unbound function "+name.Name)
	}
	return v, nil
}

// --- throw / try ---

func valueToMessage(store *value.Store, v value.Value) string {
	if sid, ok := v.AsString(); ok {
		s, _ := store.GetString(sid)
		return s
	}
	return store.Print(v)
}

func specialThrow(m value.Machine, env value.EnvironmentID, argForms []value.Value) (value.Value, error) {
	store := m.Store()
	if len(argForms) > 2 {
		return value.Value{}, arityError(store, "throw", "expects (throw symbol? message?)")
	}
	sym := store.InternSymbol("generic-error")
	if len(argForms) >= 1 {
		s, isSym := argForms[0].AsSymbol()
		if !isSym {
			return value.Value{}, formError(store, "throw", "error tag must be a symbol")
		}
		sym = s
	}
	message := ""
	if len(argForms) == 2 {
		mv, err := m.Evaluate(env, argForms[1])
		if err != nil {
			return value.Value{}, err
		}
		message = valueToMessage(store, mv)
	}
	return value.Value{}, nerrors.NewSym(nerrors.Thrown, sym, message)
}

func specialTry(m value.Machine, env value.EnvironmentID, argForms []value.Value) (value.Value, error) {
	store := m.Store()
	if len(argForms) < 1 {
		return value.Value{}, arityError(store, "try", "expects (try form (catch symbol body...)...)")
	}
	result, err := m.Evaluate(env, argForms[0])
	if err == nil {
		return result, nil
	}

	var nerr *nerrors.Error
	if !stderrors.As(err, &nerr) || nerr.Kind == nerrors.Failure {
		return value.Value{}, err
	}

	for _, clause := range argForms[1:] {
		consID, isCons := clause.AsCons()
		if !isCons {
			return value.Value{}, formError(store, "try", "catch clauses must be lists")
		}
		cell, _ := store.GetCons(consID)
		headSym, isSym := cell.Car.AsSymbol()
		if !isSym {
			return value.Value{}, formError(store, "try", "expected (catch symbol body...)")
		}
		headName, _ := store.GetSymbol(headSym)
		if headName.Name != "catch" {
			return value.Value{}, formError(store, "try", "expected catch, got "+headName.Name)
		}
		rest, tail, ok := store.ListToSlice(cell.Cdr)
		if !ok || !isNilTail(store, tail) || len(rest) < 1 {
			return value.Value{}, formError(store, "try", "expected (catch symbol body...)")
		}
		catchSym, isSym := rest[0].AsSymbol()
		if !isSym {
			return value.Value{}, formError(store, "try", "catch tag must be a symbol")
		}
		if catchSym == nerr.Symbol {
			return evalBody(m, env, rest[1:])
		}
	}
	return value.Value{}, err
}

// --- while / dolist / dotimes ---

func loopBody(m value.Machine, env value.EnvironmentID, body []value.Value) (brk bool, err error) {
	_, err = evalBody(m, env, body)
	if err == nil {
		return false, nil
	}
	if nerrors.Is(err, nerrors.Break) {
		return true, nil
	}
	if nerrors.Is(err, nerrors.Continue) {
		return false, nil
	}
	return false, err
}

func specialWhile(m value.Machine, env value.EnvironmentID, argForms []value.Value) (value.Value, error) {
	store := m.Store()
	if len(argForms) < 1 {
		return value.Value{}, arityError(store, "while", "expects (while condition body...)")
	}
	cond := argForms[0]
	body := argForms[1:]
	for {
		cv, err := m.Evaluate(env, cond)
		if err != nil {
			return value.Value{}, err
		}
		if !store.Truthy(cv) {
			break
		}
		brk, err := loopBody(m, env, body)
		if err != nil {
			return value.Value{}, err
		}
		if brk {
			break
		}
	}
	return store.Nil(), nil
}

func specialDolist(m value.Machine, env value.EnvironmentID, argForms []value.Value) (value.Value, error) {
	store := m.Store()
	if len(argForms) < 1 {
		return value.Value{}, arityError(store, "dolist", "expects ((var list-expr) body...)")
	}
	header, tail, ok := store.ListToSlice(argForms[0])
	if !ok || !isNilTail(store, tail) || len(header) != 2 {
		return value.Value{}, formError(store, "dolist", "expects (var list-expr)")
	}
	sym, isSym := header[0].AsSymbol()
	if !isSym {
		return value.Value{}, formError(store, "dolist", "loop variable must be a symbol")
	}
	listVal, err := m.Evaluate(env, header[1])
	if err != nil {
		return value.Value{}, err
	}
	elements, listTail, ok := store.ListToSlice(listVal)
	if !ok || !isNilTail(store, listTail) {
		return value.Value{}, formError(store, "dolist", "list-expr must evaluate to a proper list")
	}
	body := argForms[1:]
	for _, el := range elements {
		childEnv := store.NewChildEnvironment(env)
		store.DefineVariableForce(childEnv, sym, el)
		brk, err := loopBody(m, childEnv, body)
		if err != nil {
			return value.Value{}, err
		}
		if brk {
			break
		}
	}
	return store.Nil(), nil
}

func specialDotimes(m value.Machine, env value.EnvironmentID, argForms []value.Value) (value.Value, error) {
	store := m.Store()
	if len(argForms) < 1 {
		return value.Value{}, arityError(store, "dotimes", "expects ((var count-expr) body...)")
	}
	header, tail, ok := store.ListToSlice(argForms[0])
	if !ok || !isNilTail(store, tail) || len(header) != 2 {
		return value.Value{}, formError(store, "dotimes", "expects (var count-expr)")
	}
	sym, isSym := header[0].AsSymbol()
	if !isSym {
		return value.Value{}, formError(store, "dotimes", "loop variable must be a symbol")
	}
	countVal, err := m.Evaluate(env, header[1])
	if err != nil {
		return value.Value{}, err
	}
	n, isInt := countVal.AsInteger()
	if !isInt {
		return value.Value{}, formError(store, "dotimes", "count-expr must evaluate to an integer")
	}
	body := argForms[1:]
	for i := int64(0); i < n; i++ {
		childEnv := store.NewChildEnvironment(env)
		store.DefineVariableForce(childEnv, sym, value.Integer(i))
		brk, err := loopBody(m, childEnv, body)
		if err != nil {
			return value.Value{}, err
		}
		if brk {
			break
		}
	}
	return store.Nil(), nil
}

// --- with-this ---

func specialWithThis(m value.Machine, env value.EnvironmentID, argForms []value.Value) (value.Value, error) {
	store := m.Store()
	if len(argForms) < 1 {
		return value.Value{}, arityError(store, "with-this", "expects (with-this receiver-expr body...)")
	}
	receiver, err := m.Evaluate(env, argForms[0])
	if err != nil {
		return value.Value{}, err
	}
	childEnv := store.NewChildEnvironment(env)
	store.DefineVariableForce(childEnv, store.InternSymbol("this"), receiver)
	if objID, isObj := receiver.AsObject(); isObj {
		if obj, ok := store.GetObject(objID); ok && obj.HasPrototype {
			store.DefineVariableForce(childEnv, store.InternSymbol("super"), value.Object(obj.Prototype))
		}
	}
	return evalBody(m, childEnv, argForms[1:])
}

// --- quasiquote ---

func specialQuasiquote(m value.Machine, env value.EnvironmentID, argForms []value.Value) (value.Value, error) {
	store := m.Store()
	if len(argForms) != 1 {
		return value.Value{}, arityError(store, "quasiquote", "expects exactly one operand")
	}
	return quasi(m, env, argForms[0])
}

func symbolNamed(store *value.Store, v value.Value, name string) bool {
	sym, isSym := v.AsSymbol()
	if !isSym {
		return false
	}
	s, ok := store.GetSymbol(sym)
	return ok && s.Name == name
}

// quasi implements a single nesting level of quasiquote: `,x` evaluates
// x in env, `,@x` splices the (list-valued) evaluation of x into the
// enclosing list, and everything else is copied structurally, recursing
// into cons cells and object-literal property values. Nested
// quasiquote/unquote depth tracking is not implemented: nested
// quasiquotes are not needed for this interpreter's scripting use case.
func quasi(m value.Machine, env value.EnvironmentID, v value.Value) (value.Value, error) {
	store := m.Store()
	if objID, isObj := v.AsObject(); isObj {
		obj, _ := store.GetObject(objID)
		out := store.AllocateObject(obj.Prototype, obj.HasPrototype)
		for _, k := range obj.Keys() {
			pv, _ := obj.GetLocal(k)
			qv, err := quasi(m, env, pv)
			if err != nil {
				return value.Value{}, err
			}
			store.SetProperty(out, k, qv)
		}
		return value.Object(out), nil
	}
	consID, isCons := v.AsCons()
	if !isCons {
		return v, nil
	}
	cell, _ := store.GetCons(consID)
	if symbolNamed(store, cell.Car, "unquote") {
		operand, tail, ok := store.ListToSlice(cell.Cdr)
		if !ok || !isNilTail(store, tail) || len(operand) != 1 {
			return value.Value{}, formError(store, "unquote", "expects exactly one operand")
		}
		return m.Evaluate(env, operand[0])
	}

	elements, tail, ok := store.ListToSlice(v)
	if !ok {
		return value.Value{}, formError(store, "quasiquote", "cannot quasiquote a cyclic structure")
	}

	result := make([]value.Value, 0, len(elements))
	for _, el := range elements {
		if elConsID, isElCons := el.AsCons(); isElCons {
			elCell, _ := store.GetCons(elConsID)
			if symbolNamed(store, elCell.Car, "unquote-splicing") {
				operand, otail, ok := store.ListToSlice(elCell.Cdr)
				if !ok || !isNilTail(store, otail) || len(operand) != 1 {
					return value.Value{}, formError(store, "unquote-splicing", "expects exactly one operand")
				}
				spliced, err := m.Evaluate(env, operand[0])
				if err != nil {
					return value.Value{}, err
				}
				items, itail, ok := store.ListToSlice(spliced)
				if !ok || !isNilTail(store, itail) {
					return value.Value{}, formError(store, "unquote-splicing", "spliced value must be a proper list")
				}
				result = append(result, items...)
				continue
			}
		}
		qv, err := quasi(m, env, el)
		if err != nil {
			return value.Value{}, err
		}
		result = append(result, qv)
	}

	tailV := tail
	if !isNilTail(store, tail) {
		qt, err := quasi(m, env, tail)
		if err != nil {
			return value.Value{}, err
		}
		tailV = qt
	}
	return store.List(tailV, result...), nil
}

// --- match ---

func specialMatch(m value.Machine, env value.EnvironmentID, argForms []value.Value) (value.Value, error) {
	store := m.Store()
	if len(argForms) < 1 {
		return value.Value{}, arityError(store, "match", "expects (match expr (pattern body...)...)")
	}
	subject, err := m.Evaluate(env, argForms[0])
	if err != nil {
		return value.Value{}, err
	}
	for _, clause := range argForms[1:] {
		parts, tail, ok := store.ListToSlice(clause)
		if !ok || !isNilTail(store, tail) || len(parts) < 1 {
			return value.Value{}, formError(store, "match", "each clause must be (pattern body...)")
		}
		childEnv := store.NewChildEnvironment(env)
		if matchPattern(store, childEnv, parts[0], subject) {
			return evalBody(m, childEnv, parts[1:])
		}
	}
	return store.Nil(), nil
}

// matchPattern destructures pattern against subject, binding pattern
// variables into env as it goes. It returns false (without partially
// undoing any bindings already made — the caller discards env on
// failure) as soon as a sub-pattern fails to match.
func matchPattern(store *value.Store, env value.EnvironmentID, pattern, subject value.Value) bool {
	if sym, isSym := pattern.AsSymbol(); isSym {
		name, _ := store.GetSymbol(sym)
		switch name.Name {
		case "_":
			return true
		case "nil":
			s, ok := subject.AsSymbol()
			return ok && s == store.NilSymbol
		case "#t":
			b, ok := subject.AsBoolean()
			return ok && b
		case "#f":
			b, ok := subject.AsBoolean()
			return ok && !b
		default:
			store.DefineVariableForce(env, sym, subject)
			return true
		}
	}

	if _, isCons := pattern.AsCons(); isCons {
		return matchListPattern(store, env, pattern, subject)
	}

	if patObjID, isObj := pattern.AsObject(); isObj {
		subObjID, isSubObj := subject.AsObject()
		if !isSubObj {
			return false
		}
		patObj, _ := store.GetObject(patObjID)
		for _, k := range patObj.Keys() {
			patVal, _ := patObj.GetLocal(k)
			subVal, found := store.GetProperty(subObjID, k)
			if !found || !matchPattern(store, env, patVal, subVal) {
				return false
			}
		}
		return true
	}

	return store.DeepEqual(pattern, subject)
}

// matchListPattern matches a cons-chain pattern against subject,
// supporting a trailing `#rest tailPattern` pair that collects every
// remaining element (mirroring the argument model's Rest section).
func matchListPattern(store *value.Store, env value.EnvironmentID, pattern, subject value.Value) bool {
	patElems, patTail, ok := store.ListToSlice(pattern)
	if !ok {
		return false
	}

	restIdx := -1
	for i, el := range patElems {
		if symbolNamed(store, el, "#rest") {
			restIdx = i
			break
		}
	}

	var subElems []value.Value
	var subTail value.Value
	if _, isSubCons := subject.AsCons(); isSubCons {
		se, st, ok := store.ListToSlice(subject)
		if !ok {
			return false
		}
		subElems, subTail = se, st
	} else if sym, ok := subject.AsSymbol(); ok && sym == store.NilSymbol {
		subTail = subject
	} else {
		return false
	}

	if restIdx >= 0 {
		if restIdx+1 >= len(patElems) {
			return false
		}
		restPattern := patElems[restIdx+1]
		fixed := patElems[:restIdx]
		if len(subElems) < len(fixed) {
			return false
		}
		for i, p := range fixed {
			if !matchPattern(store, env, p, subElems[i]) {
				return false
			}
		}
		restList := store.List(subTail, subElems[len(fixed):]...)
		return matchPattern(store, env, restPattern, restList)
	}

	if len(patElems) != len(subElems) {
		return false
	}
	for i, p := range patElems {
		if !matchPattern(store, env, p, subElems[i]) {
			return false
		}
	}
	if !isNilTail(store, patTail) {
		return matchPattern(store, env, patTail, subTail)
	}
	return isNilTail(store, subTail)
}
