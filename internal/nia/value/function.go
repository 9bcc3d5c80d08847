package value

// FunctionKind selects one of the four function flavors: native
// builtin, interpreted closure, macro, or special form.
type FunctionKind uint8

const (
	FunctionBuiltin FunctionKind = iota
	FunctionInterpreted
	FunctionMacro
	FunctionSpecialForm
)

// NativeFn is the signature shared by Builtin and SpecialForm functions.
// Builtins receive already-evaluated arguments; special forms receive
// the raw, unevaluated argument Values — the distinction is enforced by
// the evaluator's dispatch, not by this signature.
type NativeFn func(m Machine, env EnvironmentID, args []Value) (Value, error)

// Param describes one Optional or Key parameter: a name, an optional
// default expression (evaluated at call time in the callee's
// environment when the caller omits a value), and an optional
// "provided" flag name bound to a boolean recording whether the caller
// supplied a value.
type Param struct {
	Name            SymbolID
	HasDefault      bool
	Default         Value
	HasProvidedFlag bool
	ProvidedFlag    SymbolID
}

// Arguments is the four-section ordered parameter list: required
// Ordinary names, Optional parameters, at most one Rest parameter, and
// Key parameters supplied as `:keyword value` pairs.
type Arguments struct {
	Ordinary []SymbolID
	Optional []Param
	HasRest  bool
	Rest     SymbolID
	Key      []Param
}

// RequiredLen is the number of values a call must supply at minimum.
func (a Arguments) RequiredLen() int { return len(a.Ordinary) }

// Function is the sum type over the four call flavors. Only the fields
// relevant to Kind are meaningful; the rest are zero.
type Function struct {
	Kind FunctionKind

	// Name is the symbol this function was registered or defined under,
	// kept for diagnostics (stack frames, error messages); it is not
	// part of the function's identity.
	Name string

	// Builtin / SpecialForm.
	Native NativeFn

	// Interpreted / Macro.
	CapturedEnv EnvironmentID
	Params      Arguments
	Body        []Value
}

type functionArena struct {
	arena *arena[FunctionID, Function]
}

func newFunctionArena() *functionArena {
	return &functionArena{arena: newArena[FunctionID, Function]()}
}

func (a *functionArena) Allocate(fn Function) FunctionID { return a.arena.allocate(fn) }

func (a *functionArena) Get(id FunctionID) (Function, bool) { return a.arena.get(id) }

func (a *functionArena) free(id FunctionID) { a.arena.free(id) }
