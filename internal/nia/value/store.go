package value

import (
	"io"
	"os"
)

// Store owns every arena and the handful of well-known values the rest
// of the interpreter treats as always-live roots: the nil symbol (which
// doubles as the empty list and boolean false), and the exclusive
// sentinel used to detect "caller did not supply this key argument"
// during argument binding.
type Store struct {
	symbols      *symbolArena
	keywords     *keywordArena
	strings      *stringArena
	cons         *consArena
	objects      *objectArena
	functions    *functionArena
	environments *environmentArena

	NilSymbol SymbolID
	TrueName  SymbolID
	FalseName SymbolID

	// KeyExclusive is bound to every Key parameter before keyword
	// consumption begins; any parameter still holding it afterward
	// received no value from the caller.
	KeyExclusive Value

	RootEnv EnvironmentID

	// Output is where the print/println builtins write. It defaults to
	// os.Stdout; SetOutput redirects it.
	Output io.Writer
}

// NewStore allocates a fresh, empty universe: all arenas, the
// well-known symbols, and a root environment.
func NewStore() *Store {
	s := &Store{
		symbols:      newSymbolArena(),
		keywords:     newKeywordArena(),
		strings:      newStringArena(),
		cons:         newConsArena(),
		objects:      newObjectArena(),
		functions:    newFunctionArena(),
		environments: newEnvironmentArena(),
		Output:       os.Stdout,
	}
	s.NilSymbol = s.symbols.Intern("nil")
	s.TrueName = s.symbols.Intern("#t")
	s.FalseName = s.symbols.Intern("#f")
	// The sentinel is a fresh, otherwise-unreachable object: no reader input
	// can ever construct a Value equal to it, which is exactly the
	// property a sentinel needs.
	sentinelObj := s.objects.Allocate(0, false)
	s.KeyExclusive = Object(sentinelObj)
	s.RootEnv = s.NewRootEnvironment()
	return s
}

// Nil returns the nil symbol Value — the empty list and false-list
// terminator.
func (s *Store) Nil() Value { return Symbol(s.NilSymbol) }

// SetOutput redirects where print/println write.
func (s *Store) SetOutput(w io.Writer) { s.Output = w }

// InternSymbol interns a plain symbol by name.
func (s *Store) InternSymbol(name string) SymbolID { return s.symbols.Intern(name) }

// Gensym mints a fresh symbol never equal to any other.
func (s *Store) Gensym(base string) SymbolID { return s.symbols.Gensym(base) }

// GetSymbol fetches a symbol's {name, gensym_id} pair.
func (s *Store) GetSymbol(id SymbolID) (Symbol, bool) { return s.symbols.Get(id) }

// InternKeyword interns a keyword by name.
func (s *Store) InternKeyword(name string) KeywordID { return s.keywords.Intern(name) }

// GetKeyword fetches a keyword's name.
func (s *Store) GetKeyword(id KeywordID) (string, bool) { return s.keywords.Get(id) }

// InternString interns an immutable string.
func (s *Store) InternString(str string) StringID { return s.strings.Intern(str) }

// GetString fetches an interned string's contents.
func (s *Store) GetString(id StringID) (string, bool) { return s.strings.Get(id) }

// AllocateCons allocates a new pair cell.
func (s *Store) AllocateCons(car, cdr Value) ConsID { return s.cons.Allocate(car, cdr) }

// GetCons fetches a pair cell's contents.
func (s *Store) GetCons(id ConsID) (Cons, bool) { return s.cons.Get(id) }

// SetCar / SetCdr mutate a pair cell in place.
func (s *Store) SetCar(id ConsID, v Value) bool { return s.cons.SetCar(id, v) }
func (s *Store) SetCdr(id ConsID, v Value) bool { return s.cons.SetCdr(id, v) }

// AllocateObject allocates a new object, optionally chained to a
// prototype.
func (s *Store) AllocateObject(prototype ObjectID, hasPrototype bool) ObjectID {
	return s.objects.Allocate(prototype, hasPrototype)
}

// GetObject fetches an object's property map and prototype.
func (s *Store) GetObject(id ObjectID) (Object, bool) { return s.objects.Get(id) }

// AllocateFunction allocates a new function value of any flavor.
func (s *Store) AllocateFunction(fn Function) FunctionID { return s.functions.Allocate(fn) }

// GetFunction fetches a function's definition.
func (s *Store) GetFunction(id FunctionID) (Function, bool) { return s.functions.Get(id) }
