package value

// Symbol is {name, gensym_id}. Two symbols are equal iff both
// fields match; the arena interns by name only when gensym_id is 0, so
// gensym-minted symbols never collide with an interned one of the same
// spelling.
type Symbol struct {
	Name     string
	GensymID int64
}

// constantNames may never be the target of an assignment (set!/fset!) or
// of define — they denote nil, true, and false.
var constantNames = map[string]bool{
	"nil": true,
	"#t":  true,
	"#f":  true,
}

// specialNames mark parameter-list punctuation; a symbol of one of these
// names is rejected as a variable or function name by the argument
// parser.
var specialNames = map[string]bool{
	"#opt":  true,
	"#rest": true,
	"#keys": true,
}

// IsConstantName reports whether name denotes a constant symbol.
func IsConstantName(name string) bool { return constantNames[name] }

// IsSpecialName reports whether name is special parameter-list syntax.
func IsSpecialName(name string) bool { return specialNames[name] }

type symbolArena struct {
	arena         *arena[SymbolID, Symbol]
	internedByName map[string]SymbolID
	gensymCounter  int64
}

func newSymbolArena() *symbolArena {
	return &symbolArena{
		arena:          newArena[SymbolID, Symbol](),
		internedByName: make(map[string]SymbolID),
	}
}

// Intern returns the identifier for the plain (gensym_id == 0) symbol
// named name, allocating it the first time it is seen.
func (a *symbolArena) Intern(name string) SymbolID {
	if id, ok := a.internedByName[name]; ok {
		return id
	}
	id := a.arena.allocate(Symbol{Name: name})
	a.internedByName[name] = id
	return id
}

// Gensym mints a fresh symbol that is never equal to any interned or
// previously gensym'd symbol, even one sharing the same base name.
func (a *symbolArena) Gensym(base string) SymbolID {
	a.gensymCounter++
	return a.arena.allocate(Symbol{Name: base, GensymID: a.gensymCounter})
}

func (a *symbolArena) Get(id SymbolID) (Symbol, bool) { return a.arena.get(id) }

func (a *symbolArena) free(id SymbolID) {
	if sym, ok := a.arena.get(id); ok && sym.GensymID == 0 {
		delete(a.internedByName, sym.Name)
	}
	a.arena.free(id)
}
