package value

import "golang.org/x/text/unicode/norm"

// stringArena interns immutable UTF-8 strings. Interning keys are
// Unicode-normalized (NFC) before lookup, which buys the property that
// two differently-composed but visually identical spellings (e.g. "é"
// as one code point vs. "e" + combining acute) intern to the same
// StringID.
type stringArena struct {
	arena    *arena[StringID, string]
	interned map[string]StringID
}

func newStringArena() *stringArena {
	return &stringArena{
		arena:    newArena[StringID, string](),
		interned: make(map[string]StringID),
	}
}

func (a *stringArena) Intern(s string) StringID {
	normalized := norm.NFC.String(s)
	if id, ok := a.interned[normalized]; ok {
		return id
	}
	id := a.arena.allocate(normalized)
	a.interned[normalized] = id
	return id
}

func (a *stringArena) Get(id StringID) (string, bool) { return a.arena.get(id) }

func (a *stringArena) free(id StringID) {
	if s, ok := a.arena.get(id); ok {
		delete(a.interned, s)
	}
	a.arena.free(id)
}
