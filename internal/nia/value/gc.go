package value

import "time"

// GCStats reports what one collection cycle freed, useful for tests and
// diagnostics.
type GCStats struct {
	FreedSymbols, FreedKeywords, FreedStrings int
	FreedCons, FreedObjects, FreedFunctions   int
	FreedEnvironments                        int
}

type marks struct {
	symbols      map[SymbolID]bool
	keywords     map[KeywordID]bool
	strings      map[StringID]bool
	cons         map[ConsID]bool
	objects      map[ObjectID]bool
	functions    map[FunctionID]bool
	environments map[EnvironmentID]bool
}

func newMarks() *marks {
	return &marks{
		symbols:      make(map[SymbolID]bool),
		keywords:     make(map[KeywordID]bool),
		strings:      make(map[StringID]bool),
		cons:         make(map[ConsID]bool),
		objects:      make(map[ObjectID]bool),
		functions:    make(map[FunctionID]bool),
		environments: make(map[EnvironmentID]bool),
	}
}

// CollectGarbage runs one mark-and-sweep cycle. Roots always
// include the root environment, the nil/#t/#f symbols, and the
// key-argument exclusive sentinel; extraRoots and extraEnvs let the
// caller (the evaluator, which owns the call stack and any environment
// it is currently returned into but not yet released) add whatever else
// must survive this cycle.
func (s *Store) CollectGarbage(extraRoots []Value, extraEnvs []EnvironmentID) GCStats {
	m := newMarks()

	m.markEnv(s, s.RootEnv)
	m.markSymbol(s.NilSymbol)
	m.markSymbol(s.TrueName)
	m.markSymbol(s.FalseName)
	m.markValue(s, s.KeyExclusive)

	for _, env := range extraEnvs {
		m.markEnv(s, env)
	}
	for _, v := range extraRoots {
		m.markValue(s, v)
	}

	return s.sweep(m)
}

func (m *marks) markSymbol(id SymbolID) {
	m.symbols[id] = true
}

func (m *marks) markKeyword(id KeywordID) {
	m.keywords[id] = true
}

func (m *marks) markString(id StringID) {
	m.strings[id] = true
}

func (m *marks) markEnv(s *Store, id EnvironmentID) {
	if m.environments[id] {
		return
	}
	m.environments[id] = true
	env, ok := s.GetEnvironment(id)
	if !ok {
		return
	}
	if env.HasParent {
		m.markEnv(s, env.Parent)
	}
	for sym, v := range env.Variables {
		m.markSymbol(sym)
		m.markValue(s, v)
	}
	for sym, v := range env.Functions {
		m.markSymbol(sym)
		m.markValue(s, v)
	}
}

func (m *marks) markValue(s *Store, v Value) {
	switch v.Kind() {
	case KindString:
		id, _ := v.AsString()
		m.markString(id)
	case KindSymbol:
		id, _ := v.AsSymbol()
		m.markSymbol(id)
	case KindKeyword:
		id, _ := v.AsKeyword()
		m.markKeyword(id)
	case KindCons:
		id, _ := v.AsCons()
		if m.cons[id] {
			return
		}
		m.cons[id] = true
		cell, ok := s.GetCons(id)
		if !ok {
			return
		}
		m.markValue(s, cell.Car)
		m.markValue(s, cell.Cdr)
	case KindObject:
		id, _ := v.AsObject()
		if m.objects[id] {
			return
		}
		m.objects[id] = true
		obj, ok := s.GetObject(id)
		if !ok {
			return
		}
		for _, k := range obj.Keys() {
			m.markSymbol(k)
			val, _ := obj.getLocal(k)
			m.markValue(s, val)
		}
		if obj.HasPrototype {
			m.markValue(s, Object(obj.Prototype))
		}
	case KindFunction:
		id, _ := v.AsFunction()
		if m.functions[id] {
			return
		}
		m.functions[id] = true
		fn, ok := s.GetFunction(id)
		if !ok {
			return
		}
		if fn.Kind == FunctionInterpreted || fn.Kind == FunctionMacro {
			m.markEnv(s, fn.CapturedEnv)
			for _, p := range fn.Params.Ordinary {
				m.markSymbol(p)
			}
			for _, p := range fn.Params.Optional {
				m.markSymbol(p.Name)
				if p.HasDefault {
					m.markValue(s, p.Default)
				}
				if p.HasProvidedFlag {
					m.markSymbol(p.ProvidedFlag)
				}
			}
			if fn.Params.HasRest {
				m.markSymbol(fn.Params.Rest)
			}
			for _, p := range fn.Params.Key {
				m.markSymbol(p.Name)
				if p.HasDefault {
					m.markValue(s, p.Default)
				}
				if p.HasProvidedFlag {
					m.markSymbol(p.ProvidedFlag)
				}
			}
			for _, form := range fn.Body {
				m.markValue(s, form)
			}
		}
	}
}

func (s *Store) sweep(m *marks) GCStats {
	var stats GCStats
	for _, id := range s.symbols.arena.ids() {
		if !m.symbols[id] {
			s.symbols.free(id)
			stats.FreedSymbols++
		}
	}
	for _, id := range s.keywords.arena.ids() {
		if !m.keywords[id] {
			s.keywords.free(id)
			stats.FreedKeywords++
		}
	}
	for _, id := range s.strings.arena.ids() {
		if !m.strings[id] {
			s.strings.free(id)
			stats.FreedStrings++
		}
	}
	for _, id := range s.cons.arena.ids() {
		if !m.cons[id] {
			s.cons.free(id)
			stats.FreedCons++
		}
	}
	for _, id := range s.objects.arena.ids() {
		if !m.objects[id] {
			s.objects.free(id)
			stats.FreedObjects++
		}
	}
	for _, id := range s.functions.arena.ids() {
		if !m.functions[id] {
			s.functions.free(id)
			stats.FreedFunctions++
		}
	}
	for _, id := range s.environments.arena.ids() {
		if !m.environments[id] {
			s.environments.free(id)
			stats.FreedEnvironments++
		}
	}
	return stats
}

// Collector paces garbage collection by wall-clock time between
// top-level forms: a naive 1-5s period is sufficient, and the collector
// is only ever invoked at a safe point between top-level forms, never
// mid-construction of an as-yet-unattached cons/object.
type Collector struct {
	Store  *Store
	Period time.Duration
	last   time.Time
}

// NewCollector creates a pacer for store that fires at most once per
// period.
func NewCollector(store *Store, period time.Duration) *Collector {
	return &Collector{Store: store, Period: period, last: time.Now()}
}

// MaybeCollect runs a collection if the configured period has elapsed
// since the last one, returning the stats and whether a collection ran.
func (c *Collector) MaybeCollect(extraRoots []Value, extraEnvs []EnvironmentID) (GCStats, bool) {
	now := time.Now()
	if now.Sub(c.last) < c.Period {
		return GCStats{}, false
	}
	c.last = now
	return c.Store.CollectGarbage(extraRoots, extraEnvs), true
}

// ForceCollect runs a collection immediately regardless of pacing,
// resetting the pacing clock.
func (c *Collector) ForceCollect(extraRoots []Value, extraEnvs []EnvironmentID) GCStats {
	c.last = time.Now()
	return c.Store.CollectGarbage(extraRoots, extraEnvs)
}
