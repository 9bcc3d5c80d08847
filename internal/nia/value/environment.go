package value

// Environment is one lexical frame: separate variable and function
// namespaces (Lisp-2) plus a parent link. Keeping two maps instead of
// one tagged map is what makes `(list ...)` as a call and `list` as a
// variable never collide.
type Environment struct {
	Variables map[SymbolID]Value
	Functions map[SymbolID]Value
	Parent    EnvironmentID
	HasParent bool
	Children  []EnvironmentID
}

func newEnvironment(parent EnvironmentID, hasParent bool) Environment {
	return Environment{
		Variables: make(map[SymbolID]Value),
		Functions: make(map[SymbolID]Value),
		Parent:    parent,
		HasParent: hasParent,
	}
}

type environmentArena struct {
	arena *arena[EnvironmentID, Environment]
}

func newEnvironmentArena() *environmentArena {
	return &environmentArena{arena: newArena[EnvironmentID, Environment]()}
}

// NewRootEnvironment allocates the outermost environment.
func (s *Store) NewRootEnvironment() EnvironmentID {
	return s.environments.arena.allocate(newEnvironment(0, false))
}

// NewChildEnvironment allocates an environment enclosed by parent and
// records it as one of parent's children. The Children list is
// bookkeeping only; the garbage collector does not follow it.
func (s *Store) NewChildEnvironment(parent EnvironmentID) EnvironmentID {
	id := s.environments.arena.allocate(newEnvironment(parent, true))
	if env, ok := s.environments.arena.get(parent); ok {
		env.Children = append(env.Children, id)
		s.environments.arena.set(parent, env)
	}
	return id
}

// GetEnvironment fetches an environment by identifier.
func (s *Store) GetEnvironment(id EnvironmentID) (Environment, bool) {
	return s.environments.arena.get(id)
}

// HasVariable reports whether sym is bound in env or any ancestor.
func (s *Store) HasVariable(env EnvironmentID, sym SymbolID) bool {
	_, ok := s.LookupVariable(env, sym)
	return ok
}

// LookupVariable walks the parent chain looking for sym in the variable
// namespace.
func (s *Store) LookupVariable(env EnvironmentID, sym SymbolID) (Value, bool) {
	cur := env
	for {
		e, ok := s.environments.arena.get(cur)
		if !ok {
			return Value{}, false
		}
		if v, found := e.Variables[sym]; found {
			return v, true
		}
		if !e.HasParent {
			return Value{}, false
		}
		cur = e.Parent
	}
}

// DefineVariable binds sym in env's own frame. It fails (returns false)
// if sym is already bound in this exact frame — redefinition is an
// error, not a shadow.
func (s *Store) DefineVariable(env EnvironmentID, sym SymbolID, v Value) bool {
	e, ok := s.environments.arena.get(env)
	if !ok {
		return false
	}
	if _, exists := e.Variables[sym]; exists {
		return false
	}
	e.Variables[sym] = v
	s.environments.arena.set(env, e)
	return true
}

// SetVariable finds the nearest ancestor (including env itself) that
// already binds sym and updates it there. It fails if sym is unbound
// anywhere in the chain.
func (s *Store) SetVariable(env EnvironmentID, sym SymbolID, v Value) bool {
	owner, ok := s.LookupEnvironmentByVariable(env, sym)
	if !ok {
		return false
	}
	e, _ := s.environments.arena.get(owner)
	e.Variables[sym] = v
	s.environments.arena.set(owner, e)
	return true
}

// LookupEnvironmentByVariable returns the identifier of the frame that
// owns sym's variable binding, used by set! to mutate the correct frame.
func (s *Store) LookupEnvironmentByVariable(env EnvironmentID, sym SymbolID) (EnvironmentID, bool) {
	cur := env
	for {
		e, ok := s.environments.arena.get(cur)
		if !ok {
			return 0, false
		}
		if _, found := e.Variables[sym]; found {
			return cur, true
		}
		if !e.HasParent {
			return 0, false
		}
		cur = e.Parent
	}
}

// The Function-namespace counterparts mirror the Variable operations
// exactly, maintaining the Lisp-2 split.

func (s *Store) HasFunction(env EnvironmentID, sym SymbolID) bool {
	_, ok := s.LookupFunction(env, sym)
	return ok
}

func (s *Store) LookupFunction(env EnvironmentID, sym SymbolID) (Value, bool) {
	cur := env
	for {
		e, ok := s.environments.arena.get(cur)
		if !ok {
			return Value{}, false
		}
		if v, found := e.Functions[sym]; found {
			return v, true
		}
		if !e.HasParent {
			return Value{}, false
		}
		cur = e.Parent
	}
}

func (s *Store) DefineFunction(env EnvironmentID, sym SymbolID, v Value) bool {
	e, ok := s.environments.arena.get(env)
	if !ok {
		return false
	}
	if _, exists := e.Functions[sym]; exists {
		return false
	}
	e.Functions[sym] = v
	s.environments.arena.set(env, e)
	return true
}

func (s *Store) SetFunction(env EnvironmentID, sym SymbolID, v Value) bool {
	owner, ok := s.LookupEnvironmentByFunction(env, sym)
	if !ok {
		return false
	}
	e, _ := s.environments.arena.get(owner)
	e.Functions[sym] = v
	s.environments.arena.set(owner, e)
	return true
}

func (s *Store) LookupEnvironmentByFunction(env EnvironmentID, sym SymbolID) (EnvironmentID, bool) {
	cur := env
	for {
		e, ok := s.environments.arena.get(cur)
		if !ok {
			return 0, false
		}
		if _, found := e.Functions[sym]; found {
			return cur, true
		}
		if !e.HasParent {
			return 0, false
		}
		cur = e.Parent
	}
}

// DefineVariableForce overwrites sym's binding in env's own frame
// regardless of whether it already exists. Used internally by argument
// binding, which writes into a freshly allocated environment where
// duplicate parameter names are a parser-time concern, not a runtime one.
func (s *Store) DefineVariableForce(env EnvironmentID, sym SymbolID, v Value) {
	e, ok := s.environments.arena.get(env)
	if !ok {
		return
	}
	e.Variables[sym] = v
	s.environments.arena.set(env, e)
}

// DefineFunctionForce is DefineVariableForce's function-namespace twin,
// used when binding macro parameters into both namespaces.
func (s *Store) DefineFunctionForce(env EnvironmentID, sym SymbolID, v Value) {
	e, ok := s.environments.arena.get(env)
	if !ok {
		return
	}
	e.Functions[sym] = v
	s.environments.arena.set(env, e)
}
