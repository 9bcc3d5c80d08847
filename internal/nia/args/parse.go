package args

import (
	"fmt"

	"github.com/nialang/nia/internal/nia/value"
)

// Parse reads a parameter list form — e.g.
// (a b #opt (c 1) d #rest r #keys (e 2) f) — into a value.Arguments.
// #opt, #rest, and #keys are marker symbols that switch which section
// subsequent names belong to; an Optional or Key entry is either a bare
// symbol (no default), a two-element list (name default-expr), or a
// three-element list (name default-expr provided-flag-name).
func Parse(store *value.Store, paramList value.Value) (value.Arguments, error) {
	elements, tail, ok := store.ListToSlice(paramList)
	if !ok {
		return value.Arguments{}, fmt.Errorf("args: parameter list is not a proper list")
	}
	if sym, isSym := tail.AsSymbol(); !isSym || sym != store.NilSymbol {
		return value.Arguments{}, fmt.Errorf("args: parameter list must be a proper list")
	}

	const (
		sectionOrdinary = iota
		sectionOptional
		sectionRest
		sectionKey
	)
	section := sectionOrdinary
	var out value.Arguments
	restSeen := false

	for _, el := range elements {
		if sym, isSym := el.AsSymbol(); isSym {
			if name, ok := store.GetSymbol(sym); ok {
				switch name.Name {
				case "#opt":
					section = sectionOptional
					continue
				case "#rest":
					section = sectionRest
					continue
				case "#keys":
					section = sectionKey
					continue
				}
			}
		}

		switch section {
		case sectionOrdinary:
			sym, isSym := el.AsSymbol()
			if !isSym {
				return value.Arguments{}, fmt.Errorf("args: ordinary parameter must be a symbol")
			}
			if err := rejectReservedParamName(store, sym); err != nil {
				return value.Arguments{}, err
			}
			out.Ordinary = append(out.Ordinary, sym)
		case sectionOptional:
			p, err := parseParam(store, el)
			if err != nil {
				return value.Arguments{}, err
			}
			if err := rejectReservedParamName(store, p.Name); err != nil {
				return value.Arguments{}, err
			}
			out.Optional = append(out.Optional, p)
		case sectionKey:
			p, err := parseParam(store, el)
			if err != nil {
				return value.Arguments{}, err
			}
			if err := rejectReservedParamName(store, p.Name); err != nil {
				return value.Arguments{}, err
			}
			out.Key = append(out.Key, p)
		case sectionRest:
			if restSeen {
				return value.Arguments{}, fmt.Errorf("args: only one #rest parameter is allowed")
			}
			sym, isSym := el.AsSymbol()
			if !isSym {
				return value.Arguments{}, fmt.Errorf("args: #rest parameter must be a symbol")
			}
			if err := rejectReservedParamName(store, sym); err != nil {
				return value.Arguments{}, err
			}
			out.HasRest = true
			out.Rest = sym
			restSeen = true
		}
	}

	return out, nil
}

// rejectReservedParamName rejects constants and special symbols as
// parameter names: nil/#t/#f can never be shadowed by a binding, and
// #opt/#rest/#keys are parameter-list punctuation, not names.
func rejectReservedParamName(store *value.Store, sym value.SymbolID) error {
	name, ok := store.GetSymbol(sym)
	if !ok {
		return nil
	}
	if value.IsConstantName(name.Name) || value.IsSpecialName(name.Name) {
		return fmt.Errorf("args: %q cannot be used as a parameter name", name.Name)
	}
	return nil
}

// parseParam reads one Optional/Key entry: a bare symbol, or a
// (name default [provided-flag]) list.
func parseParam(store *value.Store, el value.Value) (value.Param, error) {
	if sym, isSym := el.AsSymbol(); isSym {
		return value.Param{Name: sym}, nil
	}

	elements, tail, ok := store.ListToSlice(el)
	if !ok {
		return value.Param{}, fmt.Errorf("args: malformed parameter entry")
	}
	if sym, isSym := tail.AsSymbol(); !isSym || sym != store.NilSymbol {
		return value.Param{}, fmt.Errorf("args: parameter entry must be a proper list")
	}
	if len(elements) < 1 || len(elements) > 3 {
		return value.Param{}, fmt.Errorf("args: parameter entry takes 1 to 3 elements, got %d", len(elements))
	}

	name, isSym := elements[0].AsSymbol()
	if !isSym {
		return value.Param{}, fmt.Errorf("args: parameter name must be a symbol")
	}
	p := value.Param{Name: name}
	if len(elements) >= 2 {
		p.HasDefault = true
		p.Default = elements[1]
	}
	if len(elements) == 3 {
		flag, isSym := elements[2].AsSymbol()
		if !isSym {
			return value.Param{}, fmt.Errorf("args: provided-flag name must be a symbol")
		}
		p.HasProvidedFlag = true
		p.ProvidedFlag = flag
	}
	return p, nil
}
