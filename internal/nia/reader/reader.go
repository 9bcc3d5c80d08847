package reader

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/nialang/nia/internal/nia/value"
)

// Reader lowers Elements into Values against one Store, interning
// symbols/keywords/strings as it goes.
type Reader struct {
	store *value.Store
}

// New creates a Reader bound to store.
func New(store *value.Store) *Reader {
	return &Reader{store: store}
}

// Read lowers a single Element into a Value.
func (r *Reader) Read(el Element) (value.Value, error) {
	switch el.Kind {
	case Integer:
		return value.Integer(el.Int), nil
	case Float:
		return value.Float(el.Flt), nil
	case Boolean:
		return value.Boolean(el.Bool), nil
	case String:
		return value.String(r.store.InternString(el.Text)), nil
	case Symbol:
		return value.Symbol(r.store.InternSymbol(el.Text)), nil
	case Keyword:
		return value.Keyword(r.store.InternKeyword(el.Text)), nil
	case SExpr:
		return r.readSExpr(el)
	case ObjectLiteral:
		return r.readObjectLiteral(el)
	case ObjectPattern:
		return r.readObjectPattern(el)
	case Prefixed:
		return r.readPrefixed(el)
	case ShortLambda:
		return r.readShortLambda(el)
	case DelimitedSymbol:
		return r.readDelimitedSymbol(el)
	default:
		return value.Value{}, fmt.Errorf("reader: unknown element kind %d", el.Kind)
	}
}

// ReadAll lowers a sequence of top-level Elements in order.
func (r *Reader) ReadAll(els []Element) ([]value.Value, error) {
	out := make([]value.Value, 0, len(els))
	for _, el := range els {
		v, err := r.Read(el)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// readSExpr lowers (e1 … eN) to a cons chain terminated by nil.
func (r *Reader) readSExpr(el Element) (value.Value, error) {
	elements := make([]value.Value, 0, len(el.Items))
	for _, item := range el.Items {
		v, err := r.Read(item)
		if err != nil {
			return value.Value{}, err
		}
		elements = append(elements, v)
	}
	return r.store.List(r.store.Nil(), elements...), nil
}

// readObjectLiteral builds an Object directly: {:k v …} allocates the
// object and sets each property to the read (not evaluated) value of v,
// matching the reader's "never evaluates" rule.
func (r *Reader) readObjectLiteral(el Element) (value.Value, error) {
	id := r.store.AllocateObject(0, false)
	for _, pair := range el.Pairs {
		v, err := r.Read(pair.Value)
		if err != nil {
			return value.Value{}, err
		}
		sym := r.store.InternSymbol(pair.Key)
		r.store.SetProperty(id, sym, v)
	}
	return value.Object(id), nil
}

// readObjectPattern macro-expands #{:k1 :k2 …} to
// (object:make :k1 'k1 :k2 'k2 …), binding each key to the symbol of the
// same name.
func (r *Reader) readObjectPattern(el Element) (value.Value, error) {
	head := value.Symbol(r.store.InternSymbol("object:make"))
	quoteSym := value.Symbol(r.store.InternSymbol("quote"))
	elements := []value.Value{head}
	for _, pair := range el.Pairs {
		kw := value.Keyword(r.store.InternKeyword(pair.Key))
		sym := value.Symbol(r.store.InternSymbol(pair.Key))
		quoted := r.store.List(r.store.Nil(), quoteSym, sym)
		elements = append(elements, kw, quoted)
	}
	return r.store.List(r.store.Nil(), elements...), nil
}

// readPrefixed lowers 'x, `x, ,x, ,@x to (quote x) / (quasiquote x) /
// (unquote x) / (unquote-splicing x).
func (r *Reader) readPrefixed(el Element) (value.Value, error) {
	if len(el.Items) != 1 {
		return value.Value{}, fmt.Errorf("reader: prefixed form %q expects exactly one operand", el.Text)
	}
	operand, err := r.Read(el.Items[0])
	if err != nil {
		return value.Value{}, err
	}
	head := value.Symbol(r.store.InternSymbol(el.Text))
	return r.store.List(r.store.Nil(), head, operand), nil
}

var shortLambdaParam = regexp.MustCompile(`^%([1-9][0-9]*)$`)

// readShortLambda lowers #(… %1 %2 …) to
// (function (lambda (%1 %2 …) body…)), discovering the parameter count
// by scanning the body for the highest %N symbol referenced.
func (r *Reader) readShortLambda(el Element) (value.Value, error) {
	maxParam := 0
	var scan func(e Element)
	scan = func(e Element) {
		if e.Kind == Symbol {
			if m := shortLambdaParam.FindStringSubmatch(e.Text); m != nil {
				n, _ := strconv.Atoi(m[1])
				if n > maxParam {
					maxParam = n
				}
			}
			return
		}
		for _, child := range e.Items {
			scan(child)
		}
		for _, pair := range e.Pairs {
			scan(pair.Value)
		}
	}
	for _, item := range el.Items {
		scan(item)
	}

	params := make([]value.Value, 0, maxParam)
	for i := 1; i <= maxParam; i++ {
		params = append(params, value.Symbol(r.store.InternSymbol("%"+strconv.Itoa(i))))
	}
	paramList := r.store.List(r.store.Nil(), params...)

	body := make([]value.Value, 0, len(el.Items))
	for _, item := range el.Items {
		v, err := r.Read(item)
		if err != nil {
			return value.Value{}, err
		}
		body = append(body, v)
	}

	lambdaSym := value.Symbol(r.store.InternSymbol("lambda"))
	functionSym := value.Symbol(r.store.InternSymbol("function"))
	lambdaForm := r.store.List(r.store.Nil(), append([]value.Value{lambdaSym, paramList}, body...)...)
	return r.store.List(r.store.Nil(), functionSym, lambdaForm), nil
}

// readDelimitedSymbol lowers a:b:c to stepwise property access:
// (:c (:b a)) — innermost access first, compiled as nested getter calls
// using the keyword-in-head-position accessor form.
func (r *Reader) readDelimitedSymbol(el Element) (value.Value, error) {
	if len(el.Parts) == 0 {
		return value.Value{}, fmt.Errorf("reader: delimited symbol has no parts")
	}
	result := value.Symbol(r.store.InternSymbol(el.Parts[0]))
	for _, part := range el.Parts[1:] {
		kw := value.Keyword(r.store.InternKeyword(part))
		result = r.store.List(r.store.Nil(), kw, result)
	}
	return result, nil
}
