package builtins

import (
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/language"
	"golang.org/x/text/transform"

	"github.com/nialang/nia/internal/nia/value"
)

// registerStringOps wires the string surface, including two
// locale/encoding builtins: string:collate does locale-aware comparison
// via golang.org/x/text/collate, and string:to-utf16/string:from-utf16
// transcode via golang.org/x/text/encoding/unicode and
// golang.org/x/text/transform.
func registerStringOps(store *value.Store) {
	define(store, "string:concat", biStringConcat)
	define(store, "string:length", biStringLength)
	define(store, "string:upper", stringMap(strings.ToUpper))
	define(store, "string:lower", stringMap(strings.ToLower))
	define(store, "string:trim", stringMap(strings.TrimSpace))
	define(store, "string:split", biStringSplit)
	define(store, "string:lt", biStringLessThan)
	define(store, "string:collate", biStringCollate)
	define(store, "string:to-utf16", biStringToUTF16)
	define(store, "string:from-utf16", biStringFromUTF16)
	define(store, "string:to-symbol", biStringToSymbol)
	define(store, "symbol:to-string", biSymbolToString)
}

func biStringConcat(m value.Machine, env value.EnvironmentID, args []value.Value) (value.Value, error) {
	store := m.Store()
	var sb strings.Builder
	for _, a := range args {
		s, err := asString(store, "string:concat", a)
		if err != nil {
			return value.Value{}, err
		}
		sb.WriteString(s)
	}
	return value.String(store.InternString(sb.String())), nil
}

func biStringLength(m value.Machine, env value.EnvironmentID, args []value.Value) (value.Value, error) {
	store := m.Store()
	if err := exactArity(store, "string:length", args, 1); err != nil {
		return value.Value{}, err
	}
	s, err := asString(store, "string:length", args[0])
	if err != nil {
		return value.Value{}, err
	}
	return value.Integer(int64(len([]rune(s)))), nil
}

func stringMap(f func(string) string) value.NativeFn {
	return func(m value.Machine, env value.EnvironmentID, args []value.Value) (value.Value, error) {
		store := m.Store()
		if err := exactArity(store, "string", args, 1); err != nil {
			return value.Value{}, err
		}
		s, err := asString(store, "string", args[0])
		if err != nil {
			return value.Value{}, err
		}
		return value.String(store.InternString(f(s))), nil
	}
}

func biStringSplit(m value.Machine, env value.EnvironmentID, args []value.Value) (value.Value, error) {
	store := m.Store()
	if err := exactArity(store, "string:split", args, 2); err != nil {
		return value.Value{}, err
	}
	s, err := asString(store, "string:split", args[0])
	if err != nil {
		return value.Value{}, err
	}
	sep, err := asString(store, "string:split", args[1])
	if err != nil {
		return value.Value{}, err
	}
	parts := strings.Split(s, sep)
	out := make([]value.Value, len(parts))
	for i, p := range parts {
		out[i] = value.String(store.InternString(p))
	}
	return store.List(store.Nil(), out...), nil
}

func biStringLessThan(m value.Machine, env value.EnvironmentID, args []value.Value) (value.Value, error) {
	store := m.Store()
	if err := exactArity(store, "string:lt", args, 2); err != nil {
		return value.Value{}, err
	}
	a, err := asString(store, "string:lt", args[0])
	if err != nil {
		return value.Value{}, err
	}
	b, err := asString(store, "string:lt", args[1])
	if err != nil {
		return value.Value{}, err
	}
	return value.Boolean(a < b), nil
}

// biStringCollate compares two strings using locale-aware collation
// instead of byte order, for scripts that sort user-facing labels
// (e.g. device/action names) in natural language order. The locale tag
// is a third, optional string argument (BCP 47, default "und").
func biStringCollate(m value.Machine, env value.EnvironmentID, args []value.Value) (value.Value, error) {
	store := m.Store()
	if err := minArity(store, "string:collate", args, 2); err != nil {
		return value.Value{}, err
	}
	a, err := asString(store, "string:collate", args[0])
	if err != nil {
		return value.Value{}, err
	}
	b, err := asString(store, "string:collate", args[1])
	if err != nil {
		return value.Value{}, err
	}
	tag := language.Und
	if len(args) >= 3 {
		tagStr, err := asString(store, "string:collate", args[2])
		if err != nil {
			return value.Value{}, err
		}
		parsed, parseErr := language.Parse(tagStr)
		if parseErr != nil {
			return value.Value{}, typeErr(store, "string:collate", "invalid locale tag: "+tagStr)
		}
		tag = parsed
	}
	col := collate.New(tag)
	return value.Integer(int64(col.CompareString(a, b))), nil
}

// biStringToUTF16 transcodes an interned UTF-8 string to a list of
// integers, one per UTF-16 code unit (little-endian), so scripts can
// hand key-chord labels to a UTF-16-only host.
func biStringToUTF16(m value.Machine, env value.EnvironmentID, args []value.Value) (value.Value, error) {
	store := m.Store()
	if err := exactArity(store, "string:to-utf16", args, 1); err != nil {
		return value.Value{}, err
	}
	s, err := asString(store, "string:to-utf16", args[0])
	if err != nil {
		return value.Value{}, err
	}
	encoded, _, encErr := transform.String(unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder(), s)
	if encErr != nil {
		return value.Value{}, typeErr(store, "string:to-utf16", encErr.Error())
	}
	units := []byte(encoded)
	out := make([]value.Value, 0, len(units)/2)
	for i := 0; i+1 < len(units); i += 2 {
		out = append(out, value.Integer(int64(units[i])|int64(units[i+1])<<8))
	}
	return store.List(store.Nil(), out...), nil
}

// biStringFromUTF16 is the inverse of string:to-utf16: a proper list
// of UTF-16 code-unit integers back to an interned UTF-8 string.
func biStringFromUTF16(m value.Machine, env value.EnvironmentID, args []value.Value) (value.Value, error) {
	store := m.Store()
	if err := exactArity(store, "string:from-utf16", args, 1); err != nil {
		return value.Value{}, err
	}
	elements, tail, ok := store.ListToSlice(args[0])
	if !ok || !isNilTailV(store, tail) {
		return value.Value{}, typeErr(store, "string:from-utf16", "expects a proper list of integers")
	}
	raw := make([]byte, 0, len(elements)*2)
	for _, el := range elements {
		n, err := asInt(store, "string:from-utf16", el)
		if err != nil {
			return value.Value{}, err
		}
		raw = append(raw, byte(n), byte(n>>8))
	}
	decoded, _, decErr := transform.Bytes(unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder(), raw)
	if decErr != nil {
		return value.Value{}, typeErr(store, "string:from-utf16", decErr.Error())
	}
	return value.String(store.InternString(string(decoded))), nil
}

func biStringToSymbol(m value.Machine, env value.EnvironmentID, args []value.Value) (value.Value, error) {
	store := m.Store()
	if err := exactArity(store, "string:to-symbol", args, 1); err != nil {
		return value.Value{}, err
	}
	s, err := asString(store, "string:to-symbol", args[0])
	if err != nil {
		return value.Value{}, err
	}
	return value.Symbol(store.InternSymbol(s)), nil
}

func biSymbolToString(m value.Machine, env value.EnvironmentID, args []value.Value) (value.Value, error) {
	store := m.Store()
	if err := exactArity(store, "symbol:to-string", args, 1); err != nil {
		return value.Value{}, err
	}
	sym, err := asSymbol(store, "symbol:to-string", args[0])
	if err != nil {
		return value.Value{}, err
	}
	name, _ := store.GetSymbol(sym)
	return value.String(store.InternString(name.Name)), nil
}
