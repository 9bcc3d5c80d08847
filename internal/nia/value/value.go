package value

// Value is a tagged sum over immediate scalars (Integer, Float,
// Boolean) and arena identifiers for every heap-allocated variant
// (String, Symbol, Keyword, Cons, Object, Function). It is small,
// comparable by ==, and cheap to copy — a Value never owns memory
// itself, it only names an arena slot.
type Value struct {
	kind Kind
	i    int64
	f    float64
}

// Kind reports which variant of the sum this Value holds.
func (v Value) Kind() Kind { return v.kind }

func Integer(n int64) Value { return Value{kind: KindInteger, i: n} }

func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

func Boolean(b bool) Value {
	if b {
		return Value{kind: KindBoolean, i: 1}
	}
	return Value{kind: KindBoolean, i: 0}
}

func String(id StringID) Value { return Value{kind: KindString, i: int64(id)} }

func Symbol(id SymbolID) Value { return Value{kind: KindSymbol, i: int64(id)} }

func Keyword(id KeywordID) Value { return Value{kind: KindKeyword, i: int64(id)} }

func Cons(id ConsID) Value { return Value{kind: KindCons, i: int64(id)} }

func Object(id ObjectID) Value { return Value{kind: KindObject, i: int64(id)} }

func Function(id FunctionID) Value { return Value{kind: KindFunction, i: int64(id)} }

// AsInteger returns the payload of an Integer Value.
func (v Value) AsInteger() (int64, bool) {
	if v.kind != KindInteger {
		return 0, false
	}
	return v.i, true
}

// AsFloat returns the payload of a Float Value.
func (v Value) AsFloat() (float64, bool) {
	if v.kind != KindFloat {
		return 0, false
	}
	return v.f, true
}

// AsBoolean returns the payload of a Boolean Value.
func (v Value) AsBoolean() (bool, bool) {
	if v.kind != KindBoolean {
		return false, false
	}
	return v.i != 0, true
}

func (v Value) AsString() (StringID, bool) {
	if v.kind != KindString {
		return 0, false
	}
	return StringID(v.i), true
}

func (v Value) AsSymbol() (SymbolID, bool) {
	if v.kind != KindSymbol {
		return 0, false
	}
	return SymbolID(v.i), true
}

func (v Value) AsKeyword() (KeywordID, bool) {
	if v.kind != KindKeyword {
		return 0, false
	}
	return KeywordID(v.i), true
}

func (v Value) AsCons() (ConsID, bool) {
	if v.kind != KindCons {
		return 0, false
	}
	return ConsID(v.i), true
}

func (v Value) AsObject() (ObjectID, bool) {
	if v.kind != KindObject {
		return 0, false
	}
	return ObjectID(v.i), true
}

func (v Value) AsFunction() (FunctionID, bool) {
	if v.kind != KindFunction {
		return 0, false
	}
	return FunctionID(v.i), true
}

// Equal implements identifier/scalar equality: scalars compare by
// value, every arena-backed variant compares by identifier. Use
// Store.DeepEqual for recursive cons/object structural comparison.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindFloat:
		return a.f == b.f
	default:
		return a.i == b.i
	}
}

// Truthy reports whether v counts as true in a conditional context:
// only #f and the nil symbol are falsy; everything else — including 0,
// 0.0, and "" — is truthy.
func (s *Store) Truthy(v Value) bool {
	if b, ok := v.AsBoolean(); ok {
		return b
	}
	if sym, ok := v.AsSymbol(); ok {
		return sym != s.NilSymbol
	}
	return true
}
