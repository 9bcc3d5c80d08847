package value

import (
	"strconv"
	"strings"
)

// Print renders v in the surface syntax the Reader accepts back, so
// Reader → Print → Reader yields a structurally equal value for every
// acyclic, function-free value. Cyclic cons/object graphs are
// representable at runtime but cannot be round-tripped through a
// finite textual form; Print detects a repeated cell and emits
// `#<cycle>` instead of looping forever.
func (s *Store) Print(v Value) string {
	var sb strings.Builder
	s.print(&sb, v, make(map[int64]bool))
	return sb.String()
}

func (s *Store) print(sb *strings.Builder, v Value, visiting map[int64]bool) {
	switch v.Kind() {
	case KindInteger:
		n, _ := v.AsInteger()
		sb.WriteString(strconv.FormatInt(n, 10))
	case KindFloat:
		f, _ := v.AsFloat()
		text := strconv.FormatFloat(f, 'g', -1, 64)
		if !strings.ContainsAny(text, ".eEnN") {
			// Keep an integral float such as 3.0 a Float when read back.
			text += ".0"
		}
		sb.WriteString(text)
	case KindBoolean:
		b, _ := v.AsBoolean()
		if b {
			sb.WriteString("#t")
		} else {
			sb.WriteString("#f")
		}
	case KindString:
		id, _ := v.AsString()
		str, _ := s.GetString(id)
		sb.WriteString(strconv.Quote(str))
	case KindSymbol:
		id, _ := v.AsSymbol()
		sym, ok := s.GetSymbol(id)
		if !ok {
			sb.WriteString("#<dangling-symbol>")
			return
		}
		sb.WriteString(sym.Name)
		if sym.GensymID != 0 {
			sb.WriteString("#")
			sb.WriteString(strconv.FormatInt(sym.GensymID, 10))
		}
	case KindKeyword:
		id, _ := v.AsKeyword()
		name, _ := s.GetKeyword(id)
		sb.WriteString(":")
		sb.WriteString(name)
	case KindCons:
		s.printCons(sb, v, visiting)
	case KindObject:
		s.printObject(sb, v, visiting)
	case KindFunction:
		sb.WriteString("#<function>")
	}
}

func (s *Store) printCons(sb *strings.Builder, v Value, visiting map[int64]bool) {
	id, _ := v.AsCons()
	key := int64(id) << 4
	if visiting[key] {
		sb.WriteString("#<cycle>")
		return
	}
	visiting[key] = true
	var marked []int64
	defer func() {
		delete(visiting, key)
		for _, k := range marked {
			delete(visiting, k)
		}
	}()

	sb.WriteString("(")
	cur := v
	first := true
	for {
		cid, isCons := cur.AsCons()
		if !isCons {
			if sym, ok := cur.AsSymbol(); ok && sym == s.NilSymbol {
				break
			}
			sb.WriteString(" . ")
			s.print(sb, cur, visiting)
			break
		}
		cellKey := int64(cid) << 4
		if visiting[cellKey] && !first {
			sb.WriteString(" . #<cycle>")
			break
		}
		cell, ok := s.GetCons(cid)
		if !ok {
			break
		}
		if !first {
			sb.WriteString(" ")
		}
		visiting[cellKey] = true
		marked = append(marked, cellKey)
		s.print(sb, cell.Car, visiting)
		first = false
		cur = cell.Cdr
	}
	sb.WriteString(")")
}

func (s *Store) printObject(sb *strings.Builder, v Value, visiting map[int64]bool) {
	id, _ := v.AsObject()
	key := (int64(id) << 4) | 1
	if visiting[key] {
		sb.WriteString("#<cycle>")
		return
	}
	visiting[key] = true
	defer delete(visiting, key)

	obj, ok := s.GetObject(id)
	if !ok {
		sb.WriteString("#<dangling-object>")
		return
	}
	sb.WriteString("{")
	for i, k := range obj.Keys() {
		if i > 0 {
			sb.WriteString(" ")
		}
		name, _ := s.GetSymbol(k)
		sb.WriteString(":")
		sb.WriteString(name.Name)
		sb.WriteString(" ")
		val, _ := obj.getLocal(k)
		s.print(sb, val, visiting)
	}
	sb.WriteString("}")
}
