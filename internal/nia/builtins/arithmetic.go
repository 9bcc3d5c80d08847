package builtins

import (
	"math"

	nerrors "github.com/nialang/nia/internal/nia/errors"
	"github.com/nialang/nia/internal/nia/value"
)

// addOverflows reports whether a+b overflows int64, per the standard
// signed-overflow test: overflow only happens when both operands share
// a sign and the result's sign differs from theirs.
func addOverflows(a, b, r int64) bool {
	return (b > 0 && r < a) || (b < 0 && r > a)
}

// registerArithmetic wires the numeric tower: +, -, * keep an
// all-Integer argument list Integer and fall back to Float the moment
// any operand is a Float, mirroring ordinary Lisp numeric-tower
// contagion; / always returns a Float. Integer addition/subtraction/
// multiplication check for 64-bit overflow and raise an Overflow error.
func registerArithmetic(store *value.Store) {
	define(store, "+", arithReduce(store, "+", 0, func(a, b int64) (int64, bool) {
		r := a + b
		return r, !addOverflows(a, b, r)
	}, func(a, b float64) float64 { return a + b }))
	define(store, "-", arithSubtract)
	define(store, "*", arithReduce(store, "*", 1, func(a, b int64) (int64, bool) {
		if a == 0 || b == 0 {
			return 0, true
		}
		if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
			return 0, false
		}
		r := a * b
		return r, r/b == a
	}, func(a, b float64) float64 { return a * b }))
	define(store, "/", arithDivide)
	define(store, "mod", arithMod)
	define(store, "=", arithCompare(store, "=", func(c int) bool { return c == 0 }))
	define(store, "<", arithCompare(store, "<", func(c int) bool { return c < 0 }))
	define(store, ">", arithCompare(store, ">", func(c int) bool { return c > 0 }))
	define(store, "<=", arithCompare(store, "<=", func(c int) bool { return c <= 0 }))
	define(store, ">=", arithCompare(store, ">=", func(c int) bool { return c >= 0 }))
}

func arithReduce(store *value.Store, name string, intIdentity int64, intOp func(a, b int64) (int64, bool), floatOp func(a, b float64) float64) value.NativeFn {
	return func(m value.Machine, env value.EnvironmentID, args []value.Value) (value.Value, error) {
		if err := minArity(store, name, args, 1); err != nil {
			return value.Value{}, err
		}
		allInt := true
		for _, a := range args {
			if _, ok := a.AsInteger(); !ok {
				allInt = false
				break
			}
		}
		if allInt {
			acc, _ := args[0].AsInteger()
			for _, a := range args[1:] {
				n, _ := a.AsInteger()
				r, ok := intOp(acc, n)
				if !ok {
					return value.Value{}, nerrors.New(store, nerrors.Overflow, "overflow", name+": integer overflow")
				}
				acc = r
			}
			return value.Integer(acc), nil
		}
		acc, _, ok := asNumber(args[0])
		if !ok {
			return value.Value{}, typeErr(store, name, "expects numeric arguments")
		}
		for _, a := range args[1:] {
			n, _, ok := asNumber(a)
			if !ok {
				return value.Value{}, typeErr(store, name, "expects numeric arguments")
			}
			acc = floatOp(acc, n)
		}
		return value.Float(acc), nil
	}
}

func arithSubtract(m value.Machine, env value.EnvironmentID, args []value.Value) (value.Value, error) {
	store := m.Store()
	if err := minArity(store, "-", args, 1); err != nil {
		return value.Value{}, err
	}
	allInt := true
	for _, a := range args {
		if _, ok := a.AsInteger(); !ok {
			allInt = false
			break
		}
	}
	if allInt {
		acc, _ := args[0].AsInteger()
		if len(args) == 1 {
			return value.Integer(-acc), nil
		}
		for _, a := range args[1:] {
			n, _ := a.AsInteger()
			r := acc - n
			if addOverflows(r, n, acc) {
				return value.Value{}, nerrors.New(store, nerrors.Overflow, "overflow", "-: integer overflow")
			}
			acc = r
		}
		return value.Integer(acc), nil
	}
	acc, _, ok := asNumber(args[0])
	if !ok {
		return value.Value{}, typeErr(store, "-", "expects numeric arguments")
	}
	if len(args) == 1 {
		return value.Float(-acc), nil
	}
	for _, a := range args[1:] {
		n, _, ok := asNumber(a)
		if !ok {
			return value.Value{}, typeErr(store, "-", "expects numeric arguments")
		}
		acc -= n
	}
	return value.Float(acc), nil
}

func arithDivide(m value.Machine, env value.EnvironmentID, args []value.Value) (value.Value, error) {
	store := m.Store()
	if err := minArity(store, "/", args, 1); err != nil {
		return value.Value{}, err
	}
	acc, _, ok := asNumber(args[0])
	if !ok {
		return value.Value{}, typeErr(store, "/", "expects numeric arguments")
	}
	if len(args) == 1 {
		if acc == 0 {
			return value.Value{}, typeErr(store, "/", "division by zero")
		}
		return value.Float(1 / acc), nil
	}
	for _, a := range args[1:] {
		n, _, ok := asNumber(a)
		if !ok {
			return value.Value{}, typeErr(store, "/", "expects numeric arguments")
		}
		if n == 0 {
			return value.Value{}, typeErr(store, "/", "division by zero")
		}
		acc /= n
	}
	return value.Float(acc), nil
}

func arithMod(m value.Machine, env value.EnvironmentID, args []value.Value) (value.Value, error) {
	store := m.Store()
	if err := exactArity(store, "mod", args, 2); err != nil {
		return value.Value{}, err
	}
	a, err := asInt(store, "mod", args[0])
	if err != nil {
		return value.Value{}, err
	}
	b, err := asInt(store, "mod", args[1])
	if err != nil {
		return value.Value{}, err
	}
	if b == 0 {
		return value.Value{}, typeErr(store, "mod", "division by zero")
	}
	return value.Integer(a % b), nil
}

func arithCompare(store *value.Store, name string, accept func(int) bool) value.NativeFn {
	return func(m value.Machine, env value.EnvironmentID, args []value.Value) (value.Value, error) {
		if err := minArity(store, name, args, 2); err != nil {
			return value.Value{}, err
		}
		for i := 0; i < len(args)-1; i++ {
			a, _, ok1 := asNumber(args[i])
			b, _, ok2 := asNumber(args[i+1])
			if !ok1 || !ok2 {
				return value.Value{}, typeErr(store, name, "expects numeric arguments")
			}
			c := 0
			switch {
			case a < b:
				c = -1
			case a > b:
				c = 1
			}
			if math.IsNaN(a) || math.IsNaN(b) || !accept(c) {
				return value.Boolean(false), nil
			}
		}
		return value.Boolean(true), nil
	}
}
