package vals

import (
	"cmp"

	"github.com/tconf/tconf/pkg/eval/errs"
)

// Equal reports whether two values are equal. Ints and floats are compared
// numerically, and a URL is equal to a string with the same text. Values of
// other differing kinds are never equal. Map equality ignores key order.
func Equal(a, b Value) bool {
	switch a := a.(type) {
	case nil, Undefined:
		return IsUndefined(b)
	case Null:
		_, ok := b.(Null)
		return ok
	case Bool:
		b, ok := b.(Bool)
		return ok && a == b
	case Int:
		switch b := b.(type) {
		case Int:
			return a == b
		case Float:
			return Float(a) == b
		}
	case Float:
		switch b := b.(type) {
		case Int:
			return a == Float(b)
		case Float:
			return a == b
		}
	case String:
		switch b := b.(type) {
		case String:
			return a == b
		case URL:
			return string(a) == b.String()
		}
	case URL:
		switch b := b.(type) {
		case URL:
			return a.Equal(b.URL)
		case String:
			return a.String() == string(b)
		}
	case Color:
		b, ok := b.(Color)
		return ok && a == b
	case *Vector:
		b, ok := b.(*Vector)
		if !ok || a.Len() != b.Len() {
			return false
		}
		for i := range a.elems {
			if !Equal(a.elems[i], b.elems[i]) {
				return false
			}
		}
		return true
	case *Map:
		b, ok := b.(*Map)
		if !ok || a.Len() != b.Len() {
			return false
		}
		for i, k := range a.keys {
			bv, ok := b.Get(k)
			if !ok || !Equal(a.values[i], bv) {
				return false
			}
		}
		return true
	}
	return false
}

// Compare orders two values, returning -1, 0 or 1. Numbers are ordered
// numerically, strings and URLs by their text, bools with false before true,
// and vectors lexicographically. Other combinations are an error.
func Compare(a, b Value) (int, error) {
	return compare("<", a, b)
}

func compare(op string, a, b Value) (int, error) {
	switch a := a.(type) {
	case Int:
		switch b := b.(type) {
		case Int:
			return cmp.Compare(a, b), nil
		case Float:
			return cmp.Compare(float64(a), float64(b)), nil
		}
	case Float:
		switch b := b.(type) {
		case Int:
			return cmp.Compare(float64(a), float64(b)), nil
		case Float:
			return cmp.Compare(a, b), nil
		}
	case String:
		switch b := b.(type) {
		case String:
			return cmp.Compare(a, b), nil
		case URL:
			return cmp.Compare(string(a), b.String()), nil
		}
	case URL:
		switch b := b.(type) {
		case URL:
			return a.Compare(b.URL), nil
		case String:
			return cmp.Compare(a.String(), string(b)), nil
		}
	case Bool:
		if b, ok := b.(Bool); ok {
			return cmp.Compare(boolToInt(a), boolToInt(b)), nil
		}
	case *Vector:
		if b, ok := b.(*Vector); ok {
			for i := 0; i < a.Len() && i < b.Len(); i++ {
				c, err := compare(op, a.elems[i], b.elems[i])
				if err != nil || c != 0 {
					return c, err
				}
			}
			return cmp.Compare(a.Len(), b.Len()), nil
		}
	}
	return 0, InvalidOp(op, a, b)
}

func boolToInt(b Bool) int {
	if b {
		return 1
	}
	return 0
}

// InvalidOp returns an errs.InvalidOperation describing op applied to the
// operands.
func InvalidOp(op string, operands ...Value) error {
	descs := make([]errs.Operand, len(operands))
	for i, v := range operands {
		descs[i] = errs.Operand{Kind: KindOf(v).String()}
		if !IsUndefined(v) {
			descs[i].Repr = ReprPlain(v)
		}
	}
	return errs.InvalidOperation{Op: op, Operands: descs}
}
