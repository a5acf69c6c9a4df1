package vals

import (
	"math"

	"github.com/tconf/tconf/pkg/eval/errs"
)

// UnaryOp applies a prefix operator: "+", "-", "~", "!" or "not".
func UnaryOp(op string, v Value) (Value, error) {
	switch op {
	case "+":
		if IsNumeric(v) {
			return v, nil
		}
	case "-":
		switch v := v.(type) {
		case Int:
			return -v, nil
		case Float:
			return -v, nil
		}
	case "~":
		switch v := v.(type) {
		case Int:
			return ^v, nil
		case Bool:
			return ^Int(boolToInt(v)), nil
		}
	case "!", "not":
		return Bool(!Truth(v)), nil
	}
	return nil, InvalidOp(op, v)
}

// BinaryOp applies an infix operator. The logical operators "and", "or",
// "&&" and "||" are evaluated on already evaluated operands; callers wanting
// short-circuit evaluation must handle them before evaluating the right
// operand.
func BinaryOp(op string, a, b Value) (Value, error) {
	switch op {
	case "==":
		return Bool(Equal(a, b)), nil
	case "!=":
		return Bool(!Equal(a, b)), nil
	case "<", ">", "<=", ">=":
		return relational(op, a, b)
	case "and", "&&":
		return Bool(Truth(a) && Truth(b)), nil
	case "or", "||":
		return Bool(Truth(a) || Truth(b)), nil
	case "xor":
		return Bool(Truth(a) != Truth(b)), nil
	case "&", "|", "^", "<<", ">>":
		return bitwise(op, a, b)
	case "+", "-", "*", "/", "%", "**":
		return arithmetic(op, a, b)
	}
	return nil, InvalidOp(op, a, b)
}

func relational(op string, a, b Value) (Value, error) {
	if isNaN(a) || isNaN(b) {
		if IsNumeric(a) && IsNumeric(b) {
			return Bool(false), nil
		}
	}
	c, err := compare(op, a, b)
	if err != nil {
		return nil, err
	}
	switch op {
	case "<":
		return Bool(c < 0), nil
	case ">":
		return Bool(c > 0), nil
	case "<=":
		return Bool(c <= 0), nil
	default:
		return Bool(c >= 0), nil
	}
}

func isNaN(v Value) bool {
	f, ok := v.(Float)
	return ok && math.IsNaN(float64(f))
}

func bitwise(op string, a, b Value) (Value, error) {
	x, ok1 := bitwiseOperand(a)
	y, ok2 := bitwiseOperand(b)
	if !ok1 || !ok2 {
		return nil, InvalidOp(op, a, b)
	}
	switch op {
	case "&":
		return x & y, nil
	case "|":
		return x | y, nil
	case "^":
		return x ^ y, nil
	}
	if y < 0 {
		return nil, errs.OutOfRange{What: "shift count", ValidLow: 0,
			ValidHigh: math.MaxInt32, Actual: ReprPlain(y)}
	}
	if op == "<<" {
		return x << uint64(y), nil
	}
	return x >> uint64(y), nil
}

// Bools widen to ints in bitwise operations.
func bitwiseOperand(v Value) (Int, bool) {
	switch v := v.(type) {
	case Int:
		return v, true
	case Bool:
		return Int(boolToInt(v)), true
	}
	return 0, false
}

func arithmetic(op string, a, b Value) (Value, error) {
	if x, ok := a.(Int); ok {
		if y, ok := b.(Int); ok {
			return intArithmetic(op, x, y)
		}
	}
	if IsNumeric(a) && IsNumeric(b) {
		return floatArithmetic(op, toFloat(a), toFloat(b)), nil
	}
	switch op {
	case "+":
		switch a := a.(type) {
		case String:
			if b, ok := b.(String); ok {
				return a + b, nil
			}
		case *Vector:
			if b, ok := b.(*Vector); ok {
				return NewVector(append(a.Elems(), b.elems...)...), nil
			}
		}
	case "/":
		if a, ok := a.(URL); ok {
			switch b := b.(type) {
			case String:
				return URL{a.JoinPath(string(b))}, nil
			case URL:
				return URL{a.Join(b.URL)}, nil
			}
		}
	}
	return nil, InvalidOp(op, a, b)
}

func intArithmetic(op string, x, y Int) (Value, error) {
	switch op {
	case "+":
		return x + y, nil
	case "-":
		return x - y, nil
	case "*":
		return x * y, nil
	case "/":
		if y == 0 {
			return nil, errs.DivisionByZero{}
		}
		return x / y, nil
	case "%":
		if y == 0 {
			return nil, errs.DivisionByZero{}
		}
		return x % y, nil
	default: // "**"
		if y < 0 {
			return Float(math.Pow(float64(x), float64(y))), nil
		}
		return intPow(x, y), nil
	}
}

func intPow(x, y Int) Int {
	result := Int(1)
	for y > 0 {
		if y&1 == 1 {
			result *= x
		}
		x *= x
		y >>= 1
	}
	return result
}

func floatArithmetic(op string, x, y float64) Value {
	switch op {
	case "+":
		return Float(x + y)
	case "-":
		return Float(x - y)
	case "*":
		return Float(x * y)
	case "/":
		return Float(x / y)
	case "%":
		return Float(math.Mod(x, y))
	default: // "**"
		return Float(math.Pow(x, y))
	}
}

func toFloat(v Value) float64 {
	switch v := v.(type) {
	case Int:
		return float64(v)
	case Float:
		return float64(v)
	}
	return math.NaN()
}
