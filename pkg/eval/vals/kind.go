package vals

import "fmt"

// Kind identifies the variant of a Value.
type Kind uint8

// Possible values of Kind.
const (
	UndefinedKind Kind = iota
	NullKind
	BoolKind
	IntKind
	FloatKind
	StringKind
	URLKind
	ColorKind
	VectorKind
	MapKind
)

var kindNames = [...]string{
	UndefinedKind: "undefined",
	NullKind:      "null",
	BoolKind:      "bool",
	IntKind:       "int",
	FloatKind:     "float",
	StringKind:    "string",
	URLKind:       "url",
	ColorKind:     "color",
	VectorKind:    "vector",
	MapKind:       "map",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// KindOf returns the Kind of a value. A nil Value is Undefined.
func KindOf(v Value) Kind {
	switch v.(type) {
	case nil, Undefined:
		return UndefinedKind
	case Null:
		return NullKind
	case Bool:
		return BoolKind
	case Int:
		return IntKind
	case Float:
		return FloatKind
	case String:
		return StringKind
	case URL:
		return URLKind
	case Color:
		return ColorKind
	case *Vector:
		return VectorKind
	case *Map:
		return MapKind
	}
	panic(fmt.Sprintf("unknown value type %T", v))
}

// IsNumeric reports whether v is an Int or a Float.
func IsNumeric(v Value) bool {
	switch v.(type) {
	case Int, Float:
		return true
	}
	return false
}
