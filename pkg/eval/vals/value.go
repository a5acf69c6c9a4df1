// Package vals contains the values produced by evaluating configuration files,
// and the operations on them.
//
// A Value is one of Undefined, Null, Bool, Int, Float, String, URL, Color,
// *Vector and *Map. Like the values of most data languages, the operations
// are implemented as free functions that switch on the variant: Kind, Truth,
// Equal, Compare, Repr, Len, Index, UnaryOp and BinaryOp.
package vals

import "github.com/tconf/tconf/pkg/url"

// Value is a configuration value. The set of implementations is closed.
type Value interface {
	isValue()
}

// Undefined is the value of a path that has not been assigned. It is never
// stored in a container as a result of evaluation.
type Undefined struct{}

// Null is the explicit null value.
type Null struct{}

// Bool is a boolean value.
type Bool bool

// Int is a 64-bit signed integer. Arithmetic on Int wraps around on overflow.
type Int int64

// Float is a 64-bit IEEE 754 floating point number.
type Float float64

// String is a UTF-8 string.
type String string

// URL is a URL value.
type URL struct{ url.URL }

func (Undefined) isValue() {}
func (Null) isValue()      {}
func (Bool) isValue()      {}
func (Int) isValue()       {}
func (Float) isValue()     {}
func (String) isValue()    {}
func (URL) isValue()       {}
func (Color) isValue()     {}
func (*Vector) isValue()   {}
func (*Map) isValue()      {}

// NewURL wraps a url.URL.
func NewURL(u url.URL) URL { return URL{u} }

// IsUndefined reports whether v is Undefined. A nil Value is treated as
// Undefined.
func IsUndefined(v Value) bool {
	switch v.(type) {
	case nil, Undefined:
		return true
	}
	return false
}
