package vals

// Vector is a mutable ordered sequence of values with reference semantics.
// The zero value is an empty vector ready to use.
type Vector struct {
	elems []Value
}

// NewVector returns a vector with the given elements.
func NewVector(elems ...Value) *Vector {
	return &Vector{elems}
}

// MakeVector is like NewVector, but converts Go ints, floats, strings and
// bools. It is intended for tests and constant data.
func MakeVector(elems ...any) *Vector {
	v := &Vector{make([]Value, len(elems))}
	for i, e := range elems {
		v.elems[i] = valueOf(e)
	}
	return v
}

// Len returns the number of elements.
func (v *Vector) Len() int { return len(v.elems) }

// At returns the element at index i, which must be in range.
func (v *Vector) At(i int) Value { return v.elems[i] }

// Set sets the element at index i, which must be in range.
func (v *Vector) Set(i int, e Value) { v.elems[i] = e }

// Append appends elements.
func (v *Vector) Append(elems ...Value) { v.elems = append(v.elems, elems...) }

// Elems returns a copy of the elements.
func (v *Vector) Elems() []Value { return append([]Value(nil), v.elems...) }
