package vars

import "github.com/tconf/tconf/pkg/eval/vals"

type mapElem struct {
	m   *vals.Map
	key vals.Value
}

// MapElement returns the variable at a key of a map. The key is written only
// when the variable is set.
func MapElement(m *vals.Map, key vals.Value) Var {
	return mapElem{m, key}
}

func (e mapElem) Set(v vals.Value) error {
	e.m.Set(e.key, v)
	return nil
}

func (e mapElem) Get() vals.Value {
	if v, ok := e.m.Get(e.key); ok {
		return v
	}
	return vals.Undefined{}
}

type vectorElem struct {
	vec *vals.Vector
	i   int
}

// VectorElement returns the variable at an existing index of a vector.
func VectorElement(vec *vals.Vector, i int) Var {
	return vectorElem{vec, i}
}

func (e vectorElem) Set(v vals.Value) error {
	e.vec.Set(e.i, v)
	return nil
}

func (e vectorElem) Get() vals.Value { return e.vec.At(e.i) }

type appendElem struct {
	vec *vals.Vector
	i   int
}

// AppendElement returns a variable for a new element of a vector. The first
// Set appends to the vector; later calls replace the appended element.
func AppendElement(vec *vals.Vector) Var {
	return &appendElem{vec, -1}
}

func (e *appendElem) Set(v vals.Value) error {
	if e.i < 0 {
		e.vec.Append(v)
		e.i = e.vec.Len() - 1
		return nil
	}
	e.vec.Set(e.i, v)
	return nil
}

func (e *appendElem) Get() vals.Value {
	if e.i < 0 {
		return vals.Undefined{}
	}
	return e.vec.At(e.i)
}
