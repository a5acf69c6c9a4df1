package vals

// Copy returns a deep copy of a value. Scalars are returned as is.
func Copy(v Value) Value {
	switch v := v.(type) {
	case *Vector:
		elems := make([]Value, len(v.elems))
		for i, e := range v.elems {
			elems[i] = Copy(e)
		}
		return &Vector{elems}
	case *Map:
		m := &Map{}
		for i, k := range v.keys {
			m.Set(k, Copy(v.values[i]))
		}
		return m
	}
	return v
}
