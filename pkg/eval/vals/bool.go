package vals

// Truth returns the truthiness of a value. Undefined, null, false, zero,
// empty strings, empty vectors and empty maps are false; everything else is
// true.
func Truth(v Value) bool {
	switch v := v.(type) {
	case nil, Undefined, Null:
		return false
	case Bool:
		return bool(v)
	case Int:
		return v != 0
	case Float:
		return v != 0
	case String:
		return v != ""
	case *Vector:
		return v.Len() > 0
	case *Map:
		return v.Len() > 0
	}
	return true
}
