package vals

import "unicode/utf8"

// Len returns the length of a value: the number of runes of a string, the
// number of elements of a vector, or the number of entries of a map. For other
// values it returns -1.
func Len(v Value) int {
	switch v := v.(type) {
	case String:
		return utf8.RuneCountInString(string(v))
	case *Vector:
		return v.Len()
	case *Map:
		return v.Len()
	}
	return -1
}
