package vals

import (
	"strconv"

	"github.com/tconf/tconf/pkg/eval/errs"
)

// Index indexes a container. Maps are indexed by String or Int keys: a missing
// String key yields Undefined, while a missing Int key is an error, since
// integer indexing is meant for vector-like access. Vectors are indexed by
// Int keys in the range [0, len).
func Index(a, k Value) (Value, error) {
	switch a := a.(type) {
	case *Map:
		switch k := k.(type) {
		case String:
			v, _ := a.Get(k)
			return v, nil
		case Int:
			if v, ok := a.Get(k); ok {
				return v, nil
			}
			return nil, errs.NoSuchKey{Key: ReprPlain(k)}
		}
	case *Vector:
		if i, ok := k.(Int); ok {
			if i < 0 || int64(i) >= int64(a.Len()) {
				return nil, errs.OutOfRange{What: "vector index", ValidLow: 0,
					ValidHigh: a.Len() - 1, Actual: ReprPlain(i)}
			}
			return a.At(int(i)), nil
		}
	}
	return nil, InvalidOp("[]", a, k)
}

// GetByPath descends into v following path. Maps are descended by string
// keys, vectors by decimal indices. A missing key, an invalid index or a
// non-container along the path yields Undefined.
func GetByPath(v Value, path []string) Value {
	for _, key := range path {
		switch c := v.(type) {
		case *Map:
			next, ok := c.Lookup(key)
			if !ok {
				return Undefined{}
			}
			v = next
		case *Vector:
			i, err := strconv.Atoi(key)
			if err != nil || i < 0 || i >= c.Len() {
				return Undefined{}
			}
			v = c.At(i)
		default:
			return Undefined{}
		}
	}
	return v
}
