package vals

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/tconf/tconf/pkg/url"
)

// MarshalTagged encodes a value as JSON that preserves its exact variant,
// including the distinction between ints and floats, URLs and colors, and
// map insertion order. Each value is encoded as a two-element array of a tag
// and a payload.
func MarshalTagged(v Value) ([]byte, error) {
	return json.Marshal(toTagged(v))
}

// UnmarshalTagged decodes data produced by MarshalTagged.
func UnmarshalTagged(data []byte) (Value, error) {
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return fromTagged(raw)
}

type tagged [2]any

func toTagged(v Value) tagged {
	switch v := v.(type) {
	case nil, Undefined:
		return tagged{"u", nil}
	case Null:
		return tagged{"n", nil}
	case Bool:
		return tagged{"b", bool(v)}
	case Int:
		// As a string, since JSON numbers lose precision beyond 2^53.
		return tagged{"i", strconv.FormatInt(int64(v), 10)}
	case Float:
		return tagged{"f", strconv.FormatFloat(float64(v), 'g', -1, 64)}
	case String:
		return tagged{"s", string(v)}
	case URL:
		return tagged{"l", v.String()}
	case Color:
		return tagged{"c", [4]float32{v.R, v.G, v.B, v.A}}
	case *Vector:
		elems := make([]tagged, v.Len())
		for i, e := range v.elems {
			elems[i] = toTagged(e)
		}
		return tagged{"v", elems}
	case *Map:
		entries := make([][2]tagged, v.Len())
		for i, k := range v.keys {
			entries[i] = [2]tagged{toTagged(k), toTagged(v.values[i])}
		}
		return tagged{"m", entries}
	}
	panic(fmt.Sprintf("unknown value type %T", v))
}

func fromTagged(raw json.RawMessage) (Value, error) {
	var pair [2]json.RawMessage
	if err := json.Unmarshal(raw, &pair); err != nil {
		return nil, err
	}
	var tag string
	if err := json.Unmarshal(pair[0], &tag); err != nil {
		return nil, err
	}
	payload := pair[1]
	switch tag {
	case "u":
		return Undefined{}, nil
	case "n":
		return Null{}, nil
	case "b":
		var b bool
		err := json.Unmarshal(payload, &b)
		return Bool(b), err
	case "i", "f", "s", "l":
		var s string
		if err := json.Unmarshal(payload, &s); err != nil {
			return nil, err
		}
		switch tag {
		case "i":
			i, err := strconv.ParseInt(s, 10, 64)
			return Int(i), err
		case "f":
			f, err := strconv.ParseFloat(s, 64)
			return Float(f), err
		case "s":
			return String(s), nil
		default:
			return URL{url.Parse(s)}, nil
		}
	case "c":
		var c [4]float32
		err := json.Unmarshal(payload, &c)
		return Color{c[0], c[1], c[2], c[3]}, err
	case "v":
		var elems []json.RawMessage
		if err := json.Unmarshal(payload, &elems); err != nil {
			return nil, err
		}
		vec := &Vector{make([]Value, len(elems))}
		for i, e := range elems {
			v, err := fromTagged(e)
			if err != nil {
				return nil, err
			}
			vec.elems[i] = v
		}
		return vec, nil
	case "m":
		var entries [][2]json.RawMessage
		if err := json.Unmarshal(payload, &entries); err != nil {
			return nil, err
		}
		m := NewMap()
		for _, entry := range entries {
			k, err := fromTagged(entry[0])
			if err != nil {
				return nil, err
			}
			if !IsValidKey(k) {
				return nil, fmt.Errorf("invalid map key of kind %s", KindOf(k))
			}
			v, err := fromTagged(entry[1])
			if err != nil {
				return nil, err
			}
			m.Set(k, v)
		}
		return m, nil
	}
	return nil, fmt.Errorf("unknown value tag %q", tag)
}
