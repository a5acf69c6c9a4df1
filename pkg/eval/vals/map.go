package vals

import (
	"fmt"
	"sort"
)

// Map is a mutable map from keys to values that remembers insertion order.
// Keys are String or Int values. Maps have reference semantics: all holders of
// a *Map observe mutations. The zero value is an empty map ready to use.
type Map struct {
	keys   []Value
	values []Value
	index  map[Value]int
}

// NewMap returns a new empty map.
func NewMap() *Map {
	return &Map{}
}

// MakeMap creates a map from alternating keys and values. Keys may be given
// as Go strings or ints for convenience. It panics on an odd number of
// arguments or an invalid key, and is intended for tests and constant data.
func MakeMap(kvs ...any) *Map {
	if len(kvs)%2 == 1 {
		panic("odd number of arguments to MakeMap")
	}
	m := NewMap()
	for i := 0; i < len(kvs); i += 2 {
		m.Set(keyOf(kvs[i]), valueOf(kvs[i+1]))
	}
	return m
}

func keyOf(k any) Value {
	switch k := k.(type) {
	case string:
		return String(k)
	case int:
		return Int(k)
	case Value:
		return k
	}
	panic(fmt.Sprintf("invalid map key %v", k))
}

func valueOf(v any) Value {
	switch v := v.(type) {
	case Value:
		return v
	case nil:
		return Null{}
	case bool:
		return Bool(v)
	case int:
		return Int(v)
	case float64:
		return Float(v)
	case string:
		return String(v)
	}
	panic(fmt.Sprintf("unsupported value %v", v))
}

// IsValidKey reports whether k can be used as a map key.
func IsValidKey(k Value) bool {
	switch k.(type) {
	case String, Int:
		return true
	}
	return false
}

// Len returns the number of entries.
func (m *Map) Len() int { return len(m.keys) }

// Get returns the value for a key, and whether it exists.
func (m *Map) Get(k Value) (Value, bool) {
	if i, ok := m.index[k]; ok {
		return m.values[i], true
	}
	return Undefined{}, false
}

// Lookup is like Get with a string key.
func (m *Map) Lookup(k string) (Value, bool) {
	return m.Get(String(k))
}

// Set sets the value for a key. A new key is appended to the key order; an
// existing key keeps its position. It panics if the key is not a String or
// Int.
func (m *Map) Set(k, v Value) {
	if !IsValidKey(k) {
		panic(fmt.Sprintf("invalid map key of kind %s", KindOf(k)))
	}
	if i, ok := m.index[k]; ok {
		m.values[i] = v
		return
	}
	if m.index == nil {
		m.index = make(map[Value]int)
	}
	m.index[k] = len(m.keys)
	m.keys = append(m.keys, k)
	m.values = append(m.values, v)
}

// Delete removes a key. It reports whether the key existed.
func (m *Map) Delete(k Value) bool {
	i, ok := m.index[k]
	if !ok {
		return false
	}
	delete(m.index, k)
	m.keys = append(m.keys[:i], m.keys[i+1:]...)
	m.values = append(m.values[:i], m.values[i+1:]...)
	for j := i; j < len(m.keys); j++ {
		m.index[m.keys[j]] = j
	}
	return true
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []Value {
	return append([]Value(nil), m.keys...)
}

// SortedKeys returns the keys with Int keys first in numeric order, followed
// by String keys in lexicographic order.
func (m *Map) SortedKeys() []Value {
	keys := m.Keys()
	sort.Slice(keys, func(i, j int) bool { return keyLess(keys[i], keys[j]) })
	return keys
}

func keyLess(a, b Value) bool {
	switch a := a.(type) {
	case Int:
		if b, ok := b.(Int); ok {
			return a < b
		}
		return true
	case String:
		if b, ok := b.(String); ok {
			return a < b
		}
		return false
	}
	return false
}

// Range calls f for each entry in insertion order, stopping when f returns
// false.
func (m *Map) Range(f func(k, v Value) bool) {
	for i, k := range m.keys {
		if !f(k, m.values[i]) {
			return
		}
	}
}
