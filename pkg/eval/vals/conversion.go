package vals

import (
	"fmt"
	"math"
	"reflect"
	"strconv"

	"github.com/tconf/tconf/pkg/eval/errs"
	"github.com/tconf/tconf/pkg/url"
)

// ConversionError is returned when a value cannot be converted to the
// requested type.
type ConversionError struct {
	From Value
	To   string
}

func (e ConversionError) Error() string {
	if IsUndefined(e.From) {
		return "cannot convert undefined to " + e.To
	}
	return fmt.Sprintf("cannot convert %s %s to %s", KindOf(e.From), ReprPlain(e.From), e.To)
}

// ToInt converts a value to an int64. Floats are truncated toward zero, and
// bools become 0 or 1.
func ToInt(v Value) (int64, error) {
	switch v := v.(type) {
	case Int:
		return int64(v), nil
	case Float:
		f := math.Trunc(float64(v))
		if math.IsNaN(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return 0, ConversionError{v, "int"}
		}
		return int64(f), nil
	case Bool:
		return int64(boolToInt(v)), nil
	}
	return 0, ConversionError{v, "int"}
}

// ToFloat converts an int or float to a float64.
func ToFloat(v Value) (float64, error) {
	switch v := v.(type) {
	case Int:
		return float64(v), nil
	case Float:
		return float64(v), nil
	}
	return 0, ConversionError{v, "float"}
}

// ToBool converts a value to its truthiness. It never fails.
func ToBool(v Value) bool { return Truth(v) }

// ToString converts a value to a string. Strings convert to themselves, URLs
// to their text, and other defined values to their representation.
func ToString(v Value) (string, error) {
	switch v := v.(type) {
	case nil, Undefined:
		return "", ConversionError{v, "string"}
	case String:
		return string(v), nil
	case URL:
		return v.String(), nil
	}
	return ReprPlain(v), nil
}

// ToURL converts a URL or a string to a url.URL.
func ToURL(v Value) (url.URL, error) {
	switch v := v.(type) {
	case URL:
		return v.URL, nil
	case String:
		return url.Parse(string(v)), nil
	}
	return url.URL{}, ConversionError{v, "url"}
}

// ToColor converts a color or a "#rrggbb[aa]" string to a Color.
func ToColor(v Value) (Color, error) {
	switch v := v.(type) {
	case Color:
		return v, nil
	case String:
		c, err := ParseColor(string(v))
		if err != nil {
			return Color{}, ConversionError{v, "color"}
		}
		return c, nil
	}
	return Color{}, ConversionError{v, "color"}
}

// ScanToGo converts a Value to a Go value and stores it in *ptr. Supported
// targets are pointers to the Go integer and float types, bool, string,
// url.URL, Color, Value, *Map and *Vector, as well as slices and string-keyed
// maps of those.
func ScanToGo(src Value, ptr any) error {
	switch ptr := ptr.(type) {
	case *int:
		i, err := scanInt(src, math.MinInt, math.MaxInt)
		*ptr = int(i)
		return err
	case *int64:
		i, err := ToInt(src)
		*ptr = i
		return err
	case *int32:
		i, err := scanInt(src, math.MinInt32, math.MaxInt32)
		*ptr = int32(i)
		return err
	case *uint:
		i, err := scanInt(src, 0, math.MaxInt)
		*ptr = uint(i)
		return err
	case *uint16:
		i, err := scanInt(src, 0, math.MaxUint16)
		*ptr = uint16(i)
		return err
	case *float64:
		f, err := ToFloat(src)
		*ptr = f
		return err
	case *float32:
		f, err := ToFloat(src)
		*ptr = float32(f)
		return err
	case *bool:
		*ptr = ToBool(src)
		return nil
	case *string:
		s, err := ToString(src)
		*ptr = s
		return err
	case *url.URL:
		u, err := ToURL(src)
		*ptr = u
		return err
	case *Color:
		c, err := ToColor(src)
		*ptr = c
		return err
	case *Value:
		*ptr = src
		return nil
	case **Map:
		m, ok := src.(*Map)
		if !ok {
			return ConversionError{src, "map"}
		}
		*ptr = m
		return nil
	case **Vector:
		v, ok := src.(*Vector)
		if !ok {
			return ConversionError{src, "vector"}
		}
		*ptr = v
		return nil
	case *any:
		*ptr = ToGo(src)
		return nil
	}
	return scanReflect(src, reflect.ValueOf(ptr))
}

func scanInt(src Value, low, high int64) (int64, error) {
	i, err := ToInt(src)
	if err != nil {
		return 0, err
	}
	if i < low || i > high {
		return 0, errs.OutOfRange{What: "integer", ValidLow: int(max(low, math.MinInt)),
			ValidHigh: int(min(high, math.MaxInt)), Actual: strconv.FormatInt(i, 10)}
	}
	return i, nil
}

func scanReflect(src Value, ptr reflect.Value) error {
	if ptr.Kind() != reflect.Pointer || ptr.IsNil() {
		return fmt.Errorf("internal bug: need non-nil pointer, got %s", ptr.Type())
	}
	dst := ptr.Elem()
	switch dst.Kind() {
	case reflect.Slice:
		vec, ok := src.(*Vector)
		if !ok {
			return ConversionError{src, "vector"}
		}
		slice := reflect.MakeSlice(dst.Type(), vec.Len(), vec.Len())
		for i, elem := range vec.elems {
			if err := ScanToGo(elem, slice.Index(i).Addr().Interface()); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
		}
		dst.Set(slice)
		return nil
	case reflect.Map:
		m, ok := src.(*Map)
		if !ok {
			return ConversionError{src, "map"}
		}
		if dst.Type().Key().Kind() != reflect.String {
			return fmt.Errorf("cannot scan into %s", dst.Type())
		}
		result := reflect.MakeMapWithSize(dst.Type(), m.Len())
		for i, k := range m.keys {
			elem := reflect.New(dst.Type().Elem())
			if err := ScanToGo(m.values[i], elem.Interface()); err != nil {
				return fmt.Errorf("key %s: %w", ReprPlain(k), err)
			}
			ks, _ := ToString(k)
			result.SetMapIndex(reflect.ValueOf(ks).Convert(dst.Type().Key()), elem.Elem())
		}
		dst.Set(result)
		return nil
	}
	return fmt.Errorf("cannot scan into %s", dst.Type())
}

// ToGo converts a Value to plain Go values: nil, bool, int64, float64, string,
// []any and map[string]any. URLs become strings, colors become "#rrggbbaa"
// strings, and integer map keys become decimal strings.
func ToGo(v Value) any {
	switch v := v.(type) {
	case nil, Undefined, Null:
		return nil
	case Bool:
		return bool(v)
	case Int:
		return int64(v)
	case Float:
		return float64(v)
	case String:
		return string(v)
	case URL:
		return v.String()
	case Color:
		return v.Hex()
	case *Vector:
		elems := make([]any, v.Len())
		for i, e := range v.elems {
			elems[i] = ToGo(e)
		}
		return elems
	case *Map:
		m := make(map[string]any, v.Len())
		for i, k := range v.keys {
			ks, _ := ToString(k)
			m[ks] = ToGo(v.values[i])
		}
		return m
	}
	return nil
}
