package vals

import (
	"testing"
)

// Tester is a helper for testing properties of a value.
type Tester struct {
	t *testing.T
	v Value
}

// TestValue returns a Tester for v.
func TestValue(t *testing.T, v Value) Tester {
	return Tester{t, v}
}

// Kind tests the Kind of the value.
func (vt Tester) Kind(wantKind Kind) Tester {
	vt.t.Helper()
	if kind := KindOf(vt.v); kind != wantKind {
		vt.t.Errorf("KindOf(v) = %s, want %s", kind, wantKind)
	}
	return vt
}

// Truth tests the Truth of the value.
func (vt Tester) Truth(want bool) Tester {
	vt.t.Helper()
	if b := Truth(vt.v); b != want {
		vt.t.Errorf("Truth(v) = %v, want %v", b, want)
	}
	return vt
}

// Len tests the Len of the value.
func (vt Tester) Len(wantLen int) Tester {
	vt.t.Helper()
	if l := Len(vt.v); l != wantLen {
		vt.t.Errorf("Len(v) = %v, want %v", l, wantLen)
	}
	return vt
}

// Repr tests the compact Repr of the value.
func (vt Tester) Repr(wantRepr string) Tester {
	vt.t.Helper()
	if r := ReprPlain(vt.v); r != wantRepr {
		vt.t.Errorf("Repr(v) = %s, want %s", r, wantRepr)
	}
	return vt
}

// Equal tests that the value is Equal to every of the given values.
func (vt Tester) Equal(others ...Value) Tester {
	vt.t.Helper()
	for _, other := range others {
		if !Equal(vt.v, other) {
			vt.t.Errorf("Equal(v, %s) = false, want true", ReprPlain(other))
		}
	}
	return vt
}

// NotEqual tests that the value is not Equal to any of the given values.
func (vt Tester) NotEqual(others ...Value) Tester {
	vt.t.Helper()
	for _, other := range others {
		if Equal(vt.v, other) {
			vt.t.Errorf("Equal(v, %s) = true, want false", ReprPlain(other))
		}
	}
	return vt
}

// Index tests that indexing the value with the given key returns the wanted
// value and no error.
func (vt Tester) Index(key, wantVal Value) Tester {
	vt.t.Helper()
	got, err := Index(vt.v, key)
	if err != nil {
		vt.t.Errorf("Index(v, %s) -> err %v, want nil", ReprPlain(key), err)
	}
	if !Equal(got, wantVal) {
		vt.t.Errorf("Index(v, %s) -> %s, want %s", ReprPlain(key), ReprPlain(got), ReprPlain(wantVal))
	}
	return vt
}

// IndexError tests that indexing the value with the given key returns an
// error with the given message.
func (vt Tester) IndexError(key Value, wantMsg string) Tester {
	vt.t.Helper()
	_, err := Index(vt.v, key)
	if err == nil || err.Error() != wantMsg {
		vt.t.Errorf("Index(v, %s) -> err %v, want %s", ReprPlain(key), err, wantMsg)
	}
	return vt
}
