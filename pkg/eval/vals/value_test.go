package vals

import (
	"math"
	"testing"

	"github.com/tconf/tconf/pkg/url"
)

func TestScalars(t *testing.T) {
	TestValue(t, Undefined{}).Kind(UndefinedKind).Truth(false).Repr("undefined").
		Equal(Undefined{}).NotEqual(Null{})
	TestValue(t, nil).Kind(UndefinedKind).Equal(Undefined{})
	TestValue(t, Null{}).Kind(NullKind).Truth(false).Repr("null").NotEqual(Bool(false))
	TestValue(t, Bool(true)).Kind(BoolKind).Truth(true).Repr("true").NotEqual(Int(1))
	TestValue(t, Int(35)).Kind(IntKind).Truth(true).Repr("35").Equal(Float(35)).Len(-1)
	TestValue(t, Int(0)).Truth(false)
	TestValue(t, Float(1.1)).Kind(FloatKind).Repr("1.1").NotEqual(Int(1))
	TestValue(t, Float(2)).Repr("2.0")
	TestValue(t, Float(math.Inf(-1))).Repr("-inf")
	TestValue(t, String("foo")).Kind(StringKind).Truth(true).Repr(`"foo"`).Len(3)
	TestValue(t, String("é\n\x01")).Repr(`"é\n\u0001"`).Len(3)
	TestValue(t, String("")).Truth(false)
	TestValue(t, NewURL(url.Parse("file:a.txt"))).Kind(URLKind).Repr("<file:a.txt>").
		Equal(String("file:a.txt"), NewURL(url.Parse("file:a.txt"))).
		NotEqual(String("file:b.txt"))
}

func TestContainers(t *testing.T) {
	vec := MakeVector(1, 2, 3)
	TestValue(t, vec).Kind(VectorKind).Truth(true).Len(3).Repr("[1,2,3]").
		Equal(MakeVector(1, 2.0, 3)).NotEqual(MakeVector(1, 2)).
		Index(Int(1), Int(2)).
		IndexError(Int(3), "out of range: vector index must be from 0 to 2, but is 3").
		IndexError(String("a"), `cannot apply '[]' to vector [1,2,3] and string "a"`)
	TestValue(t, NewVector()).Truth(false).Repr("[]")

	m := MakeMap("b", "foo", "a", 1, "c", MakeMap("y", 1.1, "x", 1))
	TestValue(t, m).Kind(MapKind).Len(3).
		Repr(`{"a":1,"b":"foo","c":{"x":1,"y":1.1}}`).
		Equal(MakeMap("a", 1, "c", MakeMap("x", 1, "y", 1.1), "b", "foo")).
		Index(String("a"), Int(1)).
		Index(String("missing"), Undefined{})
	TestValue(t, NewMap()).Truth(false).Repr("{}")
	TestValue(t, MakeMap(1, "x", "a", 2)).
		Repr(`{1:"x","a":2}`).
		Index(Int(1), String("x")).
		IndexError(Int(2), "no such key: 2")
}

func TestMap_OrderAndDelete(t *testing.T) {
	m := MakeMap("z", 1, "a", 2, "m", 3)
	m.Set(String("a"), Int(20))
	if got := ReprPlain(NewVector(m.Keys()...)); got != `["z","a","m"]` {
		t.Errorf("Keys() -> %s", got)
	}
	if !m.Delete(String("z")) || m.Delete(String("z")) {
		t.Errorf("Delete reported wrong existence")
	}
	if v, ok := m.Lookup("m"); !ok || !Equal(v, Int(3)) {
		t.Errorf("Lookup after Delete -> %v, %v", v, ok)
	}
	if got := ReprPlain(NewVector(m.Keys()...)); got != `["a","m"]` {
		t.Errorf("Keys() after Delete -> %s", got)
	}
}

func TestRepr_Pretty(t *testing.T) {
	m := MakeMap("a", MakeVector(1, 2), "b", NewMap())
	want := "{\n  \"a\": [\n    1,\n    2\n  ],\n  \"b\": {}\n}"
	if got := Repr(m, 0); got != want {
		t.Errorf("Repr(m, 0) ->\n%s\nwant\n%s", got, want)
	}
}

func TestColor(t *testing.T) {
	c, err := ParseColor("#ff000080")
	if err != nil {
		t.Fatal(err)
	}
	if c.R != 1 || c.G != 0 || c.B != 0 {
		t.Errorf("ParseColor -> %v", c)
	}
	TestValue(t, c).Kind(ColorKind).Repr("#ff000080")
	for _, hex := range []string{"#000000ff", "#0b1a2c3d", "#808080ff", "#fefdfcfb"} {
		c, _ := ParseColor(hex)
		if got := c.Hex(); got != hex {
			t.Errorf("color %s round-trips to %s", hex, got)
		}
	}
	if c, _ := ParseColor("#ffffff"); c.A != 1 {
		t.Errorf("missing alpha should be opaque, got %v", c.A)
	}
	if _, err := ParseColor("#fff"); err == nil {
		t.Errorf("ParseColor(#fff) should fail")
	}
	// Mid-grey is much darker than 0.5 in linear space.
	if c, _ := ParseColor("#808080"); c.R > 0.25 || c.R < 0.2 {
		t.Errorf("linear value of #80 is %v", c.R)
	}
}

func TestCopy(t *testing.T) {
	inner := MakeVector(1)
	m := MakeMap("v", inner)
	c := Copy(m).(*Map)
	inner.Append(Int(2))
	if got := ReprPlain(c); got != `{"v":[1]}` {
		t.Errorf("copy was affected by mutation: %s", got)
	}
}

func TestGetByPath(t *testing.T) {
	root := MakeMap("a", MakeMap("b", MakeVector("x", "y")), "n", 1)
	for _, test := range []struct {
		path []string
		want Value
	}{
		{nil, root},
		{[]string{"n"}, Int(1)},
		{[]string{"a", "b", "1"}, String("y")},
		{[]string{"a", "b", "2"}, Undefined{}},
		{[]string{"a", "c"}, Undefined{}},
		{[]string{"n", "x"}, Undefined{}},
	} {
		if got := GetByPath(root, test.path); !Equal(got, test.want) {
			t.Errorf("GetByPath(%v) -> %s, want %s", test.path, ReprPlain(got), ReprPlain(test.want))
		}
	}
}
