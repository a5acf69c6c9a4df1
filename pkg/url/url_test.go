package url

import (
	"testing"

	. "github.com/tconf/tconf/pkg/tt"
)

func TestParse(t *testing.T) {
	Test(t, Fn(func(s string) (string, string) {
		u := Parse(s)
		return u.Scheme(), u.Path()
	}).Named("Parse"),
		Args("file:included.txt").Rets("file", "included.txt"),
		Args("file:/etc/a.conf").Rets("file", "/etc/a.conf"),
		It("drops the authority").Args("file:///etc/a.conf").Rets("file", "/etc/a.conf"),
		Args("file://host/a").Rets("file", "/a"),
		It("lowercases the scheme").Args("FILE:x").Rets("file", "x"),
		It("treats drive letters as paths").Args("C:/x").Rets("", "C:/x"),
		Args("a/b.txt").Rets("", "a/b.txt"),
		Args("").Rets("", ""),
	)
}

func TestParent(t *testing.T) {
	Test(t, Fn(func(s string) string { return Parse(s).Parent().String() }).Named("Parent"),
		Args("file:includer.txt").Rets("file:"),
		Args("file:a/b/c.txt").Rets("file:a/b"),
		Args("file:/a.txt").Rets("file:/"),
		Args("file:/a/b.txt").Rets("file:/a"),
	)
}

func TestJoin(t *testing.T) {
	Test(t, Fn(func(base, other string) string {
		return Parse(base).Join(Parse(other)).String()
	}).Named("Join"),
		Args("file:", "included.txt").Rets("file:included.txt"),
		Args("file:", "file:included.txt").Rets("file:included.txt"),
		Args("file:a", "b/../c.txt").Rets("file:a/c.txt"),
		Args("file:/etc", "x.conf").Rets("file:/etc/x.conf"),
		It("keeps absolute paths").Args("file:/etc", "/usr/x").Rets("file:/usr/x"),
		It("keeps other schemes").Args("file:/etc", "res:x").Rets("res:/etc/x"),
		Args("file:a", "..").Rets("file:"),
		Args("file:/a", "").Rets("file:/a"),
	)
}

func TestPredicates(t *testing.T) {
	Test(t, Fn(func(s string) bool { return Parse(s).IsRelative() }).Named("IsRelative"),
		Args("file:a").Rets(true),
		Args("file:/a").Rets(false),
		Args("file:").Rets(true),
	)
	Test(t, IsValidScheme,
		Args("file").Rets(true),
		Args("x").Rets(false),
		Args("svn+ssh").Rets(true),
		Args("1ab").Rets(false),
	)
	Test(t, Fn(func(s string) string { return Parse(s).Base() }).Named("Base"),
		Args("file:a/b.txt").Rets("b.txt"),
		Args("file:b.txt").Rets("b.txt"),
	)
}

func TestEqualAndFromPath(t *testing.T) {
	if !FromPath("a/b").Equal(Parse("file:a/b")) {
		t.Errorf("FromPath(a/b) != file:a/b")
	}
	if Parse("file:a").Equal(Parse("res:a")) {
		t.Errorf("URLs with different schemes compare equal")
	}
	if Parse("file:a").Compare(Parse("file:b")) >= 0 {
		t.Errorf("file:a should sort before file:b")
	}
}
