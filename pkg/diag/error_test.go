package diag

import (
	"bytes"
	"errors"
	"testing"

	"github.com/tconf/tconf/pkg/testutil"
	"github.com/tconf/tconf/pkg/url"
)

var dedent = testutil.Dedent

func setCulpritMarkers(t *testing.T, start, end string) {
	testutil.Set(t, &culpritStart, start)
	testutil.Set(t, &culpritEnd, end)
}

func setMessageMarkers(t *testing.T, start, end string) {
	testutil.Set(t, &messageStart, start)
	testutil.Set(t, &messageEnd, end)
}

func loc(u string, line, col int) Location {
	return Location{URL: url.Parse(u), Line: line, Column: col}
}

func TestError_Error(t *testing.T) {
	inner := Errorf(Parse, loc("file:syntax_error.txt", 4, 1),
		"syntax error, unexpected T_IDENTIFIER")
	outer := &Error{
		Kind:        Parse,
		Location:    loc("file:include_syntax_error.txt", 2, 1),
		Message:     "Could not include file 'file:syntax_error.txt'",
		PreviousMsg: inner.Error(),
		Cause:       inner,
	}

	want := "file:syntax_error.txt:4:1: syntax error, unexpected T_IDENTIFIER.\n" +
		"file:include_syntax_error.txt:2:1: Could not include file 'file:syntax_error.txt'."
	if got := outer.Error(); got != want {
		t.Errorf("Error() -> %q, want %q", got, want)
	}
	if !errors.Is(outer, inner) {
		t.Errorf("outer error does not wrap inner error")
	}
}

func TestError_UnknownLine(t *testing.T) {
	err := Errorf(IO, loc("file:a.conf", 0, 0), "could not read file")
	if got, want := err.Error(), "file:a.conf: could not read file."; got != want {
		t.Errorf("Error() -> %q, want %q", got, want)
	}
}

func TestWrap(t *testing.T) {
	base := errors.New("division by zero")
	err := Wrap(InvalidOperation, loc("file:a", 1, 3), base)
	if err.Message != "division by zero" || err.Cause != base {
		t.Errorf("Wrap -> %#v", err)
	}
	if again := Wrap(IO, loc("file:b", 2, 2), err); again != err {
		t.Errorf("Wrap of *Error should return it unchanged")
	}
}

func TestError_Show(t *testing.T) {
	setCulpritMarkers(t, "<", ">")
	setMessageMarkers(t, "{", "}")

	src := "a: 1\nb: 1 + \"x\"\n"
	err := &Error{
		Kind:     InvalidOperation,
		Location: loc("file:a.conf", 2, 4),
		Message:  "cannot apply '+' to int 1 and string \"x\"",
		Context:  NewContext("file:a.conf", src, Ranging{8, 15}),
	}
	want := dedent(`
		Invalid operation: {cannot apply '+' to int 1 and string "x"}
		  file:a.conf:2:4: b: <1 + "x">`)
	if got := err.Show(""); got != want {
		t.Errorf("Show() ->\n%s\nwant\n%s", got, want)
	}
}

func TestError_ShowChain(t *testing.T) {
	setCulpritMarkers(t, "<", ">")
	setMessageMarkers(t, "{", "}")

	inner := Errorf(Parse, loc("file:b", 1, 1), "syntax error, unexpected T_IDENTIFIER")
	outer := &Error{Kind: Parse, Location: loc("file:a", 2, 1),
		Message: "Could not include file 'file:b'", PreviousMsg: inner.Error(), Cause: inner}
	want := dedent(`
		Parse error: {syntax error, unexpected T_IDENTIFIER}
		  file:b:1:1
		Parse error: {Could not include file 'file:b'}
		  file:a:2:1`)
	if got := outer.Show(""); got != want {
		t.Errorf("Show() ->\n%s\nwant\n%s", got, want)
	}
}

func TestShowError_NoStylesForNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	ShowError(&buf, errors.New("boom"))
	if got := buf.String(); got != "boom\n" {
		t.Errorf("ShowError wrote %q", got)
	}
}

func TestPositionOf(t *testing.T) {
	src := "ab\ncé\nx"
	for _, test := range []struct {
		pos       int
		line, col int
	}{
		{0, 1, 1},
		{2, 1, 3},
		{3, 2, 1},
		{6, 2, 3},
		{7, 3, 1},
	} {
		line, col := PositionOf(src, test.pos)
		if line != test.line || col != test.col {
			t.Errorf("PositionOf(%d) -> %d:%d, want %d:%d", test.pos, line, col, test.line, test.col)
		}
	}
}

func TestContext_ShowMultiLine(t *testing.T) {
	setCulpritMarkers(t, "<", ">")
	c := NewContext("x", "a: [1,\n2]\n", Ranging{3, 9})
	want := "a: <[1,>\n   <2]>"
	if got := c.Show(""); got != want {
		t.Errorf("Show() -> %q, want %q", got, want)
	}
}
