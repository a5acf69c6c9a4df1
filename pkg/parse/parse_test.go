package parse

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tconf/tconf/pkg/diag"
	"github.com/tconf/tconf/pkg/must"
	"github.com/tconf/tconf/pkg/testutil"
	"github.com/tconf/tconf/pkg/url"
)

func mustParse(t *testing.T, code string) *Object {
	t.Helper()
	root, err := Parse(SourceForTest(code))
	if err != nil {
		t.Fatalf("Parse(%q) -> error %v", code, err)
	}
	return root
}

var parseTests = []struct {
	name string
	code string
	want string
}{
	{"assignments", "a:35 b:3", "{a: 35, b: 3}"},
	{"precedence", "c: a + b * c - d", "{c: ((a + (b * c)) - d)}"},
	{"left associativity", "c: a - b - c", "{c: ((a - b) - c)}"},
	{"power is right associative", "c: a ** b ** c", "{c: (a ** (b ** c))}"},
	{"unary binds tighter than power", "c: -a ** 2", "{c: ((-a) ** 2)}"},
	{"double unary minus", "y:--a", "{y: (-(-a))}"},
	{"keyword operators", "x: not a and b or c xor d",
		"{x: (((not a) and b) or (c xor d))}"},
	{"comparison below arithmetic", "m: a == b + 1", "{m: (a == (b + 1))}"},
	{"shift between additive and relational", "k: a << 1 + 2 < b", "{k: ((a << (1 + 2)) < b)}"},
	{"bitwise precedence", "h: a | b ^ c & d", "{h: (a | (b ^ (c & d)))}"},
	{"ternary", "t: a ? 1 : b ? 2 : 3", "{t: (a ? 1 : (b ? 2 : 3))}"},
	{"parentheses", "p: (a + b) * c", "{p: ((a + b) * c)}"},
	{"member and index", "v: a.b[0].c[\"d\"]", `{v: a.b[0].c["d"]}`},
	{"append index", "a[]: 1", "{a[]: 1}"},
	{"calls", `x: include("a.txt") y: path()`, `{x: include("a.txt"), y: path()}`},
	{"literals", "a: true b: null c: 1.5 d: #ff0000 e: <file:x.txt> f: \"s\\n\"",
		"{a: true, b: null, c: 1.5, d: #ff0000ff, e: <file:x.txt>, f: \"s\\n\"}"},
	{"arrays with trailing comma", "a: [1, [2, 3], ]", "{a: [1, [2, 3]]}"},
	{"nested objects", "a: {b: 1, c: {}}", "{a: {b: 1, c: {}}}"},
	{"variable and root objects", "$.a: 3 c: $.a /.b: /.a",
		"{$.a: 3, c: $.a, /.b: /.a}"},
	{"root path starts a new statement", "b: { foo: /.a /.a: 5 }",
		"{b: {foo: /.a, /.a: 5}}"},
	{"division is not a root path", "f: a/b", "{f: (a / b)}"},
	{"section headers", "[b]\nx: 1\n[]\ny: 2", "{[b], x: 1, [], y: 2}"},
	{"index does not continue across newlines", "a: b\n[c]", "{a: b, [c]}"},
	{"index continues on the same line", "a: b [c]", "{a: b[c]}"},
	{"call statements", "include(\"a\")\nx: 1", `{include("a"), x: 1}`},
	{"object statements merge", "a: 1\n{ b: 2 }", "{a: 1, {b: 2}}"},
	{"assignment operators", "a: 1\na += 2\n$.x = 3", "{a: 1, (a += 2), ($.x = 3)}"},
	{"JSON document", `{"a": 1, "b": [1, 2]}`, `{"a": 1, "b": [1, 2]}`},
	{"separators", "a: 1; b: 2,, c: 3", "{a: 1, b: 2, c: 3}"},
	{"empty file", "", "{}"},
}

func TestParse(t *testing.T) {
	for _, test := range parseTests {
		t.Run(test.name, func(t *testing.T) {
			root := mustParse(t, test.code)
			if got := String(root); got != test.want {
				t.Errorf("Parse(%q) renders as %q, want %q", test.code, got, test.want)
			}
		})
	}
}

func TestParse_RenderRoundTrips(t *testing.T) {
	for _, test := range parseTests {
		first := String(mustParse(t, test.code))
		second := String(mustParse(t, first))
		if first != second {
			t.Errorf("%s: rendering %q reparses as %q", test.name, first, second)
		}
	}
}

func TestParse_Tree(t *testing.T) {
	root := mustParse(t, `"a": x - 1`)
	assign := root.Statements[0].(*Assignment)
	key := assign.Key.(*Name)
	if key.Value != "a" || !key.Quoted {
		t.Errorf("quoted key parsed as %#v", key)
	}
	op := assign.Value.(*BinaryOp)
	if diff := cmp.Diff(diag.Ranging{From: 5, To: 10}, op.Range()); diff != "" {
		t.Errorf("range of binary op (-want +got):\n%s", diff)
	}
	if got := op.Loc().Column; got != 8 {
		t.Errorf("binary op is located at column %d, want 8 (the operator)", got)
	}
}

var parseErrorTests = []struct {
	name    string
	code    string
	wantErr string
}{
	{"bare identifier", "a: 1\nb: 2\nc: 3\nfoo\n",
		"file:[test]:4:1: syntax error, unexpected T_IDENTIFIER."},
	{"bare integer", "a: 1 2", "file:[test]:1:6: syntax error, unexpected T_INTEGER."},
	{"bare expression", "a + b", "file:[test]:1:1: syntax error, unexpected T_IDENTIFIER."},
	{"missing value", "a:", "file:[test]:1:3: syntax error, unexpected end of file."},
	{"unclosed object", "a: {b: 1", "file:[test]:1:9: syntax error, unexpected end of file, expecting '}'."},
	{"unclosed array", "a: [1 2]", "file:[test]:1:7: syntax error, unexpected T_INTEGER, expecting ']'."},
	{"two section paths", "[a, b]", "file:[test]:1:3: syntax error, unexpected ',', expecting ']'."},
	{"member needs a name", "a: b.1", "file:[test]:1:6: syntax error, unexpected T_INTEGER, expecting T_IDENTIFIER."},
	{"stray closer", "a: 1 }", "file:[test]:1:6: syntax error, unexpected '}'."},
	{"lexer errors are parse errors", `a: "x`, "file:[test]:1:4: unterminated string literal."},
}

func TestParse_Errors(t *testing.T) {
	for _, test := range parseErrorTests {
		t.Run(test.name, func(t *testing.T) {
			root, err := Parse(SourceForTest(test.code))
			if err == nil || err.Error() != test.wantErr {
				t.Fatalf("Parse(%q) -> error %v, want %s", test.code, err, test.wantErr)
			}
			if len(root.Statements) != 0 {
				t.Errorf("Parse returned non-empty tree on error")
			}
			if e, ok := err.(*diag.Error); !ok || e.Kind != diag.Parse {
				t.Errorf("error is %#v, want a parse error", err)
			}
		})
	}
}

func TestQuote(t *testing.T) {
	if got, want := Quote("a\"b\\\n\a\x01"), "\"a\\\"b\\\\\\n\\a\x01\""; got != want {
		t.Errorf("Quote -> %q, want %q", got, want)
	}
	// Quoted strings lex back to the same value.
	for _, s := range []string{"", "é\t\x00\x7f", "\\\"", "\v\f\b\r", `\q`} {
		tokens, err := Lex(SourceForTest(Quote(s)))
		if err != nil || tokens[0].Kind != StringToken || tokens[0].Value != s {
			t.Errorf("Quote(%q) = %s lexes to %v, %v", s, Quote(s), tokens, err)
		}
	}
}

func TestParseFile(t *testing.T) {
	testutil.InTempDir(t)
	must.WriteFile("a.conf", "a: 1 + 2")

	tree, err := ParseFile(url.Parse("file:a.conf"))
	if err != nil {
		t.Fatal(err)
	}
	if got := String(tree); got != "{a: (1 + 2)}" {
		t.Errorf("got %q", got)
	}

	_, err = ParseFile(url.Parse("file:missing.conf"))
	var e *diag.Error
	if !errors.As(err, &e) || e.Kind != diag.IO || !strings.HasPrefix(e.Message, "Could not read file: ") {
		t.Errorf("got error %v, want an io error", err)
	}
	if got := e.Location.String(); got != "file:missing.conf" {
		t.Errorf("got location %q", got)
	}
}
