package eval

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tconf/tconf/pkg/diag"
	"github.com/tconf/tconf/pkg/eval/vals"
	"github.com/tconf/tconf/pkg/fsutil"
	"github.com/tconf/tconf/pkg/must"
	"github.com/tconf/tconf/pkg/parse"
	"github.com/tconf/tconf/pkg/testutil"
	"github.com/tconf/tconf/pkg/url"
)

func TestInclude_MergesAndSections(t *testing.T) {
	testutil.InTempDir(t)
	testutil.ApplyDir(testutil.Dir{
		"included.txt": `foo:"bar"`,
		"includer.txt": testutil.Dedent(`
			include("included.txt")
			a:{ include("included.txt") }
			[b]
			include(<file:included.txt>)
			`),
	})

	ev := NewEvaler(Options{})
	root, err := ev.EvalFile(url.Parse("file:includer.txt"))
	if err != nil {
		t.Fatal(err)
	}
	want := `{"a":{"foo":"bar"},"b":{"foo":"bar"},"foo":"bar"}`
	if got := vals.ReprPlain(root); got != want {
		t.Errorf("got %s, want %s", got, want)
	}

	wantFiles := []File{
		{url.Parse("file:includer.txt"), must.OK1(fsutil.HashFile("includer.txt"))},
		{url.Parse("file:included.txt"), must.OK1(fsutil.HashFile("included.txt"))},
	}
	if diff := cmp.Diff(wantFiles, ev.Files(), cmp.Comparer(url.URL.Equal)); diff != "" {
		t.Errorf("Files() (-want +got):\n%s", diff)
	}
}

func TestInclude_SyntaxErrorIsChained(t *testing.T) {
	testutil.InTempDir(t)
	testutil.ApplyDir(testutil.Dir{
		"syntax_error.txt":         "a: 1\nb: 2\nc: 3\nfoo\n",
		"include_syntax_error.txt": "// Includes a broken file.\ninclude(\"syntax_error.txt\")\n",
	})

	_, err := NewEvaler(Options{}).EvalFile(url.Parse("file:include_syntax_error.txt"))
	wantMsg := "file:syntax_error.txt:4:1: syntax error, unexpected T_IDENTIFIER.\n" +
		"file:include_syntax_error.txt:2:1: Could not include file 'file:syntax_error.txt'."
	if err == nil || err.Error() != wantMsg {
		t.Fatalf("got error %v, want %s", err, wantMsg)
	}
	e := err.(*diag.Error)
	if e.Kind != diag.Parse {
		t.Errorf("got kind %v, want %v", e.Kind, diag.Parse)
	}
	var inner *diag.Error
	if !errors.As(e.Cause, &inner) || inner.Location.String() != "file:syntax_error.txt:4:1" {
		t.Errorf("cause %v does not have the inner location", e.Cause)
	}
}

func TestInclude_SharesVariablesButNotRoot(t *testing.T) {
	files := memFS{
		"file:conf/vars.txt": "$.x: 1 /.a: 2",
		"file:conf/main.txt": `include("vars.txt") y: $.x c: include(<file:vars.txt>)`,
	}
	root, err := NewEvaler(Options{ReadFile: files.readFile}).EvalFile(url.Parse("file:conf/main.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := vals.ReprPlain(root), `{"a":2,"c":{"a":2},"y":1}`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestInclude_RelativeToIncludingFile(t *testing.T) {
	files := memFS{
		"file:/etc/app/main.conf":   `include("sub/a.conf")`,
		"file:/etc/app/sub/a.conf":  `include("b.conf") x: 1`,
		"file:/etc/app/sub/b.conf":  `include("/etc/common.conf") y: 2`,
		"file:/etc/common.conf":     "z: 3",
		"file:/etc/app/common.conf": "wrong: 1",
	}
	root, err := NewEvaler(Options{ReadFile: files.readFile}).EvalFile(url.Parse("file:/etc/app/main.conf"))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := vals.ReprPlain(root), `{"x":1,"y":2,"z":3}`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestInclude_DepthIsLimited(t *testing.T) {
	files := memFS{"file:self.txt": `include("self.txt")`}
	ev := NewEvaler(Options{ReadFile: files.readFile, MaxIncludeDepth: 3})
	_, err := ev.EvalFile(url.Parse("file:self.txt"))
	if err == nil {
		t.Fatal("no error")
	}
	lines := strings.Split(err.Error(), "\n")
	wantLines := []string{
		"file:self.txt:1:1: include depth exceeds the maximum of 3.",
		"file:self.txt:1:1: Could not include file 'file:self.txt'.",
		"file:self.txt:1:1: Could not include file 'file:self.txt'.",
		"file:self.txt:1:1: Could not include file 'file:self.txt'.",
	}
	if diff := cmp.Diff(wantLines, lines); diff != "" {
		t.Errorf("error lines (-want +got):\n%s", diff)
	}
	if kind := err.(*diag.Error).Kind; kind != diag.InvalidOperation {
		t.Errorf("got kind %v", kind)
	}
}

func TestPath(t *testing.T) {
	files := memFS{
		"file:sub/a.txt": `p: path() q: path("b.txt") r: path(<file:c/d.txt>) s: path("/etc/x")`,
	}
	root, err := NewEvaler(Options{ReadFile: files.readFile}).EvalFile(url.Parse("file:sub/a.txt"))
	if err != nil {
		t.Fatal(err)
	}
	want := `{"p":<file:sub>,"q":<file:sub/b.txt>,"r":<file:sub/c/d.txt>,"s":<file:/etc/x>}`
	if got := vals.ReprPlain(root); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestCwd(t *testing.T) {
	getwd := func() (url.URL, error) { return url.Parse("file:/work"), nil }
	eval := func(code string) (string, error) {
		root, err := NewEvaler(Options{Getwd: getwd}).EvalSource(parse.SourceForTest(code))
		if err != nil {
			return "", err
		}
		return vals.ReprPlain(root), nil
	}

	got, err := eval(`a: cwd() b: cwd("x/y.conf") c: cwd(<file:z>)`)
	want := `{"a":<file:/work>,"b":<file:/work/x/y.conf>,"c":<file:/work/z>}`
	if got != want || err != nil {
		t.Errorf("got %s, %v, want %s", got, err, want)
	}

	_, err = eval(`a: cwd("/abs")`)
	wantMsg := "file:[test]:1:4: bad value: argument to cwd must be a relative path, but is /abs."
	if err == nil || err.Error() != wantMsg {
		t.Errorf("got error %v, want %s", err, wantMsg)
	}
}

func TestCwd_DefaultsToProcessWorkingDirectory(t *testing.T) {
	dir := testutil.InTempDir(t)
	root, err := NewEvaler(Options{}).EvalSource(parse.SourceForTest("a: cwd()"))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := vals.GetByPath(root, []string{"a"}), vals.NewURL(url.FromPath(dir)); !vals.Equal(got, want) {
		t.Errorf("got %s, want %s", vals.ReprPlain(got), vals.ReprPlain(want))
	}
}
