// Package eval evaluates parsed configuration files.
package eval

import (
	"github.com/rs/zerolog"

	"github.com/tconf/tconf/pkg/eval/vals"
	"github.com/tconf/tconf/pkg/fsutil"
	"github.com/tconf/tconf/pkg/logutil"
	"github.com/tconf/tconf/pkg/parse"
	"github.com/tconf/tconf/pkg/url"
)

// DefaultMaxIncludeDepth is the include depth used when
// Options.MaxIncludeDepth is 0.
const DefaultMaxIncludeDepth = 16

// Options controls an Evaler.
type Options struct {
	// Maximum nesting of include calls. A file that includes itself fails
	// when this depth is reached.
	MaxIncludeDepth int
	// Returns the working directory used by cwd(). Defaults to fsutil.Getwd.
	Getwd func() (url.URL, error)
	// Reads files. Defaults to parse.ReadLocalFile.
	ReadFile parse.ReadFileFunc
	// Defaults to the "eval" logger from logutil.
	Logger *zerolog.Logger
}

// File is a file read during evaluation.
type File struct {
	URL url.URL
	// Hex-encoded SHA-256 digest of the content.
	Hash string
}

// Evaler evaluates files. It records every file it reads, which is useful for
// caching results and watching for changes. An Evaler must not be used
// concurrently.
type Evaler struct {
	maxDepth int
	getwd    func() (url.URL, error)
	readFile parse.ReadFileFunc
	logger   zerolog.Logger

	files []File
	seen  map[url.URL]bool
	// Set by the first call to cwd().
	wd     url.URL
	usedWd bool
	// Syntax tree of the last top-level file.
	tree *parse.Object
}

// NewEvaler creates a new Evaler.
func NewEvaler(opts Options) *Evaler {
	ev := &Evaler{
		maxDepth: opts.MaxIncludeDepth,
		getwd:    opts.Getwd,
		readFile: opts.ReadFile,
		seen:     make(map[url.URL]bool),
	}
	if ev.maxDepth == 0 {
		ev.maxDepth = DefaultMaxIncludeDepth
	}
	if ev.getwd == nil {
		ev.getwd = fsutil.Getwd
	}
	if ev.readFile == nil {
		ev.readFile = parse.ReadLocalFile
	}
	if opts.Logger != nil {
		ev.logger = *opts.Logger
	} else {
		ev.logger = logutil.GetLogger("eval")
	}
	return ev
}

// EvalFile reads, parses and evaluates a file, and returns its root object.
// Errors are *diag.Error values.
func (ev *Evaler) EvalFile(u url.URL) (*vals.Map, error) {
	ev.tree = nil
	return ev.evalFile(NewContext(), u, 0)
}

// EvalSource parses and evaluates source code.
func (ev *Evaler) EvalSource(src parse.Source) (*vals.Map, error) {
	tree, err := parse.Parse(src)
	if err != nil {
		return nil, err
	}
	return ev.Eval(NewContext(), src, tree)
}

// Eval evaluates a parsed file in a context, and returns its root object. The
// same tree may be evaluated any number of times; with fresh contexts, the
// results are equal.
//
// If ctx already has frames, the tree is evaluated like a nested object
// literal and / keeps referring to the existing root.
func (ev *Evaler) Eval(ctx *Context, src parse.Source, tree *parse.Object) (*vals.Map, error) {
	return ev.eval(ctx, src, tree, 0)
}

func (ev *Evaler) eval(ctx *Context, src parse.Source, tree *parse.Object, depth int) (*vals.Map, error) {
	fm := &Frame{ev: ev, ctx: ctx, src: src, depth: depth}
	v, err := fm.Rvalue(tree)
	if err != nil {
		return nil, err
	}
	return v.(*vals.Map), nil
}

func (ev *Evaler) evalFile(ctx *Context, u url.URL, depth int) (*vals.Map, error) {
	ev.logger.Debug().Stringer("url", u).Int("depth", depth).Msg("loading file")
	src, err := ev.readSource(u)
	if err != nil {
		return nil, err
	}
	tree, err := parse.Parse(src)
	if err != nil {
		return nil, err
	}
	if depth == 0 {
		ev.tree = tree
	}
	return ev.eval(ctx, src, tree, depth)
}

func (ev *Evaler) readSource(u url.URL) (parse.Source, error) {
	src, err := parse.ReadSource(u, ev.readFile)
	if err != nil {
		return src, err
	}
	if !ev.seen[u] {
		ev.seen[u] = true
		ev.files = append(ev.files, File{u, fsutil.HashBytes([]byte(src.Code))})
	}
	return src, nil
}

// Files returns the files read so far, in the order they were first read.
func (ev *Evaler) Files() []File {
	return append([]File(nil), ev.files...)
}

// Wd returns the working directory cwd() evaluated against, and whether cwd()
// was called at all.
func (ev *Evaler) Wd() (url.URL, bool) { return ev.wd, ev.usedWd }

// Tree returns the syntax tree of the file last evaluated by EvalFile, or nil
// if it could not be parsed.
func (ev *Evaler) Tree() *parse.Object { return ev.tree }

// All calls to cwd() during the lifetime of an Evaler see the same directory.
func (ev *Evaler) workingDir() (url.URL, error) {
	if ev.usedWd {
		return ev.wd, nil
	}
	wd, err := ev.getwd()
	if err != nil {
		return url.URL{}, err
	}
	ev.wd, ev.usedWd = wd, true
	return wd, nil
}

