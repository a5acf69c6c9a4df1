package eval

import (
	"errors"
	"fmt"

	"github.com/tconf/tconf/pkg/diag"
	"github.com/tconf/tconf/pkg/eval/errs"
	"github.com/tconf/tconf/pkg/eval/vals"
	"github.com/tconf/tconf/pkg/parse"
	"github.com/tconf/tconf/pkg/url"
)

type builtinFn func(fm *Frame, call *parse.Call, args []vals.Value) (vals.Value, error)

var builtinFns map[string]builtinFn

func init() {
	builtinFns = map[string]builtinFn{
		"include": include,
		"path":    pathFn,
		"cwd":     cwd,
	}
}

// IsBuiltin reports whether name is the name of a builtin function.
func IsBuiltin(name string) bool {
	_, ok := builtinFns[name]
	return ok
}

// Invoke calls the function named by the callee of a call with evaluated
// arguments. Only the builtin functions can be called.
func (fm *Frame) Invoke(call *parse.Call, args []vals.Value) (vals.Value, error) {
	name, ok := call.Callee.(*parse.Name)
	if !ok || name.Quoted {
		return nil, fm.errorpf(call.Callee, "expression is not callable")
	}
	fn, ok := builtinFns[name.Value]
	if !ok {
		return nil, fm.errorpf(call.Callee, "unknown function %s", name.Value)
	}
	v, err := fn(fm, call, args)
	return v, fm.errorp(call, err)
}

// Converts the argument of a builtin to a URL.
func urlArg(fn string, arg vals.Value) (url.URL, error) {
	switch arg := arg.(type) {
	case vals.URL:
		return arg.URL, nil
	case vals.String:
		return url.Parse(string(arg)), nil
	}
	return url.URL{}, errs.BadValue{
		What: "argument to " + fn, Valid: "string or url", Actual: vals.KindOf(arg).String()}
}

func include(fm *Frame, call *parse.Call, args []vals.Value) (vals.Value, error) {
	if len(args) != 1 {
		return nil, errs.ArityMismatch{What: "arguments to include",
			ValidLow: 1, ValidHigh: 1, Actual: len(args)}
	}
	u, err := urlArg("include", args[0])
	if err != nil {
		return nil, err
	}
	u = fm.src.URL.Parent().Join(u)
	if fm.depth >= fm.ev.maxDepth {
		return nil, fmt.Errorf("include depth exceeds the maximum of %d", fm.ev.maxDepth)
	}
	fm.ev.logger.Debug().Stringer("url", u).Stringer("from", call.Loc()).
		Int("depth", fm.depth+1).Msg("including file")
	root, err := fm.ev.evalFile(fm.ctx.fork(), u, fm.depth+1)
	if err != nil {
		kind := diag.InvalidOperation
		var inner *diag.Error
		if errors.As(err, &inner) {
			kind = inner.Kind
		}
		return nil, &diag.Error{
			Kind: kind, Location: call.Loc(),
			Message:     fmt.Sprintf("Could not include file '%s'", u),
			PreviousMsg: err.Error(), Cause: err,
			Context:     fm.contextOf(call),
		}
	}
	return root, nil
}

// The "path" builtin. With no argument it returns the directory of the current
// file. A relative argument is resolved against that directory; an absolute
// one is returned with the scheme of the current file if it has none.
func pathFn(fm *Frame, _ *parse.Call, args []vals.Value) (vals.Value, error) {
	dir := fm.src.URL.Parent()
	switch len(args) {
	case 0:
		return vals.NewURL(dir), nil
	case 1:
		u, err := urlArg("path", args[0])
		if err != nil {
			return nil, err
		}
		return vals.NewURL(dir.Join(u)), nil
	}
	return nil, errs.ArityMismatch{What: "arguments to path",
		ValidLow: 0, ValidHigh: 1, Actual: len(args)}
}

// The "cwd" builtin. With no argument it returns the working directory. A
// relative argument is resolved against it; an absolute one is an error.
func cwd(fm *Frame, _ *parse.Call, args []vals.Value) (vals.Value, error) {
	if len(args) > 1 {
		return nil, errs.ArityMismatch{What: "arguments to cwd",
			ValidLow: 0, ValidHigh: 1, Actual: len(args)}
	}
	wd, err := fm.ev.workingDir()
	if err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return vals.NewURL(wd), nil
	}
	u, err := urlArg("cwd", args[0])
	if err != nil {
		return nil, err
	}
	if !u.IsRelative() {
		return nil, errs.BadValue{What: "argument to cwd", Valid: "a relative path", Actual: u.String()}
	}
	return vals.NewURL(wd.Join(u)), nil
}
