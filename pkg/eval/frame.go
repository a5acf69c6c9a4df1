package eval

import (
	"errors"
	"fmt"

	"github.com/tconf/tconf/pkg/diag"
	"github.com/tconf/tconf/pkg/eval/errs"
	"github.com/tconf/tconf/pkg/parse"
)

// Frame is the state of evaluating one source file. Its methods implement the
// evaluation of each kind of node.
type Frame struct {
	ev    *Evaler
	ctx   *Context
	src   parse.Source
	depth int
}

// Context returns the context the frame evaluates in.
func (fm *Frame) Context() *Context { return fm.ctx }

// Wraps an error in a *diag.Error located at a node. Errors that are already
// *diag.Error values are returned unchanged.
func (fm *Frame) errorp(n parse.Node, err error) error {
	if err == nil {
		return nil
	}
	var e *diag.Error
	if errors.As(err, &e) {
		return err
	}
	kind := diag.InvalidOperation
	var noSuchKey errs.NoSuchKey
	if errors.As(err, &noSuchKey) {
		kind = diag.KeyMissing
	}
	return &diag.Error{
		Kind: kind, Location: n.Loc(), Message: err.Error(), Cause: err,
		Context: fm.contextOf(n),
	}
}

func (fm *Frame) errorpf(n parse.Node, format string, args ...any) error {
	return fm.errorp(n, fmt.Errorf(format, args...))
}

func (fm *Frame) contextOf(n parse.Node) *diag.Context {
	return diag.NewContext(fm.src.URL.String(), fm.src.Code, n)
}
