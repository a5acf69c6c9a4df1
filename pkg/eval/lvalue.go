package eval

import (
	"github.com/tconf/tconf/pkg/eval/errs"
	"github.com/tconf/tconf/pkg/eval/vals"
	"github.com/tconf/tconf/pkg/eval/vars"
	"github.com/tconf/tconf/pkg/parse"
)

// Lvalue evaluates a node to an assignable location. Missing maps and vectors
// along the way are created, so that assigning to a.b.c works when a does not
// exist yet. The final location itself is only written by Set.
func (fm *Frame) Lvalue(n parse.Node) (vars.Var, error) {
	switch n := n.(type) {
	case *parse.Name:
		return vars.MapElement(fm.ctx.CurrentObject(), vals.String(n.Value)), nil
	case *parse.VariableObject:
		return vars.NewReadOnly("$", fm.ctx.Variables()), nil
	case *parse.RootObject:
		return vars.NewReadOnly("/", fm.ctx.Root()), nil
	case *parse.Member:
		parent, err := fm.Lvalue(n.LHS)
		if err != nil {
			return nil, err
		}
		container, err := fm.autoCreate(n, parent, newMap)
		if err != nil {
			return nil, err
		}
		if m, ok := container.(*vals.Map); ok {
			return vars.MapElement(m, vals.String(n.Name)), nil
		}
		return nil, fm.errorp(n, vals.InvalidOp(".", container, vals.String(n.Name)))
	case *parse.Index:
		return fm.indexLvalue(n)
	}
	return nil, fm.errorpf(n, "expression is not assignable")
}

func (fm *Frame) indexLvalue(n *parse.Index) (vars.Var, error) {
	parent, err := fm.Lvalue(n.LHS)
	if err != nil {
		return nil, err
	}
	if n.Index == nil {
		container, err := fm.autoCreate(n, parent, newVector)
		if err != nil {
			return nil, err
		}
		if vec, ok := container.(*vals.Vector); ok {
			return vars.AppendElement(vec), nil
		}
		return nil, fm.errorp(n, vals.InvalidOp("[]", container))
	}
	key, err := fm.Rvalue(n.Index)
	if err != nil {
		return nil, err
	}
	switch key := key.(type) {
	case vals.String:
		container, err := fm.autoCreate(n, parent, newMap)
		if err != nil {
			return nil, err
		}
		if m, ok := container.(*vals.Map); ok {
			return vars.MapElement(m, key), nil
		}
		return nil, fm.errorp(n, vals.InvalidOp("[]", container, key))
	case vals.Int:
		switch container := parent.Get().(type) {
		case *vals.Map:
			// Integer keys can only replace existing entries.
			if _, ok := container.Get(key); ok {
				return vars.MapElement(container, key), nil
			}
			return nil, fm.errorp(n, errs.NoSuchKey{Key: vals.ReprPlain(key)})
		case *vals.Vector:
			if key < 0 || int64(key) >= int64(container.Len()) {
				return nil, fm.errorp(n, errs.OutOfRange{What: "vector index",
					ValidLow: 0, ValidHigh: container.Len() - 1, Actual: vals.ReprPlain(key)})
			}
			return vars.VectorElement(container, int(key)), nil
		default:
			return nil, fm.errorp(n, vals.InvalidOp("[]", container, key))
		}
	}
	return nil, fm.errorp(n, vals.InvalidOp("[]", parent.Get(), key))
}

// Returns the value of a location, first setting it to a new container if it
// is undefined.
func (fm *Frame) autoCreate(n parse.Node, v vars.Var, create func() vals.Value) (vals.Value, error) {
	value := v.Get()
	if !vals.IsUndefined(value) {
		return value, nil
	}
	container := create()
	if err := v.Set(container); err != nil {
		return nil, fm.errorp(n, err)
	}
	return container, nil
}

func newMap() vals.Value    { return vals.NewMap() }
func newVector() vals.Value { return vals.NewVector() }

// Assign assigns a value to the location a node evaluates to.
func (fm *Frame) Assign(n parse.Node, v vals.Value) error {
	lv, err := fm.Lvalue(n)
	if err != nil {
		return err
	}
	return fm.errorp(n, lv.Set(v))
}
