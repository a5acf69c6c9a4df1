package eval

import (
	"github.com/tconf/tconf/pkg/eval/vals"
	"github.com/tconf/tconf/pkg/parse"
)

// Rvalue evaluates a node to a value.
func (fm *Frame) Rvalue(n parse.Node) (vals.Value, error) {
	switch n := n.(type) {
	case *parse.BoolLiteral:
		return vals.Bool(n.Value), nil
	case *parse.NullLiteral:
		return vals.Null{}, nil
	case *parse.IntegerLiteral:
		return vals.Int(n.Value), nil
	case *parse.FloatLiteral:
		return vals.Float(n.Value), nil
	case *parse.StringLiteral:
		return vals.String(n.Value), nil
	case *parse.ColorLiteral:
		return vals.ColorFromRGBA32(n.Value), nil
	case *parse.URLLiteral:
		return vals.NewURL(n.Value), nil
	case *parse.Name:
		if v, ok := fm.ctx.CurrentObject().Lookup(n.Value); ok {
			return v, nil
		}
		return vals.Undefined{}, nil
	case *parse.VariableObject:
		return fm.ctx.Variables(), nil
	case *parse.RootObject:
		return fm.ctx.Root(), nil
	case *parse.Member:
		lhs, err := fm.Rvalue(n.LHS)
		if err != nil {
			return nil, err
		}
		switch lhs := lhs.(type) {
		case vals.Undefined:
			return lhs, nil
		case *vals.Map:
			if v, ok := lhs.Lookup(n.Name); ok {
				return v, nil
			}
			return vals.Undefined{}, nil
		}
		return nil, fm.errorp(n, vals.InvalidOp(".", lhs, vals.String(n.Name)))
	case *parse.Index:
		return fm.index(n)
	case *parse.UnaryOp:
		operand, err := fm.Rvalue(n.Operand)
		if err != nil {
			return nil, err
		}
		v, err := vals.UnaryOp(n.Op, operand)
		return v, fm.errorp(n, err)
	case *parse.BinaryOp:
		return fm.binaryOp(n)
	case *parse.Ternary:
		cond, err := fm.Rvalue(n.Cond)
		if err != nil {
			return nil, err
		}
		if vals.Truth(cond) {
			return fm.Rvalue(n.Then)
		}
		return fm.Rvalue(n.Else)
	case *parse.Call:
		args := make([]vals.Value, len(n.Args))
		for i, arg := range n.Args {
			v, err := fm.Rvalue(arg)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		return fm.Invoke(n, args)
	case *parse.Array:
		vec := vals.NewVector()
		for _, elem := range n.Elems {
			v, err := fm.Rvalue(elem)
			if err != nil {
				return nil, err
			}
			if vals.IsUndefined(v) {
				return nil, fm.errorpf(elem, "undefined value in array")
			}
			vec.Append(vals.Copy(v))
		}
		return vec, nil
	case *parse.Object:
		fm.ctx.Push()
		for _, stmt := range n.Statements {
			if err := fm.Exec(stmt); err != nil {
				fm.ctx.Pop()
				return nil, err
			}
		}
		return fm.ctx.Pop(), nil
	}
	return nil, fm.errorpf(n, "expression is not a value")
}

func (fm *Frame) index(n *parse.Index) (vals.Value, error) {
	lhs, err := fm.Rvalue(n.LHS)
	if err != nil {
		return nil, err
	}
	if n.Index == nil {
		return nil, fm.errorpf(n, "cannot read an append index")
	}
	key, err := fm.Rvalue(n.Index)
	if err != nil {
		return nil, err
	}
	if vals.IsUndefined(lhs) {
		return lhs, nil
	}
	v, err := vals.Index(lhs, key)
	return v, fm.errorp(n, err)
}

func (fm *Frame) binaryOp(n *parse.BinaryOp) (vals.Value, error) {
	if parse.IsAssignOp(n.Op) {
		return fm.assignOp(n)
	}
	lhs, err := fm.Rvalue(n.LHS)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case "and", "&&":
		if !vals.Truth(lhs) {
			return vals.Bool(false), nil
		}
		rhs, err := fm.Rvalue(n.RHS)
		if err != nil {
			return nil, err
		}
		return vals.Bool(vals.Truth(rhs)), nil
	case "or", "||":
		if vals.Truth(lhs) {
			return vals.Bool(true), nil
		}
		rhs, err := fm.Rvalue(n.RHS)
		if err != nil {
			return nil, err
		}
		return vals.Bool(vals.Truth(rhs)), nil
	}
	rhs, err := fm.Rvalue(n.RHS)
	if err != nil {
		return nil, err
	}
	v, err := vals.BinaryOp(n.Op, lhs, rhs)
	return v, fm.errorp(n, err)
}

// Evaluates "lhs = rhs" or a compound assignment like "lhs += rhs", and
// returns the assigned value.
func (fm *Frame) assignOp(n *parse.BinaryOp) (vals.Value, error) {
	rhs, err := fm.Rvalue(n.RHS)
	if err != nil {
		return nil, err
	}
	if vals.IsUndefined(rhs) {
		return nil, fm.errorpf(n, "cannot assign an undefined value to %s", parse.String(n.LHS))
	}
	lv, err := fm.Lvalue(n.LHS)
	if err != nil {
		return nil, err
	}
	v := rhs
	if n.Op != "=" {
		v, err = vals.BinaryOp(n.Op[:len(n.Op)-1], lv.Get(), rhs)
		if err != nil {
			return nil, fm.errorp(n, err)
		}
	}
	if err := lv.Set(vals.Copy(v)); err != nil {
		return nil, fm.errorp(n, err)
	}
	return v, nil
}
