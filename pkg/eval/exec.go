package eval

import (
	"github.com/tconf/tconf/pkg/eval/vals"
	"github.com/tconf/tconf/pkg/parse"
)

// Exec executes a statement of an object body.
func (fm *Frame) Exec(stmt parse.Node) error {
	switch stmt := stmt.(type) {
	case *parse.Assignment:
		v, err := fm.Rvalue(stmt.Value)
		if err != nil {
			return err
		}
		if vals.IsUndefined(v) {
			return fm.errorpf(stmt, "cannot assign an undefined value to %s", parse.String(stmt.Key))
		}
		return fm.Assign(stmt.Key, vals.Copy(v))
	case *parse.SectionHeader:
		return fm.execSectionHeader(stmt)
	case *parse.Call:
		// The entries of a map returned by a call, typically include, are
		// merged into the current object.
		v, err := fm.Rvalue(stmt)
		if err != nil {
			return err
		}
		m, ok := v.(*vals.Map)
		if !ok {
			return fm.errorpf(stmt, "cannot merge %s into an object", vals.KindOf(v))
		}
		current := fm.ctx.CurrentObject()
		m.Range(func(k, v vals.Value) bool {
			current.Set(k, vals.Copy(v))
			return true
		})
		return nil
	case *parse.Object:
		// A nested object statement is merged into the enclosing object.
		for _, s := range stmt.Statements {
			if err := fm.Exec(s); err != nil {
				return err
			}
		}
		return nil
	case *parse.BinaryOp:
		if parse.IsAssignOp(stmt.Op) {
			_, err := fm.assignOp(stmt)
			return err
		}
	}
	return fm.errorpf(stmt, "expression is not a statement")
}

func (fm *Frame) execSectionHeader(stmt *parse.SectionHeader) error {
	fm.ctx.ClearSection()
	if stmt.Path == nil {
		return nil
	}
	lv, err := fm.Lvalue(stmt.Path)
	if err != nil {
		return err
	}
	section, err := fm.autoCreate(stmt, lv, newMap)
	if err != nil {
		return err
	}
	m, ok := section.(*vals.Map)
	if !ok {
		return fm.errorpf(stmt, "section %s is %s, not a map",
			parse.String(stmt.Path), vals.KindOf(section))
	}
	fm.ctx.SetSection(m)
	return nil
}
