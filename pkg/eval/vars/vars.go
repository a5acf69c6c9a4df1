// Package vars contains the assignable locations that lvalue expressions
// evaluate to.
package vars

import (
	"github.com/tconf/tconf/pkg/eval/errs"
	"github.com/tconf/tconf/pkg/eval/vals"
)

// Var is a location holding a value. Get returns vals.Undefined{} for a
// location that has not been written.
type Var interface {
	Set(v vals.Value) error
	Get() vals.Value
}

type readOnly struct {
	name  string
	value vals.Value
}

// NewReadOnly creates a variable that always returns an error on Set. The name
// is used in the error message.
func NewReadOnly(name string, v vals.Value) Var {
	return readOnly{name, v}
}

func (rv readOnly) Set(vals.Value) error {
	return errs.SetReadOnlyVar{Name: rv.name}
}

func (rv readOnly) Get() vals.Value { return rv.value }

// IsReadOnly returns whether v is a read-only variable.
func IsReadOnly(v Var) bool {
	_, ok := v.(readOnly)
	return ok
}
