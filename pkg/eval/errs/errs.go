// Package errs declares error types used as exceptions by the evaluator and
// the value algebra.
package errs

import (
	"fmt"
	"strconv"
	"strings"
)

// OutOfRange encodes an error where a value is out of its valid range.
type OutOfRange struct {
	What      string
	ValidLow  int
	ValidHigh int
	Actual    string
}

// Error implements the error interface.
func (e OutOfRange) Error() string {
	if e.ValidHigh < e.ValidLow {
		return fmt.Sprintf(
			"out of range: %v has no valid value, but is %v", e.What, e.Actual)
	}
	return fmt.Sprintf(
		"out of range: %s must be from %d to %d, but is %s",
		e.What, e.ValidLow, e.ValidHigh, e.Actual)
}

// BadValue encodes an error where the value does not meet a requirement. For
// out-of-range errors, use OutOfRange.
type BadValue struct {
	What   string
	Valid  string
	Actual string
}

// Error implements the error interface.
func (e BadValue) Error() string {
	return fmt.Sprintf(
		"bad value: %v must be %v, but is %v", e.What, e.Valid, e.Actual)
}

// ArityMismatch encodes an error where the expected number of values is out of
// the valid range. A negative ValidHigh means there is no upper bound.
type ArityMismatch struct {
	What      string
	ValidLow  int
	ValidHigh int
	Actual    int
}

func (e ArityMismatch) Error() string {
	switch {
	case e.ValidHigh == e.ValidLow:
		return fmt.Sprintf("arity mismatch: %v must be %v, but is %v",
			e.What, nValues(e.ValidLow), nValues(e.Actual))
	case e.ValidHigh == -1:
		return fmt.Sprintf("arity mismatch: %v must be %v or more values, but is %v",
			e.What, e.ValidLow, nValues(e.Actual))
	default:
		return fmt.Sprintf("arity mismatch: %v must be %v to %v values, but is %v",
			e.What, e.ValidLow, e.ValidHigh, nValues(e.Actual))
	}
}

func nValues(n int) string {
	if n == 1 {
		return "1 value"
	}
	return strconv.Itoa(n) + " values"
}

// Operand describes one operand of an invalid operation. Repr is empty for
// operands that have no representation, like undefined.
type Operand struct {
	Kind string
	Repr string
}

// InvalidOperation encodes an error where an operator is applied to values
// whose kinds it does not support.
type InvalidOperation struct {
	Op       string
	Operands []Operand
}

func (e InvalidOperation) Error() string {
	descs := make([]string, len(e.Operands))
	for i, o := range e.Operands {
		descs[i] = o.Kind
		if o.Repr != "" {
			descs[i] += " " + o.Repr
		}
	}
	return fmt.Sprintf("cannot apply '%s' to %s", e.Op, strings.Join(descs, " and "))
}

// NoSuchKey encodes an error where a key is not found in a map.
type NoSuchKey struct {
	Key string
}

func (e NoSuchKey) Error() string {
	return "no such key: " + e.Key
}

// DivisionByZero is returned when an integer is divided by zero.
type DivisionByZero struct{}

func (DivisionByZero) Error() string { return "division by zero" }

// SetReadOnlyVar is returned when trying to replace a read-only location, like
// the variable object or the root object.
type SetReadOnlyVar struct {
	Name string
}

func (e SetReadOnlyVar) Error() string {
	return "cannot set read-only " + e.Name
}
