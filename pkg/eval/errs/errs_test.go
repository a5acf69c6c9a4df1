package errs

import (
	"testing"
)

var errorMessageTests = []struct {
	err     error
	wantMsg string
}{
	{
		OutOfRange{What: "vector index", ValidLow: 0, ValidHigh: 2, Actual: "3"},
		"out of range: vector index must be from 0 to 2, but is 3",
	},
	{
		OutOfRange{What: "vector index", ValidLow: 0, ValidHigh: -1, Actual: "0"},
		"out of range: vector index has no valid value, but is 0",
	},
	{
		BadValue{What: "argument to include", Valid: "string or url", Actual: "int"},
		"bad value: argument to include must be string or url, but is int",
	},
	{
		ArityMismatch{What: "arguments to include", ValidLow: 1, ValidHigh: 1, Actual: 3},
		"arity mismatch: arguments to include must be 1 value, but is 3 values",
	},
	{
		ArityMismatch{What: "arguments", ValidLow: 2, ValidHigh: -1, Actual: 1},
		"arity mismatch: arguments must be 2 or more values, but is 1 value",
	},
	{
		ArityMismatch{What: "arguments to path", ValidLow: 0, ValidHigh: 1, Actual: 2},
		"arity mismatch: arguments to path must be 0 to 1 values, but is 2 values",
	},
	{
		InvalidOperation{Op: "+", Operands: []Operand{{"int", "1"}, {"string", `"a"`}}},
		`cannot apply '+' to int 1 and string "a"`,
	},
	{
		InvalidOperation{Op: "~", Operands: []Operand{{"float", "1.5"}}},
		"cannot apply '~' to float 1.5",
	},
	{
		InvalidOperation{Op: "[]", Operands: []Operand{{"undefined", ""}, {"int", "0"}}},
		"cannot apply '[]' to undefined and int 0",
	},
	{NoSuchKey{Key: "a.b"}, "no such key: a.b"},
	{DivisionByZero{}, "division by zero"},
	{SetReadOnlyVar{Name: "$"}, "cannot set read-only $"},
}

func TestErrorMessages(t *testing.T) {
	for _, test := range errorMessageTests {
		if gotMsg := test.err.Error(); gotMsg != test.wantMsg {
			t.Errorf("got message %v, want %v", gotMsg, test.wantMsg)
		}
	}
}
