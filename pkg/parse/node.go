package parse

import (
	"github.com/tconf/tconf/pkg/diag"
	"github.com/tconf/tconf/pkg/url"
)

// Node is a node in the syntax tree. The set of implementations is closed;
// the evaluator dispatches on the concrete type.
type Node interface {
	diag.Ranger
	// Loc returns where the node starts. For binary operators, it is the
	// location of the operator.
	Loc() diag.Location
	n() *node
}

type node struct {
	diag.Ranging
	loc diag.Location
}

func (n *node) Loc() diag.Location { return n.loc }
func (n *node) n() *node           { return n }

// BoolLiteral is true or false.
type BoolLiteral struct {
	node
	Value bool
}

// NullLiteral is null.
type NullLiteral struct {
	node
}

// IntegerLiteral is an integer literal. A sign directly in front of the
// digits is part of the literal.
type IntegerLiteral struct {
	node
	Value int64
}

// FloatLiteral is a float literal.
type FloatLiteral struct {
	node
	Value float64
}

// StringLiteral is a double-quoted string; Value has escapes decoded.
type StringLiteral struct {
	node
	Value string
}

// ColorLiteral is a color like #rrggbb or #rrggbbaa, stored as packed
// gamma-encoded 0xRRGGBBAA.
type ColorLiteral struct {
	node
	Value uint32
}

// URLLiteral is a URL in angle brackets, like <file:a.conf>.
type URLLiteral struct {
	node
	Value url.URL
}

// Name is an identifier. Keys written as string literals, as in JSON, are
// Names with Quoted set.
type Name struct {
	node
	Value  string
	Quoted bool
}

// VariableObject is $, the map of variables shared by the whole evaluation.
type VariableObject struct {
	node
}

// RootObject is /, the root map of the file being evaluated.
type RootObject struct {
	node
}

// Member is LHS.Name.
type Member struct {
	node
	LHS  Node
	Name string
}

// Index is LHS[Index]. Index is nil for the append form LHS[].
type Index struct {
	node
	LHS   Node
	Index Node
}

// UnaryOp is a prefix operator: +, -, ~, ! or not.
type UnaryOp struct {
	node
	Op      string
	Operand Node
}

// BinaryOp is an infix operator, including the assignment operators =, +=
// and so on.
type BinaryOp struct {
	node
	Op  string
	LHS Node
	RHS Node
}

// Ternary is Cond ? Then : Else.
type Ternary struct {
	node
	Cond Node
	Then Node
	Else Node
}

// Call is Callee(Args...).
type Call struct {
	node
	Callee Node
	Args   []Node
}

// Array is [Elems...].
type Array struct {
	node
	Elems []Node
}

// Object is a brace-delimited sequence of statements. The statements of a
// whole file also form an Object.
type Object struct {
	node
	Statements []Node
}

// Assignment is the statement Key: Value.
type Assignment struct {
	node
	Key   Node
	Value Node
}

// SectionHeader is the statement [Path], which directs the following
// assignments of the enclosing object into Path. Path is nil for [], which
// directs them back to the object itself.
type SectionHeader struct {
	node
	Path Node
}

// ExpressionList is a comma-separated list of expressions. It only appears
// while parsing argument lists and arrays.
type ExpressionList struct {
	node
	Exprs []Node
}

// IsAssignOp reports whether op is one of the assignment operators.
func IsAssignOp(op string) bool {
	switch op {
	case "=", "+=", "-=", "*=", "/=", "%=", "<<=", ">>=", "&=", "|=", "^=":
		return true
	}
	return false
}
