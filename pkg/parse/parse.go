// Package parse implements the tokenizer and the parser of the configuration
// language, and the rendering of syntax trees back to source code.
package parse

import (
	"slices"

	"github.com/tconf/tconf/pkg/diag"
	"github.com/tconf/tconf/pkg/url"
)

// Operator precedences, from lowest to highest.
const (
	precAssign = iota + 1
	precTernary
	precOr
	precAnd
	precXor
	precBitOr
	precBitXor
	precBitAnd
	precEquality
	precRelational
	precShift
	precAdditive
	precMultiplicative
	precPower
)

type opInfo struct {
	prec  int
	right bool
}

var binaryOps = map[string]opInfo{
	"=": {precAssign, true}, "+=": {precAssign, true}, "-=": {precAssign, true},
	"*=": {precAssign, true}, "/=": {precAssign, true}, "%=": {precAssign, true},
	"<<=": {precAssign, true}, ">>=": {precAssign, true},
	"&=": {precAssign, true}, "|=": {precAssign, true}, "^=": {precAssign, true},
	"?":  {precTernary, true},
	"or": {precOr, false}, "||": {precOr, false},
	"and": {precAnd, false}, "&&": {precAnd, false},
	"xor": {precXor, false},
	"|":   {precBitOr, false},
	"^":   {precBitXor, false},
	"&":   {precBitAnd, false},
	"==": {precEquality, false}, "!=": {precEquality, false},
	"<": {precRelational, false}, ">": {precRelational, false},
	"<=": {precRelational, false}, ">=": {precRelational, false},
	"<<": {precShift, false}, ">>": {precShift, false},
	"+": {precAdditive, false}, "-": {precAdditive, false},
	"*": {precMultiplicative, false}, "/": {precMultiplicative, false},
	"%":  {precMultiplicative, false},
	"**": {precPower, true},
}

var unaryOps = map[string]bool{"+": true, "-": true, "~": true, "!": true, "not": true}

// Parse parses source code. On success it returns the root object. On failure
// it returns an empty object and the first error found, a *diag.Error of kind
// diag.Parse.
//
// A source consisting of a single brace-delimited object, like a JSON
// document, has that object as its root.
func Parse(src Source) (root *Object, err error) {
	tokens, err := Lex(src)
	if err != nil {
		return emptyObject(src.URL), err
	}
	ps := &parser{src: src, tokens: tokens}
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if e, ok := r.(thrown); ok {
			root, err = emptyObject(src.URL), e.err
		} else {
			panic(r)
		}
	}()
	return ps.parseFile(), nil
}

func emptyObject(u url.URL) *Object {
	return &Object{node: node{loc: diag.Location{URL: u, Line: 1, Column: 1}}}
}

// parser maintains the mutable states of parsing.
type parser struct {
	src    Source
	tokens []Token
	i      int
}

// Wraps an error raised in the parser, so that Parse can recover it.
type thrown struct {
	err *diag.Error
}

func (ps *parser) peek() Token { return ps.tokens[ps.i] }

func (ps *parser) peekAt(offset int) Token {
	return ps.tokens[min(ps.i+offset, len(ps.tokens)-1)]
}

func (ps *parser) next() Token {
	t := ps.tokens[ps.i]
	if t.Kind != EndToken {
		ps.i++
	}
	return t
}

func (ps *parser) isOp(op string) bool {
	t := ps.peek()
	return t.Kind == OperatorToken && t.Value == op
}

func (ps *parser) expect(op string) Token {
	if !ps.isOp(op) {
		ps.fail(ps.peek(), "expecting '"+op+"'")
	}
	return ps.next()
}

// Raises a syntax error at t.
func (ps *parser) fail(t Token, expecting string) {
	msg := "syntax error, unexpected " + t.describe()
	if expecting != "" {
		msg += ", " + expecting
	}
	r := t.Ranging
	if t.Kind == EndToken {
		r = diag.PointRanging(len(ps.src.Code))
	}
	panic(thrown{&diag.Error{
		Kind: diag.Parse, Location: t.Loc, Message: msg,
		Context: diag.NewContext(ps.src.URL.String(), ps.src.Code, r),
	}})
}

// Sets the range and location of a node that starts at the given token and
// ends at the last consumed token.
func mark[N Node](ps *parser, n N, first Token) N {
	end := first.To
	if ps.i > 0 && ps.tokens[ps.i-1].To > end {
		end = ps.tokens[ps.i-1].To
	}
	n.n().Ranging = diag.Ranging{From: first.From, To: end}
	n.n().loc = first.Loc
	return n
}

func (ps *parser) parseFile() *Object {
	first := ps.peek()
	stmts := ps.parseStatements(false)
	if len(stmts) == 1 {
		if obj, ok := stmts[0].(*Object); ok {
			return obj
		}
	}
	return mark(ps, &Object{Statements: stmts}, first)
}

// Parses statements until the end of the file, or until '}' when inObject is
// true. The closer is not consumed. Commas and semicolons between statements
// are optional.
func (ps *parser) parseStatements(inObject bool) []Node {
	var stmts []Node
	for {
		for ps.isOp(",") || ps.isOp(";") {
			ps.next()
		}
		t := ps.peek()
		switch {
		case inObject && ps.isOp("}"), !inObject && t.Kind == EndToken:
			return stmts
		case t.Kind == EndToken:
			ps.fail(t, "expecting '}'")
		}
		stmts = append(stmts, ps.parseStatement())
	}
}

func (ps *parser) parseStatement() Node {
	first := ps.peek()
	if ps.isOp("[") {
		return ps.parseSectionHeader()
	}
	expr := ps.parseExpr(precAssign)
	if ps.isOp(":") {
		ps.next()
		key := expr
		if s, ok := key.(*StringLiteral); ok {
			key = &Name{node: s.node, Value: s.Value, Quoted: true}
		}
		value := ps.parseExpr(precAssign)
		return mark(ps, &Assignment{Key: key, Value: value}, first)
	}
	switch expr := expr.(type) {
	case *Call, *Object:
		return expr
	case *BinaryOp:
		if IsAssignOp(expr.Op) {
			return expr
		}
	}
	ps.fail(first, "")
	return nil
}

func (ps *parser) parseSectionHeader() Node {
	first := ps.expect("[")
	if ps.isOp("]") {
		ps.next()
		return mark(ps, &SectionHeader{}, first)
	}
	list := ps.parseExprList(first, "]")
	if len(list.Exprs) > 1 {
		ps.fail(ps.tokens[ps.indexAfter(list.Exprs[0])], "expecting ']'")
	}
	return mark(ps, &SectionHeader{Path: list.Exprs[0]}, first)
}

// Returns the index of the first token after the node.
func (ps *parser) indexAfter(n Node) int {
	end := n.Range().To
	return slices.IndexFunc(ps.tokens, func(t Token) bool { return t.From >= end })
}

// Parses a comma-separated list of expressions after an opening bracket,
// consuming the closer. A trailing comma is allowed.
func (ps *parser) parseExprList(first Token, closer string) *ExpressionList {
	list := &ExpressionList{}
	for !ps.isOp(closer) {
		list.Exprs = append(list.Exprs, ps.parseExpr(precAssign))
		if !ps.isOp(",") {
			break
		}
		ps.next()
	}
	ps.expect(closer)
	return mark(ps, list, first)
}

// Parses an expression whose binary operators all have a precedence of at
// least minPrec, by precedence climbing.
func (ps *parser) parseExpr(minPrec int) Node {
	first := ps.peek()
	lhs := ps.parseUnary()
	for {
		t := ps.peek()
		if t.Kind != OperatorToken {
			return lhs
		}
		info, ok := binaryOps[t.Value]
		if !ok || info.prec < minPrec || ps.startsRootPath() {
			return lhs
		}
		ps.next()
		if t.Value == "?" {
			then := ps.parseExpr(precAssign)
			ps.expect(":")
			els := ps.parseExpr(precTernary)
			lhs = mark(ps, &Ternary{Cond: lhs, Then: then, Else: els}, first)
			continue
		}
		nextPrec := info.prec + 1
		if info.right {
			nextPrec = info.prec
		}
		rhs := ps.parseExpr(nextPrec)
		op := mark(ps, &BinaryOp{Op: t.Value, LHS: lhs, RHS: rhs}, first)
		op.loc = t.Loc
		lhs = op
	}
}

// Whether the next tokens are "/." or "/[", which start a new statement
// assigning into the root object rather than continuing a division.
func (ps *parser) startsRootPath() bool {
	if !ps.isOp("/") {
		return false
	}
	t := ps.peekAt(1)
	return t.Kind == OperatorToken && (t.Value == "." || t.Value == "[")
}

func (ps *parser) parseUnary() Node {
	t := ps.peek()
	if t.Kind == OperatorToken && unaryOps[t.Value] {
		ps.next()
		operand := ps.parseUnary()
		return mark(ps, &UnaryOp{Op: t.Value, Operand: operand}, t)
	}
	return ps.parsePostfix(ps.parsePrimary(), t)
}

// Parses member access, indexing and calls. Indexing and calls don't continue
// across a newline, so that "[name]" on its own line is a section header.
func (ps *parser) parsePostfix(lhs Node, first Token) Node {
	for {
		t := ps.peek()
		switch {
		case ps.isOp("."):
			ps.next()
			name := ps.next()
			if name.Kind != NameToken {
				ps.fail(name, "expecting T_IDENTIFIER")
			}
			lhs = mark(ps, &Member{LHS: lhs, Name: name.Value}, first)
		case ps.isOp("[") && !t.NewlineBefore:
			ps.next()
			var index Node
			if !ps.isOp("]") {
				index = ps.parseExpr(precAssign)
			}
			ps.expect("]")
			lhs = mark(ps, &Index{LHS: lhs, Index: index}, first)
		case ps.isOp("(") && !t.NewlineBefore:
			ps.next()
			args := ps.parseExprList(t, ")")
			lhs = mark(ps, &Call{Callee: lhs, Args: args.Exprs}, first)
		default:
			return lhs
		}
	}
}

func (ps *parser) parsePrimary() Node {
	t := ps.next()
	switch t.Kind {
	case IntegerToken:
		return mark(ps, &IntegerLiteral{Value: t.Int}, t)
	case FloatToken:
		return mark(ps, &FloatLiteral{Value: t.Float}, t)
	case StringToken:
		return mark(ps, &StringLiteral{Value: t.Value}, t)
	case ColorToken:
		return mark(ps, &ColorLiteral{Value: t.Color}, t)
	case URLToken:
		return mark(ps, &URLLiteral{Value: url.Parse(t.Value)}, t)
	case NameToken:
		switch t.Value {
		case "true", "false":
			return mark(ps, &BoolLiteral{Value: t.Value == "true"}, t)
		case "null":
			return mark(ps, &NullLiteral{}, t)
		}
		return mark(ps, &Name{Value: t.Value}, t)
	case OperatorToken:
		switch t.Value {
		case "(":
			expr := ps.parseExpr(precAssign)
			ps.expect(")")
			return expr
		case "[":
			list := ps.parseExprList(t, "]")
			return mark(ps, &Array{Elems: list.Exprs}, t)
		case "{":
			stmts := ps.parseStatements(true)
			ps.expect("}")
			return mark(ps, &Object{Statements: stmts}, t)
		case "$":
			return mark(ps, &VariableObject{}, t)
		case "/":
			return mark(ps, &RootObject{}, t)
		}
	}
	ps.fail(t, "")
	return nil
}
