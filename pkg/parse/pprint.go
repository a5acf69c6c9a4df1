package parse

import (
	"fmt"
	"strconv"
	"strings"
)

// String renders a node as source code. Binary and unary operators are
// parenthesized, statements are separated by commas, and parsing the result
// yields a tree that renders to the same string.
func String(n Node) string {
	var sb strings.Builder
	writeNode(&sb, n)
	return sb.String()
}

func writeNode(sb *strings.Builder, n Node) {
	switch n := n.(type) {
	case nil:
	case *BoolLiteral:
		sb.WriteString(strconv.FormatBool(n.Value))
	case *NullLiteral:
		sb.WriteString("null")
	case *IntegerLiteral:
		sb.WriteString(strconv.FormatInt(n.Value, 10))
	case *FloatLiteral:
		s := strconv.FormatFloat(n.Value, 'g', -1, 64)
		if !strings.ContainsAny(s, ".e") {
			s += ".0"
		}
		sb.WriteString(s)
	case *StringLiteral:
		sb.WriteString(Quote(n.Value))
	case *ColorLiteral:
		fmt.Fprintf(sb, "#%08x", n.Value)
	case *URLLiteral:
		sb.WriteString("<" + n.Value.String() + ">")
	case *Name:
		if n.Quoted || !isIdentifier(n.Value) {
			sb.WriteString(Quote(n.Value))
		} else {
			sb.WriteString(n.Value)
		}
	case *VariableObject:
		sb.WriteString("$")
	case *RootObject:
		sb.WriteString("/")
	case *Member:
		writeNode(sb, n.LHS)
		sb.WriteString("." + n.Name)
	case *Index:
		writeNode(sb, n.LHS)
		sb.WriteByte('[')
		writeNode(sb, n.Index)
		sb.WriteByte(']')
	case *UnaryOp:
		operand := String(n.Operand)
		sb.WriteString("(" + n.Op)
		if keywordOperators[n.Op] || operand != "" && isDigit(operand[0]) {
			// "- 1" rather than "-1", which would be a literal.
			sb.WriteByte(' ')
		}
		sb.WriteString(operand + ")")
	case *BinaryOp:
		sb.WriteByte('(')
		writeNode(sb, n.LHS)
		sb.WriteString(" " + n.Op + " ")
		writeNode(sb, n.RHS)
		sb.WriteByte(')')
	case *Ternary:
		sb.WriteByte('(')
		writeNode(sb, n.Cond)
		sb.WriteString(" ? ")
		writeNode(sb, n.Then)
		sb.WriteString(" : ")
		writeNode(sb, n.Else)
		sb.WriteByte(')')
	case *Call:
		writeNode(sb, n.Callee)
		sb.WriteByte('(')
		writeList(sb, n.Args)
		sb.WriteByte(')')
	case *Array:
		sb.WriteByte('[')
		writeList(sb, n.Elems)
		sb.WriteByte(']')
	case *Object:
		sb.WriteByte('{')
		writeList(sb, n.Statements)
		sb.WriteByte('}')
	case *Assignment:
		writeNode(sb, n.Key)
		sb.WriteString(": ")
		writeNode(sb, n.Value)
	case *SectionHeader:
		sb.WriteByte('[')
		writeNode(sb, n.Path)
		sb.WriteByte(']')
	case *ExpressionList:
		writeList(sb, n.Exprs)
	default:
		panic(fmt.Sprintf("unknown node type %T", n))
	}
}

func writeList(sb *strings.Builder, nodes []Node) {
	for i, n := range nodes {
		if i > 0 {
			sb.WriteString(", ")
		}
		writeNode(sb, n)
	}
}

func isIdentifier(s string) bool {
	if s == "" || !isNameStart(s[0]) || keywordOperators[s] {
		return false
	}
	switch s {
	case "true", "false", "null":
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isNameChar(s[i]) {
			return false
		}
	}
	return true
}
