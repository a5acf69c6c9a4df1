package parse

import (
	"fmt"

	"github.com/tconf/tconf/pkg/diag"
)

// TokenKind classifies tokens.
type TokenKind int

// Possible values of TokenKind.
const (
	EndToken TokenKind = iota
	NameToken
	IntegerToken
	FloatToken
	StringToken
	ColorToken
	URLToken
	// Operators, punctuation, and the keyword operators and, or, xor and not.
	OperatorToken
)

var tokenKindNames = [...]string{
	EndToken:      "end of file",
	NameToken:     "T_IDENTIFIER",
	IntegerToken:  "T_INTEGER",
	FloatToken:    "T_FLOAT",
	StringToken:   "T_STRING",
	ColorToken:    "T_COLOR",
	URLToken:      "T_URL",
	OperatorToken: "T_OPERATOR",
}

func (k TokenKind) String() string {
	if 0 <= k && int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Token is a lexical token.
type Token struct {
	Kind TokenKind
	// Source text of the token.
	Text string
	// The decoded value of string literals, the text of URL literals, names
	// and operators.
	Value string
	Int   int64
	Float float64
	// Packed 0xRRGGBBAA value of color literals.
	Color uint32
	// Whether a newline separates the token from the previous one.
	NewlineBefore bool
	Loc           diag.Location
	diag.Ranging
}

// Describes the token in syntax errors.
func (t Token) describe() string {
	if t.Kind == OperatorToken {
		return "'" + t.Value + "'"
	}
	return t.Kind.String()
}

// Whether a token ends an operand, in which case a following sign or '<' is
// an operator rather than the start of a literal.
func (t Token) endsOperand() bool {
	switch t.Kind {
	case NameToken, IntegerToken, FloatToken, StringToken, ColorToken, URLToken:
		return true
	case OperatorToken:
		switch t.Value {
		case ")", "]", "}", "$":
			return true
		}
	}
	return false
}
