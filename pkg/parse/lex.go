package parse

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/tconf/tconf/pkg/diag"
	"github.com/tconf/tconf/pkg/url"
)

// Operators ordered so that longer ones are tried first.
var operators = []string{
	"<<=", ">>=",
	"**", "<<", ">>", "<=", ">=", "==", "!=", "&&", "||",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=",
	"+", "-", "*", "/", "%", "&", "|", "^", "~", "!", "<", ">", "=",
	"?", ":", ".", ",", ";", "(", ")", "[", "]", "{", "}", "$",
}

var keywordOperators = map[string]bool{"and": true, "or": true, "xor": true, "not": true}

type lexer struct {
	src     Source
	pos     int
	line    int
	col     int
	newline bool
	tokens  []Token
}

// Lex splits source code into tokens. The last token is always of kind End,
// unless an error is returned, in which case the tokens before the error are
// returned.
func Lex(src Source) ([]Token, error) {
	lx := &lexer{src: src, line: 1, col: 1}
	for {
		if err := lx.skipSpace(); err != nil {
			return lx.tokens, err
		}
		if lx.pos == len(lx.src.Code) {
			lx.emit(Token{Kind: EndToken}, lx.pos, lx.loc())
			return lx.tokens, nil
		}
		if err := lx.lexToken(); err != nil {
			return lx.tokens, err
		}
	}
}

func (lx *lexer) loc() diag.Location {
	return diag.Location{URL: lx.src.URL, Line: lx.line, Column: lx.col}
}

func (lx *lexer) rest() string { return lx.src.Code[lx.pos:] }

func (lx *lexer) byteAt(i int) byte {
	if i < len(lx.src.Code) {
		return lx.src.Code[i]
	}
	return 0
}

// Advances to byte offset end, keeping the line and column up to date.
func (lx *lexer) advanceTo(end int) {
	for lx.pos < end {
		r, size := utf8.DecodeRuneInString(lx.src.Code[lx.pos:])
		lx.pos += size
		if r == '\n' {
			lx.line++
			lx.col = 1
		} else {
			lx.col++
		}
	}
}

func (lx *lexer) emit(t Token, begin int, loc diag.Location) {
	t.Text = lx.src.Code[begin:lx.pos]
	t.Loc = loc
	t.Ranging = diag.Ranging{From: begin, To: lx.pos}
	t.NewlineBefore = lx.newline
	if t.Kind == OperatorToken || t.Kind == NameToken {
		t.Value = t.Text
	}
	lx.newline = false
	lx.tokens = append(lx.tokens, t)
}

func (lx *lexer) errorf(begin int, loc diag.Location, format string, args ...any) error {
	end := lx.pos
	if end == begin && end < len(lx.src.Code) {
		_, size := utf8.DecodeRuneInString(lx.src.Code[end:])
		end += size
	}
	return &diag.Error{
		Kind:     diag.Parse,
		Location: loc,
		Message:  fmt.Sprintf(format, args...),
		Context:  diag.NewContext(lx.src.URL.String(), lx.src.Code, diag.Ranging{From: begin, To: end}),
	}
}

// Whether the next token is in operand position.
func (lx *lexer) operandPos() bool {
	return len(lx.tokens) == 0 || !lx.tokens[len(lx.tokens)-1].endsOperand()
}

func (lx *lexer) skipSpace() error {
	for lx.pos < len(lx.src.Code) {
		rest := lx.rest()
		switch {
		case rest[0] == '\n':
			lx.newline = true
			lx.advanceTo(lx.pos + 1)
		case rest[0] == ' ' || rest[0] == '\t' || rest[0] == '\r':
			lx.advanceTo(lx.pos + 1)
		case strings.HasPrefix(rest, "//"):
			end := strings.IndexByte(rest, '\n')
			if end == -1 {
				end = len(rest)
			}
			lx.advanceTo(lx.pos + end)
		case strings.HasPrefix(rest, "/*"):
			begin, loc := lx.pos, lx.loc()
			end := strings.Index(rest[2:], "*/")
			if end == -1 {
				lx.advanceTo(len(lx.src.Code))
				return lx.errorf(begin, loc, "unterminated block comment")
			}
			if strings.Contains(rest[:end+2], "\n") {
				lx.newline = true
			}
			lx.advanceTo(lx.pos + end + 4)
		default:
			return nil
		}
	}
	return nil
}

func (lx *lexer) lexToken() error {
	begin, loc := lx.pos, lx.loc()
	c := lx.byteAt(begin)
	switch {
	case isNameStart(c):
		end := begin + 1
		for isNameChar(lx.byteAt(end)) {
			end++
		}
		lx.advanceTo(end)
		kind := NameToken
		if keywordOperators[lx.src.Code[begin:end]] {
			kind = OperatorToken
		}
		lx.emit(Token{Kind: kind}, begin, loc)
		return nil
	case isDigit(c), (c == '+' || c == '-') && isDigit(lx.byteAt(begin+1)) && lx.operandPos():
		return lx.lexNumber(begin, loc)
	case c == '"':
		return lx.lexString(begin, loc)
	case c == '#':
		return lx.lexColor(begin, loc)
	case c == '<' && lx.operandPos():
		if end := urlLiteralEnd(lx.rest()); end > 0 {
			lx.advanceTo(begin + end)
			lx.emit(Token{Kind: URLToken, Value: lx.src.Code[begin+1 : lx.pos-1]}, begin, loc)
			return nil
		}
	}
	for _, op := range operators {
		if strings.HasPrefix(lx.rest(), op) {
			lx.advanceTo(begin + len(op))
			lx.emit(Token{Kind: OperatorToken}, begin, loc)
			return nil
		}
	}
	r, _ := utf8.DecodeRuneInString(lx.rest())
	return lx.errorf(begin, loc, "unexpected character %q", r)
}

func isNameStart(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_'
}

func isNameChar(c byte) bool { return isNameStart(c) || isDigit(c) }

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isHexDigit(c byte) bool {
	return isDigit(c) || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

// Returns the length of a URL literal "<scheme:text>" at the start of s, or 0
// if s doesn't start with one.
func urlLiteralEnd(s string) int {
	colon := strings.IndexByte(s, ':')
	if colon < 0 || !url.IsValidScheme(s[1:colon]) {
		return 0
	}
	for i := colon + 1; i < len(s); i++ {
		switch s[i] {
		case '>':
			return i + 1
		case ' ', '\t', '\r', '\n', '<':
			return 0
		}
	}
	return 0
}

func (lx *lexer) lexNumber(begin int, loc diag.Location) error {
	i := begin
	neg := false
	if c := lx.byteAt(i); c == '+' || c == '-' {
		neg = c == '-'
		i++
	}
	base := 10
	legacyOctal := false
	if lx.byteAt(i) == '0' {
		switch lx.byteAt(i + 1) {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 10 {
			i += 2
		} else if isDigit(lx.byteAt(i + 1)) {
			legacyOctal = true
		}
	}
	digitsBegin := i
	for isHexDigit(lx.byteAt(i)) && (base == 16 || isDigit(lx.byteAt(i))) || lx.byteAt(i) == '_' {
		i++
	}
	isFloat := false
	if base == 10 {
		if lx.byteAt(i) == '.' && isDigit(lx.byteAt(i+1)) {
			isFloat = true
			i++
			for isDigit(lx.byteAt(i)) || lx.byteAt(i) == '_' {
				i++
			}
		}
		if c := lx.byteAt(i); c == 'e' || c == 'E' {
			j := i + 1
			if c := lx.byteAt(j); c == '+' || c == '-' {
				j++
			}
			if isDigit(lx.byteAt(j)) {
				isFloat = true
				i = j
				for isDigit(lx.byteAt(i)) || lx.byteAt(i) == '_' {
					i++
				}
			}
		}
	}
	lx.advanceTo(i)
	if isNameChar(lx.byteAt(i)) || digitsBegin == i {
		for isNameChar(lx.byteAt(lx.pos)) {
			lx.advanceTo(lx.pos + 1)
		}
		return lx.errorf(begin, loc, "invalid number literal '%s'", lx.src.Code[begin:lx.pos])
	}
	text := strings.ReplaceAll(lx.src.Code[begin:i], "_", "")

	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return lx.errorf(begin, loc, "float literal out of range '%s'", lx.src.Code[begin:i])
		}
		lx.emit(Token{Kind: FloatToken, Float: f}, begin, loc)
		return nil
	}

	digits := strings.ReplaceAll(lx.src.Code[digitsBegin:i], "_", "")
	if legacyOctal {
		base = 8
		if j := strings.IndexAny(digits, "89"); j >= 0 {
			return lx.errorf(begin, loc, "invalid digit '%c' in octal literal", digits[j])
		}
	}
	u, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			return lx.errorf(begin, loc, "integer literal out of range '%s'", lx.src.Code[begin:i])
		}
		return lx.errorf(begin, loc, "invalid number literal '%s'", lx.src.Code[begin:i])
	}
	var v int64
	switch {
	case neg && u <= 1<<63:
		v = int64(-u)
	case !neg && u <= math.MaxInt64:
		v = int64(u)
	default:
		return lx.errorf(begin, loc, "integer literal out of range '%s'", lx.src.Code[begin:i])
	}
	lx.emit(Token{Kind: IntegerToken, Int: v}, begin, loc)
	return nil
}

func (lx *lexer) lexString(begin int, loc diag.Location) error {
	var sb strings.Builder
	i := begin + 1
	for {
		if i >= len(lx.src.Code) {
			lx.advanceTo(i)
			return lx.errorf(begin, loc, "unterminated string literal")
		}
		c := lx.src.Code[i]
		if c == '"' {
			i++
			break
		}
		if c >= utf8.RuneSelf {
			r, size := utf8.DecodeRuneInString(lx.src.Code[i:])
			if r == utf8.RuneError && size == 1 {
				lx.advanceTo(i)
				return lx.errorf(i, lx.loc(), "invalid UTF-8 in string literal")
			}
			sb.WriteString(lx.src.Code[i : i+size])
			i += size
			continue
		}
		if c != '\\' {
			sb.WriteByte(c)
			i++
			continue
		}
		i++
		if i >= len(lx.src.Code) {
			continue
		}
		// Any other escaped character stands for itself.
		switch e := lx.src.Code[i]; e {
		case 'a':
			sb.WriteByte('\a')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case 'v':
			sb.WriteByte('\v')
		default:
			if e >= utf8.RuneSelf {
				// Escaped multibyte characters are copied by the next iteration.
				continue
			}
			sb.WriteByte(e)
		}
		i++
	}
	lx.advanceTo(i)
	lx.emit(Token{Kind: StringToken, Value: sb.String()}, begin, loc)
	return nil
}

func (lx *lexer) lexColor(begin int, loc diag.Location) error {
	i := begin + 1
	for isHexDigit(lx.byteAt(i)) {
		i++
	}
	lx.advanceTo(i)
	digits := lx.src.Code[begin+1 : i]
	if (len(digits) != 6 && len(digits) != 8) || isNameChar(lx.byteAt(i)) {
		return lx.errorf(begin, loc, "invalid color literal '%s'", lx.src.Code[begin:i])
	}
	x, _ := strconv.ParseUint(digits, 16, 32)
	if len(digits) == 6 {
		x = x<<8 | 0xff
	}
	lx.emit(Token{Kind: ColorToken, Color: uint32(x)}, begin, loc)
	return nil
}
