package vals

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// NoPretty can be passed to Repr to suppress pretty-printing.
const NoPretty = -1

// Repr returns the representation of a value. The representation of a
// configuration that only contains null, bools, numbers, strings, vectors and
// maps with string keys is valid JSON. Map entries are sorted by key.
//
// If indent is NoPretty, the representation is compact. Otherwise containers
// are split over multiple lines, each nested level indented by two more
// spaces, starting at the given indentation level.
func Repr(v Value, indent int) string {
	var sb strings.Builder
	writeRepr(&sb, v, indent)
	return sb.String()
}

// ReprPlain is like Repr, but without pretty-printing.
func ReprPlain(v Value) string {
	return Repr(v, NoPretty)
}

func writeRepr(sb *strings.Builder, v Value, indent int) {
	switch v := v.(type) {
	case nil, Undefined:
		sb.WriteString("undefined")
	case Null:
		sb.WriteString("null")
	case Bool:
		sb.WriteString(strconv.FormatBool(bool(v)))
	case Int:
		sb.WriteString(strconv.FormatInt(int64(v), 10))
	case Float:
		sb.WriteString(formatFloat(float64(v)))
	case String:
		sb.WriteString(Quote(string(v)))
	case URL:
		sb.WriteString("<" + v.String() + ">")
	case Color:
		sb.WriteString(v.Hex())
	case *Vector:
		if v.Len() == 0 {
			sb.WriteString("[]")
			return
		}
		sb.WriteByte('[')
		for i, e := range v.elems {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeNewline(sb, nextIndent(indent))
			writeRepr(sb, e, nextIndent(indent))
		}
		writeNewline(sb, indent)
		sb.WriteByte(']')
	case *Map:
		if v.Len() == 0 {
			sb.WriteString("{}")
			return
		}
		sb.WriteByte('{')
		for i, k := range v.SortedKeys() {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeNewline(sb, nextIndent(indent))
			writeRepr(sb, k, NoPretty)
			sb.WriteByte(':')
			if indent != NoPretty {
				sb.WriteByte(' ')
			}
			e, _ := v.Get(k)
			writeRepr(sb, e, nextIndent(indent))
		}
		writeNewline(sb, indent)
		sb.WriteByte('}')
	}
}

func nextIndent(indent int) int {
	if indent == NoPretty {
		return NoPretty
	}
	return indent + 1
}

func writeNewline(sb *strings.Builder, indent int) {
	if indent < 0 {
		return
	}
	sb.WriteByte('\n')
	sb.WriteString(strings.Repeat("  ", indent))
}

// Always contains a decimal point or an exponent.
func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// Quote returns s as a double-quoted string literal with JSON escapes.
func Quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\f':
			sb.WriteString(`\f`)
		case '\b':
			sb.WriteString(`\b`)
		case utf8.RuneError:
			sb.WriteString(`�`)
		default:
			if r < 0x20 || r == 0x7f {
				sb.WriteString(`\u00`)
				sb.WriteByte("0123456789abcdef"[r>>4])
				sb.WriteByte("0123456789abcdef"[r&0xf])
			} else {
				sb.WriteRune(r)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
