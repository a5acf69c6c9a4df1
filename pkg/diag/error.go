// Package diag contains the error type shared by the tokenizer, the parser and
// the evaluator, along with utilities for showing errors to the user.
package diag

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies errors.
type Kind int

// Possible values of Kind.
const (
	// An error reading a file.
	IO Kind = iota
	// An error tokenizing or parsing a file.
	Parse
	// An error evaluating an expression, like applying an operator to
	// incompatible values or assigning to something that is not assignable.
	InvalidOperation
	// A lookup of a path that has no value.
	KeyMissing
)

var kindNames = [...]string{
	IO:               "io error",
	Parse:            "parse error",
	InvalidOperation: "invalid operation",
	KeyMissing:       "key missing",
}

func (k Kind) String() string {
	if 0 <= k && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind %d", int(k))
}

// Error is an error with a location. When the error was caused by an error in
// another file (like a syntax error in an included file), PreviousMsg holds
// the rendered message of that error.
type Error struct {
	Kind        Kind
	Location    Location
	Message     string
	PreviousMsg string
	// The underlying error, if any.
	Cause error
	// Source excerpt used by Show, if known.
	Context *Context
}

// Errorf creates an Error with a formatted message.
func Errorf(kind Kind, loc Location, format string, args ...any) *Error {
	return &Error{Kind: kind, Location: loc, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps err in an Error at the given location. If err is already an
// *Error, it is returned unchanged.
func Wrap(kind Kind, loc Location, err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Kind: kind, Location: loc, Message: err.Error(), Cause: err}
}

// Error returns the error message chain: the previous message if any,
// followed by a line of the form "url:line:column: message.".
func (e *Error) Error() string {
	var sb strings.Builder
	if e.PreviousMsg != "" {
		sb.WriteString(e.PreviousMsg)
		sb.WriteByte('\n')
	}
	sb.WriteString(e.Location.String())
	sb.WriteString(": ")
	sb.WriteString(e.Message)
	if !strings.HasSuffix(e.Message, ".") {
		sb.WriteByte('.')
	}
	return sb.String()
}

// Unwrap returns the cause of the error.
func (e *Error) Unwrap() error { return e.Cause }

// Range returns the range of the error in its source, if known.
func (e *Error) Range() Ranging {
	if e.Context != nil {
		return e.Context.Ranging
	}
	return Ranging{-1, -1}
}

// Variables controlling the style of the message.
var (
	messageStart = "\033[31;1m"
	messageEnd   = "\033[m"
)

// Show shows the error, including the chain of previous errors, and the source
// excerpt when it is known.
func (e *Error) Show(indent string) string {
	var sb strings.Builder
	var inner *Error
	if errors.As(e.Cause, &inner) && inner.Error() == e.PreviousMsg {
		sb.WriteString(inner.Show(indent))
		sb.WriteString("\n" + indent)
	} else if e.PreviousMsg != "" {
		sb.WriteString(e.PreviousMsg + "\n" + indent)
	}
	kind := e.Kind.String()
	fmt.Fprintf(&sb, "%s: %s%s%s\n", strings.ToUpper(kind[:1])+kind[1:],
		messageStart, e.Message, messageEnd)
	desc := e.Location.String()
	if e.Context != nil {
		desc += ": "
		sb.WriteString(indent + "  " + desc)
		sb.WriteString(e.Context.Show(indent + "  " + strings.Repeat(" ", len(desc))))
	} else {
		sb.WriteString(indent + "  " + desc)
	}
	return sb.String()
}
