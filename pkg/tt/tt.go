// Package tt supports table-driven tests with little boilerplate.
//
// A typical use looks like this:
//
//	tt.Test(t, strings.Repeat,
//		It("repeats a string").Args("ab", 2).Rets("abab"),
//		Args("", 10).Rets(""),
//	)
package tt

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

// Case represents a test case. It is created by It or Args, and offers setters
// that augment and return itself; those calls can be chained like
// It(...).Args(...).Rets(...).
type Case struct {
	desc         string
	args         []any
	retsMatchers [][]any
}

// It returns a new Case with the given description.
func It(desc string) *Case {
	return &Case{desc: desc}
}

// Args returns a new Case with the given arguments.
func Args(args ...any) *Case {
	return &Case{args: args}
}

// Args sets the arguments of the case and returns it.
func (c *Case) Args(args ...any) *Case {
	c.args = args
	return c
}

// Rets modifies the test case so that it requires the return values to match
// the given values. It returns the receiver. The arguments may implement the
// Matcher interface, in which case its Match method is called with the actual
// return value. Otherwise, reflect.DeepEqual is used to determine matches.
func (c *Case) Rets(matchers ...any) *Case {
	c.retsMatchers = append(c.retsMatchers, matchers)
	return c
}

// FnDescriptor describes a function to test. It is created by Fn.
type FnDescriptor struct {
	name    string
	body    any
	argsFmt string
}

// Fn wraps a function to test, so that the name or formatting used in error
// messages can be customized.
func Fn(body any) *FnDescriptor {
	return &FnDescriptor{body: body}
}

// Named sets the name of the function used in error messages.
func (fn *FnDescriptor) Named(name string) *FnDescriptor {
	fn.name = name
	return fn
}

// ArgsFmt sets the format string used for arguments in error messages.
func (fn *FnDescriptor) ArgsFmt(s string) *FnDescriptor {
	fn.argsFmt = s
	return fn
}

// T is the interface for accessing testing.T.
type T interface {
	Helper()
	Errorf(format string, args ...any)
}

// Test tests a function against test cases. The function may be a plain
// function value or a *FnDescriptor.
func Test(t T, fn any, tests ...*Case) {
	t.Helper()
	desc, ok := fn.(*FnDescriptor)
	if !ok {
		desc = Fn(fn)
	}
	if desc.name == "" {
		desc.name = funcName(desc.body)
	}
	for _, test := range tests {
		rets := call(desc.body, test.args)
		for _, retsMatcher := range test.retsMatchers {
			if match(retsMatcher, rets) {
				continue
			}
			var argsString string
			if desc.argsFmt == "" {
				argsString = sprintCommaDelimited(test.args...)
			} else {
				argsString = fmt.Sprintf(desc.argsFmt, test.args...)
			}
			prefix := ""
			if test.desc != "" {
				prefix = test.desc + ": "
			}
			t.Errorf("%s%s(%s) -> %s, want %s", prefix, desc.name, argsString,
				sprintRets(rets...), sprintRets(retsMatcher...))
		}
	}
}

// Matcher wraps the Match method.
type Matcher interface {
	// Match reports whether a return value is considered a match.
	Match(RetValue) bool
}

// RetValue is an empty interface used in the Matcher interface.
type RetValue any

// Any is a Matcher that matches any value.
var Any Matcher = anyMatcher{}

type anyMatcher struct{}

func (anyMatcher) Match(RetValue) bool { return true }

// ErrorWithMessage returns a Matcher that matches any non-nil error whose
// Error method returns the given message.
func ErrorWithMessage(msg string) Matcher { return errorWithMessage{msg} }

type errorWithMessage struct{ msg string }

func (m errorWithMessage) Match(a RetValue) bool {
	err, ok := a.(error)
	return ok && err.Error() == m.msg
}

func (m errorWithMessage) String() string { return "error with message " + m.msg }

func match(matchers, actual []any) bool {
	if len(matchers) != len(actual) {
		return false
	}
	for i, matcher := range matchers {
		if !matchOne(matcher, actual[i]) {
			return false
		}
	}
	return true
}

func matchOne(m, a any) bool {
	if m, ok := m.(Matcher); ok {
		return m.Match(a)
	}
	return reflect.DeepEqual(m, a)
}

func sprintRets(rets ...any) string {
	if len(rets) == 1 {
		return fmt.Sprint(rets[0])
	}
	return "(" + sprintCommaDelimited(rets...) + ")"
}

func sprintCommaDelimited(args ...any) string {
	var sb strings.Builder
	for i, arg := range args {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprint(&sb, arg)
	}
	return sb.String()
}

func funcName(f any) string {
	name := runtime.FuncForPC(reflect.ValueOf(f).Pointer()).Name()
	return name[strings.LastIndexByte(name, '.')+1:]
}

func call(fn any, args []any) []any {
	fnType := reflect.TypeOf(fn)
	argsReflect := make([]reflect.Value, len(args))
	for i, arg := range args {
		if arg == nil {
			// reflect.ValueOf(nil) is the zero Value; use the zero value of
			// the parameter type instead.
			argsReflect[i] = reflect.Zero(paramType(fnType, i))
		} else {
			argsReflect[i] = reflect.ValueOf(arg)
		}
	}
	retsReflect := reflect.ValueOf(fn).Call(argsReflect)
	rets := make([]any, len(retsReflect))
	for i, retReflect := range retsReflect {
		rets[i] = retReflect.Interface()
	}
	return rets
}

func paramType(fnType reflect.Type, i int) reflect.Type {
	if fnType.IsVariadic() && i >= fnType.NumIn()-1 {
		return fnType.In(fnType.NumIn() - 1).Elem()
	}
	return fnType.In(i)
}
