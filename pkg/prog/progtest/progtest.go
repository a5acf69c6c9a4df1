// Package progtest contains utilities for testing the tconf command.
//
// A test case runs [prog.Run] with some arguments and checks its exit status
// and output:
//
//	progtest.Test(t,
//		progtest.ThatTconf("eval", "a.conf").WritesStdout("{\n  \"a\": 1\n}\n"),
//		progtest.ThatTconf("bad").ExitsWith(2).WritesStderrContaining("unknown command"),
//	)
package progtest

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/tconf/tconf/pkg/prog"
)

// Case is a test case.
type Case struct {
	args  []string
	stdin string
	want  result
}

type result struct {
	exitStatus int
	out        output
	err        output
}

type output struct {
	content string
	partial bool
}

func (o output) String() string {
	if o.partial {
		return "text containing " + quote(o.content)
	}
	return quote(o.content)
}

func quote(s string) string {
	if s == "" {
		return "nothing"
	}
	return "\n" + s
}

// ThatTconf returns a new Case with the specified command-line arguments,
// not including the program name. The new Case expects the program to exit
// with 0 and write nothing to stdout or stderr.
func ThatTconf(args ...string) Case {
	return Case{args: append([]string{"tconf"}, args...)}
}

// WithStdin returns a copy of c that reads stdin from s.
func (c Case) WithStdin(s string) Case {
	c.stdin = s
	return c
}

// DoesNothing returns c itself. It is useful to mark tests that otherwise
// don't have any expectations, for example:
//
//	ThatTconf("--log", "x.log", "version", "--json").DoesNothing()
func (c Case) DoesNothing() Case {
	return c
}

// ExitsWith returns an altered copy of c that expects the program to exit
// with the given code.
func (c Case) ExitsWith(code int) Case {
	c.want.exitStatus = code
	return c
}

// WritesStdout returns an altered copy of c that expects the program to
// write exactly the given content to stdout.
func (c Case) WritesStdout(s string) Case {
	c.want.out = output{content: s}
	return c
}

// WritesStdoutContaining returns an altered copy of c that expects the
// program to write output to stdout that contains the given content.
func (c Case) WritesStdoutContaining(s string) Case {
	c.want.out = output{content: s, partial: true}
	return c
}

// WritesStderr returns an altered copy of c that expects the program to
// write exactly the given content to stderr.
func (c Case) WritesStderr(s string) Case {
	c.want.err = output{content: s}
	return c
}

// WritesStderrContaining returns an altered copy of c that expects the
// program to write output to stderr that contains the given content.
func (c Case) WritesStderrContaining(s string) Case {
	c.want.err = output{content: s, partial: true}
	return c
}

// Test runs test cases.
func Test(t *testing.T, tests ...Case) {
	t.Helper()
	for _, test := range tests {
		t.Run(strings.Join(test.args[1:], " "), func(t *testing.T) {
			t.Helper()
			r := run(test.args, test.stdin)
			if r.exitStatus != test.want.exitStatus {
				t.Errorf("got exit status %v, want %v", r.exitStatus, test.want.exitStatus)
			}
			if !matchOutput(r.out.content, test.want.out) {
				t.Errorf("got stdout %v, want %v", r.out, test.want.out)
			}
			if !matchOutput(r.err.content, test.want.err) {
				t.Errorf("got stderr %v, want %v", r.err, test.want.err)
			}
		})
	}
}

// Run runs the program with the given arguments, including the program name,
// and returns its exit status, stdout and stderr.
func Run(args []string, stdin string) (exit int, stdout, stderr string) {
	r := run(args, stdin)
	return r.exitStatus, r.out.content, r.err.content
}

func run(args []string, stdin string) result {
	var stdout, stderr bytes.Buffer
	exit := prog.Run(context.Background(), strings.NewReader(stdin), &stdout, &stderr, args)
	return result{exit, output{content: stdout.String()}, output{content: stderr.String()}}
}

func matchOutput(got string, want output) bool {
	if want.partial {
		return strings.Contains(got, want.content)
	}
	return got == want.content
}
