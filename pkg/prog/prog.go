// Package prog implements the tconf command.
//
// The command tree is built with cobra. Run executes it and maps the outcome
// to an exit status: 0 on success, 1 when a configuration fails to load and 2
// on bad usage.
package prog

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tconf/tconf/pkg/diag"
	"github.com/tconf/tconf/pkg/logutil"
)

var logger = logutil.GetLogger("prog")

// Run parses the command line and runs the selected command. args[0] is the
// program name. It returns the exit status of the program.
func Run(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer, args []string) int {
	cmd := newRootCommand()
	cmd.SetArgs(args[1:])
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	var (
		usageErr badUsageError
		exitErr  exitError
		diagErr  *diag.Error
		failErr  failureError
	)
	switch {
	case errors.As(err, &exitErr):
		return exitErr.exit
	case errors.As(err, &diagErr):
		diag.ShowError(stderr, diagErr)
		return 1
	case errors.As(err, &failErr):
		fmt.Fprintln(stderr, "Error:", failErr.err)
		return 1
	case errors.As(err, &usageErr):
		fmt.Fprintln(stderr, "Error:", usageErr.msg)
	default:
		// Errors from cobra itself, like unknown commands.
		fmt.Fprintln(stderr, "Error:", err)
	}
	fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", cmd.CommandPath())
	return 2
}

// BadUsage returns an error that causes Run to print the message and a usage
// hint, and exit with 2.
func BadUsage(msg string) error { return badUsageError{msg} }

type badUsageError struct{ msg string }

func (e badUsageError) Error() string { return e.msg }

// Exit returns an error that causes Run to exit with the given code without
// printing anything. Exit(0) returns nil.
func Exit(exit int) error {
	if exit == 0 {
		return nil
	}
	return exitError{exit}
}

type exitError struct{ exit int }

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.exit) }

// Failure wraps an error that is not caused by bad usage, like a failure to
// open the cache. Run prints it and exits with 1.
func Failure(err error) error {
	if err == nil {
		return nil
	}
	return failureError{err}
}

type failureError struct{ err error }

func (e failureError) Error() string { return e.err.Error() }
func (e failureError) Unwrap() error { return e.err }

func newRootCommand() *cobra.Command {
	f := &Flags{}
	root := &cobra.Command{
		Use:   "tconf",
		Short: "Evaluate and inspect configuration files",
		Long: `tconf evaluates configuration files and shows their values.

A configuration file is a list of assignments like "key: value". Values are
computed with expressions, files are combined with include("other.conf"), and
[a.b] section headers set the object later assignments go into.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateFlags(f); err != nil {
				return err
			}
			if err := logutil.SetOutputFile(f.Log); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "Warning: cannot open log file:", err)
			}
			logger.Debug().Str("command", cmd.CommandPath()).Msg("running")
			return nil
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return BadUsage(err.Error())
	})
	f.register(root)

	root.AddCommand(
		newEvalCommand(f),
		newGetCommand(f),
		newASTCommand(f),
		newCheckCommand(f),
		newWatchCommand(f),
		newLSPCommand(f),
		newCacheCommand(f),
		newVersionCommand(),
	)
	return root
}

// Like cobra.ExactArgs, but returns a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != n {
			return BadUsage(fmt.Sprintf("accepts %d arg(s), received %d", n, len(args)))
		}
		return nil
	}
}

func minimumArgs(n int) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) < n {
			return BadUsage(fmt.Sprintf("requires at least %d arg(s), only received %d", n, len(args)))
		}
		return nil
	}
}
