package diag

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// Shower wraps the Show function.
type Shower interface {
	// Show takes an indentation string and shows.
	Show(indent string) string
}

// ShowError shows an error to w. It uses the Show method if the error
// implements Shower, and prints the error message otherwise. Styling escape
// sequences are only written when w is a terminal.
func ShowError(w io.Writer, err error) {
	if !isTerminal(w) {
		defer withoutStyles()()
	}
	if shower, ok := err.(Shower); ok {
		fmt.Fprintln(w, shower.Show(""))
	} else {
		fmt.Fprintf(w, "%s%s%s\n", messageStart, err.Error(), messageEnd)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// Not safe for concurrent use with Show.
func withoutStyles() func() {
	saved := [...]string{culpritStart, culpritEnd, messageStart, messageEnd}
	culpritStart, culpritEnd, messageStart, messageEnd = "", "", "", ""
	return func() {
		culpritStart, culpritEnd, messageStart, messageEnd =
			saved[0], saved[1], saved[2], saved[3]
	}
}
