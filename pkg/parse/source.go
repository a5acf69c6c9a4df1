package parse

import (
	"os"

	"github.com/tconf/tconf/pkg/diag"
	"github.com/tconf/tconf/pkg/url"
)

// Source describes a piece of source code.
type Source struct {
	URL  url.URL
	Code string
}

// SourceForTest returns a Source used for testing.
func SourceForTest(code string) Source {
	return Source{URL: url.Parse("file:[test]"), Code: code}
}

// ReadFileFunc reads the content of the file named by a URL.
type ReadFileFunc func(u url.URL) ([]byte, error)

// ReadLocalFile is a ReadFileFunc that reads from the local filesystem.
func ReadLocalFile(u url.URL) ([]byte, error) {
	return os.ReadFile(u.Filename())
}

// ReadSource reads the file named by u with readFile. Failures are reported
// as a *diag.Error of kind diag.IO.
func ReadSource(u url.URL, readFile ReadFileFunc) (Source, error) {
	code, err := readFile(u)
	if err != nil {
		return Source{URL: u}, &diag.Error{Kind: diag.IO, Location: diag.Location{URL: u},
			Message: "Could not read file: " + err.Error(), Cause: err}
	}
	return Source{URL: u, Code: string(code)}, nil
}

// ParseFile reads the file named by u from the local filesystem and parses
// it.
func ParseFile(u url.URL) (*Object, error) {
	src, err := ReadSource(u, ReadLocalFile)
	if err != nil {
		return emptyObject(u), err
	}
	return Parse(src)
}
