package diag

import (
	"strconv"

	"github.com/tconf/tconf/pkg/url"
)

// Location identifies a position in a source file. Line and Column are
// 1-based; Column counts runes. A zero Line means the position within the file
// is unknown.
type Location struct {
	URL    url.URL
	Line   int
	Column int
}

// String returns the location as "url:line:column", or just the URL when the
// line is unknown.
func (l Location) String() string {
	if l.Line == 0 {
		return l.URL.String()
	}
	return l.URL.String() + ":" + strconv.Itoa(l.Line) + ":" + strconv.Itoa(l.Column)
}

// PositionOf returns the 1-based line and column of the byte offset pos in
// src. Columns count runes.
func PositionOf(src string, pos int) (line, col int) {
	line, col = 1, 1
	for i, r := range src {
		if i >= pos {
			break
		}
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}
