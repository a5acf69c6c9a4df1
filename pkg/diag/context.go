package diag

import (
	"strings"
	"unicode/utf8"
)

// Context is a range of text in a source file, used to show an excerpt of the
// source along with an error.
type Context struct {
	Name   string
	Source string
	Ranging
}

// NewContext creates a new Context.
func NewContext(name, source string, r Ranger) *Context {
	return &Context{name, source, r.Range()}
}

// Variables controlling the style of the culprit.
var (
	culpritStart       = "\033[1;4m"
	culpritEnd         = "\033[m"
	culpritPlaceHolder = "^"
)

// Show shows the context as the line containing the range, with the range
// itself highlighted. Lines after the first are indented with indent.
func (c *Context) Show(indent string) string {
	from, to := c.From, c.To
	if from < 0 || to > len(c.Source) || from > to {
		return c.Name + ", invalid position"
	}
	before := c.Source[:from]
	culprit := c.Source[from:to]
	after := c.Source[to:]

	head := before[strings.LastIndexByte(before, '\n')+1:]
	var tail string
	if strings.HasSuffix(culprit, "\n") {
		culprit = culprit[:len(culprit)-1]
	} else if i := strings.IndexByte(after, '\n'); i >= 0 {
		tail = after[:i]
	} else {
		tail = after
	}
	if culprit == "" {
		culprit = culpritPlaceHolder
	}

	var sb strings.Builder
	sb.WriteString(head)
	// Extra indent so that following lines line up with the first line.
	lineIndent := indent + strings.Repeat(" ", utf8.RuneCountInString(head))
	for i, line := range strings.Split(culprit, "\n") {
		if i > 0 {
			sb.WriteString("\n" + lineIndent)
		}
		sb.WriteString(culpritStart + line + culpritEnd)
	}
	sb.WriteString(tail)
	return sb.String()
}
