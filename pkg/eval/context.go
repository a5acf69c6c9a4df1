package eval

import "github.com/tconf/tconf/pkg/eval/vals"

// Context is the mutable state of evaluating a file: a stack of frames, one
// for each object literal being evaluated, and the variable object $.
//
// The bottom frame holds the root object of the file. The variable object is
// not part of the stack, and is shared with the contexts of included files.
type Context struct {
	frames    []objectFrame
	variables *vals.Map
}

type objectFrame struct {
	object *vals.Map
	// Set by a section header; nil when assignments go to object itself.
	section *vals.Map
}

// NewContext returns a new Context with no frames and an empty variable
// object.
func NewContext() *Context {
	return &Context{variables: vals.NewMap()}
}

// Returns a context for evaluating an included file.
func (c *Context) fork() *Context {
	return &Context{variables: c.variables}
}

// Push pushes a frame with a fresh empty object and no section.
func (c *Context) Push() {
	c.frames = append(c.frames, objectFrame{object: vals.NewMap()})
}

// Pop pops the top frame and returns its object. It panics if there are no
// frames.
func (c *Context) Pop() *vals.Map {
	top := c.frames[len(c.frames)-1]
	c.frames = c.frames[:len(c.frames)-1]
	return top.object
}

// Depth returns the number of frames.
func (c *Context) Depth() int { return len(c.frames) }

// CurrentObject returns the object assignments go to: the section of the top
// frame if one is set, or its object. It returns nil if there are no frames.
func (c *Context) CurrentObject() *vals.Map {
	if len(c.frames) == 0 {
		return nil
	}
	top := c.frames[len(c.frames)-1]
	if top.section != nil {
		return top.section
	}
	return top.object
}

// Root returns the object of the bottom frame, or nil if there are no frames.
func (c *Context) Root() *vals.Map {
	if len(c.frames) == 0 {
		return nil
	}
	return c.frames[0].object
}

// Variables returns the variable object.
func (c *Context) Variables() *vals.Map { return c.variables }

// SetSection directs the following assignments of the top frame into m.
func (c *Context) SetSection(m *vals.Map) {
	c.frames[len(c.frames)-1].section = m
}

// ClearSection directs the following assignments of the top frame back to its
// object.
func (c *Context) ClearSection() {
	c.frames[len(c.frames)-1].section = nil
}
