package eval

import (
	"testing"

	"github.com/tconf/tconf/pkg/eval/vals"
)

func TestContext_Frames(t *testing.T) {
	ctx := NewContext()
	if ctx.CurrentObject() != nil || ctx.Root() != nil {
		t.Errorf("empty context has objects")
	}

	ctx.Push()
	root := ctx.CurrentObject()
	if ctx.Root() != root {
		t.Errorf("Root is not the object of the only frame")
	}

	ctx.Push()
	inner := ctx.CurrentObject()
	if inner == root || ctx.Root() != root || ctx.Depth() != 2 {
		t.Errorf("second frame does not have a fresh object")
	}

	section := vals.NewMap()
	ctx.SetSection(section)
	if ctx.CurrentObject() != section {
		t.Errorf("CurrentObject is not the section")
	}
	ctx.ClearSection()
	if ctx.CurrentObject() != inner {
		t.Errorf("CurrentObject is not the frame object after ClearSection")
	}

	if ctx.Pop() != inner || ctx.Pop() != root || ctx.Depth() != 0 {
		t.Errorf("Pop did not return the objects in order")
	}
}

func TestContext_ForkSharesVariables(t *testing.T) {
	ctx := NewContext()
	ctx.Push()
	forked := ctx.fork()
	if forked.Variables() != ctx.Variables() {
		t.Errorf("forked context has different variables")
	}
	if forked.Depth() != 0 {
		t.Errorf("forked context has frames")
	}
}
