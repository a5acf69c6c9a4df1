package tt

import (
	"errors"
	"fmt"
	"testing"
)

// testT implements the T interface and is used to verify the Test function's
// interaction with T.
type testT []string

func (t *testT) Helper() {}

func (t *testT) Errorf(format string, args ...any) {
	*t = append(*t, fmt.Sprintf(format, args...))
}

func add(x, y int) int { return x + y }

func addWithErr(x, y int) (int, error) {
	if x < 0 {
		return 0, errors.New("negative x")
	}
	return x + y, nil
}

func TestTest_PassingCases(t *testing.T) {
	var tt testT
	Test(&tt, add,
		Args(1, 10).Rets(11),
		It("adds zero").Args(0, 5).Rets(5),
		Args(10, 10).Rets(Any),
	)
	if len(tt) != 0 {
		t.Errorf("Test reported errors for passing cases: %v", tt)
	}
}

func TestTest_FailingCase(t *testing.T) {
	var tt testT
	Test(&tt, Fn(add).Named("sum"), It("is wrong").Args(1, 2).Rets(4))
	want := "is wrong: sum(1, 2) -> 3, want 4"
	if len(tt) != 1 || tt[0] != want {
		t.Errorf("got errors %q, want [%q]", tt, want)
	}
}

func TestTest_ErrorMatcher(t *testing.T) {
	var tt testT
	Test(&tt, addWithErr,
		Args(-1, 2).Rets(0, ErrorWithMessage("negative x")),
		Args(1, 2).Rets(3, nil),
	)
	if len(tt) != 0 {
		t.Errorf("Test reported errors: %v", tt)
	}
}

func TestTest_ArgsFmt(t *testing.T) {
	var tt testT
	Test(&tt, Fn(add).Named("add").ArgsFmt("%d+%d"), Args(1, 1).Rets(3))
	want := "add(1+1) -> 2, want 3"
	if len(tt) != 1 || tt[0] != want {
		t.Errorf("got errors %q, want [%q]", tt, want)
	}
}
