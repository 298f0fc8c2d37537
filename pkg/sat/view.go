package sat

import (
	"fmt"

	"github.com/go-air/gini/z"

	"github.com/operator-framework/brancher/pkg/branch"
)

var _ branch.View[*Space] = BoolView{}

// BoolView is a handle to a boolean variable of a Space, seen as an
// integer variable with domain {0, 1}.
type BoolView struct {
	m z.Lit
}

// Lit returns the positive literal of the variable.
func (x BoolView) Lit() z.Lit {
	return x.m
}

func (x BoolView) String() string {
	return x.m.String()
}

func (x BoolView) Assigned(home *Space) bool {
	return home.value(x.m) != 0
}

func (x BoolView) Size(home *Space) int {
	if x.Assigned(home) {
		return 1
	}
	return 2
}

func (x BoolView) Min(home *Space) int {
	if home.value(x.m) == 1 {
		return 1
	}
	return 0
}

func (x BoolView) Max(home *Space) int {
	if home.value(x.m) == -1 {
		return 0
	}
	return 1
}

// Med returns the median of {0, 1}, rounding downwards.
func (x BoolView) Med(home *Space) int {
	return x.Min(home)
}

// Val returns the value of an assigned view.
func (x BoolView) Val(home *Space) int {
	switch home.value(x.m) {
	case 1:
		return 1
	case -1:
		return 0
	}
	panic(fmt.Sprintf("sat: %s is not assigned", x))
}

func (x BoolView) In(home *Space, n int) bool {
	return n >= x.Min(home) && n <= x.Max(home)
}

// Eq restricts x to n.
func (x BoolView) Eq(home *Space, n int) branch.ModEvent {
	switch n {
	case 0:
		return home.assume(x.m.Not())
	case 1:
		return home.assume(x.m)
	}
	home.failed = true
	return branch.ModEventFailed
}

// Nq removes n from x.
func (x BoolView) Nq(home *Space, n int) branch.ModEvent {
	switch n {
	case 0:
		return home.assume(x.m)
	case 1:
		return home.assume(x.m.Not())
	}
	return branch.ModEventNone
}

// Lq restricts x to values <= n.
func (x BoolView) Lq(home *Space, n int) branch.ModEvent {
	switch {
	case n < 0:
		home.failed = true
		return branch.ModEventFailed
	case n == 0:
		return home.assume(x.m.Not())
	}
	return branch.ModEventNone
}

// Gq restricts x to values >= n.
func (x BoolView) Gq(home *Space, n int) branch.ModEvent {
	switch {
	case n > 1:
		home.failed = true
		return branch.ModEventFailed
	case n == 1:
		return home.assume(x.m)
	}
	return branch.ModEventNone
}
