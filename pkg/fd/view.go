package fd

import (
	"fmt"

	"github.com/operator-framework/brancher/pkg/branch"
)

var _ branch.View[*Space] = IntView{}

// IntView is a handle to an integer variable of a Space. It is valid for
// the space it was created in and every clone of that space.
type IntView struct {
	i int
}

// Index returns the index of the variable in its space.
func (x IntView) Index() int {
	return x.i
}

func (x IntView) String() string {
	return fmt.Sprintf("x%d", x.i)
}

func (x IntView) Assigned(home *Space) bool {
	return home.doms[x.i].assigned()
}

func (x IntView) Size(home *Space) int {
	return home.doms[x.i].size
}

func (x IntView) Min(home *Space) int {
	return home.doms[x.i].min
}

func (x IntView) Max(home *Space) int {
	return home.doms[x.i].max
}

// Med returns the median of the domain, rounding downwards.
func (x IntView) Med(home *Space) int {
	return home.doms[x.i].med()
}

// Val returns the value of an assigned view.
func (x IntView) Val(home *Space) int {
	d := &home.doms[x.i]
	if !d.assigned() {
		panic(fmt.Sprintf("fd: %s is not assigned", x))
	}
	return d.min
}

func (x IntView) In(home *Space, n int) bool {
	return home.doms[x.i].in(n)
}

// Values returns the domain in increasing order.
func (x IntView) Values(home *Space) []int {
	return home.doms[x.i].values()
}

// Eq restricts x to n.
func (x IntView) Eq(home *Space, n int) branch.ModEvent {
	if home.failed {
		return branch.ModEventFailed
	}
	return home.modified(x.i, home.doms[x.i].eq(n))
}

// Nq removes n from x.
func (x IntView) Nq(home *Space, n int) branch.ModEvent {
	if home.failed {
		return branch.ModEventFailed
	}
	return home.modified(x.i, home.doms[x.i].nq(n))
}

// Lq restricts x to values <= n.
func (x IntView) Lq(home *Space, n int) branch.ModEvent {
	if home.failed {
		return branch.ModEventFailed
	}
	return home.modified(x.i, home.doms[x.i].lq(n))
}

// Gq restricts x to values >= n.
func (x IntView) Gq(home *Space, n int) branch.ModEvent {
	if home.failed {
		return branch.ModEventFailed
	}
	return home.modified(x.i, home.doms[x.i].gq(n))
}
