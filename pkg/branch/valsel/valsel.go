// Package valsel provides value selection policies for branchings.
package valsel

import (
	"fmt"

	"github.com/operator-framework/brancher/pkg/branch"
)

// Tellable is a view with integer bounds that can be constrained.
type Tellable[S any] interface {
	branch.View[S]
	Min(home S) int
	Max(home S) int
	Med(home S) int
	Eq(home S, n int) branch.ModEvent
	Nq(home S, n int) branch.ModEvent
	Lq(home S, n int) branch.ModEvent
	Gq(home S, n int) branch.ModEvent
}

type stateless[S any] struct{}

func (stateless[S]) Snapshot(_ S) branch.Snapshot {
	return branch.EmptySnapshot{}
}

func (stateless[S]) Commit(_ S, _ branch.Snapshot, _ int) {}

func (stateless[S]) Dispose(_ S) {}

var _ branch.ValueSelector[any, Tellable[any], int] = &eqNq[any, Tellable[any]]{}

// eqNq tries x = n first and x != n second, with n picked by pick.
type eqNq[S any, V Tellable[S]] struct {
	stateless[S]
	pick func(home S, x V) int
}

func (*eqNq[S, V]) Alternatives() int {
	return 2
}

func (s *eqNq[S, V]) Val(home S, x V) int {
	return s.pick(home, x)
}

func (*eqNq[S, V]) Tell(home S, alt int, x V, n int) branch.ModEvent {
	if alt == 0 {
		return x.Eq(home, n)
	}
	return x.Nq(home, n)
}

func (s *eqNq[S, V]) Copy() branch.ValueSelector[S, V, int] {
	return &eqNq[S, V]{pick: s.pick}
}

// Min assigns the smallest value first and excludes it second.
func Min[S any, V Tellable[S]]() branch.ValueSelector[S, V, int] {
	return &eqNq[S, V]{pick: func(home S, x V) int { return x.Min(home) }}
}

// Max assigns the largest value first and excludes it second.
func Max[S any, V Tellable[S]]() branch.ValueSelector[S, V, int] {
	return &eqNq[S, V]{pick: func(home S, x V) int { return x.Max(home) }}
}

// Med assigns the median value first and excludes it second.
func Med[S any, V Tellable[S]]() branch.ValueSelector[S, V, int] {
	return &eqNq[S, V]{pick: func(home S, x V) int { return x.Med(home) }}
}

// split bisects the domain at the mean of its bounds.
type split[S any, V Tellable[S]] struct {
	stateless[S]
	lowerFirst bool
}

func (*split[S, V]) Alternatives() int {
	return 2
}

func (*split[S, V]) Val(home S, x V) int {
	return floorMean(x.Min(home), x.Max(home))
}

func (s *split[S, V]) Tell(home S, alt int, x V, n int) branch.ModEvent {
	if (alt == 0) == s.lowerFirst {
		return x.Lq(home, n)
	}
	return x.Gq(home, n+1)
}

func (s *split[S, V]) Copy() branch.ValueSelector[S, V, int] {
	c := *s
	return &c
}

// SplitMin tries the lower half of the domain first.
func SplitMin[S any, V Tellable[S]]() branch.ValueSelector[S, V, int] {
	return &split[S, V]{lowerFirst: true}
}

// SplitMax tries the upper half of the domain first.
func SplitMax[S any, V Tellable[S]]() branch.ValueSelector[S, V, int] {
	return &split[S, V]{}
}

func floorMean(a, b int) int {
	s := a + b
	if s < 0 && s%2 != 0 {
		return s/2 - 1
	}
	return s / 2
}

// Bounds is a closed integer interval.
type Bounds struct {
	Min, Max int
}

func (b Bounds) String() string {
	return fmt.Sprintf("[%d..%d]", b.Min, b.Max)
}

// interval splits the bounds of a view into k consecutive intervals, one
// per alternative.
type interval[S any, V Tellable[S]] struct {
	stateless[S]
	k int
}

// Interval returns a selector with k alternatives, alternative i
// restricting the view to the i-th of k consecutive intervals covering
// its bounds. Intervals that would be empty make their alternative fail.
func Interval[S any, V Tellable[S]](k int) branch.ValueSelector[S, V, Bounds] {
	if k < 1 {
		panic(fmt.Sprintf("valsel: interval needs at least one alternative, got %d", k))
	}
	return &interval[S, V]{k: k}
}

func (s *interval[S, V]) Alternatives() int {
	return s.k
}

func (*interval[S, V]) Val(home S, x V) Bounds {
	return Bounds{Min: x.Min(home), Max: x.Max(home)}
}

// Range returns the interval of alternative alt within b.
func (s *interval[S, V]) Range(b Bounds, alt int) Bounds {
	width := b.Max - b.Min + 1
	lo := b.Min + width*alt/s.k
	hi := b.Min + width*(alt+1)/s.k - 1
	return Bounds{Min: lo, Max: hi}
}

func (s *interval[S, V]) Tell(home S, alt int, x V, b Bounds) branch.ModEvent {
	r := s.Range(b, alt)
	if r.Min > r.Max {
		return branch.ModEventFailed
	}
	if me := x.Gq(home, r.Min); me.Failed() {
		return me
	}
	return x.Lq(home, r.Max)
}

func (s *interval[S, V]) Copy() branch.ValueSelector[S, V, Bounds] {
	return &interval[S, V]{k: s.k}
}
