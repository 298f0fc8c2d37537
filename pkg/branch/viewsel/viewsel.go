// Package viewsel provides view selection policies for branchings.
//
// All policies work on any state S whose views report their domain size
// and bounds, so the same policy serves integer and boolean states.
package viewsel

import (
	"github.com/operator-framework/brancher/pkg/branch"
)

// Sized is a view that exposes its domain size and bounds.
type Sized[S any] interface {
	branch.View[S]
	Size(home S) int
	Min(home S) int
	Max(home S) int
}

// stateless implements the snapshot, commit and dispose parts of a
// selector without state between decisions.
type stateless[S any] struct{}

func (stateless[S]) Snapshot(_ S) branch.Snapshot {
	return branch.EmptySnapshot{}
}

func (stateless[S]) Commit(_ S, _ branch.Snapshot, _ int) {}

func (stateless[S]) Dispose(_ S) {}

var _ branch.ViewSelector[any, Sized[any]] = &none[any, Sized[any]]{}

type none[S any, V Sized[S]] struct {
	stateless[S]
}

// None selects the first unassigned view.
func None[S any, V Sized[S]]() branch.ViewSelector[S, V] {
	return &none[S, V]{}
}

func (*none[S, V]) Init(_ S, _ V) branch.ViewSelStatus {
	return branch.ViewSelBest
}

func (*none[S, V]) Select(_ S, _ V) branch.ViewSelStatus {
	return branch.ViewSelBest
}

func (s *none[S, V]) Copy() branch.ViewSelector[S, V] {
	return &none[S, V]{}
}

// byMetric selects views by an integer metric of the view. If min is set
// smaller metrics are better. A view whose metric equals best cannot be
// beaten, which lets the scan stop early.
type byMetric[S any, V Sized[S]] struct {
	stateless[S]
	metric  func(home S, x V) int
	min     bool
	best    int
	hasBest bool
	cur     int
}

func (s *byMetric[S, V]) Init(home S, x V) branch.ViewSelStatus {
	s.cur = s.metric(home, x)
	if s.hasBest && s.cur == s.best {
		return branch.ViewSelBest
	}
	return branch.ViewSelBetter
}

func (s *byMetric[S, V]) Select(home S, x V) branch.ViewSelStatus {
	m := s.metric(home, x)
	switch {
	case m == s.cur:
		return branch.ViewSelTie
	case s.min && m > s.cur, !s.min && m < s.cur:
		return branch.ViewSelWorse
	}
	s.cur = m
	if s.hasBest && m == s.best {
		return branch.ViewSelBest
	}
	return branch.ViewSelBetter
}

func (s *byMetric[S, V]) Copy() branch.ViewSelector[S, V] {
	c := *s
	return &c
}

func size[S any, V Sized[S]](home S, x V) int {
	return x.Size(home)
}

func lower[S any, V Sized[S]](home S, x V) int {
	return x.Min(home)
}

func upper[S any, V Sized[S]](home S, x V) int {
	return x.Max(home)
}

// SizeMin selects the view with the smallest domain (first fail). A
// domain of size two cannot be beaten by an unassigned view.
func SizeMin[S any, V Sized[S]]() branch.ViewSelector[S, V] {
	return &byMetric[S, V]{metric: size[S, V], min: true, best: 2, hasBest: true}
}

// SizeMax selects the view with the largest domain.
func SizeMax[S any, V Sized[S]]() branch.ViewSelector[S, V] {
	return &byMetric[S, V]{metric: size[S, V]}
}

// MinMin selects the view with the smallest lower bound.
func MinMin[S any, V Sized[S]]() branch.ViewSelector[S, V] {
	return &byMetric[S, V]{metric: lower[S, V], min: true}
}

// MinMax selects the view with the largest lower bound.
func MinMax[S any, V Sized[S]]() branch.ViewSelector[S, V] {
	return &byMetric[S, V]{metric: lower[S, V]}
}

// MaxMin selects the view with the smallest upper bound.
func MaxMin[S any, V Sized[S]]() branch.ViewSelector[S, V] {
	return &byMetric[S, V]{metric: upper[S, V], min: true}
}

// MaxMax selects the view with the largest upper bound.
func MaxMax[S any, V Sized[S]]() branch.ViewSelector[S, V] {
	return &byMetric[S, V]{metric: upper[S, V]}
}
