package viewsel

import (
	"unsafe"

	"github.com/operator-framework/brancher/pkg/branch"
)

// rndSnapshot records the generator state before a selection.
type rndSnapshot struct {
	seed uint32
}

func (s rndSnapshot) Size() uintptr {
	return unsafe.Sizeof(s)
}

// rnd selects a view uniformly at random by reservoir sampling over the
// unassigned views.
type rnd[S any, V Sized[S]] struct {
	// generator state after the last decision
	seed uint32
	// state while scanning
	cur uint32
	n   uint32
}

// Rnd returns a selector picking a random unassigned view. Decisions are
// reproducible: a descriptor carries the generator state, and committing
// it restores that state on the committing branching.
func Rnd[S any, V Sized[S]](seed uint32) branch.ViewSelector[S, V] {
	return &rnd[S, V]{seed: seed}
}

// next advances a linear congruential generator.
func next(seed uint32) uint32 {
	return seed*1664525 + 1013904223
}

func (s *rnd[S, V]) Init(_ S, _ V) branch.ViewSelStatus {
	s.cur = s.seed
	s.n = 1
	return branch.ViewSelBetter
}

func (s *rnd[S, V]) Select(_ S, _ V) branch.ViewSelStatus {
	s.n++
	s.cur = next(s.cur)
	if (s.cur>>8)%s.n == 0 {
		return branch.ViewSelBetter
	}
	return branch.ViewSelWorse
}

func (s *rnd[S, V]) Snapshot(_ S) branch.Snapshot {
	return rndSnapshot{seed: s.seed}
}

func (s *rnd[S, V]) Commit(_ S, d branch.Snapshot, _ int) {
	s.seed = next(d.(rndSnapshot).seed)
}

func (s *rnd[S, V]) Copy() branch.ViewSelector[S, V] {
	c := *s
	return &c
}

func (s *rnd[S, V]) Dispose(_ S) {}
