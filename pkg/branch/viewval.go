package branch

import (
	"fmt"
	"unsafe"
)

var _ Branching[any] = &ViewValBranching[any, View[any], int]{}

// ViewValBranching branches by selecting a view with a ViewSelector and a
// value for it with a ValueSelector.
type ViewValBranching[S any, V View[S], T any] struct {
	ViewBranching[S, V]
	valSel ValueSelector[S, V, T]
}

// NewViewValBranching creates a branching over x with view selection vs
// and value selection va.
func NewViewValBranching[S any, V View[S], T any](x []V, vs ViewSelector[S, V], va ValueSelector[S, V, T]) *ViewValBranching[S, V, T] {
	return &ViewValBranching[S, V, T]{
		ViewBranching: *NewViewBranching[S, V](x, vs),
		valSel:        va,
	}
}

// Description returns a *PosValDesc[T] for the next decision.
func (b *ViewValBranching[S, V, T]) Description(home S) Descriptor {
	p := b.Pos(home)
	x := b.View(p)
	return NewPosValDesc[T](b.id, b.valSel.Alternatives(), p,
		b.viewSel.Snapshot(home),
		b.valSel.Snapshot(home), b.valSel.Val(home, x))
}

// Commit replays alternative alt of d on home. d must have been created
// by this branching or one of its copies.
func (b *ViewValBranching[S, V, T]) Commit(home S, d Descriptor, alt int) ExecStatus {
	pvd, ok := d.(*PosValDesc[T])
	if !ok || pvd.ID() != b.id {
		panic(fmt.Sprintf("branching %d: foreign descriptor %T for branching %d", b.id, d, d.ID()))
	}
	if alt < 0 || alt >= pvd.Alternatives() {
		panic(fmt.Sprintf("branching %d: alternative %d out of range [0,%d)", b.id, alt, pvd.Alternatives()))
	}
	x := b.View(pvd.Pos())
	b.viewSel.Commit(home, pvd.ViewSnapshot(), alt)
	b.valSel.Commit(home, pvd.ValSnapshot(), alt)
	if b.valSel.Tell(home, alt, x, pvd.Val()).Failed() {
		return ExecFailed
	}
	return ExecOK
}

func (b *ViewValBranching[S, V, T]) Copy() Branching[S] {
	return &ViewValBranching[S, V, T]{
		ViewBranching: *b.ViewBranching.Copy(),
		valSel:        b.valSel.Copy(),
	}
}

func (b *ViewValBranching[S, V, T]) Dispose(home S) uintptr {
	b.valSel.Dispose(home)
	b.ViewBranching.Dispose(home)
	return unsafe.Sizeof(*b)
}
