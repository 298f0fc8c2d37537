package branch

import (
	"fmt"
	"unsafe"
)

// ViewBranching selects the view to branch on from an array of views. It
// is the building block of ViewValBranching and does not create
// descriptors itself.
type ViewBranching[S any, V View[S]] struct {
	id ID
	// views to branch on; handles are immutable and shared between copies
	x []V
	// unassigned views start at x[start]
	start   int
	viewSel ViewSelector[S, V]
}

// NewViewBranching creates a view branching over x using vs to select
// the branching view.
func NewViewBranching[S any, V View[S]](x []V, vs ViewSelector[S, V]) *ViewBranching[S, V] {
	return &ViewBranching[S, V]{
		id:      nextID(),
		x:       append([]V(nil), x...),
		viewSel: vs,
	}
}

func (b *ViewBranching[S, V]) ID() ID {
	return b.id
}

// Len returns the number of views of the branching.
func (b *ViewBranching[S, V]) Len() int {
	return len(b.x)
}

// Next returns the index of the leftmost unassigned view, at or after the
// cursor, and moves the cursor there. It returns false if every remaining
// view is assigned; the cursor is left untouched in that case.
func (b *ViewBranching[S, V]) Next(home S) (int, bool) {
	for i := b.start; i < len(b.x); i++ {
		if !b.x[i].Assigned(home) {
			b.start = i
			return i, true
		}
	}
	return 0, false
}

// Status returns true if at least one view is unassigned.
func (b *ViewBranching[S, V]) Status(home S) bool {
	_, ok := b.Next(home)
	return ok
}

// Pos returns the position of the view to branch on. The view at the
// cursor must be unassigned, i.e. Status must have returned true.
func (b *ViewBranching[S, V]) Pos(home S) Pos {
	if b.start >= len(b.x) || b.x[b.start].Assigned(home) {
		panic(fmt.Sprintf("branching %d: no unassigned view at position %d", b.id, b.start))
	}
	i := b.start
	best := i
	i++
	if b.viewSel.Init(home, b.x[best]) == ViewSelBest {
		return NewPos(best)
	}
	for ; i < len(b.x); i++ {
		if b.x[i].Assigned(home) {
			continue
		}
		switch s := b.viewSel.Select(home, b.x[i]); s {
		case ViewSelBetter:
			best = i
		case ViewSelBest:
			return NewPos(i)
		case ViewSelTie, ViewSelWorse:
		default:
			panic(fmt.Sprintf("branching %d: unexpected view selection status %s", b.id, s))
		}
	}
	return NewPos(best)
}

// View returns the view at position p.
func (b *ViewBranching[S, V]) View(p Pos) V {
	return b.x[p.Index()]
}

// Copy returns a branching for a clone of the state. The copy shares no
// mutable state with b.
func (b *ViewBranching[S, V]) Copy() *ViewBranching[S, V] {
	return &ViewBranching[S, V]{
		id:      b.id,
		x:       b.x,
		start:   b.start,
		viewSel: b.viewSel.Copy(),
	}
}

// Dispose disposes the view selector and returns the size of the
// branching.
func (b *ViewBranching[S, V]) Dispose(home S) uintptr {
	b.viewSel.Dispose(home)
	return unsafe.Sizeof(*b)
}
