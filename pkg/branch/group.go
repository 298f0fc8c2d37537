package branch

import "fmt"

// Group is the ordered list of branchings of a state. Decisions are taken
// from the first branching that still has unassigned views; a branching
// that reported no more decisions is never consulted again.
type Group[S any] struct {
	bs []Branching[S]
	// branchings before bs[cur] are exhausted
	cur int
}

func NewGroup[S any]() *Group[S] {
	return &Group[S]{}
}

// Add appends b to the group.
func (g *Group[S]) Add(b Branching[S]) {
	g.bs = append(g.bs, b)
}

// Len returns the number of branchings that are not yet exhausted.
func (g *Group[S]) Len() int {
	return len(g.bs) - g.cur
}

// Status returns true if some branching has decisions left.
func (g *Group[S]) Status(home S) bool {
	for ; g.cur < len(g.bs); g.cur++ {
		if g.bs[g.cur].Status(home) {
			return true
		}
	}
	return false
}

// Description returns the next decision of the first active branching.
// Status must have returned true.
func (g *Group[S]) Description(home S) Descriptor {
	if g.cur >= len(g.bs) {
		panic("branch: description requested from exhausted group")
	}
	return g.bs[g.cur].Description(home)
}

// Commit routes d to the branching that created it.
func (g *Group[S]) Commit(home S, d Descriptor, alt int) ExecStatus {
	for i := g.cur; i < len(g.bs); i++ {
		if g.bs[i].ID() == d.ID() {
			return g.bs[i].Commit(home, d, alt)
		}
	}
	panic(fmt.Sprintf("branch: no branching with id %d", d.ID()))
}

// Copy returns a group of copied branchings. Exhausted branchings are not
// copied.
func (g *Group[S]) Copy() *Group[S] {
	c := &Group[S]{bs: make([]Branching[S], 0, len(g.bs)-g.cur)}
	for _, b := range g.bs[g.cur:] {
		c.bs = append(c.bs, b.Copy())
	}
	return c
}

// Dispose disposes all branchings and returns the total size released.
func (g *Group[S]) Dispose(home S) uintptr {
	var size uintptr
	for _, b := range g.bs {
		size += b.Dispose(home)
	}
	g.bs, g.cur = nil, 0
	return size
}
