// Package fd implements a finite-domain integer search state.
package fd

import (
	"fmt"
	"unsafe"

	"github.com/operator-framework/brancher/pkg/branch"
)

// Propagator prunes the domains of the views it subscribes to.
type Propagator interface {
	// Vars returns the views whose modification schedules the
	// propagator.
	Vars() []IntView
	// Propagate prunes domains of home. It returns ExecFailed if some
	// domain became empty.
	Propagate(home *Space) branch.ExecStatus
}

// Space is a search state over integer variables: domains, propagators
// and branchings.
type Space struct {
	doms   []domain
	props  []Propagator
	subs   [][]int
	queue  []int
	queued []bool
	failed bool

	branchings *branch.Group[*Space]
}

func New() *Space {
	return &Space{branchings: branch.NewGroup[*Space]()}
}

// MaxDomainSize is the largest number of values a domain may hold.
const MaxDomainSize = 1 << 24

// CheckDomain returns an error if [min, max] is empty or holds more than
// MaxDomainSize values.
func CheckDomain(min, max int) error {
	if min > max {
		return fmt.Errorf("empty domain [%d, %d]", min, max)
	}
	// the difference is exact in uint64 even when max-min overflows int
	if uint64(max)-uint64(min) >= MaxDomainSize {
		return fmt.Errorf("domain [%d, %d] holds more than %d values", min, max, MaxDomainSize)
	}
	return nil
}

// IntVar creates a variable with domain [min, max]. It panics if the
// domain is rejected by CheckDomain.
func (s *Space) IntVar(min, max int) IntView {
	if err := CheckDomain(min, max); err != nil {
		panic("fd: " + err.Error())
	}
	s.doms = append(s.doms, newDomain(min, max))
	s.subs = append(s.subs, nil)
	return IntView{i: len(s.doms) - 1}
}

// IntVars creates n variables with domain [min, max].
func (s *Space) IntVars(n, min, max int) []IntView {
	x := make([]IntView, n)
	for i := range x {
		x[i] = s.IntVar(min, max)
	}
	return x
}

// Post adds p to the space and schedules it.
func (s *Space) Post(p Propagator) {
	s.props = append(s.props, p)
	s.queued = append(s.queued, false)
	idx := len(s.props) - 1
	for _, x := range p.Vars() {
		s.subs[x.i] = append(s.subs[x.i], idx)
	}
	s.enqueue(idx)
}

// Branch adds a branching over x.
func (s *Space) Branch(x []IntView, vs branch.ViewSelector[*Space, IntView], va branch.ValueSelector[*Space, IntView, int]) {
	s.branchings.Add(branch.NewViewValBranching[*Space, IntView, int](x, vs, va))
}

// AddBranching adds a branching with an arbitrary value type.
func (s *Space) AddBranching(b branch.Branching[*Space]) {
	s.branchings.Add(b)
}

func (s *Space) enqueue(p int) {
	if s.queued[p] {
		return
	}
	s.queued[p] = true
	s.queue = append(s.queue, p)
}

func (s *Space) modified(i int, me branch.ModEvent) branch.ModEvent {
	switch {
	case me.Failed():
		s.failed = true
	case me != branch.ModEventNone:
		for _, p := range s.subs[i] {
			s.enqueue(p)
		}
	}
	return me
}

func (s *Space) propagate() bool {
	for len(s.queue) > 0 && !s.failed {
		p := s.queue[0]
		s.queue = s.queue[1:]
		s.queued[p] = false
		if s.props[p].Propagate(s) == branch.ExecFailed {
			s.failed = true
		}
	}
	if s.failed {
		for _, p := range s.queue {
			s.queued[p] = false
		}
		s.queue = s.queue[:0]
	}
	return !s.failed
}

// Failed returns true if some domain became empty.
func (s *Space) Failed() bool {
	return s.failed
}

// Status runs propagation to a fixpoint and reports whether the space
// failed, is solved or needs branching.
func (s *Space) Status() branch.SpaceStatus {
	if !s.propagate() {
		return branch.SpaceFailed
	}
	if s.branchings.Status(s) {
		return branch.SpaceBranch
	}
	return branch.SpaceSolved
}

// Description returns the next decision. Status must have returned
// SpaceBranch.
func (s *Space) Description() branch.Descriptor {
	return s.branchings.Description(s)
}

// Commit applies alternative alt of d.
func (s *Space) Commit(d branch.Descriptor, alt int) {
	if s.branchings.Commit(s, d, alt) == branch.ExecFailed {
		s.failed = true
	}
}

// Clone returns an independent copy of the space.
func (s *Space) Clone() *Space {
	c := &Space{
		doms:       make([]domain, len(s.doms)),
		props:      s.props[:len(s.props):len(s.props)],
		subs:       make([][]int, len(s.subs)),
		queue:      append([]int(nil), s.queue...),
		queued:     append([]bool(nil), s.queued...),
		failed:     s.failed,
		branchings: s.branchings.Copy(),
	}
	for i := range s.doms {
		c.doms[i] = s.doms[i].clone()
	}
	for i, sub := range s.subs {
		c.subs[i] = sub[:len(sub):len(sub)]
	}
	return c
}

// Dispose releases the branchings of the space and returns the memory
// released.
func (s *Space) Dispose() uintptr {
	size := s.branchings.Dispose(s)
	for i := range s.doms {
		size += unsafe.Sizeof(s.doms[i]) + uintptr(len(s.doms[i].bits))*8
	}
	s.doms = nil
	return size + unsafe.Sizeof(*s)
}

// Vals returns the values of the assigned views x.
func (s *Space) Vals(x []IntView) []int {
	vs := make([]int, len(x))
	for i := range x {
		vs[i] = x[i].Val(s)
	}
	return vs
}
