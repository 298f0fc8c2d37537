package sat

import (
	"unsafe"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"

	"github.com/operator-framework/brancher/pkg/branch"
)

const (
	satisfiable   = 1
	unsatisfiable = -1
	unknown       = 0
)

// Space is a search state over boolean variables. Every decision is a
// gini assumption tested under unit propagation in its own scope; clones
// copy the solver together with its open scopes.
type Space struct {
	g      *gini.Gini
	lits   *litMapping
	vals   []int8
	failed bool
	solved bool
	why    []AppliedConstraint
	buffer []z.Lit

	branchings *branch.Group[*Space]
}

// NewSpace translates variables into a SAT formula and propagates the
// constraints attached to them. If propagation alone refutes the input,
// the returned error is a NotSatisfiable listing the conflicting
// constraints.
func NewSpace(variables []Variable) (*Space, error) {
	lits, err := newLitMapping(variables)
	if err != nil {
		return nil, err
	}
	// This likely indicates a bug in a constraint implementation
	// or input referencing unknown variables.
	if err := lits.Error(); err != nil {
		return nil, err
	}

	g := gini.New()
	// teach all constraints to the solver
	lits.AddConstraints(g)
	s := &Space{
		g:          g,
		lits:       lits,
		vals:       make([]int8, g.MaxVar()+1),
		branchings: branch.NewGroup[*Space](),
	}

	// assume that all constraints hold
	lits.AssumeConstraints(g)
	if !s.test() {
		return nil, NotSatisfiable(s.why)
	}
	return s, nil
}

// test opens a new test scope for the pending assumptions ms and records
// every literal fixed by unit propagation.
func (s *Space) test(ms ...z.Lit) bool {
	s.g.Assume(ms...)
	var result int
	result, s.buffer = s.g.Test(s.buffer[:0])
	if result == unsatisfiable {
		s.failed = true
		s.why = s.lits.Conflicts(s.g)
		return false
	}
	for _, m := range s.buffer {
		s.fix(m)
	}
	for _, m := range ms {
		s.fix(m)
	}
	return true
}

func (s *Space) fix(m z.Lit) {
	v := int(m.Var())
	if v >= len(s.vals) {
		s.vals = append(s.vals, make([]int8, v+1-len(s.vals))...)
	}
	if m.IsPos() {
		s.vals[v] = 1
	} else {
		s.vals[v] = -1
	}
}

// value returns 1 if m is fixed true, -1 if fixed false and 0 otherwise.
func (s *Space) value(m z.Lit) int8 {
	v := int(m.Var())
	if v >= len(s.vals) {
		return 0
	}
	if m.IsPos() {
		return s.vals[v]
	}
	return -s.vals[v]
}

// assume makes m true, reporting how the corresponding view changed.
func (s *Space) assume(m z.Lit) branch.ModEvent {
	if s.failed {
		return branch.ModEventFailed
	}
	switch s.value(m) {
	case 1:
		return branch.ModEventNone
	case -1:
		s.failed = true
		return branch.ModEventFailed
	}
	if !s.test(m) {
		return branch.ModEventFailed
	}
	return branch.ModEventVal
}

// Views returns a view for every input Variable, in input order.
func (s *Space) Views() []BoolView {
	x := make([]BoolView, len(s.lits.inorder))
	for i, v := range s.lits.inorder {
		x[i] = BoolView{m: s.lits.lits[v.Identifier()]}
	}
	return x
}

// ViewOf returns the view of the Variable identified by id.
func (s *Space) ViewOf(id Identifier) (BoolView, bool) {
	m, ok := s.lits.lits[id]
	return BoolView{m: m}, ok
}

// VariableOf returns the Variable x refers to.
func (s *Space) VariableOf(x BoolView) Variable {
	return s.lits.VariableOf(x.m)
}

// Branch adds a branching over x.
func (s *Space) Branch(x []BoolView, vs branch.ViewSelector[*Space, BoolView], va branch.ValueSelector[*Space, BoolView, int]) {
	s.branchings.Add(branch.NewViewValBranching[*Space, BoolView, int](x, vs, va))
}

// AddBranching adds a branching with an arbitrary value type.
func (s *Space) AddBranching(b branch.Branching[*Space]) {
	s.branchings.Add(b)
}

// Failed returns true if the space is inconsistent.
func (s *Space) Failed() bool {
	return s.failed
}

// Status reports whether the space failed, is solved or needs branching.
// Once no branching has decisions left, the remaining variables are
// completed by the SAT solver.
func (s *Space) Status() branch.SpaceStatus {
	switch {
	case s.failed:
		return branch.SpaceFailed
	case s.solved:
		return branch.SpaceSolved
	case s.branchings.Status(s):
		return branch.SpaceBranch
	}
	if s.g.Solve() != satisfiable {
		s.failed = true
		s.why = s.lits.Conflicts(s.g)
		return branch.SpaceFailed
	}
	s.solved = true
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
	return &Space{
		g:          s.g.Copy(),
		lits:       s.lits,
		vals:       append([]int8(nil), s.vals...),
		failed:     s.failed,
		solved:     s.solved,
		why:        s.why,
		branchings: s.branchings.Copy(),
	}
}

// Dispose releases the branchings of the space and returns the memory
// released.
func (s *Space) Dispose() uintptr {
	size := s.branchings.Dispose(s) + uintptr(len(s.vals)) + unsafe.Sizeof(*s)
	s.vals = nil
	return size
}

// Conflicts returns the constraints involved in the failure of the space,
// if the solver could attribute it to input constraints.
func (s *Space) Conflicts() []AppliedConstraint {
	return s.why
}

// Selection returns the Variables that are true in a solved space, in
// input order.
func (s *Space) Selection() []Variable {
	var selected []Variable
	for _, v := range s.lits.inorder {
		m := s.lits.lits[v.Identifier()]
		if s.solved && s.g.Value(m) || !s.solved && s.value(m) == 1 {
			selected = append(selected, v)
		}
	}
	return selected
}
