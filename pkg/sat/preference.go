package sat

import (
	"math"

	"github.com/go-air/gini/z"

	"github.com/operator-framework/brancher/pkg/branch"
)

// unranked is the rank of a variable no selected variable asks for.
const unranked = math.MaxInt

// rank orders the variables the way a dependency resolver guesses them:
// anchors come first with rank 0, then the candidates of every open
// choice by their position in it, starting at 1. A choice is open while
// its owner is selected and none of its candidates is.
func (s *Space) rank(x BoolView) int {
	if s.lits.anchors[x.m] {
		return 0
	}
	r := unranked
	for _, c := range s.lits.choices[x.m] {
		if c.index+1 >= r || s.value(c.owner) != 1 || s.satisfied(c.candidates) {
			continue
		}
		r = c.index + 1
	}
	return r
}

func (s *Space) satisfied(ms []z.Lit) bool {
	for _, m := range ms {
		if s.value(m) == 1 {
			return true
		}
	}
	return false
}

// Preferences returns the rank of every ranked variable.
func (s *Space) Preferences() map[Identifier]int {
	ranks := make(map[Identifier]int)
	for _, v := range s.lits.inorder {
		if r := s.rank(BoolView{m: s.lits.lits[v.Identifier()]}); r != unranked {
			ranks[v.Identifier()] = r
		}
	}
	return ranks
}

var _ branch.ViewSelector[*Space, BoolView] = &anchored{}

// anchored selects the unassigned view of lowest rank. Anchors cannot be
// beaten, and the first view wins among views of equal rank.
type anchored struct {
	cur int
}

// Anchored returns a view selector that branches on anchored variables
// first and then on the preferred candidates of the selected variables,
// in the order their constraints list them.
func Anchored() branch.ViewSelector[*Space, BoolView] {
	return &anchored{}
}

func (s *anchored) Init(home *Space, x BoolView) branch.ViewSelStatus {
	s.cur = home.rank(x)
	if s.cur == 0 {
		return branch.ViewSelBest
	}
	return branch.ViewSelBetter
}

func (s *anchored) Select(home *Space, x BoolView) branch.ViewSelStatus {
	r := home.rank(x)
	switch {
	case r == s.cur:
		return branch.ViewSelTie
	case r > s.cur:
		return branch.ViewSelWorse
	}
	s.cur = r
	if r == 0 {
		return branch.ViewSelBest
	}
	return branch.ViewSelBetter
}

func (*anchored) Snapshot(_ *Space) branch.Snapshot {
	return branch.EmptySnapshot{}
}

func (*anchored) Commit(_ *Space, _ branch.Snapshot, _ int) {}

func (s *anchored) Copy() branch.ViewSelector[*Space, BoolView] {
	c := *s
	return &c
}

func (*anchored) Dispose(_ *Space) {}

var _ branch.ValueSelector[*Space, BoolView, int] = &preferred{}

// preferred selects ranked variables first and leaves the others out
// first.
type preferred struct{}

// Preferred returns a binary value selector that tries true first for
// anchors and candidates of open choices, and false first for every
// other variable.
func Preferred() branch.ValueSelector[*Space, BoolView, int] {
	return preferred{}
}

func (preferred) Alternatives() int {
	return 2
}

func (preferred) Val(home *Space, x BoolView) int {
	if home.rank(x) != unranked {
		return 1
	}
	return 0
}

func (preferred) Snapshot(_ *Space) branch.Snapshot {
	return branch.EmptySnapshot{}
}

func (preferred) Commit(_ *Space, _ branch.Snapshot, _ int) {}

func (preferred) Tell(home *Space, alt int, x BoolView, n int) branch.ModEvent {
	if alt == 0 {
		return x.Eq(home, n)
	}
	return x.Nq(home, n)
}

func (p preferred) Copy() branch.ValueSelector[*Space, BoolView, int] {
	return p
}

func (preferred) Dispose(_ *Space) {}
