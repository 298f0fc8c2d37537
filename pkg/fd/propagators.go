package fd

import (
	"fmt"

	"github.com/operator-framework/brancher/pkg/branch"
)

// RelOp is a relation between two integer terms.
type RelOp int

const (
	EQ RelOp = iota
	NQ
	LT
	LE
	GT
	GE
)

func (op RelOp) String() string {
	switch op {
	case EQ:
		return "=="
	case NQ:
		return "!="
	case LT:
		return "<"
	case LE:
		return "<="
	case GT:
		return ">"
	case GE:
		return ">="
	}
	return fmt.Sprintf("RelOp(%d)", int(op))
}

// ParseRelOp parses the textual form of a relation, either symbolic
// ("<=") or mnemonic ("le").
func ParseRelOp(s string) (RelOp, error) {
	switch s {
	case "==", "=", "eq":
		return EQ, nil
	case "!=", "nq", "ne":
		return NQ, nil
	case "<", "lt":
		return LT, nil
	case "<=", "le":
		return LE, nil
	case ">", "gt":
		return GT, nil
	case ">=", "ge":
		return GE, nil
	}
	return 0, fmt.Errorf("unknown relation %q", s)
}

func status(mes ...branch.ModEvent) branch.ExecStatus {
	for _, me := range mes {
		if me.Failed() {
			return branch.ExecFailed
		}
	}
	return branch.ExecOK
}

type relConst struct {
	x  IntView
	op RelOp
	c  int
}

// RelConst returns a propagator for x op c.
func RelConst(x IntView, op RelOp, c int) Propagator {
	return &relConst{x: x, op: op, c: c}
}

func (p *relConst) Vars() []IntView {
	return []IntView{p.x}
}

func (p *relConst) Propagate(home *Space) branch.ExecStatus {
	switch p.op {
	case EQ:
		return status(p.x.Eq(home, p.c))
	case NQ:
		return status(p.x.Nq(home, p.c))
	case LT:
		return status(p.x.Lq(home, p.c-1))
	case LE:
		return status(p.x.Lq(home, p.c))
	case GT:
		return status(p.x.Gq(home, p.c+1))
	case GE:
		return status(p.x.Gq(home, p.c))
	}
	panic(fmt.Sprintf("fd: unknown relation %d", p.op))
}

type rel struct {
	x, y IntView
	op   RelOp
}

// Rel returns a propagator for x op y.
func Rel(x IntView, op RelOp, y IntView) Propagator {
	switch op {
	case GT:
		return &rel{x: y, op: LT, y: x}
	case GE:
		return &rel{x: y, op: LE, y: x}
	}
	return &rel{x: x, op: op, y: y}
}

func (p *rel) Vars() []IntView {
	return []IntView{p.x, p.y}
}

func (p *rel) Propagate(home *Space) branch.ExecStatus {
	x, y := p.x, p.y
	switch p.op {
	case EQ:
		if st := status(x.Gq(home, y.Min(home)), x.Lq(home, y.Max(home)),
			y.Gq(home, x.Min(home)), y.Lq(home, x.Max(home))); st == branch.ExecFailed {
			return st
		}
		for _, v := range x.Values(home) {
			if !y.In(home, v) && x.Nq(home, v).Failed() {
				return branch.ExecFailed
			}
		}
		for _, v := range y.Values(home) {
			if !x.In(home, v) && y.Nq(home, v).Failed() {
				return branch.ExecFailed
			}
		}
	case NQ:
		if x.Assigned(home) && y.Nq(home, x.Val(home)).Failed() {
			return branch.ExecFailed
		}
		if y.Assigned(home) && x.Nq(home, y.Val(home)).Failed() {
			return branch.ExecFailed
		}
	case LT:
		return status(x.Lq(home, y.Max(home)-1), y.Gq(home, x.Min(home)+1))
	case LE:
		return status(x.Lq(home, y.Max(home)), y.Gq(home, x.Min(home)))
	default:
		panic(fmt.Sprintf("fd: unknown relation %d", p.op))
	}
	return branch.ExecOK
}

type distinct struct {
	x []IntView
}

// Distinct returns a propagator that forces all views of x to take
// pairwise different values.
func Distinct(x []IntView) Propagator {
	return &distinct{x: append([]IntView(nil), x...)}
}

func (p *distinct) Vars() []IntView {
	return p.x
}

func (p *distinct) Propagate(home *Space) branch.ExecStatus {
	done := make([]bool, len(p.x))
	for changed := true; changed; {
		changed = false
		for i, x := range p.x {
			if done[i] || !x.Assigned(home) {
				continue
			}
			done[i] = true
			changed = true
			v := x.Val(home)
			for j, y := range p.x {
				if j != i && y.Nq(home, v).Failed() {
					return branch.ExecFailed
				}
			}
		}
	}

	// pigeonhole: the unassigned views need enough values between them
	values := make(map[int]struct{})
	n := 0
	for i, x := range p.x {
		if done[i] {
			continue
		}
		n++
		for _, v := range x.Values(home) {
			values[v] = struct{}{}
		}
	}
	if len(values) < n {
		return branch.ExecFailed
	}
	return branch.ExecOK
}

type linear struct {
	a  []int
	x  []IntView
	op RelOp
	c  int
}

// Linear returns a propagator for sum(a[i]*x[i]) op c with op one of EQ,
// NQ, LE or GE. Disequalities only prune once at most one view is
// unassigned.
func Linear(a []int, x []IntView, op RelOp, c int) (Propagator, error) {
	if len(a) != len(x) {
		return nil, fmt.Errorf("linear: %d coefficients for %d views", len(a), len(x))
	}
	switch op {
	case EQ, NQ, LE:
		return &linear{a: append([]int(nil), a...), x: append([]IntView(nil), x...), op: op, c: c}, nil
	case GE:
		neg := make([]int, len(a))
		for i := range a {
			neg[i] = -a[i]
		}
		return &linear{a: neg, x: append([]IntView(nil), x...), op: LE, c: -c}, nil
	}
	return nil, fmt.Errorf("linear: unsupported relation %s", op)
}

func (p *linear) Vars() []IntView {
	return p.x
}

func (p *linear) Propagate(home *Space) branch.ExecStatus {
	if p.op == NQ {
		return p.nq(home)
	}
	if st := p.le(home, p.a, p.c); st == branch.ExecFailed || p.op != EQ {
		return st
	}
	neg := make([]int, len(p.a))
	for i := range p.a {
		neg[i] = -p.a[i]
	}
	return p.le(home, neg, -p.c)
}

func (p *linear) nq(home *Space) branch.ExecStatus {
	rest, open := p.c, -1
	for i, x := range p.x {
		switch {
		case p.a[i] == 0:
		case x.Assigned(home):
			rest -= p.a[i] * x.Val(home)
		case open >= 0:
			return branch.ExecOK
		default:
			open = i
		}
	}
	if open < 0 {
		if rest == 0 {
			return branch.ExecFailed
		}
		return branch.ExecOK
	}
	if rest%p.a[open] != 0 {
		return branch.ExecOK
	}
	return status(p.x[open].Nq(home, rest/p.a[open]))
}

// le prunes bounds for sum(a[i]*x[i]) <= c.
func (p *linear) le(home *Space, a []int, c int) branch.ExecStatus {
	low := 0
	for i, x := range p.x {
		low += lowest(home, a[i], x)
	}
	if low > c {
		return branch.ExecFailed
	}
	for i, x := range p.x {
		if a[i] == 0 {
			continue
		}
		rest := c - (low - lowest(home, a[i], x))
		var me branch.ModEvent
		if a[i] > 0 {
			me = x.Lq(home, floorDiv(rest, a[i]))
		} else {
			me = x.Gq(home, ceilDiv(rest, a[i]))
		}
		if me.Failed() {
			return branch.ExecFailed
		}
	}
	return branch.ExecOK
}

func lowest(home *Space, a int, x IntView) int {
	if a >= 0 {
		return a * x.Min(home)
	}
	return a * x.Max(home)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func ceilDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) == (b < 0)) {
		q++
	}
	return q
}
