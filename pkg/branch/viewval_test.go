package branch_test

import (
	"unsafe"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/operator-framework/brancher/pkg/branch"
	"github.com/operator-framework/brancher/pkg/branch/valsel"
	"github.com/operator-framework/brancher/pkg/branch/viewsel"
	"github.com/operator-framework/brancher/pkg/fd"
)

var _ = Describe("ViewValBranching", func() {
	var (
		home *fd.Space
		x    []fd.IntView
	)

	BeforeEach(func() {
		home = fd.New()
		x = home.IntVars(3, 1, 5)
	})

	It("should branch on the first view on ties and replay both alternatives", func() {
		b := branch.NewViewValBranching[*fd.Space, fd.IntView, int](x, newScripted(nil), valsel.Min[*fd.Space, fd.IntView]())
		home.AddBranching(b)

		Expect(b.Status(home)).To(BeTrue())
		p, ok := b.Next(home)
		Expect(ok).To(BeTrue())
		Expect(p).To(Equal(0))
		Expect(b.Pos(home).Index()).To(Equal(0))

		d := b.Description(home)
		Expect(d.Alternatives()).To(Equal(2))
		Expect(d.ID()).To(Equal(b.ID()))

		left := home.Clone()
		left.Commit(d, 0)
		Expect(left.Status()).To(Equal(branch.SpaceBranch))
		Expect(x[0].Assigned(left)).To(BeTrue())
		Expect(x[0].Val(left)).To(Equal(1))

		right := home.Clone()
		right.Commit(d, 1)
		Expect(right.Status()).To(Equal(branch.SpaceBranch))
		Expect(x[0].Assigned(right)).To(BeFalse())
		Expect(x[0].In(right, 1)).To(BeFalse())
		Expect(x[0].Min(right)).To(Equal(2))

		// the original is untouched
		Expect(x[0].Size(home)).To(Equal(5))
	})

	It("should describe without changing the state", func() {
		b := branch.NewViewValBranching[*fd.Space, fd.IntView, int](x, viewsel.SizeMin[*fd.Space, fd.IntView](), valsel.Max[*fd.Space, fd.IntView]())
		x[2].Lq(home, 3)
		Expect(b.Status(home)).To(BeTrue())
		d1 := b.Description(home).(*branch.PosValDesc[int])
		d2 := b.Description(home).(*branch.PosValDesc[int])
		Expect(d1.Pos()).To(Equal(d2.Pos()))
		Expect(d1.Val()).To(Equal(d2.Val()))
		Expect(d1.Pos().Index()).To(Equal(2))
		Expect(d1.Val()).To(Equal(3))
		Expect(x[2].Size(home)).To(Equal(3))
	})

	It("should reapply the same tightening on every clone", func() {
		b := branch.NewViewValBranching[*fd.Space, fd.IntView, int](x, viewsel.SizeMin[*fd.Space, fd.IntView](), valsel.Med[*fd.Space, fd.IntView]())
		home.AddBranching(b)
		Expect(home.Status()).To(Equal(branch.SpaceBranch))
		d := home.Description()

		var vals []int
		for i := 0; i < 3; i++ {
			c := home.Clone()
			c.Commit(d, 0)
			Expect(c.Failed()).To(BeFalse())
			vals = append(vals, x[0].Val(c))
		}
		Expect(vals).To(Equal([]int{3, 3, 3}))
	})

	It("should fail a commit that empties a domain", func() {
		b := branch.NewViewValBranching[*fd.Space, fd.IntView, int](x, newScripted(nil), valsel.Min[*fd.Space, fd.IntView]())
		Expect(b.Status(home)).To(BeTrue())
		d := b.Description(home)

		c := home.Clone()
		x[0].Nq(c, 1)
		Expect(b.Copy().Commit(c, d, 0)).To(Equal(branch.ExecFailed))

		c = home.Clone()
		Expect(b.Copy().Commit(c, d, 0)).To(Equal(branch.ExecOK))
	})

	It("should commit the snapshots of both selectors", func() {
		sel := newScripted(nil)
		val := &minEq{}
		b := branch.NewViewValBranching[*fd.Space, fd.IntView, int](x, sel, val)
		Expect(b.Status(home)).To(BeTrue())
		d1 := b.Description(home)
		d2 := b.Description(home)

		Expect(b.Commit(home.Clone(), d2, 1)).To(Equal(branch.ExecOK))
		Expect(b.Commit(home.Clone(), d1, 0)).To(Equal(branch.ExecOK))
		Expect(sel.commits).To(Equal(2))
		Expect(val.committed).To(Equal([]int{2, 1}))
	})

	It("should keep copies independent of a disposed original", func() {
		b := branch.NewViewValBranching[*fd.Space, fd.IntView, int](x, viewsel.Rnd[*fd.Space, fd.IntView](7), valsel.Min[*fd.Space, fd.IntView]())
		Expect(b.Status(home)).To(BeTrue())
		c := b.Copy()
		want := b.Description(home).(*branch.PosValDesc[int])

		b.Dispose(home)
		got := c.Description(home).(*branch.PosValDesc[int])
		Expect(got.Pos()).To(Equal(want.Pos()))
		Expect(got.Val()).To(Equal(want.Val()))

		s := home.Clone()
		Expect(c.Commit(s, got, 0)).To(Equal(branch.ExecOK))
		Expect(x[got.Pos().Index()].Val(s)).To(Equal(1))
	})

	It("should panic on a foreign descriptor", func() {
		b := branch.NewViewValBranching[*fd.Space, fd.IntView, int](x, newScripted(nil), valsel.Min[*fd.Space, fd.IntView]())
		other := branch.NewViewValBranching[*fd.Space, fd.IntView, int](x, newScripted(nil), valsel.Min[*fd.Space, fd.IntView]())
		Expect(other.Status(home)).To(BeTrue())
		d := other.Description(home)
		Expect(func() { b.Commit(home, d, 0) }).To(Panic())
		Expect(func() { b.Commit(home, branch.NewPosDesc(b.ID(), 2, branch.NewPos(0), nil), 0) }).To(Panic())
	})

	It("should panic on an alternative out of range", func() {
		b := branch.NewViewValBranching[*fd.Space, fd.IntView, int](x, newScripted(nil), valsel.Min[*fd.Space, fd.IntView]())
		Expect(b.Status(home)).To(BeTrue())
		d := b.Description(home)
		Expect(func() { b.Commit(home, d, 2) }).To(Panic())
		Expect(func() { b.Commit(home, d, -1) }).To(Panic())
	})

	It("should support more than two alternatives", func() {
		b := branch.NewViewValBranching[*fd.Space, fd.IntView, valsel.Bounds](x, viewsel.None[*fd.Space, fd.IntView](), valsel.Interval[*fd.Space, fd.IntView](3))
		Expect(b.Status(home)).To(BeTrue())
		d := b.Description(home)
		Expect(d.Alternatives()).To(Equal(3))

		var got [][]int
		for alt := 0; alt < 3; alt++ {
			s := home.Clone()
			Expect(b.Commit(s, d, alt)).To(Equal(branch.ExecOK))
			got = append(got, x[0].Values(s))
		}
		Expect(got).To(Equal([][]int{{1}, {2, 3}, {4, 5}}))
	})
})

var _ = Describe("Descriptors", func() {
	It("should account for the snapshots they hold", func() {
		d := branch.NewPosDesc(1, 2, branch.NewPos(3), nil)
		Expect(d.Size()).To(Equal(unsafe.Sizeof(*d)))
		Expect(d.Pos().Index()).To(Equal(3))
		Expect(d.ViewSnapshot()).To(Equal(branch.EmptySnapshot{}))

		pvd := branch.NewPosValDesc[int](1, 2, branch.NewPos(3), counter{}, counter{}, 9)
		Expect(pvd.Size()).To(Equal(unsafe.Sizeof(*pvd) + 16))
		Expect(pvd.Val()).To(Equal(9))
		Expect(pvd.Alternatives()).To(Equal(2))
	})
})
