package branch_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/operator-framework/brancher/pkg/branch"
	"github.com/operator-framework/brancher/pkg/branch/valsel"
	"github.com/operator-framework/brancher/pkg/fd"
)

var _ = Describe("Group", func() {
	var (
		home *fd.Space
		x, y []fd.IntView
		g    *branch.Group[*fd.Space]
		bx   branch.Branching[*fd.Space]
		by   branch.Branching[*fd.Space]
	)

	BeforeEach(func() {
		home = fd.New()
		x = home.IntVars(2, 0, 1)
		y = home.IntVars(2, 0, 1)
		bx = branch.NewViewValBranching[*fd.Space, fd.IntView, int](x, newScripted(nil), valsel.Min[*fd.Space, fd.IntView]())
		by = branch.NewViewValBranching[*fd.Space, fd.IntView, int](y, newScripted(nil), valsel.Max[*fd.Space, fd.IntView]())
		g = branch.NewGroup[*fd.Space]()
		g.Add(bx)
		g.Add(by)
	})

	It("should take decisions from branchings in order", func() {
		Expect(g.Status(home)).To(BeTrue())
		Expect(g.Description(home).ID()).To(Equal(bx.ID()))

		x[0].Eq(home, 0)
		x[1].Eq(home, 1)
		Expect(g.Status(home)).To(BeTrue())
		Expect(g.Len()).To(Equal(1))
		d := g.Description(home)
		Expect(d.ID()).To(Equal(by.ID()))
		Expect(g.Commit(home, d, 0)).To(Equal(branch.ExecOK))
		Expect(y[0].Val(home)).To(Equal(1))
	})

	It("should be exhausted once every branching is", func() {
		for _, each := range append(x, y...) {
			each.Eq(home, 0)
		}
		Expect(g.Status(home)).To(BeFalse())
		Expect(g.Len()).To(Equal(0))
		Expect(func() { g.Description(home) }).To(Panic())
	})

	It("should not copy exhausted branchings", func() {
		x[0].Eq(home, 0)
		x[1].Eq(home, 0)
		Expect(g.Status(home)).To(BeTrue())
		c := g.Copy()
		Expect(c.Len()).To(Equal(1))
		Expect(c.Description(home).ID()).To(Equal(by.ID()))
	})

	It("should panic on a descriptor of an unknown branching", func() {
		other := branch.NewViewValBranching[*fd.Space, fd.IntView, int](x, newScripted(nil), valsel.Min[*fd.Space, fd.IntView]())
		Expect(other.Status(home)).To(BeTrue())
		d := other.Description(home)
		Expect(func() { g.Commit(home, d, 0) }).To(Panic())
	})

	It("should dispose every branching", func() {
		Expect(g.Dispose(home)).To(BeNumerically(">", 0))
		Expect(g.Len()).To(Equal(0))
	})
})
