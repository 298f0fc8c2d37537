package branch_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/operator-framework/brancher/pkg/branch"
	"github.com/operator-framework/brancher/pkg/fd"
)

var _ = Describe("ViewBranching", func() {
	var (
		home *fd.Space
		x    []fd.IntView
	)

	BeforeEach(func() {
		home = fd.New()
		x = home.IntVars(4, 0, 3)
	})

	Describe("Status", func() {
		It("should be true while some view is unassigned", func() {
			b := branch.NewViewBranching[*fd.Space, fd.IntView](x, newScripted(nil))
			Expect(b.Status(home)).To(BeTrue())
			Expect(b.Status(home)).To(BeTrue())
		})

		It("should be false once every view is assigned", func() {
			b := branch.NewViewBranching[*fd.Space, fd.IntView](x, newScripted(nil))
			for i, each := range x {
				Expect(each.Eq(home, i).Failed()).To(BeFalse())
			}
			Expect(b.Status(home)).To(BeFalse())
			Expect(b.Status(home)).To(BeFalse())
		})

		It("should move the cursor past assigned views", func() {
			b := branch.NewViewBranching[*fd.Space, fd.IntView](x, newScripted(nil))
			x[0].Eq(home, 0)
			x[1].Eq(home, 1)
			p, ok := b.Next(home)
			Expect(ok).To(BeTrue())
			Expect(p).To(Equal(2))
			Expect(b.Pos(home).Index()).To(Equal(2))
		})

		It("should not skip views at or after the cursor", func() {
			b := branch.NewViewBranching[*fd.Space, fd.IntView](x, newScripted(nil))
			x[0].Eq(home, 0)
			Expect(b.Status(home)).To(BeTrue())
			p, ok := b.Next(home)
			Expect(ok).To(BeTrue())
			Expect(p).To(Equal(1))
		})
	})

	Describe("Pos", func() {
		It("should keep the first view on ties", func() {
			b := branch.NewViewBranching[*fd.Space, fd.IntView](x, newScripted(nil))
			Expect(b.Status(home)).To(BeTrue())
			Expect(b.Pos(home).Index()).To(Equal(0))
		})

		It("should replace the running best on BETTER", func() {
			sel := newScripted(map[int]branch.ViewSelStatus{
				1: branch.ViewSelBetter,
				2: branch.ViewSelWorse,
				3: branch.ViewSelTie,
			})
			b := branch.NewViewBranching[*fd.Space, fd.IntView](x, sel)
			Expect(b.Status(home)).To(BeTrue())
			Expect(b.Pos(home).Index()).To(Equal(1))
			Expect(sel.seen).To(Equal([]int{0, 1, 2, 3}))
		})

		It("should stop scanning on BEST", func() {
			sel := newScripted(map[int]branch.ViewSelStatus{
				1: branch.ViewSelBest,
				2: branch.ViewSelBetter,
			})
			b := branch.NewViewBranching[*fd.Space, fd.IntView](x, sel)
			Expect(b.Status(home)).To(BeTrue())
			Expect(b.Pos(home).Index()).To(Equal(1))
			Expect(sel.seen).To(Equal([]int{0, 1}))
		})

		It("should not scan at all if the first view is BEST", func() {
			sel := newScripted(map[int]branch.ViewSelStatus{
				0: branch.ViewSelBest,
				3: branch.ViewSelBetter,
			})
			b := branch.NewViewBranching[*fd.Space, fd.IntView](x, sel)
			Expect(b.Status(home)).To(BeTrue())
			Expect(b.Pos(home).Index()).To(Equal(0))
			Expect(sel.seen).To(Equal([]int{0}))
		})

		It("should never select an assigned view", func() {
			sel := newScripted(map[int]branch.ViewSelStatus{
				2: branch.ViewSelBetter,
			})
			b := branch.NewViewBranching[*fd.Space, fd.IntView](x, sel)
			x[2].Eq(home, 1)
			Expect(b.Status(home)).To(BeTrue())
			p := b.Pos(home)
			Expect(x[p.Index()].Assigned(home)).To(BeFalse())
			Expect(sel.seen).To(Equal([]int{0, 1, 3}))
		})

		It("should panic without an unassigned view at the cursor", func() {
			b := branch.NewViewBranching[*fd.Space, fd.IntView](x, newScripted(nil))
			for i, each := range x {
				each.Eq(home, i)
			}
			Expect(b.Status(home)).To(BeFalse())
			Expect(func() { b.Pos(home) }).To(Panic())
		})

		It("should panic on an invalid selection status", func() {
			sel := newScripted(map[int]branch.ViewSelStatus{
				1: branch.ViewSelStatus(42),
			})
			b := branch.NewViewBranching[*fd.Space, fd.IntView](x, sel)
			Expect(b.Status(home)).To(BeTrue())
			Expect(func() { b.Pos(home) }).To(Panic())
		})
	})

	Describe("Copy", func() {
		It("should keep the cursor and copy the selector", func() {
			sel := newScripted(nil)
			b := branch.NewViewBranching[*fd.Space, fd.IntView](x, sel)
			x[0].Eq(home, 0)
			Expect(b.Status(home)).To(BeTrue())

			c := b.Copy()
			Expect(c.ID()).To(Equal(b.ID()))
			Expect(c.Len()).To(Equal(b.Len()))
			p, ok := c.Next(home)
			Expect(ok).To(BeTrue())
			Expect(p).To(Equal(1))

			b.Dispose(home)
			Expect(*sel.disposed).To(Equal(1))
			Expect(c.Pos(home).Index()).To(Equal(1))
		})
	})

	It("should report its size on disposal", func() {
		b := branch.NewViewBranching[*fd.Space, fd.IntView](x, newScripted(nil))
		Expect(b.Dispose(home)).To(BeNumerically(">", 0))
	})
})
