package valsel_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/operator-framework/brancher/pkg/branch"
	"github.com/operator-framework/brancher/pkg/branch/valsel"
	"github.com/operator-framework/brancher/pkg/fd"
)

func TestValSel(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Value Selection Suite")
}

type selector = branch.ValueSelector[*fd.Space, fd.IntView, int]

// tell applies alternative alt of va to a clone of home and returns the
// resulting domain.
func tell(home *fd.Space, x fd.IntView, va selector, alt int) []int {
	s := home.Clone()
	me := va.Tell(s, alt, x, va.Val(s, x))
	Expect(me.Failed()).To(BeFalse())
	return x.Values(s)
}

var _ = Describe("Value selection", func() {
	var (
		home *fd.Space
		x    fd.IntView
	)

	BeforeEach(func() {
		home = fd.New()
		x = home.IntVar(-3, 3)
		x.Nq(home, 0)
	})

	DescribeTable("binary alternatives",
		func(va func() selector, val int, first, second []int) {
			s := va()
			Expect(s.Alternatives()).To(Equal(2))
			Expect(s.Val(home, x)).To(Equal(val))
			Expect(tell(home, x, s, 0)).To(Equal(first))
			Expect(tell(home, x, s, 1)).To(Equal(second))
		},
		Entry("min", valsel.Min[*fd.Space, fd.IntView], -3, []int{-3}, []int{-2, -1, 1, 2, 3}),
		Entry("max", valsel.Max[*fd.Space, fd.IntView], 3, []int{3}, []int{-3, -2, -1, 1, 2}),
		Entry("med", valsel.Med[*fd.Space, fd.IntView], -1, []int{-1}, []int{-3, -2, 1, 2, 3}),
		Entry("split-min", valsel.SplitMin[*fd.Space, fd.IntView], 0, []int{-3, -2, -1}, []int{1, 2, 3}),
		Entry("split-max", valsel.SplitMax[*fd.Space, fd.IntView], 0, []int{1, 2, 3}, []int{-3, -2, -1}),
	)

	It("should round the split point down", func() {
		y := home.IntVar(-4, -1)
		s := valsel.SplitMin[*fd.Space, fd.IntView]()
		Expect(s.Val(home, y)).To(Equal(-3))
	})

	It("should fail when the alternative empties the domain", func() {
		y := home.IntVar(2, 2)
		s := valsel.Min[*fd.Space, fd.IntView]()
		c := home.Clone()
		Expect(s.Tell(c, 1, y, s.Val(c, y))).To(Equal(branch.ModEventFailed))
	})

	Describe("Interval", func() {
		It("should split the bounds into k ranges", func() {
			s := valsel.Interval[*fd.Space, fd.IntView](3)
			Expect(s.Alternatives()).To(Equal(3))
			b := s.Val(home, x)
			Expect(b).To(Equal(valsel.Bounds{Min: -3, Max: 3}))
			Expect(b.String()).To(Equal("[-3..3]"))

			var got [][]int
			for alt := 0; alt < 3; alt++ {
				c := home.Clone()
				Expect(s.Tell(c, alt, x, b).Failed()).To(BeFalse())
				got = append(got, x.Values(c))
			}
			Expect(got).To(Equal([][]int{{-3, -2}, {-1}, {1, 2, 3}}))
		})

		It("should fail alternatives with an empty range", func() {
			y := home.IntVar(0, 1)
			s := valsel.Interval[*fd.Space, fd.IntView](3)
			b := s.Val(home, y)
			Expect(s.Tell(home.Clone(), 0, y, b)).To(Equal(branch.ModEventFailed))
		})

		It("should reject fewer than one alternative", func() {
			Expect(func() { valsel.Interval[*fd.Space, fd.IntView](0) }).To(Panic())
		})
	})
})
