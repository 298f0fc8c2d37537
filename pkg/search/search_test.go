package search_test

import (
	"bytes"
	"context"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/operator-framework/brancher/pkg/branch"
	"github.com/operator-framework/brancher/pkg/fd"
	"github.com/operator-framework/brancher/pkg/search"
)

type recordingTracer struct {
	depths []int
	paths  [][]search.Choice
}

func (t *recordingTracer) Trace(p search.SearchPosition) {
	t.depths = append(t.depths, p.Depth())
	t.paths = append(t.paths, p.Path())
}

var _ = Describe("DFS", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	DescribeTable("should find every n-queens solution",
		func(n, want int) {
			home, q := queens(n)
			solutions, err := search.All(ctx, home)
			Expect(err).ToNot(HaveOccurred())
			Expect(solutions).To(HaveLen(want))
			seen := map[string]bool{}
			for _, s := range solutions {
				Expect(valid(s, q)).To(BeTrue())
				seen[fmt.Sprint(s.Vals(q))] = true
			}
			Expect(seen).To(HaveLen(want))
		},
		Entry("1 queen", 1, 1),
		Entry("3 queens", 3, 0),
		Entry("4 queens", 4, 2),
		Entry("6 queens", 6, 4),
		Entry("8 queens", 8, 92),
	)

	It("should leave the root untouched", func() {
		home, q := queens(6)
		_, err := search.Solve(ctx, home)
		Expect(err).ToNot(HaveOccurred())
		for _, x := range q {
			Expect(x.Size(home)).To(Equal(6))
		}
	})

	It("should return ErrNoSolution without a solution", func() {
		home, _ := queens(3)
		_, err := search.Solve(ctx, home)
		Expect(err).To(MatchError(search.ErrNoSolution))
	})

	It("should solve a root without branchings", func() {
		home := fd.New()
		x := home.IntVar(0, 1)
		home.Post(fd.RelConst(x, fd.EQ, 1))
		solutions, err := search.All(ctx, home)
		Expect(err).ToNot(HaveOccurred())
		Expect(solutions).To(HaveLen(1))
		Expect(x.Val(solutions[0])).To(Equal(1))
	})

	It("should enumerate solutions one at a time", func() {
		home, q := queens(4)
		e, err := search.NewDFS(home)
		Expect(err).ToNot(HaveOccurred())

		first, ok, err := e.Next(ctx)
		Expect(err).ToNot(HaveOccurred())
		Expect(ok).To(BeTrue())
		Expect(first.Vals(q)).To(Equal([]int{1, 3, 0, 2}))

		second, ok, err := e.Next(ctx)
		Expect(err).ToNot(HaveOccurred())
		Expect(ok).To(BeTrue())
		Expect(second.Vals(q)).To(Equal([]int{2, 0, 3, 1}))
		Expect(first.Vals(q)).To(Equal([]int{1, 3, 0, 2}))

		_, ok, err = e.Next(ctx)
		Expect(err).ToNot(HaveOccurred())
		Expect(ok).To(BeFalse())

		stats := e.Stats()
		Expect(stats.Solutions).To(Equal(2))
		Expect(stats.Failures).To(BeNumerically(">", 0))
		Expect(stats.Nodes).To(BeNumerically(">", stats.Failures+stats.Solutions))
		Expect(stats.Depth).To(BeNumerically(">", 0))
		Expect(stats.Memory).To(BeNumerically(">", 0))
		Expect(stats.Disposed).To(BeNumerically(">", 0))
		Expect(e.Depth()).To(Equal(0))
	})

	It("should stop at the solution limit", func() {
		home, _ := queens(8)
		solutions, err := search.All(ctx, home, search.WithLimit(5))
		Expect(err).ToNot(HaveOccurred())
		Expect(solutions).To(HaveLen(5))
	})

	It("should reject a negative limit", func() {
		home, _ := queens(4)
		_, err := search.All(ctx, home, search.WithLimit(-1))
		Expect(err).To(HaveOccurred())
	})

	It("should report cancellation as incomplete", func() {
		home, _ := queens(8)
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := search.All(cctx, home)
		Expect(err).To(MatchError(search.ErrIncomplete))
		_, err = search.Solve(cctx, home)
		Expect(err).To(MatchError(search.ErrIncomplete))
	})

	It("should trace every failure with its path", func() {
		home, _ := queens(5)
		tracer := &recordingTracer{}
		e, err := search.NewDFS(home, search.WithTracer(tracer))
		Expect(err).ToNot(HaveOccurred())
		for {
			_, ok, err := e.Next(ctx)
			Expect(err).ToNot(HaveOccurred())
			if !ok {
				break
			}
		}
		Expect(tracer.depths).To(HaveLen(e.Stats().Failures))
		for i, path := range tracer.paths {
			Expect(path).To(HaveLen(tracer.depths[i]))
			for _, c := range path {
				Expect(c.Alternative).To(BeNumerically(">=", 0))
				Expect(c.Alternative).To(BeNumerically("<", c.Descriptor.Alternatives()))
			}
		}
	})

	It("should write failures with the logging tracer", func() {
		home, _ := queens(4)
		var buf bytes.Buffer
		_, err := search.All(ctx, home, search.WithTracer(search.LoggingTracer{Writer: &buf}))
		Expect(err).ToNot(HaveOccurred())
		Expect(buf.String()).To(ContainSubstring("Failed at depth"))
		Expect(buf.String()).To(ContainSubstring("alternative 0 of 2"))
	})
})

var _ = Describe("Parallel", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	DescribeTable("should find every n-queens solution",
		func(n, workers, want int) {
			home, q := queens(n)
			solutions, err := search.Parallel(ctx, home, workers)
			Expect(err).ToNot(HaveOccurred())
			Expect(solutions).To(HaveLen(want))
			for _, s := range solutions {
				Expect(valid(s, q)).To(BeTrue())
			}
		},
		Entry("4 queens, 1 worker", 4, 1, 2),
		Entry("4 queens, 4 workers", 4, 4, 2),
		Entry("8 queens, 2 workers", 8, 2, 92),
		Entry("8 queens, 8 workers", 8, 8, 92),
	)

	It("should stop at the solution limit", func() {
		home, _ := queens(8)
		solutions, err := search.Parallel(ctx, home, 4, search.WithLimit(10))
		Expect(err).ToNot(HaveOccurred())
		Expect(solutions).To(HaveLen(10))
	})

	It("should reject invalid worker counts", func() {
		home, _ := queens(4)
		_, err := search.Parallel(ctx, home, 0)
		Expect(err).To(HaveOccurred())
	})

	It("should handle roots that need no branching", func() {
		home := fd.New()
		x := home.IntVar(0, 0)
		solutions, err := search.Parallel(ctx, home, 2)
		Expect(err).ToNot(HaveOccurred())
		Expect(solutions).To(HaveLen(1))
		Expect(x.Val(solutions[0])).To(Equal(0))

		failed := fd.New()
		y := failed.IntVar(0, 0)
		failed.Post(fd.RelConst(y, fd.NQ, 0))
		solutions, err = search.Parallel(ctx, failed, 2)
		Expect(err).ToNot(HaveOccurred())
		Expect(solutions).To(BeEmpty())
	})

	It("should report cancellation as incomplete", func() {
		home, _ := queens(8)
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := search.Parallel(cctx, home, 2)
		Expect(err).To(MatchError(search.ErrIncomplete))
	})

	It("should release the root clone once the children are committed", func() {
		home, _ := queens(6)
		disposed := &generations{}
		solutions, err := search.Parallel(ctx, &tracked{Space: home, disposed: disposed}, 3)
		Expect(err).ToNot(HaveOccurred())
		Expect(solutions).To(HaveLen(4))
		Expect(disposed.count(1)).To(Equal(1))
		Expect(disposed.count(0)).To(BeZero())
	})

	It("should not share state between workers", func() {
		home, q := queens(6)
		Expect(home.Status()).To(Equal(branch.SpaceBranch))
		_, err := search.Parallel(ctx, home, 3)
		Expect(err).ToNot(HaveOccurred())
		for _, x := range q {
			Expect(x.Size(home)).To(Equal(6))
		}
	})
})
