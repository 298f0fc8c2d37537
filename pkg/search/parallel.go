package search

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/operator-framework/brancher/pkg/branch"
)

var errLimit = errors.New("solution limit reached")

// Parallel explores every alternative of the first decision below root in
// its own goroutine, running at most workers of them at a time. Each
// goroutine works on its own clone of root; no state or branching is
// shared between goroutines. Solutions are returned in no particular
// order.
func Parallel[S Space[S]](ctx context.Context, root S, workers int, opts ...Option) ([]S, error) {
	if workers < 1 {
		return nil, fmt.Errorf("invalid number of workers %d", workers)
	}
	o, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}

	s := root.Clone()
	switch s.Status() {
	case branch.SpaceFailed:
		o.metrics.node(Failed)
		return nil, nil
	case branch.SpaceSolved:
		o.metrics.node(Solved)
		return []S{s}, nil
	}
	o.metrics.node(Branched)
	d := s.Description()

	var (
		mu        sync.Mutex
		solutions []S
	)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for alt := 0; alt < d.Alternatives(); alt++ {
		child := s.Clone()
		child.Commit(d, alt)
		g.Go(func() error {
			e, err := NewDFS(child, opts...)
			if err != nil {
				return err
			}
			defer func() {
				stats := e.Stats()
				o.logger.WithField("alternative", alt).WithField("nodes", stats.Nodes).WithField("solutions", stats.Solutions).Debug("subtree done")
			}()
			for {
				sol, ok, err := e.Next(ctx)
				if err != nil || !ok {
					return err
				}
				mu.Lock()
				if o.limit > 0 && len(solutions) >= o.limit {
					mu.Unlock()
					return errLimit
				}
				solutions = append(solutions, sol)
				full := o.limit > 0 && len(solutions) >= o.limit
				mu.Unlock()
				if full {
					return errLimit
				}
			}
		})
	}
	// every child holds its own clone by now
	if ds, ok := any(s).(disposer); ok {
		o.logger.WithField("disposed", ds.Dispose()).Debug("root released")
	}
	if err := g.Wait(); err != nil && !errors.Is(err, errLimit) {
		return solutions, err
	}
	return solutions, nil
}
