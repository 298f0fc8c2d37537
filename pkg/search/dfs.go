// Package search explores the decisions produced by branchings.
//
// Engines never share a state between alternatives: every alternative but
// the last is committed on a clone of its parent, and the last one reuses
// the parent itself.
package search

import (
	"context"
	"errors"
	"fmt"

	"github.com/operator-framework/brancher/pkg/branch"
)

var (
	ErrIncomplete = errors.New("cancelled before the search was complete")
	ErrNoSolution = errors.New("no solution exists")
)

// Space is a search state that can be explored by the engines of this
// package.
type Space[S any] interface {
	Status() branch.SpaceStatus
	Description() branch.Descriptor
	Commit(d branch.Descriptor, alt int)
	Clone() S
}

type disposer interface {
	Dispose() uintptr
}

// Stats describes the work done by an engine.
type Stats struct {
	Nodes     int
	Failures  int
	Solutions int
	// Depth is the maximal depth of the search stack.
	Depth int
	// Memory is the maximal memory held by descriptors on the stack.
	Memory uintptr
	// Disposed is the memory released by disposing failed spaces.
	Disposed uintptr
}

type frame[S any] struct {
	space S
	desc  branch.Descriptor
	// next alternative to explore
	alt int
}

// DFS is a depth-first search engine.
type DFS[S Space[S]] struct {
	opts   *options
	stack  []frame[S]
	cur    S
	hasCur bool
	memory uintptr
	stats  Stats
}

// NewDFS creates an engine exploring a clone of root.
func NewDFS[S Space[S]](root S, opts ...Option) (*DFS[S], error) {
	o, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &DFS[S]{
		opts:   o,
		cur:    root.Clone(),
		hasCur: true,
	}, nil
}

// Next returns the next solution. It returns false once the search space
// is exhausted, and ErrIncomplete if ctx is done first.
func (e *DFS[S]) Next(ctx context.Context) (S, bool, error) {
	var zero S
	for {
		if err := ctx.Err(); err != nil {
			return zero, false, fmt.Errorf("%w: %v", ErrIncomplete, err)
		}
		if !e.hasCur && !e.backtrack() {
			e.opts.logger.WithFields(e.fields()).Debug("search exhausted")
			return zero, false, nil
		}
		s := e.cur
		e.stats.Nodes++
		switch s.Status() {
		case branch.SpaceFailed:
			e.stats.Failures++
			e.opts.metrics.node(Failed)
			e.opts.tracer.Trace(e)
			e.discard(s)
			e.hasCur = false
		case branch.SpaceSolved:
			e.stats.Solutions++
			e.opts.metrics.node(Solved)
			e.cur, e.hasCur = zero, false
			e.opts.logger.WithFields(e.fields()).Debug("solution found")
			return s, true, nil
		case branch.SpaceBranch:
			e.opts.metrics.node(Branched)
			e.push(s, s.Description())
			e.hasCur = false
		}
	}
}

func (e *DFS[S]) push(s S, d branch.Descriptor) {
	e.stack = append(e.stack, frame[S]{space: s, desc: d})
	e.memory += d.Size()
	if e.memory > e.stats.Memory {
		e.stats.Memory = e.memory
	}
	if len(e.stack) > e.stats.Depth {
		e.stats.Depth = len(e.stack)
	}
	e.opts.metrics.descriptor(d.Size(), len(e.stack))
}

// backtrack commits the next open alternative, popping exhausted frames.
func (e *DFS[S]) backtrack() bool {
	var zero S
	for len(e.stack) > 0 {
		top := &e.stack[len(e.stack)-1]
		n := top.desc.Alternatives()
		if top.alt >= n {
			e.memory -= top.desc.Size()
			e.stack = e.stack[:len(e.stack)-1]
			continue
		}
		alt := top.alt
		top.alt++
		var s S
		if top.alt == n {
			s, top.space = top.space, zero
		} else {
			s = top.space.Clone()
		}
		s.Commit(top.desc, alt)
		e.cur, e.hasCur = s, true
		return true
	}
	return false
}

func (e *DFS[S]) discard(s S) {
	if d, ok := any(s).(disposer); ok {
		e.stats.Disposed += d.Dispose()
	}
}

func (e *DFS[S]) fields() map[string]interface{} {
	return map[string]interface{}{
		"nodes":     e.stats.Nodes,
		"failures":  e.stats.Failures,
		"solutions": e.stats.Solutions,
		"depth":     e.stats.Depth,
	}
}

// Stats returns statistics about the search so far.
func (e *DFS[S]) Stats() Stats {
	return e.stats
}

// Depth implements SearchPosition.
func (e *DFS[S]) Depth() int {
	return len(e.stack)
}

// Path implements SearchPosition.
func (e *DFS[S]) Path() []Choice {
	path := make([]Choice, len(e.stack))
	for i, f := range e.stack {
		path[i] = Choice{Descriptor: f.desc, Alternative: f.alt - 1}
	}
	return path
}

// Solve returns the first solution below root, or ErrNoSolution.
func Solve[S Space[S]](ctx context.Context, root S, opts ...Option) (S, error) {
	var zero S
	e, err := NewDFS(root, opts...)
	if err != nil {
		return zero, err
	}
	s, ok, err := e.Next(ctx)
	if err != nil {
		return zero, err
	}
	if !ok {
		return zero, ErrNoSolution
	}
	return s, nil
}

// All returns every solution below root, up to the limit set by WithLimit.
func All[S Space[S]](ctx context.Context, root S, opts ...Option) ([]S, error) {
	e, err := NewDFS(root, opts...)
	if err != nil {
		return nil, err
	}
	var solutions []S
	for e.opts.limit == 0 || len(solutions) < e.opts.limit {
		s, ok, err := e.Next(ctx)
		if err != nil {
			return solutions, err
		}
		if !ok {
			break
		}
		solutions = append(solutions, s)
	}
	return solutions, nil
}
