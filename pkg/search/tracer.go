package search

import (
	"fmt"
	"io"

	"github.com/operator-framework/brancher/pkg/branch"
)

// Choice is one committed alternative on the path to a node.
type Choice struct {
	Descriptor  branch.Descriptor
	Alternative int
}

type SearchPosition interface {
	// Depth returns the number of choices on the path to the node.
	Depth() int
	// Path returns the choices leading to the node, root first.
	Path() []Choice
}

type Tracer interface {
	Trace(p SearchPosition)
}

type DefaultTracer struct{}

func (DefaultTracer) Trace(_ SearchPosition) {
}

type LoggingTracer struct {
	Writer io.Writer
}

func (t LoggingTracer) Trace(p SearchPosition) {
	fmt.Fprintf(t.Writer, "---\nFailed at depth %d:\n", p.Depth())
	for _, c := range p.Path() {
		fmt.Fprintf(t.Writer, "- branching %d: alternative %d of %d\n", c.Descriptor.ID(), c.Alternative, c.Descriptor.Alternatives())
	}
}
