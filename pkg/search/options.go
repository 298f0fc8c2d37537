package search

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

type options struct {
	tracer  Tracer
	logger  logrus.FieldLogger
	metrics *Metrics
	limit   int
}

type Option func(o *options) error

// WithTracer sets the tracer invoked on every failed node.
func WithTracer(t Tracer) Option {
	return func(o *options) error {
		o.tracer = t
		return nil
	}
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) error {
		o.logger = l
		return nil
	}
}

func WithMetrics(m *Metrics) Option {
	return func(o *options) error {
		o.metrics = m
		return nil
	}
}

// WithLimit stops All and Parallel after n solutions. Zero means no
// limit.
func WithLimit(n int) Option {
	return func(o *options) error {
		if n < 0 {
			return fmt.Errorf("invalid solution limit %d", n)
		}
		o.limit = n
		return nil
	}
}

var defaults = []Option{
	func(o *options) error {
		if o.tracer == nil {
			o.tracer = DefaultTracer{}
		}
		return nil
	},
	func(o *options) error {
		if o.logger == nil {
			l := logrus.New()
			l.SetOutput(io.Discard)
			o.logger = l
		}
		return nil
	},
}

func newOptions(opts ...Option) (*options, error) {
	o := &options{}
	for _, option := range append(opts, defaults...) {
		if err := option(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}
