// Package cli holds the state shared by the brancher subcommands.
package cli

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/sirupsen/logrus"

	"github.com/operator-framework/brancher/pkg/search"
)

// Env is configured by the persistent flags of the root command before
// any subcommand runs.
type Env struct {
	Logger   *logrus.Logger
	LogLevel string
	// Metrics enables collection of search metrics, written to the
	// command output once the subcommand finishes.
	Metrics bool

	registry *prometheus.Registry
	metrics  *search.Metrics
}

func NewEnv() *Env {
	return &Env{
		Logger:   logrus.New(),
		LogLevel: logrus.InfoLevel.String(),
	}
}

// Setup applies the flag values to the environment.
func (e *Env) Setup(out io.Writer) error {
	level, err := logrus.ParseLevel(e.LogLevel)
	if err != nil {
		return err
	}
	e.Logger.SetLevel(level)
	e.Logger.SetOutput(out)
	if !e.Metrics {
		return nil
	}
	e.registry = prometheus.NewRegistry()
	e.metrics, err = search.NewMetrics(e.registry)
	return err
}

// SearchOptions returns the engine options matching the environment.
func (e *Env) SearchOptions(opts ...search.Option) []search.Option {
	opts = append(opts, search.WithLogger(e.Logger))
	if e.Logger.IsLevelEnabled(logrus.TraceLevel) {
		opts = append(opts, search.WithTracer(search.LoggingTracer{Writer: e.Logger.Out}))
	}
	if e.metrics != nil {
		opts = append(opts, search.WithMetrics(e.metrics))
	}
	return opts
}

// WriteMetrics writes the collected metrics in the text exposition
// format. It does nothing if metrics are disabled.
func (e *Env) WriteMetrics(w io.Writer) error {
	if e.registry == nil {
		return nil
	}
	families, err := e.registry.Gather()
	if err != nil {
		return fmt.Errorf("error gathering metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
