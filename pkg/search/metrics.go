package search

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeLabel = "outcome"
	Failed       = "failed"
	Solved       = "solved"
	Branched     = "branched"
)

// Metrics collects search statistics for prometheus.
type Metrics struct {
	mu          sync.Mutex
	peak        int
	nodes       *prometheus.CounterVec
	depth       prometheus.Gauge
	descriptors prometheus.Counter
}

// NewMetrics creates the search collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		nodes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "search_nodes_total",
				Help: "Number of explored search nodes by outcome",
			},
			[]string{OutcomeLabel},
		),
		depth: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "search_depth_max",
				Help: "Maximal depth reached by the search",
			},
		),
		descriptors: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "search_descriptor_bytes_total",
				Help: "Memory allocated for branching descriptors",
			},
		),
	}
	for _, c := range []prometheus.Collector{m.nodes, m.depth, m.descriptors} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) node(outcome string) {
	if m == nil {
		return
	}
	m.nodes.WithLabelValues(outcome).Inc()
}

func (m *Metrics) descriptor(size uintptr, depth int) {
	if m == nil {
		return
	}
	m.descriptors.Add(float64(size))
	m.mu.Lock()
	defer m.mu.Unlock()
	if depth > m.peak {
		m.peak = depth
		m.depth.Set(float64(depth))
	}
}
