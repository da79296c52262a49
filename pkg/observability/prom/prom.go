// Package prom implements the observability hooks with Prometheus metrics.
package prom

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/oddkernel/pkg/observability"
)

var (
	_ observability.PipelineHooks = (*Metrics)(nil)
	_ observability.CacheHooks    = (*Metrics)(nil)
)

// Metrics records pipeline and cache events as Prometheus metrics.
type Metrics struct {
	StageDuration *prometheus.HistogramVec
	GraphsLoaded  prometheus.Counter
	BigDAGNodes   prometheus.Gauge
	MatrixEntries *prometheus.GaugeVec
	CacheEvents   *prometheus.CounterVec
	CacheBytes    *prometheus.CounterVec
}

// New creates the metrics and registers them with reg.
// It panics if any of them is already registered, like prometheus.MustRegister.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		StageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "oddkernel_stage_duration_seconds",
				Help:    "Duration of kernel pipeline stages",
				Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
			},
			[]string{"stage", "outcome"},
		),
		GraphsLoaded: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "oddkernel_graphs_loaded_total",
				Help: "Total number of graphs read from collection files",
			},
		),
		BigDAGNodes: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "oddkernel_bigdag_nodes",
				Help: "Number of distinct subtrees in the last built Big DAG",
			},
		),
		MatrixEntries: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "oddkernel_matrix_entries",
				Help: "Number of entries in the last reduced kernel matrix",
			},
			[]string{"mode"},
		),
		CacheEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "oddkernel_cache_events_total",
				Help: "Total number of cache hits, misses and writes",
			},
			[]string{"key_type", "event"},
		),
		CacheBytes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "oddkernel_cache_written_bytes_total",
				Help: "Total number of bytes written to the cache",
			},
			[]string{"key_type"},
		),
	}
	reg.MustRegister(m.StageDuration, m.GraphsLoaded, m.BigDAGNodes, m.MatrixEntries, m.CacheEvents, m.CacheBytes)
	return m
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (m *Metrics) OnLoadStart(context.Context, string) {}

func (m *Metrics) OnLoadComplete(_ context.Context, _ string, graphs int, d time.Duration, err error) {
	m.StageDuration.WithLabelValues("load", outcome(err)).Observe(d.Seconds())
	if err == nil {
		m.GraphsLoaded.Add(float64(graphs))
	}
}

func (m *Metrics) OnBuildStart(context.Context, int) {}

func (m *Metrics) OnBuildComplete(_ context.Context, nodes int, d time.Duration, err error) {
	m.StageDuration.WithLabelValues("build", outcome(err)).Observe(d.Seconds())
	if err == nil {
		m.BigDAGNodes.Set(float64(nodes))
	}
}

func (m *Metrics) OnReduceStart(context.Context, string) {}

func (m *Metrics) OnReduceComplete(_ context.Context, mode string, rows, cols int, d time.Duration, err error) {
	m.StageDuration.WithLabelValues("reduce", outcome(err)).Observe(d.Seconds())
	if err == nil {
		m.MatrixEntries.WithLabelValues(mode).Set(float64(rows * cols))
	}
}

func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.CacheEvents.WithLabelValues(keyType, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.CacheEvents.WithLabelValues(keyType, "miss").Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, keyType string, size int) {
	m.CacheEvents.WithLabelValues(keyType, "set").Inc()
	m.CacheBytes.WithLabelValues(keyType).Add(float64(size))
}
