package metrics

import (
	"net/http"
	"time"

	"record-reconciler/core/reconcile"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// StatusCompleted labels runs that produced output.
	StatusCompleted = "completed"
	// StatusFailed labels runs that aborted.
	StatusFailed = "failed"
)

// Collector records reconciliation metrics on a private registry.
type Collector struct {
	registry *prometheus.Registry

	ChunksTotal    prometheus.Counter
	ChunkDuration  prometheus.Histogram
	RecordsTotal   *prometheus.CounterVec
	ConflictsTotal prometheus.Counter
	DuplicateKeys  *prometheus.CounterVec
	DroppedRecords *prometheus.CounterVec
	RunsTotal      *prometheus.CounterVec
	RunDuration    *prometheus.HistogramVec
}

// NewCollector creates a collector whose metric names start with namespace.
func NewCollector(namespace string) *Collector {
	c := &Collector{registry: prometheus.NewRegistry()}

	c.ChunksTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "chunk_pairs_total",
		Help:      "Total number of chunk pairs matched",
	})
	c.ChunkDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "chunk_pair_duration_seconds",
		Help:      "Time spent matching one chunk pair",
		Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	})
	c.RecordsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_total",
		Help:      "Reconciled records by outcome",
	}, []string{"outcome"})
	c.ConflictsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "conflicting_fields_total",
		Help:      "Fields present on both sides with different values",
	})
	c.DuplicateKeys = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "duplicate_keys_total",
		Help:      "Duplicate keys collapsed inside a chunk",
	}, []string{"side"})
	c.DroppedRecords = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dropped_records_total",
		Help:      "Records in chunks without a positional partner",
	}, []string{"side"})
	c.RunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "runs_total",
		Help:      "Reconciliation runs by status",
	}, []string{"status"})
	c.RunDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "run_duration_seconds",
		Help:      "Reconciliation run duration in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})

	c.registry.MustRegister(
		c.ChunksTotal,
		c.ChunkDuration,
		c.RecordsTotal,
		c.ConflictsTotal,
		c.DuplicateKeys,
		c.DroppedRecords,
		c.RunsTotal,
		c.RunDuration,
	)
	return c
}

// ObserveChunk records the outcome of one matched chunk pair.
func (c *Collector) ObserveChunk(_ int, result reconcile.ChunkResult, elapsed time.Duration) {
	c.ChunksTotal.Inc()
	c.ChunkDuration.Observe(elapsed.Seconds())
	c.RecordsTotal.WithLabelValues("matched").Add(float64(result.Matched))
	c.RecordsTotal.WithLabelValues("only_a").Add(float64(result.OnlyA))
	c.RecordsTotal.WithLabelValues("only_b").Add(float64(result.OnlyB))
	c.ConflictsTotal.Add(float64(result.Conflicts))
	c.DuplicateKeys.WithLabelValues(reconcile.SideA.String()).Add(float64(len(result.DuplicatesA)))
	c.DuplicateKeys.WithLabelValues(reconcile.SideB.String()).Add(float64(len(result.DuplicatesB)))
}

// ObserveRun records a finished run. summary may be nil for failed runs.
func (c *Collector) ObserveRun(status string, summary *reconcile.Summary, elapsed time.Duration) {
	c.RunsTotal.WithLabelValues(status).Inc()
	c.RunDuration.WithLabelValues(status).Observe(elapsed.Seconds())
	if summary == nil {
		return
	}
	c.DroppedRecords.WithLabelValues(reconcile.SideA.String()).Add(float64(summary.DroppedRecordsA))
	c.DroppedRecords.WithLabelValues(reconcile.SideB.String()).Add(float64(summary.DroppedRecordsB))
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}
