// Package metrics exposes Prometheus metrics for reconciliation runs.
//
// Collector implements reconcile.ChunkObserver, so an engine created with
// WithObserver(collector) reports every matched chunk pair. The service
// reports whole runs through ObserveRun. Handler is mounted on the HTTP
// server through fiber's adaptor middleware.
package metrics
