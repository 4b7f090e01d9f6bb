// Package metrics exposes Prometheus metrics for the reconciliation job.
//
// Metrics are registered on a dedicated registry rather than the global default so tests
// can create as many instances as they like. Handler serves the registry in the
// Prometheus text format and is mounted at /metrics by the HTTP server.
package metrics
