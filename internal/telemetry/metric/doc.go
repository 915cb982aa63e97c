// Package metric provides Prometheus metrics for Diorite.
//
//   - prometheus.go: the Registry, its HTTP handler and the observers used
//     by the lookup service and the HTTP server
//   - collector.go: a custom collector reading palette and identity map
//     statistics at scrape time
//
// Metrics are exposed at /metrics in Prometheus text format under the
// "diorite" namespace.
package metric
