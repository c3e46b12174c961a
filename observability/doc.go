// Package observability exports store, cache and conversion events as
// Prometheus metrics.
//
//	reg := prometheus.NewRegistry()
//	obs, err := observability.NewPrometheusObserver(reg)
//	a, err := store.OpenDense(prefix, store.WithMetrics(obs))
package observability
