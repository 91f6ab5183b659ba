// Package metrics exposes watchdog run metrics via Prometheus.
//
// Because each watchdog pass is a short-lived cron process rather than a
// long-running server, metrics are not served over HTTP. When a textfile
// path is configured, the run's counters and gauges are written there in
// Prometheus text format at the end of the pass, to be picked up by the
// node_exporter textfile collector.
package metrics
