// Package metric provides Prometheus metrics for steam-cli.
//
// The CLI is short-lived, so metrics are not scraped. They are collected in
// a private registry and written in the Prometheus text format to the file
// named by --metrics-file when the process exits, where a node_exporter
// textfile collector can pick them up.
//
//   - prometheus.go: the registry, request and bootstrap metrics
//   - collector.go: the session state collector
package metric
