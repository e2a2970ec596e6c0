package metric

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "steam_cli"

// Registry holds all client metrics.
type Registry struct {
	reg *prometheus.Registry

	// Request metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Session metrics
	BootstrapTotal *prometheus.CounterVec
}

// NewRegistry creates a registry with every client metric registered.
func NewRegistry() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Backend requests by method, endpoint and status (0 means no response).",
		}, []string{"method", "endpoint", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "Backend request latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "endpoint"}),
		BootstrapTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "bootstrap_total",
			Help:      "Session bootstrap and refresh outcomes.",
		}, []string{"outcome"}),
	}

	r.reg.MustRegister(r.RequestsTotal, r.RequestDuration, r.BootstrapTotal)
	return r
}

// ObserveRequest records one backend request.
func (r *Registry) ObserveRequest(method, path string, status int, elapsed time.Duration) {
	r.RequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	r.RequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// ObserveBootstrap records a bootstrap outcome.
func (r *Registry) ObserveBootstrap(outcome string) {
	r.BootstrapTotal.WithLabelValues(outcome).Inc()
}

// MustRegister adds extra collectors to the registry.
func (r *Registry) MustRegister(cs ...prometheus.Collector) {
	r.reg.MustRegister(cs...)
}

// Gatherer exposes the underlying registry for reading.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// WriteFile writes all metrics to path in the Prometheus text format.
// The file is replaced atomically.
func (r *Registry) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, r.reg)
}
