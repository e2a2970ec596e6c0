package metric

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/bdu-steam/steam-cli/internal/infra/buildinfo"
)

// SessionState reports the current session for the collector.
type SessionState func() (authenticated bool, source string)

// Collector exports the session state and build info at gather time.
type Collector struct {
	state SessionState

	authDesc  *prometheus.Desc
	buildDesc *prometheus.Desc
}

// NewCollector creates a collector that calls state on every gather.
// A nil state reports an unauthenticated session.
func NewCollector(state SessionState) *Collector {
	return &Collector{
		state: state,
		authDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "session", "authenticated"),
			"1 when the session holds a bearer token.",
			[]string{"source"}, nil,
		),
		buildDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "build_info"),
			"Build information of the running client.",
			[]string{"version", "commit"}, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.authDesc
	ch <- c.buildDesc
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	authenticated, source := false, "none"
	if c.state != nil {
		authenticated, source = c.state()
	}
	value := 0.0
	if authenticated {
		value = 1
	}
	ch <- prometheus.MustNewConstMetric(c.authDesc, prometheus.GaugeValue, value, source)
	ch <- prometheus.MustNewConstMetric(c.buildDesc, prometheus.GaugeValue, 1, buildinfo.Version, buildinfo.Commit)
}
