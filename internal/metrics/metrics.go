package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the service's Prometheus collectors
type Metrics struct {
	UpstreamRequests *prometheus.CounterVec
	Snapshots        prometheus.Histogram
	RefreshDuration  *prometheus.HistogramVec
	CacheLookups     *prometheus.CounterVec
}

// New creates the collectors and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mlb_app",
			Name:      "upstream_requests_total",
			Help:      "Requests made to the MLB Stats API by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		Snapshots: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "mlb_app",
			Name:      "trend_snapshots",
			Help:      "Cumulative snapshots produced per aggregation.",
			Buckets:   []float64{0, 10, 25, 50, 100, 150, 175},
		}),
		RefreshDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "mlb_app",
			Name:      "refresh_duration_seconds",
			Help:      "Time taken to refresh a player-season.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mlb_app",
			Name:      "cache_lookups_total",
			Help:      "Cache reads by kind and result.",
		}, []string{"kind", "result"}),
	}

	reg.MustRegister(m.UpstreamRequests, m.Snapshots, m.RefreshDuration, m.CacheLookups)
	return m
}

// ObserveUpstream counts one upstream call
func (m *Metrics) ObserveUpstream(endpoint string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.UpstreamRequests.WithLabelValues(endpoint, outcome).Inc()
}

// ObserveCache counts one cache read
func (m *Metrics) ObserveCache(kind string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(kind, result).Inc()
}

// ObserveRefresh records a refresh duration in seconds
func (m *Metrics) ObserveRefresh(seconds float64, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.RefreshDuration.WithLabelValues(outcome).Observe(seconds)
}

// ObserveSnapshots records the length of an aggregated series
func (m *Metrics) ObserveSnapshots(n int) {
	if m == nil {
		return
	}
	m.Snapshots.Observe(float64(n))
}
