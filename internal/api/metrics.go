package api

import (
	"github.com/prometheus/client_golang/prometheus"
)

// defaultBuckets are latency histogram buckets in seconds.
var defaultBuckets = []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5} //nolint: gochecknoglobals

// Metrics holds the Prometheus collectors for the API.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	fits     *prometheus.CounterVec
	econs    *prometheus.CounterVec
}

// NewMetrics creates the API collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "parcel_planner",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "parcel_planner",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and method.",
			Buckets:   defaultBuckets,
		}, []string{"route", "method"}),
		fits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "parcel_planner",
			Name:      "fit_results_total",
			Help:      "Fit computations by outcome.",
		}, []string{"outcome"}),
		econs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "parcel_planner",
			Name:      "econ_results_total",
			Help:      "Econ computations by eligibility.",
		}, []string{"eligible"}),
	}

	for _, c := range []prometheus.Collector{m.requests, m.duration, m.fits, m.econs} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}
