package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
	CustomersCreated prometheus.Counter
	BookingsCreated  prometheus.Counter
	LoginAttempts    *prometheus.CounterVec
	DashboardBuild   prometheus.Histogram
}

// New registers the service metrics on reg.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "The total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Time taken to serve HTTP requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		CustomersCreated: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "customers_created_total",
			Help:      "The total number of customers created",
		}),
		BookingsCreated: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_created_total",
			Help:      "The total number of bookings created",
		}),
		LoginAttempts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_attempts_total",
			Help:      "Login attempts by result",
		}, []string{"result"}),
		DashboardBuild: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "dashboard_build_seconds",
			Help:      "Time taken to compute the dashboard aggregates",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// NewNop returns metrics bound to a private registry, for tests and tools.
func NewNop() *Metrics {
	return New("test", prometheus.NewRegistry())
}
