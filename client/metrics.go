package client

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for API calls.
type Metrics struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
	Retries  prometheus.Counter
}

// NewMetrics creates and registers API call metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "payapi_client_requests_total",
			Help: "Total number of API requests",
		}, []string{"method", "path", "status"}),
		Duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "payapi_client_request_duration_seconds",
			Help:    "Duration of API requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		Retries: factory.NewCounter(prometheus.CounterOpts{
			Name: "payapi_client_retries_total",
			Help: "Total number of retried API requests",
		}),
	}
}

func (c *Client) observe(method, path string, status int, duration time.Duration) {
	if c.metrics == nil {
		return
	}
	c.metrics.Requests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	c.metrics.Duration.WithLabelValues(method, path).Observe(duration.Seconds())
}
