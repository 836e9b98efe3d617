package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metrics holds the collectors of one server. Each server owns its registry.
type metrics struct {
	registry   *prometheus.Registry
	summaryVec *prometheus.SummaryVec
	counterVec *prometheus.CounterVec
	scores     *prometheus.HistogramVec
	ranked     prometheus.Counter
	warnings   prometheus.Counter
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &metrics{
		registry: reg,
		summaryVec: factory.NewSummaryVec(
			prometheus.SummaryOpts{
				Name: "http_request_duration_seconds",
				Help: "HTTP request duration in seconds",
				Objectives: map[float64]float64{
					0.5:  0.05,
					0.9:  0.01,
					0.95: 0.005,
					0.99: 0.001,
				},
			},
			[]string{"method", "path", "status_code"},
		),
		counterVec: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		scores: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fitscore_score",
				Help:    "Distribution of computed scores",
				Buckets: prometheus.LinearBuckets(10, 10, 10),
			},
			[]string{"kind"},
		),
		ranked: factory.NewCounter(prometheus.CounterOpts{
			Name: "fitscore_ranked_records_total",
			Help: "Job records scored by the ranker",
		}),
		warnings: factory.NewCounter(prometheus.CounterOpts{
			Name: "fitscore_partial_result_warnings_total",
			Help: "Partial result warnings emitted while ranking",
		}),
	}
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *metrics) observe(method, path string, status int, elapsed time.Duration) {
	code := strconv.Itoa(status)
	m.summaryVec.WithLabelValues(method, path, code).Observe(elapsed.Seconds())
	m.counterVec.WithLabelValues(method, path, code).Inc()
}
