package preview

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	requests   *prometheus.CounterVec
	duration   prometheus.Histogram
	inputBytes prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wikihtml_render_requests_total",
			Help: "Render requests by HTTP status code.",
		}, []string{"code"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "wikihtml_render_duration_seconds",
			Help:    "Time spent serving render requests.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		inputBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "wikihtml_render_input_bytes",
			Help:    "Size of accepted render request bodies.",
			Buckets: prometheus.ExponentialBuckets(64, 4, 8),
		}),
	}
	reg.MustRegister(m.requests, m.duration, m.inputBytes)
	return m
}

func (m *metrics) observe(code int, elapsed time.Duration) {
	m.requests.WithLabelValues(strconv.Itoa(code)).Inc()
	m.duration.Observe(elapsed.Seconds())
}
