package prog

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tconf/tconf/pkg/config"
)

const metricsNamespace = "tconf"

// Metrics of the watch command.
type metrics struct {
	registry *prometheus.Registry

	evaluations *prometheus.CounterVec
	duration    prometheus.Histogram
	files       prometheus.Gauge
	lastSuccess prometheus.Gauge
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		evaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "evaluations_total",
				Help:      "Total number of evaluations",
			},
			[]string{"status"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "evaluation_duration_seconds",
				Help:      "Duration of evaluations in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
			},
		),
		files: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Name:      "watched_files",
				Help:      "Number of files watched for changes",
			},
		),
		lastSuccess: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Name:      "last_success_timestamp_seconds",
				Help:      "Time of the last successful evaluation",
			},
		),
	}
	m.registry.MustRegister(m.evaluations, m.duration, m.files, m.lastSuccess)
	return m
}

func (m *metrics) observe(cfg *config.Config, d time.Duration) {
	m.duration.Observe(d.Seconds())
	if cfg.Success() {
		m.evaluations.WithLabelValues("success").Inc()
		m.lastSuccess.SetToCurrentTime()
	} else {
		m.evaluations.WithLabelValues("error").Inc()
	}
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
