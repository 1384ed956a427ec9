package signserver

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vitalvas/textsign/textsign"
)

const metricsNamespace = "textsign"

// Operation results recorded in textsign_operations_total.
const (
	resultOK      = "ok"
	resultValid   = "valid"
	resultInvalid = "invalid"
	resultError   = "error"
)

type metrics struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "operations_total",
			Help:      "Sign, verify and key generation requests by algorithm and result.",
		}, []string{"operation", "algorithm", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "operation_duration_seconds",
			Help:      "Time spent in sign, verify and key generation, including reading the body.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "algorithm"}),
	}

	m.registry.MustRegister(
		m.operations,
		m.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

func (m *metrics) observe(operation string, alg textsign.Algorithm, result string, seconds float64) {
	m.operations.WithLabelValues(operation, alg.String(), result).Inc()
	m.duration.WithLabelValues(operation, alg.String()).Observe(seconds)
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
