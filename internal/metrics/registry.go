package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "smartsdlc"

var (
	registry = prometheus.NewRegistry()

	backendRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total model backend completions.",
	}, []string{"backend", "task", "status", "error_category"})

	backendLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Model backend completion duration in seconds.",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
	}, []string{"backend", "task", "status"})

	documentExtractions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "document_extractions_total",
		Help:      "Total uploaded document text extractions.",
	}, []string{"status"})

	connectorRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "connector_requests_total",
		Help:      "Total connector import/export requests.",
	}, []string{"connector", "operation", "status", "error_code"})

	connectorLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "connector_request_duration_seconds",
		Help:      "Connector request duration in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"connector", "operation", "status"})
)

func init() {
	registry.MustRegister(
		backendRequests,
		backendLatency,
		documentExtractions,
		connectorRequests,
		connectorLatency,
	)
}

func RecordBackendCall(backend string, task string, status string, errorCategory string, duration time.Duration) {
	backendRequests.WithLabelValues(backend, task, status, errorCategory).Inc()
	backendLatency.WithLabelValues(backend, task, status).Observe(duration.Seconds())
}

func RecordExtraction(status string) {
	documentExtractions.WithLabelValues(status).Inc()
}

func RecordConnectorCall(connector string, operation string, status string, errorCode string, duration time.Duration) {
	connectorRequests.WithLabelValues(connector, operation, status, errorCode).Inc()
	connectorLatency.WithLabelValues(connector, operation, status).Observe(duration.Seconds())
}

// Handler serves the service registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
}
