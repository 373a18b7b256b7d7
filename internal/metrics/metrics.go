// Package metrics exposes Prometheus collectors for the HTTP layer and the
// endpoint registry.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pdftools"

// Metrics owns a private registry so tests can create as many as they like
type Metrics struct {
	registry         *prometheus.Registry
	requests         *prometheus.CounterVec
	duration         *prometheus.HistogramVec
	rejections       *prometheus.CounterVec
	enabledEndpoints prometheus.Gauge
	imagesRemoved    prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "endpoint_rejections_total",
			Help:      "Requests refused because the endpoint is disabled.",
		}, []string{"endpoint"}),
		enabledEndpoints: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "endpoints_enabled",
			Help:      "Number of registered endpoints currently enabled.",
		}),
		imagesRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "images_removed_total",
			Help:      "Images stripped from uploaded documents.",
		}),
	}

	m.registry.MustRegister(
		m.requests,
		m.duration,
		m.rejections,
		m.enabledEndpoints,
		m.imagesRemoved,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveRequest records one finished HTTP request
func (m *Metrics) ObserveRequest(route string, code int, seconds float64) {
	m.requests.WithLabelValues(route, strconv.Itoa(code)).Inc()
	m.duration.WithLabelValues(route).Observe(seconds)
}

func (m *Metrics) IncRejection(endpoint string) {
	m.rejections.WithLabelValues(endpoint).Inc()
}

func (m *Metrics) SetEnabledEndpoints(count int) {
	m.enabledEndpoints.Set(float64(count))
}

func (m *Metrics) AddImagesRemoved(count int) {
	m.imagesRemoved.Add(float64(count))
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests and extra collectors
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
