package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for page rendering. Each instance
// owns its registry so tests can create as many as they like.
type Metrics struct {
	registry      *prometheus.Registry
	pagesRendered *prometheus.CounterVec
	renderErrors  prometheus.Counter
	renderSeconds prometheus.Histogram
	transforms    prometheus.Counter
}

// NewMetrics registers the docpage collectors plus Go and process collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		pagesRendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "docpage",
			Name:      "pages_rendered_total",
			Help:      "Pages rendered, by outcome",
		}, []string{"status"}),
		renderErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "docpage",
			Name:      "render_errors_total",
			Help:      "Page renders that failed in a rewrite rule or the serializer",
		}),
		renderSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "docpage",
			Name:      "render_duration_seconds",
			Help:      "Time to assemble and serialize a page",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
		transforms: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "docpage",
			Name:      "fragment_transforms_total",
			Help:      "Fragments rewritten through the transform endpoint",
		}),
	}
	m.registry.MustRegister(m.pagesRendered, m.renderErrors, m.renderSeconds, m.transforms)
	m.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
