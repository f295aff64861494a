// Package telemetry exposes Prometheus metrics for listing analyses.
package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "listingseo"

// Analysis outcomes
const (
	OutcomeSuccess = "success"
	OutcomeInvalid = "invalid"
	OutcomeFailed  = "failed"
)

// Result lookup outcomes
const (
	LookupHit     = "hit"
	LookupMissing = "missing"
	LookupCorrupt = "corrupt"
)

// Metrics holds the service's Prometheus collectors
type Metrics struct {
	AnalysesTotal    *prometheus.CounterVec
	SEOScore         prometheus.Histogram
	AnalysisDuration prometheus.Histogram
	ResultLookups    *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewMetrics creates the collectors on a dedicated registry
func NewMetrics() *Metrics {
	m := &Metrics{
		AnalysesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Listing analyses by outcome",
		}, []string{"outcome"}),
		SEOScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "seo_score",
			Help:      "Distribution of generated SEO scores",
			Buckets:   prometheus.LinearBuckets(60, 5, 9),
		}),
		AnalysisDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Time spent generating a report",
			Buckets:   prometheus.DefBuckets,
		}),
		ResultLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "result_lookups_total",
			Help:      "Stored result lookups by outcome",
		}, []string{"outcome"}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.AnalysesTotal,
		m.SEOScore,
		m.AnalysisDuration,
		m.ResultLookups,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// ObserveAnalysis records a finished analysis
func (m *Metrics) ObserveAnalysis(outcome string, score int, elapsed time.Duration) {
	m.AnalysesTotal.WithLabelValues(outcome).Inc()
	if outcome == OutcomeSuccess {
		m.SEOScore.Observe(float64(score))
		m.AnalysisDuration.Observe(elapsed.Seconds())
	}
}

// ObserveLookup records a stored result lookup
func (m *Metrics) ObserveLookup(outcome string) {
	m.ResultLookups.WithLabelValues(outcome).Inc()
}

// Handler returns the HTTP handler for the /metrics endpoint
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
