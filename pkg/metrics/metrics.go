// Package metrics exposes analysis and suggestion counters to Prometheus.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const DefaultNamespace = "style_review"

type Metrics struct {
	registry *prometheus.Registry

	suggestions  *prometheus.CounterVec
	tierDuration *prometheus.HistogramVec
	quotaDenials prometheus.Counter
	ruleFailures *prometheus.CounterVec
	sentences    prometheus.Counter
	cacheHits    prometheus.Counter
	liveSessions prometheus.Gauge
}

func New(namespace string) *Metrics {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		suggestions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "suggestions_total",
			Help:      "Suggestions produced, by resolution method.",
		}, []string{"method"}),
		tierDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "suggestion_tier_duration_seconds",
			Help:      "Time spent in each suggestion tier.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"tier", "outcome"}),
		quotaDenials: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quota_denials_total",
			Help:      "Remote generation attempts refused by the daily quota.",
		}),
		ruleFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rule_failures_total",
			Help:      "Rule invocations that errored or panicked.",
		}, []string{"rule_id"}),
		sentences: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sentences_analyzed_total",
			Help:      "Sentences produced by segmentation.",
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "suggestion_cache_hits_total",
			Help:      "Suggestions served from the memo cache.",
		}),
		liveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_sessions",
			Help:      "Open live analysis websocket sessions.",
		}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.suggestions, m.tierDuration, m.quotaDenials, m.ruleFailures, m.sentences, m.cacheHits, m.liveSessions,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Suggestion(method string) {
	if m == nil {
		return
	}
	m.suggestions.WithLabelValues(method).Inc()
}

func (m *Metrics) Tier(tier, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.tierDuration.WithLabelValues(tier, outcome).Observe(d.Seconds())
}

func (m *Metrics) QuotaDenied() {
	if m == nil {
		return
	}
	m.quotaDenials.Inc()
}

func (m *Metrics) RuleFailed(ruleID string, _ error) {
	if m == nil {
		return
	}
	m.ruleFailures.WithLabelValues(ruleID).Inc()
}

func (m *Metrics) SentencesAnalyzed(n int) {
	if m == nil {
		return
	}
	m.sentences.Add(float64(n))
}

func (m *Metrics) CacheHit() {
	if m == nil {
		return
	}
	m.cacheHits.Inc()
}

func (m *Metrics) LiveSessions(n int) {
	if m == nil {
		return
	}
	m.liveSessions.Set(float64(n))
}
