package metrics

import "github.com/prometheus/client_golang/prometheus"

// Source, resolver and pipeline Prometheus metrics.
var (
	SourceRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "onimo",
			Name:      "source_requests_total",
			Help:      "Total number of source adapter lookups",
		},
		[]string{"source", "outcome"}, // outcome: found / not_found / timeout / canceled / panic
	)

	SourceRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "onimo",
			Name:      "source_request_duration_seconds",
			Help:      "Source adapter lookup duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"source"},
	)

	ResolverOutcomesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "onimo",
			Name:      "resolver_outcomes_total",
			Help:      "Fact resolver outcomes by winning origin",
		},
		[]string{"mode", "origin"}, // origin: encyclopedia / news / none
	)

	IntentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "onimo",
			Name:      "intents_total",
			Help:      "Classified queries by intent kind",
		},
		[]string{"kind"},
	)

	KeywordStageTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "onimo",
			Name:      "keyword_stage_total",
			Help:      "Keyword extraction results by the stage that produced them",
		},
		[]string{"stage"}, // ranker / entity / fallback
	)

	ResponsesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "onimo",
			Name:      "responses_total",
			Help:      "Pipeline responses by entry point and status",
		},
		[]string{"entry", "status"},
	)
)

var assistantMetricsRegistered bool

// RegisterAssistantMetrics registers source, resolver and pipeline metrics. Must be called once from main.
func RegisterAssistantMetrics() {
	if assistantMetricsRegistered {
		return
	}
	prometheus.MustRegister(SourceRequestsTotal)
	prometheus.MustRegister(SourceRequestDuration)
	prometheus.MustRegister(ResolverOutcomesTotal)
	prometheus.MustRegister(IntentsTotal)
	prometheus.MustRegister(KeywordStageTotal)
	prometheus.MustRegister(ResponsesTotal)
	assistantMetricsRegistered = true
}
