package metrics

import "github.com/prometheus/client_golang/prometheus"

// Translation Prometheus metrics.
var (
	TranslationRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "onimo",
			Name:      "translation_requests_total",
			Help:      "Total number of translation requests",
		},
		[]string{"provider", "target", "status"},
	)

	TranslationRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "onimo",
			Name:      "translation_request_duration_seconds",
			Help:      "Translation request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"provider"},
	)

	TranslationFallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "onimo",
			Name:      "translation_fallbacks_total",
			Help:      "Translations that returned the untranslated input",
		},
		[]string{"target"},
	)

	TranslationCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "onimo",
			Name:      "translation_cache_total",
			Help:      "Translation cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var translationMetricsRegistered bool

// RegisterTranslationMetrics registers Prometheus translation metrics. Must be called once from main.
func RegisterTranslationMetrics() {
	if translationMetricsRegistered {
		return
	}
	prometheus.MustRegister(TranslationRequestsTotal)
	prometheus.MustRegister(TranslationRequestDuration)
	prometheus.MustRegister(TranslationFallbacksTotal)
	prometheus.MustRegister(TranslationCacheTotal)
	translationMetricsRegistered = true
}
