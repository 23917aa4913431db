// Package metrics provides Prometheus metrics for the scoring service.
package metrics

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for evaluations.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Manager owns the scoring metrics and the registry they live on.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	evaluations           *prometheus.CounterVec
	evaluationLatency     *prometheus.HistogramVec
	llmParseFailures      prometheus.Counter
	unresolvedProfessions *prometheus.CounterVec
	enrichmentFallbacks   prometheus.Counter
	resultCacheOperations *prometheus.CounterVec
}

// NewManager creates a metrics manager on a fresh registry unless one is supplied.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "careerquiz",
		subsystem:        "scoring",
		histogramBuckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
		m.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.evaluations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "evaluations_total",
		Help:      "Total number of evaluations by engine and outcome",
	}, []string{"engine", "outcome"})

	m.evaluationLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "evaluation_duration_seconds",
		Help:      "Evaluation latency in seconds by engine",
		Buckets:   m.histogramBuckets,
	}, []string{"engine"})

	m.llmParseFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "llm_parse_failures_total",
		Help:      "LLM replies that could not be parsed as the expected JSON",
	})

	m.unresolvedProfessions = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "unresolved_professions_total",
		Help:      "Recommendations whose profession reference is not in the catalog",
	}, []string{"source"})

	m.enrichmentFallbacks = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "explanation_fallbacks_total",
		Help:      "Recommendations that received the fallback explanation text",
	})

	m.resultCacheOperations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "result_cache_operations_total",
		Help:      "Result cache operations by operation and outcome",
	}, []string{"operation", "outcome"})
}

// Registry returns the registry backing this manager.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveEvaluation records one finished evaluation.
func (m *Manager) ObserveEvaluation(engine string, err error, elapsed time.Duration) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	m.evaluations.WithLabelValues(engine, outcome).Inc()
	m.evaluationLatency.WithLabelValues(engine).Observe(elapsed.Seconds())
}

func (m *Manager) IncLLMParseFailure() {
	m.llmParseFailures.Inc()
}

func (m *Manager) IncUnresolvedProfession(source string) {
	m.unresolvedProfessions.WithLabelValues(source).Inc()
}

func (m *Manager) IncExplanationFallback() {
	m.enrichmentFallbacks.Inc()
}

func (m *Manager) IncResultCache(operation, outcome string) {
	m.resultCacheOperations.WithLabelValues(operation, outcome).Inc()
}

// Handler exposes the registry in the Prometheus text format as a fiber handler.
func (m *Manager) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
