package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the risk engine
// and alert evaluator.
type Metrics struct {
	AssessmentsTotal     *prometheus.CounterVec // labels: scorer={model,rules}, risk
	ScorerFallbacksTotal prometheus.Counter
	ModelRequestDuration prometheus.Histogram

	RecordsIngested      *prometheus.CounterVec // labels: kind={sample,disease_report}
	NotificationsCreated *prometheus.CounterVec // labels: type={water,disease,system}
	PublishFailures      prometheus.Counter
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		AssessmentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "water_monitor",
			Name:      "assessments_total",
			Help:      "Risk assessments by scorer path and resulting label.",
		}, []string{"scorer", "risk"}),
		ScorerFallbacksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "water_monitor",
			Name:      "scorer_fallbacks_total",
			Help:      "Assessments where the model failed and the rule scorer answered.",
		}),
		ModelRequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "water_monitor",
			Name:      "model_request_duration_seconds",
			Help:      "Inference service request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		RecordsIngested: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "water_monitor",
			Name:      "records_ingested_total",
			Help:      "Samples and disease reports persisted.",
		}, []string{"kind"}),
		NotificationsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "water_monitor",
			Name:      "notifications_created_total",
			Help:      "Notifications created by the alert evaluator, by type.",
		}, []string{"type"}),
		PublishFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "water_monitor",
			Name:      "notification_publish_failures_total",
			Help:      "Notification events that could not be published to the stream.",
		}),
	}

	prometheus.MustRegister(
		m.AssessmentsTotal,
		m.ScorerFallbacksTotal,
		m.ModelRequestDuration,
		m.RecordsIngested,
		m.NotificationsCreated,
		m.PublishFailures,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		AssessmentsTotal:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "water_monitor", Name: "assessments_total"}, []string{"scorer", "risk"}),
		ScorerFallbacksTotal: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "water_monitor", Name: "scorer_fallbacks_total"}),
		ModelRequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "water_monitor", Name: "model_request_duration_seconds"}),
		RecordsIngested:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "water_monitor", Name: "records_ingested_total"}, []string{"kind"}),
		NotificationsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "water_monitor", Name: "notifications_created_total"}, []string{"type"}),
		PublishFailures:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "water_monitor", Name: "notification_publish_failures_total"}),
	}
}
