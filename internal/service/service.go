// Package service exposes the operations consumed by the HTTP layer: risk
// queries, record ingestion with synchronous alert evaluation, and
// notification listing.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/water-health-monitor/internal/domain"
	"github.com/couchcryptid/water-health-monitor/internal/observability"
	"github.com/couchcryptid/water-health-monitor/internal/risk"
	"github.com/couchcryptid/water-health-monitor/internal/store"
)

// NotificationPublisher pushes created notifications onto the event stream.
type NotificationPublisher interface {
	PublishNotification(ctx context.Context, n domain.Notification) error
}

// Service wires the store, risk engine, alert rules, and optional publisher.
// It is stateless; every call operates only on its inputs and the store.
type Service struct {
	store       store.Store
	engine      *risk.Engine
	publisher   NotificationPublisher // nil when the event stream is disabled
	logger      *slog.Logger
	metrics     *observability.Metrics
	notifyLimit int
}

// New creates a Service. publisher may be nil.
func New(st store.Store, engine *risk.Engine, publisher NotificationPublisher, logger *slog.Logger, metrics *observability.Metrics, notifyLimit int) *Service {
	return &Service{
		store:       st,
		engine:      engine,
		publisher:   publisher,
		logger:      logger,
		metrics:     metrics,
		notifyLimit: notifyLimit,
	}
}

// AssessRisk classifies one measurement and records the prediction.
func (s *Service) AssessRisk(ctx context.Context, ph, turbidity, bacterialCount, temperature float64, location string) (domain.Prediction, error) {
	f := domain.FeatureVector{
		PH:             ph,
		Turbidity:      turbidity,
		BacterialCount: bacterialCount,
		Temperature:    temperature,
	}
	return s.engine.Assess(ctx, f, location)
}

// CreateSample persists a water sample and evaluates its alerts before
// returning. The sample stays committed even if a later notification insert
// fails; in that case the error reports the partial alert state.
func (s *Service) CreateSample(ctx context.Context, in store.SampleInput) (domain.Sample, []domain.Notification, error) {
	sample, err := s.store.CreateSample(ctx, in)
	if err != nil {
		return domain.Sample{}, nil, fmt.Errorf("create sample: %w", err)
	}
	s.metrics.RecordsIngested.WithLabelValues("sample").Inc()

	notifications, err := s.createNotifications(ctx, domain.EvaluateSample(sample))
	if err != nil {
		return sample, notifications, err
	}

	s.logger.Info("sample ingested",
		"sample_id", sample.ID,
		"location", sample.Location,
		"alerts", len(notifications),
	)
	return sample, notifications, nil
}

// CreateDiseaseReport persists a disease report and evaluates its alerts
// before returning.
func (s *Service) CreateDiseaseReport(ctx context.Context, in store.DiseaseReportInput) (domain.DiseaseReport, []domain.Notification, error) {
	report, err := s.store.CreateDiseaseReport(ctx, in)
	if err != nil {
		return domain.DiseaseReport{}, nil, fmt.Errorf("create disease report: %w", err)
	}
	s.metrics.RecordsIngested.WithLabelValues("disease_report").Inc()

	notifications, err := s.createNotifications(ctx, domain.EvaluateDiseaseReport(report))
	if err != nil {
		return report, notifications, err
	}

	s.logger.Info("disease report ingested",
		"report_id", report.ID,
		"disease", report.Disease,
		"risk_level", report.RiskLevel,
		"alerts", len(notifications),
	)
	return report, notifications, nil
}

// createNotifications persists the specs in order as broadcasts and publishes
// each to the event stream. A store failure stops the sequence and surfaces;
// a publish failure is logged and counted but never fails the operation.
func (s *Service) createNotifications(ctx context.Context, specs []domain.NotificationSpec) ([]domain.Notification, error) {
	var notifications []domain.Notification
	for _, spec := range specs {
		n, err := s.store.CreateNotification(ctx, spec, nil)
		if err != nil {
			return notifications, fmt.Errorf("create notification %q: %w", spec.Title, err)
		}
		s.metrics.NotificationsCreated.WithLabelValues(string(n.Type)).Inc()
		notifications = append(notifications, n)

		if s.publisher == nil {
			continue
		}
		if err := s.publisher.PublishNotification(ctx, n); err != nil {
			s.logger.Warn("notification publish failed", "notification_id", n.ID, "error", err)
			s.metrics.PublishFailures.Inc()
		}
	}
	return notifications, nil
}

// Notifications lists persisted notifications newest first. A non-positive
// limit uses the configured default.
func (s *Service) Notifications(ctx context.Context, limit int) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = s.notifyLimit
	}
	return s.store.ListNotifications(ctx, limit)
}

// Samples lists persisted samples newest first.
func (s *Service) Samples(ctx context.Context, limit int) ([]domain.Sample, error) {
	if limit <= 0 {
		limit = s.notifyLimit
	}
	return s.store.ListSamples(ctx, limit)
}

// DiseaseReports lists persisted disease reports newest first.
func (s *Service) DiseaseReports(ctx context.Context, limit int) ([]domain.DiseaseReport, error) {
	if limit <= 0 {
		limit = s.notifyLimit
	}
	return s.store.ListDiseaseReports(ctx, limit)
}

// CheckReadiness reports whether the backing store is reachable.
func (s *Service) CheckReadiness(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return fmt.Errorf("store unreachable: %w", err)
	}
	return nil
}
