// Package risk orchestrates scoring: a trained classifier when one is
// configured, the deterministic rule scorer otherwise, and the persistence of
// every assessment as a Prediction record.
package risk

import (
	"context"
	"log/slog"
	"time"

	"github.com/couchcryptid/water-health-monitor/internal/domain"
	"github.com/couchcryptid/water-health-monitor/internal/observability"
)

// Assessment sources.
const (
	SourceModel = "model"
	SourceRules = "rules"
)

// Assessment is the outcome of scoring one feature vector. Risk uses the rule
// vocabulary (Low/Medium/High) when Source is "rules" and the model's training
// vocabulary when Source is "model"; the two are not comparable across calls.
type Assessment struct {
	Risk   string
	Score  float64
	Source string
}

// Scorer picks between the optional classifier and the rule fallback. The
// classifier is injected at construction and never reloaded; a nil classifier
// means rules-only operation.
type Scorer struct {
	classifier domain.Classifier
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewScorer creates a Scorer. Pass a nil classifier to score by rules only.
func NewScorer(classifier domain.Classifier, logger *slog.Logger, metrics *observability.Metrics) *Scorer {
	return &Scorer{
		classifier: classifier,
		logger:     logger,
		metrics:    metrics,
	}
}

// Score assesses one feature vector. A classifier failure is logged, counted,
// and answered by the rule scorer for this call only; it is never surfaced.
// The rule scorer is total, so Score always produces an Assessment.
func (s *Scorer) Score(ctx context.Context, f domain.FeatureVector) Assessment {
	if s.classifier != nil {
		start := time.Now()
		pred, err := s.classifier.Predict(ctx, f)
		s.metrics.ModelRequestDuration.Observe(time.Since(start).Seconds())

		if err == nil {
			return Assessment{Risk: pred.Label, Score: pred.Confidence, Source: SourceModel}
		}

		s.logger.Warn("model prediction failed, falling back to rules", "error", err)
		s.metrics.ScorerFallbacksTotal.Inc()
	}

	risk, score := domain.ScoreByRules(f)
	return Assessment{Risk: string(risk), Score: score, Source: SourceRules}
}
