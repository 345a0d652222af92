package risk

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/couchcryptid/water-health-monitor/internal/domain"
	"github.com/couchcryptid/water-health-monitor/internal/observability"
	"github.com/couchcryptid/water-health-monitor/internal/store"
)

// Engine validates, scores, and persists risk queries.
type Engine struct {
	scorer  *Scorer
	store   store.Store
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewEngine creates an Engine around the given scorer and store.
func NewEngine(scorer *Scorer, st store.Store, logger *slog.Logger, metrics *observability.Metrics) *Engine {
	return &Engine{
		scorer:  scorer,
		store:   st,
		logger:  logger,
		metrics: metrics,
	}
}

// Assess scores one feature vector and persists the result. A validation
// failure surfaces a *domain.ValidationError and writes nothing. Once scoring
// succeeds a Prediction is always written; only a store failure can prevent
// that, and it propagates unmodified.
//
// The score is rounded to two decimals for persistence and display only;
// category thresholds were applied to the raw value inside the scorer.
func (e *Engine) Assess(ctx context.Context, f domain.FeatureVector, location string) (domain.Prediction, error) {
	if err := f.Validate(); err != nil {
		return domain.Prediction{}, err
	}

	a := e.scorer.Score(ctx, f)
	e.metrics.AssessmentsTotal.WithLabelValues(a.Source, a.Risk).Inc()

	pred, err := e.store.CreatePrediction(ctx, store.PredictionInput{
		PH:             f.PH,
		Turbidity:      f.Turbidity,
		BacterialCount: f.BacterialCount,
		Temperature:    f.Temperature,
		Location:       location,
		Risk:           a.Risk,
		Score:          roundScore(a.Score),
	})
	if err != nil {
		return domain.Prediction{}, fmt.Errorf("persist prediction: %w", err)
	}

	e.logger.Debug("risk assessed",
		"prediction_id", pred.ID,
		"risk", pred.Risk,
		"score", pred.Score,
		"scorer", a.Source,
		"location", location,
	)
	return pred, nil
}

// roundScore rounds to two decimal places.
func roundScore(s float64) float64 {
	return math.Round(s*100) / 100
}
