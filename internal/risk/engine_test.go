package risk_test

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/water-health-monitor/internal/domain"
	"github.com/couchcryptid/water-health-monitor/internal/observability"
	"github.com/couchcryptid/water-health-monitor/internal/risk"
	"github.com/couchcryptid/water-health-monitor/internal/store"
)

// mockStore records created predictions and can be told to fail.
type mockStore struct {
	predictions []domain.Prediction
	failCreate  error
}

func (m *mockStore) CreatePrediction(_ context.Context, in store.PredictionInput) (domain.Prediction, error) {
	if m.failCreate != nil {
		return domain.Prediction{}, m.failCreate
	}
	pred := domain.Prediction{
		ID:             int64(len(m.predictions) + 1),
		PH:             in.PH,
		Turbidity:      in.Turbidity,
		BacterialCount: in.BacterialCount,
		Temperature:    in.Temperature,
		Location:       in.Location,
		Risk:           in.Risk,
		Score:          in.Score,
		CreatedAt:      time.Now().UTC(),
	}
	m.predictions = append(m.predictions, pred)
	return pred, nil
}

func (m *mockStore) CreateSample(context.Context, store.SampleInput) (domain.Sample, error) {
	panic("not used")
}
func (m *mockStore) CreateDiseaseReport(context.Context, store.DiseaseReportInput) (domain.DiseaseReport, error) {
	panic("not used")
}
func (m *mockStore) CreateNotification(context.Context, domain.NotificationSpec, *int64) (domain.Notification, error) {
	panic("not used")
}
func (m *mockStore) ListSamples(context.Context, int) ([]domain.Sample, error)               { return nil, nil }
func (m *mockStore) ListDiseaseReports(context.Context, int) ([]domain.DiseaseReport, error) {
	return nil, nil
}
func (m *mockStore) ListNotifications(context.Context, int) ([]domain.Notification, error) {
	return nil, nil
}
func (m *mockStore) CreateUser(context.Context, string, string, string) (domain.User, error) {
	panic("not used")
}
func (m *mockStore) GetUserByUsername(context.Context, string) (domain.User, error) {
	panic("not used")
}
func (m *mockStore) Ping(context.Context) error { return nil }
func (m *mockStore) Close() error               { return nil }

func newEngine(st store.Store, clf domain.Classifier) *risk.Engine {
	metrics := observability.NewMetricsForTesting()
	logger := slog.Default()
	return risk.NewEngine(risk.NewScorer(clf, logger, metrics), st, logger, metrics)
}

func TestEngineAssess(t *testing.T) {
	ctx := context.Background()

	t.Run("persists and returns the prediction", func(t *testing.T) {
		st := &mockStore{}
		e := newEngine(st, nil)

		pred, err := e.Assess(ctx, scorerInput, "Test Well A")
		require.NoError(t, err)

		assert.Equal(t, int64(1), pred.ID)
		assert.Equal(t, "Low", pred.Risk)
		assert.Equal(t, 0.35, pred.Score)
		assert.Equal(t, "Test Well A", pred.Location)
		require.Len(t, st.predictions, 1)
	})

	t.Run("rounds the persisted score to two decimals", func(t *testing.T) {
		st := &mockStore{}
		clf := &mockClassifier{pred: domain.ModelPrediction{Label: "Safe", Confidence: 0.93478}}
		e := newEngine(st, clf)

		pred, err := e.Assess(ctx, scorerInput, "loc")
		require.NoError(t, err)
		assert.Equal(t, 0.93, pred.Score)
		assert.Equal(t, "Safe", pred.Risk)
	})

	t.Run("validation failure writes nothing", func(t *testing.T) {
		st := &mockStore{}
		e := newEngine(st, nil)

		bad := scorerInput
		bad.PH = math.NaN()

		_, err := e.Assess(ctx, bad, "loc")
		require.Error(t, err)

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, []string{"ph"}, verr.Fields)
		assert.Empty(t, st.predictions)
	})

	t.Run("store failure propagates", func(t *testing.T) {
		st := &mockStore{failCreate: errors.New("disk full")}
		e := newEngine(st, nil)

		_, err := e.Assess(ctx, scorerInput, "loc")
		require.Error(t, err)
		assert.ErrorContains(t, err, "disk full")
	})
}
