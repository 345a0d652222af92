package service_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/water-health-monitor/internal/domain"
	"github.com/couchcryptid/water-health-monitor/internal/observability"
	"github.com/couchcryptid/water-health-monitor/internal/risk"
	"github.com/couchcryptid/water-health-monitor/internal/service"
	"github.com/couchcryptid/water-health-monitor/internal/store"
)

// memStore is an in-memory store.Store with failure injection.
type memStore struct {
	samples       []domain.Sample
	reports       []domain.DiseaseReport
	predictions   []domain.Prediction
	notifications []domain.Notification

	failNotificationAfter int // fail the n-th CreateNotification call (1-based); 0 = never
	notificationCalls     int
	pingErr               error

	now time.Time
}

func newMemStore() *memStore {
	return &memStore{now: time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)}
}

func (m *memStore) tick() time.Time {
	m.now = m.now.Add(time.Second)
	return m.now
}

func (m *memStore) CreateSample(_ context.Context, in store.SampleInput) (domain.Sample, error) {
	date := in.SampleDate
	if date.IsZero() {
		date = m.tick()
	}
	s := domain.Sample{
		ID: int64(len(m.samples) + 1), Location: in.Location, State: in.State, District: in.District,
		PH: in.PH, Turbidity: in.Turbidity, BacterialCount: in.BacterialCount, Temperature: in.Temperature,
		ContaminationLevel: in.ContaminationLevel, SampleDate: date,
	}
	m.samples = append(m.samples, s)
	return s, nil
}

func (m *memStore) CreateDiseaseReport(_ context.Context, in store.DiseaseReportInput) (domain.DiseaseReport, error) {
	at := in.ReportedAt
	if at.IsZero() {
		at = m.tick()
	}
	r := domain.DiseaseReport{
		ID: int64(len(m.reports) + 1), Disease: in.Disease, Cases: in.Cases, RiskLevel: in.RiskLevel,
		Location: in.Location, State: in.State, District: in.District, ReportedAt: at,
	}
	m.reports = append(m.reports, r)
	return r, nil
}

func (m *memStore) CreatePrediction(_ context.Context, in store.PredictionInput) (domain.Prediction, error) {
	p := domain.Prediction{
		ID: int64(len(m.predictions) + 1), PH: in.PH, Turbidity: in.Turbidity,
		BacterialCount: in.BacterialCount, Temperature: in.Temperature,
		Location: in.Location, Risk: in.Risk, Score: in.Score, CreatedAt: m.tick(),
	}
	m.predictions = append(m.predictions, p)
	return p, nil
}

func (m *memStore) CreateNotification(_ context.Context, spec domain.NotificationSpec, userID *int64) (domain.Notification, error) {
	m.notificationCalls++
	if m.failNotificationAfter > 0 && m.notificationCalls >= m.failNotificationAfter {
		return domain.Notification{}, errors.New("constraint violation")
	}
	n := domain.Notification{
		ID: int64(len(m.notifications) + 1), Title: spec.Title, Message: spec.Message,
		Type: spec.Type, UserID: userID, CreatedAt: m.tick(),
	}
	m.notifications = append(m.notifications, n)
	return n, nil
}

func (m *memStore) ListSamples(context.Context, int) ([]domain.Sample, error) { return m.samples, nil }
func (m *memStore) ListDiseaseReports(context.Context, int) ([]domain.DiseaseReport, error) {
	return m.reports, nil
}
func (m *memStore) ListNotifications(_ context.Context, limit int) ([]domain.Notification, error) {
	out := make([]domain.Notification, 0, limit)
	for i := len(m.notifications) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.notifications[i])
	}
	return out, nil
}
func (m *memStore) CreateUser(context.Context, string, string, string) (domain.User, error) {
	return domain.User{}, nil
}
func (m *memStore) GetUserByUsername(context.Context, string) (domain.User, error) {
	return domain.User{}, errors.New("not found")
}
func (m *memStore) Ping(context.Context) error { return m.pingErr }
func (m *memStore) Close() error               { return nil }

// recordingPublisher captures published notifications.
type recordingPublisher struct {
	published []domain.Notification
	err       error
}

func (p *recordingPublisher) PublishNotification(_ context.Context, n domain.Notification) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, n)
	return nil
}

func newService(st store.Store, pub service.NotificationPublisher) *service.Service {
	metrics := observability.NewMetricsForTesting()
	logger := slog.Default()
	engine := risk.NewEngine(risk.NewScorer(nil, logger, metrics), st, logger, metrics)
	return service.New(st, engine, pub, logger, metrics, 50)
}

func cleanSampleInput() store.SampleInput {
	return store.SampleInput{
		Location: "Test Well A", State: "Maharashtra", District: "Mumbai",
		PH: 7.2, Turbidity: 1.0, BacterialCount: 50, Temperature: 25,
		ContaminationLevel: domain.ContaminationSafe,
	}
}

func TestAssessRisk(t *testing.T) {
	st := newMemStore()
	svc := newService(st, nil)

	pred, err := svc.AssessRisk(context.Background(), 5.2, 1.0, 100, 25.0, "Test Well A")
	require.NoError(t, err)

	assert.Equal(t, "Low", pred.Risk)
	assert.Equal(t, 0.35, pred.Score)
	assert.Len(t, st.predictions, 1)
}

func TestCreateSample(t *testing.T) {
	ctx := context.Background()

	t.Run("clean sample creates no notifications", func(t *testing.T) {
		st := newMemStore()
		svc := newService(st, nil)

		sample, notifications, err := svc.CreateSample(ctx, cleanSampleInput())
		require.NoError(t, err)
		assert.Positive(t, sample.ID)
		assert.Empty(t, notifications)
	})

	t.Run("low pH sample creates exactly the pH alert", func(t *testing.T) {
		st := newMemStore()
		pub := &recordingPublisher{}
		svc := newService(st, pub)

		in := cleanSampleInput()
		in.PH = 5.2
		in.Turbidity = 2.0
		in.BacterialCount = 100

		_, notifications, err := svc.CreateSample(ctx, in)
		require.NoError(t, err)
		require.Len(t, notifications, 1)
		assert.Equal(t, "Critical pH Level", notifications[0].Title)
		assert.Equal(t, domain.NotificationWater, notifications[0].Type)

		// Every stored notification also reaches the stream.
		require.Len(t, pub.published, 1)
		assert.Equal(t, notifications[0].ID, pub.published[0].ID)
	})

	t.Run("worst sample creates three alerts in rule order", func(t *testing.T) {
		st := newMemStore()
		svc := newService(st, nil)

		in := cleanSampleInput()
		in.PH = 5.8
		in.Turbidity = 7.2
		in.BacterialCount = 800
		in.Temperature = 30
		in.ContaminationLevel = domain.ContaminationHighRisk

		_, notifications, err := svc.CreateSample(ctx, in)
		require.NoError(t, err)
		require.Len(t, notifications, 3)
		assert.Equal(t, "Critical pH Level", notifications[0].Title)
		assert.Equal(t, "High Turbidity Alert", notifications[1].Title)
		assert.Equal(t, "Contamination Alert", notifications[2].Title)

		// created_at non-decreasing in insertion order
		assert.False(t, notifications[1].CreatedAt.Before(notifications[0].CreatedAt))
		assert.False(t, notifications[2].CreatedAt.Before(notifications[1].CreatedAt))
	})

	t.Run("notification store failure keeps the sample and earlier alerts", func(t *testing.T) {
		st := newMemStore()
		st.failNotificationAfter = 2
		svc := newService(st, nil)

		in := cleanSampleInput()
		in.PH = 5.8
		in.Turbidity = 7.2
		in.ContaminationLevel = domain.ContaminationHighRisk

		sample, notifications, err := svc.CreateSample(ctx, in)
		require.Error(t, err)
		assert.Positive(t, sample.ID, "sample must stay committed")
		assert.Len(t, st.samples, 1)
		assert.Len(t, notifications, 1, "alerts before the failure survive")
	})

	t.Run("publish failure does not fail the operation", func(t *testing.T) {
		st := newMemStore()
		pub := &recordingPublisher{err: errors.New("broker down")}
		svc := newService(st, pub)

		in := cleanSampleInput()
		in.Turbidity = 6.0

		_, notifications, err := svc.CreateSample(ctx, in)
		require.NoError(t, err)
		assert.Len(t, notifications, 1)
	})
}

func TestCreateDiseaseReport(t *testing.T) {
	ctx := context.Background()

	report := store.DiseaseReportInput{
		Disease: "Cholera", Cases: 120, RiskLevel: domain.RiskCritical,
		Location: "Chennai Marina", State: "Tamil Nadu", District: "Chennai",
	}

	t.Run("critical report creates one outbreak alert", func(t *testing.T) {
		st := newMemStore()
		svc := newService(st, nil)

		_, notifications, err := svc.CreateDiseaseReport(ctx, report)
		require.NoError(t, err)
		require.Len(t, notifications, 1)
		assert.Equal(t, "Cholera Outbreak Alert", notifications[0].Title)
		assert.Equal(t, "120 cases reported in Chennai", notifications[0].Message)
	})

	t.Run("medium report creates none", func(t *testing.T) {
		st := newMemStore()
		svc := newService(st, nil)

		in := report
		in.RiskLevel = domain.RiskMedium

		_, notifications, err := svc.CreateDiseaseReport(ctx, in)
		require.NoError(t, err)
		assert.Empty(t, notifications)
		assert.Len(t, st.reports, 1)
	})
}

func TestNotifications_DefaultLimit(t *testing.T) {
	st := newMemStore()
	svc := newService(st, nil)

	for i := 0; i < 3; i++ {
		_, err := st.CreateNotification(context.Background(), domain.NotificationSpec{Title: "n", Type: domain.NotificationSystem}, nil)
		require.NoError(t, err)
	}

	list, err := svc.Notifications(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestCheckReadiness(t *testing.T) {
	st := newMemStore()
	svc := newService(st, nil)
	assert.NoError(t, svc.CheckReadiness(context.Background()))

	st.pingErr = errors.New("locked")
	err := svc.CheckReadiness(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store unreachable")
}
