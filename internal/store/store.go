// Package store defines the narrow record-store contract the engine and
// service depend on. The SQLite implementation lives in the sqlite subpackage;
// tests substitute in-memory fakes.
package store

import (
	"context"
	"time"

	"github.com/couchcryptid/water-health-monitor/internal/domain"
)

// SampleInput holds the fields for a new water sample. SampleDate zero means
// "now" (assigned by the store's clock).
type SampleInput struct {
	Location           string                    `json:"location"`
	State              string                    `json:"state"`
	District           string                    `json:"district"`
	PH                 float64                   `json:"ph"`
	Turbidity          float64                   `json:"turbidity"`
	BacterialCount     float64                   `json:"bacterial_count"`
	Temperature        float64                   `json:"temperature"`
	ContaminationLevel domain.ContaminationLevel `json:"contamination_level"`
	SampleDate         time.Time                 `json:"sample_date"`
}

// DiseaseReportInput holds the fields for a new disease report. ReportedAt
// zero means "now".
type DiseaseReportInput struct {
	Disease    string           `json:"disease"`
	Cases      int              `json:"cases"`
	RiskLevel  domain.RiskLevel `json:"risk_level"`
	Location   string           `json:"location"`
	State      string           `json:"state"`
	District   string           `json:"district"`
	ReportedAt time.Time        `json:"reported_at"`
}

// PredictionInput holds the fields for a new prediction record. The store
// assigns the id and created_at.
type PredictionInput struct {
	PH             float64
	Turbidity      float64
	BacterialCount float64
	Temperature    float64
	Location       string
	Risk           string
	Score          float64
}

// Store is the persistence boundary. Implementations assign identifiers and
// creation timestamps, and guarantee that ListNotifications orders by creation
// time descending (ties broken by id descending, i.e. insertion order).
// All consistency guarantees live behind this interface; callers do no locking.
type Store interface {
	CreateSample(ctx context.Context, in SampleInput) (domain.Sample, error)
	CreateDiseaseReport(ctx context.Context, in DiseaseReportInput) (domain.DiseaseReport, error)
	CreatePrediction(ctx context.Context, in PredictionInput) (domain.Prediction, error)

	// CreateNotification persists a spec as an unread notification.
	// A nil userID means broadcast.
	CreateNotification(ctx context.Context, spec domain.NotificationSpec, userID *int64) (domain.Notification, error)

	ListSamples(ctx context.Context, limit int) ([]domain.Sample, error)
	ListDiseaseReports(ctx context.Context, limit int) ([]domain.DiseaseReport, error)
	ListNotifications(ctx context.Context, limit int) ([]domain.Notification, error)

	CreateUser(ctx context.Context, username, password, role string) (domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	Ping(ctx context.Context) error
	Close() error
}
