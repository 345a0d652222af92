// Package sqlite implements store.Store on a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonboulle/clockwork"
	_ "github.com/mattn/go-sqlite3"

	"github.com/couchcryptid/water-health-monitor/internal/domain"
	"github.com/couchcryptid/water-health-monitor/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS water_samples (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	location TEXT NOT NULL,
	state TEXT NOT NULL,
	district TEXT NOT NULL,
	ph REAL NOT NULL,
	turbidity REAL NOT NULL,
	bacterial_count REAL NOT NULL,
	temperature REAL NOT NULL,
	contamination_level TEXT NOT NULL,
	sample_date DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_samples_date ON water_samples(sample_date);

CREATE TABLE IF NOT EXISTS disease_reports (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	disease TEXT NOT NULL,
	cases INTEGER NOT NULL,
	risk_level TEXT NOT NULL,
	location TEXT NOT NULL,
	state TEXT NOT NULL,
	district TEXT NOT NULL,
	reported_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_reports_date ON disease_reports(reported_at);

CREATE TABLE IF NOT EXISTS predictions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	ph REAL NOT NULL,
	turbidity REAL NOT NULL,
	bacterial_count REAL NOT NULL,
	temperature REAL NOT NULL,
	location TEXT NOT NULL,
	risk TEXT NOT NULL,
	score REAL NOT NULL,
	created_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS notifications (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	message TEXT NOT NULL,
	type TEXT NOT NULL,
	user_id INTEGER,
	read INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_notifications_created ON notifications(created_at);

CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT NOT NULL UNIQUE,
	password TEXT NOT NULL,
	role TEXT NOT NULL
);`

// Store implements store.Store. A single *sql.DB is safe for concurrent use;
// SQLite serializes the writes.
type Store struct {
	db    *sql.DB
	clock clockwork.Clock
}

// New opens (creating if needed) the database at dbPath and bootstraps the
// schema. The clock supplies defaulted timestamps; tests pass a fake.
func New(dbPath string, clock clockwork.Clock) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" && dbPath != ":memory:" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return &Store{db: db, clock: clock}, nil
}

func (s *Store) CreateSample(ctx context.Context, in store.SampleInput) (domain.Sample, error) {
	sampleDate := in.SampleDate
	if sampleDate.IsZero() {
		sampleDate = s.clock.Now().UTC()
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO water_samples (location, state, district, ph, turbidity, bacterial_count, temperature, contamination_level, sample_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.Location, in.State, in.District, in.PH, in.Turbidity, in.BacterialCount, in.Temperature, string(in.ContaminationLevel), sampleDate,
	)
	if err != nil {
		return domain.Sample{}, fmt.Errorf("insert sample: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Sample{}, fmt.Errorf("sample id: %w", err)
	}

	return domain.Sample{
		ID:                 id,
		Location:           in.Location,
		State:              in.State,
		District:           in.District,
		PH:                 in.PH,
		Turbidity:          in.Turbidity,
		BacterialCount:     in.BacterialCount,
		Temperature:        in.Temperature,
		ContaminationLevel: in.ContaminationLevel,
		SampleDate:         sampleDate,
	}, nil
}

func (s *Store) CreateDiseaseReport(ctx context.Context, in store.DiseaseReportInput) (domain.DiseaseReport, error) {
	reportedAt := in.ReportedAt
	if reportedAt.IsZero() {
		reportedAt = s.clock.Now().UTC()
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO disease_reports (disease, cases, risk_level, location, state, district, reported_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		in.Disease, in.Cases, string(in.RiskLevel), in.Location, in.State, in.District, reportedAt,
	)
	if err != nil {
		return domain.DiseaseReport{}, fmt.Errorf("insert disease report: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.DiseaseReport{}, fmt.Errorf("disease report id: %w", err)
	}

	return domain.DiseaseReport{
		ID:         id,
		Disease:    in.Disease,
		Cases:      in.Cases,
		RiskLevel:  in.RiskLevel,
		Location:   in.Location,
		State:      in.State,
		District:   in.District,
		ReportedAt: reportedAt,
	}, nil
}

func (s *Store) CreatePrediction(ctx context.Context, in store.PredictionInput) (domain.Prediction, error) {
	createdAt := s.clock.Now().UTC()

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO predictions (ph, turbidity, bacterial_count, temperature, location, risk, score, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		in.PH, in.Turbidity, in.BacterialCount, in.Temperature, in.Location, in.Risk, in.Score, createdAt,
	)
	if err != nil {
		return domain.Prediction{}, fmt.Errorf("insert prediction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Prediction{}, fmt.Errorf("prediction id: %w", err)
	}

	return domain.Prediction{
		ID:             id,
		PH:             in.PH,
		Turbidity:      in.Turbidity,
		BacterialCount: in.BacterialCount,
		Temperature:    in.Temperature,
		Location:       in.Location,
		Risk:           in.Risk,
		Score:          in.Score,
		CreatedAt:      createdAt,
	}, nil
}

func (s *Store) CreateNotification(ctx context.Context, spec domain.NotificationSpec, userID *int64) (domain.Notification, error) {
	createdAt := s.clock.Now().UTC()

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO notifications (title, message, type, user_id, read, created_at)
		VALUES (?, ?, ?, ?, 0, ?)`,
		spec.Title, spec.Message, string(spec.Type), userID, createdAt,
	)
	if err != nil {
		return domain.Notification{}, fmt.Errorf("insert notification: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Notification{}, fmt.Errorf("notification id: %w", err)
	}

	return domain.Notification{
		ID:        id,
		Title:     spec.Title,
		Message:   spec.Message,
		Type:      spec.Type,
		UserID:    userID,
		Read:      false,
		CreatedAt: createdAt,
	}, nil
}

func (s *Store) ListSamples(ctx context.Context, limit int) ([]domain.Sample, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, location, state, district, ph, turbidity, bacterial_count, temperature, contamination_level, sample_date
		FROM water_samples ORDER BY sample_date DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query samples: %w", err)
	}
	defer rows.Close()

	var samples []domain.Sample
	for rows.Next() {
		var sm domain.Sample
		var level string
		if err := rows.Scan(&sm.ID, &sm.Location, &sm.State, &sm.District, &sm.PH, &sm.Turbidity, &sm.BacterialCount, &sm.Temperature, &level, &sm.SampleDate); err != nil {
			return nil, fmt.Errorf("scan sample: %w", err)
		}
		sm.ContaminationLevel = domain.ContaminationLevel(level)
		samples = append(samples, sm)
	}
	return samples, rows.Err()
}

func (s *Store) ListDiseaseReports(ctx context.Context, limit int) ([]domain.DiseaseReport, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, disease, cases, risk_level, location, state, district, reported_at
		FROM disease_reports ORDER BY reported_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query disease reports: %w", err)
	}
	defer rows.Close()

	var reports []domain.DiseaseReport
	for rows.Next() {
		var r domain.DiseaseReport
		var level string
		if err := rows.Scan(&r.ID, &r.Disease, &r.Cases, &level, &r.Location, &r.State, &r.District, &r.ReportedAt); err != nil {
			return nil, fmt.Errorf("scan disease report: %w", err)
		}
		r.RiskLevel = domain.RiskLevel(level)
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

func (s *Store) ListNotifications(ctx context.Context, limit int) ([]domain.Notification, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, message, type, user_id, read, created_at
		FROM notifications ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []domain.Notification
	for rows.Next() {
		var n domain.Notification
		var ntype string
		var userID sql.NullInt64
		if err := rows.Scan(&n.ID, &n.Title, &n.Message, &ntype, &userID, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		n.Type = domain.NotificationType(ntype)
		if userID.Valid {
			n.UserID = &userID.Int64
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (s *Store) CreateUser(ctx context.Context, username, password, role string) (domain.User, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (username, password, role) VALUES (?, ?, ?)`,
		username, password, role,
	)
	if err != nil {
		return domain.User{}, fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.User{}, fmt.Errorf("user id: %w", err)
	}
	return domain.User{ID: id, Username: username, Password: password, Role: role}, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	var u domain.User
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, password, role FROM users WHERE username = ?`, username,
	).Scan(&u.ID, &u.Username, &u.Password, &u.Role)
	if err != nil {
		return domain.User{}, fmt.Errorf("get user %q: %w", username, err)
	}
	return u, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}
