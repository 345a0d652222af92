package domain

import "time"

// ContaminationLevel is the coarse contamination label assigned to a water
// sample at ingestion time.
type ContaminationLevel string

const (
	ContaminationSafe     ContaminationLevel = "Safe"
	ContaminationModerate ContaminationLevel = "Moderate"
	ContaminationHighRisk ContaminationLevel = "High Risk"
)

// Valid reports whether the level is one of the known labels.
func (c ContaminationLevel) Valid() bool {
	switch c {
	case ContaminationSafe, ContaminationModerate, ContaminationHighRisk:
		return true
	}
	return false
}

// RiskLevel grades a disease report. The rule scorer reuses the Low/Medium/High
// subset for its output vocabulary.
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskMedium   RiskLevel = "Medium"
	RiskHigh     RiskLevel = "High"
	RiskCritical RiskLevel = "Critical"
)

// Valid reports whether the level is one of the known labels.
func (r RiskLevel) Valid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh, RiskCritical:
		return true
	}
	return false
}

// NotificationType categorizes a notification for filtering on the read side.
type NotificationType string

const (
	NotificationWater   NotificationType = "water"
	NotificationDisease NotificationType = "disease"
	NotificationSystem  NotificationType = "system"
)

// Sample is a persisted water-quality measurement. Immutable once created.
type Sample struct {
	ID                 int64              `json:"id"`
	Location           string             `json:"location"`
	State              string             `json:"state"`
	District           string             `json:"district"`
	PH                 float64            `json:"ph"`
	Turbidity          float64            `json:"turbidity"`
	BacterialCount     float64            `json:"bacterial_count"`
	Temperature        float64            `json:"temperature"`
	ContaminationLevel ContaminationLevel `json:"contamination_level"`
	SampleDate         time.Time          `json:"sample_date"`
}

// DiseaseReport is a persisted disease-case report. Immutable once created.
type DiseaseReport struct {
	ID         int64     `json:"id"`
	Disease    string    `json:"disease"`
	Cases      int       `json:"cases"`
	RiskLevel  RiskLevel `json:"risk_level"`
	Location   string    `json:"location"`
	State      string    `json:"state"`
	District   string    `json:"district"`
	ReportedAt time.Time `json:"reported_at"`
}

// Prediction is the append-only record of one risk query. Risk holds the
// scorer's label verbatim: Low/Medium/High from the rule scorer, or the
// trained model's own vocabulary (Safe/Unsafe for the shipped trainer).
type Prediction struct {
	ID             int64     `json:"id"`
	PH             float64   `json:"ph"`
	Turbidity      float64   `json:"turbidity"`
	BacterialCount float64   `json:"bacterial_count"`
	Temperature    float64   `json:"temperature"`
	Location       string    `json:"location"`
	Risk           string    `json:"risk"`
	Score          float64   `json:"score"`
	CreatedAt      time.Time `json:"created_at"`
}

// Notification is a persisted alert. UserID is nil for broadcasts. Only the
// Read flag is ever mutated after creation, and not by this service.
type Notification struct {
	ID        int64            `json:"id"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	UserID    *int64           `json:"user_id,omitempty"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}

// NotificationSpec describes a notification to be created. It has no identity
// until the store persists it.
type NotificationSpec struct {
	Title   string           `json:"title"`
	Message string           `json:"message"`
	Type    NotificationType `json:"type"`
}

// User is a demo account seeded for the frontend.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
	Role     string `json:"role"`
}
