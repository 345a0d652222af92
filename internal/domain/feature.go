package domain

import (
	"fmt"
	"math"
	"strings"
)

// FeatureVector is the numeric tuple consumed by scoring. It carries no
// identity; one is constructed per risk query.
type FeatureVector struct {
	PH             float64 `json:"ph"`
	Turbidity      float64 `json:"turbidity"`
	BacterialCount float64 `json:"bacterial_count"`
	Temperature    float64 `json:"temperature"`
}

// ValidationError reports which feature fields were missing or not finite
// numbers. It never reflects partial state: nothing is persisted when it is
// returned.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid feature vector: %s", strings.Join(e.Fields, ", "))
}

// NewValidationError builds a ValidationError for the named fields.
func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// Validate checks that every feature is a finite float. Out-of-physical-range
// values pass validation; ranges are a scoring concern.
func (f FeatureVector) Validate() error {
	var bad []string
	for _, c := range []struct {
		name  string
		value float64
	}{
		{"ph", f.PH},
		{"turbidity", f.Turbidity},
		{"bacterial_count", f.BacterialCount},
		{"temperature", f.Temperature},
	} {
		if math.IsNaN(c.value) || math.IsInf(c.value, 0) {
			bad = append(bad, c.name)
		}
	}
	if len(bad) > 0 {
		return &ValidationError{Fields: bad}
	}
	return nil
}
