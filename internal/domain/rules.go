package domain

import "math"

// Risk points per axis. Each axis contributes independently and the sum is
// normalized against maxRulePoints, so the score always lands in [0, 1].
const (
	phCriticalPoints = 30 // outside [6.0, 9.0]
	phMarginalPoints = 15 // outside [6.5, 8.5]

	turbidityHighPoints     = 25 // > 5 NTU
	turbidityElevatedPoints = 15 // > 2 NTU
	turbidityTracePoints    = 5  // > 1 NTU

	temperatureHighPoints = 20 // > 35 °C
	temperatureWarmPoints = 10 // > 30 °C

	bacteriaSeverePoints   = 25 // > 1000 CFU
	bacteriaElevatedPoints = 15 // > 100 CFU
	bacteriaTracePoints    = 5  // > 10 CFU

	maxRulePoints = 100
)

// Category thresholds on the normalized score, checked in descending order so
// a tie at a boundary goes to the higher category.
const (
	highRiskThreshold   = 0.7
	mediumRiskThreshold = 0.4
)

// ScoreByRules is the deterministic fallback scorer: an additive point model
// over the four axes, normalized to [0, 1] and mapped to Low/Medium/High.
// It is pure and total over finite inputs; out-of-physical-range values simply
// score as maximally risky on their axis.
func ScoreByRules(f FeatureVector) (RiskLevel, float64) {
	points := 0

	// pH (ideal 6.5-8.5)
	switch {
	case f.PH < 6.0 || f.PH > 9.0:
		points += phCriticalPoints
	case f.PH < 6.5 || f.PH > 8.5:
		points += phMarginalPoints
	}

	// Turbidity (ideal < 1 NTU)
	switch {
	case f.Turbidity > 5:
		points += turbidityHighPoints
	case f.Turbidity > 2:
		points += turbidityElevatedPoints
	case f.Turbidity > 1:
		points += turbidityTracePoints
	}

	switch {
	case f.Temperature > 35:
		points += temperatureHighPoints
	case f.Temperature > 30:
		points += temperatureWarmPoints
	}

	switch {
	case f.BacterialCount > 1000:
		points += bacteriaSeverePoints
	case f.BacterialCount > 100:
		points += bacteriaElevatedPoints
	case f.BacterialCount > 10:
		points += bacteriaTracePoints
	}

	score := math.Min(float64(points)/maxRulePoints, 1.0)

	switch {
	case score >= highRiskThreshold:
		return RiskHigh, score
	case score >= mediumRiskThreshold:
		return RiskMedium, score
	default:
		return RiskLow, score
	}
}
