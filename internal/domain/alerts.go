package domain

import "fmt"

// Alert thresholds for water samples. The pH band is deliberately tighter on
// the high side than the scoring band: 8.5 is already alert-worthy for
// drinking water even though the rule scorer only treats >9.0 as critical.
const (
	alertPHMin        = 6.0
	alertPHMax        = 8.5
	alertTurbidityNTU = 5.0
)

// EvaluateSample applies the water-quality alert rules to a persisted sample
// and returns the notifications to create, in rule order: pH, turbidity,
// contamination. The rules are independent; a sample can trigger all three.
// Pure function of its input, so re-evaluating the same sample yields the
// same specs.
func EvaluateSample(s Sample) []NotificationSpec {
	var specs []NotificationSpec

	if s.PH < alertPHMin || s.PH > alertPHMax {
		specs = append(specs, NotificationSpec{
			Title:   "Critical pH Level",
			Message: fmt.Sprintf("pH level %.1f detected at %s", s.PH, s.Location),
			Type:    NotificationWater,
		})
	}

	if s.Turbidity > alertTurbidityNTU {
		specs = append(specs, NotificationSpec{
			Title:   "High Turbidity Alert",
			Message: fmt.Sprintf("Turbidity %.1f NTU at %s", s.Turbidity, s.Location),
			Type:    NotificationWater,
		})
	}

	if s.ContaminationLevel == ContaminationHighRisk {
		specs = append(specs, NotificationSpec{
			Title:   "Contamination Alert",
			Message: fmt.Sprintf("High risk contamination detected at %s", s.Location),
			Type:    NotificationWater,
		})
	}

	return specs
}

// EvaluateDiseaseReport returns an outbreak notification for High or Critical
// reports and nothing otherwise.
func EvaluateDiseaseReport(r DiseaseReport) []NotificationSpec {
	if r.RiskLevel != RiskHigh && r.RiskLevel != RiskCritical {
		return nil
	}
	return []NotificationSpec{{
		Title:   fmt.Sprintf("%s Outbreak Alert", r.Disease),
		Message: fmt.Sprintf("%d cases reported in %s", r.Cases, r.District),
		Type:    NotificationDisease,
	}}
}
