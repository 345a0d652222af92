// Package seed populates a fresh database with demonstration data: a month of
// water samples across eight monitoring locations, recent disease reports, and
// the default login accounts. Intended for local development and demos only.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/couchcryptid/water-health-monitor/internal/domain"
	"github.com/couchcryptid/water-health-monitor/internal/store"
)

const samplesPerLocation = 5

type place struct {
	location string
	state    string
	district string
}

var places = []place{
	{"Mumbai Central", "Maharashtra", "Mumbai"},
	{"Pune Station", "Maharashtra", "Pune"},
	{"Bangalore Tech Park", "Karnataka", "Bangalore"},
	{"Chennai Marina", "Tamil Nadu", "Chennai"},
	{"Delhi Center", "Delhi", "Delhi"},
	{"Kolkata Port", "West Bengal", "Kolkata"},
	{"Hyderabad IT Hub", "Telangana", "Hyderabad"},
	{"Ahmedabad Center", "Gujarat", "Ahmedabad"},
}

var diseases = []string{"Dengue", "Malaria", "Typhoid", "Cholera", "COVID-19", "Hepatitis A"}

type account struct {
	username string
	password string
	role     string
}

var accounts = []account{
	{"asha", "asha123", "worker"},
	{"officer", "officer123", "officer"},
	{"admin", "admin123", "admin"},
}

// Result counts what a seeding run inserted.
type Result struct {
	Samples int
	Reports int
	Users   int
}

// Run inserts demonstration records through st. Pass a seeded rng for
// reproducible output; now anchors the backdated sample and report dates.
func Run(ctx context.Context, st store.Store, rng *rand.Rand, now time.Time, logger *slog.Logger) (Result, error) {
	var res Result

	for _, p := range places {
		for i := 0; i < samplesPerLocation; i++ {
			in := store.SampleInput{
				Location:       p.location,
				State:          p.state,
				District:       p.district,
				PH:             round1(6.0 + rng.Float64()*2.5),
				Turbidity:      round1(0.5 + rng.Float64()*5.5),
				BacterialCount: float64(rng.Intn(2001)),
				Temperature:    round1(20 + rng.Float64()*20),
				SampleDate:     now.AddDate(0, 0, -rng.Intn(31)),
			}
			in.ContaminationLevel = contaminationFor(in.PH, in.Turbidity, in.BacterialCount)

			if _, err := st.CreateSample(ctx, in); err != nil {
				return res, fmt.Errorf("seeding sample for %s: %w", p.location, err)
			}
			res.Samples++
		}
	}

	for _, p := range places {
		for i := 0; i < 1+rng.Intn(3); i++ {
			cases := 5 + rng.Intn(146)
			in := store.DiseaseReportInput{
				Disease:    diseases[rng.Intn(len(diseases))],
				Cases:      cases,
				RiskLevel:  riskFor(cases),
				Location:   p.location,
				State:      p.state,
				District:   p.district,
				ReportedAt: now.AddDate(0, 0, -rng.Intn(16)),
			}

			if _, err := st.CreateDiseaseReport(ctx, in); err != nil {
				return res, fmt.Errorf("seeding disease report for %s: %w", p.location, err)
			}
			res.Reports++
		}
	}

	for _, a := range accounts {
		if _, err := st.CreateUser(ctx, a.username, a.password, a.role); err != nil {
			return res, fmt.Errorf("seeding user %s: %w", a.username, err)
		}
		res.Users++
	}

	logger.Info("database seeded",
		"samples", res.Samples,
		"reports", res.Reports,
		"users", res.Users,
	)
	return res, nil
}

// contaminationFor labels a sample the way field kits do: any single reading
// past its outer band marks the sample, not an aggregate score.
func contaminationFor(ph, turbidity, bacterialCount float64) domain.ContaminationLevel {
	switch {
	case ph < 6.5 || ph > 8.0 || turbidity > 3 || bacterialCount > 500:
		return domain.ContaminationHighRisk
	case ph < 7.0 || ph > 7.5 || turbidity > 1.5 || bacterialCount > 100:
		return domain.ContaminationModerate
	default:
		return domain.ContaminationSafe
	}
}

func riskFor(cases int) domain.RiskLevel {
	switch {
	case cases > 100:
		return domain.RiskHigh
	case cases > 50:
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
