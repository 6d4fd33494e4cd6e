package progress

import (
	"math"

	"github.com/daybreak-app/daybreak/internal/domain"
)

// ComputeSavings estimates money saved from the sobriety day count and
// the profile's daily spending before recovery. A zero daily cost falls
// back to the documented default; negative values are treated as zero.
func ComputeSavings(sobrietyDays int, dailyCost float64) domain.SavingsResult {
	if dailyCost == 0 {
		dailyCost = domain.DefaultDailyCost
	}
	if dailyCost < 0 {
		dailyCost = 0
	}
	if sobrietyDays < 0 {
		sobrietyDays = 0
	}

	return domain.SavingsResult{
		DailyCost:  dailyCost,
		TotalSaved: round2(float64(sobrietyDays) * dailyCost),
		PerWeek:    round2(dailyCost * 7),
		PerMonth:   round2(dailyCost * 30),
		PerYear:    round2(dailyCost * 365),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
