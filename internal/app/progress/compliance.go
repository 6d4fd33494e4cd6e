package progress

import (
	"math"

	"github.com/daybreak-app/daybreak/internal/domain"
)

// Trailing window sizes the product tracks, in calendar days.
const (
	WindowWeek  = 7
	WindowMonth = 30
)

// ComplianceRate computes the percentage of days in the trailing window
// of `window` calendar days ending at today (inclusive) that have at
// least one qualifying event. The rate is rounded to the nearest integer
// and is 0, not an error, when the window is empty or window ≤ 0.
func ComplianceRate(days []string, today string, window int) domain.ComplianceResult {
	if window <= 0 {
		return domain.ComplianceResult{}
	}
	start := AddDays(today, -(window - 1))
	if start == "" {
		return domain.ComplianceResult{}
	}

	qualifying := make(map[string]struct{}, window)
	for _, d := range days {
		if _, ok := ParseDayKey(d); !ok {
			continue
		}
		if d >= start && d <= today {
			qualifying[d] = struct{}{}
		}
	}

	rate := int(math.Round(float64(len(qualifying)) / float64(window) * 100))
	if rate > 100 {
		rate = 100
	}
	return domain.ComplianceResult{Rate: rate}
}
