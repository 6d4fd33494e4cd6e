package progress

import (
	"sort"

	"github.com/daybreak-app/daybreak/internal/domain"
)

// CalculateStreak computes streak metrics from the set of calendar-day
// keys on which a qualifying event occurred. today is the current day
// key in the user's timezone.
//
// The current streak keeps a one-day grace period: a streak that reached
// yesterday has not broken yet while today is still in progress. It only
// counts as broken once both today and yesterday are empty.
func CalculateStreak(days []string, today string) domain.StreakResult {
	present := make(map[string]struct{}, len(days))
	for _, d := range days {
		if _, ok := ParseDayKey(d); ok {
			present[d] = struct{}{}
		}
	}

	result := domain.StreakResult{AllRuns: []domain.StreakRun{}}
	if len(present) == 0 {
		return result
	}

	sorted := make([]string, 0, len(present))
	for d := range present {
		sorted = append(sorted, d)
	}
	sort.Strings(sorted)

	// Group into maximal runs of consecutive calendar days. A gap of
	// exactly one day continues a run; anything larger starts a new one.
	run := domain.StreakRun{StartDay: sorted[0], EndDay: sorted[0], Length: 1}
	for _, d := range sorted[1:] {
		if gap, ok := DaysBetween(run.EndDay, d); ok && gap == 1 {
			run.EndDay = d
			run.Length++
			continue
		}
		result.AllRuns = append(result.AllRuns, run)
		run = domain.StreakRun{StartDay: d, EndDay: d, Length: 1}
	}
	result.AllRuns = append(result.AllRuns, run)

	for _, r := range result.AllRuns {
		if r.Length > result.LongestStreak {
			result.LongestStreak = r.Length
		}
	}

	// Current streak: walk backward from today, or from yesterday if
	// today has no record yet (grace period).
	anchor := today
	if _, ok := present[anchor]; !ok {
		anchor = AddDays(today, -1)
		if _, ok := present[anchor]; !ok {
			return result
		}
	}
	for {
		if _, ok := present[anchor]; !ok {
			break
		}
		result.CurrentStreak++
		anchor = AddDays(anchor, -1)
	}

	return result
}
