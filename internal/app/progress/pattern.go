package progress

import (
	"sort"

	"github.com/daybreak-app/daybreak/internal/domain"
)

// Pattern detection tuning. A pattern fires when minHits of the last
// recentReadings available readings cross the cut-off for that metric.
// Days with no reading are skipped entirely; a missing day is never
// treated as a low or high value.
const (
	PatternWindowDays = 31
	recentReadings    = 5
	minHits           = 3
	highCutoff        = 7 // craving, anxiety: concerning when ≥ 7
	lowCutoff         = 3 // mood, sleep: concerning when ≤ 3
)

// patternPriority fixes which pattern is surfaced when several qualify
// at once. Craving outranks everything as the strongest relapse signal,
// then mood, anxiety, sleep.
var patternPriority = []domain.MetricType{
	domain.MetricCraving,
	domain.MetricMood,
	domain.MetricAnxiety,
	domain.MetricSleep,
}

var patternMessages = map[domain.MetricType]string{
	domain.MetricCraving: "Your craving levels have stayed high over the last few check-ins. This is a good moment to reach out to your support network.",
	domain.MetricMood:    "Your mood has been low for several days in a row. Consider talking with someone you trust about how you're feeling.",
	domain.MetricAnxiety: "Your anxiety has been elevated lately. Grounding exercises or a conversation with your counselor may help.",
	domain.MetricSleep:   "Your sleep quality has dipped over the past several days. Poor rest can make everything else harder, so it may be worth addressing.",
}

// DetectPattern scans the trailing PatternWindowDays calendar days ending
// at today for a sustained concerning trend in any of the four metrics.
// Exactly one result is returned, chosen by the fixed priority order, or
// nil when nothing qualifies.
func DetectPattern(records []domain.CheckInRecord, today string) *domain.PatternResult {
	start := AddDays(today, -(PatternWindowDays - 1))
	if start == "" {
		return nil
	}

	// Chronological scan order within the window.
	inWindow := make([]domain.CheckInRecord, 0, len(records))
	for _, r := range records {
		if _, ok := ParseDayKey(r.CalendarDay); !ok {
			continue
		}
		if r.CalendarDay >= start && r.CalendarDay <= today {
			inWindow = append(inWindow, r)
		}
	}
	sort.Slice(inWindow, func(i, j int) bool {
		if inWindow[i].CalendarDay != inWindow[j].CalendarDay {
			return inWindow[i].CalendarDay < inWindow[j].CalendarDay
		}
		return inWindow[i].CapturedAt.Before(inWindow[j].CapturedAt)
	})

	for _, metric := range patternPriority {
		if metricConcerning(inWindow, metric) {
			return &domain.PatternResult{
				MetricType: metric,
				Message:    patternMessages[metric],
			}
		}
	}
	return nil
}

// metricConcerning applies the threshold rule for one metric over the
// last recentReadings available readings.
func metricConcerning(records []domain.CheckInRecord, metric domain.MetricType) bool {
	var readings []int
	for _, r := range records {
		if v, ok := r.Metrics.Get(metric); ok {
			readings = append(readings, v)
		}
	}
	if len(readings) > recentReadings {
		readings = readings[len(readings)-recentReadings:]
	}
	if len(readings) < minHits {
		return false
	}

	hits := 0
	for _, v := range readings {
		switch metric {
		case domain.MetricCraving, domain.MetricAnxiety:
			if v >= highCutoff {
				hits++
			}
		case domain.MetricMood, domain.MetricSleep:
			if v <= lowCutoff {
				hits++
			}
		}
	}
	return hits >= minHits
}
