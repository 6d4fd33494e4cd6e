package domain

import "time"

// ─── Derived Result Types ───────────────────────────────────────────────────
// Everything below is recomputed on demand from the record log and the
// profile. Nothing here is persisted by the engine.

// StreakRun is one maximal run of consecutive calendar days with a
// qualifying event. StartDay and EndDay are inclusive day keys.
type StreakRun struct {
	StartDay string `json:"startDay"`
	EndDay   string `json:"endDay"`
	Length   int    `json:"length"`
}

// StreakResult holds the streak metrics for one event kind.
// Invariant: 0 ≤ CurrentStreak ≤ LongestStreak.
type StreakResult struct {
	CurrentStreak int         `json:"currentStreak"`
	LongestStreak int         `json:"longestStreak"`
	AllRuns       []StreakRun `json:"allRuns"`
}

// ComplianceResult is a rounded percentage of days in a trailing window
// with at least one qualifying event. Rate is always in [0, 100].
type ComplianceResult struct {
	Rate int `json:"rate"`
}

// ComplianceReport groups the compliance rates the UI tracks.
// Week windows are 7 trailing calendar days, month windows 30.
type ComplianceReport struct {
	CheckInWeek  ComplianceResult `json:"checkInWeek"`
	CheckInMonth ComplianceResult `json:"checkInMonth"`
	MorningMonth ComplianceResult `json:"morningMonth"`
	EveningMonth ComplianceResult `json:"eveningMonth"`
}

// MilestoneProgress reports progress toward the next unmet milestone.
// Achieved means every milestone in the catalog has been passed, in
// which case NextThreshold is nil and DaysUntil is 0.
type MilestoneProgress struct {
	Achieved           bool       `json:"achieved"`
	NextThreshold      *Milestone `json:"nextThreshold,omitempty"`
	DaysUntil          int        `json:"daysUntil"`
	ProgressPercentage int        `json:"progressPercentage"`
}

// PatternResult flags one sustained concerning trend. At most one
// pattern is surfaced at a time; see the detector for the priority order.
type PatternResult struct {
	MetricType MetricType `json:"metricType"`
	Message    string     `json:"message"`
}

// SavingsResult is the money-saved estimate derived from the sobriety
// day count and the profile's daily cost.
type SavingsResult struct {
	DailyCost  float64 `json:"dailyCost"`
	TotalSaved float64 `json:"totalSaved"`
	PerWeek    float64 `json:"perWeek"`
	PerMonth   float64 `json:"perMonth"`
	PerYear    float64 `json:"perYear"`
}

// ProgressSummary is the full derived bundle for one user, produced by
// the engine and consumed as-is by the UI collaborator.
type ProgressSummary struct {
	UserID       string                       `json:"userId"`
	Today        string                       `json:"today"`
	Timezone     string                       `json:"timezone"`
	SobrietyDays int                          `json:"sobrietyDays"`
	Streaks      map[CheckInKind]StreakResult `json:"streaks"`
	Compliance   ComplianceReport             `json:"compliance"`
	Milestone    MilestoneProgress            `json:"milestone"`
	Pattern      *PatternResult               `json:"pattern,omitempty"`
	Savings      SavingsResult                `json:"savings"`
	ComputedAt   time.Time                    `json:"computedAt"`
}
