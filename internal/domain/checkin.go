// Package domain defines the core types of the Daybreak progress engine.
// Types here are plain data; all computation lives in internal/app.
// The field names of CheckInRecord and UserProfile are the contract
// boundary with the store and UI collaborators and must stay stable.
package domain

import "time"

// ─── Check-In Types ─────────────────────────────────────────────────────────

// CheckInKind distinguishes the two daily check-in slots.
type CheckInKind string

const (
	KindMorning CheckInKind = "morning"
	KindEvening CheckInKind = "evening"
)

// Valid reports whether k is a known check-in kind.
func (k CheckInKind) Valid() bool {
	return k == KindMorning || k == KindEvening
}

// AllKinds returns the check-in kinds in display order.
func AllKinds() []CheckInKind {
	return []CheckInKind{KindMorning, KindEvening}
}

// MetricType identifies one of the four self-reported wellness scales.
type MetricType string

const (
	MetricMood    MetricType = "mood"
	MetricCraving MetricType = "craving"
	MetricAnxiety MetricType = "anxiety"
	MetricSleep   MetricType = "sleep"
)

// CheckInMetrics holds the optional 0–10 self-report scores of one
// check-in. A nil field means the user did not record that metric,
// never substitute a neutral or zero value for a missing reading.
type CheckInMetrics struct {
	Mood       *int `json:"mood,omitempty"`
	Craving    *int `json:"craving,omitempty"`
	Anxiety    *int `json:"anxiety,omitempty"`
	Sleep      *int `json:"sleep,omitempty"`
	OverallDay *int `json:"overallDay,omitempty"`
}

// Get returns the value for a metric type and whether it was recorded.
func (m CheckInMetrics) Get(metric MetricType) (int, bool) {
	var p *int
	switch metric {
	case MetricMood:
		p = m.Mood
	case MetricCraving:
		p = m.Craving
	case MetricAnxiety:
		p = m.Anxiety
	case MetricSleep:
		p = m.Sleep
	}
	if p == nil {
		return 0, false
	}
	return *p, true
}

// CheckInRecord is one immutable check-in event. CalendarDay is the
// "YYYY-MM-DD" day key local to the user's timezone, assigned at capture
// time. At most one record of a given Kind should exist per user per day;
// the engine tolerates duplicates by keeping the most recently captured.
type CheckInRecord struct {
	ID          string         `json:"id"`
	UserID      string         `json:"userId"`
	CalendarDay string         `json:"calendarDay"`
	Kind        CheckInKind    `json:"kind"`
	Metrics     CheckInMetrics `json:"metrics"`
	CapturedAt  time.Time      `json:"capturedAt"`
}

// ─── User Profile ───────────────────────────────────────────────────────────

// Profile defaults applied when the stored value is absent or invalid.
const (
	DefaultTimezone  = "America/Los_Angeles"
	DefaultDailyCost = 20.0
)

// UserProfile is the small read-only profile the engine consumes.
// SobrietyDate is a local calendar date ("YYYY-MM-DD"), Timezone an IANA
// zone name. Invalid values fall back to the documented defaults rather
// than failing computation.
type UserProfile struct {
	UserID       string  `json:"userId"`
	SobrietyDate string  `json:"sobrietyDate"`
	Timezone     string  `json:"timezone"`
	DailyCost    float64 `json:"dailyCost"`
}

// ─── Milestones ─────────────────────────────────────────────────────────────

// Milestone is a fixed sobriety-day threshold with display metadata.
// Catalogs are ascending and deduplicated by threshold.
type Milestone struct {
	ThresholdDays int    `json:"thresholdDays"`
	Label         string `json:"label"`
	Icon          string `json:"icon"`
}
