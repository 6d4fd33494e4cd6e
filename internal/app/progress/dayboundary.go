// Package progress implements the Daybreak temporal progress engine.
// It turns a sparse per-day log of check-in events into derived recovery
// metrics: sobriety-day counts, streaks, compliance rates, milestone
// progress, pattern detection, and savings estimates.
// Every function in this package is pure and idempotent: recomputing
// with the same inputs always yields the same outputs.
package progress

import (
	"time"

	"github.com/daybreak-app/daybreak/internal/domain"
)

// DayKeyLayout is the calendar-day key format ("YYYY-MM-DD").
const DayKeyLayout = "2006-01-02"

// LoadLocation resolves an IANA timezone name, falling back to the
// documented default (and finally UTC) instead of failing. An invalid
// or missing timezone must never break computation.
func LoadLocation(name string) *time.Location {
	if name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	if loc, err := time.LoadLocation(domain.DefaultTimezone); err == nil {
		return loc
	}
	return time.UTC
}

// CalendarDayKey maps an instant to the calendar day it falls on in the
// given timezone.
func CalendarDayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DayKeyLayout)
}

// ParseDayKey parses a "YYYY-MM-DD" key as a UTC-midnight instant.
// Returns ok=false for malformed keys; callers treat those as
// "no data for that day", never as an error.
func ParseDayKey(key string) (time.Time, bool) {
	t, err := time.ParseInLocation(DayKeyLayout, key, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// AddDays shifts a day key by n calendar days. Arithmetic happens on the
// UTC-midnight instant, so it is immune to DST transitions.
func AddDays(key string, n int) string {
	t, ok := ParseDayKey(key)
	if !ok {
		return ""
	}
	return t.AddDate(0, 0, n).Format(DayKeyLayout)
}

// DaysBetween returns the whole-day difference b - a between two day
// keys. Both endpoints are normalized to UTC midnight of their calendar
// day before differencing, which removes any DST artifact: naive local
// subtraction is off by one hour across a transition.
// Returns ok=false when either key is malformed.
func DaysBetween(a, b string) (int, bool) {
	ta, okA := ParseDayKey(a)
	tb, okB := ParseDayKey(b)
	if !okA || !okB {
		return 0, false
	}
	return int(tb.Sub(ta) / (24 * time.Hour)), true
}

// SobrietyDayCount returns the 1-based sobriety day count for a user
// whose sobriety date is a local calendar date ("YYYY-MM-DD") in loc.
// The sobriety date itself counts as day 1, and the result is clamped
// to a minimum of 1 (a future-dated sobriety date is still day 1).
func SobrietyDayCount(sobrietyDate string, now time.Time, loc *time.Location) int {
	today := CalendarDayKey(now, loc)
	diff, ok := DaysBetween(sobrietyDate, today)
	if !ok {
		return 1
	}
	days := diff + 1
	if days < 1 {
		return 1
	}
	return days
}

// UntilNextLocalMidnight computes the delay from now until the next
// 00:00:00 wall-clock time in loc. The delay is derived from the target
// timezone's wall-clock components, so it stays correct across DST
// shifts, but it must be recomputed fresh on every scheduling cycle,
// never reused as a fixed 24h period.
func UntilNextLocalMidnight(now time.Time, loc *time.Location) time.Duration {
	h, m, s := now.In(loc).Clock()
	secs := (23-h)*3600 + (59-m)*60 + (60 - s)
	return time.Duration(secs) * time.Second
}
