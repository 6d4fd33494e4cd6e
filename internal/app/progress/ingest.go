package progress

import (
	"sort"

	"github.com/daybreak-app/daybreak/internal/domain"
)

// Normalize validates and deduplicates loosely-shaped store records at
// the ingestion boundary. Records with a malformed calendar day or an
// unknown kind are dropped; out-of-range metric values are cleared
// rather than propagated. When duplicates exist for one (day, kind)
// pair the most recently captured record wins; the store is not
// trusted to enforce uniqueness. The result is sorted by day, then kind.
func Normalize(records []domain.CheckInRecord) []domain.CheckInRecord {
	type slot struct {
		day  string
		kind domain.CheckInKind
	}

	latest := make(map[slot]domain.CheckInRecord, len(records))
	for _, r := range records {
		if _, ok := ParseDayKey(r.CalendarDay); !ok {
			continue
		}
		if !r.Kind.Valid() {
			continue
		}
		r.Metrics = clampMetrics(r.Metrics)

		s := slot{day: r.CalendarDay, kind: r.Kind}
		if prev, ok := latest[s]; ok && !r.CapturedAt.After(prev.CapturedAt) {
			continue
		}
		latest[s] = r
	}

	out := make([]domain.CheckInRecord, 0, len(latest))
	for _, r := range latest {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CalendarDay != out[j].CalendarDay {
			return out[i].CalendarDay < out[j].CalendarDay
		}
		return out[i].Kind < out[j].Kind
	})
	return out
}

// DayKeys extracts the distinct calendar days on which a record of the
// given kind exists. An empty kind matches any record.
func DayKeys(records []domain.CheckInRecord, kind domain.CheckInKind) []string {
	seen := make(map[string]struct{}, len(records))
	var days []string
	for _, r := range records {
		if kind != "" && r.Kind != kind {
			continue
		}
		if _, dup := seen[r.CalendarDay]; dup {
			continue
		}
		seen[r.CalendarDay] = struct{}{}
		days = append(days, r.CalendarDay)
	}
	sort.Strings(days)
	return days
}

// ValidateCheckIn checks a record at the submission boundary, where a
// malformed record is rejected with an error instead of silently
// dropped.
func ValidateCheckIn(r domain.CheckInRecord) error {
	if r.UserID == "" {
		return domain.ErrUserIDRequired
	}
	if _, ok := ParseDayKey(r.CalendarDay); !ok {
		return domain.ErrInvalidDayKey
	}
	if !r.Kind.Valid() {
		return domain.ErrInvalidKind
	}
	for _, p := range []*int{r.Metrics.Mood, r.Metrics.Craving, r.Metrics.Anxiety, r.Metrics.Sleep, r.Metrics.OverallDay} {
		if p != nil && (*p < 0 || *p > 10) {
			return domain.ErrMetricOutOfRange
		}
	}
	return nil
}

// clampMetrics clears metric values outside the 0–10 scale. A bad value
// becomes "not recorded" rather than a fake reading.
func clampMetrics(m domain.CheckInMetrics) domain.CheckInMetrics {
	clear := func(p *int) *int {
		if p != nil && (*p < 0 || *p > 10) {
			return nil
		}
		return p
	}
	m.Mood = clear(m.Mood)
	m.Craving = clear(m.Craving)
	m.Anxiety = clear(m.Anxiety)
	m.Sleep = clear(m.Sleep)
	m.OverallDay = clear(m.OverallDay)
	return m
}
