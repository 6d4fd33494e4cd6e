package progress

import (
	"math"
	"sort"

	"github.com/daybreak-app/daybreak/internal/domain"
)

// MilestoneProgress finds the first milestone whose threshold exceeds
// sobrietyDays and reports linear progress toward it from the previous
// threshold (or from 0 before the first milestone). When every milestone
// has been passed the result is {Achieved: true} with 100% progress,
// a final state, not an error. The catalog is normalized (sorted
// ascending, deduplicated by threshold) before evaluation.
func MilestoneProgress(catalog []domain.Milestone, sobrietyDays int) domain.MilestoneProgress {
	catalog = NormalizeCatalog(catalog)

	prev := 0
	for _, m := range catalog {
		if m.ThresholdDays > sobrietyDays {
			next := m
			span := next.ThresholdDays - prev
			pct := 100
			if span > 0 {
				pct = int(math.Round(float64(sobrietyDays-prev) / float64(span) * 100))
			}
			if pct < 0 {
				pct = 0
			}
			if pct > 100 {
				pct = 100
			}
			return domain.MilestoneProgress{
				NextThreshold:      &next,
				DaysUntil:          next.ThresholdDays - sobrietyDays,
				ProgressPercentage: pct,
			}
		}
		prev = m.ThresholdDays
	}

	return domain.MilestoneProgress{Achieved: true, ProgressPercentage: 100}
}

// NormalizeCatalog returns the catalog sorted ascending by threshold with
// duplicates removed and non-positive thresholds dropped.
func NormalizeCatalog(catalog []domain.Milestone) []domain.Milestone {
	out := make([]domain.Milestone, 0, len(catalog))
	seen := make(map[int]struct{}, len(catalog))
	for _, m := range catalog {
		if m.ThresholdDays < 1 {
			continue
		}
		if _, dup := seen[m.ThresholdDays]; dup {
			continue
		}
		seen[m.ThresholdDays] = struct{}{}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ThresholdDays < out[j].ThresholdDays
	})
	return out
}

// ─── Milestone Catalog ──────────────────────────────────────────────────────

// DefaultMilestones returns the built-in recovery milestone catalog.
// Immutable reference data; thresholds are in sobriety days.
func DefaultMilestones() []domain.Milestone {
	return []domain.Milestone{
		{ThresholdDays: 1, Label: "First Day", Icon: "🌅"},
		{ThresholdDays: 7, Label: "One Week", Icon: "🌱"},
		{ThresholdDays: 14, Label: "Two Weeks", Icon: "🌿"},
		{ThresholdDays: 30, Label: "One Month", Icon: "🌙"},
		{ThresholdDays: 60, Label: "Two Months", Icon: "⭐"},
		{ThresholdDays: 90, Label: "Ninety Days", Icon: "🏅"},
		{ThresholdDays: 180, Label: "Six Months", Icon: "🌞"},
		{ThresholdDays: 365, Label: "One Year", Icon: "🎂"},
		{ThresholdDays: 730, Label: "Two Years", Icon: "🏔️"},
		{ThresholdDays: 1825, Label: "Five Years", Icon: "👑"},
	}
}
