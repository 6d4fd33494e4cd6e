package progress

import (
	"context"
	"fmt"
	"time"

	"github.com/daybreak-app/daybreak/internal/domain"
)

// Store is the document-store collaborator the engine reads from.
// An empty kind matches all kinds; empty from/to leave the range open.
type Store interface {
	FetchCheckIns(ctx context.Context, userID string, kind domain.CheckInKind, from, to string) ([]domain.CheckInRecord, error)
	FetchUserProfile(ctx context.Context, userID string) (domain.UserProfile, error)
}

// Engine binds a Store to the pure aggregation functions and produces
// the derived bundle the UI consumes. It holds no mutable state of its
// own; every call recomputes from the record log and profile.
type Engine struct {
	store      Store
	milestones []domain.Milestone
}

// NewEngine creates an engine over the given store using the built-in
// milestone catalog.
func NewEngine(store Store) *Engine {
	return NewEngineWithCatalog(store, DefaultMilestones())
}

// NewEngineWithCatalog creates an engine with a custom milestone catalog.
func NewEngineWithCatalog(store Store, catalog []domain.Milestone) *Engine {
	return &Engine{store: store, milestones: NormalizeCatalog(catalog)}
}

// Milestones returns the engine's milestone catalog.
func (e *Engine) Milestones() []domain.Milestone {
	return e.milestones
}

// Summary fetches the user's profile and check-in log and computes the
// full derived bundle as of now. Store failures are returned to the
// caller to surface; the computation itself cannot fail.
func (e *Engine) Summary(ctx context.Context, userID string, now time.Time) (domain.ProgressSummary, error) {
	profile, err := e.store.FetchUserProfile(ctx, userID)
	if err != nil {
		return domain.ProgressSummary{}, fmt.Errorf("fetch profile: %w", err)
	}

	records, err := e.store.FetchCheckIns(ctx, userID, "", "", "")
	if err != nil {
		return domain.ProgressSummary{}, fmt.Errorf("fetch check-ins: %w", err)
	}

	return ComputeSummary(profile, records, e.milestones, now), nil
}

// ComputeSummary derives every progress metric from already-fetched
// data. Pure: safe to call repeatedly, safe with an empty record list
// (all results are defined zero values), and tolerant of malformed
// records, which are normalized away at the boundary.
func ComputeSummary(profile domain.UserProfile, records []domain.CheckInRecord, catalog []domain.Milestone, now time.Time) domain.ProgressSummary {
	loc := LoadLocation(profile.Timezone)
	today := CalendarDayKey(now, loc)
	normalized := Normalize(records)

	sobrietyDays := SobrietyDayCount(profile.SobrietyDate, now, loc)

	anyDays := DayKeys(normalized, "")
	morningDays := DayKeys(normalized, domain.KindMorning)
	eveningDays := DayKeys(normalized, domain.KindEvening)

	streaks := make(map[domain.CheckInKind]domain.StreakResult, 2)
	streaks[domain.KindMorning] = CalculateStreak(morningDays, today)
	streaks[domain.KindEvening] = CalculateStreak(eveningDays, today)

	return domain.ProgressSummary{
		UserID:       profile.UserID,
		Today:        today,
		Timezone:     loc.String(),
		SobrietyDays: sobrietyDays,
		Streaks:      streaks,
		Compliance: domain.ComplianceReport{
			CheckInWeek:  ComplianceRate(anyDays, today, WindowWeek),
			CheckInMonth: ComplianceRate(anyDays, today, WindowMonth),
			MorningMonth: ComplianceRate(morningDays, today, WindowMonth),
			EveningMonth: ComplianceRate(eveningDays, today, WindowMonth),
		},
		Milestone:  MilestoneProgress(catalog, sobrietyDays),
		Pattern:    DetectPattern(normalized, today),
		Savings:    ComputeSavings(sobrietyDays, profile.DailyCost),
		ComputedAt: now,
	}
}
