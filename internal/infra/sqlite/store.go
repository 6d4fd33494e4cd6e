package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/daybreak-app/daybreak/internal/domain"
)

// ─── Profile Repository ─────────────────────────────────────────────────────

// UpsertProfile inserts or updates a user profile.
func (d *DB) UpsertProfile(ctx context.Context, p domain.UserProfile) error {
	_, err := d.db.ExecContext(ctx,
		`INSERT INTO profiles (user_id, sobriety_date, timezone, daily_cost, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
			sobriety_date=excluded.sobriety_date,
			timezone=excluded.timezone,
			daily_cost=excluded.daily_cost,
			updated_at=excluded.updated_at`,
		p.UserID, p.SobrietyDate, p.Timezone, p.DailyCost, time.Now().Unix(),
	)
	return err
}

// FetchUserProfile retrieves a profile by user ID.
// Returns domain.ErrProfileNotFound when none exists.
func (d *DB) FetchUserProfile(ctx context.Context, userID string) (domain.UserProfile, error) {
	var p domain.UserProfile
	err := d.db.QueryRowContext(ctx,
		`SELECT user_id, sobriety_date, timezone, daily_cost
		 FROM profiles WHERE user_id = ?`, userID,
	).Scan(&p.UserID, &p.SobrietyDate, &p.Timezone, &p.DailyCost)
	if err == sql.ErrNoRows {
		return domain.UserProfile{}, domain.ErrProfileNotFound
	}
	if err != nil {
		return domain.UserProfile{}, err
	}
	return p, nil
}

// ListProfiles returns every stored profile, ordered by user ID.
// Used at daemon start to attach rollover sessions.
func (d *DB) ListProfiles(ctx context.Context) ([]domain.UserProfile, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT user_id, sobriety_date, timezone, daily_cost
		 FROM profiles ORDER BY user_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.UserProfile
	for rows.Next() {
		var p domain.UserProfile
		if err := rows.Scan(&p.UserID, &p.SobrietyDate, &p.Timezone, &p.DailyCost); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ─── Check-In Repository ────────────────────────────────────────────────────

// InsertCheckIn appends one check-in record. Records are immutable:
// there is no update path; re-submissions create a new row and the
// engine keeps the most recently captured one.
func (d *DB) InsertCheckIn(ctx context.Context, r domain.CheckInRecord) error {
	_, err := d.db.ExecContext(ctx,
		`INSERT INTO check_ins (id, user_id, calendar_day, kind, mood, craving, anxiety, sleep, overall_day, captured_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.UserID, r.CalendarDay, string(r.Kind),
		nullableInt(r.Metrics.Mood), nullableInt(r.Metrics.Craving),
		nullableInt(r.Metrics.Anxiety), nullableInt(r.Metrics.Sleep),
		nullableInt(r.Metrics.OverallDay),
		r.CapturedAt.Unix(),
	)
	return err
}

// FetchCheckIns returns a user's check-in records. kind filters to one
// check-in slot when non-empty; from/to bound the calendar-day range
// (inclusive) when non-empty.
func (d *DB) FetchCheckIns(ctx context.Context, userID string, kind domain.CheckInKind, from, to string) ([]domain.CheckInRecord, error) {
	query := `SELECT id, user_id, calendar_day, kind, mood, craving, anxiety, sleep, overall_day, captured_at
	          FROM check_ins WHERE user_id = ?`
	args := []interface{}{userID}

	if kind != "" {
		query += ` AND kind = ?`
		args = append(args, string(kind))
	}
	if from != "" {
		query += ` AND calendar_day >= ?`
		args = append(args, from)
	}
	if to != "" {
		query += ` AND calendar_day <= ?`
		args = append(args, to)
	}
	query += ` ORDER BY calendar_day, captured_at`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.CheckInRecord
	for rows.Next() {
		var r domain.CheckInRecord
		var kindStr string
		var mood, craving, anxiety, sleep, overall sql.NullInt64
		var capturedAt int64
		if err := rows.Scan(&r.ID, &r.UserID, &r.CalendarDay, &kindStr,
			&mood, &craving, &anxiety, &sleep, &overall, &capturedAt); err != nil {
			return nil, err
		}
		r.Kind = domain.CheckInKind(kindStr)
		r.Metrics = domain.CheckInMetrics{
			Mood:       intPtr(mood),
			Craving:    intPtr(craving),
			Anxiety:    intPtr(anxiety),
			Sleep:      intPtr(sleep),
			OverallDay: intPtr(overall),
		}
		r.CapturedAt = time.Unix(capturedAt, 0).UTC()
		out = append(out, r)
	}
	return out, rows.Err()
}

// CheckInCount returns the number of stored check-in rows for a user.
func (d *DB) CheckInCount(ctx context.Context, userID string) (int, error) {
	var n int
	err := d.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM check_ins WHERE user_id = ?`, userID).Scan(&n)
	return n, err
}

func nullableInt(p *int) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
