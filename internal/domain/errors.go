package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure: no infrastructure dependency.

var (
	// Profile errors
	ErrProfileNotFound     = errors.New("user profile not found")
	ErrUserIDRequired      = errors.New("user id is required")
	ErrInvalidSobrietyDate = errors.New("sobriety date must be YYYY-MM-DD")

	// Check-in errors
	ErrInvalidKind      = errors.New("check-in kind must be morning or evening")
	ErrInvalidDayKey    = errors.New("calendar day must be YYYY-MM-DD")
	ErrMetricOutOfRange = errors.New("metric values must be between 0 and 10")

	// Milestone catalog errors
	ErrEmptyCatalog = errors.New("catalog has no MILESTONE directives")

	// Rollover session errors
	ErrSessionExists   = errors.New("rollover session already attached for user")
	ErrSessionNotFound = errors.New("no rollover session attached for user")
)
