// Package sqlite provides the SQLite-backed store collaborator for
// Daybreak. Uses WAL mode for concurrent reads and crash-safe writes.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// DB wraps a SQLite connection with WAL mode and migrations.
type DB struct {
	db *sql.DB
}

// Open creates or opens the SQLite database at dir/daybreak.db.
// Enables WAL mode, foreign keys, and 5-second busy timeout.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "daybreak.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// Connection pool settings for SQLite
	db.SetMaxOpenConns(1) // SQLite is single-writer
	db.SetMaxIdleConns(1)

	d := &DB{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return d, nil
}

// Close cleanly shuts down the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping checks database connectivity.
func (d *DB) Ping() error {
	return d.db.Ping()
}

// migrate runs idempotent schema migrations.
func (d *DB) migrate() error {
	migrations := []string{
		// User profiles: the small read-mostly record the engine consumes.
		`CREATE TABLE IF NOT EXISTS profiles (
			user_id       TEXT PRIMARY KEY,
			sobriety_date TEXT NOT NULL,
			timezone      TEXT NOT NULL DEFAULT '',
			daily_cost    REAL NOT NULL DEFAULT 0,
			updated_at    INTEGER NOT NULL
		)`,

		// Append-only check-in log. No UNIQUE(user_id, calendar_day, kind)
		// constraint: the production document store does not enforce the
		// one-per-slot invariant either, and the engine must dedupe.
		`CREATE TABLE IF NOT EXISTS check_ins (
			id           TEXT PRIMARY KEY,
			user_id      TEXT NOT NULL,
			calendar_day TEXT NOT NULL,
			kind         TEXT NOT NULL,
			mood         INTEGER,
			craving      INTEGER,
			anxiety      INTEGER,
			sleep        INTEGER,
			overall_day  INTEGER,
			captured_at  INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_checkins_user_day ON check_ins(user_id, calendar_day)`,
		`CREATE INDEX IF NOT EXISTS idx_checkins_captured ON check_ins(captured_at)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}
