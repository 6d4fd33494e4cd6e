package health

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/daybreak-app/daybreak/internal/infra/sqlite"
)

func openTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestChecker_AllHealthy(t *testing.T) {
	c := NewChecker(openTestDB(t), t.TempDir(), "America/Los_Angeles")
	c.Check(context.Background())

	if !c.IsHealthy() {
		t.Errorf("unhealthy: %+v", c.Statuses())
	}
	statuses := c.Statuses()
	if len(statuses) != 3 {
		t.Fatalf("len = %d, want 3", len(statuses))
	}
	for _, s := range statuses {
		if s.CheckedAt.IsZero() {
			t.Errorf("check %s has zero CheckedAt", s.Name)
		}
	}
}

func TestChecker_BadTimezone(t *testing.T) {
	c := NewChecker(openTestDB(t), t.TempDir(), "Mars/Olympus_Mons")
	c.Check(context.Background())

	if c.IsHealthy() {
		t.Fatal("checker healthy with unknown timezone")
	}
	for _, s := range c.Statuses() {
		if s.Name == "tzdata" && s.Healthy {
			t.Error("tzdata check passed for unknown zone")
		}
	}
}

func TestChecker_DataDirIsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(path, []byte("x"), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}

	c := NewChecker(openTestDB(t), path, "UTC")
	c.Check(context.Background())

	if c.IsHealthy() {
		t.Error("checker healthy with file in place of data dir")
	}
}

func TestChecker_MissingDataDirIsFine(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist-yet")

	c := NewChecker(openTestDB(t), missing, "UTC")
	c.Check(context.Background())

	if !c.IsHealthy() {
		t.Errorf("missing data dir flagged unhealthy: %+v", c.Statuses())
	}
}

func TestChecker_EmptyUntilRun(t *testing.T) {
	c := NewChecker(openTestDB(t), t.TempDir(), "UTC")
	if len(c.Statuses()) != 0 {
		t.Errorf("statuses before first run: %+v", c.Statuses())
	}
	// No results yet still reads as healthy; the daemon treats the first
	// run as the baseline.
	if !c.IsHealthy() {
		t.Error("empty checker reported unhealthy")
	}
}
