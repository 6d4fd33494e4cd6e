package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/daybreak-app/daybreak/internal/app/progress"
	"github.com/daybreak-app/daybreak/internal/app/rollover"
	"github.com/daybreak-app/daybreak/internal/domain"
	"github.com/daybreak-app/daybreak/internal/health"
	"github.com/daybreak-app/daybreak/internal/infra/sqlite"
)

func newTestServer(t *testing.T) (*httptest.Server, *sqlite.DB) {
	t.Helper()

	dir := t.TempDir()
	db, err := sqlite.Open(dir)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	sessions := rollover.NewSessionManager(func(userID, newDay string) {})
	t.Cleanup(sessions.Close)

	checker := health.NewChecker(db, dir, "UTC")
	srv := NewServer(db, progress.NewEngine(db), sessions, checker)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, db
}

func putJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	buf, _ := json.Marshal(body)
	req, err := http.NewRequest(http.MethodPut, url, bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	return resp
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	buf, _ := json.Marshal(body)
	resp, err := http.Post(url, "application/json", bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode body: %v", err)
	}
}

func seedProfile(t *testing.T, ts *httptest.Server, userID, sobrietyDate string) {
	t.Helper()
	resp := putJSON(t, ts.URL+"/api/profile", domain.UserProfile{
		UserID:       userID,
		SobrietyDate: sobrietyDate,
		Timezone:     "UTC",
		DailyCost:    10,
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("seed profile: status %d", resp.StatusCode)
	}
}

func TestHealth(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}

	var body struct {
		Status string          `json:"status"`
		Checks []health.Status `json:"checks"`
	}
	decode(t, resp, &body)
	if body.Status != "ok" {
		t.Errorf("status = %q, want ok", body.Status)
	}
	if len(body.Checks) != 3 {
		t.Fatalf("checks = %d, want 3", len(body.Checks))
	}
	for _, c := range body.Checks {
		if !c.Healthy {
			t.Errorf("check %s unhealthy: %s", c.Name, c.Error)
		}
	}
}

func TestHealth_Degraded(t *testing.T) {
	dir := t.TempDir()
	db, err := sqlite.Open(dir)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer db.Close()

	sessions := rollover.NewSessionManager(func(userID, newDay string) {})
	defer sessions.Close()

	checker := health.NewChecker(db, dir, "Mars/Olympus_Mons")
	srv := NewServer(db, progress.NewEngine(db), sessions, checker)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", resp.StatusCode)
	}
}

func TestSubmitAndListCheckIns(t *testing.T) {
	ts, _ := newTestServer(t)
	mood := 7

	resp := postJSON(t, ts.URL+"/api/checkins", map[string]interface{}{
		"userId":      "u1",
		"calendarDay": "2024-06-15",
		"kind":        "morning",
		"metrics":     domain.CheckInMetrics{Mood: &mood},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("submit status = %d, want 201", resp.StatusCode)
	}
	var created domain.CheckInRecord
	decode(t, resp, &created)
	if created.ID == "" {
		t.Error("response has no generated ID")
	}
	if created.CalendarDay != "2024-06-15" || created.Kind != domain.KindMorning {
		t.Errorf("created = %+v", created)
	}

	listResp, err := http.Get(ts.URL + "/api/checkins?user_id=u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var listed struct {
		CheckIns []domain.CheckInRecord `json:"checkIns"`
	}
	decode(t, listResp, &listed)
	if len(listed.CheckIns) != 1 {
		t.Fatalf("listed %d check-ins, want 1", len(listed.CheckIns))
	}
	if m := listed.CheckIns[0].Metrics.Mood; m == nil || *m != 7 {
		t.Errorf("mood = %v, want 7", m)
	}
}

func TestSubmitCheckIn_Rejections(t *testing.T) {
	ts, _ := newTestServer(t)

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"unknown kind", map[string]interface{}{
			"userId": "u1", "calendarDay": "2024-06-15", "kind": "midday",
		}},
		{"missing user", map[string]interface{}{
			"calendarDay": "2024-06-15", "kind": "morning",
		}},
		{"malformed day", map[string]interface{}{
			"userId": "u1", "calendarDay": "June 15th", "kind": "morning",
		}},
		{"metric out of range", map[string]interface{}{
			"userId": "u1", "calendarDay": "2024-06-15", "kind": "morning",
			"metrics": map[string]int{"craving": 14},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, ts.URL+"/api/checkins", tt.body)
			resp.Body.Close()
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
		})
	}
}

func TestProfileEndpoints(t *testing.T) {
	ts, _ := newTestServer(t)

	// Missing profile is a 404, missing user_id a 400.
	resp, _ := http.Get(ts.URL + "/api/profile?user_id=nobody")
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown user status = %d, want 404", resp.StatusCode)
	}
	resp, _ = http.Get(ts.URL + "/api/profile")
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("no user_id status = %d, want 400", resp.StatusCode)
	}

	seedProfile(t, ts, "u1", "2024-01-01")

	getResp, err := http.Get(ts.URL + "/api/profile?user_id=u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	var got domain.UserProfile
	decode(t, getResp, &got)
	if got.UserID != "u1" || got.SobrietyDate != "2024-01-01" {
		t.Errorf("profile = %+v", got)
	}

	// Re-upserting with a new timezone succeeds; the rollover session is
	// re-armed for the new zone rather than rejected as a duplicate.
	resp = putJSON(t, ts.URL+"/api/profile", domain.UserProfile{
		UserID:       "u1",
		SobrietyDate: "2024-01-01",
		Timezone:     "Asia/Tokyo",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("timezone change status = %d, want 200", resp.StatusCode)
	}
}

func TestUpsertProfile_BadSobrietyDate(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := putJSON(t, ts.URL+"/api/profile", domain.UserProfile{
		UserID:       "u1",
		SobrietyDate: "01/15/2024",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestSummaryEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)

	// Sobriety started ten days ago in UTC.
	start := time.Now().UTC().AddDate(0, 0, -9).Format("2006-01-02")
	seedProfile(t, ts, "u1", start)

	// Evening check-ins for yesterday and today.
	for _, offset := range []int{-1, 0} {
		day := time.Now().UTC().AddDate(0, 0, offset).Format("2006-01-02")
		resp := postJSON(t, ts.URL+"/api/checkins", map[string]interface{}{
			"userId": "u1", "calendarDay": day, "kind": "evening",
		})
		resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("seed check-in %s: status %d", day, resp.StatusCode)
		}
	}

	resp, err := http.Get(ts.URL + "/api/summary?user_id=u1")
	if err != nil {
		t.Fatalf("get summary: %v", err)
	}
	var summary domain.ProgressSummary
	decode(t, resp, &summary)

	if summary.SobrietyDays != 10 {
		t.Errorf("sobrietyDays = %d, want 10", summary.SobrietyDays)
	}
	if got := summary.Streaks[domain.KindEvening].CurrentStreak; got != 2 {
		t.Errorf("evening streak = %d, want 2", got)
	}
	if summary.Savings.TotalSaved != 100 {
		t.Errorf("totalSaved = %v, want 100", summary.Savings.TotalSaved)
	}
	if summary.Milestone.NextThreshold == nil {
		t.Error("milestone nextThreshold missing")
	}
}

func TestDerivedEndpointsRequireProfile(t *testing.T) {
	ts, _ := newTestServer(t)

	for _, path := range []string{"summary", "streaks", "compliance", "milestones", "pattern", "savings"} {
		resp, err := http.Get(fmt.Sprintf("%s/api/%s?user_id=nobody", ts.URL, path))
		if err != nil {
			t.Fatalf("get %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("/%s status = %d, want 404", path, resp.StatusCode)
		}
	}
}

func TestSavingsEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)
	seedProfile(t, ts, "u1", time.Now().UTC().Format("2006-01-02"))

	resp, err := http.Get(ts.URL + "/api/savings?user_id=u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	var savings domain.SavingsResult
	decode(t, resp, &savings)

	// Day one at $10/day.
	if savings.TotalSaved != 10 {
		t.Errorf("totalSaved = %v, want 10", savings.TotalSaved)
	}
	if savings.PerWeek != 70 {
		t.Errorf("perWeek = %v, want 70", savings.PerWeek)
	}
}

func TestMetricsEndpointGated(t *testing.T) {
	dir := t.TempDir()
	db, err := sqlite.Open(dir)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer db.Close()

	sessions := rollover.NewSessionManager(func(userID, newDay string) {})
	defer sessions.Close()

	srv := NewServer(db, progress.NewEngine(db), sessions, health.NewChecker(db, dir, "UTC"))

	ts := httptest.NewServer(srv.Handler())
	resp, _ := http.Get(ts.URL + "/metrics")
	resp.Body.Close()
	ts.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("disabled metrics status = %d, want 404", resp.StatusCode)
	}

	srv.EnableMetrics()
	ts = httptest.NewServer(srv.Handler())
	defer ts.Close()
	resp, _ = http.Get(ts.URL + "/metrics")
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("enabled metrics status = %d, want 200", resp.StatusCode)
	}
}
