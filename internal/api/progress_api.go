package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/daybreak-app/daybreak/internal/app/progress"
	"github.com/daybreak-app/daybreak/internal/domain"
	"github.com/daybreak-app/daybreak/internal/infra/metrics"
)

// ─── Check-Ins ──────────────────────────────────────────────────────────────

type submitCheckInRequest struct {
	UserID      string                `json:"userId"`
	CalendarDay string                `json:"calendarDay,omitempty"`
	Kind        domain.CheckInKind    `json:"kind"`
	Metrics     domain.CheckInMetrics `json:"metrics"`
}

// handleSubmitCheckIn records one check-in. The calendar day defaults to
// today in the user's timezone when the client omits it.
func (s *Server) handleSubmitCheckIn(w http.ResponseWriter, r *http.Request) {
	var req submitCheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	now := time.Now()
	rec := domain.CheckInRecord{
		ID:          uuid.NewString(),
		UserID:      req.UserID,
		CalendarDay: req.CalendarDay,
		Kind:        req.Kind,
		Metrics:     req.Metrics,
		CapturedAt:  now,
	}

	if rec.CalendarDay == "" {
		tz := ""
		if profile, err := s.store.FetchUserProfile(r.Context(), req.UserID); err == nil {
			tz = profile.Timezone
		}
		rec.CalendarDay = progress.CalendarDayKey(now, progress.LoadLocation(tz))
	}

	if err := progress.ValidateCheckIn(rec); err != nil {
		metrics.CheckInsRejected.Inc()
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.store.InsertCheckIn(r.Context(), rec); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	metrics.CheckInsRecorded.WithLabelValues(string(rec.Kind)).Inc()
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleListCheckIns(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, domain.ErrUserIDRequired.Error())
		return
	}

	kind := domain.CheckInKind(r.URL.Query().Get("kind"))
	if kind != "" && !kind.Valid() {
		writeError(w, http.StatusBadRequest, domain.ErrInvalidKind.Error())
		return
	}

	records, err := s.store.FetchCheckIns(r.Context(), userID, kind,
		r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"checkIns": progress.Normalize(records),
	})
}

// ─── Profile ────────────────────────────────────────────────────────────────

func (s *Server) handleUpsertProfile(w http.ResponseWriter, r *http.Request) {
	var p domain.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if p.UserID == "" {
		writeError(w, http.StatusBadRequest, domain.ErrUserIDRequired.Error())
		return
	}
	if _, ok := progress.ParseDayKey(p.SobrietyDate); !ok {
		writeError(w, http.StatusBadRequest, domain.ErrInvalidSobrietyDate.Error())
		return
	}

	if err := s.store.UpsertProfile(r.Context(), p); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// A stored profile gets a live midnight-rollover session. Reattach,
	// not Attach: a timezone change must re-arm the timer for the new
	// zone's midnight instead of leaving the old one ticking.
	if err := s.sessions.Reattach(p.UserID, progress.LoadLocation(p.Timezone)); err == nil {
		metrics.SessionsActive.Set(float64(s.sessions.Active()))
	}

	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, ok := s.fetchProfile(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// ─── Derived Values ─────────────────────────────────────────────────────────

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, ok := s.computeSummary(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleStreaks(w http.ResponseWriter, r *http.Request) {
	summary, ok := s.computeSummary(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"today":   summary.Today,
		"streaks": summary.Streaks,
	})
}

func (s *Server) handleCompliance(w http.ResponseWriter, r *http.Request) {
	summary, ok := s.computeSummary(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, summary.Compliance)
}

func (s *Server) handleMilestones(w http.ResponseWriter, r *http.Request) {
	summary, ok := s.computeSummary(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"sobrietyDays": summary.SobrietyDays,
		"progress":     summary.Milestone,
		"catalog":      s.engine.Milestones(),
	})
}

func (s *Server) handlePattern(w http.ResponseWriter, r *http.Request) {
	summary, ok := s.computeSummary(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"pattern": summary.Pattern,
	})
}

func (s *Server) handleSavings(w http.ResponseWriter, r *http.Request) {
	summary, ok := s.computeSummary(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, summary.Savings)
}

// ─── Helpers ────────────────────────────────────────────────────────────────

func (s *Server) fetchProfile(w http.ResponseWriter, r *http.Request) (domain.UserProfile, bool) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, domain.ErrUserIDRequired.Error())
		return domain.UserProfile{}, false
	}

	profile, err := s.store.FetchUserProfile(r.Context(), userID)
	if errors.Is(err, domain.ErrProfileNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return domain.UserProfile{}, false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return domain.UserProfile{}, false
	}
	return profile, true
}

func (s *Server) computeSummary(w http.ResponseWriter, r *http.Request) (domain.ProgressSummary, bool) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, domain.ErrUserIDRequired.Error())
		return domain.ProgressSummary{}, false
	}

	start := time.Now()
	summary, err := s.engine.Summary(r.Context(), userID, start)
	if errors.Is(err, domain.ErrProfileNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return domain.ProgressSummary{}, false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return domain.ProgressSummary{}, false
	}

	metrics.SummariesComputed.Inc()
	metrics.SummaryLatency.Observe(time.Since(start).Seconds())
	return summary, true
}
