package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lifeforge/lifeforge/internal/domain"
	"github.com/lifeforge/lifeforge/internal/infra/metrics"
)

// ─── Daily Logs (/api/daily-logs) ───────────────────────────────────────────

// handleGetDailyLogs returns all logs, or one when ?date= is given.
// A missing date returns null, matching the upsert-on-first-write
// lifecycle: absence is not an error.
func (s *Server) handleGetDailyLogs(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)

	if date := r.URL.Query().Get("date"); date != "" {
		if !validDate(date) {
			writeError(w, http.StatusBadRequest, domain.ErrBadDate.Error())
			return
		}
		log, err := s.db.GetDailyLog(user.ID, date)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, log) // null when absent
		return
	}

	logs, err := s.db.ListDailyLogs(user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

// handleUpsertDailyLog creates or replaces the log for a date.
func (s *Server) handleUpsertDailyLog(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)

	var log domain.DailyLog
	if err := json.NewDecoder(r.Body).Decode(&log); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if !validDate(log.Date) {
		writeError(w, http.StatusBadRequest, domain.ErrBadDate.Error())
		return
	}
	if len(log.FocusItems) > domain.MaxFocusItems {
		writeError(w, http.StatusBadRequest, domain.ErrTooManyFocus.Error())
		return
	}
	for _, entry := range log.DetoxLog {
		if entry.Outcome != domain.DetoxSuccess && entry.Outcome != domain.DetoxFailure {
			writeError(w, http.StatusBadRequest, "detox outcome must be Success or Failure")
			return
		}
	}

	if err := s.db.UpsertDailyLog(user.ID, log); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	metrics.LogUpserts.Inc()
	writeJSON(w, http.StatusOK, log)
}

// ─── Habits (/api/habits) ───────────────────────────────────────────────────

func (s *Server) handleListHabits(w http.ResponseWriter, r *http.Request) {
	habits, err := s.db.ListHabits(userFrom(r).ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, habits)
}

// handleUpsertHabit creates or updates a habit definition. The
// category must belong to the configured set.
func (s *Server) handleUpsertHabit(w http.ResponseWriter, r *http.Request) {
	var h domain.HabitConfig
	if err := json.NewDecoder(r.Body).Decode(&h); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if h.ID == "" || h.Label == "" {
		writeError(w, http.StatusBadRequest, "habit id and label are required")
		return
	}
	if !s.habitCategories[h.Category] {
		writeError(w, http.StatusBadRequest, domain.ErrBadHabitCategory.Error())
		return
	}

	if err := s.db.UpsertHabit(userFrom(r).ID, h); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h)
}

// handleDeleteHabit removes the definition only. Historical logs keep
// the habit's completions; streak totals over old dates still count.
func (s *Server) handleDeleteHabit(w http.ResponseWriter, r *http.Request) {
	err := s.db.DeleteHabit(userFrom(r).ID, chi.URLParam(r, "id"))
	if errors.Is(err, domain.ErrHabitNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// validDate accepts strict YYYY-MM-DD.
func validDate(date string) bool {
	_, err := time.Parse(domain.DateLayout, date)
	return err == nil
}
