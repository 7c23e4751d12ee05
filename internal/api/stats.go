package api

import (
	"net/http"

	"github.com/lifeforge/lifeforge/internal/app/gamify"
	"github.com/lifeforge/lifeforge/internal/app/streak"
	"github.com/lifeforge/lifeforge/internal/domain"
)

// ─── Stats (/api/stats) ─────────────────────────────────────────────────────
// The engines are pure: these handlers fetch the snapshot, inject the
// reference date, and serialize the result. No derived value is stored.

// handleStreaks returns the streak state for every configured habit,
// or for one habit when ?habit= is given. Unknown habit IDs are fine:
// they read as never logged (current 0, total 0).
func (s *Server) handleStreaks(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)

	logs, err := s.db.LogsByDate(user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	ref := s.now()

	if habitID := r.URL.Query().Get("habit"); habitID != "" {
		writeJSON(w, http.StatusOK, streak.Compute(habitID, logs, ref))
		return
	}

	habits, err := s.db.ListHabits(user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	out := make(map[string]domain.StreakResult, len(habits))
	for _, h := range habits {
		out[h.ID] = streak.Compute(h.ID, logs, ref)
	}
	writeJSON(w, http.StatusOK, out)
}

// handleSummary returns the full derived gamification state: XP,
// level, titles, per-habit streaks, and achievement unlocks. Badge
// checks run here so progress earned anywhere surfaces on read.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)

	snap, err := s.db.Snapshot(user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	stats := gamify.ComputeStats(snap)

	habits, err := s.db.ListHabits(user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	ref := s.now()
	streaks := make(map[string]domain.StreakResult, len(habits))
	best := 0
	for _, h := range habits {
		res := streak.Compute(h.ID, snap.DailyLogs, ref)
		streaks[h.ID] = res
		if res.Current > best {
			best = res.Current
		}
	}

	userStats := deriveUserStats(snap, stats, best)

	newly, err := s.achievements.CheckAndUnlock(user.ID, userStats)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	unlocked, err := s.achievements.ListUnlocked(user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"xp":        stats.XP,
		"levelInfo": stats.LevelInfo,
		"streaks":   streaks,
		"achievements": map[string]interface{}{
			"unlocked":       unlocked,
			"newlyUnlocked":  newly,
			"totalAvailable": s.achievements.TotalCount(),
		},
	})
}

// deriveUserStats flattens the snapshot into the counters badge
// predicates understand.
func deriveUserStats(snap domain.Snapshot, stats domain.Stats, bestStreak int) domain.UserStats {
	us := domain.UserStats{
		XP:         stats.XP,
		Level:      stats.LevelInfo.Level,
		BestStreak: bestStreak,
	}

	for _, log := range snap.DailyLogs {
		us.HabitCompletions += len(log.HabitsCompleted)
		for _, e := range log.DetoxLog {
			if e.Outcome == domain.DetoxSuccess {
				us.DetoxSuccesses++
			}
		}
	}
	for _, item := range snap.Learning {
		if item.Status == domain.StatusInternalized {
			us.TopicsMastered++
		}
	}
	for _, p := range snap.Problems {
		if p.Solved {
			us.ProblemsSolved++
		}
	}
	us.PracticeEntries = len(snap.Practice)

	return us
}
