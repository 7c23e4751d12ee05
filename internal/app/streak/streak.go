// Package streak computes habit streaks over a daily-log snapshot.
// Pure and total: the caller owns the snapshot and injects the
// reference date, so the same inputs always produce the same result.
package streak

import (
	"time"

	"github.com/lifeforge/lifeforge/internal/domain"
)

// LookbackDays bounds the current-streak walk. History beyond this
// window cannot affect the current run under a one-miss grace.
const LookbackDays = 365

// GraceMisses is the number of non-completion days a streak survives.
// The second miss in a lookback always terminates the walk.
const GraceMisses = 1

// Compute walks backward day-by-day from ref's calendar date and
// returns the current streak under the grace policy, plus the lifetime
// completion count over the entire (unbounded) history.
//
// The reference day counts like any other: an undone "today" consumes
// the grace miss, it is not exempt. A log missing for a date, or a log
// whose habit list lacks habitID, reads as not done — never an error.
func Compute(habitID string, logs map[string]domain.DailyLog, ref time.Time) domain.StreakResult {
	var res domain.StreakResult

	day := ref
	misses := 0
	for i := 0; i < LookbackDays; i++ {
		if isDone(habitID, logs, day.Format(domain.DateLayout)) {
			res.Current++
		} else {
			misses++
			if misses > GraceMisses {
				break
			}
		}
		day = day.AddDate(0, 0, -1)
	}

	// Total spans the whole history, not the lookback window.
	for _, log := range logs {
		if log.HabitDone(habitID) {
			res.Total++
		}
	}

	// Longest is an alias of Current for now. A true historical max
	// would scan the full history; the UI only shows the current run.
	res.Longest = res.Current

	return res
}

// isDone reports completion on a date. Habit IDs are weak references:
// dates with no log, or logs without the habit, are simply misses.
func isDone(habitID string, logs map[string]domain.DailyLog, date string) bool {
	log, ok := logs[date]
	if !ok {
		return false
	}
	return log.HabitDone(habitID)
}
