// Package gamify derives XP, levels, and titles from the full history
// of qualifying actions. XP is never stored: recomputing from the same
// snapshot always reproduces the same total.
package gamify

import (
	"math"

	"github.com/lifeforge/lifeforge/internal/domain"
)

// XP awarded per qualifying record. All additive, applied once per
// record — no decay, no negative XP.
const (
	XPHabitComplete     = 15 // per (date, habitId) pair
	XPDetoxSuccess      = 30 // failures award 0
	XPTopicInternalized = 40
	XPTopicInProgress   = 10 // not_started awards 0
	XPProblemSolved     = 50
	XPPracticeEntry     = 20 // regardless of type
)

// Level curve parameters. levelStartXP(L) = base * (L-1)^exponent;
// the level for a given XP is the inverse. Tunable without touching
// title lookup or progress clamping.
const (
	levelBase     = 100.0
	levelExponent = 2.0
)

// Titles are the ordered rank names. Levels past the list share the
// highest title — saturation is intentional.
var Titles = []string{
	"Script Kiddie",          // Lvl 1
	"Hello World",            // Lvl 2
	"Junior Dev",             // Lvl 3
	"Git Pusher",             // Lvl 4
	"Bug Hunter",             // Lvl 5
	"Refactor Ranger",        // Lvl 6
	"Clean Coder",            // Lvl 7
	"System Architect",       // Lvl 8
	"Tech Lead",              // Lvl 9
	"Distinguished Engineer", // Lvl 10+
}

// LevelStartXP returns the cumulative XP at which a level begins.
func LevelStartXP(level int) int {
	if level <= 1 {
		return 0
	}
	return int(levelBase * math.Pow(float64(level-1), levelExponent))
}

// LevelForXP inverts the curve. The returned level always satisfies
// LevelStartXP(level) <= xp < LevelStartXP(level+1); the integer
// adjustment loops absorb float rounding at square boundaries.
func LevelForXP(xp int) int {
	if xp < 0 {
		xp = 0
	}
	level := int(math.Floor(math.Sqrt(float64(xp)/levelBase))) + 1
	for LevelStartXP(level+1) <= xp {
		level++
	}
	for level > 1 && LevelStartXP(level) > xp {
		level--
	}
	return level
}

// TitleForLevel maps a level onto the rank list, saturating at the top.
func TitleForLevel(level int) string {
	idx := level - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(Titles) {
		idx = len(Titles) - 1
	}
	return Titles[idx]
}

// ComputeStats tallies XP across the snapshot and derives level info.
// Total and order-independent: absent optional fields count as zero.
func ComputeStats(s domain.Snapshot) domain.Stats {
	xp := 0

	for _, log := range s.DailyLogs {
		xp += len(log.HabitsCompleted) * XPHabitComplete
		for _, entry := range log.DetoxLog {
			if entry.Outcome == domain.DetoxSuccess {
				xp += XPDetoxSuccess
			}
		}
		// Focus items carry no completion state, so no XP.
	}

	for _, item := range s.Learning {
		switch item.Status {
		case domain.StatusInternalized:
			xp += XPTopicInternalized
		case domain.StatusInProgress:
			xp += XPTopicInProgress
		}
	}

	for _, p := range s.Problems {
		if p.Solved {
			xp += XPProblemSolved
		}
	}

	xp += len(s.Practice) * XPPracticeEntry

	return domain.Stats{XP: xp, LevelInfo: LevelInfoFor(xp)}
}

// LevelInfoFor derives the level, title, and progress band for an XP
// total. Progress is clamped into [0, 100] against float edge cases.
func LevelInfoFor(xp int) domain.LevelInfo {
	level := LevelForXP(xp)
	start := LevelStartXP(level)
	next := LevelStartXP(level + 1)

	progress := 0.0
	if span := next - start; span > 0 {
		progress = float64(xp-start) / float64(span) * 100.0
	}
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}

	return domain.LevelInfo{
		Level:       level,
		CurrentXP:   xp,
		NextLevelXP: next,
		Progress:    progress,
		Title:       TitleForLevel(level),
	}
}
