// Gamification types: streaks, XP, levels, achievements.
// XP is always derived — recomputing from the full history must
// reproduce the same total. Nothing here is a stored counter.
package domain

import "time"

// ─── Streak Types ───────────────────────────────────────────────────────────

// StreakResult is the computed streak state for one habit.
// Longest currently mirrors Current: a true historical maximum would
// need a full-history scan and the UI only surfaces the current run.
type StreakResult struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
	Total   int `json:"totalCompletions"`
}

// ─── Level / XP Types ───────────────────────────────────────────────────────

// LevelInfo describes the user's position on the level curve.
type LevelInfo struct {
	Level       int     `json:"level"`
	CurrentXP   int     `json:"currentXP"`
	NextLevelXP int     `json:"nextLevelXP"`
	Progress    float64 `json:"progress"` // 0–100
	Title       string  `json:"title"`
}

// Stats is the full derived gamification state.
type Stats struct {
	XP        int       `json:"xp"`
	LevelInfo LevelInfo `json:"levelInfo"`
}

// Snapshot is a read-only view of everything that bears XP.
// Engines only read it; the caller owns the data.
type Snapshot struct {
	DailyLogs map[string]DailyLog
	Learning  []LearningItem
	Problems  []ProblemItem
	Practice  []PracticeEntry
}

// ─── Achievement Types ──────────────────────────────────────────────────────

// AchievementCategory groups achievements by theme.
type AchievementCategory string

const (
	CatGettingStarted AchievementCategory = "getting_started"
	CatStreaks        AchievementCategory = "streaks"
	CatLearning       AchievementCategory = "learning"
	CatDetox          AchievementCategory = "detox"
	CatMastery        AchievementCategory = "mastery"
)

// UserStats is the snapshot badge predicates are evaluated against.
type UserStats struct {
	XP               int
	Level            int
	BestStreak       int // best current streak across all habits
	HabitCompletions int
	DetoxSuccesses   int
	ProblemsSolved   int
	TopicsMastered   int
	PracticeEntries  int
}

// AchievementDef defines a single achievement's requirements.
type AchievementDef struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	Category  AchievementCategory  `json:"category"`
	Icon      string               `json:"icon"`
	Predicate func(UserStats) bool `json:"-"`
}

// UnlockedAchievement records when an achievement was earned.
type UnlockedAchievement struct {
	ID         string    `json:"id"`
	UnlockedAt time.Time `json:"unlocked_at"`
}
