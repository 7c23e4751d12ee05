package gamify

import (
	"time"

	"github.com/lifeforge/lifeforge/internal/domain"
	"github.com/lifeforge/lifeforge/internal/infra/sqlite"
)

// AchievementService manages the badge catalog. Each badge is a
// stat-based predicate checked against a derived UserStats snapshot;
// unlocks are idempotent and persisted per user.
type AchievementService struct {
	db          *sqlite.DB
	definitions []domain.AchievementDef
}

// NewAchievementService creates an achievement service with the full catalog.
func NewAchievementService(db *sqlite.DB) *AchievementService {
	return &AchievementService{
		db:          db,
		definitions: AllAchievements(),
	}
}

// CheckAndUnlock evaluates all badges against current stats and
// returns newly unlocked ones. Already-unlocked badges are skipped.
func (a *AchievementService) CheckAndUnlock(userID string, stats domain.UserStats) ([]domain.AchievementDef, error) {
	var newlyUnlocked []domain.AchievementDef

	for _, def := range a.definitions {
		unlocked, err := a.db.IsAchievementUnlocked(userID, def.ID)
		if err != nil {
			return nil, err
		}
		if unlocked {
			continue
		}

		if def.Predicate != nil && def.Predicate(stats) {
			isNew, err := a.db.UnlockAchievement(userID, def.ID, time.Now())
			if err != nil {
				return nil, err
			}
			if isNew {
				newlyUnlocked = append(newlyUnlocked, def)
			}
		}
	}

	return newlyUnlocked, nil
}

// ListUnlocked returns all badges the user has earned.
func (a *AchievementService) ListUnlocked(userID string) ([]domain.UnlockedAchievement, error) {
	return a.db.ListUnlockedAchievements(userID)
}

// TotalCount returns the number of defined badges.
func (a *AchievementService) TotalCount() int {
	return len(a.definitions)
}

// Definitions returns the full catalog (for display).
func (a *AchievementService) Definitions() []domain.AchievementDef {
	return a.definitions
}

// ─── Achievement Definitions ────────────────────────────────────────────────
// 20 badges across 5 categories. Each has a stat-based predicate.

// AllAchievements returns the full badge catalog.
func AllAchievements() []domain.AchievementDef {
	return []domain.AchievementDef{
		// ── Getting Started (4) ────────────────────────────────────────
		{
			ID: "first_habit", Name: "First Rep", Category: domain.CatGettingStarted,
			Icon: "🎯",
			Predicate: func(s domain.UserStats) bool { return s.HabitCompletions > 0 },
		},
		{
			ID: "first_practice", Name: "Ice Breaker", Category: domain.CatGettingStarted,
			Icon: "🗣️",
			Predicate: func(s domain.UserStats) bool { return s.PracticeEntries > 0 },
		},
		{
			ID: "first_solve", Name: "One Down", Category: domain.CatGettingStarted,
			Icon: "✅",
			Predicate: func(s domain.UserStats) bool { return s.ProblemsSolved > 0 },
		},
		{
			ID: "level_2", Name: "Hello World", Category: domain.CatGettingStarted,
			Icon: "🌱",
			Predicate: func(s domain.UserStats) bool { return s.Level >= 2 },
		},

		// ── Streaks (4) ────────────────────────────────────────────────
		{
			ID: "streak_7", Name: "Week Warrior", Category: domain.CatStreaks,
			Icon: "🔥",
			Predicate: func(s domain.UserStats) bool { return s.BestStreak >= 7 },
		},
		{
			ID: "streak_30", Name: "Monthly Machine", Category: domain.CatStreaks,
			Icon: "💪",
			Predicate: func(s domain.UserStats) bool { return s.BestStreak >= 30 },
		},
		{
			ID: "streak_100", Name: "Centurion", Category: domain.CatStreaks,
			Icon: "🏛️",
			Predicate: func(s domain.UserStats) bool { return s.BestStreak >= 100 },
		},
		{
			ID: "streak_365", Name: "Year of Power", Category: domain.CatStreaks,
			Icon: "⭐",
			Predicate: func(s domain.UserStats) bool { return s.BestStreak >= 365 },
		},

		// ── Learning (4) ───────────────────────────────────────────────
		{
			ID: "topics_5", Name: "Pattern Spotter", Category: domain.CatLearning,
			Icon: "📚",
			Predicate: func(s domain.UserStats) bool { return s.TopicsMastered >= 5 },
		},
		{
			ID: "topics_20", Name: "Systems Thinker", Category: domain.CatLearning,
			Icon: "🧠",
			Predicate: func(s domain.UserStats) bool { return s.TopicsMastered >= 20 },
		},
		{
			ID: "problems_25", Name: "Grinder", Category: domain.CatLearning,
			Icon: "⚙️",
			Predicate: func(s domain.UserStats) bool { return s.ProblemsSolved >= 25 },
		},
		{
			ID: "problems_100", Name: "Problem Slayer", Category: domain.CatLearning,
			Icon: "⚔️",
			Predicate: func(s domain.UserStats) bool { return s.ProblemsSolved >= 100 },
		},

		// ── Detox (4) ──────────────────────────────────────────────────
		{
			ID: "detox_1", Name: "Urge Surfer", Category: domain.CatDetox,
			Icon: "🌊",
			Predicate: func(s domain.UserStats) bool { return s.DetoxSuccesses >= 1 },
		},
		{
			ID: "detox_10", Name: "Clear Signal", Category: domain.CatDetox,
			Icon: "📡",
			Predicate: func(s domain.UserStats) bool { return s.DetoxSuccesses >= 10 },
		},
		{
			ID: "detox_50", Name: "Unshakeable", Category: domain.CatDetox,
			Icon: "🗿",
			Predicate: func(s domain.UserStats) bool { return s.DetoxSuccesses >= 50 },
		},
		{
			ID: "habits_500", Name: "Creature of Habit", Category: domain.CatDetox,
			Icon: "🔁",
			Predicate: func(s domain.UserStats) bool { return s.HabitCompletions >= 500 },
		},

		// ── Mastery (4) ────────────────────────────────────────────────
		{
			ID: "level_5", Name: "Bug Hunter", Category: domain.CatMastery,
			Icon: "🐛",
			Predicate: func(s domain.UserStats) bool { return s.Level >= 5 },
		},
		{
			ID: "level_10", Name: "Distinguished", Category: domain.CatMastery,
			Icon: "🏆",
			Predicate: func(s domain.UserStats) bool { return s.Level >= 10 },
		},
		{
			ID: "xp_10000", Name: "Ten Thousand Hours", Category: domain.CatMastery,
			Icon: "⏳",
			Predicate: func(s domain.UserStats) bool { return s.XP >= 10000 },
		},
		{
			ID: "practice_50", Name: "Smooth Talker", Category: domain.CatMastery,
			Icon: "🎤",
			Predicate: func(s domain.UserStats) bool { return s.PracticeEntries >= 50 },
		},
	}
}
