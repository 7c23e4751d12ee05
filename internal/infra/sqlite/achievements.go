package sqlite

import (
	"database/sql"
	"time"

	"github.com/lifeforge/lifeforge/internal/domain"
)

// ─── Achievement Repository ─────────────────────────────────────────────────

// IsAchievementUnlocked reports whether the user already holds a badge.
func (d *DB) IsAchievementUnlocked(userID, id string) (bool, error) {
	var one int
	err := d.db.QueryRow(
		`SELECT 1 FROM achievements WHERE user_id = ? AND id = ?`, userID, id,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// UnlockAchievement records a badge unlock. Returns true only for the
// first unlock; repeats are no-ops.
func (d *DB) UnlockAchievement(userID, id string, at time.Time) (bool, error) {
	res, err := d.db.Exec(
		`INSERT INTO achievements (user_id, id, unlocked_at) VALUES (?, ?, ?)
		 ON CONFLICT(user_id, id) DO NOTHING`,
		userID, id, at.Unix(),
	)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// ListUnlockedAchievements returns the user's earned badges, newest first.
func (d *DB) ListUnlockedAchievements(userID string) ([]domain.UnlockedAchievement, error) {
	rows, err := d.db.Query(
		`SELECT id, unlocked_at FROM achievements
		 WHERE user_id = ? ORDER BY unlocked_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var unlocked []domain.UnlockedAchievement
	for rows.Next() {
		var u domain.UnlockedAchievement
		var at int64
		if err := rows.Scan(&u.ID, &at); err != nil {
			return nil, err
		}
		u.UnlockedAt = time.Unix(at, 0)
		unlocked = append(unlocked, u)
	}
	return unlocked, rows.Err()
}
