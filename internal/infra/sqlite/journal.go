package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lifeforge/lifeforge/internal/domain"
)

// ─── Daily Log Repository ───────────────────────────────────────────────────
// List-valued columns (focus items, completed habits, detox events) are
// stored as JSON text. The date string is the primary key component.

// UpsertDailyLog inserts or replaces the log for (user, date).
func (d *DB) UpsertDailyLog(userID string, log domain.DailyLog) error {
	focus, err := json.Marshal(emptyIfNil(log.FocusItems))
	if err != nil {
		return fmt.Errorf("marshal focus items: %w", err)
	}
	habits, err := json.Marshal(emptyIfNil(log.HabitsCompleted))
	if err != nil {
		return fmt.Errorf("marshal habits: %w", err)
	}
	detox, err := json.Marshal(log.DetoxLog)
	if err != nil {
		return fmt.Errorf("marshal detox log: %w", err)
	}
	if log.DetoxLog == nil {
		detox = []byte("[]")
	}

	var mood sql.NullInt64
	if log.Mood != nil {
		mood = sql.NullInt64{Int64: int64(*log.Mood), Valid: true}
	}

	_, err = d.db.Exec(
		`INSERT INTO daily_logs (user_id, date, focus_items, habits_completed, mood, notes, detox_log)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id, date) DO UPDATE SET
			focus_items=excluded.focus_items,
			habits_completed=excluded.habits_completed,
			mood=excluded.mood,
			notes=excluded.notes,
			detox_log=excluded.detox_log`,
		userID, log.Date, string(focus), string(habits), mood, log.Notes, string(detox),
	)
	return err
}

// GetDailyLog retrieves one log. Returns nil if absent for that date.
func (d *DB) GetDailyLog(userID, date string) (*domain.DailyLog, error) {
	row := d.db.QueryRow(
		`SELECT date, focus_items, habits_completed, mood, notes, detox_log
		 FROM daily_logs WHERE user_id = ? AND date = ?`, userID, date)
	return scanDailyLog(row)
}

// ListDailyLogs returns all logs for a user, newest first.
func (d *DB) ListDailyLogs(userID string) ([]domain.DailyLog, error) {
	rows, err := d.db.Query(
		`SELECT date, focus_items, habits_completed, mood, notes, detox_log
		 FROM daily_logs WHERE user_id = ? ORDER BY date DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []domain.DailyLog
	for rows.Next() {
		l, err := scanDailyLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, *l)
	}
	return logs, rows.Err()
}

// LogsByDate returns the user's full history keyed by date, the shape
// the streak and gamification engines consume.
func (d *DB) LogsByDate(userID string) (map[string]domain.DailyLog, error) {
	logs, err := d.ListDailyLogs(userID)
	if err != nil {
		return nil, err
	}
	byDate := make(map[string]domain.DailyLog, len(logs))
	for _, l := range logs {
		byDate[l.Date] = l
	}
	return byDate, nil
}

// Snapshot materializes the user's full XP-bearing state.
func (d *DB) Snapshot(userID string) (domain.Snapshot, error) {
	var snap domain.Snapshot

	logs, err := d.LogsByDate(userID)
	if err != nil {
		return snap, fmt.Errorf("load logs: %w", err)
	}
	learning, err := d.ListLearningItems(userID)
	if err != nil {
		return snap, fmt.Errorf("load learning: %w", err)
	}
	problems, err := d.ListProblems(userID)
	if err != nil {
		return snap, fmt.Errorf("load problems: %w", err)
	}
	practice, err := d.ListPracticeEntries(userID)
	if err != nil {
		return snap, fmt.Errorf("load practice: %w", err)
	}

	snap.DailyLogs = logs
	snap.Learning = learning
	snap.Problems = problems
	snap.Practice = practice
	return snap, nil
}

// ─── Habit Repository ───────────────────────────────────────────────────────

// UpsertHabit inserts or updates a habit definition.
func (d *DB) UpsertHabit(userID string, h domain.HabitConfig) error {
	_, err := d.db.Exec(
		`INSERT INTO habits (user_id, id, label, category, required_minimal)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(user_id, id) DO UPDATE SET
			label=excluded.label,
			category=excluded.category,
			required_minimal=excluded.required_minimal`,
		userID, h.ID, h.Label, h.Category, h.RequiredInMinimalMode,
	)
	return err
}

// ListHabits returns the user's habit definitions.
func (d *DB) ListHabits(userID string) ([]domain.HabitConfig, error) {
	rows, err := d.db.Query(
		`SELECT id, label, category, required_minimal
		 FROM habits WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []domain.HabitConfig
	for rows.Next() {
		var h domain.HabitConfig
		if err := rows.Scan(&h.ID, &h.Label, &h.Category, &h.RequiredInMinimalMode); err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

// DeleteHabit removes a habit definition. Historical daily logs keep
// their completed-habit IDs: history is preserved by design.
func (d *DB) DeleteHabit(userID, habitID string) error {
	res, err := d.db.Exec(
		`DELETE FROM habits WHERE user_id = ? AND id = ?`, userID, habitID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrHabitNotFound
	}
	return nil
}

// ─── Helpers ────────────────────────────────────────────────────────────────

func scanDailyLog(s scanner) (*domain.DailyLog, error) {
	var l domain.DailyLog
	var focus, habits, detox string
	var mood sql.NullInt64

	err := s.Scan(&l.Date, &focus, &habits, &mood, &l.Notes, &detox)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(focus), &l.FocusItems); err != nil {
		return nil, fmt.Errorf("unmarshal focus items: %w", err)
	}
	if err := json.Unmarshal([]byte(habits), &l.HabitsCompleted); err != nil {
		return nil, fmt.Errorf("unmarshal habits: %w", err)
	}
	if err := json.Unmarshal([]byte(detox), &l.DetoxLog); err != nil {
		return nil, fmt.Errorf("unmarshal detox log: %w", err)
	}
	if mood.Valid {
		m := int(mood.Int64)
		l.Mood = &m
	}
	return &l, nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
