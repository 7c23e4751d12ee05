// Package sqlite provides SQLite-based persistent storage for LifeForge.
// Uses WAL mode for concurrent reads and crash-safe writes.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)

	"github.com/lifeforge/lifeforge/internal/domain"
)

// DB wraps a SQLite connection with WAL mode and migrations.
type DB struct {
	db *sql.DB
}

// Open creates or opens the SQLite database at dir/lifeforge.db.
// Enables WAL mode, foreign keys, and 5-second busy timeout.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "lifeforge.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// Connection pool settings for SQLite
	db.SetMaxOpenConns(1) // SQLite is single-writer
	db.SetMaxIdleConns(1)

	d := &DB{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return d, nil
}

// Close cleanly shuts down the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping checks database connectivity.
func (d *DB) Ping() error {
	return d.db.Ping()
}

// migrate runs idempotent schema migrations.
func (d *DB) migrate() error {
	migrations := []string{
		// Accounts and sessions
		`CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			username      TEXT NOT NULL UNIQUE,
			name          TEXT NOT NULL DEFAULT '',
			password_hash TEXT NOT NULL,
			created_at    INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			token      TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			expires_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_expires ON sessions(expires_at)`,

		// Journal: one log per (user, date); list columns stored as JSON
		`CREATE TABLE IF NOT EXISTS daily_logs (
			user_id          TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			date             TEXT NOT NULL,
			focus_items      TEXT NOT NULL DEFAULT '[]',
			habits_completed TEXT NOT NULL DEFAULT '[]',
			mood             INTEGER,
			notes            TEXT NOT NULL DEFAULT '',
			detox_log        TEXT NOT NULL DEFAULT '[]',
			PRIMARY KEY (user_id, date)
		)`,

		// Habit definitions. Logs reference habit IDs weakly: deleting a
		// habit never touches daily_logs.
		`CREATE TABLE IF NOT EXISTS habits (
			user_id          TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			id               TEXT NOT NULL,
			label            TEXT NOT NULL,
			category         TEXT NOT NULL,
			required_minimal BOOLEAN NOT NULL DEFAULT 0,
			PRIMARY KEY (user_id, id)
		)`,

		// Learning
		`CREATE TABLE IF NOT EXISTS learning_items (
			id                 TEXT PRIMARY KEY,
			user_id            TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			topic              TEXT NOT NULL,
			status             TEXT NOT NULL,
			explanation        TEXT NOT NULL DEFAULT '',
			real_world_mapping TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_learning_user ON learning_items(user_id)`,
		`CREATE TABLE IF NOT EXISTS problems (
			id          TEXT PRIMARY KEY,
			user_id     TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			name        TEXT NOT NULL,
			type        TEXT NOT NULL,
			difficulty  TEXT NOT NULL,
			solved      BOOLEAN NOT NULL DEFAULT 0,
			explanation TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_problems_user ON problems(user_id)`,

		// Communication
		`CREATE TABLE IF NOT EXISTS practice_entries (
			id      TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			date    TEXT NOT NULL,
			type    TEXT NOT NULL,
			content TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_practice_user ON practice_entries(user_id)`,
		`CREATE TABLE IF NOT EXISTS notes (
			id       TEXT PRIMARY KEY,
			user_id  TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			category TEXT NOT NULL,
			content  TEXT NOT NULL
		)`,

		// Money
		`CREATE TABLE IF NOT EXISTS money_categories (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			name       TEXT NOT NULL,
			type       TEXT NOT NULL,
			icon       TEXT NOT NULL DEFAULT 'tag',
			is_default BOOLEAN NOT NULL DEFAULT 0
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_name
			ON money_categories(user_id, name, type)`,
		`CREATE TABLE IF NOT EXISTS transactions (
			id           TEXT PRIMARY KEY,
			user_id      TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			category_id  TEXT NOT NULL,
			amount_cents INTEGER NOT NULL,
			type         TEXT NOT NULL,
			date         INTEGER NOT NULL,
			description  TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_user ON transactions(user_id, date)`,
		`CREATE TABLE IF NOT EXISTS shared_expenses (
			id          TEXT PRIMARY KEY,
			description TEXT NOT NULL,
			total_cents INTEGER NOT NULL,
			category    TEXT NOT NULL DEFAULT '',
			paid_by     TEXT NOT NULL REFERENCES users(id),
			date        INTEGER NOT NULL,
			settled     BOOLEAN NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_expenses_payer ON shared_expenses(paid_by)`,
		`CREATE TABLE IF NOT EXISTS expense_splits (
			expense_id  TEXT NOT NULL REFERENCES shared_expenses(id) ON DELETE CASCADE,
			user_id     TEXT NOT NULL REFERENCES users(id),
			share_cents INTEGER NOT NULL,
			paid        BOOLEAN NOT NULL DEFAULT 0,
			PRIMARY KEY (expense_id, user_id)
		)`,

		// Unlocked achievements
		`CREATE TABLE IF NOT EXISTS achievements (
			user_id     TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			id          TEXT NOT NULL,
			unlocked_at INTEGER NOT NULL,
			PRIMARY KEY (user_id, id)
		)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// ─── User Repository ────────────────────────────────────────────────────────

// CreateUser inserts a new account with a pre-hashed password.
func (d *DB) CreateUser(u domain.User, passwordHash string) error {
	_, err := d.db.Exec(
		`INSERT INTO users (id, username, name, password_hash, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.Name, passwordHash, u.CreatedAt.Unix(),
	)
	if err != nil && isUniqueViolation(err) {
		return domain.ErrUserExists
	}
	return err
}

// UpdatePassword replaces a user's password hash.
func (d *DB) UpdatePassword(userID, passwordHash string) error {
	res, err := d.db.Exec(
		`UPDATE users SET password_hash = ? WHERE id = ?`, passwordHash, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// GetUser retrieves a user by ID. Returns nil if not found.
func (d *DB) GetUser(id string) (*domain.User, error) {
	row := d.db.QueryRow(
		`SELECT id, username, name, created_at FROM users WHERE id = ?`, id)
	return scanUser(row)
}

// GetUserByUsername retrieves a user and their password hash for
// credential checks. Returns (nil, "") if the username is unknown.
func (d *DB) GetUserByUsername(username string) (*domain.User, string, error) {
	var u domain.User
	var hash string
	var createdAt int64

	err := d.db.QueryRow(
		`SELECT id, username, name, password_hash, created_at
		 FROM users WHERE username = ?`, username,
	).Scan(&u.ID, &u.Username, &u.Name, &hash, &createdAt)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", err
	}
	u.CreatedAt = time.Unix(createdAt, 0)
	return &u, hash, nil
}

// ListUsers returns all users except the given one, for split
// participant pickers.
func (d *DB) ListUsers(excludeID string) ([]domain.User, error) {
	rows, err := d.db.Query(
		`SELECT id, username, name, created_at FROM users
		 WHERE id != ? ORDER BY username`, excludeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// SeedUserDefaults installs the starter habits and money categories
// for a new user. Idempotent: existing rows are left alone.
func (d *DB) SeedUserDefaults(userID string, habits []domain.HabitConfig, categories []domain.MoneyCategory) error {
	for _, h := range habits {
		_, err := d.db.Exec(
			`INSERT INTO habits (user_id, id, label, category, required_minimal)
			 VALUES (?, ?, ?, ?, ?)
			 ON CONFLICT(user_id, id) DO NOTHING`,
			userID, h.ID, h.Label, h.Category, h.RequiredInMinimalMode,
		)
		if err != nil {
			return fmt.Errorf("seed habit %s: %w", h.ID, err)
		}
	}
	for _, c := range categories {
		if c.ID == "" {
			c.ID = uuid.New().String()
		}
		_, err := d.db.Exec(
			`INSERT INTO money_categories (id, user_id, name, type, icon, is_default)
			 VALUES (?, ?, ?, ?, ?, ?)
			 ON CONFLICT(user_id, name, type) DO NOTHING`,
			c.ID, userID, c.Name, c.Type, c.Icon, c.IsDefault,
		)
		if err != nil {
			return fmt.Errorf("seed category %s: %w", c.Name, err)
		}
	}
	return nil
}

// ─── Session Repository ─────────────────────────────────────────────────────

// CreateSession persists an opaque session token.
func (d *DB) CreateSession(s domain.Session) error {
	_, err := d.db.Exec(
		`INSERT INTO sessions (token, user_id, expires_at) VALUES (?, ?, ?)`,
		s.Token, s.UserID, s.ExpiresAt.Unix(),
	)
	return err
}

// GetSession looks up a session by token. Returns nil if unknown.
func (d *DB) GetSession(token string) (*domain.Session, error) {
	var s domain.Session
	var expiresAt int64

	err := d.db.QueryRow(
		`SELECT token, user_id, expires_at FROM sessions WHERE token = ?`, token,
	).Scan(&s.Token, &s.UserID, &expiresAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s.ExpiresAt = time.Unix(expiresAt, 0)
	return &s, nil
}

// DeleteSession removes a session (logout).
func (d *DB) DeleteSession(token string) error {
	_, err := d.db.Exec(`DELETE FROM sessions WHERE token = ?`, token)
	return err
}

// PurgeExpiredSessions removes sessions past their expiry and returns
// how many were deleted.
func (d *DB) PurgeExpiredSessions(now time.Time) (int64, error) {
	res, err := d.db.Exec(`DELETE FROM sessions WHERE expires_at < ?`, now.Unix())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ─── Helpers ────────────────────────────────────────────────────────────────

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (*domain.User, error) {
	var u domain.User
	var createdAt int64

	err := s.Scan(&u.ID, &u.Username, &u.Name, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil // Not found, no error
	}
	if err != nil {
		return nil, err
	}
	u.CreatedAt = time.Unix(createdAt, 0)
	return &u, nil
}

// isUniqueViolation detects constraint errors without importing the
// driver's error types.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "constraint failed")
}
