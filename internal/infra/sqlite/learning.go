package sqlite

import (
	"database/sql"

	"github.com/lifeforge/lifeforge/internal/domain"
)

// ─── Learning Repository ────────────────────────────────────────────────────

// UpsertLearningItem inserts or updates a topic.
func (d *DB) UpsertLearningItem(userID string, item domain.LearningItem) error {
	_, err := d.db.Exec(
		`INSERT INTO learning_items (id, user_id, topic, status, explanation, real_world_mapping)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			topic=excluded.topic,
			status=excluded.status,
			explanation=excluded.explanation,
			real_world_mapping=excluded.real_world_mapping`,
		item.ID, userID, item.Topic, item.Status, item.Explanation, item.RealWorldMapping,
	)
	return err
}

// ListLearningItems returns the user's topics.
func (d *DB) ListLearningItems(userID string) ([]domain.LearningItem, error) {
	rows, err := d.db.Query(
		`SELECT id, topic, status, explanation, real_world_mapping
		 FROM learning_items WHERE user_id = ? ORDER BY topic`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.LearningItem
	for rows.Next() {
		var it domain.LearningItem
		if err := rows.Scan(&it.ID, &it.Topic, &it.Status, &it.Explanation, &it.RealWorldMapping); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// DeleteLearningItem removes a topic.
func (d *DB) DeleteLearningItem(userID, id string) error {
	res, err := d.db.Exec(
		`DELETE FROM learning_items WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrLearningNotFound
	}
	return nil
}

// ─── Problem Repository ─────────────────────────────────────────────────────

// UpsertProblem inserts or updates a problem.
func (d *DB) UpsertProblem(userID string, p domain.ProblemItem) error {
	_, err := d.db.Exec(
		`INSERT INTO problems (id, user_id, name, type, difficulty, solved, explanation)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			name=excluded.name,
			type=excluded.type,
			difficulty=excluded.difficulty,
			solved=excluded.solved,
			explanation=excluded.explanation`,
		p.ID, userID, p.Name, p.Type, p.Difficulty, p.Solved, p.Explanation,
	)
	return err
}

// ListProblems returns the user's problems.
func (d *DB) ListProblems(userID string) ([]domain.ProblemItem, error) {
	rows, err := d.db.Query(
		`SELECT id, name, type, difficulty, solved, explanation
		 FROM problems WHERE user_id = ? ORDER BY name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var problems []domain.ProblemItem
	for rows.Next() {
		var p domain.ProblemItem
		if err := rows.Scan(&p.ID, &p.Name, &p.Type, &p.Difficulty, &p.Solved, &p.Explanation); err != nil {
			return nil, err
		}
		problems = append(problems, p)
	}
	return problems, rows.Err()
}

// ─── Practice Repository ────────────────────────────────────────────────────

// InsertPracticeEntry appends a practice session. Entries are
// append-only; no update path.
func (d *DB) InsertPracticeEntry(userID string, e domain.PracticeEntry) error {
	_, err := d.db.Exec(
		`INSERT INTO practice_entries (id, user_id, date, type, content)
		 VALUES (?, ?, ?, ?, ?)`,
		e.ID, userID, e.Date, e.Type, e.Content,
	)
	return err
}

// ListPracticeEntries returns practice history, newest first.
func (d *DB) ListPracticeEntries(userID string) ([]domain.PracticeEntry, error) {
	rows, err := d.db.Query(
		`SELECT id, date, type, content
		 FROM practice_entries WHERE user_id = ? ORDER BY date DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.PracticeEntry
	for rows.Next() {
		var e domain.PracticeEntry
		if err := rows.Scan(&e.ID, &e.Date, &e.Type, &e.Content); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ─── Note Repository ────────────────────────────────────────────────────────

// InsertNote stores a communication note.
func (d *DB) InsertNote(userID string, n domain.Note) error {
	_, err := d.db.Exec(
		`INSERT INTO notes (id, user_id, category, content) VALUES (?, ?, ?, ?)`,
		n.ID, userID, n.Category, n.Content,
	)
	return err
}

// ListNotes returns the user's notes, optionally filtered by category.
func (d *DB) ListNotes(userID string, category domain.NoteCategory) ([]domain.Note, error) {
	var rows *sql.Rows
	var err error
	if category == "" {
		rows, err = d.db.Query(
			`SELECT id, category, content FROM notes WHERE user_id = ?`, userID)
	} else {
		rows, err = d.db.Query(
			`SELECT id, category, content FROM notes WHERE user_id = ? AND category = ?`,
			userID, category)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []domain.Note
	for rows.Next() {
		var n domain.Note
		if err := rows.Scan(&n.ID, &n.Category, &n.Content); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}
