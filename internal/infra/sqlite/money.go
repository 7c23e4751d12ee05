package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lifeforge/lifeforge/internal/domain"
)

// ─── Category Repository ────────────────────────────────────────────────────

// InsertCategory adds a money category for a user.
func (d *DB) InsertCategory(userID string, c domain.MoneyCategory) error {
	_, err := d.db.Exec(
		`INSERT INTO money_categories (id, user_id, name, type, icon, is_default)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, userID, c.Name, c.Type, c.Icon, c.IsDefault,
	)
	if err != nil && isUniqueViolation(err) {
		return domain.ErrCategoryExists
	}
	return err
}

// ListCategories returns the user's categories, defaults first.
func (d *DB) ListCategories(userID string) ([]domain.MoneyCategory, error) {
	rows, err := d.db.Query(
		`SELECT id, name, type, icon, is_default
		 FROM money_categories WHERE user_id = ?
		 ORDER BY is_default DESC, name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []domain.MoneyCategory
	for rows.Next() {
		var c domain.MoneyCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Type, &c.Icon, &c.IsDefault); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

// DeleteCategory removes a non-default category owned by the user.
func (d *DB) DeleteCategory(userID, categoryID string) error {
	var isDefault bool
	err := d.db.QueryRow(
		`SELECT is_default FROM money_categories WHERE user_id = ? AND id = ?`,
		userID, categoryID,
	).Scan(&isDefault)
	if err == sql.ErrNoRows {
		return domain.ErrCategoryNotFound
	}
	if err != nil {
		return err
	}
	if isDefault {
		return domain.ErrCategoryProtected
	}

	_, err = d.db.Exec(
		`DELETE FROM money_categories WHERE user_id = ? AND id = ?`, userID, categoryID)
	return err
}

// ─── Transaction Repository ─────────────────────────────────────────────────

// InsertTransaction records a personal-finance entry.
func (d *DB) InsertTransaction(userID string, t domain.Transaction) error {
	_, err := d.db.Exec(
		`INSERT INTO transactions (id, user_id, category_id, amount_cents, type, date, description)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, userID, t.CategoryID, t.AmountCents, t.Type, t.Date.Unix(), t.Description,
	)
	return err
}

// ListTransactions returns recent transactions, newest first.
// limit <= 0 means no limit.
func (d *DB) ListTransactions(userID string, limit int) ([]domain.Transaction, error) {
	q := `SELECT id, category_id, amount_cents, type, date, description
	      FROM transactions WHERE user_id = ? ORDER BY date DESC`
	args := []any{userID}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := d.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []domain.Transaction
	for rows.Next() {
		var t domain.Transaction
		var date int64
		if err := rows.Scan(&t.ID, &t.CategoryID, &t.AmountCents, &t.Type, &date, &t.Description); err != nil {
			return nil, err
		}
		t.Date = time.Unix(date, 0)
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

// ─── Shared Expense Repository ──────────────────────────────────────────────

// InsertSharedExpense stores an expense and its splits atomically.
func (d *DB) InsertSharedExpense(exp domain.SharedExpense) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO shared_expenses (id, description, total_cents, category, paid_by, date, settled)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		exp.ID, exp.Description, exp.TotalCents, exp.Category, exp.PaidByID,
		exp.Date.Unix(), exp.Settled,
	)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}

	for _, s := range exp.Splits {
		_, err = tx.Exec(
			`INSERT INTO expense_splits (expense_id, user_id, share_cents, paid)
			 VALUES (?, ?, ?, ?)`,
			exp.ID, s.UserID, s.ShareCents, s.Paid,
		)
		if err != nil {
			return fmt.Errorf("insert split for %s: %w", s.UserID, err)
		}
	}

	return tx.Commit()
}

// GetSharedExpense loads an expense with its splits and participant
// usernames. Returns nil if unknown.
func (d *DB) GetSharedExpense(id string) (*domain.SharedExpense, error) {
	var exp domain.SharedExpense
	var date int64

	err := d.db.QueryRow(
		`SELECT id, description, total_cents, category, paid_by, date, settled
		 FROM shared_expenses WHERE id = ?`, id,
	).Scan(&exp.ID, &exp.Description, &exp.TotalCents, &exp.Category,
		&exp.PaidByID, &date, &exp.Settled)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	exp.Date = time.Unix(date, 0)

	if err := d.loadSplits(&exp); err != nil {
		return nil, err
	}
	return &exp, nil
}

// ListSharedExpenses returns expenses the user paid or participates
// in, newest first.
func (d *DB) ListSharedExpenses(userID string) ([]domain.SharedExpense, error) {
	rows, err := d.db.Query(
		`SELECT DISTINCT e.id, e.description, e.total_cents, e.category, e.paid_by, e.date, e.settled
		 FROM shared_expenses e
		 LEFT JOIN expense_splits s ON s.expense_id = e.id
		 WHERE e.paid_by = ? OR s.user_id = ?
		 ORDER BY e.date DESC`, userID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []domain.SharedExpense
	for rows.Next() {
		var exp domain.SharedExpense
		var date int64
		if err := rows.Scan(&exp.ID, &exp.Description, &exp.TotalCents, &exp.Category,
			&exp.PaidByID, &date, &exp.Settled); err != nil {
			return nil, err
		}
		exp.Date = time.Unix(date, 0)
		expenses = append(expenses, exp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range expenses {
		if err := d.loadSplits(&expenses[i]); err != nil {
			return nil, err
		}
	}
	return expenses, nil
}

// MarkSplitPaid marks one participant's share as paid.
func (d *DB) MarkSplitPaid(expenseID, userID string) error {
	res, err := d.db.Exec(
		`UPDATE expense_splits SET paid = 1 WHERE expense_id = ? AND user_id = ?`,
		expenseID, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}

// MarkExpenseSettled flags an expense as fully settled.
func (d *DB) MarkExpenseSettled(expenseID string) error {
	_, err := d.db.Exec(
		`UPDATE shared_expenses SET settled = 1 WHERE id = ?`, expenseID)
	return err
}

func (d *DB) loadSplits(exp *domain.SharedExpense) error {
	rows, err := d.db.Query(
		`SELECT s.user_id, COALESCE(u.username, ''), s.share_cents, s.paid
		 FROM expense_splits s
		 LEFT JOIN users u ON u.id = s.user_id
		 WHERE s.expense_id = ?
		 ORDER BY s.user_id`, exp.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	exp.Splits = nil
	for rows.Next() {
		var s domain.ExpenseSplit
		if err := rows.Scan(&s.UserID, &s.Username, &s.ShareCents, &s.Paid); err != nil {
			return err
		}
		exp.Splits = append(exp.Splits, s)
	}
	return rows.Err()
}
