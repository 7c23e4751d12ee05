// Package ledger implements bill-split settlement arithmetic.
// Every expense divides into integer-cent shares whose sum equals the
// total — SUM(shares) == total is an invariant, same discipline as a
// double-entry book.
package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lifeforge/lifeforge/internal/domain"
	"github.com/lifeforge/lifeforge/internal/infra/sqlite"
)

// SplitEqual divides totalCents into n deterministic shares.
// Remainder cents go to the earliest shares, one each, so the shares
// always sum back to the total.
func SplitEqual(totalCents int64, n int) []int64 {
	if n <= 0 {
		return nil
	}
	base := totalCents / int64(n)
	rem := totalCents % int64(n)

	shares := make([]int64, n)
	for i := range shares {
		shares[i] = base
		if int64(i) < rem {
			shares[i]++
		}
	}
	return shares
}

// Settled reports whether every split of an expense is paid.
func Settled(splits []domain.ExpenseSplit) bool {
	for _, s := range splits {
		if !s.Paid {
			return false
		}
	}
	return len(splits) > 0
}

// Balances aggregates outstanding shares from the user's perspective:
// unpaid shares others owe on expenses the user paid, and unpaid
// shares the user owes on expenses others paid. Settled expenses and
// the user's own shares never appear.
func Balances(userID string, expenses []domain.SharedExpense) domain.Balances {
	var b domain.Balances

	for _, exp := range expenses {
		if exp.Settled {
			continue
		}
		for _, split := range exp.Splits {
			if split.Paid {
				continue
			}
			switch {
			case exp.PaidByID == userID && split.UserID != userID:
				b.OwedToYou = append(b.OwedToYou, domain.BalanceEntry{
					UserID:      split.UserID,
					Username:    split.Username,
					AmountCents: split.ShareCents,
					ExpenseID:   exp.ID,
					Description: exp.Description,
				})
			case exp.PaidByID != userID && split.UserID == userID:
				b.YouOwe = append(b.YouOwe, domain.BalanceEntry{
					UserID:      exp.PaidByID,
					AmountCents: split.ShareCents,
					ExpenseID:   exp.ID,
					Description: exp.Description,
				})
			}
		}
	}
	return b
}

// ─── Service ────────────────────────────────────────────────────────────────

// Service manages shared expenses on top of storage.
type Service struct {
	db *sqlite.DB
}

// NewService creates a ledger service.
func NewService(db *sqlite.DB) *Service {
	return &Service{db: db}
}

// AddExpense creates a shared expense split equally among the
// participants. The payer is always a participant, and the payer's own
// share starts paid.
func (s *Service) AddExpense(payerID, description, category string, totalCents int64, participantIDs []string) (*domain.SharedExpense, error) {
	if totalCents <= 0 {
		return nil, domain.ErrBadAmount
	}
	if description == "" {
		return nil, fmt.Errorf("description is required")
	}

	ids := dedupe(append([]string{payerID}, participantIDs...))
	if len(ids) == 0 {
		return nil, domain.ErrNoParticipants
	}

	shares := SplitEqual(totalCents, len(ids))
	exp := domain.SharedExpense{
		ID:          uuid.New().String(),
		Description: description,
		TotalCents:  totalCents,
		Category:    category,
		PaidByID:    payerID,
		Date:        time.Now(),
		Splits:      make([]domain.ExpenseSplit, len(ids)),
	}
	for i, id := range ids {
		exp.Splits[i] = domain.ExpenseSplit{
			UserID:     id,
			ShareCents: shares[i],
			Paid:       id == payerID,
		}
	}
	// Single participant == payer alone: settled from the start.
	exp.Settled = Settled(exp.Splits)

	if err := s.db.InsertSharedExpense(exp); err != nil {
		return nil, fmt.Errorf("insert expense: %w", err)
	}
	return &exp, nil
}

// MarkPaid marks one participant's split as paid. Only the payer may
// do this; the expense settles automatically once all splits are paid.
func (s *Service) MarkPaid(actorID, expenseID, splitUserID string) error {
	exp, err := s.db.GetSharedExpense(expenseID)
	if err != nil {
		return err
	}
	if exp == nil {
		return domain.ErrExpenseNotFound
	}
	if exp.PaidByID != actorID {
		return domain.ErrNotPayer
	}
	return s.settleSplit(expenseID, splitUserID)
}

// SettleUp marks the actor's own split as paid ("I paid you back").
func (s *Service) SettleUp(actorID, expenseID string) error {
	exp, err := s.db.GetSharedExpense(expenseID)
	if err != nil {
		return err
	}
	if exp == nil {
		return domain.ErrExpenseNotFound
	}
	return s.settleSplit(expenseID, actorID)
}

// ListForUser returns expenses the user paid or participates in,
// newest first.
func (s *Service) ListForUser(userID string) ([]domain.SharedExpense, error) {
	return s.db.ListSharedExpenses(userID)
}

// BalancesFor computes the user's outstanding balances.
func (s *Service) BalancesFor(userID string) (domain.Balances, error) {
	expenses, err := s.db.ListSharedExpenses(userID)
	if err != nil {
		return domain.Balances{}, err
	}
	return Balances(userID, expenses), nil
}

func (s *Service) settleSplit(expenseID, splitUserID string) error {
	if err := s.db.MarkSplitPaid(expenseID, splitUserID); err != nil {
		return err
	}

	exp, err := s.db.GetSharedExpense(expenseID)
	if err != nil {
		return err
	}
	if exp != nil && Settled(exp.Splits) {
		return s.db.MarkExpenseSettled(expenseID)
	}
	return nil
}

// dedupe preserves first-seen order.
func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	var out []string
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
