package domain

import "time"

// All money amounts are integer cents. Share arithmetic must be
// deterministic: sum of shares == expense total, always.

// TransactionType separates income from spending.
type TransactionType string

const (
	TxExpense TransactionType = "expense"
	TxIncome  TransactionType = "income"
)

// MoneyCategory labels transactions. Default categories are seeded per
// user and cannot be deleted.
type MoneyCategory struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Type      TransactionType `json:"type"`
	Icon      string          `json:"icon"`
	IsDefault bool            `json:"isDefault"`
}

// Transaction is a single personal-finance entry.
type Transaction struct {
	ID          string          `json:"id"`
	CategoryID  string          `json:"categoryId"`
	AmountCents int64           `json:"amountCents"`
	Type        TransactionType `json:"type"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description,omitempty"`
}

// ExpenseSplit is one participant's share of a shared expense.
type ExpenseSplit struct {
	UserID     string `json:"userId"`
	Username   string `json:"username"`
	ShareCents int64  `json:"shareCents"`
	Paid       bool   `json:"paid"`
}

// SharedExpense is a bill split equally among participants.
// The payer's own share is auto-paid at creation; the expense is
// settled once every split is paid.
type SharedExpense struct {
	ID          string         `json:"id"`
	Description string         `json:"description"`
	TotalCents  int64          `json:"totalCents"`
	Category    string         `json:"category,omitempty"`
	PaidByID    string         `json:"paidById"`
	Date        time.Time      `json:"date"`
	Settled     bool           `json:"settled"`
	Splits      []ExpenseSplit `json:"splits"`
}

// BalanceEntry is one outstanding share owed between two users.
type BalanceEntry struct {
	UserID      string `json:"userId"`
	Username    string `json:"username"`
	AmountCents int64  `json:"amountCents"`
	ExpenseID   string `json:"expenseId"`
	Description string `json:"expenseDescription"`
}

// Balances aggregates what others owe you and what you owe others.
type Balances struct {
	OwedToYou []BalanceEntry `json:"owedToYou"`
	YouOwe    []BalanceEntry `json:"youOwe"`
}

// DefaultMoneyCategories is the starter category set for a new user.
func DefaultMoneyCategories() []MoneyCategory {
	return []MoneyCategory{
		{Name: "Food", Type: TxExpense, Icon: "utensils", IsDefault: true},
		{Name: "Transport", Type: TxExpense, Icon: "bus", IsDefault: true},
		{Name: "Rent", Type: TxExpense, Icon: "home", IsDefault: true},
		{Name: "Fun", Type: TxExpense, Icon: "gamepad", IsDefault: true},
		{Name: "Salary", Type: TxIncome, Icon: "banknote", IsDefault: true},
	}
}
