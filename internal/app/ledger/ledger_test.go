package ledger_test

import (
	"errors"
	"testing"
	"time"

	"github.com/lifeforge/lifeforge/internal/app/ledger"
	"github.com/lifeforge/lifeforge/internal/domain"
	"github.com/lifeforge/lifeforge/internal/infra/sqlite"
)

func testDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testUser(t *testing.T, db *sqlite.DB, username string) domain.User {
	t.Helper()
	u := domain.User{ID: "u-" + username, Username: username, Name: username, CreatedAt: time.Now()}
	if err := db.CreateUser(u, "x"); err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return u
}

// ═══════════════════════════════════════════════════════════════════════════
// Split Arithmetic
// ═══════════════════════════════════════════════════════════════════════════

func TestSplitEqual_SumInvariant(t *testing.T) {
	cases := []struct {
		total int64
		n     int
	}{
		{1000, 3},
		{1001, 3},
		{1, 2},
		{99999, 7},
		{100, 1},
		{0, 4},
	}
	for _, c := range cases {
		shares := ledger.SplitEqual(c.total, c.n)
		if len(shares) != c.n {
			t.Fatalf("SplitEqual(%d, %d): got %d shares", c.total, c.n, len(shares))
		}
		var sum int64
		for _, s := range shares {
			sum += s
		}
		if sum != c.total {
			t.Errorf("SplitEqual(%d, %d): shares sum to %d", c.total, c.n, sum)
		}
	}
}

func TestSplitEqual_RemainderToEarliest(t *testing.T) {
	shares := ledger.SplitEqual(1001, 3)
	want := []int64{334, 334, 333}
	for i := range want {
		if shares[i] != want[i] {
			t.Fatalf("shares = %v, want %v", shares, want)
		}
	}
}

func TestSplitEqual_NoParticipants(t *testing.T) {
	if got := ledger.SplitEqual(1000, 0); got != nil {
		t.Errorf("expected nil for zero participants, got %v", got)
	}
}

func TestBalances_Perspective(t *testing.T) {
	expenses := []domain.SharedExpense{
		{
			ID: "e1", PaidByID: "alice", Description: "dinner",
			Splits: []domain.ExpenseSplit{
				{UserID: "alice", ShareCents: 500, Paid: true},
				{UserID: "bob", ShareCents: 500, Paid: false},
			},
		},
		{
			ID: "e2", PaidByID: "bob", Description: "cab",
			Splits: []domain.ExpenseSplit{
				{UserID: "bob", ShareCents: 300, Paid: true},
				{UserID: "alice", ShareCents: 300, Paid: false},
			},
		},
		{
			ID: "e3", PaidByID: "alice", Settled: true,
			Splits: []domain.ExpenseSplit{
				{UserID: "bob", ShareCents: 900, Paid: true},
			},
		},
	}

	b := ledger.Balances("alice", expenses)
	if len(b.OwedToYou) != 1 || b.OwedToYou[0].AmountCents != 500 {
		t.Errorf("OwedToYou = %+v, want bob's 500", b.OwedToYou)
	}
	if len(b.YouOwe) != 1 || b.YouOwe[0].AmountCents != 300 {
		t.Errorf("YouOwe = %+v, want 300 to bob", b.YouOwe)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Service
// ═══════════════════════════════════════════════════════════════════════════

func TestAddExpense_PayerShareAutoPaid(t *testing.T) {
	db := testDB(t)
	alice := testUser(t, db, "alice")
	bob := testUser(t, db, "bob")
	svc := ledger.NewService(db)

	exp, err := svc.AddExpense(alice.ID, "groceries", "Food", 1001, []string{bob.ID})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if exp.Settled {
		t.Error("expense with an unpaid split marked settled")
	}

	var sum int64
	for _, s := range exp.Splits {
		sum += s.ShareCents
		if s.UserID == alice.ID && !s.Paid {
			t.Error("payer share should start paid")
		}
		if s.UserID == bob.ID && s.Paid {
			t.Error("participant share should start unpaid")
		}
	}
	if sum != 1001 {
		t.Errorf("shares sum to %d, want 1001", sum)
	}
}

func TestAddExpense_PayerAloneSettles(t *testing.T) {
	db := testDB(t)
	alice := testUser(t, db, "alice")
	svc := ledger.NewService(db)

	exp, err := svc.AddExpense(alice.ID, "solo lunch", "Food", 700, nil)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !exp.Settled {
		t.Error("payer-only expense should be settled immediately")
	}
}

func TestAddExpense_DedupesPayer(t *testing.T) {
	db := testDB(t)
	alice := testUser(t, db, "alice")
	bob := testUser(t, db, "bob")
	svc := ledger.NewService(db)

	// Payer listed among participants must not get two shares.
	exp, err := svc.AddExpense(alice.ID, "rent", "Rent", 90000, []string{alice.ID, bob.ID})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(exp.Splits) != 2 {
		t.Fatalf("expected 2 splits, got %d", len(exp.Splits))
	}
}

func TestAddExpense_RejectsBadAmount(t *testing.T) {
	db := testDB(t)
	alice := testUser(t, db, "alice")
	svc := ledger.NewService(db)

	if _, err := svc.AddExpense(alice.ID, "nope", "Fun", 0, nil); !errors.Is(err, domain.ErrBadAmount) {
		t.Errorf("expected ErrBadAmount, got %v", err)
	}
	if _, err := svc.AddExpense(alice.ID, "nope", "Fun", -500, nil); !errors.Is(err, domain.ErrBadAmount) {
		t.Errorf("expected ErrBadAmount for negative, got %v", err)
	}
}

func TestMarkPaid_OnlyPayer(t *testing.T) {
	db := testDB(t)
	alice := testUser(t, db, "alice")
	bob := testUser(t, db, "bob")
	svc := ledger.NewService(db)

	exp, err := svc.AddExpense(alice.ID, "dinner", "Food", 2000, []string{bob.ID})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := svc.MarkPaid(bob.ID, exp.ID, bob.ID); !errors.Is(err, domain.ErrNotPayer) {
		t.Errorf("expected ErrNotPayer for non-payer, got %v", err)
	}
	if err := svc.MarkPaid(alice.ID, exp.ID, bob.ID); err != nil {
		t.Fatalf("payer mark paid: %v", err)
	}
}

func TestMarkPaid_AutoSettle(t *testing.T) {
	db := testDB(t)
	alice := testUser(t, db, "alice")
	bob := testUser(t, db, "bob")
	svc := ledger.NewService(db)

	exp, err := svc.AddExpense(alice.ID, "tickets", "Fun", 5000, []string{bob.ID})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.MarkPaid(alice.ID, exp.ID, bob.ID); err != nil {
		t.Fatalf("mark paid: %v", err)
	}

	got, err := db.GetSharedExpense(exp.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.Settled {
		t.Error("expense should auto-settle once every split is paid")
	}
}

func TestSettleUp_OwnShare(t *testing.T) {
	db := testDB(t)
	alice := testUser(t, db, "alice")
	bob := testUser(t, db, "bob")
	svc := ledger.NewService(db)

	exp, err := svc.AddExpense(alice.ID, "cab", "Transport", 1200, []string{bob.ID})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	// Bob settles his own share without needing alice.
	if err := svc.SettleUp(bob.ID, exp.ID); err != nil {
		t.Fatalf("settle up: %v", err)
	}

	b, err := svc.BalancesFor(alice.ID)
	if err != nil {
		t.Fatalf("balances: %v", err)
	}
	if len(b.OwedToYou) != 0 {
		t.Errorf("expected empty OwedToYou after settle, got %+v", b.OwedToYou)
	}
}

func TestMarkPaid_UnknownExpense(t *testing.T) {
	db := testDB(t)
	alice := testUser(t, db, "alice")
	svc := ledger.NewService(db)

	if err := svc.MarkPaid(alice.ID, "missing", alice.ID); !errors.Is(err, domain.ErrExpenseNotFound) {
		t.Errorf("expected ErrExpenseNotFound, got %v", err)
	}
}
