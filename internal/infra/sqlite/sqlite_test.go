package sqlite_test

import (
	"errors"
	"testing"
	"time"

	"github.com/lifeforge/lifeforge/internal/domain"
	"github.com/lifeforge/lifeforge/internal/infra/sqlite"
)

// testDB creates a temporary SQLite database for testing.
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
	u := domain.User{ID: "u-" + username, Username: username, Name: username, CreatedAt: time.Now().UTC()}
	if err := db.CreateUser(u, "hash-"+username); err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return u
}

// ═══════════════════════════════════════════════════════════════════════════
// Users and Sessions
// ═══════════════════════════════════════════════════════════════════════════

func TestUsers_CreateAndLookup(t *testing.T) {
	db := testDB(t)
	u := testUser(t, db, "ada")

	got, hash, err := db.GetUserByUsername("ada")
	if err != nil {
		t.Fatalf("get by username: %v", err)
	}
	if got.ID != u.ID || got.Name != "ada" {
		t.Errorf("got %+v, want %+v", got, u)
	}
	if hash != "hash-ada" {
		t.Errorf("hash = %q", hash)
	}

	byID, err := db.GetUser(u.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if byID.Username != "ada" {
		t.Errorf("byID = %+v", byID)
	}
}

func TestUsers_DuplicateUsername(t *testing.T) {
	db := testDB(t)
	testUser(t, db, "ada")

	err := db.CreateUser(domain.User{ID: "other", Username: "ada", CreatedAt: time.Now()}, "x")
	if !errors.Is(err, domain.ErrUserExists) {
		t.Errorf("expected ErrUserExists, got %v", err)
	}
}

func TestUsers_UnknownLookup(t *testing.T) {
	db := testDB(t)

	u, _, err := db.GetUserByUsername("ghost")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if u != nil {
		t.Errorf("expected nil for unknown username, got %+v", u)
	}
}

func TestUsers_UpdatePassword(t *testing.T) {
	db := testDB(t)
	u := testUser(t, db, "ada")

	if err := db.UpdatePassword(u.ID, "new-hash"); err != nil {
		t.Fatalf("update: %v", err)
	}
	_, hash, err := db.GetUserByUsername("ada")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if hash != "new-hash" {
		t.Errorf("hash = %q, want new-hash", hash)
	}

	if err := db.UpdatePassword("ghost", "x"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUsers_ListExcludesSelf(t *testing.T) {
	db := testDB(t)
	ada := testUser(t, db, "ada")
	testUser(t, db, "bob")

	users, err := db.ListUsers(ada.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 1 || users[0].Username != "bob" {
		t.Errorf("list = %+v, want just bob", users)
	}
}

func TestSessions_Lifecycle(t *testing.T) {
	db := testDB(t)
	u := testUser(t, db, "ada")

	sess := domain.Session{Token: "tok-1", UserID: u.ID, ExpiresAt: time.Now().Add(time.Hour)}
	if err := db.CreateSession(sess); err != nil {
		t.Fatalf("create session: %v", err)
	}

	got, err := db.GetSession("tok-1")
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if got == nil || got.UserID != u.ID {
		t.Fatalf("session = %+v", got)
	}

	if err := db.DeleteSession("tok-1"); err != nil {
		t.Fatalf("delete session: %v", err)
	}
	got, err = db.GetSession("tok-1")
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	if got != nil {
		t.Error("session survived deletion")
	}
}

func TestSessions_Purge(t *testing.T) {
	db := testDB(t)
	u := testUser(t, db, "ada")

	now := time.Now()
	_ = db.CreateSession(domain.Session{Token: "old", UserID: u.ID, ExpiresAt: now.Add(-time.Hour)})
	_ = db.CreateSession(domain.Session{Token: "live", UserID: u.ID, ExpiresAt: now.Add(time.Hour)})

	purged, err := db.PurgeExpiredSessions(now)
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if purged != 1 {
		t.Errorf("purged %d sessions, want 1", purged)
	}

	if got, _ := db.GetSession("live"); got == nil {
		t.Error("live session was purged")
	}
}

func TestSeedUserDefaults_Idempotent(t *testing.T) {
	db := testDB(t)
	u := testUser(t, db, "ada")

	for i := 0; i < 2; i++ {
		if err := db.SeedUserDefaults(u.ID, domain.DefaultHabits(), domain.DefaultMoneyCategories()); err != nil {
			t.Fatalf("seed pass %d: %v", i, err)
		}
	}

	habits, err := db.ListHabits(u.ID)
	if err != nil {
		t.Fatalf("list habits: %v", err)
	}
	if len(habits) != len(domain.DefaultHabits()) {
		t.Errorf("habits = %d, want %d", len(habits), len(domain.DefaultHabits()))
	}

	cats, err := db.ListCategories(u.ID)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(cats) != len(domain.DefaultMoneyCategories()) {
		t.Errorf("categories = %d, want %d", len(cats), len(domain.DefaultMoneyCategories()))
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Journal
// ═══════════════════════════════════════════════════════════════════════════

func TestDailyLog_UpsertRoundTrip(t *testing.T) {
	db := testDB(t)
	u := testUser(t, db, "ada")

	mood := 4
	log := domain.DailyLog{
		Date:            "2024-01-02",
		FocusItems:      []string{"ship feature", "review PRs"},
		HabitsCompleted: []string{"gym", "skincare"},
		Mood:            &mood,
		Notes:           "good day",
		DetoxLog: []domain.DetoxEntry{
			{Trigger: "doomscroll urge", Outcome: domain.DetoxSuccess},
		},
	}
	if err := db.UpsertDailyLog(u.ID, log); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := db.GetDailyLog(u.ID, "2024-01-02")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("log not found after upsert")
	}
	if len(got.FocusItems) != 2 || len(got.HabitsCompleted) != 2 {
		t.Errorf("lists = %+v", got)
	}
	if got.Mood == nil || *got.Mood != 4 {
		t.Errorf("mood = %v, want 4", got.Mood)
	}
	if len(got.DetoxLog) != 1 || got.DetoxLog[0].Outcome != domain.DetoxSuccess {
		t.Errorf("detox = %+v", got.DetoxLog)
	}
}

func TestDailyLog_UpsertReplaces(t *testing.T) {
	db := testDB(t)
	u := testUser(t, db, "ada")

	_ = db.UpsertDailyLog(u.ID, domain.DailyLog{Date: "2024-01-02", HabitsCompleted: []string{"gym"}})
	_ = db.UpsertDailyLog(u.ID, domain.DailyLog{Date: "2024-01-02", HabitsCompleted: []string{"gym", "skincare"}, Notes: "v2"})

	got, err := db.GetDailyLog(u.ID, "2024-01-02")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.HabitsCompleted) != 2 || got.Notes != "v2" {
		t.Errorf("second upsert not applied: %+v", got)
	}

	logs, err := db.ListDailyLogs(u.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(logs) != 1 {
		t.Errorf("expected 1 log row, got %d", len(logs))
	}
}

func TestDailyLog_AbsentIsNil(t *testing.T) {
	db := testDB(t)
	u := testUser(t, db, "ada")

	got, err := db.GetDailyLog(u.ID, "1999-01-01")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for absent log, got %+v", got)
	}
}

func TestHabits_DeletePreservesLogs(t *testing.T) {
	db := testDB(t)
	u := testUser(t, db, "ada")

	if err := db.UpsertHabit(u.ID, domain.HabitConfig{ID: "gym", Label: "Gym", Category: "physical"}); err != nil {
		t.Fatalf("upsert habit: %v", err)
	}
	_ = db.UpsertDailyLog(u.ID, domain.DailyLog{Date: "2024-01-02", HabitsCompleted: []string{"gym"}})

	if err := db.DeleteHabit(u.ID, "gym"); err != nil {
		t.Fatalf("delete habit: %v", err)
	}

	log, err := db.GetDailyLog(u.ID, "2024-01-02")
	if err != nil {
		t.Fatalf("get log: %v", err)
	}
	if log == nil || !log.HabitDone("gym") {
		t.Error("habit deletion must not rewrite history")
	}

	if err := db.DeleteHabit(u.ID, "gym"); !errors.Is(err, domain.ErrHabitNotFound) {
		t.Errorf("expected ErrHabitNotFound on double delete, got %v", err)
	}
}

func TestSnapshot_CollectsEverything(t *testing.T) {
	db := testDB(t)
	u := testUser(t, db, "ada")

	_ = db.UpsertDailyLog(u.ID, domain.DailyLog{Date: "2024-01-02", HabitsCompleted: []string{"gym"}})
	_ = db.UpsertLearningItem(u.ID, domain.LearningItem{ID: "l1", Topic: "caching", Status: domain.StatusInProgress})
	_ = db.UpsertProblem(u.ID, domain.ProblemItem{ID: "p1", Name: "two sum", Type: domain.ProblemDSA, Difficulty: domain.DifficultyEasy, Solved: true})
	_ = db.InsertPracticeEntry(u.ID, domain.PracticeEntry{ID: "pr1", Date: "2024-01-02", Type: domain.PracticeVerbal})

	snap, err := db.Snapshot(u.ID)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(snap.DailyLogs) != 1 || len(snap.Learning) != 1 || len(snap.Problems) != 1 || len(snap.Practice) != 1 {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestSnapshot_ScopedToUser(t *testing.T) {
	db := testDB(t)
	ada := testUser(t, db, "ada")
	bob := testUser(t, db, "bob")

	_ = db.UpsertDailyLog(ada.ID, domain.DailyLog{Date: "2024-01-02", HabitsCompleted: []string{"gym"}})

	snap, err := db.Snapshot(bob.ID)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(snap.DailyLogs) != 0 {
		t.Errorf("bob sees ada's logs: %+v", snap.DailyLogs)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Money
// ═══════════════════════════════════════════════════════════════════════════

func TestCategories_DefaultsProtected(t *testing.T) {
	db := testDB(t)
	u := testUser(t, db, "ada")
	_ = db.SeedUserDefaults(u.ID, nil, domain.DefaultMoneyCategories())

	cats, err := db.ListCategories(u.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(cats) == 0 {
		t.Fatal("no categories seeded")
	}

	if err := db.DeleteCategory(u.ID, cats[0].ID); !errors.Is(err, domain.ErrCategoryProtected) {
		t.Errorf("expected ErrCategoryProtected, got %v", err)
	}

	custom := domain.MoneyCategory{ID: "c1", Name: "Books", Type: domain.TxExpense, Icon: "book"}
	if err := db.InsertCategory(u.ID, custom); err != nil {
		t.Fatalf("insert custom: %v", err)
	}
	if err := db.DeleteCategory(u.ID, "c1"); err != nil {
		t.Fatalf("delete custom: %v", err)
	}
}

func TestCategories_DuplicateName(t *testing.T) {
	db := testDB(t)
	u := testUser(t, db, "ada")

	c := domain.MoneyCategory{ID: "c1", Name: "Books", Type: domain.TxExpense}
	if err := db.InsertCategory(u.ID, c); err != nil {
		t.Fatalf("insert: %v", err)
	}
	c.ID = "c2"
	if err := db.InsertCategory(u.ID, c); !errors.Is(err, domain.ErrCategoryExists) {
		t.Errorf("expected ErrCategoryExists, got %v", err)
	}
}

func TestTransactions_ListLimit(t *testing.T) {
	db := testDB(t)
	u := testUser(t, db, "ada")

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		tx := domain.Transaction{
			ID: string(rune('a' + i)), CategoryID: "c1", AmountCents: int64(100 * (i + 1)),
			Type: domain.TxExpense, Date: base.AddDate(0, 0, i),
		}
		if err := db.InsertTransaction(u.ID, tx); err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
	}

	all, err := db.ListTransactions(u.ID, 0)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("all = %d, want 5", len(all))
	}

	top, err := db.ListTransactions(u.ID, 2)
	if err != nil {
		t.Fatalf("list limited: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("limited = %d, want 2", len(top))
	}
	// Newest first
	if !top[0].Date.After(top[1].Date) {
		t.Errorf("expected newest first, got %v then %v", top[0].Date, top[1].Date)
	}
}

func TestSharedExpense_RoundTripWithSplits(t *testing.T) {
	db := testDB(t)
	ada := testUser(t, db, "ada")
	bob := testUser(t, db, "bob")

	exp := domain.SharedExpense{
		ID: "e1", Description: "dinner", TotalCents: 1000,
		PaidByID: ada.ID, Date: time.Now(),
		Splits: []domain.ExpenseSplit{
			{UserID: ada.ID, ShareCents: 500, Paid: true},
			{UserID: bob.ID, ShareCents: 500},
		},
	}
	if err := db.InsertSharedExpense(exp); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := db.GetSharedExpense("e1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Splits) != 2 {
		t.Fatalf("splits = %d, want 2", len(got.Splits))
	}
	// Splits join the users table for display names.
	names := map[string]string{}
	for _, s := range got.Splits {
		names[s.UserID] = s.Username
	}
	if names[bob.ID] != "bob" {
		t.Errorf("split usernames = %v", names)
	}

	// Both payer and participant see the expense.
	for _, id := range []string{ada.ID, bob.ID} {
		list, err := db.ListSharedExpenses(id)
		if err != nil {
			t.Fatalf("list for %s: %v", id, err)
		}
		if len(list) != 1 {
			t.Errorf("list for %s = %d, want 1", id, len(list))
		}
	}
}

func TestSharedExpense_MarkSplitUnknown(t *testing.T) {
	db := testDB(t)

	if err := db.MarkSplitPaid("nope", "nobody"); !errors.Is(err, domain.ErrExpenseNotFound) {
		t.Errorf("expected ErrExpenseNotFound, got %v", err)
	}
}
