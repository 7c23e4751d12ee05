package gamify_test

import (
	"testing"
	"time"

	"github.com/lifeforge/lifeforge/internal/app/gamify"
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
	u := domain.User{ID: "u-" + username, Username: username, Name: username, CreatedAt: time.Now()}
	if err := db.CreateUser(u, "x"); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func TestAchievements_UnlockOnce(t *testing.T) {
	db := testDB(t)
	user := testUser(t, db, "ada")
	svc := gamify.NewAchievementService(db)

	stats := domain.UserStats{HabitCompletions: 3, Level: 1}

	first, err := svc.CheckAndUnlock(user.ID, stats)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(first) != 1 || first[0].ID != "first_habit" {
		t.Fatalf("expected [first_habit], got %v", first)
	}

	// Same stats again: nothing new.
	second, err := svc.CheckAndUnlock(user.ID, stats)
	if err != nil {
		t.Fatalf("recheck: %v", err)
	}
	if len(second) != 0 {
		t.Errorf("expected no new unlocks on recheck, got %d", len(second))
	}

	unlocked, err := svc.ListUnlocked(user.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(unlocked) != 1 {
		t.Errorf("expected 1 persisted unlock, got %d", len(unlocked))
	}
}

func TestAchievements_ProgressiveUnlocks(t *testing.T) {
	db := testDB(t)
	user := testUser(t, db, "grace")
	svc := gamify.NewAchievementService(db)

	// Early stats unlock the starter badges.
	early := domain.UserStats{HabitCompletions: 1, PracticeEntries: 1, Level: 1}
	got, err := svc.CheckAndUnlock(user.ID, early)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 starter unlocks, got %d", len(got))
	}

	// Later stats add streak and level badges without repeating old ones.
	later := domain.UserStats{
		HabitCompletions: 40, PracticeEntries: 1,
		BestStreak: 12, Level: 5, XP: 1700,
	}
	got, err = svc.CheckAndUnlock(user.ID, later)
	if err != nil {
		t.Fatalf("check later: %v", err)
	}
	ids := map[string]bool{}
	for _, def := range got {
		ids[def.ID] = true
	}
	for _, want := range []string{"streak_7", "level_2", "level_5"} {
		if !ids[want] {
			t.Errorf("expected %s among new unlocks, got %v", want, got)
		}
	}
	if ids["first_habit"] {
		t.Error("first_habit unlocked twice")
	}
}

func TestAchievements_CatalogShape(t *testing.T) {
	defs := gamify.AllAchievements()
	if len(defs) != 20 {
		t.Fatalf("expected 20 badges, got %d", len(defs))
	}

	seen := map[string]bool{}
	perCategory := map[domain.AchievementCategory]int{}
	for _, def := range defs {
		if seen[def.ID] {
			t.Errorf("duplicate badge id %q", def.ID)
		}
		seen[def.ID] = true
		if def.Predicate == nil {
			t.Errorf("badge %q has no predicate", def.ID)
		}
		perCategory[def.Category]++
	}
	if len(perCategory) != 5 {
		t.Errorf("expected 5 categories, got %d", len(perCategory))
	}
}

func TestAchievements_IsolatedPerUser(t *testing.T) {
	db := testDB(t)
	a := testUser(t, db, "a")
	b := testUser(t, db, "b")
	svc := gamify.NewAchievementService(db)

	if _, err := svc.CheckAndUnlock(a.ID, domain.UserStats{HabitCompletions: 1, Level: 1}); err != nil {
		t.Fatalf("unlock for a: %v", err)
	}

	got, err := svc.ListUnlocked(b.ID)
	if err != nil {
		t.Fatalf("list for b: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("user b inherited %d unlocks from a", len(got))
	}
}
