package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lifeforge/lifeforge/internal/app/gamify"
	"github.com/lifeforge/lifeforge/internal/app/streak"
)

func init() {
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats USERNAME",
	Short: "Show level, XP, and habit streaks for a user",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	user, _, err := db.GetUserByUsername(args[0])
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("no such user %q", args[0])
	}

	snap, err := db.Snapshot(user.ID)
	if err != nil {
		return err
	}

	stats := gamify.ComputeStats(snap)
	fmt.Printf("%s (@%s)\n", user.Name, user.Username)
	fmt.Printf("  Level %d — %s\n", stats.LevelInfo.Level, stats.LevelInfo.Title)
	fmt.Printf("  XP: %d / %d (%.0f%% to next level)\n",
		stats.LevelInfo.CurrentXP, stats.LevelInfo.NextLevelXP, stats.LevelInfo.Progress)

	habits, err := db.ListHabits(user.ID)
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		return nil
	}

	fmt.Println("  Streaks:")
	now := time.Now()
	for _, h := range habits {
		res := streak.Compute(h.ID, snap.DailyLogs, now)
		fmt.Printf("    %-20s current %3d  total %3d\n", h.Label, res.Current, res.Total)
	}
	return nil
}
