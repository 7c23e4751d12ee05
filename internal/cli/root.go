// Package cli implements the LifeForge command-line interface using Cobra.
// Each subcommand maps to a daemon capability (serve, user, stats).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lifeforge",
	Short: "LifeForge — Your personal life operating system",
	Long: `LifeForge is a self-hosted personal operating system.
Track habits with streaks, journal daily, earn XP and level up,
split expenses with friends, and chat with an AI coach.

All data lives in a local SQLite file. No cloud, no accounts.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
