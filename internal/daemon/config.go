// Package daemon manages the LifeForge daemon lifecycle and configuration.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/lifeforge/lifeforge/internal/domain"
)

// Config holds all daemon configuration.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Habits    HabitsConfig    `toml:"habits"`
	Coach     CoachConfig     `toml:"coach"`
	Telemetry TelemetryConfig `toml:"telemetry"`
}

// ServerConfig controls the HTTP API server.
type ServerConfig struct {
	Host        string   `toml:"host"`
	Port        int      `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
}

// DatabaseConfig controls SQLite storage.
type DatabaseConfig struct {
	Dir string `toml:"dir"`
}

// HabitsConfig is the configuration-time habit category set.
// The category enum lives here, not in the core: adding a category is
// a config change, validated at the API boundary.
type HabitsConfig struct {
	Categories []string `toml:"categories"`
}

// CoachConfig controls the AI coach backend. The API key is read from
// the named environment variable, never from the config file.
type CoachConfig struct {
	BaseURL   string `toml:"base_url"`
	Model     string `toml:"model"`
	APIKeyEnv string `toml:"api_key_env"`
}

// TelemetryConfig controls observability.
type TelemetryConfig struct {
	Prometheus bool `toml:"prometheus"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	homeDir := lifeforgeHome()
	return Config{
		Server: ServerConfig{
			Host:        "127.0.0.1",
			Port:        8466,
			CORSOrigins: []string{"*"},
		},
		Database: DatabaseConfig{
			Dir: filepath.Join(homeDir, "data"),
		},
		Habits: HabitsConfig{
			Categories: domain.DefaultHabitCategories,
		},
		Coach: CoachConfig{
			Model:     "gpt-4o-mini",
			APIKeyEnv: "LIFEFORGE_COACH_API_KEY",
		},
		Telemetry: TelemetryConfig{
			Prometheus: false,
		},
	}
}

// LoadConfig reads config from ~/.lifeforge/config.toml, falling back
// to defaults.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(lifeforgeHome(), "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil // No config file yet — use defaults
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if len(cfg.Habits.Categories) == 0 {
		cfg.Habits.Categories = domain.DefaultHabitCategories
	}

	return cfg, nil
}

// SaveConfig writes the config to ~/.lifeforge/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(lifeforgeHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

// lifeforgeHome returns the LifeForge data directory.
func lifeforgeHome() string {
	if env := os.Getenv("LIFEFORGE_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".lifeforge")
}

// Home is exported for use by other packages.
func Home() string {
	return lifeforgeHome()
}
