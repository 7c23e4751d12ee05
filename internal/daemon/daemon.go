package daemon

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/lifeforge/lifeforge/internal/api"
	"github.com/lifeforge/lifeforge/internal/app/coach"
	"github.com/lifeforge/lifeforge/internal/app/gamify"
	"github.com/lifeforge/lifeforge/internal/app/ledger"
	"github.com/lifeforge/lifeforge/internal/health"
	"github.com/lifeforge/lifeforge/internal/infra/sqlite"
)

// Daemon is the core LifeForge runtime. It wires together all services.
type Daemon struct {
	Config Config
	DB     *sqlite.DB
	Server *api.Server
	cancel context.CancelFunc

	Ledger       *ledger.Service
	Achievements *gamify.AchievementService
	Coach        *coach.Coach // nil when no API key is configured
	Health       *health.Checker
}

// New creates and initializes a Daemon with all services wired.
func New() (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return NewWithConfig(cfg)
}

// NewWithConfig creates a Daemon with the given configuration.
func NewWithConfig(cfg Config) (*Daemon, error) {
	// Pick up a local .env if present (dev convenience for the coach key)
	_ = godotenv.Load()

	db, err := sqlite.Open(cfg.Database.Dir)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	srv := api.NewServer(db)
	srv.SetHabitCategories(cfg.Habits.Categories)

	if cfg.Telemetry.Prometheus {
		srv.EnableMetrics()
	}

	d := &Daemon{
		Config:       cfg,
		DB:           db,
		Server:       srv,
		Ledger:       ledger.NewService(db),
		Achievements: gamify.NewAchievementService(db),
	}

	// AI coach: optional. Without a key the chat route answers 503 and
	// everything else works.
	keyEnv := cfg.Coach.APIKeyEnv
	if keyEnv == "" {
		keyEnv = "LIFEFORGE_COACH_API_KEY"
	}
	if key := os.Getenv(keyEnv); key != "" {
		c, err := coach.New(coach.Config{
			APIKey:  key,
			BaseURL: cfg.Coach.BaseURL,
			Model:   cfg.Coach.Model,
		})
		if err != nil {
			log.Printf("[daemon] WARNING: coach disabled: %v", err)
		} else {
			d.Coach = c
			srv.SetCoach(c)
		}
	} else {
		log.Printf("[daemon] coach disabled: %s not set", keyEnv)
	}

	// Health checker (sqlite ping, data dir, session reaper)
	d.Health = health.NewChecker(db, cfg.Database.Dir)
	srv.SetHealthChecker(d.Health)

	return d, nil
}

// Serve starts the HTTP server and blocks until shutdown.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	// Health checker runs for the daemon's lifetime
	go d.Health.Run(ctx)

	addr := fmt.Sprintf("%s:%d", d.Config.Server.Host, d.Config.Server.Port)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      d.Server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute, // Coach calls can be slow
		IdleTimeout:  2 * time.Minute,
	}

	// Graceful shutdown on signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = httpServer.Shutdown(shutdownCtx)
		_ = d.DB.Close()
	}()

	fmt.Printf("LifeForge serving on http://%s\n", addr)
	if d.Config.Telemetry.Prometheus {
		fmt.Printf("  Metrics: http://%s/metrics\n", addr)
	}
	if d.Coach == nil {
		fmt.Println("  Coach: disabled (no API key)")
	}

	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close shuts down all daemon resources.
func (d *Daemon) Close() {
	if d.cancel != nil {
		d.cancel()
	}
	if d.DB != nil {
		_ = d.DB.Close()
	}
}
