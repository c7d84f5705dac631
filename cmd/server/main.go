// Package main implements the entry point for the lunchvote API server, which
// serves the restaurant catalog and lunch voting endpoints.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/phrazzld/lunchvote/internal/config"
	"github.com/phrazzld/lunchvote/internal/platform/logger"
)

func main() {
	migrate := flag.String("migrate", "", "run a goose migration command (up, down, status, version, reset) and exit")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *migrate); err != nil {
		log.Fatalf("lunchvote: %v", err)
	}
}

// run wires the application from configuration. A non-empty migrateCommand runs
// that migration command instead of starting the HTTP server.
func run(ctx context.Context, migrateCommand string) error {
	cfg, appLogger, err := initializeApp()
	if err != nil {
		return err
	}

	if migrateCommand != "" {
		return runMigrations(ctx, cfg, appLogger, migrateCommand)
	}

	db, err := openDatabase(ctx, cfg.Database, appLogger)
	if err != nil {
		return err
	}

	app, err := newApplication(cfg, appLogger, db)
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}

// initializeApp loads the optional .env file and configuration, then sets up
// structured logging at the configured level.
func initializeApp() (*config.Config, *slog.Logger, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, nil, err
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(logger.LoggerConfig{Level: cfg.Server.LogLevel})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("database_driver", cfg.Database.Driver),
		slog.Bool("cache_enabled", cfg.Cache.Enabled))

	return cfg, appLogger, nil
}

// loadDotEnv populates the environment from path. A missing file is not an error;
// variables already set in the environment win.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

