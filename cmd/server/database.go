package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	"github.com/phrazzld/lunchvote/internal/config"
	"github.com/phrazzld/lunchvote/internal/redact"
)

const pingTimeout = 5 * time.Second

// openDatabase opens and verifies the PostgreSQL connection pool. It returns a
// nil pool when the memory driver is configured.
func openDatabase(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*sql.DB, error) {
	if cfg.Driver == config.DriverMemory {
		logger.Info("using in-memory stores; data will not survive a restart")
		return nil, nil
	}

	logger.Info("opening database connection", slog.String("url", redact.DatabaseURL(cfg.URL)))

	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	configurePool(db, cfg, logger)

	if err := pingDatabase(ctx, db); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logger.Error("failed to close database after ping failure",
				slog.String("error", redact.Error(closeErr)))
		}
		return nil, err
	}

	logger.Info("database connection established")
	return db, nil
}

// configurePool applies the pool limits from cfg.
func configurePool(db *sql.DB, cfg config.DatabaseConfig, logger *slog.Logger) {
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime())
	logger.Debug("configured database connection pool",
		slog.Int("max_open_conns", cfg.MaxOpenConns),
		slog.Int("max_idle_conns", cfg.MaxIdleConns),
		slog.Duration("conn_max_lifetime", cfg.ConnMaxLifetime()))
}

func pingDatabase(ctx context.Context, db *sql.DB) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("database ping timed out after %s: %w", pingTimeout, err)
		}
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}
