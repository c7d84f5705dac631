package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/lunchvote/internal/cache"
	"github.com/phrazzld/lunchvote/internal/config"
	"github.com/phrazzld/lunchvote/internal/platform/memory"
	"github.com/phrazzld/lunchvote/internal/platform/postgres"
	"github.com/phrazzld/lunchvote/internal/service"
	"github.com/phrazzld/lunchvote/internal/store"
)

// ErrDatabaseRequired is returned when the postgres driver is configured but no
// connection pool was supplied.
var ErrDatabaseRequired = errors.New("postgres driver requires an open database connection")

// application holds the shared dependencies and owns their cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	restaurants store.RestaurantStore
	meals       store.MealStore
	listCache   cache.ListCache

	catalog service.CatalogService
	voting  service.VotingService
}

// newApplication wires stores, cache and services. db may be nil only when the
// memory driver is configured.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	switch cfg.Database.Driver {
	case config.DriverMemory:
		mem := memory.New(logger)
		app.restaurants = mem.Restaurants()
		app.meals = mem.Meals()
	case config.DriverPostgres:
		if db == nil {
			return nil, ErrDatabaseRequired
		}
		app.restaurants = postgres.NewPostgresRestaurantStore(db, logger)
		app.meals = postgres.NewPostgresMealStore(db, logger)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	var err error
	app.listCache, err = newListCache(cfg.Cache, logger)
	if err != nil {
		return nil, err
	}
	policy := cache.NewPolicy(app.listCache, logger)

	app.catalog, err = service.NewCatalogService(app.restaurants, app.meals, policy, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog service: %w", err)
	}

	app.voting, err = service.NewVotingService(app.restaurants, policy, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create voting service: %w", err)
	}

	logger.Info("application initialized",
		slog.String("database_driver", cfg.Database.Driver),
		slog.Bool("cache_enabled", cfg.Cache.Enabled))
	return app, nil
}

func newListCache(cfg config.CacheConfig, logger *slog.Logger) (cache.ListCache, error) {
	if !cfg.Enabled {
		logger.Info("restaurant list cache disabled")
		return cache.NoopCache{}, nil
	}
	lc, err := cache.NewLRUListCache(cfg.MaxEntries, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create list cache: %w", err)
	}
	return lc, nil
}

// Run serves HTTP until ctx is cancelled, then shuts down and releases resources.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.Any("error", err))
		}
	}
	app.logger.Info("application shutdown completed")
}
