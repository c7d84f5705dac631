package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/lunchvote/internal/api"
	apiMiddleware "github.com/phrazzld/lunchvote/internal/api/middleware"
	"github.com/phrazzld/lunchvote/internal/api/shared"
	"github.com/phrazzld/lunchvote/internal/platform/logger"
)

const healthCheckTimeout = 2 * time.Second

// setupRouter creates the router with middleware, the API routes and the health check.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	api.RegisterRoutes(r, api.Handlers{
		Restaurants: api.NewRestaurantHandler(app.catalog, app.logger),
		Meals:       api.NewMealHandler(app.catalog, app.logger),
		Voting:      api.NewVotingHandler(app.voting, app.logger),
	})

	r.Get("/health", app.healthHandler)

	return r
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// healthHandler reports liveness and, for PostgreSQL, whether the database answers a ping.
func (app *application) healthHandler(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Database: app.config.Database.Driver}

	if app.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()

		if err := app.db.PingContext(ctx); err != nil {
			logger.FromContextOrDefault(r.Context(), app.logger).
				Warn("health check database ping failed", slog.Any("error", err))
			resp.Status = "unavailable"
			shared.RespondWithJSON(w, r, http.StatusServiceUnavailable, resp)
			return
		}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}
