package cache

import (
	"context"
	"log/slog"

	"github.com/phrazzld/lunchvote/internal/platform/logger"
)

// MutationKind names a state-changing catalog or voting operation.
type MutationKind string

// Mutation kinds
const (
	CreateRestaurant     MutationKind = "create-restaurant"
	UpdateRestaurant     MutationKind = "update-restaurant"
	DeleteRestaurant     MutationKind = "delete-restaurant"
	DeleteAllRestaurants MutationKind = "delete-all-restaurants"
	CreateMeal           MutationKind = "create-meal"
	UpdateMeal           MutationKind = "update-meal"
	DeleteMeal           MutationKind = "delete-meal"
	DeleteMeals          MutationKind = "delete-meals"
	Vote                 MutationKind = "vote"
	ClearVotes           MutationKind = "clear-votes"
)

// Mutation describes a completed write.
type Mutation struct {
	Kind         MutationKind
	RestaurantID int64
	MealID       int64
}

// Policy clears the list cache after mutations that can change a list page.
type Policy struct {
	cache  ListCache
	logger *slog.Logger
}

// NewPolicy creates a policy over cache. If logger is nil, a default logger will be used.
func NewPolicy(cache ListCache, logger *slog.Logger) *Policy {
	if cache == nil {
		cache = NoopCache{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Policy{
		cache:  cache,
		logger: logger.With(slog.String("component", "cache_policy")),
	}
}

// Cache returns the list cache the policy guards.
func (p *Policy) Cache() ListCache {
	return p.cache
}

// Invalidates reports whether m clears the list cache. Every mutation does:
// list pages embed meals and are ordered by votes, so any write can change them.
func (p *Policy) Invalidates(m Mutation) bool {
	switch m.Kind {
	case CreateRestaurant, UpdateRestaurant, DeleteRestaurant, DeleteAllRestaurants,
		CreateMeal, UpdateMeal, DeleteMeal, DeleteMeals,
		Vote, ClearVotes:
		return true
	default:
		return false
	}
}

// AfterMutation applies the policy synchronously. Call it only after the write
// succeeded.
func (p *Policy) AfterMutation(ctx context.Context, m Mutation) {
	if !p.Invalidates(m) {
		return
	}
	p.cache.InvalidateAll()

	logger.FromContextOrDefault(ctx, p.logger).Debug("list cache invalidated",
		slog.String("mutation", string(m.Kind)),
		slog.Int64("restaurant_id", m.RestaurantID),
		slog.Int64("meal_id", m.MealID))
}
