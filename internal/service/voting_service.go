package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/lunchvote/internal/cache"
	"github.com/phrazzld/lunchvote/internal/domain"
	"github.com/phrazzld/lunchvote/internal/platform/logger"
	"github.com/phrazzld/lunchvote/internal/store"
)

// VotingService changes restaurant vote counts. Votes are never changed through
// the catalog operations.
type VotingService interface {
	// VoteForRestaurantByID adds exactly one vote and returns the new count.
	VoteForRestaurantByID(ctx context.Context, id int64) (int, error)

	// ClearAllVotes resets every restaurant's vote count to zero.
	ClearAllVotes(ctx context.Context) error
}

// votingServiceImpl implements the VotingService interface
type votingServiceImpl struct {
	restaurants store.RestaurantStore
	policy      *cache.Policy
	logger      *slog.Logger
}

// NewVotingService creates a new VotingService.
// It returns an error if the restaurant store is nil. A nil policy disables caching.
func NewVotingService(
	restaurants store.RestaurantStore,
	policy *cache.Policy,
	logger *slog.Logger,
) (VotingService, error) {
	if restaurants == nil {
		return nil, NewCatalogError("new_voting_service", "restaurant store is nil", ErrNilDependency)
	}

	if logger == nil {
		logger = slog.Default()
	}
	if policy == nil {
		policy = cache.NewPolicy(cache.NoopCache{}, logger)
	}

	return &votingServiceImpl{
		restaurants: restaurants,
		policy:      policy,
		logger:      logger.With(slog.String("component", "voting_service")),
	}, nil
}

// VoteForRestaurantByID implements VotingService.VoteForRestaurantByID
// The increment happens atomically in the store, so concurrent votes are never lost.
func (s *votingServiceImpl) VoteForRestaurantByID(ctx context.Context, id int64) (int, error) {
	const op = "vote"
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := domain.RequireIDPresent(id); err != nil {
		return 0, failure(log, op, "invalid restaurant id", err)
	}

	votes, err := s.restaurants.IncrementVotes(ctx, id)
	if err != nil {
		return 0, failure(log, op, "failed to record vote", translateStoreError(err, "restaurant", id))
	}

	s.policy.AfterMutation(ctx, cache.Mutation{Kind: cache.Vote, RestaurantID: id})
	log.Info("vote recorded",
		slog.Int64("restaurant_id", id),
		slog.Int("votes", votes))
	return votes, nil
}

// ClearAllVotes implements VotingService.ClearAllVotes
func (s *votingServiceImpl) ClearAllVotes(ctx context.Context) error {
	const op = "clear_votes"
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.restaurants.ResetVotes(ctx); err != nil {
		return failure(log, op, "failed to clear votes", translateStoreError(err, "restaurant", 0))
	}

	s.policy.AfterMutation(ctx, cache.Mutation{Kind: cache.ClearVotes})
	log.Info("all votes cleared")
	return nil
}
