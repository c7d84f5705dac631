package store

import (
	"context"

	"github.com/phrazzld/lunchvote/internal/domain"
)

// RestaurantStore persists restaurants together with the meals they own.
type RestaurantStore interface {
	// GetByID retrieves a restaurant and its meals ordered by meal id.
	// Returns ErrRestaurantNotFound if the restaurant does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Restaurant, error)

	// ExistsByID reports whether a restaurant with the id exists.
	ExistsByID(ctx context.Context, id int64) (bool, error)

	// FindAllPaged returns one page of restaurants, with meals, ordered as the
	// request specifies and with ties broken by id in the same direction.
	FindAllPaged(ctx context.Context, page domain.PageRequest) ([]*domain.Restaurant, error)

	// Save inserts the restaurant when its ID is zero and updates it otherwise.
	// The meal collection is persisted as given: meals without an id are inserted,
	// meals with an id are updated, and meals previously owned by the restaurant
	// but missing from the collection are deleted. On insert the store assigns the
	// id through Restaurant.AssignID. Votes are written on insert only.
	//
	// Returns ErrRestaurantNameExists or ErrMealExists on uniqueness violations and
	// ErrRestaurantNotFound when updating a restaurant that no longer exists.
	// The whole save is atomic.
	Save(ctx context.Context, restaurant *domain.Restaurant) error

	// Delete removes a restaurant and every meal it owns.
	// Returns ErrRestaurantNotFound if the restaurant does not exist.
	Delete(ctx context.Context, id int64) error

	// DeleteAll removes every restaurant and meal.
	DeleteAll(ctx context.Context) error

	// IncrementVotes atomically adds one vote and returns the new count.
	// Returns ErrRestaurantNotFound if the restaurant does not exist.
	IncrementVotes(ctx context.Context, id int64) (int, error)

	// ResetVotes sets every restaurant's vote count to zero.
	ResetVotes(ctx context.Context) error
}
