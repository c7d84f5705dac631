package store

import (
	"context"

	"github.com/phrazzld/lunchvote/internal/domain"
)

// MealStore persists individual meals. Meals always belong to a restaurant, so
// Save requires a non-zero RestaurantID.
type MealStore interface {
	// GetByID retrieves a meal by id.
	// Returns ErrMealNotFound if the meal does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Meal, error)

	// ExistsByID reports whether a meal with the id exists.
	ExistsByID(ctx context.Context, id int64) (bool, error)

	// FindByRestaurantID returns the meals owned by a restaurant ordered by id.
	FindByRestaurantID(ctx context.Context, restaurantID int64) ([]*domain.Meal, error)

	// Save inserts the meal when its ID is zero, assigning the id, and updates
	// name, category and price otherwise. The owner reference is never changed by
	// an update.
	// Returns ErrMealExists on a (restaurant, name, category) collision,
	// ErrRestaurantNotFound when the owner does not exist, and ErrMealNotFound when
	// updating a meal that no longer exists.
	Save(ctx context.Context, meal *domain.Meal) error

	// Delete removes a single meal.
	// Returns ErrMealNotFound if the meal does not exist.
	Delete(ctx context.Context, id int64) error

	// DeleteByRestaurantID removes every meal owned by a restaurant.
	DeleteByRestaurantID(ctx context.Context, restaurantID int64) error

	// DeleteAll removes every meal.
	DeleteAll(ctx context.Context) error
}
