package memory

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/phrazzld/lunchvote/internal/domain"
)

type restaurantRecord struct {
	id    int64
	name  string
	votes int
}

// DB is the shared in-memory dataset. Restaurant and meal stores created from the
// same DB see each other's writes, as two repositories over one database would.
type DB struct {
	mu          sync.RWMutex
	restaurants map[int64]*restaurantRecord
	meals       map[int64]*domain.Meal
	nextRest    int64
	nextMeal    int64
	logger      *slog.Logger
}

// New creates an empty dataset. If logger is nil, a default logger will be used.
func New(logger *slog.Logger) *DB {
	if logger == nil {
		logger = slog.Default()
	}
	return &DB{
		restaurants: make(map[int64]*restaurantRecord),
		meals:       make(map[int64]*domain.Meal),
		logger:      logger.With(slog.String("component", "memory_store")),
	}
}

// Restaurants returns a RestaurantStore over the dataset.
func (db *DB) Restaurants() *RestaurantStore {
	return &RestaurantStore{db: db}
}

// Meals returns a MealStore over the dataset.
func (db *DB) Meals() *MealStore {
	return &MealStore{db: db}
}

// mealsOf returns copies of a restaurant's meals ordered by id. Caller holds the lock.
func (db *DB) mealsOf(restaurantID int64) []*domain.Meal {
	meals := []*domain.Meal{}
	for _, m := range db.meals {
		if m.RestaurantID == restaurantID {
			meals = append(meals, m.Clone())
		}
	}
	sort.Slice(meals, func(i, j int) bool { return meals[i].ID < meals[j].ID })
	return meals
}

// restaurant materializes a record with its meals. Caller holds the lock.
func (db *DB) restaurant(rec *restaurantRecord) *domain.Restaurant {
	return &domain.Restaurant{
		ID:    rec.id,
		Name:  rec.name,
		Votes: rec.votes,
		Meals: db.mealsOf(rec.id),
	}
}

// nameTaken reports whether a restaurant other than except uses name. Caller holds the lock.
func (db *DB) nameTaken(name string, except int64) bool {
	for _, rec := range db.restaurants {
		if rec.id != except && rec.name == name {
			return true
		}
	}
	return false
}

// dishTaken reports whether a meal of the restaurant other than except has the same
// name and category. Caller holds the lock.
func (db *DB) dishTaken(m *domain.Meal, restaurantID, except int64) bool {
	for _, other := range db.meals {
		if other.ID != except && other.RestaurantID == restaurantID && other.SameDish(m) {
			return true
		}
	}
	return false
}

// hasDuplicateDish reports whether two meals in the list share name and category.
func hasDuplicateDish(meals []*domain.Meal) bool {
	for i := range meals {
		for j := i + 1; j < len(meals); j++ {
			if meals[i].SameDish(meals[j]) {
				return true
			}
		}
	}
	return false
}
