package memory

import (
	"context"
	"fmt"

	"github.com/phrazzld/lunchvote/internal/domain"
	"github.com/phrazzld/lunchvote/internal/store"
)

// MealStore implements store.MealStore over a DB.
type MealStore struct {
	db *DB
}

var _ store.MealStore = (*MealStore)(nil)

// GetByID implements store.MealStore.GetByID
func (s *MealStore) GetByID(ctx context.Context, id int64) (*domain.Meal, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	m, ok := s.db.meals[id]
	if !ok {
		return nil, store.ErrMealNotFound
	}
	return m.Clone(), nil
}

// ExistsByID implements store.MealStore.ExistsByID
func (s *MealStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	_, ok := s.db.meals[id]
	return ok, nil
}

// FindByRestaurantID implements store.MealStore.FindByRestaurantID
func (s *MealStore) FindByRestaurantID(ctx context.Context, restaurantID int64) ([]*domain.Meal, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	return s.db.mealsOf(restaurantID), nil
}

// Save implements store.MealStore.Save
func (s *MealStore) Save(ctx context.Context, meal *domain.Meal) error {
	if meal.RestaurantID == 0 {
		return fmt.Errorf("%w: meal has no owning restaurant", store.ErrInvalidEntity)
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.restaurants[meal.RestaurantID]; !ok {
		return store.ErrRestaurantNotFound
	}

	if meal.ID == 0 {
		if s.db.dishTaken(meal, meal.RestaurantID, 0) {
			return store.ErrMealExists
		}
		s.db.nextMeal++
		meal.ID = s.db.nextMeal
		s.db.meals[meal.ID] = meal.Clone()
		return nil
	}

	existing, ok := s.db.meals[meal.ID]
	if !ok || existing.RestaurantID != meal.RestaurantID {
		return store.ErrMealNotFound
	}
	if s.db.dishTaken(meal, meal.RestaurantID, meal.ID) {
		return store.ErrMealExists
	}
	existing.Name = meal.Name
	existing.Category = meal.Category
	existing.Price = meal.Price
	return nil
}

// Delete implements store.MealStore.Delete
func (s *MealStore) Delete(ctx context.Context, id int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.meals[id]; !ok {
		return store.ErrMealNotFound
	}
	delete(s.db.meals, id)
	return nil
}

// DeleteByRestaurantID implements store.MealStore.DeleteByRestaurantID
func (s *MealStore) DeleteByRestaurantID(ctx context.Context, restaurantID int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for id, m := range s.db.meals {
		if m.RestaurantID == restaurantID {
			delete(s.db.meals, id)
		}
	}
	return nil
}

// DeleteAll implements store.MealStore.DeleteAll
func (s *MealStore) DeleteAll(ctx context.Context) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	s.db.meals = make(map[int64]*domain.Meal)
	return nil
}
