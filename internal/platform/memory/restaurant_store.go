package memory

import (
	"context"
	"log/slog"
	"sort"

	"github.com/phrazzld/lunchvote/internal/domain"
	"github.com/phrazzld/lunchvote/internal/platform/logger"
	"github.com/phrazzld/lunchvote/internal/store"
)

// RestaurantStore implements store.RestaurantStore over a DB.
type RestaurantStore struct {
	db *DB
}

var _ store.RestaurantStore = (*RestaurantStore)(nil)

// GetByID implements store.RestaurantStore.GetByID
func (s *RestaurantStore) GetByID(ctx context.Context, id int64) (*domain.Restaurant, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	rec, ok := s.db.restaurants[id]
	if !ok {
		return nil, store.ErrRestaurantNotFound
	}
	return s.db.restaurant(rec), nil
}

// ExistsByID implements store.RestaurantStore.ExistsByID
func (s *RestaurantStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	_, ok := s.db.restaurants[id]
	return ok, nil
}

// FindAllPaged implements store.RestaurantStore.FindAllPaged
func (s *RestaurantStore) FindAllPaged(ctx context.Context, page domain.PageRequest) ([]*domain.Restaurant, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	all := make([]*domain.Restaurant, 0, len(s.db.restaurants))
	for _, rec := range s.db.restaurants {
		all = append(all, &domain.Restaurant{ID: rec.id, Name: rec.name, Votes: rec.votes})
	}
	sort.Slice(all, func(i, j int) bool { return page.Less(all[i], all[j]) })

	total := int64(len(all))
	offset := page.Offset()
	if offset < 0 || offset >= total {
		return []*domain.Restaurant{}, nil
	}
	end := total
	if size := int64(page.Size); size > 0 && size < total-offset {
		end = offset + size
	}

	result := all[offset:end]
	for _, r := range result {
		r.Meals = s.db.mealsOf(r.ID)
	}
	return result, nil
}

// Save implements store.RestaurantStore.Save
func (s *RestaurantStore) Save(ctx context.Context, restaurant *domain.Restaurant) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if restaurant.ID == 0 {
		return s.insert(ctx, restaurant)
	}
	return s.update(ctx, restaurant)
}

func (s *RestaurantStore) insert(ctx context.Context, r *domain.Restaurant) error {
	if s.db.nameTaken(r.Name, 0) {
		return store.ErrRestaurantNameExists
	}
	if hasDuplicateDish(r.Meals) {
		return store.ErrMealExists
	}

	s.db.nextRest++
	id := s.db.nextRest
	s.db.restaurants[id] = &restaurantRecord{id: id, name: r.Name, votes: r.Votes}

	for _, m := range r.Meals {
		s.db.nextMeal++
		m.ID = s.db.nextMeal
	}
	r.AssignID(id)
	for _, m := range r.Meals {
		s.db.meals[m.ID] = m.Clone()
	}

	logger.FromContextOrDefault(ctx, s.db.logger).Debug("restaurant created",
		slog.Int64("restaurant_id", id),
		slog.Int("meal_count", len(r.Meals)))
	return nil
}

func (s *RestaurantStore) update(ctx context.Context, r *domain.Restaurant) error {
	rec, ok := s.db.restaurants[r.ID]
	if !ok {
		return store.ErrRestaurantNotFound
	}
	if s.db.nameTaken(r.Name, r.ID) {
		return store.ErrRestaurantNameExists
	}
	for _, m := range r.Meals {
		if m.ID == 0 {
			continue
		}
		if existing, ok := s.db.meals[m.ID]; !ok || existing.RestaurantID != r.ID {
			return store.ErrMealNotFound
		}
	}
	if hasDuplicateDish(r.Meals) {
		return store.ErrMealExists
	}

	rec.name = r.Name
	for id, m := range s.db.meals {
		if m.RestaurantID != r.ID {
			continue
		}
		if _, kept := r.MealByID(id); !kept {
			delete(s.db.meals, id)
		}
	}
	for _, m := range r.Meals {
		if m.ID == 0 {
			s.db.nextMeal++
			m.ID = s.db.nextMeal
		}
	}
	r.AssignID(r.ID)
	for _, m := range r.Meals {
		s.db.meals[m.ID] = m.Clone()
	}

	logger.FromContextOrDefault(ctx, s.db.logger).Debug("restaurant updated",
		slog.Int64("restaurant_id", r.ID),
		slog.Int("meal_count", len(r.Meals)))
	return nil
}

// Delete implements store.RestaurantStore.Delete
func (s *RestaurantStore) Delete(ctx context.Context, id int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.restaurants[id]; !ok {
		return store.ErrRestaurantNotFound
	}
	delete(s.db.restaurants, id)
	for mealID, m := range s.db.meals {
		if m.RestaurantID == id {
			delete(s.db.meals, mealID)
		}
	}
	return nil
}

// DeleteAll implements store.RestaurantStore.DeleteAll
func (s *RestaurantStore) DeleteAll(ctx context.Context) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	s.db.restaurants = make(map[int64]*restaurantRecord)
	s.db.meals = make(map[int64]*domain.Meal)
	return nil
}

// IncrementVotes implements store.RestaurantStore.IncrementVotes
func (s *RestaurantStore) IncrementVotes(ctx context.Context, id int64) (int, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	rec, ok := s.db.restaurants[id]
	if !ok {
		return 0, store.ErrRestaurantNotFound
	}
	rec.votes++
	return rec.votes, nil
}

// ResetVotes implements store.RestaurantStore.ResetVotes
func (s *RestaurantStore) ResetVotes(ctx context.Context) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, rec := range s.db.restaurants {
		rec.votes = 0
	}
	return nil
}
