package mocks

import (
	"context"

	"github.com/phrazzld/lunchvote/internal/domain"
	"github.com/phrazzld/lunchvote/internal/store"
	"github.com/stretchr/testify/mock"
)

var _ store.MealStore = (*MockMealStore)(nil)

// MockMealStore is a mock of store.MealStore for use with testify/mock
type MockMealStore struct {
	mock.Mock
}

// GetByID is a mock implementation of store.MealStore.GetByID
func (m *MockMealStore) GetByID(ctx context.Context, id int64) (*domain.Meal, error) {
	args := m.Called(ctx, id)
	if meal, ok := args.Get(0).(*domain.Meal); ok {
		return meal, args.Error(1)
	}
	return nil, args.Error(1)
}

// ExistsByID is a mock implementation of store.MealStore.ExistsByID
func (m *MockMealStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// FindByRestaurantID is a mock implementation of store.MealStore.FindByRestaurantID
func (m *MockMealStore) FindByRestaurantID(ctx context.Context, restaurantID int64) ([]*domain.Meal, error) {
	args := m.Called(ctx, restaurantID)
	if meals, ok := args.Get(0).([]*domain.Meal); ok {
		return meals, args.Error(1)
	}
	return nil, args.Error(1)
}

// Save is a mock implementation of store.MealStore.Save
func (m *MockMealStore) Save(ctx context.Context, meal *domain.Meal) error {
	args := m.Called(ctx, meal)
	return args.Error(0)
}

// Delete is a mock implementation of store.MealStore.Delete
func (m *MockMealStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// DeleteByRestaurantID is a mock implementation of store.MealStore.DeleteByRestaurantID
func (m *MockMealStore) DeleteByRestaurantID(ctx context.Context, restaurantID int64) error {
	args := m.Called(ctx, restaurantID)
	return args.Error(0)
}

// DeleteAll is a mock implementation of store.MealStore.DeleteAll
func (m *MockMealStore) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
