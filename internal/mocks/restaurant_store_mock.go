package mocks

import (
	"context"

	"github.com/phrazzld/lunchvote/internal/domain"
	"github.com/phrazzld/lunchvote/internal/store"
	"github.com/stretchr/testify/mock"
)

var _ store.RestaurantStore = (*MockRestaurantStore)(nil)

// MockRestaurantStore is a mock of store.RestaurantStore for use with testify/mock
type MockRestaurantStore struct {
	mock.Mock
}

// GetByID is a mock implementation of store.RestaurantStore.GetByID
func (m *MockRestaurantStore) GetByID(ctx context.Context, id int64) (*domain.Restaurant, error) {
	args := m.Called(ctx, id)
	if r, ok := args.Get(0).(*domain.Restaurant); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

// ExistsByID is a mock implementation of store.RestaurantStore.ExistsByID
func (m *MockRestaurantStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// FindAllPaged is a mock implementation of store.RestaurantStore.FindAllPaged
func (m *MockRestaurantStore) FindAllPaged(
	ctx context.Context,
	page domain.PageRequest,
) ([]*domain.Restaurant, error) {
	args := m.Called(ctx, page)
	if rs, ok := args.Get(0).([]*domain.Restaurant); ok {
		return rs, args.Error(1)
	}
	return nil, args.Error(1)
}

// Save is a mock implementation of store.RestaurantStore.Save
func (m *MockRestaurantStore) Save(ctx context.Context, restaurant *domain.Restaurant) error {
	args := m.Called(ctx, restaurant)
	return args.Error(0)
}

// Delete is a mock implementation of store.RestaurantStore.Delete
func (m *MockRestaurantStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// DeleteAll is a mock implementation of store.RestaurantStore.DeleteAll
func (m *MockRestaurantStore) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// IncrementVotes is a mock implementation of store.RestaurantStore.IncrementVotes
func (m *MockRestaurantStore) IncrementVotes(ctx context.Context, id int64) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

// ResetVotes is a mock implementation of store.RestaurantStore.ResetVotes
func (m *MockRestaurantStore) ResetVotes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
