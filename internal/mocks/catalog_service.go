package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/lunchvote/internal/domain"
)

// MockCatalogService implements service.CatalogService for testing.
// Each method calls its Fn field when set and otherwise returns the default
// response values.
type MockCatalogService struct {
	GetRestaurantByIDFn             func(ctx context.Context, id int64) (*domain.Restaurant, error)
	ListRestaurantsFn               func(ctx context.Context, page *domain.PageRequest) ([]*domain.Restaurant, error)
	CreateRestaurantFn              func(ctx context.Context, payload *domain.Restaurant) (*domain.Restaurant, error)
	UpdateRestaurantByIDFn          func(ctx context.Context, id int64, payload *domain.Restaurant) (*domain.Restaurant, error)
	DeleteRestaurantByIDFn          func(ctx context.Context, id int64) error
	DeleteAllRestaurantsFn          func(ctx context.Context) error
	GetMealByIDFn                   func(ctx context.Context, id int64) (*domain.Meal, error)
	GetAllMealsByRestaurantIDFn     func(ctx context.Context, restaurantID int64) ([]*domain.Meal, error)
	CreateMealForRestaurantWithIDFn func(ctx context.Context, restaurantID int64, payload *domain.Meal) (int64, error)
	UpdateMealByIDFn                func(ctx context.Context, id int64, payload *domain.Meal) (*domain.Meal, error)
	DeleteMealByIDFn                func(ctx context.Context, id int64) error
	DeleteAllMealsForRestaurantFn   func(ctx context.Context, restaurantID int64) error
	DeleteAllMealsFn                func(ctx context.Context) error

	// Default response values
	Restaurant  *domain.Restaurant
	Restaurants []*domain.Restaurant
	Meal        *domain.Meal
	Meals       []*domain.Meal
	MealID      int64
	Err         error

	mu    sync.Mutex
	calls map[string]int
	pages []*domain.PageRequest
}

func (m *MockCatalogService) track(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[method]++
}

// Calls returns how many times the named method was invoked.
func (m *MockCatalogService) Calls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

// LastPage returns the page request of the most recent ListRestaurants call.
func (m *MockCatalogService) LastPage() *domain.PageRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.pages) == 0 {
		return nil
	}
	return m.pages[len(m.pages)-1]
}

// GetRestaurantByID implements service.CatalogService
func (m *MockCatalogService) GetRestaurantByID(ctx context.Context, id int64) (*domain.Restaurant, error) {
	m.track("GetRestaurantByID")
	if m.GetRestaurantByIDFn != nil {
		return m.GetRestaurantByIDFn(ctx, id)
	}
	return m.Restaurant, m.Err
}

// ListRestaurants implements service.CatalogService
func (m *MockCatalogService) ListRestaurants(
	ctx context.Context,
	page *domain.PageRequest,
) ([]*domain.Restaurant, error) {
	m.track("ListRestaurants")
	m.mu.Lock()
	m.pages = append(m.pages, page)
	m.mu.Unlock()
	if m.ListRestaurantsFn != nil {
		return m.ListRestaurantsFn(ctx, page)
	}
	return m.Restaurants, m.Err
}

// CreateRestaurant implements service.CatalogService
func (m *MockCatalogService) CreateRestaurant(
	ctx context.Context,
	payload *domain.Restaurant,
) (*domain.Restaurant, error) {
	m.track("CreateRestaurant")
	if m.CreateRestaurantFn != nil {
		return m.CreateRestaurantFn(ctx, payload)
	}
	return m.Restaurant, m.Err
}

// UpdateRestaurantByID implements service.CatalogService
func (m *MockCatalogService) UpdateRestaurantByID(
	ctx context.Context,
	id int64,
	payload *domain.Restaurant,
) (*domain.Restaurant, error) {
	m.track("UpdateRestaurantByID")
	if m.UpdateRestaurantByIDFn != nil {
		return m.UpdateRestaurantByIDFn(ctx, id, payload)
	}
	return m.Restaurant, m.Err
}

// DeleteRestaurantByID implements service.CatalogService
func (m *MockCatalogService) DeleteRestaurantByID(ctx context.Context, id int64) error {
	m.track("DeleteRestaurantByID")
	if m.DeleteRestaurantByIDFn != nil {
		return m.DeleteRestaurantByIDFn(ctx, id)
	}
	return m.Err
}

// DeleteAllRestaurants implements service.CatalogService
func (m *MockCatalogService) DeleteAllRestaurants(ctx context.Context) error {
	m.track("DeleteAllRestaurants")
	if m.DeleteAllRestaurantsFn != nil {
		return m.DeleteAllRestaurantsFn(ctx)
	}
	return m.Err
}

// GetMealByID implements service.CatalogService
func (m *MockCatalogService) GetMealByID(ctx context.Context, id int64) (*domain.Meal, error) {
	m.track("GetMealByID")
	if m.GetMealByIDFn != nil {
		return m.GetMealByIDFn(ctx, id)
	}
	return m.Meal, m.Err
}

// GetAllMealsByRestaurantID implements service.CatalogService
func (m *MockCatalogService) GetAllMealsByRestaurantID(
	ctx context.Context,
	restaurantID int64,
) ([]*domain.Meal, error) {
	m.track("GetAllMealsByRestaurantID")
	if m.GetAllMealsByRestaurantIDFn != nil {
		return m.GetAllMealsByRestaurantIDFn(ctx, restaurantID)
	}
	return m.Meals, m.Err
}

// CreateMealForRestaurantWithID implements service.CatalogService
func (m *MockCatalogService) CreateMealForRestaurantWithID(
	ctx context.Context,
	restaurantID int64,
	payload *domain.Meal,
) (int64, error) {
	m.track("CreateMealForRestaurantWithID")
	if m.CreateMealForRestaurantWithIDFn != nil {
		return m.CreateMealForRestaurantWithIDFn(ctx, restaurantID, payload)
	}
	return m.MealID, m.Err
}

// UpdateMealByID implements service.CatalogService
func (m *MockCatalogService) UpdateMealByID(
	ctx context.Context,
	id int64,
	payload *domain.Meal,
) (*domain.Meal, error) {
	m.track("UpdateMealByID")
	if m.UpdateMealByIDFn != nil {
		return m.UpdateMealByIDFn(ctx, id, payload)
	}
	return m.Meal, m.Err
}

// DeleteMealByID implements service.CatalogService
func (m *MockCatalogService) DeleteMealByID(ctx context.Context, id int64) error {
	m.track("DeleteMealByID")
	if m.DeleteMealByIDFn != nil {
		return m.DeleteMealByIDFn(ctx, id)
	}
	return m.Err
}

// DeleteAllMealsForRestaurant implements service.CatalogService
func (m *MockCatalogService) DeleteAllMealsForRestaurant(ctx context.Context, restaurantID int64) error {
	m.track("DeleteAllMealsForRestaurant")
	if m.DeleteAllMealsForRestaurantFn != nil {
		return m.DeleteAllMealsForRestaurantFn(ctx, restaurantID)
	}
	return m.Err
}

// DeleteAllMeals implements service.CatalogService
func (m *MockCatalogService) DeleteAllMeals(ctx context.Context) error {
	m.track("DeleteAllMeals")
	if m.DeleteAllMealsFn != nil {
		return m.DeleteAllMealsFn(ctx)
	}
	return m.Err
}
