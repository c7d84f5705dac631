package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/lunchvote/internal/cache"
	"github.com/phrazzld/lunchvote/internal/domain"
	"github.com/phrazzld/lunchvote/internal/platform/logger"
	"github.com/phrazzld/lunchvote/internal/store"
)

// ErrNilDependency is returned by constructors given a nil collaborator.
var ErrNilDependency = errors.New("service dependency cannot be nil")

// CatalogService provides restaurant and meal catalog operations.
type CatalogService interface {
	// GetRestaurantByID returns a restaurant with its meals.
	GetRestaurantByID(ctx context.Context, id int64) (*domain.Restaurant, error)

	// ListRestaurants returns one ordered page of restaurants. A nil page request
	// means the default paging.
	ListRestaurants(ctx context.Context, page *domain.PageRequest) ([]*domain.Restaurant, error)

	// CreateRestaurant persists a new restaurant with zero votes and returns it
	// with store-assigned ids.
	CreateRestaurant(ctx context.Context, payload *domain.Restaurant) (*domain.Restaurant, error)

	// UpdateRestaurantByID replaces the name and the whole meal collection of a
	// restaurant. The vote count is left untouched.
	UpdateRestaurantByID(ctx context.Context, id int64, payload *domain.Restaurant) (*domain.Restaurant, error)

	// DeleteRestaurantByID removes a restaurant and its meals.
	DeleteRestaurantByID(ctx context.Context, id int64) error

	// DeleteAllRestaurants removes every restaurant and meal.
	DeleteAllRestaurants(ctx context.Context) error

	// GetMealByID returns a single meal.
	GetMealByID(ctx context.Context, id int64) (*domain.Meal, error)

	// GetAllMealsByRestaurantID returns the meals of a restaurant ordered by id.
	GetAllMealsByRestaurantID(ctx context.Context, restaurantID int64) ([]*domain.Meal, error)

	// CreateMealForRestaurantWithID attaches a new meal to a restaurant and returns
	// the meal id.
	CreateMealForRestaurantWithID(ctx context.Context, restaurantID int64, payload *domain.Meal) (int64, error)

	// UpdateMealByID changes name, category and price of a meal in place.
	UpdateMealByID(ctx context.Context, id int64, payload *domain.Meal) (*domain.Meal, error)

	// DeleteMealByID detaches a meal from its restaurant and removes it.
	DeleteMealByID(ctx context.Context, id int64) error

	// DeleteAllMealsForRestaurant removes every meal of a restaurant.
	DeleteAllMealsForRestaurant(ctx context.Context, restaurantID int64) error

	// DeleteAllMeals removes every meal of every restaurant.
	DeleteAllMeals(ctx context.Context) error
}

// catalogServiceImpl implements the CatalogService interface
type catalogServiceImpl struct {
	restaurants store.RestaurantStore
	meals       store.MealStore
	policy      *cache.Policy
	logger      *slog.Logger
}

// NewCatalogService creates a new CatalogService.
// It returns an error if any of the stores is nil. A nil policy disables caching.
func NewCatalogService(
	restaurants store.RestaurantStore,
	meals store.MealStore,
	policy *cache.Policy,
	logger *slog.Logger,
) (CatalogService, error) {
	if restaurants == nil {
		return nil, NewCatalogError("new_catalog_service", "restaurant store is nil", ErrNilDependency)
	}
	if meals == nil {
		return nil, NewCatalogError("new_catalog_service", "meal store is nil", ErrNilDependency)
	}

	if logger == nil {
		logger = slog.Default()
	}
	if policy == nil {
		policy = cache.NewPolicy(cache.NoopCache{}, logger)
	}

	return &catalogServiceImpl{
		restaurants: restaurants,
		meals:       meals,
		policy:      policy,
		logger:      logger.With(slog.String("component", "catalog_service")),
	}, nil
}

func (s *catalogServiceImpl) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, s.logger)
}

// GetRestaurantByID implements CatalogService.GetRestaurantByID
func (s *catalogServiceImpl) GetRestaurantByID(ctx context.Context, id int64) (*domain.Restaurant, error) {
	const op = "get_restaurant"
	log := s.log(ctx)

	if err := domain.RequireIDPresent(id); err != nil {
		return nil, failure(log, op, "invalid restaurant id", err)
	}

	r, err := s.restaurants.GetByID(ctx, id)
	if err != nil {
		return nil, failure(log, op, "failed to load restaurant", translateStoreError(err, "restaurant", id))
	}
	return r, nil
}

// ListRestaurants implements CatalogService.ListRestaurants
func (s *catalogServiceImpl) ListRestaurants(
	ctx context.Context,
	page *domain.PageRequest,
) ([]*domain.Restaurant, error) {
	const op = "list_restaurants"
	log := s.log(ctx)

	req := domain.DefaultPageRequest()
	if page != nil {
		req = *page
	}
	if err := checkPageRequest(req); err != nil {
		return nil, failure(log, op, "invalid page request", err)
	}

	restaurants, err := cache.GetOrLoad(ctx, s.policy.Cache(), req.CacheKey(),
		func(ctx context.Context) ([]*domain.Restaurant, error) {
			log.Debug("list cache miss", slog.String("key", req.CacheKey()))
			return s.restaurants.FindAllPaged(ctx, req)
		})
	if err != nil {
		return nil, failure(log, op, "failed to list restaurants", translateStoreError(err, "restaurant", 0))
	}
	return restaurants, nil
}

func checkPageRequest(p domain.PageRequest) error {
	if p.Page < 0 {
		return domain.NewInvalidArgumentError("page must not be negative")
	}
	if p.Size < 1 {
		return domain.NewInvalidArgumentError("page size must be at least 1")
	}
	if _, err := domain.ParseSortField(string(p.SortField)); err != nil {
		return err
	}
	if _, err := domain.ParseSortDirection(string(p.Direction)); err != nil {
		return err
	}
	return nil
}

// CreateRestaurant implements CatalogService.CreateRestaurant
func (s *catalogServiceImpl) CreateRestaurant(
	ctx context.Context,
	payload *domain.Restaurant,
) (*domain.Restaurant, error) {
	const op = "create_restaurant"
	log := s.log(ctx)

	if err := domain.RequireInstance(payload); err != nil {
		return nil, failure(log, op, "missing restaurant", err)
	}
	if err := domain.RequireIDAbsent(payload.ID); err != nil {
		return nil, failure(log, op, "restaurant id supplied on create", err)
	}
	if err := domain.RequireMealIDsAbsent(payload); err != nil {
		return nil, failure(log, op, "meal id supplied on create", err)
	}
	if err := domain.ValidateRestaurantFields(payload); err != nil {
		return nil, failure(log, op, "invalid restaurant", err)
	}

	r := domain.NewRestaurant(payload.Name)
	for _, m := range payload.Meals {
		r.AddMeal(domain.NewMeal(m.Name, m.Category, m.Price))
	}

	if err := s.restaurants.Save(ctx, r); err != nil {
		return nil, failure(log, op, "failed to save restaurant", translateStoreError(err, "restaurant", 0))
	}

	s.policy.AfterMutation(ctx, cache.Mutation{Kind: cache.CreateRestaurant, RestaurantID: r.ID})
	log.Info("restaurant created",
		slog.Int64("restaurant_id", r.ID),
		slog.Int("meal_count", len(r.Meals)))
	return r, nil
}

// UpdateRestaurantByID implements CatalogService.UpdateRestaurantByID
func (s *catalogServiceImpl) UpdateRestaurantByID(
	ctx context.Context,
	id int64,
	payload *domain.Restaurant,
) (*domain.Restaurant, error) {
	const op = "update_restaurant"
	log := s.log(ctx)

	if err := domain.RequireIDPresent(id); err != nil {
		return nil, failure(log, op, "invalid restaurant id", err)
	}
	if err := domain.RequireInstance(payload); err != nil {
		return nil, failure(log, op, "missing restaurant", err)
	}
	if err := requireMatchingID(payload.ID, id); err != nil {
		return nil, failure(log, op, "restaurant id mismatch", err)
	}
	if err := domain.RequireMealIDsAbsent(payload); err != nil {
		return nil, failure(log, op, "meal id supplied on update", err)
	}
	if err := domain.ValidateRestaurantFields(payload); err != nil {
		return nil, failure(log, op, "invalid restaurant", err)
	}

	r, err := s.restaurants.GetByID(ctx, id)
	if err != nil {
		return nil, failure(log, op, "failed to load restaurant", translateStoreError(err, "restaurant", id))
	}

	r.Name = payload.Name
	r.ClearMeals()
	for _, m := range payload.Meals {
		r.AddMeal(domain.NewMeal(m.Name, m.Category, m.Price))
	}

	if err := s.restaurants.Save(ctx, r); err != nil {
		return nil, failure(log, op, "failed to save restaurant", translateStoreError(err, "restaurant", id))
	}

	s.policy.AfterMutation(ctx, cache.Mutation{Kind: cache.UpdateRestaurant, RestaurantID: id})
	log.Info("restaurant updated",
		slog.Int64("restaurant_id", id),
		slog.Int("meal_count", len(r.Meals)))
	return r, nil
}

// DeleteRestaurantByID implements CatalogService.DeleteRestaurantByID
func (s *catalogServiceImpl) DeleteRestaurantByID(ctx context.Context, id int64) error {
	const op = "delete_restaurant"
	log := s.log(ctx)

	if err := domain.RequireIDPresent(id); err != nil {
		return failure(log, op, "invalid restaurant id", err)
	}

	r, err := s.restaurants.GetByID(ctx, id)
	if err != nil {
		return failure(log, op, "failed to load restaurant", translateStoreError(err, "restaurant", id))
	}
	detached := r.ClearMeals()

	if err := s.restaurants.Delete(ctx, id); err != nil {
		return failure(log, op, "failed to delete restaurant", translateStoreError(err, "restaurant", id))
	}

	s.policy.AfterMutation(ctx, cache.Mutation{Kind: cache.DeleteRestaurant, RestaurantID: id})
	log.Info("restaurant deleted",
		slog.Int64("restaurant_id", id),
		slog.Int("meals_deleted", len(detached)))
	return nil
}

// DeleteAllRestaurants implements CatalogService.DeleteAllRestaurants
func (s *catalogServiceImpl) DeleteAllRestaurants(ctx context.Context) error {
	const op = "delete_all_restaurants"
	log := s.log(ctx)

	if err := s.restaurants.DeleteAll(ctx); err != nil {
		return failure(log, op, "failed to delete restaurants", translateStoreError(err, "restaurant", 0))
	}

	s.policy.AfterMutation(ctx, cache.Mutation{Kind: cache.DeleteAllRestaurants})
	log.Info("all restaurants deleted")
	return nil
}

// GetMealByID implements CatalogService.GetMealByID
func (s *catalogServiceImpl) GetMealByID(ctx context.Context, id int64) (*domain.Meal, error) {
	const op = "get_meal"
	log := s.log(ctx)

	if err := domain.RequireIDPresent(id); err != nil {
		return nil, failure(log, op, "invalid meal id", err)
	}

	m, err := s.meals.GetByID(ctx, id)
	if err != nil {
		return nil, failure(log, op, "failed to load meal", translateStoreError(err, "meal", id))
	}
	return m, nil
}

// GetAllMealsByRestaurantID implements CatalogService.GetAllMealsByRestaurantID
func (s *catalogServiceImpl) GetAllMealsByRestaurantID(
	ctx context.Context,
	restaurantID int64,
) ([]*domain.Meal, error) {
	const op = "get_restaurant_meals"
	log := s.log(ctx)

	if err := domain.RequireIDPresent(restaurantID); err != nil {
		return nil, failure(log, op, "invalid restaurant id", err)
	}

	exists, err := s.restaurants.ExistsByID(ctx, restaurantID)
	if err != nil {
		return nil, failure(log, op, "failed to check restaurant", err)
	}
	if !exists {
		return nil, failure(log, op, "restaurant not found", domain.NewNotFoundError("restaurant", restaurantID))
	}

	meals, err := s.meals.FindByRestaurantID(ctx, restaurantID)
	if err != nil {
		return nil, failure(log, op, "failed to load meals", translateStoreError(err, "restaurant", restaurantID))
	}
	return meals, nil
}

// CreateMealForRestaurantWithID implements CatalogService.CreateMealForRestaurantWithID
func (s *catalogServiceImpl) CreateMealForRestaurantWithID(
	ctx context.Context,
	restaurantID int64,
	payload *domain.Meal,
) (int64, error) {
	const op = "create_meal"
	log := s.log(ctx)

	if err := domain.RequireIDPresent(restaurantID); err != nil {
		return 0, failure(log, op, "invalid restaurant id", err)
	}
	if err := domain.RequireInstance(payload); err != nil {
		return 0, failure(log, op, "missing meal", err)
	}
	if err := domain.RequireIDAbsent(payload.ID); err != nil {
		return 0, failure(log, op, "meal id supplied on create", err)
	}
	if err := domain.ValidateMealFields(payload); err != nil {
		return 0, failure(log, op, "invalid meal", err)
	}

	r, err := s.restaurants.GetByID(ctx, restaurantID)
	if err != nil {
		return 0, failure(log, op, "failed to load restaurant", translateStoreError(err, "restaurant", restaurantID))
	}

	meal := domain.NewMeal(payload.Name, payload.Category, payload.Price)
	r.AddMeal(meal)

	if err := s.meals.Save(ctx, meal); err != nil {
		r.RemoveMeal(meal)
		return 0, failure(log, op, "failed to save meal", translateStoreError(err, "restaurant", restaurantID))
	}

	s.policy.AfterMutation(ctx, cache.Mutation{Kind: cache.CreateMeal, RestaurantID: restaurantID, MealID: meal.ID})
	log.Info("meal created",
		slog.Int64("meal_id", meal.ID),
		slog.Int64("restaurant_id", restaurantID))
	return meal.ID, nil
}

// UpdateMealByID implements CatalogService.UpdateMealByID
func (s *catalogServiceImpl) UpdateMealByID(
	ctx context.Context,
	id int64,
	payload *domain.Meal,
) (*domain.Meal, error) {
	const op = "update_meal"
	log := s.log(ctx)

	if err := domain.RequireIDPresent(id); err != nil {
		return nil, failure(log, op, "invalid meal id", err)
	}
	if err := domain.RequireInstance(payload); err != nil {
		return nil, failure(log, op, "missing meal", err)
	}
	if err := requireMatchingID(payload.ID, id); err != nil {
		return nil, failure(log, op, "meal id mismatch", err)
	}
	if err := domain.ValidateMealFields(payload); err != nil {
		return nil, failure(log, op, "invalid meal", err)
	}

	m, err := s.meals.GetByID(ctx, id)
	if err != nil {
		return nil, failure(log, op, "failed to load meal", translateStoreError(err, "meal", id))
	}

	m.Name = payload.Name
	m.Category = payload.Category
	m.Price = payload.Price

	if err := s.meals.Save(ctx, m); err != nil {
		return nil, failure(log, op, "failed to save meal", translateStoreError(err, "meal", id))
	}

	s.policy.AfterMutation(ctx, cache.Mutation{Kind: cache.UpdateMeal, RestaurantID: m.RestaurantID, MealID: id})
	log.Info("meal updated", slog.Int64("meal_id", id))
	return m, nil
}

// DeleteMealByID implements CatalogService.DeleteMealByID
func (s *catalogServiceImpl) DeleteMealByID(ctx context.Context, id int64) error {
	const op = "delete_meal"
	log := s.log(ctx)

	if err := domain.RequireIDPresent(id); err != nil {
		return failure(log, op, "invalid meal id", err)
	}

	m, err := s.meals.GetByID(ctx, id)
	if err != nil {
		return failure(log, op, "failed to load meal", translateStoreError(err, "meal", id))
	}
	restaurantID := m.RestaurantID

	r, err := s.restaurants.GetByID(ctx, restaurantID)
	switch {
	case err == nil:
		r.RemoveMeal(m)
	case store.IsNotFoundError(err):
		// owner removed concurrently; the meal went with it
		return failure(log, op, "meal not found", domain.NewNotFoundError("meal", id))
	default:
		return failure(log, op, "failed to load restaurant", err)
	}

	if err := s.meals.Delete(ctx, id); err != nil {
		return failure(log, op, "failed to delete meal", translateStoreError(err, "meal", id))
	}

	s.policy.AfterMutation(ctx, cache.Mutation{Kind: cache.DeleteMeal, RestaurantID: restaurantID, MealID: id})
	log.Info("meal deleted",
		slog.Int64("meal_id", id),
		slog.Int64("restaurant_id", restaurantID))
	return nil
}

// DeleteAllMealsForRestaurant implements CatalogService.DeleteAllMealsForRestaurant
func (s *catalogServiceImpl) DeleteAllMealsForRestaurant(ctx context.Context, restaurantID int64) error {
	const op = "delete_restaurant_meals"
	log := s.log(ctx)

	if err := domain.RequireIDPresent(restaurantID); err != nil {
		return failure(log, op, "invalid restaurant id", err)
	}

	r, err := s.restaurants.GetByID(ctx, restaurantID)
	if err != nil {
		return failure(log, op, "failed to load restaurant", translateStoreError(err, "restaurant", restaurantID))
	}
	detached := r.ClearMeals()

	if err := s.meals.DeleteByRestaurantID(ctx, restaurantID); err != nil {
		return failure(log, op, "failed to delete meals", translateStoreError(err, "restaurant", restaurantID))
	}

	s.policy.AfterMutation(ctx, cache.Mutation{Kind: cache.DeleteMeals, RestaurantID: restaurantID})
	log.Info("meals of restaurant deleted",
		slog.Int64("restaurant_id", restaurantID),
		slog.Int("meals_deleted", len(detached)))
	return nil
}

// DeleteAllMeals implements CatalogService.DeleteAllMeals
func (s *catalogServiceImpl) DeleteAllMeals(ctx context.Context) error {
	const op = "delete_all_meals"
	log := s.log(ctx)

	if err := s.meals.DeleteAll(ctx); err != nil {
		return failure(log, op, "failed to delete meals", translateStoreError(err, "meal", 0))
	}

	s.policy.AfterMutation(ctx, cache.Mutation{Kind: cache.DeleteMeals})
	log.Info("all meals deleted")
	return nil
}

// requireMatchingID allows an update payload to omit its id or repeat the target id.
func requireMatchingID(payloadID, targetID int64) error {
	if payloadID != 0 && payloadID != targetID {
		return domain.NewInvalidArgumentError("payload id does not match the target id")
	}
	return nil
}
