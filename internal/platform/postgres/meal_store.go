package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/lunchvote/internal/domain"
	"github.com/phrazzld/lunchvote/internal/platform/logger"
	"github.com/phrazzld/lunchvote/internal/store"
)

const mealColumns = "id, restaurant_id, name, category, price"

// PostgresMealStore implements the store.MealStore interface
// using a PostgreSQL database as the storage backend.
type PostgresMealStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresMealStore creates a new PostgreSQL implementation of the MealStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresMealStore(db store.DBTX, logger *slog.Logger) *PostgresMealStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresMealStore{
		db:     db,
		logger: logger.With(slog.String("component", "meal_store")),
	}
}

// Ensure PostgresMealStore implements store.MealStore interface
var _ store.MealStore = (*PostgresMealStore)(nil)

// GetByID implements store.MealStore.GetByID
func (s *PostgresMealStore) GetByID(ctx context.Context, id int64) (*domain.Meal, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Debug("retrieving meal by ID", slog.Int64("meal_id", id))

	var m domain.Meal
	err := scanMeal(s.db.QueryRowContext(ctx,
		"SELECT "+mealColumns+" FROM meals WHERE id = $1", id), &m)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("meal not found", slog.Int64("meal_id", id))
			return nil, store.ErrMealNotFound
		}
		log.Error("failed to get meal",
			slog.String("error", err.Error()),
			slog.Int64("meal_id", id))
		return nil, MapError(err)
	}

	return &m, nil
}

// ExistsByID implements store.MealStore.ExistsByID
func (s *PostgresMealStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM meals WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to check meal existence",
			slog.String("error", err.Error()),
			slog.Int64("meal_id", id))
		return false, MapError(err)
	}
	return exists, nil
}

// FindByRestaurantID implements store.MealStore.FindByRestaurantID
func (s *PostgresMealStore) FindByRestaurantID(ctx context.Context, restaurantID int64) ([]*domain.Meal, error) {
	meals, err := findMeals(ctx, s.db, restaurantID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list meals",
			slog.String("error", err.Error()),
			slog.Int64("restaurant_id", restaurantID))
		return nil, err
	}
	return meals, nil
}

// Save implements store.MealStore.Save
func (s *PostgresMealStore) Save(ctx context.Context, meal *domain.Meal) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if meal.RestaurantID == 0 {
		return fmt.Errorf("%w: meal has no owning restaurant", store.ErrInvalidEntity)
	}

	if meal.ID == 0 {
		id, err := insertMeal(ctx, s.db, meal.RestaurantID, meal)
		if err != nil {
			log.Warn("failed to insert meal",
				slog.String("error", err.Error()),
				slog.Int64("restaurant_id", meal.RestaurantID))
			return store.NewStoreError("meal", "insert", "failed to insert meal", err)
		}
		meal.ID = id
		log.Info("meal created",
			slog.Int64("meal_id", id),
			slog.Int64("restaurant_id", meal.RestaurantID))
		return nil
	}

	if err := updateMeal(ctx, s.db, meal); err != nil {
		log.Warn("failed to update meal",
			slog.String("error", err.Error()),
			slog.Int64("meal_id", meal.ID))
		return store.NewStoreError("meal", "update", "failed to update meal", err)
	}
	log.Debug("meal updated", slog.Int64("meal_id", meal.ID))
	return nil
}

// Delete implements store.MealStore.Delete
func (s *PostgresMealStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, "DELETE FROM meals WHERE id = $1", id)
	if err != nil {
		log.Error("failed to delete meal",
			slog.String("error", err.Error()),
			slog.Int64("meal_id", id))
		return MapError(err)
	}
	if err := checkRowsAffected(result, store.ErrMealNotFound); err != nil {
		return err
	}

	log.Info("meal deleted", slog.Int64("meal_id", id))
	return nil
}

// DeleteByRestaurantID implements store.MealStore.DeleteByRestaurantID
func (s *PostgresMealStore) DeleteByRestaurantID(ctx context.Context, restaurantID int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, "DELETE FROM meals WHERE restaurant_id = $1", restaurantID)
	if err != nil {
		log.Error("failed to delete meals of restaurant",
			slog.String("error", err.Error()),
			slog.Int64("restaurant_id", restaurantID))
		return MapError(err)
	}

	n, _ := result.RowsAffected()
	log.Info("meals of restaurant deleted",
		slog.Int64("restaurant_id", restaurantID),
		slog.Int64("deleted", n))
	return nil
}

// DeleteAll implements store.MealStore.DeleteAll
func (s *PostgresMealStore) DeleteAll(ctx context.Context) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.db.ExecContext(ctx, "DELETE FROM meals"); err != nil {
		log.Error("failed to delete all meals", slog.String("error", err.Error()))
		return MapError(err)
	}

	log.Info("all meals deleted")
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMeal(row rowScanner, m *domain.Meal) error {
	var category string
	if err := row.Scan(&m.ID, &m.RestaurantID, &m.Name, &category, &m.Price); err != nil {
		return err
	}
	m.Category = domain.MealCategory(category)
	return nil
}

func findMeals(ctx context.Context, q store.DBTX, restaurantID int64) ([]*domain.Meal, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT "+mealColumns+" FROM meals WHERE restaurant_id = $1 ORDER BY id", restaurantID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	meals := []*domain.Meal{}
	for rows.Next() {
		var m domain.Meal
		if err := scanMeal(rows, &m); err != nil {
			return nil, MapError(err)
		}
		meals = append(meals, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return meals, nil
}

func insertMeal(ctx context.Context, q store.DBTX, restaurantID int64, m *domain.Meal) (int64, error) {
	var id int64
	err := q.QueryRowContext(ctx, `
		INSERT INTO meals (restaurant_id, name, category, price)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		restaurantID, m.Name, string(m.Category), m.Price,
	).Scan(&id)
	if err != nil {
		return 0, MapError(err)
	}
	return id, nil
}

func updateMeal(ctx context.Context, q store.DBTX, m *domain.Meal) error {
	result, err := q.ExecContext(ctx, `
		UPDATE meals
		SET name = $1, category = $2, price = $3
		WHERE id = $4 AND restaurant_id = $5`,
		m.Name, string(m.Category), m.Price, m.ID, m.RestaurantID,
	)
	if err != nil {
		return MapError(err)
	}
	return checkRowsAffected(result, store.ErrMealNotFound)
}
