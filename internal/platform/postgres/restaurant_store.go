package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/lunchvote/internal/domain"
	"github.com/phrazzld/lunchvote/internal/platform/logger"
	"github.com/phrazzld/lunchvote/internal/store"
)

// PostgresRestaurantStore implements the store.RestaurantStore interface
// using a PostgreSQL database as the storage backend.
type PostgresRestaurantStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresRestaurantStore creates a new PostgreSQL implementation of the RestaurantStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// Compound writes open their own transaction when db is a *sql.DB and join the
// transaction when db is a *sql.Tx.
// If logger is nil, a default logger will be used.
func NewPostgresRestaurantStore(db store.DBTX, logger *slog.Logger) *PostgresRestaurantStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresRestaurantStore{
		db:     db,
		logger: logger.With(slog.String("component", "restaurant_store")),
	}
}

// Ensure PostgresRestaurantStore implements store.RestaurantStore interface
var _ store.RestaurantStore = (*PostgresRestaurantStore)(nil)

// GetByID implements store.RestaurantStore.GetByID
func (s *PostgresRestaurantStore) GetByID(ctx context.Context, id int64) (*domain.Restaurant, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Debug("retrieving restaurant by ID", slog.Int64("restaurant_id", id))

	var r domain.Restaurant
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, votes FROM restaurants WHERE id = $1", id,
	).Scan(&r.ID, &r.Name, &r.Votes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("restaurant not found", slog.Int64("restaurant_id", id))
			return nil, store.ErrRestaurantNotFound
		}
		log.Error("failed to get restaurant",
			slog.String("error", err.Error()),
			slog.Int64("restaurant_id", id))
		return nil, MapError(err)
	}

	meals, err := findMeals(ctx, s.db, id)
	if err != nil {
		log.Error("failed to load meals of restaurant",
			slog.String("error", err.Error()),
			slog.Int64("restaurant_id", id))
		return nil, err
	}
	r.Meals = meals

	return &r, nil
}

// ExistsByID implements store.RestaurantStore.ExistsByID
func (s *PostgresRestaurantStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM restaurants WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to check restaurant existence",
			slog.String("error", err.Error()),
			slog.Int64("restaurant_id", id))
		return false, MapError(err)
	}
	return exists, nil
}

// FindAllPaged implements store.RestaurantStore.FindAllPaged
// The page is cut from the restaurants table first and its meals are joined
// afterwards, so page boundaries count restaurants and not meal rows.
func (s *PostgresRestaurantStore) FindAllPaged(
	ctx context.Context,
	page domain.PageRequest,
) ([]*domain.Restaurant, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Debug("listing restaurants",
		slog.String("sort", string(page.SortField)),
		slog.String("direction", string(page.Direction)),
		slog.Int("page", page.Page),
		slog.Int("size", page.Size))

	query := fmt.Sprintf(`
		SELECT r.id, r.name, r.votes, m.id, m.restaurant_id, m.name, m.category, m.price
		FROM (
			SELECT id, name, votes
			FROM restaurants
			ORDER BY %s
			LIMIT $1 OFFSET $2
		) r
		LEFT JOIN meals m ON m.restaurant_id = r.id
		ORDER BY %s, m.id`,
		orderBy(page, ""), orderBy(page, "r."))

	rows, err := s.db.QueryContext(ctx, query, page.Size, page.Offset())
	if err != nil {
		log.Error("failed to list restaurants", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	restaurants := []*domain.Restaurant{}
	var current *domain.Restaurant
	for rows.Next() {
		var (
			r        domain.Restaurant
			mealID   sql.NullInt64
			ownerID  sql.NullInt64
			mealName sql.NullString
			category sql.NullString
			price    sql.NullInt64
		)
		if err := rows.Scan(&r.ID, &r.Name, &r.Votes,
			&mealID, &ownerID, &mealName, &category, &price); err != nil {
			log.Error("failed to scan restaurant row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}

		if current == nil || current.ID != r.ID {
			r.Meals = []*domain.Meal{}
			current = &r
			restaurants = append(restaurants, current)
		}

		if mealID.Valid {
			current.Meals = append(current.Meals, &domain.Meal{
				ID:           mealID.Int64,
				RestaurantID: ownerID.Int64,
				Name:         mealName.String,
				Category:     domain.MealCategory(category.String),
				Price:        int(price.Int64),
			})
		}
	}
	if err := rows.Err(); err != nil {
		log.Error("failed to iterate restaurant rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return restaurants, nil
}

// Save implements store.RestaurantStore.Save
func (s *PostgresRestaurantStore) Save(ctx context.Context, restaurant *domain.Restaurant) error {
	if restaurant.ID == 0 {
		return s.insert(ctx, restaurant)
	}
	return s.update(ctx, restaurant)
}

func (s *PostgresRestaurantStore) insert(ctx context.Context, r *domain.Restaurant) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var id int64
	mealIDs := make([]int64, len(r.Meals))

	err := inTx(ctx, s.db, func(ctx context.Context, q store.DBTX) error {
		err := q.QueryRowContext(ctx,
			"INSERT INTO restaurants (name, votes) VALUES ($1, $2) RETURNING id",
			r.Name, r.Votes,
		).Scan(&id)
		if err != nil {
			return MapError(err)
		}

		for i, m := range r.Meals {
			mealID, err := insertMeal(ctx, q, id, m)
			if err != nil {
				return err
			}
			mealIDs[i] = mealID
		}
		return nil
	})
	if err != nil {
		log.Warn("failed to insert restaurant",
			slog.String("error", err.Error()),
			slog.String("name", r.Name))
		return store.NewStoreError("restaurant", "insert", "failed to insert restaurant", err)
	}

	for i, m := range r.Meals {
		m.ID = mealIDs[i]
	}
	r.AssignID(id)

	log.Info("restaurant created",
		slog.Int64("restaurant_id", id),
		slog.Int("meal_count", len(r.Meals)))
	return nil
}

func (s *PostgresRestaurantStore) update(ctx context.Context, r *domain.Restaurant) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	inserted := make(map[int]int64)

	err := inTx(ctx, s.db, func(ctx context.Context, q store.DBTX) error {
		result, err := q.ExecContext(ctx,
			"UPDATE restaurants SET name = $1 WHERE id = $2", r.Name, r.ID)
		if err != nil {
			return MapError(err)
		}
		if err := checkRowsAffected(result, store.ErrRestaurantNotFound); err != nil {
			return err
		}

		// Orphans go first so a replacement meal can reuse the name and category.
		if err := deleteOrphanMeals(ctx, q, r); err != nil {
			return err
		}

		for i, m := range r.Meals {
			if m.ID == 0 {
				mealID, err := insertMeal(ctx, q, r.ID, m)
				if err != nil {
					return err
				}
				inserted[i] = mealID
				continue
			}
			owned := *m
			owned.RestaurantID = r.ID
			if err := updateMeal(ctx, q, &owned); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Warn("failed to update restaurant",
			slog.String("error", err.Error()),
			slog.Int64("restaurant_id", r.ID))
		return store.NewStoreError("restaurant", "update", "failed to update restaurant", err)
	}

	for i, mealID := range inserted {
		r.Meals[i].ID = mealID
	}
	r.AssignID(r.ID)

	log.Info("restaurant updated",
		slog.Int64("restaurant_id", r.ID),
		slog.Int("meal_count", len(r.Meals)))
	return nil
}

func deleteOrphanMeals(ctx context.Context, q store.DBTX, r *domain.Restaurant) error {
	rows, err := q.QueryContext(ctx,
		"SELECT id FROM meals WHERE restaurant_id = $1 ORDER BY id", r.ID)
	if err != nil {
		return MapError(err)
	}

	var orphans []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			_ = rows.Close()
			return MapError(err)
		}
		if _, kept := r.MealByID(id); !kept {
			orphans = append(orphans, id)
		}
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return MapError(err)
	}
	_ = rows.Close()

	for _, id := range orphans {
		if _, err := q.ExecContext(ctx, "DELETE FROM meals WHERE id = $1", id); err != nil {
			return MapError(err)
		}
	}
	return nil
}

// Delete implements store.RestaurantStore.Delete
// Meals are removed by the ON DELETE CASCADE foreign key.
func (s *PostgresRestaurantStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, "DELETE FROM restaurants WHERE id = $1", id)
	if err != nil {
		log.Error("failed to delete restaurant",
			slog.String("error", err.Error()),
			slog.Int64("restaurant_id", id))
		return MapError(err)
	}
	if err := checkRowsAffected(result, store.ErrRestaurantNotFound); err != nil {
		return err
	}

	log.Info("restaurant deleted", slog.Int64("restaurant_id", id))
	return nil
}

// DeleteAll implements store.RestaurantStore.DeleteAll
func (s *PostgresRestaurantStore) DeleteAll(ctx context.Context) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.db.ExecContext(ctx, "DELETE FROM restaurants"); err != nil {
		log.Error("failed to delete all restaurants", slog.String("error", err.Error()))
		return MapError(err)
	}

	log.Info("all restaurants deleted")
	return nil
}

// IncrementVotes implements store.RestaurantStore.IncrementVotes
func (s *PostgresRestaurantStore) IncrementVotes(ctx context.Context, id int64) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var votes int
	err := s.db.QueryRowContext(ctx,
		"UPDATE restaurants SET votes = votes + 1 WHERE id = $1 RETURNING votes", id,
	).Scan(&votes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, store.ErrRestaurantNotFound
		}
		log.Error("failed to increment votes",
			slog.String("error", err.Error()),
			slog.Int64("restaurant_id", id))
		return 0, MapError(err)
	}

	log.Debug("vote recorded",
		slog.Int64("restaurant_id", id),
		slog.Int("votes", votes))
	return votes, nil
}

// ResetVotes implements store.RestaurantStore.ResetVotes
func (s *PostgresRestaurantStore) ResetVotes(ctx context.Context) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, "UPDATE restaurants SET votes = 0 WHERE votes <> 0")
	if err != nil {
		log.Error("failed to reset votes", slog.String("error", err.Error()))
		return MapError(err)
	}

	n, _ := result.RowsAffected()
	log.Info("votes reset", slog.Int64("restaurants_changed", n))
	return nil
}

// orderBy renders the ORDER BY list for a page request. Names compare bytewise
// and ties fall back to id in the same direction.
func orderBy(page domain.PageRequest, prefix string) string {
	dir := "ASC"
	if page.Direction == domain.SortDesc {
		dir = "DESC"
	}

	var b strings.Builder
	switch page.SortField {
	case domain.SortByName:
		fmt.Fprintf(&b, `%sname COLLATE "C" %s, `, prefix, dir)
	case domain.SortByVotes:
		fmt.Fprintf(&b, "%svotes %s, ", prefix, dir)
	}
	fmt.Fprintf(&b, "%sid %s", prefix, dir)
	return b.String()
}
