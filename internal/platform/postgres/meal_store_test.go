package postgres

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/lunchvote/internal/domain"
	"github.com/phrazzld/lunchvote/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockMealStore(t *testing.T) (*PostgresMealStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresMealStore(db, discardLogger()), mock
}

func TestPostgresMealStore_GetByID(t *testing.T) {
	ctx := context.Background()
	s, mock := newMockMealStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM meals WHERE id = $1")).
		WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows(mealRowColumns).AddRow(11, 7, "Khinkali", "MAIN", 500))
	mock.ExpectQuery(regexp.QuoteMeta("FROM meals WHERE id = $1")).
		WithArgs(int64(12)).
		WillReturnRows(sqlmock.NewRows(mealRowColumns))

	m, err := s.GetByID(ctx, 11)
	require.NoError(t, err)
	assert.Equal(t, &domain.Meal{
		ID: 11, RestaurantID: 7, Name: "Khinkali", Category: domain.MealCategoryMain, Price: 500,
	}, m)

	_, err = s.GetByID(ctx, 12)
	assert.ErrorIs(t, err, store.ErrMealNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresMealStore_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("insert assigns id", func(t *testing.T) {
		s, mock := newMockMealStore(t)

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO meals")).
			WithArgs(int64(7), "Tea", "DRINK", 100).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(21))

		m := &domain.Meal{Name: "Tea", Category: domain.MealCategoryDrink, Price: 100, RestaurantID: 7}
		require.NoError(t, s.Save(ctx, m))
		assert.Equal(t, int64(21), m.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("insert conflicting dish", func(t *testing.T) {
		s, mock := newMockMealStore(t)

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO meals")).
			WillReturnError(&pgconn.PgError{Code: uniqueViolationCode, ConstraintName: mealDishConstraint})

		m := &domain.Meal{Name: "Tea", Category: domain.MealCategoryDrink, RestaurantID: 7}
		err := s.Save(ctx, m)
		assert.ErrorIs(t, err, store.ErrMealExists)
		assert.Zero(t, m.ID)

		var storeErr *store.StoreError
		require.ErrorAs(t, err, &storeErr)
		assert.Equal(t, "meal", storeErr.Entity)
		assert.Equal(t, "insert", storeErr.Operation)
	})

	t.Run("insert price overflowing the column", func(t *testing.T) {
		s, mock := newMockMealStore(t)

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO meals")).
			WillReturnError(&pgconn.PgError{Code: numericOutOfRangeCode})

		m := &domain.Meal{Name: "Caviar", Category: domain.MealCategoryMain, Price: 1 << 40, RestaurantID: 7}
		assert.ErrorIs(t, s.Save(ctx, m), store.ErrInvalidEntity)
	})

	t.Run("insert for missing restaurant", func(t *testing.T) {
		s, mock := newMockMealStore(t)

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO meals")).
			WillReturnError(&pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: mealRestaurantFKey})

		m := &domain.Meal{Name: "Tea", Category: domain.MealCategoryDrink, RestaurantID: 70}
		assert.ErrorIs(t, s.Save(ctx, m), store.ErrRestaurantNotFound)
	})

	t.Run("update keeps owner", func(t *testing.T) {
		s, mock := newMockMealStore(t)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE meals")).
			WithArgs("Green tea", "DRINK", 120, int64(21), int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		m := &domain.Meal{ID: 21, Name: "Green tea", Category: domain.MealCategoryDrink, Price: 120, RestaurantID: 7}
		require.NoError(t, s.Save(ctx, m))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("update missing meal", func(t *testing.T) {
		s, mock := newMockMealStore(t)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE meals")).
			WillReturnResult(sqlmock.NewResult(0, 0))

		m := &domain.Meal{ID: 99, Name: "Ghost", Category: domain.MealCategoryMain, RestaurantID: 7}
		err := s.Save(ctx, m)
		assert.ErrorIs(t, err, store.ErrMealNotFound)

		var storeErr *store.StoreError
		require.ErrorAs(t, err, &storeErr)
		assert.Equal(t, "update", storeErr.Operation)
	})

	t.Run("unowned meal is rejected", func(t *testing.T) {
		s, _ := newMockMealStore(t)
		assert.ErrorIs(t, s.Save(ctx, domain.NewMeal("Tea", domain.MealCategoryDrink, 1)), store.ErrInvalidEntity)
	})
}

func TestPostgresMealStore_Deletes(t *testing.T) {
	ctx := context.Background()
	s, mock := newMockMealStore(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM meals WHERE id = $1")).
		WithArgs(int64(21)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM meals WHERE restaurant_id = $1")).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM meals")).
		WillReturnResult(sqlmock.NewResult(0, 4))

	assert.ErrorIs(t, s.Delete(ctx, 21), store.ErrMealNotFound)
	require.NoError(t, s.DeleteByRestaurantID(ctx, 7))
	require.NoError(t, s.DeleteAll(ctx))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresMealStore_FindByRestaurantID(t *testing.T) {
	s, mock := newMockMealStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE restaurant_id = $1 ORDER BY id")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(mealRowColumns))

	meals, err := s.FindByRestaurantID(context.Background(), 7)
	require.NoError(t, err)
	assert.NotNil(t, meals)
	assert.Empty(t, meals)
}
