package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/lunchvote/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected error
	}{
		{
			name:     "no rows",
			err:      sql.ErrNoRows,
			expected: store.ErrNotFound,
		},
		{
			name:     "restaurant name unique",
			err:      &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: restaurantNameConstraint},
			expected: store.ErrRestaurantNameExists,
		},
		{
			name:     "meal dish unique",
			err:      &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: mealDishConstraint},
			expected: store.ErrMealExists,
		},
		{
			name:     "other unique",
			err:      &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "something_else"},
			expected: store.ErrDuplicate,
		},
		{
			name:     "meal owner foreign key",
			err:      &pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: mealRestaurantFKey},
			expected: store.ErrRestaurantNotFound,
		},
		{
			name:     "check constraint",
			err:      &pgconn.PgError{Code: checkViolationCode, ConstraintName: "meals_price_non_negative"},
			expected: store.ErrInvalidEntity,
		},
		{
			name:     "not null",
			err:      &pgconn.PgError{Code: notNullViolationCode, ColumnName: "name"},
			expected: store.ErrInvalidEntity,
		},
		{
			name:     "integer column overflow",
			err:      &pgconn.PgError{Code: numericOutOfRangeCode, Message: "value out of range for type integer"},
			expected: store.ErrInvalidEntity,
		},
		{
			name:     "wrapped pg error",
			err:      fmt.Errorf("exec: %w", &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: restaurantNameConstraint}),
			expected: store.ErrRestaurantNameExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped := MapError(tt.err)
			assert.ErrorIs(t, mapped, tt.expected)
			assert.ErrorIs(t, mapped, tt.err, "original error stays in the chain")
		})
	}
}

func TestMapErrorPassthrough(t *testing.T) {
	assert.NoError(t, MapError(nil))

	plain := errors.New("connection reset")
	assert.Same(t, plain, MapError(plain))

	unknown := &pgconn.PgError{Code: "40001"}
	assert.Equal(t, error(unknown), MapError(unknown))
}

func TestCheckRowsAffected(t *testing.T) {
	require.NoError(t, checkRowsAffected(sqlmock.NewResult(0, 1), store.ErrMealNotFound))
	assert.ErrorIs(t, checkRowsAffected(sqlmock.NewResult(0, 0), store.ErrMealNotFound), store.ErrMealNotFound)
	assert.Error(t, checkRowsAffected(nil, store.ErrMealNotFound))
	assert.Error(t, checkRowsAffected(sqlmock.NewErrorResult(errors.New("boom")), store.ErrMealNotFound))
}
