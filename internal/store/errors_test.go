package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		notFound  bool
		duplicate bool
	}{
		{name: "nil error", err: nil},
		{name: "generic error", err: errors.New("some error")},
		{name: "ErrNotFound", err: ErrNotFound, notFound: true},
		{name: "ErrRestaurantNotFound", err: ErrRestaurantNotFound, notFound: true},
		{name: "wrapped ErrMealNotFound", err: fmt.Errorf("load: %w", ErrMealNotFound), notFound: true},
		{name: "ErrDuplicate", err: ErrDuplicate, duplicate: true},
		{name: "ErrRestaurantNameExists", err: ErrRestaurantNameExists, duplicate: true},
		{
			name:      "StoreError wrapping ErrMealExists",
			err:       NewStoreError("meal", "save", "duplicate", ErrMealExists),
			duplicate: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.notFound, IsNotFoundError(tt.err))
			assert.Equal(t, tt.duplicate, IsDuplicateError(tt.err))
		})
	}
}

func TestStoreErrorMessage(t *testing.T) {
	err := NewStoreError("restaurant", "delete", "query failed", errors.New("connection reset"))
	assert.Equal(t, "delete operation on restaurant failed: query failed: connection reset", err.Error())

	bare := NewStoreError("meal", "save", "owner missing", nil)
	assert.Equal(t, "save operation on meal failed: owner missing", bare.Error())
	assert.Nil(t, bare.Unwrap())
}
