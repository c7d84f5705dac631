package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDChecks(t *testing.T) {
	t.Parallel()

	assert.NoError(t, RequireIDAbsent(0))
	assert.ErrorIs(t, RequireIDAbsent(3), ErrInvalidArgument)

	assert.NoError(t, RequireIDPresent(3))
	assert.ErrorIs(t, RequireIDPresent(0), ErrInvalidArgument)
	assert.ErrorIs(t, RequireIDPresent(-1), ErrInvalidArgument)
}

func TestRequireInstance(t *testing.T) {
	t.Parallel()

	var missing *Restaurant
	assert.ErrorIs(t, RequireInstance(missing), ErrInvalidArgument)
	assert.NoError(t, RequireInstance(NewRestaurant("Marcellis")))
}

func TestValidateMealFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		meal     *Meal
		expected []string
	}{
		{
			name: "valid meal",
			meal: NewMeal("Ceaser Salad", MealCategorySalad, 350),
		},
		{
			name: "free meal is allowed",
			meal: NewMeal("Water", MealCategoryDrink, 0),
		},
		{
			name: "largest storable price",
			meal: NewMeal("Truffle", MealCategoryMain, MaxPrice),
		},
		{
			name:     "price beyond the storable range",
			meal:     NewMeal("Truffle", MealCategoryMain, MaxPrice+1),
			expected: []string{MsgPriceTooLarge},
		},
		{
			name:     "blank name",
			meal:     NewMeal("   ", MealCategorySalad, 350),
			expected: []string{MsgNameBlank},
		},
		{
			name:     "every rule broken at once",
			meal:     &Meal{Name: "", Category: "DESSERT", Price: -1},
			expected: []string{MsgNameBlank, MsgCategoryRequired, MsgPriceNegative},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMealFields(tt.meal)
			if tt.expected == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidationFailed))
			assert.Equal(t, tt.expected, ValidationErrors(err))
		})
	}
}

func TestValidateRestaurantFieldsCollectsMealErrors(t *testing.T) {
	t.Parallel()

	r := &Restaurant{
		Name: "",
		Meals: []*Meal{
			NewMeal("Lasagna", MealCategoryMain, 900),
			{Name: "Soup", Category: "", Price: -5},
			nil,
		},
	}

	err := ValidateRestaurantFields(r)

	require.Error(t, err)
	assert.Equal(t, []string{
		MsgNameBlank,
		"meals[1]." + MsgCategoryRequired,
		"meals[1]." + MsgPriceNegative,
		"meals[2]." + MsgInstanceRequired,
	}, ValidationErrors(err))
	assert.Contains(t, err.Error(), "validation failed")
}

func TestRequireMealIDsAbsent(t *testing.T) {
	t.Parallel()

	r := NewRestaurant("Marcellis")
	r.AddMeal(NewMeal("Lasagna", MealCategoryMain, 900))
	assert.NoError(t, RequireMealIDsAbsent(r))

	r.AddMeal(&Meal{ID: 8, Name: "Tiramisu", Category: MealCategoryDesert, Price: 400})
	assert.ErrorIs(t, RequireMealIDsAbsent(r), ErrInvalidArgument)
}
