package domain

import (
	"slices"
	"strings"
)

// MealCategory is the fixed set of menu sections a meal can belong to.
type MealCategory string

// Possible meal categories
const (
	MealCategoryMain   MealCategory = "MAIN"
	MealCategorySalad  MealCategory = "SALAD"
	MealCategorySoup   MealCategory = "SOUP"
	MealCategoryDesert MealCategory = "DESERT"
	MealCategoryDrink  MealCategory = "DRINK"
)

// MealCategories lists every valid category in menu order.
var MealCategories = []MealCategory{
	MealCategoryMain,
	MealCategorySalad,
	MealCategorySoup,
	MealCategoryDesert,
	MealCategoryDrink,
}

// IsValid reports whether c is one of the enumerated categories.
func (c MealCategory) IsValid() bool {
	return slices.Contains(MealCategories, c)
}

// ParseMealCategory resolves a case-insensitive category token.
func ParseMealCategory(s string) (MealCategory, bool) {
	c := MealCategory(strings.ToUpper(strings.TrimSpace(s)))
	return c, c.IsValid()
}

// Meal is a menu item owned by exactly one restaurant once persisted.
// RestaurantID is the owning restaurant reference; it is set and cleared only by
// Restaurant.AddMeal, Restaurant.RemoveMeal and Restaurant.ClearMeals.
type Meal struct {
	ID           int64        `json:"id,omitempty"`
	Name         string       `json:"name"`
	Category     MealCategory `json:"category"`
	Price        int          `json:"price"`
	RestaurantID int64        `json:"restaurant_id,omitempty"`
}

// NewMeal creates an unattached meal.
func NewMeal(name string, category MealCategory, price int) *Meal {
	return &Meal{
		Name:     name,
		Category: category,
		Price:    price,
	}
}

// Clone returns a copy of the meal.
func (m *Meal) Clone() *Meal {
	if m == nil {
		return nil
	}
	c := *m
	return &c
}

// SameDish reports whether two meals collide on the (name, category) pair that must
// be unique within a restaurant.
func (m *Meal) SameDish(other *Meal) bool {
	if m == nil || other == nil {
		return false
	}
	return m.Name == other.Name && m.Category == other.Category
}
