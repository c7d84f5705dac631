package domain

import (
	"fmt"
	"math"
	"strings"
)

// MaxPrice is the largest price a meal can carry; prices are stored as 32-bit integers.
const MaxPrice = math.MaxInt32

// Messages returned by the identifier and instance checks.
const (
	MsgIDMustBeAbsent   = "entity id must be absent"
	MsgIDMustBePresent  = "entity id must be present"
	MsgInstanceRequired = "entity must not be null"
)

// Field-rule messages collected by ValidateRestaurantFields and ValidateMealFields.
const (
	MsgNameBlank        = "name must not be blank"
	MsgCategoryRequired = "category must be one of MAIN, SALAD, SOUP, DESERT, DRINK"
	MsgPriceNegative    = "price must not be negative"
	MsgPriceTooLarge    = "price must not exceed 2147483647"
)

// RequireIDAbsent fails with ErrInvalidArgument when an id is set on a payload
// submitted for creation.
func RequireIDAbsent(id int64) error {
	if id != 0 {
		return NewInvalidArgumentError(MsgIDMustBeAbsent)
	}
	return nil
}

// RequireIDPresent fails with ErrInvalidArgument when an id is missing.
func RequireIDPresent(id int64) error {
	if id <= 0 {
		return NewInvalidArgumentError(MsgIDMustBePresent)
	}
	return nil
}

// RequireInstance fails with ErrInvalidArgument when the payload itself is absent.
func RequireInstance[T any](entity *T) error {
	if entity == nil {
		return NewInvalidArgumentError(MsgInstanceRequired)
	}
	return nil
}

// ValidateRestaurantFields runs every restaurant field rule, including the rules of
// each meal in the collection, and returns a *ValidationError listing all of them.
func ValidateRestaurantFields(r *Restaurant) error {
	var errs []string
	if isBlank(r.Name) {
		errs = append(errs, MsgNameBlank)
	}
	for i, m := range r.Meals {
		prefix := fmt.Sprintf("meals[%d].", i)
		if m == nil {
			errs = append(errs, prefix+MsgInstanceRequired)
			continue
		}
		for _, e := range mealFieldErrors(m) {
			errs = append(errs, prefix+e)
		}
	}
	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// ValidateMealFields runs every meal field rule and returns a *ValidationError
// listing all violations.
func ValidateMealFields(m *Meal) error {
	if errs := mealFieldErrors(m); len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// RequireMealIDsAbsent checks that none of the meals in a restaurant payload carry an id.
func RequireMealIDsAbsent(r *Restaurant) error {
	for _, m := range r.Meals {
		if m != nil && m.ID != 0 {
			return NewInvalidArgumentError("meal " + MsgIDMustBeAbsent)
		}
	}
	return nil
}

func mealFieldErrors(m *Meal) []string {
	var errs []string
	if isBlank(m.Name) {
		errs = append(errs, MsgNameBlank)
	}
	if !m.Category.IsValid() {
		errs = append(errs, MsgCategoryRequired)
	}
	switch {
	case m.Price < 0:
		errs = append(errs, MsgPriceNegative)
	case m.Price > MaxPrice:
		errs = append(errs, MsgPriceTooLarge)
	}
	return errs
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
