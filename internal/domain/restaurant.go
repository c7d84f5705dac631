package domain

// Restaurant is a catalog entry with a vote counter and the ordered collection of
// meals it owns. Votes is only ever changed through the voting operations.
type Restaurant struct {
	ID    int64   `json:"id,omitempty"`
	Name  string  `json:"name"`
	Votes int     `json:"votes"`
	Meals []*Meal `json:"meals"`
}

// NewRestaurant creates a restaurant with no votes and no meals.
func NewRestaurant(name string) *Restaurant {
	return &Restaurant{
		Name:  name,
		Meals: []*Meal{},
	}
}

// Equal compares restaurants by name, which is unique across the catalog.
func (r *Restaurant) Equal(other *Restaurant) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.Name == other.Name
}

// AssignID sets the store-assigned identifier and re-links every owned meal to it.
func (r *Restaurant) AssignID(id int64) {
	r.ID = id
	for _, m := range r.Meals {
		m.RestaurantID = id
	}
}

// AddMeal appends a meal to the collection and sets its owner reference.
func (r *Restaurant) AddMeal(m *Meal) {
	if m == nil {
		return
	}
	if r.Meals == nil {
		r.Meals = []*Meal{}
	}
	m.RestaurantID = r.ID
	r.Meals = append(r.Meals, m)
}

// RemoveMeal detaches a meal from the collection and clears its owner reference.
// Persisted meals are matched by ID, unsaved ones by identity.
// It reports whether the meal was part of the collection.
func (r *Restaurant) RemoveMeal(m *Meal) bool {
	if m == nil {
		return false
	}
	for i, owned := range r.Meals {
		if owned == m || (m.ID != 0 && owned.ID == m.ID) {
			r.Meals = append(r.Meals[:i], r.Meals[i+1:]...)
			owned.RestaurantID = 0
			m.RestaurantID = 0
			return true
		}
	}
	return false
}

// ClearMeals detaches every meal, clearing each owner reference, and returns the
// detached meals.
func (r *Restaurant) ClearMeals() []*Meal {
	detached := r.Meals
	for _, m := range detached {
		m.RestaurantID = 0
	}
	r.Meals = []*Meal{}
	return detached
}

// MealByID returns the owned meal with the given id.
func (r *Restaurant) MealByID(id int64) (*Meal, bool) {
	for _, m := range r.Meals {
		if m.ID == id {
			return m, true
		}
	}
	return nil, false
}

// Clone returns a deep copy of the restaurant and its meals.
func (r *Restaurant) Clone() *Restaurant {
	if r == nil {
		return nil
	}
	c := *r
	c.Meals = make([]*Meal, len(r.Meals))
	for i, m := range r.Meals {
		c.Meals[i] = m.Clone()
	}
	return &c
}

// CloneRestaurants deep-copies a slice of restaurants.
func CloneRestaurants(rs []*Restaurant) []*Restaurant {
	out := make([]*Restaurant, len(rs))
	for i, r := range rs {
		out[i] = r.Clone()
	}
	return out
}
