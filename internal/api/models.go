package api

import (
	"strings"

	"github.com/phrazzld/lunchvote/internal/domain"
)

// List views
const (
	ViewBrief    = "brief"
	ViewDetailed = "detailed"
)

// MealRequest is the JSON body of meal create and update requests, and the meal
// element of restaurant payloads.
type MealRequest struct {
	ID       int64  `json:"id,omitempty"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    int    `json:"price"`
}

// RestaurantRequest is the JSON body of restaurant create and update requests.
// Votes is accepted but ignored; vote counts change only through voting.
type RestaurantRequest struct {
	ID    int64         `json:"id,omitempty"`
	Name  string        `json:"name"`
	Votes int           `json:"votes,omitempty"`
	Meals []MealRequest `json:"meals"`
}

// ToDomain converts the request into a meal payload. Category tokens are
// case-insensitive; an unknown token is kept as-is so that field validation
// reports it.
func (m MealRequest) ToDomain() *domain.Meal {
	category, ok := domain.ParseMealCategory(m.Category)
	if !ok {
		category = domain.MealCategory(m.Category)
	}
	return &domain.Meal{
		ID:       m.ID,
		Name:     m.Name,
		Category: category,
		Price:    m.Price,
	}
}

// ToDomain converts the request into a restaurant payload.
func (r RestaurantRequest) ToDomain() *domain.Restaurant {
	meals := make([]*domain.Meal, 0, len(r.Meals))
	for _, m := range r.Meals {
		meals = append(meals, m.ToDomain())
	}
	return &domain.Restaurant{
		ID:    r.ID,
		Name:  r.Name,
		Votes: r.Votes,
		Meals: meals,
	}
}

// MealResponse is the JSON representation of a meal.
type MealResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	Price        int    `json:"price"`
	RestaurantID int64  `json:"restaurant_id"`
}

// RestaurantResponse is the detailed JSON representation of a restaurant.
type RestaurantResponse struct {
	ID    int64          `json:"id"`
	Name  string         `json:"name"`
	Votes int            `json:"votes"`
	Meals []MealResponse `json:"meals"`
}

// RestaurantBriefResponse is a restaurant without its meals.
type RestaurantBriefResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Votes int    `json:"votes"`
}

// CreatedResponse carries the id of a created entity.
type CreatedResponse struct {
	ID int64 `json:"id"`
}

// VoteResponse is returned after a vote is recorded.
type VoteResponse struct {
	RestaurantID int64 `json:"restaurant_id"`
	Votes        int   `json:"votes"`
}

// ListRestaurantsQuery holds the raw list query parameters.
type ListRestaurantsQuery struct {
	CurrentPage *int   `validate:"omitempty,min=0"`
	PageSize    *int   `validate:"omitempty,min=1"`
	Sort        string `validate:"omitempty,oneof=id name votes"`
	Sdir        string `validate:"omitempty,oneof=asc desc"`
	View        string `validate:"omitempty,oneof=brief detailed"`
}

// normalize lowercases the enumerated tokens before validation.
func (q *ListRestaurantsQuery) normalize() {
	q.Sort = strings.ToLower(strings.TrimSpace(q.Sort))
	q.Sdir = strings.ToLower(strings.TrimSpace(q.Sdir))
	q.View = strings.ToLower(strings.TrimSpace(q.View))
}

// PageRequest resolves the query into a page request with defaults applied.
func (q ListRestaurantsQuery) PageRequest() (domain.PageRequest, error) {
	return domain.ResolvePageRequest(q.CurrentPage, q.PageSize, q.Sort, q.Sdir)
}

// Detailed reports whether meals should be included. Detailed is the default.
func (q ListRestaurantsQuery) Detailed() bool {
	return q.View != ViewBrief
}

func mealToResponse(m *domain.Meal) MealResponse {
	return MealResponse{
		ID:           m.ID,
		Name:         m.Name,
		Category:     string(m.Category),
		Price:        m.Price,
		RestaurantID: m.RestaurantID,
	}
}

func mealsToResponse(meals []*domain.Meal) []MealResponse {
	out := make([]MealResponse, 0, len(meals))
	for _, m := range meals {
		out = append(out, mealToResponse(m))
	}
	return out
}

func restaurantToResponse(r *domain.Restaurant) RestaurantResponse {
	return RestaurantResponse{
		ID:    r.ID,
		Name:  r.Name,
		Votes: r.Votes,
		Meals: mealsToResponse(r.Meals),
	}
}

func restaurantToBriefResponse(r *domain.Restaurant) RestaurantBriefResponse {
	return RestaurantBriefResponse{
		ID:    r.ID,
		Name:  r.Name,
		Votes: r.Votes,
	}
}
