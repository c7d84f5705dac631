package api

import (
	"github.com/go-chi/chi/v5"
)

// Handlers groups the HTTP handlers mounted by RegisterRoutes.
type Handlers struct {
	Restaurants *RestaurantHandler
	Meals       *MealHandler
	Voting      *VotingHandler
}

// RegisterRoutes mounts the catalog and voting endpoints on r.
// Static segments take precedence over {id}, so /restaurants/meals never
// matches a restaurant route.
func RegisterRoutes(r chi.Router, h Handlers) {
	r.Route("/restaurants", func(r chi.Router) {
		r.Get("/", h.Restaurants.ListRestaurants)
		r.Post("/", h.Restaurants.CreateRestaurant)
		r.Delete("/", h.Restaurants.DeleteAllRestaurants)

		r.Delete("/meals", h.Meals.DeleteAllMeals)
		r.Get("/meals/{id}", h.Meals.GetMeal)
		r.Put("/meals/{id}", h.Meals.UpdateMeal)
		r.Delete("/meals/{id}", h.Meals.DeleteMeal)

		r.Get("/{id}", h.Restaurants.GetRestaurant)
		r.Post("/{id}", h.Meals.CreateMeal)
		r.Put("/{id}", h.Restaurants.UpdateRestaurant)
		r.Delete("/{id}", h.Restaurants.DeleteRestaurant)
		r.Get("/{id}/meals", h.Meals.GetRestaurantMeals)
		r.Delete("/{id}/meals", h.Meals.DeleteRestaurantMeals)
	})

	r.Route("/v-service/restaurants", func(r chi.Router) {
		r.Put("/{id}", h.Voting.Vote)
		r.Delete("/", h.Voting.ClearVotes)
	})
}
