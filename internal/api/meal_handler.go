package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/phrazzld/lunchvote/internal/api/shared"
	"github.com/phrazzld/lunchvote/internal/domain"
	"github.com/phrazzld/lunchvote/internal/platform/logger"
	"github.com/phrazzld/lunchvote/internal/redact"
	"github.com/phrazzld/lunchvote/internal/service"
)

// MealHandler handles meal HTTP requests
type MealHandler struct {
	catalog service.CatalogService
	logger  *slog.Logger
}

// NewMealHandler creates a new MealHandler
func NewMealHandler(catalog service.CatalogService, logger *slog.Logger) *MealHandler {
	if catalog == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("catalog service cannot be nil for MealHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for MealHandler")
	}

	return &MealHandler{
		catalog: catalog,
		logger:  logger.With(slog.String("component", "meal_handler")),
	}
}

// GetMeal handles GET /restaurants/meals/{id} requests
func (h *MealHandler) GetMeal(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathID(w, r, "id", log)
	if !ok {
		return
	}

	meal, err := h.catalog.GetMealByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get meal")
		return
	}

	noStore(w)
	shared.RespondWithJSON(w, r, http.StatusOK, mealToResponse(meal))
}

// GetRestaurantMeals handles GET /restaurants/{id}/meals requests
func (h *MealHandler) GetRestaurantMeals(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	restaurantID, ok := handlePathID(w, r, "id", log)
	if !ok {
		return
	}

	meals, err := h.catalog.GetAllMealsByRestaurantID(r.Context(), restaurantID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get meals")
		return
	}

	noStore(w)
	shared.RespondWithJSON(w, r, http.StatusOK, mealsToResponse(meals))
}

// CreateMeal handles POST /restaurants/{id} requests, adding a meal to the
// restaurant. The response carries the new meal id.
func (h *MealHandler) CreateMeal(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	restaurantID, ok := handlePathID(w, r, "id", log)
	if !ok {
		return
	}
	payload, ok := h.decodeMeal(w, r, log)
	if !ok {
		return
	}

	id, err := h.catalog.CreateMealForRestaurantWithID(r.Context(), restaurantID, payload)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create meal")
		return
	}

	setLocation(w, "/restaurants/meals/%d", id)
	shared.RespondWithJSON(w, r, http.StatusCreated, CreatedResponse{ID: id})
}

// UpdateMeal handles PUT /restaurants/meals/{id} requests
func (h *MealHandler) UpdateMeal(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathID(w, r, "id", log)
	if !ok {
		return
	}
	payload, ok := h.decodeMeal(w, r, log)
	if !ok {
		return
	}

	meal, err := h.catalog.UpdateMealByID(r.Context(), id, payload)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update meal")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, mealToResponse(meal))
}

// DeleteMeal handles DELETE /restaurants/meals/{id} requests
func (h *MealHandler) DeleteMeal(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.catalog.DeleteMealByID(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete meal")
		return
	}
	shared.RespondNoContent(w)
}

// DeleteRestaurantMeals handles DELETE /restaurants/{id}/meals requests
func (h *MealHandler) DeleteRestaurantMeals(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	restaurantID, ok := handlePathID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.catalog.DeleteAllMealsForRestaurant(r.Context(), restaurantID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete meals")
		return
	}
	shared.RespondNoContent(w)
}

// DeleteAllMeals handles DELETE /restaurants/meals requests
func (h *MealHandler) DeleteAllMeals(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteAllMeals(r.Context()); err != nil {
		HandleAPIError(w, r, err, "Failed to delete meals")
		return
	}
	shared.RespondNoContent(w)
}

func (h *MealHandler) decodeMeal(w http.ResponseWriter, r *http.Request, log *slog.Logger) (*domain.Meal, bool) {
	var req *MealRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		if !errors.Is(err, shared.ErrEmptyBody) {
			log.Debug("invalid request format", slog.String("error", redact.Error(err)))
			shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, msgInvalidBody, err)
			return nil, false
		}
		req = nil
	}
	if req == nil {
		return nil, true
	}
	return req.ToDomain(), true
}
