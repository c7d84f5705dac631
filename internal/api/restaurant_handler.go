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

// RestaurantHandler handles restaurant HTTP requests
type RestaurantHandler struct {
	catalog service.CatalogService
	logger  *slog.Logger
}

// NewRestaurantHandler creates a new RestaurantHandler
func NewRestaurantHandler(catalog service.CatalogService, logger *slog.Logger) *RestaurantHandler {
	if catalog == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("catalog service cannot be nil for RestaurantHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for RestaurantHandler")
	}

	return &RestaurantHandler{
		catalog: catalog,
		logger:  logger.With(slog.String("component", "restaurant_handler")),
	}
}

// ListRestaurants handles GET /restaurants requests.
// Query parameters: currentPage, pageSize, sort (id|name|votes), sdir (asc|desc)
// and view (brief|detailed).
func (h *RestaurantHandler) ListRestaurants(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	query, err := parseListQuery(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	query.normalize()
	if err := shared.ValidateRequest(&query); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, msgValidationFailed, err,
			shared.WithDetails(SanitizeValidationError(err)))
		return
	}

	page, err := query.PageRequest()
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	restaurants, err := h.catalog.ListRestaurants(r.Context(), &page)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list restaurants")
		return
	}

	log.Debug("listed restaurants",
		slog.String("page_key", page.CacheKey()),
		slog.Int("count", len(restaurants)))

	noStore(w)
	if !query.Detailed() {
		brief := make([]RestaurantBriefResponse, 0, len(restaurants))
		for _, rest := range restaurants {
			brief = append(brief, restaurantToBriefResponse(rest))
		}
		shared.RespondWithJSON(w, r, http.StatusOK, brief)
		return
	}

	detailed := make([]RestaurantResponse, 0, len(restaurants))
	for _, rest := range restaurants {
		detailed = append(detailed, restaurantToResponse(rest))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, detailed)
}

func parseListQuery(r *http.Request) (ListRestaurantsQuery, error) {
	currentPage, err := parseOptionalInt(r, "currentPage")
	if err != nil {
		return ListRestaurantsQuery{}, err
	}
	pageSize, err := parseOptionalInt(r, "pageSize")
	if err != nil {
		return ListRestaurantsQuery{}, err
	}

	q := r.URL.Query()
	return ListRestaurantsQuery{
		CurrentPage: currentPage,
		PageSize:    pageSize,
		Sort:        q.Get("sort"),
		Sdir:        q.Get("sdir"),
		View:        q.Get("view"),
	}, nil
}

// GetRestaurant handles GET /restaurants/{id} requests
func (h *RestaurantHandler) GetRestaurant(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathID(w, r, "id", log)
	if !ok {
		return
	}

	restaurant, err := h.catalog.GetRestaurantByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get restaurant")
		return
	}

	noStore(w)
	shared.RespondWithJSON(w, r, http.StatusOK, restaurantToResponse(restaurant))
}

// CreateRestaurant handles POST /restaurants requests
func (h *RestaurantHandler) CreateRestaurant(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	payload, ok := h.decodeRestaurant(w, r, log)
	if !ok {
		return
	}

	restaurant, err := h.catalog.CreateRestaurant(r.Context(), payload)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create restaurant")
		return
	}

	setLocation(w, "/restaurants/%d", restaurant.ID)
	shared.RespondWithJSON(w, r, http.StatusCreated, restaurantToResponse(restaurant))
}

// UpdateRestaurant handles PUT /restaurants/{id} requests.
// The name and the whole meal collection are replaced; votes are kept.
func (h *RestaurantHandler) UpdateRestaurant(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathID(w, r, "id", log)
	if !ok {
		return
	}
	payload, ok := h.decodeRestaurant(w, r, log)
	if !ok {
		return
	}

	restaurant, err := h.catalog.UpdateRestaurantByID(r.Context(), id, payload)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update restaurant")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, restaurantToResponse(restaurant))
}

// DeleteRestaurant handles DELETE /restaurants/{id} requests
func (h *RestaurantHandler) DeleteRestaurant(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.catalog.DeleteRestaurantByID(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete restaurant")
		return
	}
	shared.RespondNoContent(w)
}

// DeleteAllRestaurants handles DELETE /restaurants requests
func (h *RestaurantHandler) DeleteAllRestaurants(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteAllRestaurants(r.Context()); err != nil {
		HandleAPIError(w, r, err, "Failed to delete restaurants")
		return
	}
	shared.RespondNoContent(w)
}

// decodeRestaurant reads a restaurant payload. A JSON null body yields a nil
// payload, which the service rejects as a missing instance.
func (h *RestaurantHandler) decodeRestaurant(
	w http.ResponseWriter,
	r *http.Request,
	log *slog.Logger,
) (*domain.Restaurant, bool) {
	var req *RestaurantRequest
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
