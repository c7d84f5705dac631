package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/lunchvote/internal/api/shared"
	"github.com/phrazzld/lunchvote/internal/platform/logger"
	"github.com/phrazzld/lunchvote/internal/service"
)

// VotingHandler handles vote HTTP requests
type VotingHandler struct {
	voting service.VotingService
	logger *slog.Logger
}

// NewVotingHandler creates a new VotingHandler
func NewVotingHandler(voting service.VotingService, logger *slog.Logger) *VotingHandler {
	if voting == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("voting service cannot be nil for VotingHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for VotingHandler")
	}

	return &VotingHandler{
		voting: voting,
		logger: logger.With(slog.String("component", "voting_handler")),
	}
}

// Vote handles PUT /v-service/restaurants/{id} requests
func (h *VotingHandler) Vote(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathID(w, r, "id", log)
	if !ok {
		return
	}

	votes, err := h.voting.VoteForRestaurantByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to record vote")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, VoteResponse{RestaurantID: id, Votes: votes})
}

// ClearVotes handles DELETE /v-service/restaurants requests
func (h *VotingHandler) ClearVotes(w http.ResponseWriter, r *http.Request) {
	if err := h.voting.ClearAllVotes(r.Context()); err != nil {
		HandleAPIError(w, r, err, "Failed to clear votes")
		return
	}
	shared.RespondNoContent(w)
}
