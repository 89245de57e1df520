package datecard

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/imadgeboyega/kiekky-datecards/internal/auth"
	"github.com/imadgeboyega/kiekky-datecards/internal/common/utils"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, logger: logger}
}

// GetDateCard returns the match's date card, creating it on first request.
// Only participants of the match may read it.
func (h *Handler) GetDateCard(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	matchID, err := strconv.ParseInt(mux.Vars(r)["matchId"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid match ID")
		return
	}

	participants, err := h.service.GetMatchParticipants(r.Context(), matchID)
	if err != nil {
		if errors.Is(err, ErrMatchNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Match not found")
			return
		}
		h.logger.Error("match lookup failed", zap.Int64("match_id", matchID), zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	// Non-participants get the same answer as a missing match.
	if !participants.Includes(userID) {
		utils.RespondWithError(w, http.StatusNotFound, "Match not found")
		return
	}

	card, _, err := h.service.EnsureDateCard(r.Context(), matchID)
	if err != nil {
		h.logger.Error("date card creation failed", zap.Int64("match_id", matchID), zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create date card")
		return
	}

	utils.RespondWithData(w, http.StatusOK, card)
}
