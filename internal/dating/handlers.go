package dating

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

func (h *Handler) Like(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	targetID, err := strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	result, err := h.service.Like(r.Context(), userID, targetID)
	if err != nil {
		h.respondWithServiceError(w, err, "Failed to record like")
		return
	}

	utils.RespondWithData(w, http.StatusOK, result)
}

func (h *Handler) Pass(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	targetID, err := strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	if err := h.service.Pass(r.Context(), userID, targetID); err != nil {
		h.respondWithServiceError(w, err, "Failed to record pass")
		return
	}

	utils.MessageResponse(w, "Pass recorded", http.StatusOK)
}

func (h *Handler) GetMatches(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	matches, err := h.service.GetMatches(r.Context(), userID)
	if err != nil {
		h.logger.Error("list matches failed", zap.Int64("user_id", userID), zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to get matches")
		return
	}

	utils.RespondWithData(w, http.StatusOK, &MatchListResponse{Matches: matches, Count: len(matches)})
}

func (h *Handler) Unmatch(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	matchID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid match ID")
		return
	}

	if err := h.service.Unmatch(r.Context(), matchID, userID); err != nil {
		h.respondWithServiceError(w, err, "Failed to unmatch")
		return
	}

	utils.MessageResponse(w, "Unmatched successfully", http.StatusOK)
}

func (h *Handler) respondWithServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrCannotLikeSelf):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrUserNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
	case errors.Is(err, ErrMatchNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "Match not found")
	case errors.Is(err, ErrUnauthorized):
		utils.RespondWithError(w, http.StatusForbidden, err.Error())
	default:
		h.logger.Error(fallback, zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, fallback)
	}
}
