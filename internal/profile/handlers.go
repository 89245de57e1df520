//internal/profile/handlers.go

package profile

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/imadgeboyega/kiekky-datecards/internal/auth"
	"github.com/imadgeboyega/kiekky-datecards/internal/common/utils"
)

// Handler handles profile-related HTTP requests
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new profile handler
func NewHandler(service Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, logger: logger}
}

// GetMyProfile handles getting current user's profile
func (h *Handler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	profile, err := h.service.GetMyProfile(r.Context(), userID)
	if err != nil {
		h.respondWithServiceError(w, err, "Failed to get profile")
		return
	}

	utils.RespondWithData(w, http.StatusOK, profile)
}

// GetUserProfile handles getting another user's profile
func (h *Handler) GetUserProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.ErrorResponse(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	profile, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		h.respondWithServiceError(w, err, "Failed to get profile")
		return
	}

	utils.RespondWithData(w, http.StatusOK, profile)
}

// UpdateProfile handles profile updates
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	profile, err := h.service.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		h.respondWithServiceError(w, err, "Failed to update profile")
		return
	}

	utils.RespondWithData(w, http.StatusOK, profile)
}

func (h *Handler) respondWithServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrProfileNotFound):
		utils.ErrorResponse(w, "Profile not found", http.StatusNotFound)
	case errors.Is(err, ErrTooManyInterests):
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
	default:
		h.logger.Error(fallback, zap.Error(err))
		utils.ErrorResponse(w, fallback, http.StatusInternalServerError)
	}
}
