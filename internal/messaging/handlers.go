// internal/messaging/handlers.go

package messaging

import (
	"encoding/json"
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

// SendMessage sends a message to a match
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	message, err := h.service.SendMessage(r.Context(), userID, &req)
	if err != nil {
		h.respondWithServiceError(w, err, "Failed to send message")
		return
	}

	utils.RespondWithData(w, http.StatusCreated, message)
}

// GetConversation lists messages exchanged with another user
func (h *Handler) GetConversation(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	otherID, err := strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	messages, err := h.service.GetConversation(r.Context(), userID, otherID, limit, offset)
	if err != nil {
		h.respondWithServiceError(w, err, "Failed to get conversation")
		return
	}

	utils.RespondWithData(w, http.StatusOK, &ConversationResponse{Messages: messages, Count: len(messages)})
}

// MarkRead marks the conversation with another user as read
func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	otherID, err := strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	updated, err := h.service.MarkConversationRead(r.Context(), userID, otherID)
	if err != nil {
		h.respondWithServiceError(w, err, "Failed to mark conversation read")
		return
	}

	utils.RespondWithData(w, http.StatusOK, &MarkReadResponse{Updated: updated})
}

func (h *Handler) respondWithServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrCannotMessageSelf), errors.Is(err, ErrEmptyMessage):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotMatched):
		utils.RespondWithError(w, http.StatusForbidden, err.Error())
	default:
		h.logger.Error(fallback, zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, fallback)
	}
}
