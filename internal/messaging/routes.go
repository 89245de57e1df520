// internal/messaging/routes.go

package messaging

import (
	"github.com/gorilla/mux"

	"github.com/imadgeboyega/kiekky-datecards/internal/auth"
)

// RegisterRoutes registers the chat routes. Events go out over the dating websocket.
func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/messages").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("", handler.SendMessage).Methods("POST")
	api.HandleFunc("/conversations/{userId:[0-9]+}", handler.GetConversation).Methods("GET")
	api.HandleFunc("/conversations/{userId:[0-9]+}/read", handler.MarkRead).Methods("POST")
}
