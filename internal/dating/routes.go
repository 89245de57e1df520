package dating

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/imadgeboyega/kiekky-datecards/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, hub *Hub, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/dating").Subrouter()
	api.Use(authMiddleware.Authenticate)

	// Swipes
	api.HandleFunc("/like/{userId:[0-9]+}", handler.Like).Methods("POST")
	api.HandleFunc("/pass/{userId:[0-9]+}", handler.Pass).Methods("POST")

	// Matches
	api.HandleFunc("/matches", handler.GetMatches).Methods("GET")
	api.HandleFunc("/matches/{id:[0-9]+}", handler.Unmatch).Methods("DELETE")

	// Realtime events
	router.Handle("/api/v1/ws", authMiddleware.Authenticate(http.HandlerFunc(hub.ServeWS))).Methods("GET")
}
