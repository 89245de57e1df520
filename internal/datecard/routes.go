package datecard

import (
	"github.com/gorilla/mux"

	"github.com/imadgeboyega/kiekky-datecards/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/date-cards").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("/{matchId:[0-9]+}", handler.GetDateCard).Methods("GET")
}
