// Package rest serves the canonical schema read-only over HTTP for the
// dashboard frontend.
package rest

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/fortuna/gridiron/internal/store"
	"github.com/fortuna/gridiron/internal/store/repository"
)

// Server is the REST API server.
type Server struct {
	port   string
	server *http.Server
}

// NewServer wires routes and middleware.
func NewServer(port string, db *store.Database, repos *repository.Store, corsOrigins []string) *Server {
	handler := NewHandler(db, repos)

	router := mux.NewRouter()
	router.Use(RecoveryMiddleware)
	router.Use(LoggingMiddleware)

	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/seasons", handler.GetSeasons).Methods("GET")
	api.HandleFunc("/seasons/{year}/games", handler.GetSeasonGames).Methods("GET")
	api.HandleFunc("/games/{gameID}", handler.GetGame).Methods("GET")
	api.HandleFunc("/players/{playerID}", handler.GetPlayer).Methods("GET")

	wrapped := cors.New(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
	}).Handler(router)

	return &Server{
		port: port,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%s", port),
			Handler: wrapped,
		},
	}
}

// Start listens and serves until Shutdown.
func (s *Server) Start() error {
	log.Printf("[api] listening on :%s", s.port)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
