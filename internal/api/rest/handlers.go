package rest

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/fortuna/gridiron/internal/store"
	"github.com/fortuna/gridiron/internal/store/repository"
)

// Handler contains the dependencies of the HTTP handlers.
type Handler struct {
	db    *store.Database
	repos *repository.Store
}

// NewHandler creates a handler over the repositories.
func NewHandler(db *store.Database, repos *repository.Store) *Handler {
	return &Handler{db: db, repos: repos}
}

// HealthCheck reports service and database health.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.db.HealthCheck(); err != nil {
		respondError(w, http.StatusServiceUnavailable, "database unavailable", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "gridiron",
	})
}

// GetSeasons returns every season present in the archive.
func (h *Handler) GetSeasons(w http.ResponseWriter, r *http.Request) {
	seasons, err := h.repos.Games.ListSeasons(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list seasons", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"seasons": seasons})
}

// GetSeasonGames returns one season's games in date order.
func (h *Handler) GetSeasonGames(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(mux.Vars(r)["year"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid season year", err)
		return
	}

	games, err := h.repos.Games.ListBySeason(r.Context(), year)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list games", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"season": year,
		"games":  games,
	})
}

// GetGame returns one game with its stat rows, scoring plays and team
// totals.
func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["gameID"]

	game, err := h.repos.Games.Get(r.Context(), gameID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to get game", err)
		return
	}
	if game == nil {
		respondError(w, http.StatusNotFound, "game not found", nil)
		return
	}

	stats, err := h.repos.Stats.RowsForGame(r.Context(), gameID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to get stats", err)
		return
	}
	plays, err := h.repos.Stats.ScoringPlays(r.Context(), gameID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to get scoring plays", err)
		return
	}
	totals, err := h.repos.Stats.TeamTotals(r.Context(), gameID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to get team totals", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"game":          game,
		"stats":         stats,
		"scoring_plays": plays,
		"team_stats":    totals,
	})
}

// GetPlayer returns a player's identity record.
func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	playerID := mux.Vars(r)["playerID"]

	player, err := h.repos.Players.Get(r.Context(), playerID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to get player", err)
		return
	}
	if player == nil {
		respondError(w, http.StatusNotFound, "player not found", nil)
		return
	}
	respondJSON(w, http.StatusOK, player)
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string, err error) {
	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}
	if err != nil {
		response["details"] = err.Error()
	}
	respondJSON(w, status, response)
}
