package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/nwk5097-a11y/mlb-app/internal/service"
	"github.com/nwk5097-a11y/mlb-app/pkg/models"
)

// StatsService is what the HTTP layer needs from the trend service
type StatsService interface {
	Players() []models.Player
	SeasonTable(ctx context.Context, season int) (*models.SeasonTable, error)
	SeasonLine(ctx context.Context, playerID, season int) (*models.SeasonLine, error)
	Trend(ctx context.Context, playerID, season int) (*models.Trend, error)
}

// Handler contains dependencies for HTTP handlers
type Handler struct {
	stats StatsService
}

// NewHandler creates a new handler
func NewHandler(stats StatsService) *Handler {
	return &Handler{stats: stats}
}

// Routes registers the v1 API on r
func (h *Handler) Routes(r chi.Router) {
	r.Get("/health", h.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/players", h.GetPlayers)
		r.Get("/seasons/{season}/players", h.GetSeasonTable)
		r.Get("/players/{playerID}/seasons/{season}", h.GetSeasonLine)
		r.Get("/players/{playerID}/seasons/{season}/trend", h.GetTrend)
	})
}

// HealthCheck returns service health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "mlb-app",
	})
}

// GetPlayers returns the configured roster
// GET /api/v1/players
func (h *Handler) GetPlayers(w http.ResponseWriter, r *http.Request) {
	players := h.stats.Players()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"players": players,
		"count":   len(players),
	})
}

// GetSeasonTable returns every roster player's season line and a summary
// GET /api/v1/seasons/{season}/players
func (h *Handler) GetSeasonTable(w http.ResponseWriter, r *http.Request) {
	season, err := intParam(r, "season")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	table, err := h.stats.SeasonTable(r.Context(), season)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, table)
}

// GetSeasonLine returns one player's season line
// GET /api/v1/players/{playerID}/seasons/{season}
func (h *Handler) GetSeasonLine(w http.ResponseWriter, r *http.Request) {
	playerID, season, err := playerSeason(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	line, err := h.stats.SeasonLine(r.Context(), playerID, season)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, line)
}

// GetTrend returns one player's cumulative AVG/OBP/SLG/OPS series
// GET /api/v1/players/{playerID}/seasons/{season}/trend
func (h *Handler) GetTrend(w http.ResponseWriter, r *http.Request) {
	playerID, season, err := playerSeason(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	trend, err := h.stats.Trend(r.Context(), playerID, season)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, trend)
}

func playerSeason(r *http.Request) (int, int, error) {
	playerID, err := intParam(r, "playerID")
	if err != nil {
		return 0, 0, err
	}
	season, err := intParam(r, "season")
	if err != nil {
		return 0, 0, err
	}
	return playerID, season, nil
}

func intParam(r *http.Request, name string) (int, error) {
	raw := chi.URLParam(r, name)
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return v, nil
}

// respondServiceError maps service errors to HTTP statuses
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUnknownPlayer):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidSeason):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("[handlers] %v", err)
		respondError(w, http.StatusInternalServerError, "failed to load stats")
	}
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
