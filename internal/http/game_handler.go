package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"athletic-metrics/internal/domain"
	"athletic-metrics/internal/service"
)

// GameHandler mantiene dependencias para endpoints de partidos.
type GameHandler struct {
	logger *zap.Logger
	games  *service.GameService
}

func NewGameHandler(logger *zap.Logger, games *service.GameService) *GameHandler {
	return &GameHandler{logger: logger, games: games}
}

// Create maneja POST /games.
func (h *GameHandler) Create(c *gin.Context) {
	var req domain.Game
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create game request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"errorMessage": "invalid request"})
		return
	}
	game, err := h.games.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, "Failed to add game on "+req.Date, err)
		return
	}
	c.JSON(http.StatusOK, game)
}

// List maneja GET /games/get-all.
func (h *GameHandler) List(c *gin.Context) {
	games, err := h.games.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "Failed to get all games", err)
		return
	}
	c.JSON(http.StatusOK, games)
}

// Get maneja GET /games/:team/:date.
func (h *GameHandler) Get(c *gin.Context) {
	team, date := c.Param("team"), c.Param("date")
	game, err := h.games.Get(c.Request.Context(), team, date)
	if err != nil {
		respondError(c, h.logger, "Failed to locate game '"+team+" "+date+"'", err)
		return
	}
	c.JSON(http.StatusOK, game)
}

type updateGameRequest struct {
	TargetTeam string `json:"targetTeam"`
	TargetDate string `json:"targetDate"`
	domain.Game
}

// Update maneja PUT /games. targetTeam y targetDate identifican el partido.
func (h *GameHandler) Update(c *gin.Context) {
	var req updateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid update game request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"errorMessage": "invalid request"})
		return
	}
	game, err := h.games.Update(c.Request.Context(), req.TargetTeam, req.TargetDate, req.Game)
	if err != nil {
		respondError(c, h.logger, "Failed to update game '"+req.TargetTeam+" "+req.TargetDate+"'", err)
		return
	}
	c.JSON(http.StatusOK, game)
}

// Delete maneja DELETE /games/:date/:team.
func (h *GameHandler) Delete(c *gin.Context) {
	date, team := c.Param("date"), c.Param("team")
	if err := h.games.Delete(c.Request.Context(), team, date); err != nil {
		respondError(c, h.logger, "Failed to delete '"+date+"'", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "team": team})
}
