package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"athletic-metrics/internal/domain"
	"athletic-metrics/internal/service"
)

// PlayerHandler mantiene dependencias para endpoints de jugadores.
type PlayerHandler struct {
	logger  *zap.Logger
	players *service.PlayerService
}

func NewPlayerHandler(logger *zap.Logger, players *service.PlayerService) *PlayerHandler {
	return &PlayerHandler{logger: logger, players: players}
}

// Create maneja POST /players.
func (h *PlayerHandler) Create(c *gin.Context) {
	var req domain.Player
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create player request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"errorMessage": "invalid request"})
		return
	}
	player, err := h.players.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, "Failed to add "+req.Name, err)
		return
	}
	c.JSON(http.StatusOK, player)
}

// List maneja GET /players/get-all.
func (h *PlayerHandler) List(c *gin.Context) {
	players, err := h.players.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "Failed to get all players", err)
		return
	}
	c.JSON(http.StatusOK, players)
}

// Get maneja GET /players/:name.
func (h *PlayerHandler) Get(c *gin.Context) {
	name := c.Param("name")
	player, err := h.players.Get(c.Request.Context(), name)
	if err != nil {
		respondError(c, h.logger, "Failed to locate name '"+name+"'", err)
		return
	}
	c.JSON(http.StatusOK, player)
}

type updatePlayerRequest struct {
	OriginalName string `json:"originalName"`
	domain.Player
}

// Update maneja PUT /players.
func (h *PlayerHandler) Update(c *gin.Context) {
	var req updatePlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid update player request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"errorMessage": "invalid request"})
		return
	}
	player, err := h.players.Update(c.Request.Context(), req.OriginalName, req.Player)
	if err != nil {
		respondError(c, h.logger, "Failed to update '"+req.OriginalName+"'", err)
		return
	}
	c.JSON(http.StatusOK, updatePlayerRequest{OriginalName: req.OriginalName, Player: player})
}

// Delete maneja DELETE /players/:name.
func (h *PlayerHandler) Delete(c *gin.Context) {
	name := c.Param("name")
	if err := h.players.Delete(c.Request.Context(), name); err != nil {
		respondError(c, h.logger, "Failed to delete '"+name+"'", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": name})
}
