package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"athletic-metrics/internal/domain"
	"athletic-metrics/internal/service"
)

// TeamHandler mantiene dependencias para endpoints de equipos.
type TeamHandler struct {
	logger *zap.Logger
	teams  *service.TeamService
}

func NewTeamHandler(logger *zap.Logger, teams *service.TeamService) *TeamHandler {
	return &TeamHandler{logger: logger, teams: teams}
}

// Create maneja POST /teams.
func (h *TeamHandler) Create(c *gin.Context) {
	var req domain.Team
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create team request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"errorMessage": "invalid request"})
		return
	}
	team, err := h.teams.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, "Failed to add "+req.Name, err)
		return
	}
	c.JSON(http.StatusOK, team)
}

// List maneja GET /teams/get-all.
func (h *TeamHandler) List(c *gin.Context) {
	teams, err := h.teams.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "Failed to get all teams", err)
		return
	}
	c.JSON(http.StatusOK, teams)
}

// Get maneja GET /teams/:name.
func (h *TeamHandler) Get(c *gin.Context) {
	name := c.Param("name")
	team, err := h.teams.Get(c.Request.Context(), name)
	if err != nil {
		respondError(c, h.logger, "Failed to locate name '"+name+"'", err)
		return
	}
	c.JSON(http.StatusOK, team)
}

type updateTeamRequest struct {
	OriginalName string `json:"originalName"`
	domain.Team
}

// Update maneja PUT /teams.
func (h *TeamHandler) Update(c *gin.Context) {
	var req updateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid update team request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"errorMessage": "invalid request"})
		return
	}
	team, err := h.teams.Update(c.Request.Context(), req.OriginalName, req.Team)
	if err != nil {
		respondError(c, h.logger, "Failed to update '"+req.OriginalName+"'", err)
		return
	}
	c.JSON(http.StatusOK, updateTeamRequest{OriginalName: req.OriginalName, Team: team})
}

// Delete maneja DELETE /teams/:name.
func (h *TeamHandler) Delete(c *gin.Context) {
	name := c.Param("name")
	if err := h.teams.Delete(c.Request.Context(), name); err != nil {
		respondError(c, h.logger, "Failed to delete '"+name+"'", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": name})
}
