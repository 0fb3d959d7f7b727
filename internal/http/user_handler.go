package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"athletic-metrics/internal/service"
)

// UserHandler mantiene dependencias para endpoints de usuarios.
type UserHandler struct {
	logger *zap.Logger
	users  *service.UserService
}

func NewUserHandler(logger *zap.Logger, users *service.UserService) *UserHandler {
	return &UserHandler{logger: logger, users: users}
}

// Register maneja POST /users/register. Nunca crea administradores.
func (h *UserHandler) Register(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid register request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"errorMessage": "invalid request"})
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, h.logger, "Failed to register", err)
		return
	}
	h.logger.Info("user registered", zap.String("username", user.Username))
	c.JSON(http.StatusOK, gin.H{"success": true, "username": user.Username})
}

// List maneja GET /users/get-all.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "Failed to get all users", err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// Get maneja GET /users/:username.
func (h *UserHandler) Get(c *gin.Context) {
	username := c.Param("username")
	user, err := h.users.Get(c.Request.Context(), username)
	if err != nil {
		respondError(c, h.logger, "Failed to locate name '"+username+"'", err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Update maneja PUT /users.
func (h *UserHandler) Update(c *gin.Context) {
	var req struct {
		OldUsername   string `json:"oldUsername"`
		Username      string `json:"username"`
		Password      string `json:"password"`
		Administrator bool   `json:"administrator"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid update user request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"errorMessage": "invalid request"})
		return
	}

	user, err := h.users.Update(c.Request.Context(), service.UpdateUserInput{
		OldUsername:   req.OldUsername,
		Username:      req.Username,
		Password:      req.Password,
		Administrator: req.Administrator,
	})
	if err != nil {
		respondError(c, h.logger, "Failed to update '"+req.OldUsername+"'", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"oldUsername":   req.OldUsername,
		"username":      user.Username,
		"administrator": user.Administrator,
	})
}

// Delete maneja DELETE /users/:username.
func (h *UserHandler) Delete(c *gin.Context) {
	username := c.Param("username")
	if err := h.users.Delete(c.Request.Context(), username); err != nil {
		respondError(c, h.logger, "Failed to delete '"+username+"'", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": username})
}
