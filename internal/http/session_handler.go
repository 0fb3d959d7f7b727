package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"athletic-metrics/internal/service"
)

// SessionHandler expone login, logout, chequeo y renovación de sesión.
type SessionHandler struct {
	logger       *zap.Logger
	sessions     *service.SessionService
	secureCookie bool
}

func NewSessionHandler(logger *zap.Logger, sessions *service.SessionService, secureCookie bool) *SessionHandler {
	return &SessionHandler{logger: logger, sessions: sessions, secureCookie: secureCookie}
}

// Login maneja POST /session/login.
func (h *SessionHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	// Un body ilegible se trata igual que credenciales vacías.
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("login body not bound", zap.Error(err))
	}

	if req.Username == "" || req.Password == "" {
		h.logger.Warn("login rejected: empty username or password")
		c.JSON(http.StatusUnauthorized, gin.H{"errorMessage": "Failed to login. Empty username or password."})
		return
	}

	sess, err := h.sessions.LoginFrom(c.Request.Context(), c.ClientIP(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrRateLimited) {
			c.JSON(http.StatusTooManyRequests, gin.H{"errorMessage": "Too many login attempts. Try again later."})
			return
		}
		h.logger.Warn("login rejected", zap.String("username", req.Username))
		c.JSON(http.StatusUnauthorized, gin.H{"errorMessage": "Failed to login " + req.Username + ". Invalid user or password."})
		return
	}

	setSessionCookie(c, sess, h.secureCookie)
	c.JSON(http.StatusOK, gin.H{"administrator": sess.Administrator})
}

// Logout maneja GET /session/logout.
func (h *SessionHandler) Logout(c *gin.Context) {
	if err := h.sessions.Logout(sessionToken(c)); err != nil {
		c.Status(http.StatusUnauthorized)
		return
	}
	clearSessionCookie(c, h.secureCookie)
	c.Status(http.StatusOK)
}

// Auth maneja GET /session/auth. No renueva la sesión.
func (h *SessionHandler) Auth(c *gin.Context) {
	sess, err := h.sessions.Authenticate(sessionToken(c))
	if err != nil {
		c.Status(http.StatusUnauthorized)
		return
	}
	c.JSON(http.StatusOK, gin.H{"administrator": sess.Administrator})
}

// Refresh maneja GET /session/refresh: rota el token y extiende la expiración.
func (h *SessionHandler) Refresh(c *gin.Context) {
	sess, err := h.sessions.Renew(sessionToken(c))
	if err != nil {
		c.Status(http.StatusUnauthorized)
		return
	}
	setSessionCookie(c, sess, h.secureCookie)
	c.JSON(http.StatusOK, gin.H{"administrator": sess.Administrator})
}
