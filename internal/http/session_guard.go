package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"athletic-metrics/internal/domain"
	"athletic-metrics/internal/service"
)

const sessionContextKey = "session"

// SessionGuard es la puerta de administrador que usan los endpoints de escritura.
type SessionGuard struct {
	logger       *zap.Logger
	sessions     *service.SessionService
	secureCookie bool
}

func NewSessionGuard(logger *zap.Logger, sessions *service.SessionService, secureCookie bool) *SessionGuard {
	return &SessionGuard{logger: logger, sessions: sessions, secureCookie: secureCookie}
}

// Administrator decide si la request pertenece a un administrador. En caso
// negativo ya escribió el 401 y el caller no debe seguir; en caso positivo
// la sesión fue renovada y la cookie nueva está en la respuesta.
func (g *SessionGuard) Administrator(c *gin.Context) bool {
	sess, err := g.sessions.RequireAdministrator(sessionToken(c))
	if err != nil {
		g.logger.Warn("admin check rejected",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)
		c.JSON(http.StatusUnauthorized, gin.H{"errorMessage": "Unauthorized access. Administrator session required."})
		return false
	}
	setSessionCookie(c, sess, g.secureCookie)
	c.Set(sessionContextKey, sess)
	return true
}

// RequireAdministrator adapta Administrator como middleware de gin.
func (g *SessionGuard) RequireAdministrator() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !g.Administrator(c) {
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentSession devuelve la sesión que dejó el guard en el contexto.
func CurrentSession(c *gin.Context) (domain.Session, bool) {
	val, ok := c.Get(sessionContextKey)
	if !ok {
		return domain.Session{}, false
	}
	sess, ok := val.(domain.Session)
	return sess, ok
}
