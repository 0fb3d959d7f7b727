package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"athletic-metrics/internal/domain"
)

// SessionCookieName es la cookie que transporta el token de sesión.
const SessionCookieName = "sessionId"

func sessionToken(c *gin.Context) string {
	token, err := c.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return token
}

// setSessionCookie emite la cookie con expiración absoluta igual a la de la sesión.
func setSessionCookie(c *gin.Context, sess domain.Session, secure bool) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     SessionCookieName,
		Value:    sess.Token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie fuerza la expiración inmediata de la cookie en el cliente.
func clearSessionCookie(c *gin.Context, secure bool) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
