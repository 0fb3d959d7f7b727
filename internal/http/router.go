package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const notFoundMessage = "Invalid url entered please try again"

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(logger *zap.Logger, allowedOrigins []string, h Handlers) *gin.Engine {
	r := gin.New()

	r.Use(zapLoggerMiddleware(logger), gin.Recovery())
	if len(allowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     allowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	admin := h.Guard.RequireAdministrator()

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Hello World")
	})

	teams := r.Group("/teams")
	teams.POST("", admin, h.Teams.Create)
	teams.GET("/get-all", h.Teams.List)
	teams.GET("/:name", h.Teams.Get)
	teams.PUT("", admin, h.Teams.Update)
	teams.DELETE("/:name", admin, h.Teams.Delete)

	players := r.Group("/players")
	players.POST("", admin, h.Players.Create)
	players.GET("/get-all", h.Players.List)
	players.GET("/:name", h.Players.Get)
	players.PUT("", admin, h.Players.Update)
	players.DELETE("/:name", admin, h.Players.Delete)

	games := r.Group("/games")
	games.POST("", admin, h.Games.Create)
	games.GET("/get-all", h.Games.List)
	games.GET("/:team/:date", h.Games.Get)
	games.PUT("", admin, h.Games.Update)
	games.DELETE("/:date/:team", admin, h.Games.Delete)

	users := r.Group("/users")
	users.POST("/register", h.Users.Register)
	users.GET("/get-all", admin, h.Users.List)
	users.GET("/:username", admin, h.Users.Get)
	users.PUT("", admin, h.Users.Update)
	users.DELETE("/:username", admin, h.Users.Delete)

	session := r.Group("/session")
	session.POST("/login", h.Sessions.Login)
	session.GET("/logout", h.Sessions.Logout)
	session.GET("/auth", h.Sessions.Auth)
	session.GET("/refresh", h.Sessions.Refresh)

	r.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, notFoundMessage)
	})

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}
