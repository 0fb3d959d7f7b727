package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"athletic-metrics/internal/config"
	"athletic-metrics/internal/db"
	apihttp "athletic-metrics/internal/http"
	applog "athletic-metrics/internal/logger"
	"athletic-metrics/internal/repository"
	"athletic-metrics/internal/service"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, err := applog.New(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	client, err := db.NewClient(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Warn("db disconnect", zap.Error(err))
		}
	}()

	database := client.Database(cfg.DBName)
	if err := db.EnsureCollections(ctx, database, cfg.DBReset, logger); err != nil {
		logger.Fatal("db init", zap.Error(err))
	}

	teamRepo := repository.NewMongoTeamRepository(database.Collection(db.TeamsCollection))
	playerRepo := repository.NewMongoPlayerRepository(database.Collection(db.PlayersCollection))
	gameRepo := repository.NewMongoGameRepository(database.Collection(db.GamesCollection))
	userRepo := repository.NewMongoUserRepository(database.Collection(db.UsersCollection))

	userSvc := service.NewUserService(logger, userRepo, cfg.BcryptConcurrency)
	if cfg.AdminUsername != "" && cfg.AdminPassword != "" {
		if _, created, err := userSvc.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
			logger.Error("admin bootstrap failed", zap.String("username", cfg.AdminUsername), zap.Error(err))
		} else if created {
			logger.Info("admin account created", zap.String("username", cfg.AdminUsername))
		}
	}

	var loginLimiter service.LoginRateLimiter
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, using in-memory login limiter", zap.Error(err))
		} else {
			loginLimiter = service.NewRedisLoginRateLimiter(redisClient, cfg.LoginRateWindow(), cfg.LoginRateMax)
		}
		cancel()
	}
	if loginLimiter == nil {
		loginLimiter = service.NewLoginRateLimiter(cfg.LoginRateWindow(), cfg.LoginRateMax)
	}

	sessionSvc := service.NewSessionService(logger, service.NewSessionStore(), userSvc, loginLimiter, cfg.SessionTTL())

	router := apihttp.NewRouter(logger, cfg.FrontEnd, apihttp.Handlers{
		Guard:    apihttp.NewSessionGuard(logger, sessionSvc, cfg.CookieSecure),
		Sessions: apihttp.NewSessionHandler(logger, sessionSvc, cfg.CookieSecure),
		Teams:    apihttp.NewTeamHandler(logger, service.NewTeamService(logger, teamRepo)),
		Players:  apihttp.NewPlayerHandler(logger, service.NewPlayerService(logger, playerRepo)),
		Games:    apihttp.NewGameHandler(logger, service.NewGameService(logger, gameRepo)),
		Users:    apihttp.NewUserHandler(logger, userSvc),
	})

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("starting server", zap.String("port", cfg.HTTPPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
	logger.Info("server exited")
}
