package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"chathub/database"
	"chathub/internal/config"
	"chathub/internal/http-api/handler"
	"chathub/internal/http-api/middleware"
	"chathub/internal/http-api/repository"
	"chathub/internal/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

func main() {
	// Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := newLogger(cfg)

	// Database
	db, err := database.OpenGorm(cfg, logger)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	if err := database.Migrate(db, logger); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Redis backs the login throttle only; losing it degrades throttling,
	// not the API
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unreachable, login throttling disabled until it recovers", "error", err)
	}
	cancel()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	membershipRepo := repository.NewMembershipRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, refreshTokenRepo, cfg)
	roomService := service.NewRoomService(roomRepo, membershipRepo)
	messageService := service.NewMessageService(messageRepo, roomRepo, membershipRepo)

	// Expired refresh tokens accumulate otherwise; sweep hourly
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := refreshTokenRepo.DeleteExpired(); err != nil {
				logger.Warn("refresh token sweep failed", "error", err)
			}
		}
	}()

	// Handlers
	healthHandler := handler.NewHealthHandler(db)
	authHandler := handler.NewAuthHandler(authService)
	roomHandler := handler.NewRoomHandler(roomService)
	messageHandler := handler.NewMessageHandler(messageService)

	// Setup Gin
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.RateLimit(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst))

	healthHandler.RegisterRoutes(r)

	api := r.Group("")
	loginThrottle := middleware.LoginThrottle(rdb, logger, int64(cfg.LoginAttemptLimit), cfg.LoginAttemptWindow)
	authHandler.RegisterRoutes(api, loginThrottle)
	roomHandler.RegisterRoutes(api, authService)
	messageHandler.RegisterRoutes(api, authService)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("HTTP server starting", "addr", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelDebug
	switch cfg.LogLevel {
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
