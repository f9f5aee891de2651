package main

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/aayushmishra321/Interview-Ai-sub001/config"
	"github.com/aayushmishra321/Interview-Ai-sub001/db"
	"github.com/aayushmishra321/Interview-Ai-sub001/internal/audit"
	"github.com/aayushmishra321/Interview-Ai-sub001/internal/auth/handler"
	"github.com/aayushmishra321/Interview-Ai-sub001/internal/auth/middleware"
	repo "github.com/aayushmishra321/Interview-Ai-sub001/internal/auth/repository/postgres"
	"github.com/aayushmishra321/Interview-Ai-sub001/internal/auth/service"
	"github.com/aayushmishra321/Interview-Ai-sub001/internal/interview"
	"github.com/aayushmishra321/Interview-Ai-sub001/internal/logger"
	"github.com/aayushmishra321/Interview-Ai-sub001/internal/ratelimit"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.LogLevel)
	ctx := context.Background()

	if err := db.RunMigrations(ctx, cfg.DBURL); err != nil {
		log.WithError(err).Fatal("migrations failed")
	}

	dbPool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		log.WithError(err).Fatal("database connection failed")
	}
	defer dbPool.Close()

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.WithError(err).Fatal("invalid Redis URL")
		}
		rdb = redis.NewClient(opts)
		defer rdb.Close()
	}

	userRepo := repo.NewPostgresRepository(dbPool)
	tokenService := service.NewTokenService(cfg.AccessTokenSecret, cfg.RefreshTokenSecret,
		cfg.AccessExpiryMin, cfg.RefreshExpiryMin)
	userService := service.NewUserService(userRepo, tokenService, log)

	authenticator := middleware.NewAuthenticator(userRepo, tokenService, log)
	userLimiter := middleware.NewUserRateLimiter(cfg.UserRateLimit,
		time.Duration(cfg.UserRateWindowMin)*time.Minute)
	tierLimiter := ratelimit.NewTierLimiter(rdb, log)
	auditLogger := audit.NewLogger(dbPool, log)

	authHandler := handler.NewAuthHandler(userService)
	adminHandler := handler.NewAdminHandler(userService, auditLogger)
	interviewHandler := interview.NewHandler(interview.NewPostgresRepository(dbPool))

	app := fiber.New()
	handler.RegisterRoutes(app, authHandler, adminHandler, interviewHandler, handler.Middlewares{
		Auth:      authenticator,
		UserLimit: userLimiter,
		TierLimit: tierLimiter.Handle,
		Admin:     middleware.RequireAdmin(log),
	})

	log.WithField("port", cfg.Port).Info("starting server")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
