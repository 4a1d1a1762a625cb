package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pageza/pantry-chef/backend/config"
	"github.com/pageza/pantry-chef/backend/internal/database"
	"github.com/pageza/pantry-chef/backend/internal/logger"
	"github.com/pageza/pantry-chef/backend/internal/middleware"
	"github.com/pageza/pantry-chef/backend/internal/router"
	"github.com/pageza/pantry-chef/backend/internal/server"
	"github.com/pageza/pantry-chef/backend/internal/service"
	"github.com/pageza/pantry-chef/backend/internal/telemetry"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync(lg)

	if !config.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	shutdownTracing, err := telemetry.Init(ctx, "pantry-chef")
	if err != nil {
		lg.Fatal("failed to initialise tracing", zap.Error(err))
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			lg.Warn("tracing shutdown failed", zap.Error(err))
		}
	}()

	// Redis is optional; without it requests are not rate limited
	var redisClient *redis.Client
	if cfg.RedisEnabled() {
		redisClient, err = database.NewRedisClient(ctx, cfg, lg)
		if err != nil {
			lg.Warn("continuing without rate limiting", zap.Error(err))
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	deps := router.Dependencies{
		Logger:         lg,
		AllowedOrigins: cfg.AllowedOrigins,
		Auth:           service.NewAuthService(cfg.AuthKey),
		RateLimiter:    middleware.NewRecipeRateLimiter(redisClient, cfg.RateLimitPerHour, lg),
	}

	var usage service.UsageRecorder
	if cfg.DatabaseEnabled() {
		db, err := database.New(ctx, cfg, lg)
		if err != nil {
			lg.Fatal("failed to connect to usage database", zap.Error(err))
		}
		defer database.Close(db)
		if err := database.RunMigrations(db); err != nil {
			lg.Fatal("failed to migrate usage database", zap.Error(err))
		}
		store := service.NewUsageStore(db)
		usage = store
		deps.Usage = store
	}

	client := service.NewOpenAIClient(cfg, lg)
	deps.Recipes = service.NewRecipeService(client, usage, lg)

	srv := server.New(cfg, router.SetupRouter(deps), lg)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			lg.Error("server error", zap.Error(err))
		}
		return
	case sig := <-quit:
		lg.Info("received signal", zap.String("signal", sig.String()))
	}

	lg.Info("shutting down server")
	if err := srv.Shutdown(context.Background()); err != nil {
		lg.Error("server shutdown error", zap.Error(err))
		return
	}
	lg.Info("server stopped")
}
