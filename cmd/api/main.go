package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/nutriflow/backend/config"
	"github.com/nutriflow/backend/internal/api"
	"github.com/nutriflow/backend/internal/database"
	"github.com/nutriflow/backend/internal/middleware"
	"github.com/nutriflow/backend/internal/router"
	"github.com/nutriflow/backend/internal/service"
)

func main() {
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		log = log.Level(level)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	authService := service.NewAuthService(db, redisClient, cfg.JWTSecret)
	profileService := service.NewProfileService(db)
	waterService := service.NewWaterService(db)
	llmService, err := service.NewLLMService(cfg, redisClient, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create generation service")
	}

	limiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Window: cfg.RateLimitWindow,
		Limit:  cfg.RateLimitCount,
	})

	authHandler := api.NewAuthHandler(authService, log)
	profileHandler := api.NewProfileHandler(profileService, authService, log)
	waterHandler := api.NewWaterHandler(waterService, profileService, authService, log)
	generateHandler := api.NewGenerateHandler(limiter, authService, profileService, llmService, log)

	engine := router.SetupRouter(authHandler, profileHandler, waterHandler, generateHandler, authService, profileService, log)

	srv := &http.Server{
		Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
		Handler: engine,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("starting server")
		errChan <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server shutdown error")
	}
	log.Info().Msg("server stopped")
}
