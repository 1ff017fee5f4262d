package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/forkful/recipebook/config"
	"github.com/forkful/recipebook/internal/api"
	"github.com/forkful/recipebook/internal/database"
	"github.com/forkful/recipebook/internal/middleware"
	"github.com/forkful/recipebook/internal/repository"
	"github.com/forkful/recipebook/internal/server"
	"github.com/forkful/recipebook/internal/service"
	"github.com/forkful/recipebook/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger := zerolog.New(os.Stderr)
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	logger := newLogger(cfg)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("database connection failed")
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal().Err(err).Msg("migrations failed")
	}

	// Redis backs sessions and rate limiting. Without it the server
	// still runs, with in-memory sessions and no rate limiting.
	var redisClient *redis.Client
	var sessions session.Store
	var limiter *middleware.RateLimiter
	if cfg.RedisEnabled() {
		redisClient, err = database.NewRedisClient(cfg, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis connection failed")
		}
		sessions = session.NewRedisStore(redisClient, cfg.SessionTTL)
		limiter = middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
			Window:    cfg.RateLimitWindow,
			Limit:     cfg.RateLimitRequests,
			KeyPrefix: "ratelimit:auth",
		}, logger)
	} else {
		logger.Warn().Msg("redis not configured, using in-memory sessions")
		sessions = session.NewMemoryStore(cfg.SessionTTL)
	}

	users := repository.NewUserRepository(db)
	recipes := repository.NewRecipeRepository(db)

	authHandler := api.NewAuthHandler(api.AuthHandlerConfig{
		OAuth: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleCallbackURL,
			Scopes:       []string{"profile", "email"},
			Endpoint:     google.Endpoint,
		},
		SessionTTL:    cfg.SessionTTL,
		SecureCookies: cfg.SecureCookies,
	}, service.NewAuthService(users), sessions, logger)

	router := api.SetupRouter(api.RouterDeps{
		Recipes:     api.NewRecipeHandler(recipes),
		Auth:        authHandler,
		Health:      api.NewHealthHandler(db, redisClient),
		Sessions:    sessions,
		Users:       users,
		Logger:      logger,
		CORSOrigins: cfg.CORSOrigins,
		RateLimiter: limiter,
	})

	srv := server.New(cfg, router, logger)

	errChan := make(chan error, 1)
	go func() { errChan <- srv.Start() }()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logger.Fatal().Err(err).Msg("server error")
		}
	case sig := <-quit:
		logger.Info().Str("signal", sig.String()).Msg("signal received")
	}

	if err := srv.Shutdown(context.Background()); err != nil {
		logger.Error().Err(err).Msg("shutdown error")
	}
	logger.Info().Msg("server stopped")
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var out = os.Stderr
	logger := zerolog.New(out)
	if cfg.LogPretty {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: out})
	}
	return logger.Level(level).With().Timestamp().Str("service", "recipebook").Logger()
}
