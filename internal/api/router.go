package api

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/forkful/recipebook/internal/middleware"
	"github.com/forkful/recipebook/internal/repository"
	"github.com/forkful/recipebook/internal/session"
)

// RouterDeps carries everything SetupRouter wires together.
type RouterDeps struct {
	Recipes     *RecipeHandler
	Auth        *AuthHandler
	Health      *HealthHandler
	Sessions    session.Store
	Users       repository.UserRepository
	Logger      zerolog.Logger
	CORSOrigins []string
	RateLimiter *middleware.RateLimiter // nil disables rate limiting
}

// SetupRouter configures the application routes and middleware chain.
// The error responder sits inside the gzip stage: it writes the
// envelope after c.Next() returns, which must happen while the gzip
// writer is still open, so every failure, including panics and unknown
// routes, leaves through the same envelope whatever encoding the
// client negotiated.
func SetupRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(deps.Logger),
		middleware.Metrics(),
		gzip.Gzip(gzip.DefaultCompression),
		middleware.ErrorResponder(deps.Logger),
		middleware.Recovery(deps.Logger),
		middleware.CORS(deps.CORSOrigins),
		middleware.SessionAuth(deps.Sessions, deps.Users, deps.Logger),
	)
	router.NoRoute(middleware.NoRoute())

	router.GET("/healthz", deps.Health.Check)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/api-docs", DocsIndex)

	auth := router.Group("/auth")
	if deps.RateLimiter != nil {
		auth.Use(deps.RateLimiter.Middleware())
	}
	deps.Auth.RegisterRoutes(auth)

	deps.Recipes.RegisterRoutes(&router.RouterGroup)

	return router
}
