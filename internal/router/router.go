package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/pantry-chef/backend/internal/api"
	"github.com/pageza/pantry-chef/backend/internal/middleware"
	"github.com/pageza/pantry-chef/backend/internal/service"
)

// Dependencies are the services the routes are built from. Usage and RateLimiter may be nil.
type Dependencies struct {
	Logger         *zap.Logger
	AllowedOrigins []string
	Recipes        service.IRecipeService
	Auth           service.IAuthService
	Usage          service.UsageSummarizer
	RateLimiter    *middleware.RateLimiter
}

// SetupRouter configures the application routes
func SetupRouter(deps Dependencies) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.RequestID(),
		middleware.ErrorHandler(deps.Logger),
		middleware.RequestLogger(deps.Logger),
		middleware.CORS(deps.AllowedOrigins),
	)

	router.GET("/health", api.HealthCheck)

	var limits []gin.HandlerFunc
	if deps.RateLimiter != nil {
		limits = append(limits, deps.RateLimiter.Middleware())
	}
	api.NewRecipeHandler(deps.Recipes, deps.Auth, deps.Logger).RegisterRoutes(router, limits...)

	if deps.Usage != nil {
		api.NewUsageHandler(deps.Usage, deps.Auth, deps.Logger).RegisterRoutes(router)
	}

	return router
}
