package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/pantry-chef/backend/internal/middleware"
	"github.com/pageza/pantry-chef/backend/internal/service"
	"github.com/pageza/pantry-chef/backend/internal/types"
)

// RecipeHandler serves recipe generation
type RecipeHandler struct {
	recipes service.IRecipeService
	auth    service.IAuthService
	logger  *zap.Logger
}

// NewRecipeHandler creates a new RecipeHandler instance
func NewRecipeHandler(recipes service.IRecipeService, auth service.IAuthService, logger *zap.Logger) *RecipeHandler {
	return &RecipeHandler{
		recipes: recipes,
		auth:    auth,
		logger:  logger,
	}
}

// RegisterRoutes mounts POST /recipe/ behind the given middleware
func (h *RecipeHandler) RegisterRoutes(router gin.IRouter, mw ...gin.HandlerFunc) {
	handlers := append(mw, h.Generate)
	router.POST("/recipe/", handlers...)
}

// Generate checks the caller's key and returns a recipe for the ingredient list
func (h *RecipeHandler) Generate(c *gin.Context) {
	var req types.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	if err := h.auth.Authorize(req.Key.Key); err != nil {
		h.logger.Info("rejected recipe request", zap.String("client_ip", c.ClientIP()))
		abortWithError(c, err)
		return
	}

	ctx := service.WithRequestID(c.Request.Context(), c.GetString(middleware.RequestIDKey))
	resp, err := h.recipes.GenerateRecipe(ctx, req.Ingredients.IngredientList)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
