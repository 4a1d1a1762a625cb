package service

import (
	"context"
	"time"

	"github.com/pageza/pantry-chef/backend/internal/models"
	"github.com/pageza/pantry-chef/backend/internal/types"
)

// CompletionClient sends one prompt to the text completion provider
type CompletionClient interface {
	Complete(ctx context.Context, prompt string, params CompletionParams) (*CompletionResult, error)
}

// UsageRecorder stores token accounting for finished requests
type UsageRecorder interface {
	Record(ctx context.Context, rec *models.GenerationRecord) error
}

// UsageSummarizer reports aggregated usage per outcome
type UsageSummarizer interface {
	Summary(ctx context.Context, since time.Time) ([]models.OutcomeSummary, error)
}

// IRecipeService defines the interface for recipe generation
type IRecipeService interface {
	GenerateRecipe(ctx context.Context, ingredients []string) (*types.RecipeResponse, error)
}

// IAuthService defines the interface for caller authorization
type IAuthService interface {
	Authorize(key string) error
}

var (
	_ CompletionClient = (*OpenAIClient)(nil)
	_ UsageRecorder    = (*UsageStore)(nil)
	_ UsageSummarizer  = (*UsageStore)(nil)
	_ IRecipeService   = (*RecipeService)(nil)
	_ IAuthService     = (*AuthService)(nil)
)
