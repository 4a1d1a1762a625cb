package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/pageza/pantry-chef/backend/config"
	"github.com/pageza/pantry-chef/backend/internal/models"
	"github.com/pageza/pantry-chef/backend/internal/telemetry"
	"github.com/pageza/pantry-chef/backend/internal/types"
)

type requestIDKey struct{}

// WithRequestID attaches the inbound request ID so usage records can be correlated with logs
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// RecipeService runs the two-step feasibility then recipe pipeline
type RecipeService struct {
	client     CompletionClient
	usage      UsageRecorder
	logger     *zap.Logger
	tokenLimit int
}

// NewRecipeService creates a new RecipeService instance. A nil usage recorder disables
// usage recording.
func NewRecipeService(client CompletionClient, usage UsageRecorder, logger *zap.Logger) *RecipeService {
	if usage == nil {
		usage = NewNoopUsageRecorder()
	}
	return &RecipeService{
		client:     client,
		usage:      usage,
		logger:     logger,
		tokenLimit: config.TokenLimit,
	}
}

// GenerateRecipe asks whether the ingredients make a recipe and, if so, asks for it.
// Infeasible lists are a normal result with Possible=false. Errors wrap
// ErrProviderFailure, ErrTokenLimitExceeded or ErrResponseParse.
func (s *RecipeService) GenerateRecipe(ctx context.Context, ingredients []string) (*types.RecipeResponse, error) {
	ctx, span := otel.Tracer(telemetry.TracerName).Start(ctx, "recipe.generate")
	defer span.End()
	span.SetAttributes(attribute.Int("recipe.ingredient_count", len(ingredients)))

	start := time.Now()
	rec := &models.GenerationRecord{
		RequestID:       requestIDFrom(ctx),
		IngredientCount: len(ingredients),
	}
	log := s.logger.With(zap.String("request_id", rec.RequestID), zap.Int("ingredients", len(ingredients)))

	resp, err := s.generate(ctx, ingredients, rec, log)

	rec.Outcome = outcomeFor(resp, err)
	rec.Possible = resp != nil && resp.Possible
	rec.LatencyMS = time.Since(start).Milliseconds()
	span.SetAttributes(attribute.String("recipe.outcome", rec.Outcome))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, rec.Outcome)
		log.Warn("recipe generation failed", zap.String("outcome", rec.Outcome), zap.Error(err))
	} else {
		log.Info("recipe generation finished",
			zap.String("outcome", rec.Outcome),
			zap.Int("recipe_tokens", rec.RecipeTokens),
			zap.Int64("latency_ms", rec.LatencyMS),
		)
	}

	if recErr := s.usage.Record(ctx, rec); recErr != nil {
		log.Error("failed to record generation usage", zap.Error(recErr))
	}

	return resp, err
}

func (s *RecipeService) generate(ctx context.Context, ingredients []string, rec *models.GenerationRecord, log *zap.Logger) (*types.RecipeResponse, error) {
	feasibility, err := s.client.Complete(ctx, BuildFeasibilityPrompt(ingredients), CompletionParams{
		Temperature: config.Temperature,
		MaxTokens:   config.FeasibilityMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("feasibility check: %w", err)
	}
	rec.FeasibilityTokens = feasibility.TotalTokens

	outcome, err := ClassifyFeasibility(feasibility.Text)
	if err != nil {
		log.Debug("unparseable feasibility completion", zap.String("text", feasibility.Text))
		return nil, fmt.Errorf("feasibility check: %w", err)
	}
	if !outcome.Feasible {
		return &types.RecipeResponse{
			Possible: false,
			Reason:   outcome.Reason,
		}, nil
	}

	recipe, err := s.client.Complete(ctx, BuildRecipePrompt(ingredients), CompletionParams{
		Temperature: config.Temperature,
		MaxTokens:   config.RecipeMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("recipe generation: %w", err)
	}
	rec.RecipeTokens = recipe.TotalTokens

	if err := CheckTokenBudget(recipe.TotalTokens, s.tokenLimit); err != nil {
		return nil, err
	}

	doc, err := ExtractRecipe(recipe)
	if err != nil {
		log.Debug("unparseable recipe completion", zap.String("text", recipe.Text))
		return nil, fmt.Errorf("recipe generation: %w", err)
	}

	return &types.RecipeResponse{
		Possible:         true,
		Title:            doc.Title,
		Description:      doc.Description,
		Ingredients:      doc.Ingredients,
		Instructions:     doc.Instructions,
		ExtraIngredients: doc.ExtraIngredients,
		CompletionTokens: doc.CompletionTokens,
	}, nil
}

func outcomeFor(resp *types.RecipeResponse, err error) string {
	switch {
	case errors.Is(err, ErrProviderFailure):
		return models.OutcomeProviderError
	case errors.Is(err, ErrTokenLimitExceeded):
		return models.OutcomeTokenLimit
	case errors.Is(err, ErrResponseParse):
		return models.OutcomeParseError
	case err != nil:
		return models.OutcomeProviderError
	case resp != nil && !resp.Possible:
		return models.OutcomeInfeasible
	default:
		return models.OutcomeRecipe
	}
}
