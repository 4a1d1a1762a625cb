package models

import (
	"time"

	"github.com/google/uuid"
)

// Generation outcomes recorded per request
const (
	OutcomeRecipe        = "recipe"
	OutcomeInfeasible    = "infeasible"
	OutcomeTokenLimit    = "token_limit"
	OutcomeParseError    = "parse_error"
	OutcomeProviderError = "provider_error"
)

// GenerationRecord is the token accounting for one recipe request. It holds no
// recipe content.
type GenerationRecord struct {
	ID                uuid.UUID `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt         time.Time `gorm:"index" json:"created_at"`
	RequestID         string    `gorm:"size:64" json:"request_id"`
	IngredientCount   int       `json:"ingredient_count"`
	Outcome           string    `gorm:"size:32;not null;index" json:"outcome"`
	Possible          bool      `json:"possible"`
	FeasibilityTokens int       `json:"feasibility_tokens"`
	RecipeTokens      int       `json:"recipe_tokens"`
	LatencyMS         int64     `json:"latency_ms"`
}

// TableName returns the table name for the GenerationRecord model
func (GenerationRecord) TableName() string {
	return "generation_records"
}

// OutcomeSummary aggregates records for one outcome
type OutcomeSummary struct {
	Outcome           string `json:"outcome"`
	Count             int64  `json:"count"`
	FeasibilityTokens int64  `json:"feasibility_tokens"`
	RecipeTokens      int64  `json:"recipe_tokens"`
}
