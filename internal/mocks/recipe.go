package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/pantry-chef/backend/internal/types"
)

// MockRecipeService is a mock implementation of the recipe service
type MockRecipeService struct {
	mock.Mock
}

// GenerateRecipe mocks the GenerateRecipe method
func (m *MockRecipeService) GenerateRecipe(ctx context.Context, ingredients []string) (*types.RecipeResponse, error) {
	args := m.Called(ctx, ingredients)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecipeResponse), args.Error(1)
}
