package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/pantry-chef/backend/internal/models"
	"github.com/pageza/pantry-chef/backend/internal/service"
)

// MockCompletionClient is a mock implementation of the completion provider client
type MockCompletionClient struct {
	mock.Mock
}

// Complete mocks the Complete method
func (m *MockCompletionClient) Complete(ctx context.Context, prompt string, params service.CompletionParams) (*service.CompletionResult, error) {
	args := m.Called(ctx, prompt, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CompletionResult), args.Error(1)
}

// MockUsageRecorder is a mock implementation of the usage recorder
type MockUsageRecorder struct {
	mock.Mock
}

// Record mocks the Record method
func (m *MockUsageRecorder) Record(ctx context.Context, rec *models.GenerationRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

// MockUsageSummarizer is a mock implementation of the usage summary reader
type MockUsageSummarizer struct {
	mock.Mock
}

// Summary mocks the Summary method
func (m *MockUsageSummarizer) Summary(ctx context.Context, since time.Time) ([]models.OutcomeSummary, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.OutcomeSummary), args.Error(1)
}
